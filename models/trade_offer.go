package models

import (
	"time"
)

// TradeStatus represents the state of a trade offer
type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "pending"
	TradeStatusAccepted  TradeStatus = "accepted"
	TradeStatusRejected  TradeStatus = "rejected"
	TradeStatusCancelled TradeStatus = "cancelled"
)

// TradeOffer is a directed, single-item gift proposal between two accounts.
// It is created pending and transitions exactly once to a terminal state.
type TradeOffer struct {
	ID            int64       `db:"id"`
	FromUserID    int64       `db:"from_user_id"`
	ToUserID      int64       `db:"to_user_id"`
	OfferedItemID int64       `db:"offered_item_id"`
	Status        TradeStatus `db:"status"`
	CreatedAt     time.Time   `db:"created_at"`
	ResolvedAt    *time.Time  `db:"resolved_at"`
}

// IsPending reports whether the offer is still open
func (t *TradeOffer) IsPending() bool {
	return t.Status == TradeStatusPending
}

// CanBeAcceptedBy checks if the offer can be accepted by the given user
func (t *TradeOffer) CanBeAcceptedBy(userID int64) bool {
	return t.Status == TradeStatusPending && t.ToUserID == userID
}

// CanBeCancelledBy checks if the offer can be cancelled by the given user
func (t *TradeOffer) CanBeCancelledBy(userID int64) bool {
	return t.Status == TradeStatusPending && t.FromUserID == userID
}
