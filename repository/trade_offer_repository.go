package repository

import (
	"context"
	"fmt"
	"time"

	"cardbot/database"
	"cardbot/models"
	"github.com/jackc/pgx/v5"
)

// TradeOfferRepository implements the TradeOfferRepository interface
type TradeOfferRepository struct {
	q queryable
}

// NewTradeOfferRepository creates a new trade offer repository
func NewTradeOfferRepository(db *database.DB) *TradeOfferRepository {
	return &TradeOfferRepository{q: db.Pool}
}

// newTradeOfferRepositoryWithTx creates a new trade offer repository with a transaction
func newTradeOfferRepositoryWithTx(tx queryable) *TradeOfferRepository {
	return &TradeOfferRepository{q: tx}
}

// Create persists a new pending offer and fills its ID
func (r *TradeOfferRepository) Create(ctx context.Context, offer *models.TradeOffer) error {
	query := `
		INSERT INTO trade_offers (from_user_id, to_user_id, offered_item_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		offer.FromUserID,
		offer.ToUserID,
		offer.OfferedItemID,
		models.TradeStatusPending,
	).Scan(&offer.ID, &offer.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trade offer from %d to %d: %w", offer.FromUserID, offer.ToUserID, err)
	}

	offer.Status = models.TradeStatusPending
	return nil
}

// GetByID retrieves a trade offer by its ID
func (r *TradeOfferRepository) GetByID(ctx context.Context, id int64) (*models.TradeOffer, error) {
	query := `
		SELECT id, from_user_id, to_user_id, offered_item_id, status, created_at, resolved_at
		FROM trade_offers
		WHERE id = $1
	`

	var offer models.TradeOffer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&offer.ID,
		&offer.FromUserID,
		&offer.ToUserID,
		&offer.OfferedItemID,
		&offer.Status,
		&offer.CreatedAt,
		&offer.ResolvedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade offer %d: %w", id, err)
	}

	return &offer, nil
}

// ListPendingByUser returns pending offers where the user is either the
// offerer or the recipient, newest first
func (r *TradeOfferRepository) ListPendingByUser(ctx context.Context, userID int64) ([]*models.TradeOffer, error) {
	query := `
		SELECT id, from_user_id, to_user_id, offered_item_id, status, created_at, resolved_at
		FROM trade_offers
		WHERE status = 'pending' AND (from_user_id = $1 OR to_user_id = $1)
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending trade offers for account %d: %w", userID, err)
	}
	defer rows.Close()

	var offers []*models.TradeOffer
	for rows.Next() {
		var offer models.TradeOffer
		err := rows.Scan(
			&offer.ID,
			&offer.FromUserID,
			&offer.ToUserID,
			&offer.OfferedItemID,
			&offer.Status,
			&offer.CreatedAt,
			&offer.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade offer: %w", err)
		}
		offers = append(offers, &offer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trade offers: %w", err)
	}

	return offers, nil
}

// MarkResolved transitions a pending offer to a terminal status. The
// status predicate guarantees the terminal state is set exactly once:
// concurrent resolvers race on this UPDATE and only one wins.
func (r *TradeOfferRepository) MarkResolved(ctx context.Context, id int64, status models.TradeStatus, resolvedAt time.Time) (bool, error) {
	query := `
		UPDATE trade_offers
		SET status = $1, resolved_at = $2
		WHERE id = $3 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, status, resolvedAt, id)
	if err != nil {
		return false, fmt.Errorf("failed to resolve trade offer %d: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}
