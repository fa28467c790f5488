package models

import (
	"time"
)

// InventoryItem is one owned instance of a card definition. The item id is
// stable across ownership changes; only OwnerUserID mutates on trade.
type InventoryItem struct {
	ID          int64     `db:"id"`
	OwnerUserID int64     `db:"owner_user_id"`
	CardID      int64     `db:"card_id"`
	AcquiredAt  time.Time `db:"acquired_at"`
}

// InventoryEntry is an inventory item joined with its card definition,
// as shown to the transport layer
type InventoryEntry struct {
	Item InventoryItem
	Card Card
}

// OwnerIncome is the summed hourly income of one account's inventory,
// as produced by the accrual sweep's grouped query
type OwnerIncome struct {
	UserID int64 `db:"owner_user_id"`
	Income int64 `db:"income"`
}
