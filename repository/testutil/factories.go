package testutil

import (
	"context"
	"testing"
	"time"

	"cardbot/database"
	"cardbot/models"

	"github.com/stretchr/testify/require"
)

// CreateTestAccount inserts an account row with the given balance
func CreateTestAccount(t *testing.T, db *database.DB, userID int64, coins int64) *models.Account {
	ctx := context.Background()

	var account models.Account
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO accounts (user_id, coins)
		VALUES ($1, $2)
		RETURNING user_id, coins, last_free_pack_at, created_at, updated_at
	`, userID, coins).Scan(
		&account.UserID,
		&account.Coins,
		&account.LastFreePackAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	require.NoError(t, err)

	return &account
}

// SetLastFreePack moves an account's cooldown stamp, e.g. into the past
// to make a claim eligible
func SetLastFreePack(t *testing.T, db *database.DB, userID int64, at time.Time) {
	ctx := context.Background()

	tag, err := db.Pool.Exec(ctx, `
		UPDATE accounts SET last_free_pack_at = $1 WHERE user_id = $2
	`, at, userID)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

// CreateTestCard inserts a card definition
func CreateTestCard(t *testing.T, db *database.DB, name string, rarity models.Rarity, coinsPerHour int64) *models.Card {
	ctx := context.Background()

	card := models.Card{
		Name:         name,
		Rarity:       rarity,
		CoinsPerHour: coinsPerHour,
	}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO cards (name, rarity, coins_per_hour)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, name, rarity, coinsPerHour).Scan(&card.ID, &card.CreatedAt)
	require.NoError(t, err)

	return &card
}

// CreateTestInventoryItem grants a card copy to an account
func CreateTestInventoryItem(t *testing.T, db *database.DB, ownerUserID, cardID int64) *models.InventoryItem {
	ctx := context.Background()

	item := models.InventoryItem{
		OwnerUserID: ownerUserID,
		CardID:      cardID,
	}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO inventory_items (owner_user_id, card_id)
		VALUES ($1, $2)
		RETURNING id, acquired_at
	`, ownerUserID, cardID).Scan(&item.ID, &item.AcquiredAt)
	require.NoError(t, err)

	return &item
}

// CreateTestTradeOffer inserts a pending trade offer
func CreateTestTradeOffer(t *testing.T, db *database.DB, fromUserID, toUserID, offeredItemID int64) *models.TradeOffer {
	ctx := context.Background()

	offer := models.TradeOffer{
		FromUserID:    fromUserID,
		ToUserID:      toUserID,
		OfferedItemID: offeredItemID,
		Status:        models.TradeStatusPending,
	}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO trade_offers (from_user_id, to_user_id, offered_item_id, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, created_at
	`, fromUserID, toUserID, offeredItemID).Scan(&offer.ID, &offer.CreatedAt)
	require.NoError(t, err)

	return &offer
}
