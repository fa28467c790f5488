package repository

import (
	"context"
	"fmt"

	"cardbot/database"
	"cardbot/models"
	"github.com/jackc/pgx/v5"
)

// InventoryRepository implements the InventoryRepository interface
type InventoryRepository struct {
	q queryable
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{q: db.Pool}
}

// newInventoryRepositoryWithTx creates a new inventory repository with a transaction
func newInventoryRepositoryWithTx(tx queryable) *InventoryRepository {
	return &InventoryRepository{q: tx}
}

// Insert persists a new inventory item and fills its ID
func (r *InventoryRepository) Insert(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (owner_user_id, card_id)
		VALUES ($1, $2)
		RETURNING id, acquired_at
	`

	err := r.q.QueryRow(ctx, query, item.OwnerUserID, item.CardID).Scan(
		&item.ID,
		&item.AcquiredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item for account %d: %w", item.OwnerUserID, err)
	}

	return nil
}

// GetByID retrieves an inventory item by its ID
func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	query := `
		SELECT id, owner_user_id, card_id, acquired_at
		FROM inventory_items
		WHERE id = $1
	`

	var item models.InventoryItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.OwnerUserID,
		&item.CardID,
		&item.AcquiredAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item %d: %w", id, err)
	}

	return &item, nil
}

// ListByOwner returns the owner's items joined with their card
// definitions, newest acquisitions first
func (r *InventoryRepository) ListByOwner(ctx context.Context, userID int64) ([]*models.InventoryEntry, error) {
	query := `
		SELECT i.id, i.owner_user_id, i.card_id, i.acquired_at,
		       c.id, c.name, c.rarity, c.coins_per_hour, c.artwork_ref, c.created_at
		FROM inventory_items i
		JOIN cards c ON c.id = i.card_id
		WHERE i.owner_user_id = $1
		ORDER BY i.acquired_at DESC, i.id DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory for account %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.InventoryEntry
	for rows.Next() {
		var entry models.InventoryEntry
		err := rows.Scan(
			&entry.Item.ID,
			&entry.Item.OwnerUserID,
			&entry.Item.CardID,
			&entry.Item.AcquiredAt,
			&entry.Card.ID,
			&entry.Card.Name,
			&entry.Card.Rarity,
			&entry.Card.CoinsPerHour,
			&entry.Card.ArtworkRef,
			&entry.Card.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}

	return entries, nil
}

// TransferOwner reassigns an item to a new owner. The current-owner
// predicate makes the reassignment conditional: if the item changed
// hands since the caller last looked, no row matches and the transfer
// is reported as lost rather than applied blindly.
func (r *InventoryRepository) TransferOwner(ctx context.Context, itemID, fromUserID, toUserID int64) (bool, error) {
	query := `
		UPDATE inventory_items
		SET owner_user_id = $1
		WHERE id = $2 AND owner_user_id = $3
	`

	result, err := r.q.Exec(ctx, query, toUserID, itemID, fromUserID)
	if err != nil {
		return false, fmt.Errorf("failed to transfer inventory item %d: %w", itemID, err)
	}

	return result.RowsAffected() == 1, nil
}

// SumIncomeByOwner returns the summed coins_per_hour of every account's
// current inventory. Accounts without items produce no row.
func (r *InventoryRepository) SumIncomeByOwner(ctx context.Context) ([]*models.OwnerIncome, error) {
	query := `
		SELECT i.owner_user_id, COALESCE(SUM(c.coins_per_hour), 0) AS income
		FROM inventory_items i
		JOIN cards c ON c.id = i.card_id
		GROUP BY i.owner_user_id
		ORDER BY i.owner_user_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income by owner: %w", err)
	}
	defer rows.Close()

	var incomes []*models.OwnerIncome
	for rows.Next() {
		var income models.OwnerIncome
		if err := rows.Scan(&income.UserID, &income.Income); err != nil {
			return nil, fmt.Errorf("failed to scan owner income: %w", err)
		}
		incomes = append(incomes, &income)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate owner incomes: %w", err)
	}

	return incomes, nil
}
