package repository

import (
	"context"
	"fmt"

	"cardbot/database"
	"cardbot/models"
	"github.com/jackc/pgx/v5"
)

// CardRepository implements the CardRepository interface
type CardRepository struct {
	q queryable
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *database.DB) *CardRepository {
	return &CardRepository{q: db.Pool}
}

// newCardRepositoryWithTx creates a new card repository with a transaction
func newCardRepositoryWithTx(tx queryable) *CardRepository {
	return &CardRepository{q: tx}
}

// Create persists a new card definition and fills its ID
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (name, rarity, coins_per_hour, artwork_ref)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, card.Name, card.Rarity, card.CoinsPerHour, card.ArtworkRef).Scan(
		&card.ID,
		&card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create card %q: %w", card.Name, err)
	}

	return nil
}

// GetByID retrieves a card definition by its ID
func (r *CardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	query := `
		SELECT id, name, rarity, coins_per_hour, artwork_ref, created_at
		FROM cards
		WHERE id = $1
	`

	var card models.Card
	err := r.q.QueryRow(ctx, query, id).Scan(
		&card.ID,
		&card.Name,
		&card.Rarity,
		&card.CoinsPerHour,
		&card.ArtworkRef,
		&card.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %d: %w", id, err)
	}

	return &card, nil
}

// GetAll returns every card definition in the catalog
func (r *CardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	query := `
		SELECT id, name, rarity, coins_per_hour, artwork_ref, created_at
		FROM cards
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		var card models.Card
		err := rows.Scan(
			&card.ID,
			&card.Name,
			&card.Rarity,
			&card.CoinsPerHour,
			&card.ArtworkRef,
			&card.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}

// Delete removes a card definition
func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("card %d not found", id)
	}

	return nil
}
