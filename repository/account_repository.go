package repository

import (
	"context"
	"fmt"
	"time"

	"cardbot/database"
	"cardbot/models"
	"cardbot/service"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetByUserID retrieves an account by its external user ID
func (r *AccountRepository) GetByUserID(ctx context.Context, userID int64) (*models.Account, error) {
	query := `
		SELECT user_id, coins, last_free_pack_at, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
	`

	var account models.Account
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.Coins,
		&account.LastFreePackAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", userID, err)
	}

	return &account, nil
}

// Create inserts an account with a zero balance. A concurrent insert of
// the same user is not an error; the existing row is returned instead.
func (r *AccountRepository) Create(ctx context.Context, userID int64) (*models.Account, error) {
	query := `
		INSERT INTO accounts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING user_id, coins, last_free_pack_at, created_at, updated_at
	`

	var account models.Account
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.Coins,
		&account.LastFreePackAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		// Lost the insert race; the account exists now.
		existing, getErr := r.GetByUserID(ctx, userID)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, fmt.Errorf("account %d vanished after conflicting insert", userID)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create account %d: %w", userID, err)
	}

	return &account, nil
}

// AddCoins credits an account atomically
func (r *AccountRepository) AddCoins(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET coins = coins + $1, updated_at = NOW()
		WHERE user_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to add coins for account %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrAccountNotFound
	}

	return nil
}

// DeductCoins debits an account atomically. The balance check and the
// debit are one conditional UPDATE, so no interleaving can overdraw.
func (r *AccountRepository) DeductCoins(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET coins = coins - $1, updated_at = NOW()
		WHERE user_id = $2 AND coins >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to deduct coins for account %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		account, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to check account %d: %w", userID, err)
		}
		if account == nil {
			return service.ErrAccountNotFound
		}
		return service.ErrInsufficientFunds
	}

	return nil
}

// StampFreePack conditionally records a free-pack claim at now. The
// UPDATE only matches when the cooldown from the previous successful
// claim has elapsed, which makes it the serialization point for
// concurrent claims: exactly one of them can stamp.
func (r *AccountRepository) StampFreePack(ctx context.Context, userID int64, now time.Time, cooldown time.Duration) (bool, error) {
	query := `
		UPDATE accounts
		SET last_free_pack_at = $1, updated_at = NOW()
		WHERE user_id = $2 AND last_free_pack_at <= $3
	`

	result, err := r.q.Exec(ctx, query, now, userID, now.Add(-cooldown))
	if err != nil {
		return false, fmt.Errorf("failed to stamp free pack for account %d: %w", userID, err)
	}

	return result.RowsAffected() == 1, nil
}

// Delete removes an account; inventory items and trade offers cascade
func (r *AccountRepository) Delete(ctx context.Context, userID int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return service.ErrAccountNotFound
	}

	return nil
}
