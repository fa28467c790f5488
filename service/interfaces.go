package service

import (
	"context"
	"time"

	"cardbot/events"
	"cardbot/models"
)

// CardRepository defines the interface for card catalog data access
type CardRepository interface {
	// Create persists a new card definition and fills its ID
	Create(ctx context.Context, card *models.Card) error

	// GetByID retrieves a card definition, or nil if it does not exist
	GetByID(ctx context.Context, id int64) (*models.Card, error)

	// GetAll returns every card definition in the catalog
	GetAll(ctx context.Context) ([]*models.Card, error)

	// Delete removes a card definition
	Delete(ctx context.Context, id int64) error
}

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByUserID retrieves an account, or nil if it does not exist
	GetByUserID(ctx context.Context, userID int64) (*models.Account, error)

	// Create inserts an account with a zero balance, returning the
	// existing row if the account was created concurrently
	Create(ctx context.Context, userID int64) (*models.Account, error)

	// AddCoins credits an account atomically
	AddCoins(ctx context.Context, userID int64, amount int64) error

	// DeductCoins debits an account atomically, returning
	// ErrInsufficientFunds when the balance does not cover the amount
	DeductCoins(ctx context.Context, userID int64, amount int64) error

	// StampFreePack conditionally sets last_free_pack_at to now. It
	// reports false when the cooldown from the previous successful
	// claim has not elapsed; this is the claim serialization point.
	StampFreePack(ctx context.Context, userID int64, now time.Time, cooldown time.Duration) (bool, error)

	// Delete removes an account; inventory and trades cascade
	Delete(ctx context.Context, userID int64) error
}

// InventoryRepository defines the interface for inventory data access
type InventoryRepository interface {
	// Insert persists a new inventory item and fills its ID
	Insert(ctx context.Context, item *models.InventoryItem) error

	// GetByID retrieves an inventory item, or nil if it does not exist
	GetByID(ctx context.Context, id int64) (*models.InventoryItem, error)

	// ListByOwner returns the owner's items joined with their card
	// definitions, newest first
	ListByOwner(ctx context.Context, userID int64) ([]*models.InventoryEntry, error)

	// TransferOwner reassigns an item from one owner to another. It
	// reports false when the item does not currently belong to
	// fromUserID, leaving the row untouched.
	TransferOwner(ctx context.Context, itemID, fromUserID, toUserID int64) (bool, error)

	// SumIncomeByOwner returns the summed coins_per_hour of each
	// account's current inventory, omitting accounts with no items
	SumIncomeByOwner(ctx context.Context) ([]*models.OwnerIncome, error)
}

// TradeOfferRepository defines the interface for trade offer data access
type TradeOfferRepository interface {
	// Create persists a new pending offer and fills its ID
	Create(ctx context.Context, offer *models.TradeOffer) error

	// GetByID retrieves a trade offer, or nil if it does not exist
	GetByID(ctx context.Context, id int64) (*models.TradeOffer, error)

	// ListPendingByUser returns pending offers where the user is either
	// side, newest first
	ListPendingByUser(ctx context.Context, userID int64) ([]*models.TradeOffer, error)

	// MarkResolved transitions a pending offer to a terminal status. It
	// reports false when the offer was already resolved; only the
	// caller that wins this transition may mutate ownership.
	MarkResolved(ctx context.Context, id int64, status models.TradeStatus, resolvedAt time.Time) (bool, error)
}

// AccrualRunRepository defines the interface for accrual sweep bookkeeping
type AccrualRunRepository interface {
	// Create records a finished accrual sweep
	Create(ctx context.Context, run *models.AccrualRun) error

	// GetLatest returns the most recent accrual run, or nil if none
	GetLatest(ctx context.Context) (*models.AccrualRun, error)
}

// AccountService defines the interface for account operations
type AccountService interface {
	// EnsureAccount retrieves an account, creating it lazily on first contact
	EnsureAccount(ctx context.Context, userID int64) (*models.Account, error)

	// GetCoinBalance returns the account's current coin balance
	GetCoinBalance(ctx context.Context, userID int64) (int64, error)

	// ListInventory returns the account's items joined with card definitions
	ListInventory(ctx context.Context, userID int64) ([]*models.InventoryEntry, error)

	// DeleteAccount removes an account and, via cascade, its inventory and trades
	DeleteAccount(ctx context.Context, userID int64) error
}

// PackService defines the interface for pack operations
type PackService interface {
	// ClaimFreePack grants the fixed-size free pack, enforcing the
	// per-account cooldown
	ClaimFreePack(ctx context.Context, userID int64) ([]*models.Card, error)

	// PurchasePack debits price and grants count cards atomically
	PurchasePack(ctx context.Context, userID int64, count int, price int64) ([]*models.Card, error)
}

// TradeService defines the interface for the trade offer lifecycle
type TradeService interface {
	// CreateOffer proposes gifting one owned item to another account
	CreateOffer(ctx context.Context, fromUserID, offeredItemID, toUserID int64) (*models.TradeOffer, error)

	// Accept resolves a pending offer and transfers the item to the recipient
	Accept(ctx context.Context, offerID, byUserID int64) (*models.TradeOffer, error)

	// Reject resolves a pending offer without moving the item
	Reject(ctx context.Context, offerID, byUserID int64) (*models.TradeOffer, error)

	// Cancel withdraws a pending offer; offerer only
	Cancel(ctx context.Context, offerID, byUserID int64) (*models.TradeOffer, error)

	// ListOffers returns the user's pending offers, both directions
	ListOffers(ctx context.Context, userID int64) ([]*models.TradeOffer, error)
}

// CardService defines the interface for the card-authoring facade
type CardService interface {
	// CreateCardDefinition adds a card to the catalog
	CreateCardDefinition(ctx context.Context, name string, rarity models.Rarity, coinsPerHour int64, artworkRef *string) (*models.Card, error)

	// ListCardDefinitions returns the whole catalog
	ListCardDefinitions(ctx context.Context) ([]*models.Card, error)

	// DeleteCardDefinition removes a card from the catalog
	DeleteCardDefinition(ctx context.Context, id int64) error
}

// IncomeService defines the interface for the passive-income sweep
type IncomeService interface {
	// RunAccrualTick credits every account the summed hourly income of
	// its inventory. Additive per invocation; the caller owns the
	// once-per-interval schedule.
	RunAccrualTick(ctx context.Context) (*models.AccrualRun, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	CardRepository() CardRepository
	AccountRepository() AccountRepository
	InventoryRepository() InventoryRepository
	TradeOfferRepository() TradeOfferRepository
	AccrualRunRepository() AccrualRunRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create returns a new, unstarted UnitOfWork
	Create() UnitOfWork
}
