package repository

import (
	"context"
	"fmt"

	"cardbot/database"
	"cardbot/events"
	"cardbot/service"
	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	cardRepo         service.CardRepository
	accountRepo      service.AccountRepository
	inventoryRepo    service.InventoryRepository
	tradeOfferRepo   service.TradeOfferRepository
	accrualRunRepo   service.AccrualRunRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.cardRepo = newCardRepositoryWithTx(tx)
	u.accountRepo = newAccountRepositoryWithTx(tx)
	u.inventoryRepo = newInventoryRepositoryWithTx(tx)
	u.tradeOfferRepo = newTradeOfferRepositoryWithTx(tx)
	u.accrualRunRepo = newAccrualRunRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush()
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events.
// No-op if the transaction was already committed.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// CardRepository returns the card repository for this unit of work
func (u *unitOfWork) CardRepository() service.CardRepository {
	if u.cardRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.cardRepo
}

// AccountRepository returns the account repository for this unit of work
func (u *unitOfWork) AccountRepository() service.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// InventoryRepository returns the inventory repository for this unit of work
func (u *unitOfWork) InventoryRepository() service.InventoryRepository {
	if u.inventoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.inventoryRepo
}

// TradeOfferRepository returns the trade offer repository for this unit of work
func (u *unitOfWork) TradeOfferRepository() service.TradeOfferRepository {
	if u.tradeOfferRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.tradeOfferRepo
}

// AccrualRunRepository returns the accrual run repository for this unit of work
func (u *unitOfWork) AccrualRunRepository() service.AccrualRunRepository {
	if u.accrualRunRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accrualRunRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
