package service

import (
	"context"

	"cardbot/events"
	"cardbot/models"
)

// accountService implements the AccountService interface
type accountService struct {
	uowFactory UnitOfWorkFactory
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory) AccountService {
	return &accountService{
		uowFactory: uowFactory,
	}
}

// EnsureAccount retrieves an account, creating it lazily on first contact
func (s *accountService) EnsureAccount(ctx context.Context, userID int64) (*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("ensure account", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, storageErr("ensure account", err)
	}

	if account == nil {
		account, err = uow.AccountRepository().Create(ctx, userID)
		if err != nil {
			return nil, storageErr("ensure account", err)
		}
		uow.EventBus().Publish(events.AccountCreatedEvent{UserID: userID})
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("ensure account", err)
	}

	return account, nil
}

// GetCoinBalance returns the account's current coin balance
func (s *accountService) GetCoinBalance(ctx context.Context, userID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, storageErr("get coin balance", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return 0, storageErr("get coin balance", err)
	}
	if account == nil {
		return 0, ErrAccountNotFound
	}

	return account.Coins, nil
}

// ListInventory returns the account's items joined with card definitions
func (s *accountService) ListInventory(ctx context.Context, userID int64) ([]*models.InventoryEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("list inventory", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, storageErr("list inventory", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	entries, err := uow.InventoryRepository().ListByOwner(ctx, userID)
	if err != nil {
		return nil, storageErr("list inventory", err)
	}

	return entries, nil
}

// DeleteAccount removes an account and, via cascade, its inventory and trades
func (s *accountService) DeleteAccount(ctx context.Context, userID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storageErr("delete account", err)
	}
	defer uow.Rollback()

	if err := uow.AccountRepository().Delete(ctx, userID); err != nil {
		if err == ErrAccountNotFound {
			return err
		}
		return storageErr("delete account", err)
	}

	if err := uow.Commit(); err != nil {
		return storageErr("delete account", err)
	}

	return nil
}
