package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardbot/events"
	"cardbot/models"

	"github.com/stretchr/testify/assert"
)

func TestAccountService_EnsureAccount_Existing(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, mockAccountRepo, nil, nil, nil, mockEventBus)

	service := NewAccountService(mockFactory)

	existing := &models.Account{
		UserID: 123456,
		Coins:  40,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByUserID", ctx, int64(123456)).Return(existing, nil)

	account, err := service.EnsureAccount(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, existing, account)

	mockAccountRepo.AssertNotCalled(t, "Create")
	mockEventBus.AssertNotCalled(t, "Publish")
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestAccountService_EnsureAccount_CreatesLazily(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, mockAccountRepo, nil, nil, nil, mockEventBus)

	service := NewAccountService(mockFactory)

	created := &models.Account{
		UserID:         123456,
		Coins:          0,
		LastFreePackAt: models.FreePackNever,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByUserID", ctx, int64(123456)).Return(nil, nil)
	mockAccountRepo.On("Create", ctx, int64(123456)).Return(created, nil)
	mockEventBus.On("Publish", events.AccountCreatedEvent{UserID: 123456}).Return()

	account, err := service.EnsureAccount(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, created, account)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestAccountService_GetCoinBalance_MissingAccount(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)

	mockUoW.SetRepositories(nil, mockAccountRepo, nil, nil, nil, nil)

	service := NewAccountService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByUserID", ctx, int64(999)).Return(nil, nil)

	_, err := service.GetCoinBalance(ctx, 999)

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountService_ListInventory(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockInventoryRepo := new(MockInventoryRepository)

	mockUoW.SetRepositories(nil, mockAccountRepo, mockInventoryRepo, nil, nil, nil)

	service := NewAccountService(mockFactory)

	account := &models.Account{UserID: 123456}
	entries := []*models.InventoryEntry{
		{
			Item: models.InventoryItem{ID: 1, OwnerUserID: 123456, CardID: 10, AcquiredAt: time.Now()},
			Card: models.Card{ID: 10, Name: "Swamp Gator", Rarity: models.RarityCommon, CoinsPerHour: 1},
		},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByUserID", ctx, int64(123456)).Return(account, nil)
	mockInventoryRepo.On("ListByOwner", ctx, int64(123456)).Return(entries, nil)

	got, err := service.ListInventory(ctx, 123456)

	assert.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestAccountService_DeleteAccount_Missing(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)

	mockUoW.SetRepositories(nil, mockAccountRepo, nil, nil, nil, nil)

	service := NewAccountService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("Delete", ctx, int64(999)).Return(ErrAccountNotFound)

	err := service.DeleteAccount(ctx, 999)

	assert.ErrorIs(t, err, ErrAccountNotFound)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestAccountService_EnsureAccount_StorageFailure(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)

	mockUoW.SetRepositories(nil, mockAccountRepo, nil, nil, nil, nil)

	service := NewAccountService(mockFactory)

	boom := errors.New("connection refused")

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetByUserID", ctx, int64(123456)).Return(nil, boom)

	_, err := service.EnsureAccount(ctx, 123456)

	var sErr *StorageError
	assert.ErrorAs(t, err, &sErr)
	assert.ErrorIs(t, err, boom)
}
