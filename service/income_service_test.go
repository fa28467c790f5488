package service

import (
	"context"
	"testing"

	"cardbot/events"
	"cardbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestIncomeService_RunAccrualTick_CreditsSummedIncome(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockInventoryRepo := new(MockInventoryRepository)
	mockAccrualRepo := new(MockAccrualRunRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, mockAccountRepo, mockInventoryRepo, nil, mockAccrualRepo, mockEventBus)

	service := NewIncomeService(mockFactory)

	// One account holding items worth 3 and 8 per hour.
	incomes := []*models.OwnerIncome{
		{UserID: 100, Income: 11},
		{UserID: 200, Income: 5},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockInventoryRepo.On("SumIncomeByOwner", ctx).Return(incomes, nil)
	mockAccountRepo.On("AddCoins", ctx, int64(100), int64(11)).Return(nil)
	mockAccountRepo.On("AddCoins", ctx, int64(200), int64(5)).Return(nil)

	mockAccrualRepo.On("Create", ctx, mock.MatchedBy(func(run *models.AccrualRun) bool {
		return run.TotalCredited == 16 && run.AccountsCredited == 2
	})).Return(nil)

	mockEventBus.On("Publish", events.AccrualCompleteEvent{
		TotalCredited:    16,
		AccountsCredited: 2,
	}).Return()

	run, err := service.RunAccrualTick(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(16), run.TotalCredited)
	assert.Equal(t, 2, run.AccountsCredited)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
	mockAccrualRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestIncomeService_RunAccrualTick_SkipsMissingAccount(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockInventoryRepo := new(MockInventoryRepository)
	mockAccrualRepo := new(MockAccrualRunRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, mockAccountRepo, mockInventoryRepo, nil, mockAccrualRepo, mockEventBus)

	service := NewIncomeService(mockFactory)

	incomes := []*models.OwnerIncome{
		{UserID: 100, Income: 11},
		{UserID: 200, Income: 5},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockInventoryRepo.On("SumIncomeByOwner", ctx).Return(incomes, nil)
	// First account vanished between the sum and the credit.
	mockAccountRepo.On("AddCoins", ctx, int64(100), int64(11)).Return(ErrAccountNotFound)
	mockAccountRepo.On("AddCoins", ctx, int64(200), int64(5)).Return(nil)

	mockAccrualRepo.On("Create", ctx, mock.MatchedBy(func(run *models.AccrualRun) bool {
		return run.TotalCredited == 5 && run.AccountsCredited == 1
	})).Return(nil)

	mockEventBus.On("Publish", mock.AnythingOfType("events.AccrualCompleteEvent")).Return()

	run, err := service.RunAccrualTick(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), run.TotalCredited)
	assert.Equal(t, 1, run.AccountsCredited)
}

func TestIncomeService_RunAccrualTick_NoOwners(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockInventoryRepo := new(MockInventoryRepository)
	mockAccrualRepo := new(MockAccrualRunRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, mockAccountRepo, mockInventoryRepo, nil, mockAccrualRepo, mockEventBus)

	service := NewIncomeService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockInventoryRepo.On("SumIncomeByOwner", ctx).Return([]*models.OwnerIncome{}, nil)
	mockAccrualRepo.On("Create", ctx, mock.MatchedBy(func(run *models.AccrualRun) bool {
		return run.TotalCredited == 0 && run.AccountsCredited == 0
	})).Return(nil)
	mockEventBus.On("Publish", mock.AnythingOfType("events.AccrualCompleteEvent")).Return()

	run, err := service.RunAccrualTick(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), run.TotalCredited)

	// No zero-credit writes.
	mockAccountRepo.AssertNotCalled(t, "AddCoins")
}
