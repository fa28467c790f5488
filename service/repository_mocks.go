package service

import (
	"context"
	"time"

	"cardbot/events"
	"cardbot/models"

	"github.com/stretchr/testify/mock"
)

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Card), args.Error(1)
}

func (m *MockCardRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID int64) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, userID int64) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) AddCoins(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) DeductCoins(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) StampFreePack(ctx context.Context, userID int64, now time.Time, cooldown time.Duration) (bool, error) {
	args := m.Called(ctx, userID, now, cooldown)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Insert(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListByOwner(ctx context.Context, userID int64) ([]*models.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) TransferOwner(ctx context.Context, itemID, fromUserID, toUserID int64) (bool, error) {
	args := m.Called(ctx, itemID, fromUserID, toUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) SumIncomeByOwner(ctx context.Context) ([]*models.OwnerIncome, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OwnerIncome), args.Error(1)
}

// MockTradeOfferRepository is a mock implementation of TradeOfferRepository
type MockTradeOfferRepository struct {
	mock.Mock
}

func (m *MockTradeOfferRepository) Create(ctx context.Context, offer *models.TradeOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockTradeOfferRepository) GetByID(ctx context.Context, id int64) (*models.TradeOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TradeOffer), args.Error(1)
}

func (m *MockTradeOfferRepository) ListPendingByUser(ctx context.Context, userID int64) ([]*models.TradeOffer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TradeOffer), args.Error(1)
}

func (m *MockTradeOfferRepository) MarkResolved(ctx context.Context, id int64, status models.TradeStatus, resolvedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, status, resolvedAt)
	return args.Bool(0), args.Error(1)
}

// MockAccrualRunRepository is a mock implementation of AccrualRunRepository
type MockAccrualRunRepository struct {
	mock.Mock
}

func (m *MockAccrualRunRepository) Create(ctx context.Context, run *models.AccrualRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockAccrualRunRepository) GetLatest(ctx context.Context) (*models.AccrualRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccrualRun), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// wired in with SetRepositories; Begin/Commit/Rollback go through the
// usual expectation machinery.
type MockUnitOfWork struct {
	mock.Mock

	cardRepo       CardRepository
	accountRepo    AccountRepository
	inventoryRepo  InventoryRepository
	tradeOfferRepo TradeOfferRepository
	accrualRunRepo AccrualRunRepository
	eventBus       EventPublisher
}

// SetRepositories wires the mock repositories the unit of work hands out.
// Pass nil for repositories the test never touches.
func (m *MockUnitOfWork) SetRepositories(
	cardRepo CardRepository,
	accountRepo AccountRepository,
	inventoryRepo InventoryRepository,
	tradeOfferRepo TradeOfferRepository,
	accrualRunRepo AccrualRunRepository,
	eventBus EventPublisher,
) {
	m.cardRepo = cardRepo
	m.accountRepo = accountRepo
	m.inventoryRepo = inventoryRepo
	m.tradeOfferRepo = tradeOfferRepo
	m.accrualRunRepo = accrualRunRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) CardRepository() CardRepository {
	return m.cardRepo
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) InventoryRepository() InventoryRepository {
	return m.inventoryRepo
}

func (m *MockUnitOfWork) TradeOfferRepository() TradeOfferRepository {
	return m.tradeOfferRepo
}

func (m *MockUnitOfWork) AccrualRunRepository() AccrualRunRepository {
	return m.accrualRunRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
