package service

import (
	"context"
	"testing"

	"cardbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCardService_CreateCardDefinition_Success(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockCardRepo := new(MockCardRepository)

	mockUoW.SetRepositories(mockCardRepo, nil, nil, nil, nil, nil)

	service := NewCardService(mockFactory, models.DefaultRarityTable())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockCardRepo.On("Create", ctx, mock.MatchedBy(func(card *models.Card) bool {
		return card.Name == "Sun Phoenix" &&
			card.Rarity == models.RarityLegendary &&
			card.CoinsPerHour == 20
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Card).ID = 5
	})

	card, err := service.CreateCardDefinition(ctx, "Sun Phoenix", models.RarityLegendary, 20, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), card.ID)

	mockCardRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestCardService_CreateCardDefinition_Invalid(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewCardService(mockFactory, models.DefaultRarityTable())

	_, err := service.CreateCardDefinition(ctx, "", models.RarityCommon, 1, nil)
	assert.Error(t, err)

	_, err = service.CreateCardDefinition(ctx, "Sun Phoenix", models.Rarity("mythic"), 1, nil)
	assert.Error(t, err)

	_, err = service.CreateCardDefinition(ctx, "Sun Phoenix", models.RarityCommon, -1, nil)
	assert.Error(t, err)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestCardService_DeleteCardDefinition_Missing(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockCardRepo := new(MockCardRepository)

	mockUoW.SetRepositories(mockCardRepo, nil, nil, nil, nil, nil)

	service := NewCardService(mockFactory, models.DefaultRarityTable())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockCardRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	err := service.DeleteCardDefinition(ctx, 404)

	assert.ErrorIs(t, err, ErrCardNotFound)
	mockCardRepo.AssertNotCalled(t, "Delete")
}

func TestCardService_ListCardDefinitions(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockCardRepo := new(MockCardRepository)

	mockUoW.SetRepositories(mockCardRepo, nil, nil, nil, nil, nil)

	service := NewCardService(mockFactory, models.DefaultRarityTable())

	catalog := []*models.Card{
		{ID: 1, Name: "Swamp Gator", Rarity: models.RarityCommon, CoinsPerHour: 1},
		{ID: 5, Name: "Sun Phoenix", Rarity: models.RarityLegendary, CoinsPerHour: 20},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockCardRepo.On("GetAll", ctx).Return(catalog, nil)

	cards, err := service.ListCardDefinitions(ctx)

	assert.NoError(t, err)
	assert.Equal(t, catalog, cards)
}
