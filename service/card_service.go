package service

import (
	"context"
	"fmt"
	"strings"

	"cardbot/models"
)

// cardService implements the CardService interface
type cardService struct {
	uowFactory UnitOfWorkFactory
	rarities   models.RarityTable
}

// NewCardService creates a new card service
func NewCardService(uowFactory UnitOfWorkFactory, rarities models.RarityTable) CardService {
	return &cardService{
		uowFactory: uowFactory,
		rarities:   rarities,
	}
}

// CreateCardDefinition adds a card to the catalog
func (s *cardService) CreateCardDefinition(ctx context.Context, name string, rarity models.Rarity, coinsPerHour int64, artworkRef *string) (*models.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("card name must not be empty")
	}
	if !s.rarities.Contains(rarity) {
		return nil, fmt.Errorf("unknown rarity %q", rarity)
	}
	if coinsPerHour < 0 {
		return nil, fmt.Errorf("coins per hour must not be negative")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("create card definition", err)
	}
	defer uow.Rollback()

	card := &models.Card{
		Name:         name,
		Rarity:       rarity,
		CoinsPerHour: coinsPerHour,
		ArtworkRef:   artworkRef,
	}
	if err := uow.CardRepository().Create(ctx, card); err != nil {
		return nil, storageErr("create card definition", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("create card definition", err)
	}

	return card, nil
}

// ListCardDefinitions returns the whole catalog
func (s *cardService) ListCardDefinitions(ctx context.Context) ([]*models.Card, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("list card definitions", err)
	}
	defer uow.Rollback()

	cards, err := uow.CardRepository().GetAll(ctx)
	if err != nil {
		return nil, storageErr("list card definitions", err)
	}

	return cards, nil
}

// DeleteCardDefinition removes a card from the catalog. Inventory items
// referencing it cascade away with it.
func (s *cardService) DeleteCardDefinition(ctx context.Context, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storageErr("delete card definition", err)
	}
	defer uow.Rollback()

	card, err := uow.CardRepository().GetByID(ctx, id)
	if err != nil {
		return storageErr("delete card definition", err)
	}
	if card == nil {
		return ErrCardNotFound
	}

	if err := uow.CardRepository().Delete(ctx, id); err != nil {
		return storageErr("delete card definition", err)
	}

	if err := uow.Commit(); err != nil {
		return storageErr("delete card definition", err)
	}

	return nil
}
