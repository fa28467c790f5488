package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"cardbot/events"
	"cardbot/models"
)

// packService implements the PackService interface
type packService struct {
	uowFactory UnitOfWorkFactory
	rarities   models.RarityTable
	cooldown   time.Duration
	packSize   int

	// roll returns a uniform value in [0, n). Swapped out in tests.
	roll func(n int64) int64
}

// NewPackService creates a new pack service
func NewPackService(uowFactory UnitOfWorkFactory, rarities models.RarityTable, cooldown time.Duration, packSize int) PackService {
	return &packService{
		uowFactory: uowFactory,
		rarities:   rarities,
		cooldown:   cooldown,
		packSize:   packSize,
		roll:       rand.Int63n,
	}
}

// ClaimFreePack grants the fixed-size free pack, enforcing the per-account
// cooldown. The conditional stamp of last_free_pack_at is the serialization
// point: concurrent claims inside the window see zero rows updated and fail
// without drawing anything.
func (s *packService) ClaimFreePack(ctx context.Context, userID int64) ([]*models.Card, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("claim free pack", err)
	}
	defer uow.Rollback()

	now := time.Now().UTC()

	stamped, err := uow.AccountRepository().StampFreePack(ctx, userID, now, s.cooldown)
	if err != nil {
		return nil, storageErr("claim free pack", err)
	}

	if !stamped {
		account, err := uow.AccountRepository().GetByUserID(ctx, userID)
		if err != nil {
			return nil, storageErr("claim free pack", err)
		}
		if account == nil {
			return nil, ErrAccountNotFound
		}
		remaining := account.FreePackAvailableAt(s.cooldown).Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		return nil, &CooldownError{Remaining: remaining}
	}

	cards, err := s.drawPack(ctx, uow, userID, s.packSize)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.PackOpenedEvent{
		UserID: userID,
		Cards:  cards,
		Price:  0,
		IsFree: true,
	})

	if err := uow.Commit(); err != nil {
		return nil, storageErr("claim free pack", err)
	}

	return cards, nil
}

// PurchasePack debits price and grants count cards in one transaction. If
// the draw fails the debit rolls back with it.
func (s *packService) PurchasePack(ctx context.Context, userID int64, count int, price int64) ([]*models.Card, error) {
	if count <= 0 {
		return nil, fmt.Errorf("pack count must be positive")
	}
	if price <= 0 {
		return nil, fmt.Errorf("pack price must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("purchase pack", err)
	}
	defer uow.Rollback()

	if err := uow.AccountRepository().DeductCoins(ctx, userID, price); err != nil {
		if errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrAccountNotFound) {
			return nil, err
		}
		return nil, storageErr("purchase pack", err)
	}

	cards, err := s.drawPack(ctx, uow, userID, count)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.PackOpenedEvent{
		UserID: userID,
		Cards:  cards,
		Price:  price,
		IsFree: false,
	})

	if err := uow.Commit(); err != nil {
		return nil, storageErr("purchase pack", err)
	}

	return cards, nil
}

// drawPack draws count cards inside the caller's transaction and persists
// one inventory item per draw.
//
// With a catalog of at least count definitions, each slot rolls a rarity
// by weight and picks uniformly among that rarity's definitions, falling
// back to the whole catalog when the rolled rarity has none. With a
// smaller catalog the missing rarity is synthesized and persisted with
// its default income, so packs are fillable even before any cards exist.
func (s *packService) drawPack(ctx context.Context, uow UnitOfWork, userID int64, count int) ([]*models.Card, error) {
	catalog, err := uow.CardRepository().GetAll(ctx)
	if err != nil {
		return nil, storageErr("draw pack", err)
	}

	byRarity := make(map[models.Rarity][]*models.Card)
	for _, card := range catalog {
		byRarity[card.Rarity] = append(byRarity[card.Rarity], card)
	}

	bootstrap := len(catalog) < count

	drawn := make([]*models.Card, 0, count)
	for i := 0; i < count; i++ {
		rarity := s.rarities.Pick(s.roll(s.rarities.TotalWeight()))

		var card *models.Card
		candidates := byRarity[rarity]
		switch {
		case len(candidates) > 0:
			card = candidates[s.roll(int64(len(candidates)))]
		case bootstrap:
			card = &models.Card{
				Name:         fmt.Sprintf("Starter %s card", rarity),
				Rarity:       rarity,
				CoinsPerHour: s.rarities.DefaultIncome(rarity),
			}
			if err := uow.CardRepository().Create(ctx, card); err != nil {
				return nil, storageErr("draw pack", err)
			}
			byRarity[rarity] = append(byRarity[rarity], card)
			catalog = append(catalog, card)
		default:
			card = catalog[s.roll(int64(len(catalog)))]
		}

		item := &models.InventoryItem{
			OwnerUserID: userID,
			CardID:      card.ID,
		}
		if err := uow.InventoryRepository().Insert(ctx, item); err != nil {
			return nil, storageErr("draw pack", err)
		}

		drawn = append(drawn, card)
	}

	return drawn, nil
}
