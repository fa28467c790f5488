package service

import (
	"context"
	"fmt"
	"time"

	"cardbot/events"
	"cardbot/models"
)

// tradeService implements the TradeService interface
type tradeService struct {
	uowFactory UnitOfWorkFactory
}

// NewTradeService creates a new trade service
func NewTradeService(uowFactory UnitOfWorkFactory) TradeService {
	return &tradeService{
		uowFactory: uowFactory,
	}
}

// CreateOffer proposes gifting one owned item to another account. Only the
// current owner of the item may offer it.
func (s *tradeService) CreateOffer(ctx context.Context, fromUserID, offeredItemID, toUserID int64) (*models.TradeOffer, error) {
	if fromUserID == toUserID {
		return nil, fmt.Errorf("cannot offer a trade to yourself")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("create trade offer", err)
	}
	defer uow.Rollback()

	item, err := uow.InventoryRepository().GetByID(ctx, offeredItemID)
	if err != nil {
		return nil, storageErr("create trade offer", err)
	}
	if item == nil || item.OwnerUserID != fromUserID {
		return nil, ErrNotOwner
	}

	recipient, err := uow.AccountRepository().GetByUserID(ctx, toUserID)
	if err != nil {
		return nil, storageErr("create trade offer", err)
	}
	if recipient == nil {
		return nil, ErrAccountNotFound
	}

	offer := &models.TradeOffer{
		FromUserID:    fromUserID,
		ToUserID:      toUserID,
		OfferedItemID: offeredItemID,
	}
	if err := uow.TradeOfferRepository().Create(ctx, offer); err != nil {
		return nil, storageErr("create trade offer", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageErr("create trade offer", err)
	}

	return offer, nil
}

// Accept resolves a pending offer and transfers the item to the recipient.
// The pending-status predicate on the resolution update makes it the
// winner-takes-all step: ownership changes exactly once per offer. If the
// offerer no longer owns the item the whole transaction rolls back and the
// offer stays pending.
func (s *tradeService) Accept(ctx context.Context, offerID, byUserID int64) (*models.TradeOffer, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("accept trade offer", err)
	}
	defer uow.Rollback()

	offer, err := uow.TradeOfferRepository().GetByID(ctx, offerID)
	if err != nil {
		return nil, storageErr("accept trade offer", err)
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	if offer.ToUserID != byUserID {
		return nil, ErrNotRecipient
	}

	now := time.Now().UTC()

	resolved, err := uow.TradeOfferRepository().MarkResolved(ctx, offerID, models.TradeStatusAccepted, now)
	if err != nil {
		return nil, storageErr("accept trade offer", err)
	}
	if !resolved {
		return nil, ErrAlreadyResolved
	}

	moved, err := uow.InventoryRepository().TransferOwner(ctx, offer.OfferedItemID, offer.FromUserID, offer.ToUserID)
	if err != nil {
		return nil, storageErr("accept trade offer", err)
	}
	if !moved {
		// Item changed hands since the offer was made. Roll back so the
		// resolution does not stick either.
		return nil, ErrItemNotOwned
	}

	offer.Status = models.TradeStatusAccepted
	offer.ResolvedAt = &now

	uow.EventBus().Publish(events.TradeResolvedEvent{
		OfferID:    offer.ID,
		FromUserID: offer.FromUserID,
		ToUserID:   offer.ToUserID,
		ItemID:     offer.OfferedItemID,
		Status:     models.TradeStatusAccepted,
	})

	if err := uow.Commit(); err != nil {
		return nil, storageErr("accept trade offer", err)
	}

	return offer, nil
}

// Reject resolves a pending offer without moving the item; recipient only
func (s *tradeService) Reject(ctx context.Context, offerID, byUserID int64) (*models.TradeOffer, error) {
	return s.resolve(ctx, offerID, byUserID, models.TradeStatusRejected)
}

// Cancel withdraws a pending offer; offerer only
func (s *tradeService) Cancel(ctx context.Context, offerID, byUserID int64) (*models.TradeOffer, error) {
	return s.resolve(ctx, offerID, byUserID, models.TradeStatusCancelled)
}

// resolve transitions a pending offer to a terminal state that does not
// transfer ownership
func (s *tradeService) resolve(ctx context.Context, offerID, byUserID int64, status models.TradeStatus) (*models.TradeOffer, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("resolve trade offer", err)
	}
	defer uow.Rollback()

	offer, err := uow.TradeOfferRepository().GetByID(ctx, offerID)
	if err != nil {
		return nil, storageErr("resolve trade offer", err)
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}

	switch status {
	case models.TradeStatusRejected:
		if offer.ToUserID != byUserID {
			return nil, ErrNotRecipient
		}
	case models.TradeStatusCancelled:
		if offer.FromUserID != byUserID {
			return nil, ErrNotOwner
		}
	default:
		return nil, fmt.Errorf("cannot resolve trade offer to status %s", status)
	}

	now := time.Now().UTC()

	resolved, err := uow.TradeOfferRepository().MarkResolved(ctx, offerID, status, now)
	if err != nil {
		return nil, storageErr("resolve trade offer", err)
	}
	if !resolved {
		return nil, ErrAlreadyResolved
	}

	offer.Status = status
	offer.ResolvedAt = &now

	uow.EventBus().Publish(events.TradeResolvedEvent{
		OfferID:    offer.ID,
		FromUserID: offer.FromUserID,
		ToUserID:   offer.ToUserID,
		ItemID:     offer.OfferedItemID,
		Status:     status,
	})

	if err := uow.Commit(); err != nil {
		return nil, storageErr("resolve trade offer", err)
	}

	return offer, nil
}

// ListOffers returns the user's pending offers, both directions
func (s *tradeService) ListOffers(ctx context.Context, userID int64) ([]*models.TradeOffer, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageErr("list trade offers", err)
	}
	defer uow.Rollback()

	offers, err := uow.TradeOfferRepository().ListPendingByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("list trade offers", err)
	}

	return offers, nil
}
