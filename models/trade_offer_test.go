package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTradeOffer_StateHelpers(t *testing.T) {
	offer := &TradeOffer{
		ID:            1,
		FromUserID:    100,
		ToUserID:      200,
		OfferedItemID: 7,
		Status:        TradeStatusPending,
	}

	assert.True(t, offer.IsPending())
	assert.True(t, offer.CanBeAcceptedBy(200))
	assert.False(t, offer.CanBeAcceptedBy(100), "offerer cannot accept their own offer")
	assert.True(t, offer.CanBeCancelledBy(100))
	assert.False(t, offer.CanBeCancelledBy(200), "recipient cannot cancel")

	resolvedAt := time.Now().UTC()
	offer.Status = TradeStatusAccepted
	offer.ResolvedAt = &resolvedAt

	assert.False(t, offer.IsPending())
	assert.False(t, offer.CanBeAcceptedBy(200))
	assert.False(t, offer.CanBeCancelledBy(100))
}

func TestAccount_FreePackAvailableAt(t *testing.T) {
	claimed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	account := &Account{
		UserID:         100,
		LastFreePackAt: claimed,
	}

	assert.Equal(t, claimed.Add(30*time.Minute), account.FreePackAvailableAt(30*time.Minute))

	// An account that never claimed is immediately eligible.
	fresh := &Account{UserID: 200, LastFreePackAt: FreePackNever}
	assert.True(t, fresh.FreePackAvailableAt(30*time.Minute).Before(time.Now()))
}
