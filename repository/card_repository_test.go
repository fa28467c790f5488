package repository_test

import (
	"context"
	"testing"

	"cardbot/models"
	"cardbot/repository"
	"cardbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	cardRepo := repository.NewCardRepository(testDB.DB)

	t.Run("create and get", func(t *testing.T) {
		artwork := "https://cards.example/phoenix.png"
		card := &models.Card{
			Name:         "Sun Phoenix",
			Rarity:       models.RarityLegendary,
			CoinsPerHour: 20,
			ArtworkRef:   &artwork,
		}
		require.NoError(t, cardRepo.Create(ctx, card))
		assert.NotZero(t, card.ID)

		got, err := cardRepo.GetByID(ctx, card.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Sun Phoenix", got.Name)
		assert.Equal(t, models.RarityLegendary, got.Rarity)
		require.NotNil(t, got.ArtworkRef)
		assert.Equal(t, artwork, *got.ArtworkRef)
	})

	t.Run("get all in insertion order", func(t *testing.T) {
		testutil.CreateTestCard(t, testDB.DB, "Swamp Gator", models.RarityCommon, 1)
		testutil.CreateTestCard(t, testDB.DB, "River Drake", models.RarityRare, 3)

		cards, err := cardRepo.GetAll(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(cards), 3)

		for i := 1; i < len(cards); i++ {
			assert.Less(t, cards[i-1].ID, cards[i].ID)
		}
	})

	t.Run("get missing card returns nil", func(t *testing.T) {
		got, err := cardRepo.GetByID(ctx, 987654)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete cascades inventory copies", func(t *testing.T) {
		testutil.CreateTestAccount(t, testDB.DB, 111111, 0)
		card := testutil.CreateTestCard(t, testDB.DB, "Moss Golem", models.RarityCommon, 1)
		item := testutil.CreateTestInventoryItem(t, testDB.DB, 111111, card.ID)

		require.NoError(t, cardRepo.Delete(ctx, card.ID))

		got, err := cardRepo.GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		inventoryRepo := repository.NewInventoryRepository(testDB.DB)
		gotItem, err := inventoryRepo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, gotItem, "copies must cascade with the definition")
	})

	t.Run("delete missing card fails", func(t *testing.T) {
		assert.Error(t, cardRepo.Delete(ctx, 987654))
	})
}
