package repository_test

import (
	"context"
	"testing"
	"time"

	"cardbot/events"
	"cardbot/models"
	"cardbot/repository"
	"cardbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	eventBus := events.NewBus()
	published := make(chan events.Event, 8)
	eventBus.Subscribe(events.EventTypeAccountCreated, func(ctx context.Context, event events.Event) {
		published <- event
	})

	factory := repository.NewUnitOfWorkFactory(testDB.DB, eventBus)

	t.Run("commit makes writes visible and flushes events", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		account, err := uow.AccountRepository().Create(ctx, 111111)
		require.NoError(t, err)
		require.NotNil(t, account)

		uow.EventBus().Publish(events.AccountCreatedEvent{UserID: 111111})

		require.NoError(t, uow.Commit())

		outside := repository.NewAccountRepository(testDB.DB)
		got, err := outside.GetByUserID(ctx, 111111)
		require.NoError(t, err)
		assert.NotNil(t, got)

		select {
		case event := <-published:
			created, ok := event.(events.AccountCreatedEvent)
			require.True(t, ok)
			assert.Equal(t, int64(111111), created.UserID)
		case <-time.After(2 * time.Second):
			t.Fatal("expected event to be flushed after commit")
		}
	})

	t.Run("rollback discards writes and events", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		_, err := uow.AccountRepository().Create(ctx, 222222)
		require.NoError(t, err)

		uow.EventBus().Publish(events.AccountCreatedEvent{UserID: 222222})

		require.NoError(t, uow.Rollback())

		outside := repository.NewAccountRepository(testDB.DB)
		got, err := outside.GetByUserID(ctx, 222222)
		require.NoError(t, err)
		assert.Nil(t, got)

		select {
		case event := <-published:
			t.Fatalf("no event expected after rollback, got %v", event)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("rollback after commit is a no-op", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		account, err := uow.AccountRepository().Create(ctx, 333333)
		require.NoError(t, err)
		require.NotNil(t, account)

		require.NoError(t, uow.Commit())
		assert.NoError(t, uow.Rollback())
	})

	t.Run("repositories before begin panic", func(t *testing.T) {
		uow := factory.Create()
		assert.Panics(t, func() {
			uow.AccountRepository()
		})
	})

	t.Run("transactional reads see uncommitted writes", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		card := &models.Card{Name: "Cave Imp", Rarity: models.RarityCommon, CoinsPerHour: 1}
		require.NoError(t, uow.CardRepository().Create(ctx, card))

		inside, err := uow.CardRepository().GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.NotNil(t, inside)

		outside := repository.NewCardRepository(testDB.DB)
		invisible, err := outside.GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Nil(t, invisible, "uncommitted writes must stay inside the transaction")
	})
}
