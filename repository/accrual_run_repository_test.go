package repository_test

import (
	"context"
	"testing"
	"time"

	"cardbot/models"
	"cardbot/repository"
	"cardbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccrualRunRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	accrualRepo := repository.NewAccrualRunRepository(testDB.DB)

	t.Run("latest of none is nil", func(t *testing.T) {
		got, err := accrualRepo.GetLatest(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("create and get latest", func(t *testing.T) {
		first := &models.AccrualRun{
			RanAt:            time.Now().UTC().Add(-time.Hour),
			TotalCredited:    11,
			AccountsCredited: 1,
			ExecutionSummary: map[string]interface{}{
				"owners_seen":      float64(1),
				"accounts_skipped": float64(0),
			},
		}
		require.NoError(t, accrualRepo.Create(ctx, first))
		assert.NotZero(t, first.ID)

		second := &models.AccrualRun{
			RanAt:            time.Now().UTC(),
			TotalCredited:    16,
			AccountsCredited: 2,
			ExecutionSummary: map[string]interface{}{
				"owners_seen":      float64(2),
				"accounts_skipped": float64(0),
			},
		}
		require.NoError(t, accrualRepo.Create(ctx, second))

		latest, err := accrualRepo.GetLatest(ctx)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, second.ID, latest.ID)
		assert.Equal(t, int64(16), latest.TotalCredited)
		assert.Equal(t, 2, latest.AccountsCredited)
		assert.Equal(t, second.ExecutionSummary, latest.ExecutionSummary)
	})
}
