package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/features/giveaway/repository"
)

func newRepo(t *testing.T) (repository.GiveawayRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewGiveawayRepository(client), mr
}

func TestGiveawayRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		repo, _ := newRepo(t)

		giveaways := []*models.Giveaway{
			{ID: "aaa01", Name: "First", CVState: models.CVStateClassified, CVStatus: models.CVFull},
			{ID: "bbb02", Name: "Second"},
		}
		require.NoError(t, repo.SaveAll(ctx, giveaways))

		got, err := repo.GetByID(ctx, "aaa01")
		require.NoError(t, err)
		assert.Equal(t, "First", got.Name)
		assert.Equal(t, models.CVFull, got.CVStatus)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("missing id yields ErrNotFound", func(t *testing.T) {
		repo, _ := newRepo(t)

		_, err := repo.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("save stamps last_updated", func(t *testing.T) {
		repo, _ := newRepo(t)

		before, err := repo.LastUpdated(ctx)
		require.NoError(t, err)
		assert.True(t, before.IsZero())

		require.NoError(t, repo.SaveAll(ctx, []*models.Giveaway{{ID: "aaa01"}}))

		after, err := repo.LastUpdated(ctx)
		require.NoError(t, err)
		assert.False(t, after.IsZero())
	})

	t.Run("corrupt blobs are skipped on scan", func(t *testing.T) {
		repo, mr := newRepo(t)

		require.NoError(t, repo.SaveAll(ctx, []*models.Giveaway{{ID: "good1"}}))
		require.NoError(t, mr.Set("giveaway:bad01", "{not json"))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
