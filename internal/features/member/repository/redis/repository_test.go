package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giveaway-club-backend/internal/features/member/models"
	"giveaway-club-backend/internal/features/member/repository"
)

func newClient(t *testing.T) *goredis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return client
}

func TestMemberRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip and delete", func(t *testing.T) {
		repo := NewMemberRepository(newClient(t))

		members := []*models.Member{
			{Username: "alice", Stats: models.UserStats{FCVSentCount: 2}},
			{Username: "bob"},
		}
		require.NoError(t, repo.SaveAll(ctx, members))

		got, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2, got.Stats.FCVSentCount)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		require.NoError(t, repo.Delete(ctx, "alice"))
		_, err = repo.Get(ctx, "alice")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("save stamps last_updated", func(t *testing.T) {
		repo := NewMemberRepository(newClient(t))

		require.NoError(t, repo.SaveAll(ctx, []*models.Member{{Username: "alice"}}))

		stamp, err := repo.LastUpdated(ctx)
		require.NoError(t, err)
		assert.False(t, stamp.IsZero())
	})
}

func TestExMemberRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewExMemberRepository(newClient(t))

	ex := &models.ExMember{
		Member: models.Member{Username: "alice", CountryCode: "DE"},
		LeftAt: 12345,
	}
	require.NoError(t, repo.Save(ctx, ex))

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), got.LeftAt)
	assert.Equal(t, "DE", got.CountryCode)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.Get(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
