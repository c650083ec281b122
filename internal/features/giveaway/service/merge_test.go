package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"giveaway-club-backend/internal/features/giveaway/models"
)

func TestMerge(t *testing.T) {
	t.Run("nil sides pass through", func(t *testing.T) {
		g := &models.Giveaway{ID: "a"}
		assert.Same(t, g, Merge(nil, g))
		assert.Same(t, g, Merge(g, nil))
	})

	t.Run("scraped fields refresh, cv status is write-once", func(t *testing.T) {
		existing := &models.Giveaway{
			ID:         "ga001",
			Name:       "Old Title",
			EntryCount: 10,
			CVState:    models.CVStateClassified,
			CVStatus:   models.CVReduced,
		}
		fresh := &models.Giveaway{
			ID:         "ga001",
			Name:       "New Title",
			EntryCount: 25,
			CVState:    models.CVStateClassified,
			CVStatus:   models.CVFull,
		}

		merged := Merge(existing, fresh)

		assert.Equal(t, "New Title", merged.Name)
		assert.Equal(t, 25, merged.EntryCount)
		assert.Equal(t, models.CVReduced, merged.CVStatus)
	})

	t.Run("unclassified stored record takes the fresh status", func(t *testing.T) {
		existing := &models.Giveaway{ID: "ga001"}
		fresh := &models.Giveaway{
			ID:       "ga001",
			CVState:  models.CVStateClassified,
			CVStatus: models.CVNone,
		}

		merged := Merge(existing, fresh)
		assert.Equal(t, models.CVNone, merged.CVStatus)
	})

	t.Run("detail flags survive a shallow rescrape", func(t *testing.T) {
		existing := &models.Giveaway{
			ID:           "ga001",
			IsShared:     true,
			RequiredPlay: true,
			EventType:    "monthly",
			EndTimestamp: 9000,
		}
		fresh := &models.Giveaway{ID: "ga001"}

		merged := Merge(existing, fresh)

		assert.True(t, merged.IsShared)
		assert.True(t, merged.RequiredPlay)
		assert.Equal(t, "monthly", merged.EventType)
		assert.Equal(t, int64(9000), merged.EndTimestamp)
	})
}
