package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	gamodels "giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/features/member/models"
	"giveaway-club-backend/internal/platform/prices"
)

func boolPtr(v bool) *bool { return &v }

func emptyPrices() *prices.Index {
	return prices.NewIndex(nil)
}

func fcvWin(name string, proven bool) models.WonEntry {
	return models.WonEntry{
		Name:        name,
		Link:        "https://example.com/giveaway/" + name,
		CVStatus:    gamodels.CVFull,
		Status:      "received",
		ProofOfPlay: proven,
	}
}

func fcvSend(name string, winners int) models.CreatedEntry {
	entry := models.CreatedEntry{
		Name:       name,
		Link:       "https://example.com/giveaway/" + name,
		CVStatus:   gamodels.CVFull,
		Copies:     winners,
		HadWinners: boolPtr(true),
	}
	for i := 0; i < winners; i++ {
		entry.Winners = append(entry.Winners, models.CreatedWinner{
			Name: "winner", Status: "received", Activated: true,
		})
	}
	return entry
}

func TestGiveawayRatio(t *testing.T) {
	tests := []struct {
		name     string
		won      []models.WonEntry
		created  []models.CreatedEntry
		expected float64
	}{
		{
			name:     "three unproven wins and no sends",
			won:      []models.WonEntry{fcvWin("a", false), fcvWin("b", false), fcvWin("c", false)},
			expected: -1,
		},
		{
			name:     "three proven wins cost nothing",
			won:      []models.WonEntry{fcvWin("a", true), fcvWin("b", true), fcvWin("c", true)},
			expected: 0,
		},
		{
			name:     "one send offsets three unproven wins",
			won:      []models.WonEntry{fcvWin("a", false), fcvWin("b", false), fcvWin("c", false)},
			created:  []models.CreatedEntry{fcvSend("d", 1)},
			expected: 0,
		},
		{
			name:     "five unproven wins against one send",
			won:      []models.WonEntry{fcvWin("a", false), fcvWin("b", false), fcvWin("c", false), fcvWin("d", false), fcvWin("e", false)},
			created:  []models.CreatedEntry{fcvSend("f", 1)},
			expected: -0.667,
		},
	}

	svc := NewStatsService(emptyPrices())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := &models.Member{
				Username:         "player",
				GiveawaysWon:     tt.won,
				GiveawaysCreated: tt.created,
			}
			svc.CalculateStats(member)
			assert.InDelta(t, tt.expected, member.Stats.GiveawayRatio, 0.001)
		})
	}
}

func TestRatioIgnoresReducedAndNoValue(t *testing.T) {
	rcv := fcvWin("r", false)
	rcv.CVStatus = gamodels.CVReduced
	ncv := fcvWin("n", false)
	ncv.CVStatus = gamodels.CVNone

	member := &models.Member{
		Username:     "player",
		GiveawaysWon: []models.WonEntry{rcv, ncv},
	}

	NewStatsService(emptyPrices()).CalculateStats(member)

	assert.Equal(t, float64(0), member.Stats.GiveawayRatio)
	assert.Equal(t, 1, member.Stats.RCVReceivedCount)
	assert.Equal(t, 1, member.Stats.NCVReceivedCount)
	assert.Equal(t, 0, member.Stats.FCVReceivedCount)
}

func TestRealValues(t *testing.T) {
	index := prices.NewIndex([]prices.GamePrice{
		{Name: "Sent Game", PriceUSDFull: 3000, PriceUSDReduced: 1500},
		{Name: "Full Win", PriceUSDFull: 1000, PriceUSDReduced: 500},
		{Name: "Reduced Win", PriceUSDFull: 2500, PriceUSDReduced: 1000},
	})

	reduced := fcvWin("rw", true)
	reduced.Name = "Reduced Win"
	reduced.CVStatus = gamodels.CVReduced

	full := fcvWin("fw", true)
	full.Name = "Full Win"

	sent := fcvSend("sg", 1)
	sent.Name = "Sent Game"

	member := &models.Member{
		Username:         "player",
		GiveawaysWon:     []models.WonEntry{full, reduced},
		GiveawaysCreated: []models.CreatedEntry{sent},
	}

	NewStatsService(index).CalculateStats(member)

	assert.Equal(t, float64(30), member.Stats.RealTotalSentValue)
	assert.Equal(t, float64(20), member.Stats.RealTotalReceivedValue)
	assert.Equal(t, float64(10), member.Stats.RealTotalValueDifference)
	assert.Equal(t, 1, member.Stats.RealTotalSentCount)
	assert.Equal(t, 1, member.Stats.RealTotalReceivedCount)
	assert.Equal(t, 0, member.Stats.RealTotalGiftDifference)
}

func TestRealCountsAreFullValueOnly(t *testing.T) {
	reducedWin := fcvWin("r", true)
	reducedWin.CVStatus = gamodels.CVReduced

	reducedSend := fcvSend("rs", 1)
	reducedSend.CVStatus = gamodels.CVReduced

	member := &models.Member{
		Username:         "player",
		GiveawaysWon:     []models.WonEntry{fcvWin("f", true), reducedWin},
		GiveawaysCreated: []models.CreatedEntry{fcvSend("fs", 1), reducedSend},
	}
	NewStatsService(emptyPrices()).CalculateStats(member)

	assert.Equal(t, 1, member.Stats.RealTotalReceivedCount)
	assert.Equal(t, 1, member.Stats.RealTotalSentCount)
	assert.Equal(t, 1, member.Stats.RCVReceivedCount)
	assert.Equal(t, 1, member.Stats.RCVSentCount)
	assert.Equal(t, member.Stats.FCVGiftDifference, member.Stats.RealTotalGiftDifference)
}

func TestSentSideCounting(t *testing.T) {
	t.Run("each activated winner counts", func(t *testing.T) {
		entry := fcvSend("multi", 3)
		entry.Winners[2].Activated = false
		entry.Winners[2].Status = "awaiting_feedback"

		member := &models.Member{
			Username:         "player",
			GiveawaysCreated: []models.CreatedEntry{entry},
		}
		NewStatsService(emptyPrices()).CalculateStats(member)

		assert.Equal(t, 2, member.Stats.FCVSentCount)
	})

	t.Run("open giveaways do not count yet", func(t *testing.T) {
		entry := fcvSend("open", 1)
		entry.HadWinners = nil

		member := &models.Member{
			Username:         "player",
			GiveawaysCreated: []models.CreatedEntry{entry},
		}
		NewStatsService(emptyPrices()).CalculateStats(member)

		assert.Equal(t, 0, member.Stats.FCVSentCount)
		assert.Equal(t, 1, member.Stats.GiveawaysCreated)
	})

	t.Run("shared giveaways route to shared counters", func(t *testing.T) {
		sentShared := fcvSend("ss", 2)
		sentShared.IsShared = true
		wonShared := fcvWin("ws", false)
		wonShared.IsShared = true

		member := &models.Member{
			Username:         "player",
			GiveawaysCreated: []models.CreatedEntry{sentShared},
			GiveawaysWon:     []models.WonEntry{wonShared},
		}
		NewStatsService(emptyPrices()).CalculateStats(member)

		assert.Equal(t, 2, member.Stats.SharedSentCount)
		assert.Equal(t, 1, member.Stats.SharedReceivedCount)
		assert.Equal(t, 0, member.Stats.FCVSentCount)
		assert.Equal(t, 0, member.Stats.FCVReceivedCount)
		assert.Equal(t, float64(0), member.Stats.GiveawayRatio, "shared wins never cost ratio")
	})
}

func TestNoEntriesCount(t *testing.T) {
	ended := fcvSend("a", 1)
	flopped := models.CreatedEntry{
		Name: "b", CVStatus: gamodels.CVFull, HadWinners: boolPtr(false),
	}
	open := models.CreatedEntry{Name: "c", CVStatus: gamodels.CVFull}

	member := &models.Member{
		Username:         "player",
		GiveawaysCreated: []models.CreatedEntry{ended, flopped, open},
	}
	NewStatsService(emptyPrices()).CalculateStats(member)

	assert.Equal(t, 3, member.Stats.GiveawaysCreated)
	assert.Equal(t, 1, member.Stats.GiveawaysWithNoEntries)
}

func TestAchievements(t *testing.T) {
	playData := func(unlocked, total int, noStats bool) *models.PlayData {
		pd := &models.PlayData{
			Owned:                total > 0,
			AchievementsUnlocked: unlocked,
			AchievementsTotal:    total,
			HasNoAvailableStats:  noStats,
		}
		if total > 0 {
			pd.AchievementsPercentage = float64(unlocked) / float64(total) * 100
		}
		return pd
	}

	t.Run("average and weighted totals diverge", func(t *testing.T) {
		small := fcvWin("small", true)
		small.PlayData = playData(5, 10, false) // 50%
		big := fcvWin("big", true)
		big.PlayData = playData(0, 90, false) // 0%

		member := &models.Member{
			Username:     "player",
			GiveawaysWon: []models.WonEntry{small, big},
		}
		NewStatsService(emptyPrices()).CalculateStats(member)

		assert.InDelta(t, 25, member.Stats.AverageAchievementsPercentage, 0.01)
		assert.InDelta(t, 5, member.Stats.TotalAchievementsPercentage, 0.01)
		assert.False(t, member.Stats.HasMissingAchievementsData)
	})

	t.Run("real variants exclude shared and non-full wins", func(t *testing.T) {
		real := fcvWin("real", true)
		real.PlayData = playData(10, 10, false) // 100%

		shared := fcvWin("shared", true)
		shared.IsShared = true
		shared.PlayData = playData(0, 10, false) // 0%

		member := &models.Member{
			Username:     "player",
			GiveawaysWon: []models.WonEntry{real, shared},
		}
		NewStatsService(emptyPrices()).CalculateStats(member)

		assert.InDelta(t, 50, member.Stats.AverageAchievementsPercentage, 0.01)
		assert.InDelta(t, 100, member.Stats.RealAverageAchievementsPercentage, 0.01)
		assert.InDelta(t, 100, member.Stats.RealTotalAchievementsPercentage, 0.01)
	})

	t.Run("missing platform stats set the flag without contributing", func(t *testing.T) {
		hidden := fcvWin("hidden", true)
		hidden.PlayData = playData(0, 0, true)

		member := &models.Member{
			Username:     "player",
			GiveawaysWon: []models.WonEntry{hidden},
		}
		NewStatsService(emptyPrices()).CalculateStats(member)

		assert.True(t, member.Stats.HasMissingAchievementsData)
		assert.Equal(t, float64(0), member.Stats.AverageAchievementsPercentage)
	})

	t.Run("no qualifying games yields zero", func(t *testing.T) {
		member := &models.Member{Username: "player"}
		NewStatsService(emptyPrices()).CalculateStats(member)

		assert.Equal(t, float64(0), member.Stats.AverageAchievementsPercentage)
		assert.Equal(t, float64(0), member.Stats.TotalAchievementsPercentage)
	})
}

func TestPlatformTotalsCarriedThrough(t *testing.T) {
	member := &models.Member{
		Username: "player",
		Stats: models.UserStats{
			TotalSentCount:     42,
			TotalSentValue:     123.45,
			TotalReceivedCount: 7,
		},
	}
	NewStatsService(emptyPrices()).CalculateStats(member)

	assert.Equal(t, 42, member.Stats.TotalSentCount)
	assert.Equal(t, 123.45, member.Stats.TotalSentValue)
	assert.Equal(t, 7, member.Stats.TotalReceivedCount)
}

func TestLastActivityTimestamps(t *testing.T) {
	older := fcvSend("a", 1)
	older.CreatedTimestamp = 1000
	newer := fcvSend("b", 1)
	newer.CreatedTimestamp = 5000

	win := fcvWin("c", true)
	win.EndTimestamp = 3000

	member := &models.Member{
		Username:         "player",
		GiveawaysCreated: []models.CreatedEntry{older, newer},
		GiveawaysWon:     []models.WonEntry{win},
	}
	NewStatsService(emptyPrices()).CalculateStats(member)

	if assert.NotNil(t, member.Stats.LastGiveawayCreatedAt) {
		assert.Equal(t, int64(5000), *member.Stats.LastGiveawayCreatedAt)
	}
	if assert.NotNil(t, member.Stats.LastGiveawayWonAt) {
		assert.Equal(t, int64(3000), *member.Stats.LastGiveawayWonAt)
	}
}
