package service

import (
	"math"

	gamodels "giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/features/member/models"
	"giveaway-club-backend/internal/platform/prices"
)

// StatsService recomputes the derived statistics block on every run.
// Platform totals scraped off the member's public profile are carried
// through untouched.
type StatsService struct {
	prices *prices.Index
}

func NewStatsService(index *prices.Index) *StatsService {
	return &StatsService{prices: index}
}

// CalculateStats rebuilds member.Stats from the won and created lists.
// A game missing from the price index contributes its counts but no
// value; that is a data gap, not an error.
func (s *StatsService) CalculateStats(member *models.Member) {
	stats := models.UserStats{
		TotalSentCount:       member.Stats.TotalSentCount,
		TotalSentValue:       member.Stats.TotalSentValue,
		TotalReceivedCount:   member.Stats.TotalReceivedCount,
		TotalReceivedValue:   member.Stats.TotalReceivedValue,
		TotalGiftDifference:  member.Stats.TotalGiftDifference,
		TotalValueDifference: member.Stats.TotalValueDifference,
	}

	var sentCents, receivedCents int64

	for i := range member.GiveawaysCreated {
		created := &member.GiveawaysCreated[i]

		stats.GiveawaysCreated++
		if created.HadWinners != nil && !*created.HadWinners {
			stats.GiveawaysWithNoEntries++
		}
		if stats.LastGiveawayCreatedAt == nil || created.CreatedTimestamp > *stats.LastGiveawayCreatedAt {
			ts := created.CreatedTimestamp
			stats.LastGiveawayCreatedAt = &ts
		}

		if created.HadWinners == nil {
			continue
		}

		if created.IsShared {
			stats.SharedSentCount += created.Copies
			continue
		}

		for _, w := range created.Winners {
			if !w.Activated {
				continue
			}
			switch created.CVStatus {
			case gamodels.CVFull:
				stats.FCVSentCount++
				sentCents += s.fullPrice(created.AppID, created.Name)
			case gamodels.CVReduced:
				stats.RCVSentCount++
				sentCents += s.reducedPrice(created.AppID, created.Name)
			case gamodels.CVNone:
				stats.NCVSentCount++
			}
		}
	}

	unprovenFCVWins := 0

	for i := range member.GiveawaysWon {
		won := &member.GiveawaysWon[i]

		if stats.LastGiveawayWonAt == nil || won.EndTimestamp > *stats.LastGiveawayWonAt {
			ts := won.EndTimestamp
			stats.LastGiveawayWonAt = &ts
		}

		if won.IsShared {
			stats.SharedReceivedCount++
			continue
		}

		switch won.CVStatus {
		case gamodels.CVFull:
			stats.FCVReceivedCount++
			receivedCents += s.fullPrice(won.AppID, won.Name)
			if !won.ProofOfPlay {
				unprovenFCVWins++
			}
		case gamodels.CVReduced:
			stats.RCVReceivedCount++
			receivedCents += s.reducedPrice(won.AppID, won.Name)
		case gamodels.CVNone:
			stats.NCVReceivedCount++
		}
	}

	stats.FCVGiftDifference = stats.FCVSentCount - stats.FCVReceivedCount
	stats.GiveawayRatio = float64(stats.FCVSentCount) - float64(unprovenFCVWins)/3

	// Real counts track full-value activity only; reduced and no-value
	// entries keep their own buckets but carry no weight here.
	stats.RealTotalSentCount = stats.FCVSentCount
	stats.RealTotalReceivedCount = stats.FCVReceivedCount
	stats.RealTotalGiftDifference = stats.RealTotalSentCount - stats.RealTotalReceivedCount

	stats.RealTotalSentValue = round2(float64(sentCents) / 100)
	stats.RealTotalReceivedValue = round2(float64(receivedCents) / 100)
	stats.RealTotalValueDifference = round2(stats.RealTotalSentValue - stats.RealTotalReceivedValue)

	s.calculateAchievements(member, &stats)

	member.Stats = stats
}

// calculateAchievements aggregates achievement progress over won games
// that carry play data. The "total" variants weight by game size; the
// "real" variants restrict the set to non-shared full-value wins.
func (s *StatsService) calculateAchievements(member *models.Member, stats *models.UserStats) {
	var (
		sumPct, realSumPct         float64
		games, realGames           int
		unlocked, possible         int
		realUnlocked, realPossible int
	)

	for i := range member.GiveawaysWon {
		won := &member.GiveawaysWon[i]
		pd := won.PlayData
		if pd == nil {
			continue
		}
		if pd.HasNoAvailableStats {
			stats.HasMissingAchievementsData = true
			continue
		}
		if pd.AchievementsTotal == 0 {
			continue
		}

		sumPct += pd.AchievementsPercentage
		games++
		unlocked += pd.AchievementsUnlocked
		possible += pd.AchievementsTotal

		if !won.IsShared && won.CVStatus == gamodels.CVFull {
			realSumPct += pd.AchievementsPercentage
			realGames++
			realUnlocked += pd.AchievementsUnlocked
			realPossible += pd.AchievementsTotal
		}
	}

	if games > 0 {
		stats.AverageAchievementsPercentage = round2(sumPct / float64(games))
	}
	if possible > 0 {
		stats.TotalAchievementsPercentage = round2(float64(unlocked) / float64(possible) * 100)
	}
	if realGames > 0 {
		stats.RealAverageAchievementsPercentage = round2(realSumPct / float64(realGames))
	}
	if realPossible > 0 {
		stats.RealTotalAchievementsPercentage = round2(float64(realUnlocked) / float64(realPossible) * 100)
	}
}

func (s *StatsService) fullPrice(appID *int, name string) int64 {
	if p := s.prices.Lookup(appID, name); p != nil {
		return p.PriceUSDFull
	}
	return 0
}

func (s *StatsService) reducedPrice(appID *int, name string) int64 {
	if p := s.prices.Lookup(appID, name); p != nil {
		return p.PriceUSDReduced
	}
	return 0
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
