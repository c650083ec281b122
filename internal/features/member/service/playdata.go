package service

import (
	"context"
	"time"

	"giveaway-club-backend/internal/common/logger"
	"giveaway-club-backend/internal/features/member/models"
	"giveaway-club-backend/internal/platform/steam"
)

// SteamClient is the slice of the Steam API the refresh needs.
type SteamClient interface {
	GetGamePlayData(ctx context.Context, steamID string, appID int) (*steam.GamePlayData, error)
	CheckProfileVisibility(ctx context.Context, steamID string) (bool, error)
	GetPlayerCountryCode(ctx context.Context, steamID string) (string, error)
}

// PlayDataService refreshes the stored play snapshots on won games.
// Only wins that ended within the refresh window are re-queried; older
// snapshots are considered settled.
type PlayDataService struct {
	steam  SteamClient
	window time.Duration
}

func NewPlayDataService(client SteamClient, window time.Duration) *PlayDataService {
	return &PlayDataService{steam: client, window: window}
}

// Refresh updates play data in place for one member. A failed lookup
// leaves the prior snapshot untouched and moves on.
func (s *PlayDataService) Refresh(ctx context.Context, member *models.Member, now time.Time) {
	if member.SteamID == "" {
		return
	}

	visible, err := s.steam.CheckProfileVisibility(ctx, member.SteamID)
	if err != nil {
		logger.Warn().
			Str("member", member.Username).
			Err(err).
			Msg("steam profile visibility check failed")
		return
	}
	member.SteamProfileIsPrivate = !visible

	if member.CountryCode == "" {
		if cc, err := s.steam.GetPlayerCountryCode(ctx, member.SteamID); err == nil && cc != "" {
			member.CountryCode = cc
		}
	}

	if !visible {
		return
	}

	cutoff := now.Add(-s.window).Unix()

	for i := range member.GiveawaysWon {
		won := &member.GiveawaysWon[i]
		if won.AppID == nil {
			continue
		}
		if won.EndTimestamp < cutoff {
			continue
		}

		data, err := s.steam.GetGamePlayData(ctx, member.SteamID, *won.AppID)
		if err != nil {
			logger.Warn().
				Str("member", member.Username).
				Int("app_id", *won.AppID).
				Err(err).
				Msg("play data lookup failed, keeping stored value")
			continue
		}

		won.PlayData = &models.PlayData{
			Owned:                  data.Owned,
			PlaytimeMinutes:        data.PlaytimeMinutes,
			AchievementsUnlocked:   data.AchievementsUnlocked,
			AchievementsTotal:      data.AchievementsTotal,
			AchievementsPercentage: data.AchievementsPercentage,
			NeverPlayed:            data.NeverPlayed,
			HasNoAvailableStats:    data.HasNoAvailableStats,
			LastChecked:            now.Unix(),
		}
	}
}
