package models

import (
	"giveaway-club-backend/internal/features/giveaway/models"
)

// Warning is a derived moderation flag. Warnings are recomputed from
// scratch every run and never carried forward.
type Warning string

const (
	WarningUnplayedRequiredPlay    Warning = "unplayed_required_play_giveaways"
	WarningRequiredPlaysNeedReview Warning = "required_plays_need_review"
	WarningIllegalEnteredRequired  Warning = "illegal_entered_required_play_giveaways"
	WarningIllegalEnteredAny       Warning = "illegal_entered_any_giveaways"
)

// Member is the unit of persistence for one roster user. Scraped
// identity fields come in with the fresh roster; play data, steam
// linkage and country code are expensive to obtain and survive merges.
type Member struct {
	Username              string         `json:"username"`
	ProfileURL            string         `json:"profile_url,omitempty"`
	AvatarURL             string         `json:"avatar_url,omitempty"`
	SteamID               string         `json:"steam_id,omitempty"`
	SteamProfileURL       string         `json:"steam_profile_url,omitempty"`
	SteamProfileIsPrivate bool           `json:"steam_profile_is_private,omitempty"`
	CountryCode           string         `json:"country_code,omitempty"`
	Stats                 UserStats      `json:"stats"`
	GiveawaysWon          []WonEntry     `json:"giveaways_won"`
	GiveawaysCreated      []CreatedEntry `json:"giveaways_created"`
	Warnings              []Warning      `json:"warnings,omitempty"`
}

// ExMember is a member who left the group. The full snapshot is kept so
// an investigation can reconstruct their history.
type ExMember struct {
	Member
	LeftAt int64 `json:"left_at"`
}

// RequiredPlayMeta carries the play-requirement terms attached to a won
// giveaway in the proof-of-play feed.
type RequiredPlayMeta struct {
	RequirementsMet    bool   `json:"requirements_met"`
	IgnoreRequirements bool   `json:"ignore_requirements"`
	Deadline           string `json:"deadline,omitempty"`
	DeadlineInMonths   int    `json:"deadline_in_months,omitempty"`
}

// PlayData is the stored play snapshot for one won game. It is only
// ever produced by the play-data refresh and carried forward otherwise.
type PlayData struct {
	Owned                  bool    `json:"owned"`
	PlaytimeMinutes        int     `json:"playtime_minutes"`
	AchievementsUnlocked   int     `json:"achievements_unlocked"`
	AchievementsTotal      int     `json:"achievements_total"`
	AchievementsPercentage float64 `json:"achievements_percentage"`
	NeverPlayed            bool    `json:"never_played"`
	HasNoAvailableStats    bool    `json:"has_no_available_stats,omitempty"`
	LastChecked            int64   `json:"last_checked"`
}

// WonEntry is one giveaway the member won with status received.
type WonEntry struct {
	Name             string            `json:"name"`
	Link             string            `json:"link"`
	AppID            *int              `json:"app_id,omitempty"`
	CVStatus         models.CVStatus   `json:"cv_status"`
	Status           string            `json:"status"`
	EndTimestamp     int64             `json:"end_timestamp"`
	IsShared         bool              `json:"is_shared"`
	RequiredPlay     bool              `json:"required_play"`
	RequiredPlayMeta *RequiredPlayMeta `json:"required_play_meta,omitempty"`
	ProofOfPlay      bool              `json:"proof_of_play"`
	PlayData         *PlayData         `json:"play_data,omitempty"`
}

// CreatedWinner is one winner row on a giveaway the member created.
// Activated means the copy was actually handed over and confirmed.
type CreatedWinner struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Activated bool   `json:"activated"`
}

// CreatedEntry is one giveaway the member created. HadWinners is nil
// until the giveaway has ended.
type CreatedEntry struct {
	Name             string          `json:"name"`
	Link             string          `json:"link"`
	AppID            *int            `json:"app_id,omitempty"`
	CVStatus         models.CVStatus `json:"cv_status"`
	Entries          int             `json:"entries"`
	Copies           int             `json:"copies"`
	CreatedTimestamp int64           `json:"created_timestamp"`
	EndTimestamp     int64           `json:"end_timestamp"`
	HadWinners       *bool           `json:"had_winners,omitempty"`
	Winners          []CreatedWinner `json:"winners,omitempty"`
	IsShared         bool            `json:"is_shared"`
	RequiredPlay     bool            `json:"required_play"`
}
