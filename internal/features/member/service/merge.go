package service

import (
	"giveaway-club-backend/internal/features/member/models"
)

// MergeMember folds the persisted member into the freshly built one.
// Fresh scraped fields win; externally expensive fields survive until a
// fresh value replaces them. Stats and warnings are recomputed after
// merging and are not merged here.
func MergeMember(existing, fresh *models.Member) *models.Member {
	if existing == nil {
		return fresh
	}
	if fresh == nil {
		return existing
	}

	if fresh.SteamID == "" {
		fresh.SteamID = existing.SteamID
	}
	if fresh.SteamProfileURL == "" {
		fresh.SteamProfileURL = existing.SteamProfileURL
	}
	if fresh.CountryCode == "" {
		fresh.CountryCode = existing.CountryCode
	}
	if fresh.ProfileURL == "" {
		fresh.ProfileURL = existing.ProfileURL
	}
	if fresh.AvatarURL == "" {
		fresh.AvatarURL = existing.AvatarURL
	}
	if !fresh.SteamProfileIsPrivate {
		fresh.SteamProfileIsPrivate = existing.SteamProfileIsPrivate
	}

	carryWonState(existing.GiveawaysWon, fresh.GiveawaysWon)

	return fresh
}

// carryWonState copies play data and sticky proof flags from the stored
// won list onto the rebuilt one, matched by giveaway link. Play data is
// only ever produced by the refresh step; losing it here would force a
// re-fetch.
func carryWonState(existing, fresh []models.WonEntry) {
	if len(existing) == 0 || len(fresh) == 0 {
		return
	}

	byLink := make(map[string]*models.WonEntry, len(existing))
	for i := range existing {
		byLink[existing[i].Link] = &existing[i]
	}

	for i := range fresh {
		prev, ok := byLink[fresh[i].Link]
		if !ok {
			continue
		}
		if fresh[i].PlayData == nil {
			fresh[i].PlayData = prev.PlayData
		}
		if prev.ProofOfPlay {
			fresh[i].ProofOfPlay = true
		}
		if fresh[i].RequiredPlayMeta == nil {
			fresh[i].RequiredPlayMeta = prev.RequiredPlayMeta
		}
	}
}
