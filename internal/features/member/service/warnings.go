package service

import (
	gamodels "giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/features/member/models"
)

const (
	unplayedWarningThreshold   = 2
	illegalAnyEnteredThreshold = 3
)

// ComputeWarnings derives the member's moderation flags from scratch.
// entered is the set of still-open giveaways the member currently has
// entries in; it gates the entry-related flags.
func ComputeWarnings(member *models.Member, entered []*gamodels.Giveaway, now int64) []models.Warning {
	unfulfilled := unfulfilledRequiredPlayWins(member)

	var warnings []models.Warning

	if unfulfilled >= unplayedWarningThreshold {
		warnings = append(warnings, models.WarningUnplayedRequiredPlay)
	}
	if requiredPlaysAwaitingReview(member) > 0 {
		warnings = append(warnings, models.WarningRequiredPlaysNeedReview)
	}

	enteredAnyOpen := false
	enteredOpenRequiredPlay := false
	for _, g := range entered {
		if g.Ended(now) {
			continue
		}
		enteredAnyOpen = true
		if g.RequiredPlay {
			enteredOpenRequiredPlay = true
		}
	}

	if unfulfilled >= unplayedWarningThreshold && enteredOpenRequiredPlay {
		warnings = append(warnings, models.WarningIllegalEnteredRequired)
	}
	if unfulfilled >= illegalAnyEnteredThreshold && enteredAnyOpen {
		warnings = append(warnings, models.WarningIllegalEnteredAny)
	}

	return warnings
}

// unfulfilledRequiredPlayWins counts required-play wins whose
// requirements are neither met nor waived.
func unfulfilledRequiredPlayWins(member *models.Member) int {
	count := 0
	for i := range member.GiveawaysWon {
		won := &member.GiveawaysWon[i]
		if !won.RequiredPlay || won.IsShared {
			continue
		}
		if won.ProofOfPlay {
			continue
		}
		if meta := won.RequiredPlayMeta; meta != nil && (meta.RequirementsMet || meta.IgnoreRequirements) {
			continue
		}
		count++
	}
	return count
}

// requiredPlaysAwaitingReview counts required-play wins that show
// playtime on the platform while their requirements are still marked
// unmet. Someone has played the game; a moderator just has not signed
// it off yet.
func requiredPlaysAwaitingReview(member *models.Member) int {
	count := 0
	for i := range member.GiveawaysWon {
		won := &member.GiveawaysWon[i]
		if !won.RequiredPlay || won.IsShared || won.ProofOfPlay {
			continue
		}
		if meta := won.RequiredPlayMeta; meta != nil && (meta.RequirementsMet || meta.IgnoreRequirements) {
			continue
		}
		pd := won.PlayData
		if pd == nil || pd.NeverPlayed || pd.PlaytimeMinutes == 0 {
			continue
		}
		count++
	}
	return count
}
