package service

import (
	"giveaway-club-backend/internal/features/giveaway/models"
)

// Merge reconciles a freshly scraped giveaway with its stored version.
//
// Field ownership:
//   - scraped listing fields (name, counts, timestamps, winners) are
//     refreshed from the fresh record every run;
//   - cv_state/cv_status are write-once: once the stored record is
//     classified it keeps its status forever;
//   - detail-page fields (is_shared, required_play, event_type) are
//     expensive to refetch, so a stored true/non-empty value is kept when
//     the fresh scrape did not resolve one.
func Merge(existing, fresh *models.Giveaway) *models.Giveaway {
	if existing == nil {
		return fresh
	}
	if fresh == nil {
		return existing
	}

	merged := *fresh

	if existing.Classified() {
		merged.CVState = existing.CVState
		merged.CVStatus = existing.CVStatus
	}

	merged.IsShared = fresh.IsShared || existing.IsShared
	merged.RequiredPlay = fresh.RequiredPlay || existing.RequiredPlay
	if merged.EventType == "" {
		merged.EventType = existing.EventType
	}
	if merged.EndTimestamp == 0 {
		merged.EndTimestamp = existing.EndTimestamp
	}

	return &merged
}
