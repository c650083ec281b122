package service

import (
	"context"
	"math"

	"giveaway-club-backend/internal/common/logger"
	gamodels "giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/features/investigation/models"
	"giveaway-club-backend/internal/features/investigation/repository"
)

// TrackerService detects members who leave a giveaway's entry list
// after joining it, and clears the flag when they rejoin.
type TrackerService struct {
	entries repository.EntryRepository
	leavers repository.LeaverRepository
}

func NewTrackerService(entries repository.EntryRepository, leavers repository.LeaverRepository) *TrackerService {
	return &TrackerService{
		entries: entries,
		leavers: leavers,
	}
}

// TrackReport summarizes one tracker pass over a giveaway.
type TrackReport struct {
	Leavers   int
	Rejoiners int
	Skipped   int
}

// Process diffs the current entrant list of one giveaway against the
// stored snapshot. New leavers are recorded with their original
// joined_at; rejoiners clear their record for this giveaway. Running
// the same entrant set twice is a no-op. The snapshot is persisted at
// the end either way.
func (s *TrackerService) Process(ctx context.Context, g *gamodels.Giveaway, current []models.Entry, now int64) (TrackReport, error) {
	var report TrackReport

	previous, err := s.entries.Get(ctx, g.Link)
	if err != nil {
		return report, err
	}

	if len(previous) > 0 {
		currentNames := make(map[string]struct{}, len(current))
		for _, e := range current {
			currentNames[e.Username] = struct{}{}
		}
		previousNames := make(map[string]struct{}, len(previous))
		for _, e := range previous {
			previousNames[e.Username] = struct{}{}
		}

		diffHours := int64(math.Round(float64(g.EndTimestamp-now) / 3600))

		for _, old := range previous {
			if _, still := currentNames[old.Username]; still {
				continue
			}

			if old.JoinedAt == "" {
				report.Skipped++
				logger.Warn().
					Str("username", old.Username).
					Str("giveaway", g.Link).
					Msg("leaver entry has no joined_at, skipping")
				continue
			}

			records, err := s.leavers.Get(ctx, old.Username)
			if err != nil {
				return report, err
			}

			exists := false
			for _, rec := range records {
				if rec.GALink == g.Link && rec.JoinedAt == old.JoinedAt {
					exists = true
					break
				}
			}
			if exists {
				continue
			}

			records = append(records, models.LeaverRecord{
				JoinedAt:            old.JoinedAt,
				GALink:              g.Link,
				LeaveDetectedAt:     now,
				TimeDifferenceHours: diffHours,
			})
			if err := s.leavers.Save(ctx, old.Username, records); err != nil {
				return report, err
			}
			report.Leavers++

			logger.Info().
				Str("username", old.Username).
				Str("giveaway", g.Link).
				Msg("leaver detected")
		}

		for _, entry := range current {
			if _, wasThere := previousNames[entry.Username]; wasThere {
				continue
			}

			records, err := s.leavers.Get(ctx, entry.Username)
			if err != nil {
				return report, err
			}
			if len(records) == 0 {
				continue
			}

			kept := records[:0]
			for _, rec := range records {
				if rec.GALink != g.Link {
					kept = append(kept, rec)
				}
			}
			if len(kept) == len(records) {
				continue
			}

			report.Rejoiners++
			logger.Info().
				Str("username", entry.Username).
				Str("giveaway", g.Link).
				Msg("rejoiner detected, clearing leaver record")

			if len(kept) == 0 {
				if err := s.leavers.Delete(ctx, entry.Username); err != nil {
					return report, err
				}
				continue
			}
			if err := s.leavers.Save(ctx, entry.Username, kept); err != nil {
				return report, err
			}
		}
	}

	return report, s.entries.Save(ctx, g.Link, current)
}

// ShouldTrack reports whether a giveaway's entry list is worth
// diffing this run: it has entries and is either still open or just
// ended without a stored snapshot.
func (s *TrackerService) ShouldTrack(ctx context.Context, g *gamodels.Giveaway, now int64) (bool, error) {
	if g.EntryCount == 0 {
		return false, nil
	}
	if !g.Ended(now) {
		return true, nil
	}

	previous, err := s.entries.Get(ctx, g.Link)
	if err != nil {
		return false, err
	}
	return previous == nil, nil
}
