package service

import (
	"context"

	gamodels "giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/features/member/models"
	"giveaway-club-backend/internal/platform/sheets"
)

// ReceiptClassifier scores a giveaway's community value from the
// winner's side, against the end timestamp.
type ReceiptClassifier interface {
	ReceiptStatus(ctx context.Context, g *gamodels.Giveaway) gamodels.CVStatus
}

// EnrichmentService rebuilds each member's won/created views from the
// global giveaway set and the proof-of-play feed.
type EnrichmentService struct {
	receipts ReceiptClassifier
}

func NewEnrichmentService(receipts ReceiptClassifier) *EnrichmentService {
	return &EnrichmentService{receipts: receipts}
}

// Enrich replaces the member's giveaway views in place. The won list
// contains only wins marked received; the platform's own received total
// counts differently and the two intentionally diverge. Play data on
// existing won entries is carried forward by the merge step, not here.
func (s *EnrichmentService) Enrich(ctx context.Context, member *models.Member, giveaways []*gamodels.Giveaway, feed *sheets.Feed, now int64) {
	var won []models.WonEntry
	var created []models.CreatedEntry

	for _, g := range giveaways {
		if g.Creator == member.Username {
			created = append(created, s.createdEntry(g, now))
		}

		for _, w := range g.Winners {
			if w.Name == nil || *w.Name != member.Username {
				continue
			}
			if w.Status != gamodels.WinnerReceived {
				continue
			}
			won = append(won, s.wonEntry(ctx, g, member.Username, w, feed))
		}
	}

	member.GiveawaysWon = won
	member.GiveawaysCreated = created
}

func (s *EnrichmentService) wonEntry(ctx context.Context, g *gamodels.Giveaway, username string, w gamodels.Winner, feed *sheets.Feed) models.WonEntry {
	entry := models.WonEntry{
		Name:         g.Name,
		Link:         g.Link,
		AppID:        g.AppID,
		Status:       string(w.Status),
		EndTimestamp: g.EndTimestamp,
		IsShared:     g.IsShared,
		RequiredPlay: g.RequiredPlay,
	}

	if s.receipts != nil {
		entry.CVStatus = s.receipts.ReceiptStatus(ctx, g)
	} else {
		entry.CVStatus = g.EffectiveCVStatus()
	}

	if row, ok := feed.Match(g.ID, username); ok {
		entry.ProofOfPlay = row.CompletePlaying
		if row.PlayRequirement != nil {
			entry.RequiredPlay = true
			entry.RequiredPlayMeta = &models.RequiredPlayMeta{
				RequirementsMet:    row.PlayRequirement.RequirementsMet,
				IgnoreRequirements: row.PlayRequirement.IgnoreRequirements,
				Deadline:           row.PlayRequirement.Deadline,
				DeadlineInMonths:   row.PlayRequirement.DeadlineInMonths,
			}
		}
	}

	return entry
}

func (s *EnrichmentService) createdEntry(g *gamodels.Giveaway, now int64) models.CreatedEntry {
	entry := models.CreatedEntry{
		Name:             g.Name,
		Link:             g.Link,
		AppID:            g.AppID,
		CVStatus:         g.EffectiveCVStatus(),
		Entries:          g.EntryCount,
		Copies:           g.Copies,
		CreatedTimestamp: g.CreatedTimestamp,
		EndTimestamp:     g.EndTimestamp,
		IsShared:         g.IsShared,
		RequiredPlay:     g.RequiredPlay,
	}

	// had_winners stays nil for open giveaways so the no-entries stat
	// never counts a giveaway that could still fill up.
	if g.Ended(now) {
		had := g.HasWinners || len(g.Winners) > 0
		entry.HadWinners = &had
	}

	for _, w := range g.Winners {
		cw := models.CreatedWinner{
			Status:    string(w.Status),
			Activated: w.Activated(),
		}
		if w.Name != nil {
			cw.Name = *w.Name
		}
		entry.Winners = append(entry.Winners, cw)
	}

	return entry
}
