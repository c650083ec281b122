package service

import (
	"context"

	"giveaway-club-backend/internal/common/logger"
	"giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/platform/bundlegames"
)

// Classify decides a giveaway's community-value tier from its bundle
// record, if any, against a reference timestamp. Callers pass the
// creation timestamp when scoring the creator's contribution and the end
// timestamp when scoring a winner's receipt: value may decay during the
// giveaway's life, and what matters for the winner is value at receipt.
func Classify(g *models.Giveaway, rec *bundlegames.Record, referenceTS int64) models.CVStatus {
	if rec == nil {
		return models.CVFull
	}

	hasReduced := rec.ReducedValueTimestamp != nil
	hasNoValue := rec.NoValueTimestamp != nil

	if hasNoValue && hasReduced {
		if *rec.NoValueTimestamp < referenceTS {
			return models.CVNone
		}
	}

	if hasReduced && !hasNoValue {
		if *rec.ReducedValueTimestamp < referenceTS {
			return models.CVReduced
		}
	}

	return models.CVFull
}

// ClassifierService assigns CV statuses to scraped giveaways. Statuses
// are write-once: a giveaway that is already classified is never touched
// again.
type ClassifierService struct {
	resolver *Resolver
}

func NewClassifierService(resolver *Resolver) *ClassifierService {
	return &ClassifierService{resolver: resolver}
}

// ClassifyReport summarizes one classification pass.
type ClassifyReport struct {
	Total      int
	Classified int
	Skipped    int
	Failures   int
}

// ClassifyAll fills in the CV status of every unclassified giveaway,
// using the creation timestamp as reference. A lookup failure degrades
// the giveaway to FULL_CV and never aborts the batch.
func (s *ClassifierService) ClassifyAll(ctx context.Context, giveaways []*models.Giveaway) ClassifyReport {
	report := ClassifyReport{Total: len(giveaways)}

	for _, g := range giveaways {
		if g.Classified() {
			report.Skipped++
			continue
		}

		rec, err := s.resolver.Resolve(ctx, g)
		if err != nil {
			report.Failures++
			logger.Warn().
				Str("giveaway", g.ID).
				Str("name", g.Name).
				Err(err).
				Msg("bundle lookup failed, defaulting to FULL_CV")
		}

		g.CVStatus = Classify(g, rec, g.CreatedTimestamp)
		g.CVState = models.CVStateClassified
		report.Classified++
	}

	logger.Info().
		Int("total", report.Total).
		Int("classified", report.Classified).
		Int("skipped", report.Skipped).
		Int("failures", report.Failures).
		Msg("CV classification pass complete")

	return report
}

// ReceiptStatus classifies a giveaway from the winner's side, against the
// end timestamp. It does not mutate the giveaway's stored status.
func (s *ClassifierService) ReceiptStatus(ctx context.Context, g *models.Giveaway) models.CVStatus {
	rec, err := s.resolver.Resolve(ctx, g)
	if err != nil {
		logger.Warn().
			Str("giveaway", g.ID).
			Str("name", g.Name).
			Err(err).
			Msg("bundle lookup failed for receipt status, defaulting to FULL_CV")
		return models.CVFull
	}
	return Classify(g, rec, g.EndTimestamp)
}
