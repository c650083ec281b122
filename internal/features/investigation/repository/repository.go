package repository

import (
	"context"

	"giveaway-club-backend/internal/features/investigation/models"
)

// EntryRepository persists the per-giveaway entrant snapshots the
// tracker diffs against, keyed by giveaway link.
type EntryRepository interface {
	Get(ctx context.Context, link string) ([]models.Entry, error)
	Save(ctx context.Context, link string, entries []models.Entry) error
}

// LeaverRepository is the leaver index: username → flagged giveaways.
type LeaverRepository interface {
	Get(ctx context.Context, username string) ([]models.LeaverRecord, error)
	GetAll(ctx context.Context) (map[string][]models.LeaverRecord, error)
	Save(ctx context.Context, username string, records []models.LeaverRecord) error
	Delete(ctx context.Context, username string) error
}
