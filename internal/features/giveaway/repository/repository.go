package repository

import (
	"context"
	"errors"
	"time"

	"giveaway-club-backend/internal/features/giveaway/models"
)

var ErrNotFound = errors.New("giveaway not found")

// GiveawayRepository is the durable giveaway store, keyed by id.
type GiveawayRepository interface {
	GetByID(ctx context.Context, id string) (*models.Giveaway, error)
	GetAll(ctx context.Context) ([]*models.Giveaway, error)
	SaveAll(ctx context.Context, giveaways []*models.Giveaway) error
	LastUpdated(ctx context.Context) (time.Time, error)
}
