package repository

import (
	"context"
	"errors"
	"time"

	"giveaway-club-backend/internal/features/member/models"
)

var ErrNotFound = errors.New("member not found")

// MemberRepository is the durable member store, keyed by username.
type MemberRepository interface {
	Get(ctx context.Context, username string) (*models.Member, error)
	GetAll(ctx context.Context) ([]*models.Member, error)
	SaveAll(ctx context.Context, members []*models.Member) error
	Delete(ctx context.Context, username string) error
	LastUpdated(ctx context.Context) (time.Time, error)
}

// ExMemberRepository keeps snapshots of members who left the group.
// Entries are only ever added; there is no roster to age them out of.
type ExMemberRepository interface {
	Get(ctx context.Context, username string) (*models.ExMember, error)
	GetAll(ctx context.Context) ([]*models.ExMember, error)
	Save(ctx context.Context, ex *models.ExMember) error
}
