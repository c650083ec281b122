package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/features/giveaway/repository"
)

const (
	keyPrefix      = "giveaway:"
	keyLastUpdated = "giveaways:last_updated"
)

type giveawayRepository struct {
	client *redis.Client
}

func NewGiveawayRepository(client *redis.Client) repository.GiveawayRepository {
	return &giveawayRepository{
		client: client,
	}
}

func (r *giveawayRepository) GetByID(ctx context.Context, id string) (*models.Giveaway, error) {
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var g models.Giveaway
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshal giveaway %s: %w", id, err)
	}

	return &g, nil
}

func (r *giveawayRepository) GetAll(ctx context.Context) ([]*models.Giveaway, error) {
	var giveaways []*models.Giveaway
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}

		var g models.Giveaway
		if err := json.Unmarshal(data, &g); err != nil {
			continue
		}

		giveaways = append(giveaways, &g)
	}

	return giveaways, iter.Err()
}

func (r *giveawayRepository) SaveAll(ctx context.Context, giveaways []*models.Giveaway) error {
	pipe := r.client.Pipeline()

	for _, g := range giveaways {
		data, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("marshal giveaway %s: %w", g.ID, err)
		}
		pipe.Set(ctx, keyPrefix+g.ID, data, 0)
	}
	pipe.Set(ctx, keyLastUpdated, time.Now().UTC().Format(time.RFC3339), 0)

	_, err := pipe.Exec(ctx)
	return err
}

func (r *giveawayRepository) LastUpdated(ctx context.Context) (time.Time, error) {
	data, err := r.client.Get(ctx, keyLastUpdated).Result()
	if err != nil {
		if err == redis.Nil {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, data)
}
