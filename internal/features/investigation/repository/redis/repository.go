package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"giveaway-club-backend/internal/features/investigation/models"
	"giveaway-club-backend/internal/features/investigation/repository"
)

const (
	entryPrefix  = "entries:"
	leaverPrefix = "leavers:"
)

type entryRepository struct {
	client *redis.Client
}

func NewEntryRepository(client *redis.Client) repository.EntryRepository {
	return &entryRepository{
		client: client,
	}
}

func (r *entryRepository) Get(ctx context.Context, link string) ([]models.Entry, error) {
	data, err := r.client.Get(ctx, entryPrefix+link).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal entries for %s: %w", link, err)
	}

	return entries, nil
}

func (r *entryRepository) Save(ctx context.Context, link string, entries []models.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal entries for %s: %w", link, err)
	}
	return r.client.Set(ctx, entryPrefix+link, data, 0).Err()
}

type leaverRepository struct {
	client *redis.Client
}

func NewLeaverRepository(client *redis.Client) repository.LeaverRepository {
	return &leaverRepository{
		client: client,
	}
}

func (r *leaverRepository) Get(ctx context.Context, username string) ([]models.LeaverRecord, error) {
	data, err := r.client.Get(ctx, leaverPrefix+username).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var records []models.LeaverRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal leaver records for %s: %w", username, err)
	}

	return records, nil
}

func (r *leaverRepository) GetAll(ctx context.Context) (map[string][]models.LeaverRecord, error) {
	result := make(map[string][]models.LeaverRecord)
	iter := r.client.Scan(ctx, 0, leaverPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}

		var records []models.LeaverRecord
		if err := json.Unmarshal(data, &records); err != nil {
			continue
		}

		result[strings.TrimPrefix(key, leaverPrefix)] = records
	}

	return result, iter.Err()
}

func (r *leaverRepository) Save(ctx context.Context, username string, records []models.LeaverRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal leaver records for %s: %w", username, err)
	}
	return r.client.Set(ctx, leaverPrefix+username, data, 0).Err()
}

func (r *leaverRepository) Delete(ctx context.Context, username string) error {
	return r.client.Del(ctx, leaverPrefix+username).Err()
}
