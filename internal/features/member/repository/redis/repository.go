package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"giveaway-club-backend/internal/features/member/models"
	"giveaway-club-backend/internal/features/member/repository"
)

const (
	keyPrefix      = "member:"
	keyLastUpdated = "members:last_updated"
	exMemberPrefix = "exmember:"
)

type memberRepository struct {
	client *redis.Client
}

func NewMemberRepository(client *redis.Client) repository.MemberRepository {
	return &memberRepository{
		client: client,
	}
}

func (r *memberRepository) Get(ctx context.Context, username string) (*models.Member, error) {
	data, err := r.client.Get(ctx, keyPrefix+username).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var m models.Member
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal member %s: %w", username, err)
	}

	return &m, nil
}

func (r *memberRepository) GetAll(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}

		var m models.Member
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}

		members = append(members, &m)
	}

	return members, iter.Err()
}

func (r *memberRepository) SaveAll(ctx context.Context, members []*models.Member) error {
	pipe := r.client.Pipeline()

	for _, m := range members {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal member %s: %w", m.Username, err)
		}
		pipe.Set(ctx, keyPrefix+m.Username, data, 0)
	}
	pipe.Set(ctx, keyLastUpdated, time.Now().UTC().Format(time.RFC3339), 0)

	_, err := pipe.Exec(ctx)
	return err
}

func (r *memberRepository) Delete(ctx context.Context, username string) error {
	return r.client.Del(ctx, keyPrefix+username).Err()
}

func (r *memberRepository) LastUpdated(ctx context.Context) (time.Time, error) {
	data, err := r.client.Get(ctx, keyLastUpdated).Result()
	if err != nil {
		if err == redis.Nil {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, data)
}

type exMemberRepository struct {
	client *redis.Client
}

func NewExMemberRepository(client *redis.Client) repository.ExMemberRepository {
	return &exMemberRepository{
		client: client,
	}
}

func (r *exMemberRepository) Get(ctx context.Context, username string) (*models.ExMember, error) {
	data, err := r.client.Get(ctx, exMemberPrefix+username).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var ex models.ExMember
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("unmarshal ex-member %s: %w", username, err)
	}

	return &ex, nil
}

func (r *exMemberRepository) GetAll(ctx context.Context) ([]*models.ExMember, error) {
	var exMembers []*models.ExMember
	iter := r.client.Scan(ctx, 0, exMemberPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}

		var ex models.ExMember
		if err := json.Unmarshal(data, &ex); err != nil {
			continue
		}

		exMembers = append(exMembers, &ex)
	}

	return exMembers, iter.Err()
}

func (r *exMemberRepository) Save(ctx context.Context, ex *models.ExMember) error {
	data, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("marshal ex-member %s: %w", ex.Username, err)
	}
	return r.client.Set(ctx, exMemberPrefix+ex.Username, data, 0).Err()
}
