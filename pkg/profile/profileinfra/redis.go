package profileinfra

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/aidul23/agent-mem/pkg/profile"
	"github.com/redis/go-redis/v9"
)

// RedisProfileRepository stores each profile as a hash under profile:<user_id>
type RedisProfileRepository struct {
	client *redis.Client
}

func NewRedisProfileRepository(client *redis.Client) *RedisProfileRepository {
	return &RedisProfileRepository{client: client}
}

var _ profile.Repository = (*RedisProfileRepository)(nil)

func profileKey(id kernel.UserID) string {
	return fmt.Sprintf("profile:%s", id)
}

func (r *RedisProfileRepository) FindByID(ctx context.Context, id kernel.UserID) (*profile.UserProfile, error) {
	fields, err := r.client.HGetAll(ctx, profileKey(id)).Result()
	if err != nil {
		return nil, profile.ErrStoreUnavailable(err).WithDetail("user_id", id.String())
	}
	if len(fields) == 0 {
		return nil, profile.ErrProfileNotFound().WithDetail("user_id", id.String())
	}

	allow, _ := strconv.ParseBool(fields["allow_memory"])
	createdAt, _ := time.Parse(time.RFC3339Nano, fields["created_at"])
	updatedAt, _ := time.Parse(time.RFC3339Nano, fields["updated_at"])

	return &profile.UserProfile{
		UserID:      id,
		AllowMemory: allow,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func (r *RedisProfileRepository) Save(ctx context.Context, p profile.UserProfile) error {
	err := r.client.HSet(ctx, profileKey(p.UserID),
		"allow_memory", strconv.FormatBool(p.AllowMemory),
		"created_at", p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at", p.UpdatedAt.Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return profile.ErrStoreUnavailable(err).WithDetail("user_id", p.UserID.String())
	}
	return nil
}

func (r *RedisProfileRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
