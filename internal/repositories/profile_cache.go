package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"craftlab/careers/internal/models"
)

const profileCachePrefix = "profile:"

type cachedProfileRepository struct {
	next   ProfileRepository
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProfileRepository puts a redis read-through cache in front of
// next. Cache failures are logged and fall through to next.
func NewCachedProfileRepository(next ProfileRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) ProfileRepository {
	return &cachedProfileRepository{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *cachedProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.next.Create(ctx, profile)
}

func (r *cachedProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	key := profileCachePrefix + id.String()

	if val, err := r.redis.Get(ctx, key).Bytes(); err == nil {
		var profile models.Profile
		if err := json.Unmarshal(val, &profile); err == nil {
			return &profile, nil
		}
	} else if err != redis.Nil {
		r.logger.Warn("profile cache read failed", zap.String("profile_id", id.String()), zap.Error(err))
	}

	profile, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(profile); err == nil {
		if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("profile cache write failed", zap.String("profile_id", id.String()), zap.Error(err))
		}
	}

	return profile, nil
}

func (r *cachedProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.next.Update(ctx, profile); err != nil {
		return err
	}

	if err := r.redis.Del(ctx, profileCachePrefix+profile.ID.String()).Err(); err != nil {
		r.logger.Warn("profile cache invalidation failed", zap.String("profile_id", profile.ID.String()), zap.Error(err))
	}
	return nil
}
