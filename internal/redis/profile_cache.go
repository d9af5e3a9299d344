package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"parkbill/internal/models"
	"parkbill/internal/service"
)

// ProfileCache caches rate profiles in front of the Postgres repository.
// Rate schedules change rarely, so a short TTL keeps invoice requests off
// the database on the hot path. Not-found is never cached: an unknown
// facility always goes to the source of truth.
type ProfileCache struct {
	client *redis.Client
	source service.RateProfileSource
	ttl    time.Duration
	logger *zap.Logger
}

// NewProfileCache returns a caching RateProfileSource.
func NewProfileCache(client *redis.Client, source service.RateProfileSource, ttl time.Duration, logger *zap.Logger) *ProfileCache {
	return &ProfileCache{client: client, source: source, ttl: ttl, logger: logger}
}

func (c *ProfileCache) key(facilityID string) string {
	return fmt.Sprintf("billing:rate-profile:%s", facilityID)
}

// GetByFacility serves the profile from cache, falling through to the
// wrapped source on a miss. Cache failures degrade to the source, they
// never fail the request.
func (c *ProfileCache) GetByFacility(ctx context.Context, facilityID string) (*models.RateProfile, error) {
	cached, err := c.client.Get(ctx, c.key(facilityID)).Result()
	if err == nil {
		var profile models.RateProfile
		if err := json.Unmarshal([]byte(cached), &profile); err == nil {
			return &profile, nil
		}
		c.logger.Warn("dropping undecodable cached rate profile", zap.String("facility_id", facilityID))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("rate profile cache read failed", zap.String("facility_id", facilityID), zap.Error(err))
	}

	profile, err := c.source.GetByFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(profile); err == nil {
		if err := c.client.Set(ctx, c.key(facilityID), data, c.ttl).Err(); err != nil {
			c.logger.Warn("rate profile cache write failed", zap.String("facility_id", facilityID), zap.Error(err))
		}
	}
	return profile, nil
}
