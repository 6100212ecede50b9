package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/examprep/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const testCacheKeyPrefix = "exam:test:"

// cachedTestRepository serves FindByIDWithQuestions from Redis. Tests and their
// questions are not mutated after seeding, so entries only expire by TTL.
type cachedTestRepository struct {
	TestRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedTestRepository wraps inner with a Redis read-through cache. Cache
// failures are logged and fall through to inner.
func NewCachedTestRepository(inner TestRepository, client *redis.Client, ttl time.Duration) TestRepository {
	return &cachedTestRepository{TestRepository: inner, client: client, ttl: ttl}
}

func (r *cachedTestRepository) FindByIDWithQuestions(ctx context.Context, id string) (*model.Test, error) {
	key := testCacheKeyPrefix + id

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var test model.Test
		jsonErr := json.Unmarshal(raw, &test)
		if jsonErr == nil {
			return &test, nil
		}
		log.Warn().Err(jsonErr).Str("key", key).Msg("Discarding undecodable cached test")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("Redis get failed, reading test from database")
	}

	test, err := r.TestRepository.FindByIDWithQuestions(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.store(ctx, key, test); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache test")
	}
	return test, nil
}

func (r *cachedTestRepository) store(ctx context.Context, key string, test *model.Test) error {
	val, err := json.Marshal(test)
	if err != nil {
		return fmt.Errorf("error encoding test for cache: %w", err)
	}
	return r.client.Set(ctx, key, val, r.ttl).Err()
}
