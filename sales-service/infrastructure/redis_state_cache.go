package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const stateCacheKeyPrefix = "order:state:"

// RedisStateCache implements StateCache on Redis. Entries are advisory
// mirrors of the saga's last published aggregate, so a Redis outage degrades
// reads to the store but never loses order state.
type RedisStateCache struct {
	client *redis.Client
}

// NewRedisStateCache creates a new RedisStateCache
func NewRedisStateCache(client *redis.Client) *RedisStateCache {
	return &RedisStateCache{client: client}
}

// Put stores the aggregate under the order's key with the given TTL
func (c *RedisStateCache) Put(ctx context.Context, orderID models.ID, result *domain.FulfillmentResult, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "failed to marshal cached result")
	}
	if err := c.client.Set(ctx, stateCacheKeyPrefix+orderID.String(), payload, ttl).Err(); err != nil {
		return domain.Transient(errors.Wrap(err, "failed to write state cache"))
	}
	return nil
}

// Get returns the cached aggregate, nil, nil when no entry exists
func (c *RedisStateCache) Get(ctx context.Context, orderID models.ID) (*domain.FulfillmentResult, error) {
	payload, err := c.client.Get(ctx, stateCacheKeyPrefix+orderID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, domain.Transient(errors.Wrap(err, "failed to read state cache"))
	}

	var result domain.FulfillmentResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal cached result")
	}
	return &result, nil
}
