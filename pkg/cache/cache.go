package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLRoles   = 10 * time.Minute // board role maps (membership changes are rare)
	TTLDeals   = 30 * time.Second // board deal lists (refreshed often)
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixRoles = "roles:"
	PrefixDeals = "deals:"
	PrefixUser  = "user:"
)

// Service is the Redis cache interface. Every method tolerates a nil
// client so the app degrades to direct DB reads when Redis is absent.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Board role map: (board_id, user_id) -> role, the indexed lookup
	// behind the O(1) access resolve
	GetBoardRoles(ctx context.Context, boardID uint64) ([]byte, error)
	SetBoardRoles(ctx context.Context, boardID uint64, data interface{}) error
	InvalidateBoardRoles(ctx context.Context, boardID uint64) error

	// Board deal list cache
	GetDeals(ctx context.Context, boardID uint64) ([]byte, error)
	SetDeals(ctx context.Context, boardID uint64, data interface{}) error
	InvalidateDeals(ctx context.Context, boardID uint64) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a Redis-backed cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, nothing to do
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) rolesKey(boardID uint64) string {
	return fmt.Sprintf("%s%d", PrefixRoles, boardID)
}

func (c *redisCache) GetBoardRoles(ctx context.Context, boardID uint64) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.rolesKey(boardID)).Bytes()
}

func (c *redisCache) SetBoardRoles(ctx context.Context, boardID uint64, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.rolesKey(boardID), jsonData, TTLRoles).Err()
}

func (c *redisCache) InvalidateBoardRoles(ctx context.Context, boardID uint64) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.rolesKey(boardID)).Err()
}

func (c *redisCache) dealsKey(boardID uint64) string {
	return fmt.Sprintf("%s%d", PrefixDeals, boardID)
}

func (c *redisCache) GetDeals(ctx context.Context, boardID uint64) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.dealsKey(boardID)).Bytes()
}

func (c *redisCache) SetDeals(ctx context.Context, boardID uint64, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.dealsKey(boardID), jsonData, TTLDeals).Err()
}

func (c *redisCache) InvalidateDeals(ctx context.Context, boardID uint64) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.dealsKey(boardID)).Err()
}
