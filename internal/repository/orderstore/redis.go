// Package orderstore persists the order snapshot written at checkout. Only
// the most recent order is kept, under a single fixed key.
package orderstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/trendyhq/storefront/internal/domain"
)

// lastOrderKey is the fixed key the snapshot lives under; every save
// overwrites the previous value
const lastOrderKey = "storefront:last_order"

// RedisStore implements domain.OrderRepository backed by Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed order store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveLast stores the order snapshot, replacing any previous one. Snapshots
// do not expire; the key always holds the latest placed order.
func (s *RedisStore) SaveLast(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := s.client.Set(ctx, lastOrderKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store order snapshot: %w", err)
	}

	return nil
}

// GetLast retrieves the most recently placed order
func (s *RedisStore) GetLast(ctx context.Context) (*domain.Order, error) {
	data, err := s.client.Get(ctx, lastOrderKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load order snapshot: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order snapshot: %w", err)
	}

	return &order, nil
}
