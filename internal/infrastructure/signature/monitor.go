// Package signature adapts the external signature subsystem's availability
// probe for the mention workflow gates.
package signature

import (
	"context"
	"fmt"
	"time"

	appmention "github.com/civilregistry/backend/internal/application/mention"
	infraconfig "github.com/civilregistry/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisMonitor reads the availability flag an out-of-band probe maintains in
// Redis. A missing or expired key counts as unavailable: a silent probe means
// the subsystem's state is unknown, and signing must not start blind.
type RedisMonitor struct {
	client *redis.Client
	key    string
}

// NewRedisMonitor creates a monitor from Redis configuration
func NewRedisMonitor(redisCfg *infraconfig.RedisConfig, sigCfg *infraconfig.SignatureConfig) (*RedisMonitor, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr(),
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisMonitor{client: client, key: sigCfg.MonitorKey}, nil
}

// NewRedisMonitorWithClient creates a monitor with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisMonitorWithClient(client *redis.Client, key string) *RedisMonitor {
	return &RedisMonitor{client: client, key: key}
}

// Status returns the current availability of the signature subsystem
func (m *RedisMonitor) Status(ctx context.Context) (appmention.Availability, error) {
	value, err := m.client.Get(ctx, m.key).Result()
	if err == redis.Nil {
		return appmention.AvailabilityUnavailable, nil
	}
	if err != nil {
		return appmention.AvailabilityUnavailable, fmt.Errorf("failed to read signature availability: %w", err)
	}
	if value == string(appmention.AvailabilityAvailable) {
		return appmention.AvailabilityAvailable, nil
	}
	return appmention.AvailabilityUnavailable, nil
}

// Publish records an availability observation with a TTL of twice the probe
// interval, so a dead probe degrades to unavailable on its own.
func (m *RedisMonitor) Publish(ctx context.Context, status appmention.Availability, probeInterval time.Duration) error {
	return m.client.Set(ctx, m.key, string(status), 2*probeInterval).Err()
}

// Close closes the Redis client
func (m *RedisMonitor) Close() error {
	return m.client.Close()
}

// Ensure RedisMonitor implements SignatureMonitor
var _ appmention.SignatureMonitor = (*RedisMonitor)(nil)
