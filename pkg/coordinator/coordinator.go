// Package coordinator provides the Redis-backed cross-pod primitives for run
// execution: per-turn leases, cancel markers, and the live event channel.
//
// The journal (PostgreSQL) stays authoritative for run state; everything in
// here is advisory coordination. A missed publish or an expired marker is
// recovered from the journal, never the other way around.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/runforge/agentd/pkg/config"
)

// Key layout. All coordination state for a run lives under agentic:run:{id};
// lease and cancel markers are scoped to one turn.
func leaseKey(runID string, turnSeq int) string {
	return fmt.Sprintf("agentic:run:%s:turn:%d:lease", runID, turnSeq)
}

func cancelKey(runID string, turnSeq int) string {
	return fmt.Sprintf("agentic:run:%s:turn:%d:cancel", runID, turnSeq)
}

func eventsChannel(runID string) string {
	return fmt.Sprintf("agentic:run:%s:events", runID)
}

// RedisCoordinator implements turn leases, cancel markers, and live event
// fan-out on a single Redis instance.
type RedisCoordinator struct {
	client    *redis.Client
	leaseTTL  time.Duration
	cancelTTL time.Duration
}

// NewRedisCoordinator connects to Redis and verifies the connection.
func NewRedisCoordinator(redisCfg config.RedisConfig, leaseCfg config.LeaseConfig) (*RedisCoordinator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         redisCfg.Addr,
		Password:     redisCfg.Password,
		DB:           redisCfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCoordinator{
		client:    client,
		leaseTTL:  leaseCfg.TTL,
		cancelTTL: leaseCfg.CancelTTL,
	}, nil
}

// NewRedisCoordinatorFromClient wraps an existing Redis client (useful for
// testing against miniredis).
func NewRedisCoordinatorFromClient(client *redis.Client, leaseCfg config.LeaseConfig) *RedisCoordinator {
	return &RedisCoordinator{
		client:    client,
		leaseTTL:  leaseCfg.TTL,
		cancelTTL: leaseCfg.CancelTTL,
	}
}

// Ping checks Redis connectivity for health reporting.
func (c *RedisCoordinator) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCoordinator) Close() error {
	return c.client.Close()
}
