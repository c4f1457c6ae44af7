package coordinator

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/runforge/agentd/pkg/config"
)

// newTestCoordinator starts a miniredis server and returns a coordinator
// bound to it. The server and client are cleaned up with the test.
func newTestCoordinator(t *testing.T) (*miniredis.Miniredis, *RedisCoordinator) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	coord := NewRedisCoordinatorFromClient(client, config.LeaseConfig{
		TTL:             90 * time.Second,
		RefreshInterval: 30 * time.Second,
		CancelTTL:       15 * time.Minute,
	})
	return mr, coord
}
