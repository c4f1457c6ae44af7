package coordinator

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Refresh and release are compare-then-mutate: they only act when the stored
// owner matches, so a worker whose lease expired and was reacquired elsewhere
// can never touch the new holder's lease.
var (
	refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

	releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)
)

// AcquireLease attempts to take the turn lease for runID/turnSeq on behalf of
// owner. Returns false when another owner already holds it.
func (c *RedisCoordinator) AcquireLease(ctx context.Context, runID string, turnSeq int, owner string) (bool, error) {
	ok, err := c.client.SetNX(ctx, leaseKey(runID, turnSeq), owner, c.leaseTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquiring lease for run %s turn %d: %w", runID, turnSeq, err)
	}
	return ok, nil
}

// RefreshLease extends the lease TTL if owner still holds it. A false return
// means the lease expired or was taken over; the caller must stop writing on
// behalf of this turn immediately.
func (c *RedisCoordinator) RefreshLease(ctx context.Context, runID string, turnSeq int, owner string) (bool, error) {
	n, err := refreshScript.Run(ctx, c.client,
		[]string{leaseKey(runID, turnSeq)},
		owner, c.leaseTTL.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("refreshing lease for run %s turn %d: %w", runID, turnSeq, err)
	}
	return n == 1, nil
}

// ReleaseLease deletes the lease if owner still holds it. A false return
// means the lease already expired or belongs to someone else; that release
// is a no-op.
func (c *RedisCoordinator) ReleaseLease(ctx context.Context, runID string, turnSeq int, owner string) (bool, error) {
	n, err := releaseScript.Run(ctx, c.client,
		[]string{leaseKey(runID, turnSeq)},
		owner,
	).Int()
	if err != nil {
		return false, fmt.Errorf("releasing lease for run %s turn %d: %w", runID, turnSeq, err)
	}
	return n == 1, nil
}

// LeaseOwner returns the current lease owner, or "" when no lease is held.
func (c *RedisCoordinator) LeaseOwner(ctx context.Context, runID string, turnSeq int) (string, error) {
	owner, err := c.client.Get(ctx, leaseKey(runID, turnSeq)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading lease owner for run %s turn %d: %w", runID, turnSeq, err)
	}
	return owner, nil
}
