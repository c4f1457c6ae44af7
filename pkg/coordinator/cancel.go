package coordinator

import (
	"context"
	"fmt"
)

// cancelMarkerValue is the fixed payload of a cancel marker; only the key's
// existence matters.
const cancelMarkerValue = "1"

// RequestCancel sets the cancel marker for a turn. Setting it again while
// one exists just renews the TTL, so cancel requests are idempotent. The TTL
// bounds how long an unconsumed marker can linger.
func (c *RedisCoordinator) RequestCancel(ctx context.Context, runID string, turnSeq int) error {
	if err := c.client.Set(ctx, cancelKey(runID, turnSeq), cancelMarkerValue, c.cancelTTL).Err(); err != nil {
		return fmt.Errorf("setting cancel marker for run %s turn %d: %w", runID, turnSeq, err)
	}
	return nil
}

// IsCancelRequested reports whether a cancel marker exists for the turn.
func (c *RedisCoordinator) IsCancelRequested(ctx context.Context, runID string, turnSeq int) (bool, error) {
	n, err := c.client.Exists(ctx, cancelKey(runID, turnSeq)).Result()
	if err != nil {
		return false, fmt.Errorf("checking cancel marker for run %s turn %d: %w", runID, turnSeq, err)
	}
	return n > 0, nil
}

// ClearCancel removes the cancel marker once a turn reaches a terminal state,
// so a stale marker cannot cancel the run's next turn.
func (c *RedisCoordinator) ClearCancel(ctx context.Context, runID string, turnSeq int) error {
	if err := c.client.Del(ctx, cancelKey(runID, turnSeq)).Err(); err != nil {
		return fmt.Errorf("clearing cancel marker for run %s turn %d: %w", runID, turnSeq, err)
	}
	return nil
}
