package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelMarkerLifecycle(t *testing.T) {
	mr, coord := newTestCoordinator(t)
	ctx := context.Background()

	requested, err := coord.IsCancelRequested(ctx, "run-1", 1)
	require.NoError(t, err)
	assert.False(t, requested)

	require.NoError(t, coord.RequestCancel(ctx, "run-1", 1))

	requested, err = coord.IsCancelRequested(ctx, "run-1", 1)
	require.NoError(t, err)
	assert.True(t, requested)

	// The marker is a bounded-TTL key at the documented location.
	val, err := mr.Get("agentic:run:run-1:turn:1:cancel")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
	assert.Equal(t, 15*time.Minute, mr.TTL("agentic:run:run-1:turn:1:cancel"))

	require.NoError(t, coord.ClearCancel(ctx, "run-1", 1))

	requested, err = coord.IsCancelRequested(ctx, "run-1", 1)
	require.NoError(t, err)
	assert.False(t, requested)
}

func TestCancelMarkerIsIdempotent(t *testing.T) {
	_, coord := newTestCoordinator(t)
	ctx := context.Background()

	require.NoError(t, coord.RequestCancel(ctx, "run-1", 1))
	require.NoError(t, coord.RequestCancel(ctx, "run-1", 1))

	requested, err := coord.IsCancelRequested(ctx, "run-1", 1)
	require.NoError(t, err)
	assert.True(t, requested)

	// Clearing an absent marker is also fine.
	require.NoError(t, coord.ClearCancel(ctx, "run-1", 1))
	require.NoError(t, coord.ClearCancel(ctx, "run-1", 1))
}

func TestCancelMarkerExpires(t *testing.T) {
	mr, coord := newTestCoordinator(t)
	ctx := context.Background()

	require.NoError(t, coord.RequestCancel(ctx, "run-1", 1))

	mr.FastForward(15*time.Minute + time.Second)

	requested, err := coord.IsCancelRequested(ctx, "run-1", 1)
	require.NoError(t, err)
	assert.False(t, requested, "marker must expire with its TTL")
}

func TestCancelMarkersAreScopedToTurn(t *testing.T) {
	_, coord := newTestCoordinator(t)
	ctx := context.Background()

	require.NoError(t, coord.RequestCancel(ctx, "run-1", 2))

	requested, err := coord.IsCancelRequested(ctx, "run-1", 3)
	require.NoError(t, err)
	assert.False(t, requested, "a marker for one turn must not cancel the next")

	requested, err = coord.IsCancelRequested(ctx, "run-2", 2)
	require.NoError(t, err)
	assert.False(t, requested)
}
