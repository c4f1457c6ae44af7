package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	_, coord := newTestCoordinator(t)
	ctx := context.Background()

	sub, err := coord.Subscribe(ctx, "run-1")
	require.NoError(t, err)
	defer sub.Close()

	// Subscribe confirms the subscription before returning, so a publish
	// issued immediately afterwards must be delivered.
	require.NoError(t, coord.PublishEvent(ctx, "run-1", `{"seq":1}`))

	select {
	case frame := <-sub.Channel():
		assert.Equal(t, `{"seq":1}`, frame)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published frame")
	}
}

func TestSubscribeIsPerRun(t *testing.T) {
	_, coord := newTestCoordinator(t)
	ctx := context.Background()

	sub, err := coord.Subscribe(ctx, "run-1")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, coord.PublishEvent(ctx, "run-2", `{"seq":1}`))
	require.NoError(t, coord.PublishEvent(ctx, "run-1", `{"seq":2}`))

	select {
	case frame := <-sub.Channel():
		assert.Equal(t, `{"seq":2}`, frame, "frames from other runs must not be delivered")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published frame")
	}
}

func TestSubscriptionClose(t *testing.T) {
	_, coord := newTestCoordinator(t)
	ctx := context.Background()

	sub, err := coord.Subscribe(ctx, "run-1")
	require.NoError(t, err)

	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Channel():
		assert.False(t, ok, "channel must be closed after Close")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}

	// Close is safe to call again.
	require.NoError(t, sub.Close())
}

func TestPublishEventWithoutSubscribers(t *testing.T) {
	_, coord := newTestCoordinator(t)

	// Publishing into the void is fine; the journal is the source of truth
	// and the live channel is best effort.
	require.NoError(t, coord.PublishEvent(context.Background(), "run-1", `{"seq":1}`))
}
