package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runforge/agentd/ent"
	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/pkg/config"
	"github.com/runforge/agentd/pkg/coordinator"
	"github.com/runforge/agentd/pkg/models"
	"github.com/runforge/agentd/pkg/services"
	"github.com/runforge/agentd/pkg/upstream"
	testdb "github.com/runforge/agentd/test/database"
)

// fakeStream replays scripted events and then ends with endErr (io.EOF when
// unset). onNext, when set, runs before each delivery so tests can flip
// coordinator state at exact points in the stream.
type fakeStream struct {
	events []map[string]interface{}
	endErr error
	onNext func(callIndex int)

	mu     sync.Mutex
	calls  int
	closed atomic.Bool
}

func (s *fakeStream) Next() (map[string]interface{}, error) {
	s.mu.Lock()
	idx := s.calls
	s.calls++
	s.mu.Unlock()

	if s.onNext != nil {
		s.onNext(idx)
	}
	if idx < len(s.events) {
		return s.events[idx], nil
	}
	if s.endErr != nil {
		return nil, s.endErr
	}
	return nil, io.EOF
}

func (s *fakeStream) Close() error {
	s.closed.Store(true)
	return nil
}

// fakeStarter hands out a single scripted stream and records the request.
type fakeStarter struct {
	stream EventStream
	err    error

	mu     sync.Mutex
	calls  int
	gotReq upstream.TurnRequest
}

func (f *fakeStarter) StartTurn(_ context.Context, req upstream.TurnRequest) (EventStream, error) {
	f.mu.Lock()
	f.calls++
	f.gotReq = req
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.stream, nil
}

func (f *fakeStarter) startCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLeaseConfig() config.LeaseConfig {
	return config.LeaseConfig{
		TTL:             2 * time.Second,
		RefreshInterval: 25 * time.Millisecond,
		CancelTTL:       time.Minute,
	}
}

func testAgentConfig() config.AgentConfig {
	return config.AgentConfig{
		ServiceURL:           "http://agent.local",
		CompletionEventTypes: []string{"assistant.message"},
	}
}

// newTestCoordinator wires a real coordinator against in-process Redis.
func newTestCoordinator(t *testing.T) (*coordinator.RedisCoordinator, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return coordinator.NewRedisCoordinatorFromClient(rdb, testLeaseConfig()), mr
}

func createQueuedRun(ctx context.Context, t *testing.T, store *services.RunService) *ent.Run {
	t.Helper()
	r, err := store.CreateRun(ctx, services.CreateRunInput{
		ProjectID:   "proj-1",
		OwnerID:     "alice",
		UserMessage: "inspect the cluster",
		BearerToken: "tok-123",
	})
	require.NoError(t, err)
	return r
}

// collectFrames drains n frames from a live subscription, failing the test
// on timeout.
func collectFrames(t *testing.T, sub *coordinator.Subscription, n int) []models.EventFrame {
	t.Helper()
	frames := make([]models.EventFrame, 0, n)
	for len(frames) < n {
		select {
		case raw, ok := <-sub.Channel():
			if !ok {
				t.Fatalf("subscription closed after %d of %d frames", len(frames), n)
			}
			frame, err := models.DecodeEventFrame(raw)
			require.NoError(t, err)
			frames = append(frames, frame)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for frame %d of %d", len(frames)+1, n)
		}
	}
	return frames
}

func TestExecuteTurn_CompletedFlow(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	sub, err := coord.Subscribe(ctx, r.ID)
	require.NoError(t, err)
	defer sub.Close()

	starter := &fakeStarter{stream: &fakeStream{events: []map[string]interface{}{
		{"type": "assistant.delta", "content": "Checking"},
		{"type": "assistant.message", "content": "All pods healthy."},
	}}}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	result, err := exec.ExecuteTurn(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, run.StatusCompleted, result.Status)
	assert.Equal(t, 1, result.TurnSeq)
	assert.Equal(t, 2, result.EventCount)
	assert.Empty(t, result.ErrorCode)

	// The upstream request carries the run's stored turn input.
	assert.Equal(t, "proj-1", starter.gotReq.ProjectID)
	assert.Equal(t, r.ID, starter.gotReq.RunID)
	assert.Equal(t, "inspect the cluster", starter.gotReq.UserMessage)
	assert.Equal(t, "tok-123", starter.gotReq.BearerToken)

	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusCompleted, updated.Status)
	assert.Equal(t, 3, updated.LastEventSeq, "two upstream events plus the terminal marker")
	assert.Equal(t, 1, updated.TurnSeq)
	require.NotNil(t, updated.LatestOutput)
	assert.Equal(t, "All pods healthy.", *updated.LatestOutput)
	assert.Nil(t, updated.LatestErrorCode)
	assert.Nil(t, updated.BearerToken, "credential is dropped on terminal transition")
	require.NotNil(t, updated.PodID)
	assert.Equal(t, "pod-1", *updated.PodID)
	assert.NotNil(t, updated.StartedAt)
	assert.NotNil(t, updated.CompletedAt)

	events, err := store.ListEvents(ctx, r.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "assistant.delta", events[0].EventType)
	assert.Equal(t, "assistant.message", events[1].EventType)
	assert.Equal(t, models.EventRunCompleted, events[2].EventType)
	assert.Equal(t, "completed", events[2].Payload["status"])

	// Every journaled event, terminal included, reached the live channel.
	frames := collectFrames(t, sub, 3)
	for i, f := range frames {
		assert.Equal(t, i+1, f.Seq)
	}
	assert.Equal(t, models.EventRunCompleted, frames[2].EventType)

	// Turn coordination state is gone.
	owner, err := coord.LeaseOwner(ctx, r.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, owner, "lease should be released")
}

func TestExecuteTurn_NoCompletionEventLeavesOutputUnset(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	starter := &fakeStarter{stream: &fakeStream{events: []map[string]interface{}{
		{"type": "assistant.delta", "content": "partial"},
	}}}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	result, err := exec.ExecuteTurn(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, run.StatusCompleted, result.Status)

	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.LatestOutput, "deltas are not captured as latest_output")
}

func TestExecuteTurn_RunBusy(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	// Another worker already holds the turn lease.
	acquired, err := coord.AcquireLease(ctx, r.ID, 1, "other-owner")
	require.NoError(t, err)
	require.True(t, acquired)

	starter := &fakeStarter{stream: &fakeStream{}}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	_, err = exec.ExecuteTurn(ctx, r)
	assert.ErrorIs(t, err, ErrRunBusy)
	assert.Equal(t, 0, starter.startCalls(), "upstream must not be contacted without the lease")

	// The run is untouched.
	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusQueued, updated.Status)
	assert.Equal(t, 0, updated.LastEventSeq)
}

func TestExecuteTurn_CancelBeforeOpen(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	// Cancel arrives while the run is still queued; turn 1 is the target.
	require.NoError(t, coord.RequestCancel(ctx, r.ID, 1))

	starter := &fakeStarter{stream: &fakeStream{events: []map[string]interface{}{
		{"type": "assistant.delta", "content": "never sent"},
	}}}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	result, err := exec.ExecuteTurn(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, run.StatusCancelled, result.Status)
	assert.Equal(t, 0, result.EventCount)
	assert.Equal(t, 0, starter.startCalls(), "cancelled before the upstream call")

	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusCancelled, updated.Status)
	assert.Nil(t, updated.LatestErrorCode, "cancellation is not an error")

	events, err := store.ListEvents(ctx, r.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventRunCancelled, events[0].EventType)
	assert.Equal(t, "cancelled", events[0].Payload["status"])

	// Terminal cleanup consumed the marker.
	pending, err := coord.IsCancelRequested(ctx, r.ID, 1)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestExecuteTurn_CancelBetweenEvents(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	stream := &fakeStream{
		events: []map[string]interface{}{
			{"type": "assistant.delta", "content": "first"},
			{"type": "assistant.delta", "content": "second"},
			{"type": "assistant.message", "content": "done"},
		},
	}
	// The marker lands while the second event is in flight: the first event
	// is journaled, the second is dropped.
	stream.onNext = func(callIndex int) {
		if callIndex == 1 {
			require.NoError(t, coord.RequestCancel(ctx, r.ID, 1))
		}
	}

	starter := &fakeStarter{stream: stream}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	result, err := exec.ExecuteTurn(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, run.StatusCancelled, result.Status)
	assert.Equal(t, 1, result.EventCount)

	events, err := store.ListEvents(ctx, r.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "assistant.delta", events[0].EventType)
	assert.Equal(t, "first", events[0].Payload["content"])
	assert.Equal(t, models.EventRunCancelled, events[1].EventType)

	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusCancelled, updated.Status)
}

func TestExecuteTurn_UpstreamTimeout(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	starter := &fakeStarter{stream: &fakeStream{
		events: []map[string]interface{}{
			{"type": "assistant.delta", "content": "partial"},
		},
		endErr: fmt.Errorf("%w: no data for 30s", upstream.ErrTimeout),
	}}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	result, err := exec.ExecuteTurn(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, run.StatusTimeout, result.Status)
	assert.Equal(t, models.ErrorCodeTimeout, result.ErrorCode)
	assert.Equal(t, 1, result.EventCount, "events before the stall stay journaled")

	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusTimeout, updated.Status)
	require.NotNil(t, updated.LatestErrorCode)
	assert.Equal(t, models.ErrorCodeTimeout, *updated.LatestErrorCode)

	events, err := store.ListEvents(ctx, r.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventRunTimeout, events[1].EventType)
	assert.Equal(t, models.ErrorCodeTimeout, events[1].Payload["error_code"])
}

func TestExecuteTurn_DeadlineExceeded(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	turnCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	// The stream outlives the turn budget; the worker's deadline fires.
	stream := &fakeStream{endErr: errors.New("stream torn down")}
	stream.onNext = func(int) {
		select {
		case <-turnCtx.Done():
		case <-time.After(5 * time.Second):
		}
	}

	starter := &fakeStarter{stream: stream}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	result, err := exec.ExecuteTurn(turnCtx, r)
	require.NoError(t, err)
	assert.Equal(t, run.StatusTimeout, result.Status)
	assert.Equal(t, models.ErrorCodeTimeout, result.ErrorCode)

	// Terminal bookkeeping ran on its own context after the deadline.
	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusTimeout, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestExecuteTurn_UpstreamHTTPError(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	starter := &fakeStarter{err: &upstream.HTTPError{StatusCode: 502, Body: "bad gateway"}}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	result, err := exec.ExecuteTurn(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, run.StatusFailed, result.Status)
	assert.Equal(t, "AGENT_UPSTREAM_502", result.ErrorCode)

	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusFailed, updated.Status)
	require.NotNil(t, updated.LatestErrorCode)
	assert.Equal(t, "AGENT_UPSTREAM_502", *updated.LatestErrorCode)

	events, err := store.ListEvents(ctx, r.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventRunFailed, events[0].EventType)
	assert.Contains(t, events[0].Payload["detail"], "upstream returned HTTP 502")
}

func TestExecuteTurn_GenericUpstreamError(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	starter := &fakeStarter{err: errors.New("connection refused")}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	result, err := exec.ExecuteTurn(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, run.StatusFailed, result.Status)
	assert.Equal(t, models.ErrorCodeGeneric, result.ErrorCode)
}

func TestExecuteTurn_LeaseLost(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, mr := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	leaseKey := fmt.Sprintf("agentic:run:%s:turn:1:lease", r.ID)

	stream := &fakeStream{events: []map[string]interface{}{
		{"type": "assistant.delta", "content": "doomed"},
	}}
	// Steal the lease mid-stream, then give the refresher (25ms cadence)
	// time to notice before the event is delivered.
	stream.onNext = func(callIndex int) {
		if callIndex == 0 {
			mr.Del(leaseKey)
			time.Sleep(300 * time.Millisecond)
		}
	}

	starter := &fakeStarter{stream: stream}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	result, err := exec.ExecuteTurn(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, run.StatusFailed, result.Status)
	assert.Equal(t, models.ErrorCodeLeaseLost, result.ErrorCode)
	assert.Equal(t, 0, result.EventCount, "nothing is journaled after the lease is gone")

	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusFailed, updated.Status)
	require.NotNil(t, updated.LatestErrorCode)
	assert.Equal(t, models.ErrorCodeLeaseLost, *updated.LatestErrorCode)

	events, err := store.ListEvents(ctx, r.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventRunFailed, events[0].EventType)
}

func TestExecuteTurn_HeartbeatAdvances(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := services.NewRunService(client.Client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	// Hold the stream open long enough for several refresher ticks.
	release := make(chan struct{})
	stream := &fakeStream{}
	stream.onNext = func(int) { <-release }

	starter := &fakeStarter{stream: stream}
	exec := NewRealTurnExecutor("pod-1", store, coord, starter, testAgentConfig(), testLeaseConfig())

	type turnDone struct {
		result *TurnResult
		err    error
	}
	done := make(chan turnDone, 1)
	go func() {
		result, err := exec.ExecuteTurn(ctx, r)
		done <- turnDone{result, err}
	}()

	// Wait until the refresher has bumped the heartbeat at least once.
	var first time.Time
	require.Eventually(t, func() bool {
		updated, err := store.GetRun(ctx, r.ID)
		if err != nil || updated.LastHeartbeatAt == nil {
			return false
		}
		first = *updated.LastHeartbeatAt
		return true
	}, 5*time.Second, 10*time.Millisecond, "heartbeat never set")

	// And that it keeps advancing.
	require.Eventually(t, func() bool {
		updated, err := store.GetRun(ctx, r.ID)
		if err != nil || updated.LastHeartbeatAt == nil {
			return false
		}
		return updated.LastHeartbeatAt.After(first)
	}, 5*time.Second, 10*time.Millisecond, "heartbeat never advanced")

	close(release)
	select {
	case d := <-done:
		require.NoError(t, d.err)
		assert.Equal(t, run.StatusCompleted, d.result.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("turn did not finish after release")
	}
}
