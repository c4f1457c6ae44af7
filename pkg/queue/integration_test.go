package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runforge/agentd/ent"
	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/pkg/config"
	"github.com/runforge/agentd/pkg/models"
	"github.com/runforge/agentd/pkg/services"
	"github.com/runforge/agentd/pkg/upstream"
	testdb "github.com/runforge/agentd/test/database"
)

// intTestQueueConfig returns a queue config suitable for integration tests.
func intTestQueueConfig() *config.QueueConfig {
	return &config.QueueConfig{
		WorkerCount:             2,
		MaxConcurrentRuns:       10,
		PollInterval:            100 * time.Millisecond,
		PollIntervalJitter:      0,
		RunTimeout:              30 * time.Second,
		GracefulShutdownTimeout: 10 * time.Second,
		OrphanScanInterval:      1 * time.Hour,
		OrphanThreshold:         2 * time.Second,
	}
}

// awaitCondition polls until condition returns true or the timeout elapses.
func awaitCondition(t *testing.T, timeout, interval time.Duration, msg string, condition func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case <-deadline:
			t.Fatalf("timed out: %s", msg)
		default:
			if condition() {
				return
			}
			time.Sleep(interval)
		}
	}
}

// starterFunc adapts a function to TurnStarter so each turn can get a fresh
// stream.
type starterFunc func(ctx context.Context, req upstream.TurnRequest) (EventStream, error)

func (f starterFunc) StartTurn(ctx context.Context, req upstream.TurnRequest) (EventStream, error) {
	return f(ctx, req)
}

// TestClaimNextRunFIFO tests that claiming returns the oldest queued run and
// leaves its status untouched.
func TestClaimNextRunFIFO(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	client := dbClient.Client
	store := services.NewRunService(client)
	ctx := context.Background()

	first := createQueuedRun(ctx, t, store)
	// created_at ordering needs distinct timestamps.
	time.Sleep(10 * time.Millisecond)
	second := createQueuedRun(ctx, t, store)

	cfg := intTestQueueConfig()
	w := NewWorker("test-worker-0", "test-pod", client, cfg, nil, nil)

	claimed, err := w.claimNextRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, claimed.ID, "oldest queued run claims first")
	assert.Equal(t, run.StatusQueued, claimed.Status,
		"claiming must not move the run; only the lease winner does")

	// Without the queued → running transition the same run is claimable
	// again: the turn lease, not the claim, provides mutual exclusion.
	again, err := w.claimNextRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// Once the first run leaves the queued set, the next claim yields the
	// second run.
	_, err = store.SetStatus(ctx, first.ID, run.StatusRunning, services.StatusUpdate{TurnSeq: 1, PodID: "test-pod"})
	require.NoError(t, err)

	next, err := w.claimNextRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, next.ID)
}

// TestConcurrentClaimsSkipLocked tests that concurrently claiming workers do
// not block one another on the row lock.
func TestConcurrentClaimsSkipLocked(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	client := dbClient.Client
	store := services.NewRunService(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createQueuedRun(ctx, t, store)
	}

	cfg := intTestQueueConfig()
	var claimed atomic.Int64
	errCh := make(chan error, 5)
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w := NewWorker(fmt.Sprintf("worker-%d", workerID), "test-pod", client, cfg, nil, nil)
			r, err := w.claimNextRun(ctx)
			if err != nil {
				errCh <- fmt.Errorf("worker-%d claim failed: %w", workerID, err)
				return
			}
			if r == nil {
				errCh <- fmt.Errorf("worker-%d got nil run without error", workerID)
				return
			}
			claimed.Add(1)
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(5), claimed.Load(), "every worker should claim without blocking")
}

// TestPoolEndToEnd runs real executors over fake upstream streams through
// the full pool lifecycle.
func TestPoolEndToEnd(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	client := dbClient.Client
	store := services.NewRunService(client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	runIDs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		r := createQueuedRun(ctx, t, store)
		runIDs = append(runIDs, r.ID)
	}

	cfg := intTestQueueConfig()
	cfg.PollInterval = 50 * time.Millisecond

	// Every turn gets a fresh two-event stream ending in a completion event.
	starter := starterFunc(func(_ context.Context, req upstream.TurnRequest) (EventStream, error) {
		return &fakeStream{events: []map[string]interface{}{
			{"type": "assistant.delta", "content": "working"},
			{"type": "assistant.message", "content": "done: " + req.RunID},
		}}, nil
	})
	executor := NewRealTurnExecutor("test-pod", store, coord, starter, testAgentConfig(), testLeaseConfig())
	pool := NewWorkerPool("test-pod", client, cfg, executor, store, coord)

	require.NoError(t, pool.Start(ctx))

	awaitCondition(t, 10*time.Second, 100*time.Millisecond,
		"waiting for all runs to complete",
		func() bool {
			n, err := client.Run.Query().
				Where(run.StatusEQ(run.StatusCompleted)).
				Count(ctx)
			return err == nil && n == 3
		})

	pool.Stop()

	for _, id := range runIDs {
		r, err := store.GetRun(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, run.StatusCompleted, r.Status)
		assert.Equal(t, 3, r.LastEventSeq, "run %s: two upstream events plus the terminal marker", id)
		assert.Equal(t, 1, r.TurnSeq)
		require.NotNil(t, r.LatestOutput)
		assert.Equal(t, "done: "+id, *r.LatestOutput)
	}

	health := pool.Health()
	assert.Equal(t, 2, health.TotalWorkers)
	assert.Equal(t, 0, health.QueueDepth)
}

// TestCapacityLimits tests that a full pod stops claiming until a running
// turn finishes.
func TestCapacityLimits(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	client := dbClient.Client
	store := services.NewRunService(client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createQueuedRun(ctx, t, store)
	}

	// Workers match MaxConcurrentRuns to avoid startup races; the capacity
	// branch itself is probed with a separate worker below.
	cfg := intTestQueueConfig()
	cfg.WorkerCount = 2
	cfg.MaxConcurrentRuns = 2
	cfg.PollInterval = 50 * time.Millisecond

	// Streams block until released so runs pile up in running.
	releaseCh := make(chan struct{})
	var inFlight atomic.Int64
	starter := starterFunc(func(ctx context.Context, _ upstream.TurnRequest) (EventStream, error) {
		inFlight.Add(1)
		stream := &fakeStream{}
		stream.onNext = func(callIndex int) {
			if callIndex == 0 {
				select {
				case <-releaseCh:
				case <-ctx.Done():
				}
				inFlight.Add(-1)
			}
		}
		return stream, nil
	})
	executor := NewRealTurnExecutor("test-pod", store, coord, starter, testAgentConfig(), testLeaseConfig())
	pool := NewWorkerPool("test-pod", client, cfg, executor, store, coord)

	require.NoError(t, pool.Start(ctx))

	// The pool climbs to the capacity limit. inFlight flips after the
	// queued → running transition commits, so the DB count below is stable.
	awaitCondition(t, 5*time.Second, 10*time.Millisecond,
		fmt.Sprintf("waiting for %d runs in flight, got: %d", cfg.MaxConcurrentRuns, inFlight.Load()),
		func() bool { return inFlight.Load() == int64(cfg.MaxConcurrentRuns) })

	dbRunning, err := client.Run.Query().
		Where(run.StatusEQ(run.StatusRunning)).
		Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxConcurrentRuns, dbRunning)

	// An extra worker on the same pod refuses to claim while the pod is
	// at capacity, even with three runs still queued.
	aux := NewWorker("test-pod-aux", "test-pod", client, cfg, executor, pool)
	err = aux.pollAndProcess(ctx)
	assert.ErrorIs(t, err, ErrAtCapacity)

	close(releaseCh)

	awaitCondition(t, 10*time.Second, 50*time.Millisecond,
		"waiting for all runs to complete",
		func() bool {
			n, err := client.Run.Query().
				Where(run.StatusEQ(run.StatusCompleted)).
				Count(ctx)
			return err == nil && n == 5
		})

	pool.Stop()
}

// TestOrphanRecovery tests that a running run with a stale heartbeat and no
// live lease is failed with the terminal journal entry.
func TestOrphanRecovery(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	client := dbClient.Client
	store := services.NewRunService(client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	// A run whose pod crashed: running, stale heartbeat, no lease.
	staleBeat := time.Now().Add(-10 * time.Minute)
	dead := createQueuedRun(ctx, t, store)
	_, err := store.SetStatus(ctx, dead.ID, run.StatusRunning, services.StatusUpdate{TurnSeq: 1, PodID: "crashed-pod"})
	require.NoError(t, err)
	err = client.Run.UpdateOneID(dead.ID).SetLastHeartbeatAt(staleBeat).Exec(ctx)
	require.NoError(t, err)

	// A run whose heartbeat writes lag but whose lease is still refreshed.
	lagging := createQueuedRun(ctx, t, store)
	_, err = store.SetStatus(ctx, lagging.ID, run.StatusRunning, services.StatusUpdate{TurnSeq: 1, PodID: "slow-pod"})
	require.NoError(t, err)
	err = client.Run.UpdateOneID(lagging.ID).SetLastHeartbeatAt(staleBeat).Exec(ctx)
	require.NoError(t, err)
	held, err := coord.AcquireLease(ctx, lagging.ID, 1, "slow-pod-owner")
	require.NoError(t, err)
	require.True(t, held)

	cfg := intTestQueueConfig()
	cfg.OrphanThreshold = 1 * time.Second

	pool := &WorkerPool{
		podID:  "test-pod",
		client: client,
		config: cfg,
		store:  store,
		coord:  coord,
	}

	require.NoError(t, pool.detectAndRecoverOrphans(ctx))

	// The dead run is failed with the lease-lost code and a terminal event.
	updated, err := store.GetRun(ctx, dead.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusFailed, updated.Status)
	require.NotNil(t, updated.LatestErrorCode)
	assert.Equal(t, models.ErrorCodeLeaseLost, *updated.LatestErrorCode)

	events, err := store.ListEvents(ctx, dead.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventRunFailed, events[0].EventType)
	assert.Contains(t, events[0].Payload["detail"], "no heartbeat from pod crashed-pod")

	// The lagging run still holds its lease and is left alone.
	untouched, err := store.GetRun(ctx, lagging.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusRunning, untouched.Status)

	pool.orphans.mu.Lock()
	assert.Equal(t, 1, pool.orphans.orphansRecovered)
	pool.orphans.mu.Unlock()
}

// TestStartupOrphanCleanup tests the one-time startup cleanup of runs left
// running by a previous incarnation of this pod.
func TestStartupOrphanCleanup(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	client := dbClient.Client
	store := services.NewRunService(client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	podID := "startup-test-pod"

	mine := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		r := createQueuedRun(ctx, t, store)
		_, err := store.SetStatus(ctx, r.ID, run.StatusRunning, services.StatusUpdate{TurnSeq: 1, PodID: podID})
		require.NoError(t, err)
		mine = append(mine, r.ID)
	}

	// A run on a different pod must not be affected.
	other := createQueuedRun(ctx, t, store)
	_, err := store.SetStatus(ctx, other.ID, run.StatusRunning, services.StatusUpdate{TurnSeq: 1, PodID: "other-pod"})
	require.NoError(t, err)

	require.NoError(t, CleanupStartupOrphans(ctx, client, store, coord, podID))

	for _, id := range mine {
		r, err := store.GetRun(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, run.StatusFailed, r.Status, "run %s should be failed", id)
		require.NotNil(t, r.LatestErrorCode)
		assert.Equal(t, models.ErrorCodeLeaseLost, *r.LatestErrorCode)

		events, err := store.ListEvents(ctx, id, 0, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Contains(t, events[0].Payload["detail"], "restarted while the turn was in flight")
	}

	untouched, err := store.GetRun(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusRunning, untouched.Status, "other pod's run should be untouched")
}

// TestTwoPoolsCompeteForQueue runs two pods against the same database and
// Redis: every run completes exactly once.
func TestTwoPoolsCompeteForQueue(t *testing.T) {
	shared := testdb.NewSharedTestDB(t)
	clientA := shared.NewClient(t)
	clientB := shared.NewClient(t)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	storeA := services.NewRunService(clientA.Client)
	storeB := services.NewRunService(clientB.Client)

	runIDs := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		r := createQueuedRun(ctx, t, storeA)
		runIDs = append(runIDs, r.ID)
	}

	newPool := func(podID string, client *ent.Client, store *services.RunService) *WorkerPool {
		cfg := intTestQueueConfig()
		cfg.PollInterval = 50 * time.Millisecond
		starter := starterFunc(func(_ context.Context, _ upstream.TurnRequest) (EventStream, error) {
			return &fakeStream{events: []map[string]interface{}{
				{"type": "assistant.message", "content": "handled by " + podID},
			}}, nil
		})
		executor := NewRealTurnExecutor(podID, store, coord, starter, testAgentConfig(), testLeaseConfig())
		return NewWorkerPool(podID, client, cfg, executor, store, coord)
	}

	poolA := newPool("pod-a", clientA.Client, storeA)
	poolB := newPool("pod-b", clientB.Client, storeB)

	require.NoError(t, poolA.Start(ctx))
	require.NoError(t, poolB.Start(ctx))

	awaitCondition(t, 15*time.Second, 100*time.Millisecond,
		"waiting for both pods to drain the queue",
		func() bool {
			n, err := clientA.Client.Run.Query().
				Where(run.StatusEQ(run.StatusCompleted)).
				Count(ctx)
			return err == nil && n == 4
		})

	poolA.Stop()
	poolB.Stop()

	// Exactly one turn per run: the journal has the event and its terminal
	// marker, never a duplicate from the losing pod.
	for _, id := range runIDs {
		r, err := storeA.GetRun(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, run.StatusCompleted, r.Status)
		assert.Equal(t, 2, r.LastEventSeq, "run %s journaled exactly one turn", id)
		assert.Equal(t, 1, r.TurnSeq)
		require.NotNil(t, r.PodID)
		assert.Contains(t, []string{"pod-a", "pod-b"}, *r.PodID)
	}
}

// TestPoolGracefulStop lets an in-flight turn finish before Stop returns.
func TestPoolGracefulStop(t *testing.T) {
	dbClient := testdb.NewTestClient(t)
	client := dbClient.Client
	store := services.NewRunService(client)
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	r := createQueuedRun(ctx, t, store)

	cfg := intTestQueueConfig()
	cfg.WorkerCount = 1
	cfg.PollInterval = 50 * time.Millisecond

	started := make(chan struct{})
	var startedOnce sync.Once
	releaseCh := make(chan struct{})
	starter := starterFunc(func(_ context.Context, _ upstream.TurnRequest) (EventStream, error) {
		stream := &fakeStream{}
		stream.onNext = func(int) {
			startedOnce.Do(func() { close(started) })
			<-releaseCh
		}
		return stream, nil
	})
	executor := NewRealTurnExecutor("test-pod", store, coord, starter, testAgentConfig(), testLeaseConfig())
	pool := NewWorkerPool("test-pod", client, cfg, executor, store, coord)

	require.NoError(t, pool.Start(ctx))

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("turn never started")
	}

	stopDone := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopDone)
	}()

	// Stop blocks on the in-flight turn.
	select {
	case <-stopDone:
		t.Fatal("Stop returned while a turn was in flight")
	case <-time.After(200 * time.Millisecond):
	}

	close(releaseCh)

	select {
	case <-stopDone:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return after the turn finished")
	}

	updated, err := store.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StatusCompleted, updated.Status, "in-flight turn finished before shutdown")
}
