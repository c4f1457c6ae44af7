// Package queue provides run queue management and turn processing
// infrastructure.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/runforge/agentd/ent"
	"github.com/runforge/agentd/ent/run"
)

// Sentinel errors for queue operations.
var (
	// ErrNoRunsAvailable indicates no queued runs are waiting.
	ErrNoRunsAvailable = errors.New("no runs available")

	// ErrAtCapacity indicates this pod reached its concurrent run limit.
	ErrAtCapacity = errors.New("at capacity")

	// ErrRunBusy indicates another worker holds the lease for the run's
	// current turn. Duplicate claims of the same turn are no-ops by virtue
	// of lease acquisition failure.
	ErrRunBusy = errors.New("run busy")
)

// TurnExecutor drives one claimed run turn.
//
// The executor owns the ENTIRE turn lifecycle internally:
//   - lease acquisition and refresh for (run_id, turn_seq)
//   - the queued → running transition
//   - streaming from the agent service, journaling and publishing events
//   - the terminal event, terminal status, and coordination cleanup
//
// The worker only handles: claiming, capacity, the turn deadline, and
// health tracking. ExecuteTurn returns ErrRunBusy when another worker
// already holds the turn lease.
type TurnExecutor interface {
	ExecuteTurn(ctx context.Context, r *ent.Run) (*TurnResult, error)
}

// TurnResult carries just the terminal state of a turn. All events and
// status transitions were already written by the executor during
// processing.
type TurnResult struct {
	Status     run.Status // completed, failed, timeout, cancelled
	TurnSeq    int        // the turn this result closes
	EventCount int        // upstream events journaled this turn
	ErrorCode  string     // AGENT_* token when Status is failed or timeout
}

// PoolHealth contains health information for the entire worker pool.
type PoolHealth struct {
	IsHealthy        bool           `json:"is_healthy"`
	DBReachable      bool           `json:"db_reachable"`
	DBError          string         `json:"db_error,omitempty"`
	PodID            string         `json:"pod_id"`
	ActiveWorkers    int            `json:"active_workers"`
	TotalWorkers     int            `json:"total_workers"`
	ActiveRuns       int            `json:"active_runs"`
	MaxConcurrent    int            `json:"max_concurrent"`
	QueueDepth       int            `json:"queue_depth"`
	WorkerStats      []WorkerHealth `json:"worker_stats"`
	LastOrphanScan   time.Time      `json:"last_orphan_scan"`
	OrphansRecovered int            `json:"orphans_recovered"`
}

// WorkerHealth contains health information for a single worker.
type WorkerHealth struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"` // "idle" or "working"
	CurrentRunID  string    `json:"current_run_id,omitempty"`
	RunsProcessed int       `json:"runs_processed"`
	LastActivity  time.Time `json:"last_activity"`
}
