package config

import (
	"fmt"
	"time"
)

// QueueConfig contains queue and worker pool configuration.
// These values control how runs are polled, claimed, and executed.
type QueueConfig struct {
	// WorkerCount is the number of worker goroutines per replica/pod.
	// Each worker independently polls for queued runs.
	WorkerCount int

	// MaxConcurrentRuns caps the number of runs executing on this pod.
	// Enforced by a database COUNT(*) check before each claim.
	MaxConcurrentRuns int

	// PollInterval is the base interval for checking queued runs.
	PollInterval time.Duration

	// PollIntervalJitter is the random jitter added to PollInterval.
	// Actual interval: PollInterval ± PollIntervalJitter.
	PollIntervalJitter time.Duration

	// RunTimeout is the wall clock budget for a single turn.
	RunTimeout time.Duration

	// GracefulShutdownTimeout is the max time to wait for active turns
	// to finish during shutdown. Should match RunTimeout.
	GracefulShutdownTimeout time.Duration

	// OrphanScanInterval is how often to scan for orphaned runs.
	OrphanScanInterval time.Duration

	// OrphanThreshold is how long a running run can go without a
	// heartbeat before it is considered orphaned.
	OrphanThreshold time.Duration
}

// DefaultQueueConfig returns the built-in queue defaults.
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		WorkerCount:             5,
		MaxConcurrentRuns:       20,
		PollInterval:            1 * time.Second,
		PollIntervalJitter:      500 * time.Millisecond,
		RunTimeout:              5 * time.Minute,
		GracefulShutdownTimeout: 5 * time.Minute,
		OrphanScanInterval:      1 * time.Minute,
		OrphanThreshold:         5 * time.Minute,
	}
}

// LoadQueueFromEnv builds a QueueConfig from environment variables,
// starting from the defaults. runTimeout is the turn budget
// (RUN_TIMEOUT_SECONDS) already parsed by LoadFromEnv.
func LoadQueueFromEnv(runTimeout time.Duration) (*QueueConfig, error) {
	cfg := DefaultQueueConfig()
	cfg.RunTimeout = runTimeout
	cfg.GracefulShutdownTimeout = runTimeout

	var err error
	if cfg.WorkerCount, err = envInt("WORKER_COUNT", cfg.WorkerCount); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrentRuns, err = envInt("MAX_CONCURRENT_RUNS", cfg.MaxConcurrentRuns); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = envDuration("WORKER_POLL_INTERVAL", cfg.PollInterval); err != nil {
		return nil, err
	}
	if cfg.PollIntervalJitter, err = envDuration("WORKER_POLL_JITTER", cfg.PollIntervalJitter); err != nil {
		return nil, err
	}
	if cfg.OrphanScanInterval, err = envDuration("ORPHAN_SCAN_INTERVAL", cfg.OrphanScanInterval); err != nil {
		return nil, err
	}
	if cfg.OrphanThreshold, err = envDuration("ORPHAN_THRESHOLD", cfg.OrphanThreshold); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks queue configuration bounds.
func (q *QueueConfig) Validate() error {
	if q == nil {
		return fmt.Errorf("queue configuration is nil")
	}
	if q.WorkerCount < 1 || q.WorkerCount > 50 {
		return fmt.Errorf("worker_count must be between 1 and 50, got %d", q.WorkerCount)
	}
	if q.MaxConcurrentRuns < 1 {
		return fmt.Errorf("max_concurrent_runs must be at least 1, got %d", q.MaxConcurrentRuns)
	}
	if q.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", q.PollInterval)
	}
	if q.PollIntervalJitter < 0 {
		return fmt.Errorf("poll_interval_jitter must be non-negative, got %v", q.PollIntervalJitter)
	}
	if q.PollIntervalJitter >= q.PollInterval {
		return fmt.Errorf("poll_interval_jitter must be less than poll_interval (%v >= %v)",
			q.PollIntervalJitter, q.PollInterval)
	}
	if q.RunTimeout <= 0 {
		return fmt.Errorf("run_timeout must be positive, got %v", q.RunTimeout)
	}
	if q.GracefulShutdownTimeout <= 0 {
		return fmt.Errorf("graceful_shutdown_timeout must be positive, got %v", q.GracefulShutdownTimeout)
	}
	if q.OrphanScanInterval <= 0 {
		return fmt.Errorf("orphan_scan_interval must be positive, got %v", q.OrphanScanInterval)
	}
	if q.OrphanThreshold <= 0 {
		return fmt.Errorf("orphan_threshold must be positive, got %v", q.OrphanThreshold)
	}
	return nil
}
