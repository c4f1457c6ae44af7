package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQueueConfig(t *testing.T) {
	cfg := DefaultQueueConfig()

	assert.Equal(t, 5, cfg.WorkerCount)
	assert.Equal(t, 20, cfg.MaxConcurrentRuns)
	assert.Equal(t, 1*time.Second, cfg.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.PollIntervalJitter)
	assert.Equal(t, 5*time.Minute, cfg.RunTimeout)
	assert.Equal(t, 5*time.Minute, cfg.GracefulShutdownTimeout)
	assert.Equal(t, 1*time.Minute, cfg.OrphanScanInterval)
	assert.Equal(t, 5*time.Minute, cfg.OrphanThreshold)
}

func TestQueueConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *QueueConfig)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(q *QueueConfig) {},
		},
		{
			name:    "worker count too low",
			mutate:  func(q *QueueConfig) { q.WorkerCount = 0 },
			wantErr: "worker_count must be between 1 and 50",
		},
		{
			name:    "worker count too high",
			mutate:  func(q *QueueConfig) { q.WorkerCount = 51 },
			wantErr: "worker_count must be between 1 and 50",
		},
		{
			name:    "max concurrent runs zero",
			mutate:  func(q *QueueConfig) { q.MaxConcurrentRuns = 0 },
			wantErr: "max_concurrent_runs must be at least 1",
		},
		{
			name:    "poll interval zero",
			mutate:  func(q *QueueConfig) { q.PollInterval = 0 },
			wantErr: "poll_interval must be positive",
		},
		{
			name:    "negative jitter",
			mutate:  func(q *QueueConfig) { q.PollIntervalJitter = -time.Second },
			wantErr: "poll_interval_jitter must be non-negative",
		},
		{
			name: "jitter equal to poll interval",
			mutate: func(q *QueueConfig) {
				q.PollInterval = time.Second
				q.PollIntervalJitter = time.Second
			},
			wantErr: "poll_interval_jitter must be less than poll_interval",
		},
		{
			name:   "zero jitter is valid",
			mutate: func(q *QueueConfig) { q.PollIntervalJitter = 0 },
		},
		{
			name:    "run timeout zero",
			mutate:  func(q *QueueConfig) { q.RunTimeout = 0 },
			wantErr: "run_timeout must be positive",
		},
		{
			name:    "graceful shutdown timeout zero",
			mutate:  func(q *QueueConfig) { q.GracefulShutdownTimeout = 0 },
			wantErr: "graceful_shutdown_timeout must be positive",
		},
		{
			name:    "orphan scan interval zero",
			mutate:  func(q *QueueConfig) { q.OrphanScanInterval = 0 },
			wantErr: "orphan_scan_interval must be positive",
		},
		{
			name:    "orphan threshold zero",
			mutate:  func(q *QueueConfig) { q.OrphanThreshold = 0 },
			wantErr: "orphan_threshold must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultQueueConfig()
			tt.mutate(q)

			err := q.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestQueueConfigValidate_Nil(t *testing.T) {
	var q *QueueConfig
	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue configuration is nil")
}
