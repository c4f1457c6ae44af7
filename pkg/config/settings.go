package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AgentConfig describes the upstream agent service connection.
type AgentConfig struct {
	// ServiceURL is the base URL of the agent service. Turns are started
	// at {ServiceURL}/copilotkit/{project_id}.
	ServiceURL string

	// CompletionEventTypes lists the upstream event types whose content is
	// captured as the run's latest_output.
	CompletionEventTypes []string
}

// IsCompletionEventType reports whether eventType carries run output that
// should be captured as latest_output.
func (a AgentConfig) IsCompletionEventType(eventType string) bool {
	for _, t := range a.CompletionEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// LeaseConfig controls the per-turn Redis lease and the cancel marker.
type LeaseConfig struct {
	// TTL is the lease lifetime. A worker that cannot refresh within TTL
	// loses ownership of the turn.
	TTL time.Duration

	// RefreshInterval is the lease refresh cadence. Clamped to TTL/3 so a
	// lost lease is noticed well before expiry.
	RefreshInterval time.Duration

	// CancelTTL bounds how long a cancel marker outlives its request.
	CancelTTL time.Duration
}

// StreamConfig controls the SSE event stream reader.
type StreamConfig struct {
	// HeartbeatInterval is how often a comment frame is written to idle
	// streams to keep intermediaries from closing the connection.
	HeartbeatInterval time.Duration
}

// RedisConfig holds coordinator connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Settings is the full runtime configuration, sourced from environment
// variables. Database settings live in pkg/database and are loaded there.
type Settings struct {
	Agent  AgentConfig
	Lease  LeaseConfig
	Stream StreamConfig
	Redis  RedisConfig
	Queue  *QueueConfig
}

// LoadFromEnv builds Settings from environment variables, applying defaults
// for anything unset and validating the result.
func LoadFromEnv() (*Settings, error) {
	runTimeout, err := envSeconds("RUN_TIMEOUT_SECONDS", 300*time.Second)
	if err != nil {
		return nil, err
	}
	heartbeat, err := envSeconds("SSE_HEARTBEAT_SECONDS", 15*time.Second)
	if err != nil {
		return nil, err
	}
	lockTTL, err := envSeconds("RUN_LOCK_TTL_SECONDS", 90*time.Second)
	if err != nil {
		return nil, err
	}
	lockRefresh, err := envSeconds("RUN_LOCK_REFRESH_SECONDS", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cancelTTL, err := envSeconds("CANCEL_TTL_SECONDS", 900*time.Second)
	if err != nil {
		return nil, err
	}
	redisDB, err := envInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	queue, err := LoadQueueFromEnv(runTimeout)
	if err != nil {
		return nil, err
	}

	// A refresher slower than TTL/3 leaves too little margin between a
	// missed refresh and lease expiry.
	if maxRefresh := lockTTL / 3; lockRefresh > maxRefresh {
		lockRefresh = maxRefresh
	}

	s := &Settings{
		Agent: AgentConfig{
			ServiceURL:           envString("AGENT_SERVICE_URL", "http://localhost:8000"),
			CompletionEventTypes: splitCSV(envString("COMPLETION_EVENT_TYPES", "assistant.message")),
		},
		Lease: LeaseConfig{
			TTL:             lockTTL,
			RefreshInterval: lockRefresh,
			CancelTTL:       cancelTTL,
		},
		Stream: StreamConfig{
			HeartbeatInterval: heartbeat,
		},
		Redis: RedisConfig{
			Addr:     envString("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Queue: queue,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks cross-field constraints that the per-variable parsers
// cannot express.
func (s *Settings) Validate() error {
	if s.Agent.ServiceURL == "" {
		return fmt.Errorf("AGENT_SERVICE_URL must not be empty")
	}
	if len(s.Agent.CompletionEventTypes) == 0 {
		return fmt.Errorf("COMPLETION_EVENT_TYPES must name at least one event type")
	}
	if s.Lease.TTL <= 0 {
		return fmt.Errorf("RUN_LOCK_TTL_SECONDS must be positive")
	}
	if s.Lease.RefreshInterval <= 0 {
		return fmt.Errorf("RUN_LOCK_REFRESH_SECONDS must be positive")
	}
	if s.Lease.CancelTTL <= 0 {
		return fmt.Errorf("CANCEL_TTL_SECONDS must be positive")
	}
	if s.Stream.HeartbeatInterval <= 0 {
		return fmt.Errorf("SSE_HEARTBEAT_SECONDS must be positive")
	}
	if s.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR must not be empty")
	}
	if err := s.Queue.Validate(); err != nil {
		return err
	}
	// Heartbeats bump at the lease refresh cadence, so refreshes slower
	// than the orphan threshold would make healthy runs look orphaned.
	if s.Lease.RefreshInterval >= s.Queue.OrphanThreshold {
		return fmt.Errorf("RUN_LOCK_REFRESH_SECONDS must be less than ORPHAN_THRESHOLD (%v >= %v)",
			s.Lease.RefreshInterval, s.Queue.OrphanThreshold)
	}
	return nil
}

func envString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func envInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// envSeconds reads an integer number of seconds.
func envSeconds(key string, defaultVal time.Duration) (time.Duration, error) {
	n, err := envInt(key, int(defaultVal/time.Second))
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

// envDuration reads a Go duration string such as "500ms" or "1m".
func envDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
