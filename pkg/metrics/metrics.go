// Package metrics exposes Prometheus collectors for the run subsystem.
// Collectors live on the default registry; cmd/agentd serves them through
// promhttp at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agentd_runs_created_total",
		Help: "Runs accepted through POST /runs",
	})

	turnsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentd_turns_finished_total",
		Help: "Turns finished by terminal status",
	}, []string{"status"}) // status=completed|failed|timeout|cancelled

	turnDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "agentd_turn_duration_seconds",
		Help: "Wall-clock duration of executed turns",
		// Turns range from sub-second cancellations to the run timeout
		// (minutes), so the default buckets are too narrow.
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 13),
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agentd_queue_depth",
		Help: "Queued runs waiting for a worker (last sample)",
	})

	activeRuns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agentd_active_runs",
		Help: "Running runs owned by this pod (last sample)",
	})

	liveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agentd_live_subscribers",
		Help: "Open event stream connections",
	})

	orphansRecovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agentd_orphans_recovered_total",
		Help: "Running runs failed by orphan recovery",
	})
)

func IncRunCreated() { runsCreated.Inc() }

func IncTurnFinished(status string) { turnsFinished.WithLabelValues(status).Inc() }

func ObserveTurnDuration(d time.Duration) { turnDurationSeconds.Observe(d.Seconds()) }

func SetQueueDepth(n int) { queueDepth.Set(float64(n)) }
func SetActiveRuns(n int) { activeRuns.Set(float64(n)) }

func IncLiveSubscribers() { liveSubscribers.Inc() }
func DecLiveSubscribers() { liveSubscribers.Dec() }

func AddOrphansRecovered(n int) { orphansRecovered.Add(float64(n)) }
