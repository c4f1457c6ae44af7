package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/runforge/agentd/ent"
	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/pkg/metrics"
	"github.com/runforge/agentd/pkg/models"
	"github.com/runforge/agentd/pkg/services"
)

// orphanState tracks orphan detection metrics (thread-safe).
type orphanState struct {
	mu               sync.Mutex
	lastOrphanScan   time.Time
	orphansRecovered int
}

// runOrphanDetection periodically scans for orphaned runs.
// All pods run this independently — operations are idempotent.
func (p *WorkerPool) runOrphanDetection(ctx context.Context) {
	ticker := time.NewTicker(p.config.OrphanScanInterval)
	defer ticker.Stop()

	p.sampleQueueGauges(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			if err := p.detectAndRecoverOrphans(ctx); err != nil {
				slog.Error("Orphan detection failed", "error", err)
			}
			p.sampleQueueGauges(ctx)
		}
	}
}

// sampleQueueGauges refreshes the queue depth and active-run gauges. Failed
// samples keep the previous value; the next tick retries.
func (p *WorkerPool) sampleQueueGauges(ctx context.Context) {
	if depth, err := p.store.CountByStatus(ctx, run.StatusQueued); err == nil {
		metrics.SetQueueDepth(depth)
	}
	if active, err := p.store.CountActiveOnPod(ctx, p.podID); err == nil {
		metrics.SetActiveRuns(active)
	}
}

// detectAndRecoverOrphans finds running runs with stale heartbeats whose
// turn lease has expired and fails them. A stale heartbeat alone is not
// proof of death: the lease is checked so a run whose heartbeat writes are
// merely lagging is left alone.
func (p *WorkerPool) detectAndRecoverOrphans(ctx context.Context) error {
	threshold := time.Now().Add(-p.config.OrphanThreshold)

	candidates, err := p.client.Run.Query().
		Where(
			run.StatusEQ(run.StatusRunning),
			run.LastHeartbeatAtNotNil(),
			run.LastHeartbeatAtLT(threshold),
		).
		All(ctx)
	if err != nil {
		return fmt.Errorf("failed to query orphaned runs: %w", err)
	}

	if len(candidates) == 0 {
		p.orphans.mu.Lock()
		p.orphans.lastOrphanScan = time.Now()
		p.orphans.mu.Unlock()
		return nil
	}

	recovered := 0
	for _, r := range candidates {
		owner, err := p.coord.LeaseOwner(ctx, r.ID, r.TurnSeq)
		if err != nil {
			slog.Error("Failed to check lease for orphan candidate",
				"run_id", r.ID,
				"error", err)
			continue
		}
		if owner != "" {
			// Lease is alive; the worker holding it still refreshes.
			continue
		}

		if err := p.recoverOrphanedRun(ctx, r); err != nil {
			slog.Error("Failed to recover orphaned run",
				"run_id", r.ID,
				"error", err)
			continue
		}
		recovered++
	}

	if recovered > 0 {
		slog.Warn("Recovered orphaned runs", "count", recovered)
		metrics.AddOrphansRecovered(recovered)
	}

	p.orphans.mu.Lock()
	p.orphans.lastOrphanScan = time.Now()
	p.orphans.orphansRecovered += recovered
	p.orphans.mu.Unlock()

	return nil
}

// recoverOrphanedRun fails a single run whose worker died mid-turn.
func (p *WorkerPool) recoverOrphanedRun(ctx context.Context, r *ent.Run) error {
	lastHeartbeat := "unknown"
	if r.LastHeartbeatAt != nil {
		lastHeartbeat = r.LastHeartbeatAt.Format(time.RFC3339)
	}
	podID := "unknown"
	if r.PodID != nil {
		podID = *r.PodID
	}
	detail := fmt.Sprintf("orphaned: no heartbeat from pod %s since %s", podID, lastHeartbeat)

	if err := failOrphanedRun(ctx, p.store, p.coord, r, detail); err != nil {
		return err
	}

	slog.Warn("Orphaned run marked as failed",
		"run_id", r.ID,
		"old_pod_id", podID,
		"last_heartbeat", lastHeartbeat)
	return nil
}

// failOrphanedRun writes the terminal journal entry, status, and live frame
// for a run that lost its worker. The journal append is the usual terminal
// sequence minus the lease release (there is no lease left to release).
func failOrphanedRun(ctx context.Context, store RunStore, coord Coordinator, r *ent.Run, detail string) error {
	payload := map[string]interface{}{
		"status":     string(run.StatusFailed),
		"detail":     detail,
		"error_code": models.ErrorCodeLeaseLost,
	}
	ev, err := store.AppendEvent(ctx, r.ID, models.EventRunFailed, payload)
	if err != nil {
		return fmt.Errorf("failed to append terminal event: %w", err)
	}

	if _, err := store.SetStatus(ctx, r.ID, run.StatusFailed, services.StatusUpdate{
		LatestErrorCode: models.ErrorCodeLeaseLost,
	}); err != nil {
		return fmt.Errorf("failed to mark run as failed: %w", err)
	}

	frame, err := models.NewEventFrame(ev).Encode()
	if err != nil {
		slog.Warn("Failed to encode orphan terminal frame", "run_id", r.ID, "error", err)
	} else if err := coord.PublishEvent(ctx, r.ID, frame); err != nil {
		slog.Warn("Failed to publish orphan terminal frame", "run_id", r.ID, "error", err)
	}

	if err := coord.ClearCancel(ctx, r.ID, r.TurnSeq); err != nil {
		slog.Warn("Failed to clear cancel marker for orphaned run", "run_id", r.ID, "error", err)
	}

	return nil
}

// CleanupStartupOrphans fails runs still marked running under this pod's
// identity from a previous incarnation. Called once during startup, before
// the worker pool begins processing; by then the old process is gone, so no
// lease check is needed.
func CleanupStartupOrphans(ctx context.Context, client *ent.Client, store RunStore, coord Coordinator, podID string) error {
	orphans, err := client.Run.Query().
		Where(
			run.StatusEQ(run.StatusRunning),
			run.PodIDEQ(podID),
		).
		All(ctx)
	if err != nil {
		return fmt.Errorf("failed to query startup orphans: %w", err)
	}

	if len(orphans) == 0 {
		return nil
	}

	slog.Warn("Found startup orphans from previous run",
		"pod_id", podID,
		"count", len(orphans))

	for _, r := range orphans {
		detail := fmt.Sprintf("orphaned: pod %s restarted while the turn was in flight", podID)
		if err := failOrphanedRun(ctx, store, coord, r, detail); err != nil {
			slog.Error("Failed to recover startup orphan",
				"run_id", r.ID,
				"error", err)
			continue
		}
		slog.Info("Startup orphan recovered", "run_id", r.ID)
	}

	return nil
}
