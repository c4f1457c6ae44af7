package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/runforge/agentd/ent"
	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/pkg/config"
	"github.com/runforge/agentd/pkg/models"
	"github.com/runforge/agentd/pkg/services"
	"github.com/runforge/agentd/pkg/upstream"
)

// terminalWriteTimeout bounds the post-turn bookkeeping (terminal event,
// status, publishes, coordination cleanup), which runs on a fresh context
// because the turn context is usually already cancelled by then.
const terminalWriteTimeout = 30 * time.Second

// RunStore is the journal surface the executor writes through. The count
// queries back pool health and the queue gauges.
type RunStore interface {
	AppendEvent(ctx context.Context, runID, eventType string, payload map[string]interface{}) (*ent.RunEvent, error)
	SetStatus(ctx context.Context, runID string, status run.Status, upd services.StatusUpdate) (*ent.Run, error)
	TouchHeartbeat(ctx context.Context, runID string) error
	CountByStatus(ctx context.Context, status run.Status) (int, error)
	CountActiveOnPod(ctx context.Context, podID string) (int, error)
}

// Coordinator is the subset of coordinator operations the queue uses:
// turn leases and cancel markers for the executor, LeaseOwner for orphan
// detection, PublishEvent for live fan-out.
type Coordinator interface {
	AcquireLease(ctx context.Context, runID string, turnSeq int, owner string) (bool, error)
	RefreshLease(ctx context.Context, runID string, turnSeq int, owner string) (bool, error)
	ReleaseLease(ctx context.Context, runID string, turnSeq int, owner string) (bool, error)
	LeaseOwner(ctx context.Context, runID string, turnSeq int) (string, error)
	IsCancelRequested(ctx context.Context, runID string, turnSeq int) (bool, error)
	ClearCancel(ctx context.Context, runID string, turnSeq int) error
	PublishEvent(ctx context.Context, runID string, frame string) error
}

// EventStream is the consumed surface of an upstream turn stream.
type EventStream interface {
	Next() (map[string]interface{}, error)
	Close() error
}

// TurnStarter opens the upstream event stream for one turn.
type TurnStarter interface {
	StartTurn(ctx context.Context, req upstream.TurnRequest) (EventStream, error)
}

// UpstreamStarter adapts the upstream client to the TurnStarter interface.
type UpstreamStarter struct {
	Client *upstream.Client
}

// StartTurn implements TurnStarter.
func (u UpstreamStarter) StartTurn(ctx context.Context, req upstream.TurnRequest) (EventStream, error) {
	stream, err := u.Client.StartTurn(ctx, req)
	if err != nil {
		return nil, err
	}
	return stream, nil
}

// RealTurnExecutor implements TurnExecutor against the run store, the
// coordinator, and the agent service.
type RealTurnExecutor struct {
	podID    string
	store    RunStore
	coord    Coordinator
	starter  TurnStarter
	agentCfg config.AgentConfig
	refresh  time.Duration
}

// NewRealTurnExecutor creates a turn executor. refresh comes from the lease
// configuration and must leave room for at least one missed refresh before
// the lease TTL expires.
func NewRealTurnExecutor(podID string, store RunStore, coord Coordinator, starter TurnStarter, agentCfg config.AgentConfig, leaseCfg config.LeaseConfig) *RealTurnExecutor {
	return &RealTurnExecutor{
		podID:    podID,
		store:    store,
		coord:    coord,
		starter:  starter,
		agentCfg: agentCfg,
		refresh:  leaseCfg.RefreshInterval,
	}
}

// turnOutcome is the executor's internal terminal decision for one turn.
type turnOutcome struct {
	status       run.Status // terminal status to record
	eventType    string     // terminal journal event type (run.completed, ...)
	detail       string     // human-readable cause for the terminal payload
	errorCode    string     // AGENT_* token; empty for completed/cancelled
	latestOutput string     // final assistant message, captured on completion events
	events       int        // upstream events journaled this turn
	leaseLost    bool       // the lease is no longer ours; do not release it
}

// ExecuteTurn runs one turn of a claimed run: it acquires the turn lease,
// moves the run to running, streams upstream events into the journal, and
// writes the terminal event, status, and live marker. Terminal bookkeeping
// always runs, on a background context, even when the turn context is done.
func (e *RealTurnExecutor) ExecuteTurn(ctx context.Context, r *ent.Run) (*TurnResult, error) {
	// Each enqueue opens the turn directly after the journal's tail.
	turnSeq := r.LastEventSeq + 1
	owner := uuid.New().String()
	log := slog.With("run_id", r.ID, "turn_seq", turnSeq)

	// The lease is the exclusive-writer token for this turn's journal.
	acquired, err := e.coord.AcquireLease(ctx, r.ID, turnSeq, owner)
	if err != nil {
		return nil, fmt.Errorf("acquiring turn lease: %w", err)
	}
	if !acquired {
		log.Debug("Turn lease held elsewhere, skipping")
		return nil, ErrRunBusy
	}

	// Only the lease holder moves the run to running.
	if _, err := e.store.SetStatus(ctx, r.ID, run.StatusRunning, services.StatusUpdate{
		TurnSeq: turnSeq,
		PodID:   e.podID,
	}); err != nil {
		// Surrender the lease so a later enqueue is not blocked for a full
		// TTL.
		if _, rerr := e.coord.ReleaseLease(context.WithoutCancel(ctx), r.ID, turnSeq, owner); rerr != nil {
			log.Warn("Failed to release lease after start failure", "error", rerr)
		}
		return nil, fmt.Errorf("entering running: %w", err)
	}

	log.Info("Turn started", "owner", owner)

	// The refresher shares the stream context: losing the lease cancels the
	// stream so the turn stops writing at the next suspension point.
	streamCtx, cancelStream := context.WithCancel(ctx)
	defer cancelStream()

	var leaseLost atomic.Bool
	var refreshWG sync.WaitGroup
	refreshWG.Add(1)
	go func() {
		defer refreshWG.Done()
		e.runRefresher(streamCtx, r.ID, turnSeq, owner, &leaseLost, cancelStream)
	}()

	outcome := e.streamTurn(streamCtx, r, turnSeq, &leaseLost)

	// Stop the refresher before touching the lease.
	cancelStream()
	refreshWG.Wait()

	finishCtx, cancelFinish := context.WithTimeout(context.Background(), terminalWriteTimeout)
	defer cancelFinish()
	e.finishTurn(finishCtx, r.ID, turnSeq, owner, outcome, log)

	log.Info("Turn finished",
		"status", outcome.status,
		"events", outcome.events,
		"error_code", outcome.errorCode)

	return &TurnResult{
		Status:     outcome.status,
		TurnSeq:    turnSeq,
		EventCount: outcome.events,
		ErrorCode:  outcome.errorCode,
	}, nil
}

// runRefresher extends the turn lease on every tick and bumps the run's
// heartbeat column for orphan detection. A refresh that reports the lease
// gone flags the loss and cancels the stream; transient refresh errors are
// retried on the next tick, escalating to lease loss only through TTL
// expiry.
func (e *RealTurnExecutor) runRefresher(ctx context.Context, runID string, turnSeq int, owner string, lost *atomic.Bool, cancelStream context.CancelFunc) {
	ticker := time.NewTicker(e.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := e.coord.RefreshLease(ctx, runID, turnSeq, owner)
			if err != nil {
				slog.Warn("Lease refresh errored",
					"run_id", runID, "turn_seq", turnSeq, "error", err)
				continue
			}
			if !ok {
				slog.Error("Turn lease lost",
					"run_id", runID, "turn_seq", turnSeq)
				lost.Store(true)
				cancelStream()
				return
			}
			if err := e.store.TouchHeartbeat(ctx, runID); err != nil {
				slog.Warn("Heartbeat update failed", "run_id", runID, "error", err)
			}
		}
	}
}

// streamTurn opens the upstream stream and journals its events until a
// terminal condition. It decides the outcome but writes no terminal state
// itself.
func (e *RealTurnExecutor) streamTurn(ctx context.Context, r *ent.Run, turnSeq int, leaseLost *atomic.Bool) turnOutcome {
	var acc turnOutcome

	// A cancel requested while the run sat in the queue wins before any
	// upstream work is started.
	if e.cancelRequested(ctx, r.ID, turnSeq) {
		acc.status = run.StatusCancelled
		acc.eventType = models.EventRunCancelled
		acc.detail = "cancel requested"
		return acc
	}

	stream, err := e.starter.StartTurn(ctx, upstream.TurnRequest{
		ProjectID:   r.ProjectID,
		RunID:       r.ID,
		UserMessage: r.UserMessage,
		BearerToken: bearerToken(r),
	})
	if err != nil {
		return e.classifyStreamEnd(ctx, err, leaseLost, acc)
	}
	defer stream.Close()

	for {
		event, err := stream.Next()
		if err != nil {
			return e.classifyStreamEnd(ctx, err, leaseLost, acc)
		}

		// Cancel markers are honored between events, never mid-event; the
		// event that arrives alongside a pending cancel is not journaled.
		if e.cancelRequested(ctx, r.ID, turnSeq) {
			acc.status = run.StatusCancelled
			acc.eventType = models.EventRunCancelled
			acc.detail = "cancel requested"
			return acc
		}
		if leaseLost.Load() {
			return e.classifyStreamEnd(ctx, ctx.Err(), leaseLost, acc)
		}

		eventType := eventTypeOf(event)
		ev, err := e.store.AppendEvent(ctx, r.ID, eventType, event)
		if err != nil {
			acc.status = run.StatusFailed
			acc.eventType = models.EventRunFailed
			acc.errorCode = models.ErrorCodeGeneric
			acc.detail = fmt.Sprintf("journal append failed: %v", err)
			return acc
		}
		acc.events++

		e.publishFrame(ctx, r.ID, ev)

		if e.agentCfg.IsCompletionEventType(eventType) {
			if content, ok := event["content"].(string); ok && content != "" {
				acc.latestOutput = content
			}
		}
	}
}

// classifyStreamEnd folds a stream failure (or EOF) into the turn's
// terminal outcome, preserving what the loop accumulated.
func (e *RealTurnExecutor) classifyStreamEnd(ctx context.Context, err error, leaseLost *atomic.Bool, acc turnOutcome) turnOutcome {
	var httpErr *upstream.HTTPError
	switch {
	case leaseLost.Load():
		acc.status = run.StatusFailed
		acc.eventType = models.EventRunFailed
		acc.errorCode = models.ErrorCodeLeaseLost
		acc.detail = "turn lease lost"
		acc.leaseLost = true

	case errors.Is(err, io.EOF):
		acc.status = run.StatusCompleted
		acc.eventType = models.EventRunCompleted

	case errors.Is(err, upstream.ErrTimeout),
		errors.Is(ctx.Err(), context.DeadlineExceeded):
		acc.status = run.StatusTimeout
		acc.eventType = models.EventRunTimeout
		acc.errorCode = models.ErrorCodeTimeout
		acc.detail = err.Error()

	case errors.As(err, &httpErr):
		// Events journaled before the failure remain intact.
		acc.status = run.StatusFailed
		acc.eventType = models.EventRunFailed
		acc.errorCode = httpErr.ErrorCode()
		acc.detail = httpErr.Error()

	default:
		acc.status = run.StatusFailed
		acc.eventType = models.EventRunFailed
		acc.errorCode = models.ErrorCodeGeneric
		acc.detail = err.Error()
	}
	return acc
}

// finishTurn journals the terminal event, records the terminal status,
// publishes the terminal frame, and clears the per-turn coordination state.
// Later steps still run when an earlier one fails: the journal is
// authoritative and everything else is advisory.
func (e *RealTurnExecutor) finishTurn(ctx context.Context, runID string, turnSeq int, owner string, outcome turnOutcome, log *slog.Logger) {
	payload := map[string]interface{}{"status": string(outcome.status)}
	if outcome.detail != "" {
		payload["detail"] = outcome.detail
	}
	if outcome.errorCode != "" {
		payload["error_code"] = outcome.errorCode
	}

	ev, err := e.store.AppendEvent(ctx, runID, outcome.eventType, payload)
	if err != nil {
		log.Error("Failed to journal terminal event",
			"event_type", outcome.eventType, "error", err)
	}

	upd := services.StatusUpdate{LatestErrorCode: outcome.errorCode}
	if outcome.status == run.StatusCompleted {
		upd.LatestOutput = outcome.latestOutput
	}
	if _, err := e.store.SetStatus(ctx, runID, outcome.status, upd); err != nil {
		log.Error("Failed to record terminal status",
			"status", outcome.status, "error", err)
	}

	// Without a journaled seq there is nothing coherent to publish; live
	// subscribers end on disconnect and the journal stays the source of
	// truth.
	if ev != nil {
		e.publishFrame(ctx, runID, ev)
	}

	if err := e.coord.ClearCancel(ctx, runID, turnSeq); err != nil {
		log.Warn("Failed to clear cancel marker", "error", err)
	}

	if !outcome.leaseLost {
		if _, err := e.coord.ReleaseLease(ctx, runID, turnSeq, owner); err != nil {
			log.Warn("Failed to release turn lease", "error", err)
		}
	}
}

// cancelRequested reads the cancel marker; check failures are treated as
// "not cancelled" so a coordinator blip cannot kill a healthy turn.
func (e *RealTurnExecutor) cancelRequested(ctx context.Context, runID string, turnSeq int) bool {
	cancelled, err := e.coord.IsCancelRequested(ctx, runID, turnSeq)
	if err != nil {
		slog.Warn("Cancel marker check failed", "run_id", runID, "error", err)
		return false
	}
	return cancelled
}

// publishFrame puts one journaled event on the live channel. Publish
// failures are logged and swallowed: subscribers heal from the journal.
func (e *RealTurnExecutor) publishFrame(ctx context.Context, runID string, ev *ent.RunEvent) {
	frame, err := models.NewEventFrame(ev).Encode()
	if err != nil {
		slog.Warn("Failed to encode live frame",
			"run_id", runID, "seq", ev.Seq, "error", err)
		return
	}
	if err := e.coord.PublishEvent(ctx, runID, frame); err != nil {
		slog.Warn("Failed to publish live frame",
			"run_id", runID, "seq", ev.Seq, "error", err)
	}
}

// eventTypeOf extracts the upstream event type; objects without a string
// "type" are journaled as "unknown".
func eventTypeOf(event map[string]interface{}) string {
	if t, ok := event["type"].(string); ok && t != "" {
		return t
	}
	return "unknown"
}

// bearerToken unwraps the run's stored pass-through credential.
func bearerToken(r *ent.Run) string {
	if r.BearerToken == nil {
		return ""
	}
	return *r.BearerToken
}
