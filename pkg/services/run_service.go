package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/runforge/agentd/ent"
	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/ent/runevent"
	"github.com/runforge/agentd/pkg/models"
)

// appendRetries bounds the optimistic append loop. Only the lease holder
// appends during a turn, so contention is limited to the orphan scanner and
// one retry is almost always enough.
const appendRetries = 3

// RunService manages run lifecycle and the append-only event journal.
type RunService struct {
	client *ent.Client
}

// NewRunService creates a new RunService.
func NewRunService(client *ent.Client) *RunService {
	return &RunService{client: client}
}

// CreateRunInput carries everything needed to open a run and later execute
// its turn from any pod.
type CreateRunInput struct {
	ProjectID   string
	OwnerID     string
	ChatID      string
	UserMessage string
	BearerToken string
}

// CreateRun creates a run in status queued with an empty journal.
func (s *RunService) CreateRun(ctx context.Context, in CreateRunInput) (*ent.Run, error) {
	if in.ProjectID == "" {
		return nil, NewValidationError("project_id", "required")
	}
	if in.UserMessage == "" {
		return nil, NewValidationError("user_message", "required")
	}
	if in.OwnerID == "" {
		return nil, NewValidationError("owner_id", "required")
	}

	builder := s.client.Run.Create().
		SetID(uuid.New().String()).
		SetProjectID(in.ProjectID).
		SetOwnerID(in.OwnerID).
		SetUserMessage(in.UserMessage).
		SetStatus(run.StatusQueued)

	if in.ChatID != "" {
		builder.SetChatID(in.ChatID)
	}
	if in.BearerToken != "" {
		builder.SetBearerToken(in.BearerToken)
	}

	r, err := builder.Save(ctx)
	if err != nil {
		if ent.IsConstraintError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return r, nil
}

// GetRun retrieves a run by ID.
func (s *RunService) GetRun(ctx context.Context, runID string) (*ent.Run, error) {
	r, err := s.client.Run.Query().Where(run.IDEQ(runID)).Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// AppendEvent journals one event with seq = last_event_seq + 1 and bumps the
// run's watermark, transactionally. The unique (run_id, seq) index detects
// concurrent appenders; on collision the read-compute-write cycle is retried.
// Terminal runs never gain events.
func (s *RunService) AppendEvent(ctx context.Context, runID, eventType string, payload map[string]interface{}) (*ent.RunEvent, error) {
	var lastErr error
	for attempt := 0; attempt < appendRetries; attempt++ {
		ev, err := s.tryAppend(ctx, runID, eventType, payload)
		if err == nil {
			return ev, nil
		}
		if !ent.IsConstraintError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("append lost the seq race %d times: %v: %w", appendRetries, lastErr, ErrSeqConflict)
}

func (s *RunService) tryAppend(ctx context.Context, runID, eventType string, payload map[string]interface{}) (*ent.RunEvent, error) {
	tx, err := s.client.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	r, err := tx.Run.Query().Where(run.IDEQ(runID)).Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read run for append: %w", err)
	}
	if isTerminal(r.Status) {
		return nil, fmt.Errorf("run %s is %s: %w", runID, r.Status, ErrIllegalTransition)
	}

	seq := r.LastEventSeq + 1
	ev, err := tx.RunEvent.Create().
		SetID(uuid.New().String()).
		SetRunID(runID).
		SetSeq(seq).
		SetEventType(eventType).
		SetPayload(payload).
		Save(ctx)
	if err != nil {
		// Unique (run_id, seq) violation propagates as a constraint error
		// and triggers a retry in AppendEvent.
		return nil, err
	}

	n, err := tx.Run.Update().
		Where(run.IDEQ(runID), run.LastEventSeqEQ(r.LastEventSeq)).
		SetLastEventSeq(seq).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to advance last_event_seq: %w", err)
	}
	if n == 0 {
		// Watermark moved under us without a seq collision; treat it like
		// one so the caller rereads and retries.
		return nil, &ent.ConstraintError{}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ev, nil
}

// ListEvents returns journaled events with seq > afterSeq in increasing seq
// order. limit <= 0 means no limit.
func (s *RunService) ListEvents(ctx context.Context, runID string, afterSeq, limit int) ([]*ent.RunEvent, error) {
	q := s.client.RunEvent.Query().
		Where(
			runevent.RunIDEQ(runID),
			runevent.SeqGT(afterSeq),
		).
		Order(ent.Asc(runevent.FieldSeq))
	if limit > 0 {
		q = q.Limit(limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// StatusUpdate carries the optional fields SetStatus records alongside a
// transition. Zero values mean "leave unset".
type StatusUpdate struct {
	TurnSeq         int
	PodID           string
	LatestOutput    string
	LatestErrorCode string
}

// SetStatus transitions a run forward along
// queued → running → {completed | failed | timeout | cancelled}.
// Entering running stamps started_at (plus turn_seq and pod_id when given);
// entering a terminal status stamps completed_at and drops the bearer token.
// The update is conditional on the observed current status so concurrent
// writers cannot resurrect a terminal run.
func (s *RunService) SetStatus(ctx context.Context, runID string, status run.Status, upd StatusUpdate) (*ent.Run, error) {
	for attempt := 0; attempt < appendRetries; attempt++ {
		r, err := s.GetRun(ctx, runID)
		if err != nil {
			return nil, err
		}
		if !transitionAllowed(r.Status, status) {
			return nil, fmt.Errorf("%s → %s: %w", r.Status, status, ErrIllegalTransition)
		}

		builder := s.client.Run.Update().
			Where(run.IDEQ(runID), run.StatusEQ(r.Status)).
			SetStatus(status)

		now := time.Now()
		if status == run.StatusRunning {
			if r.StartedAt == nil {
				builder.SetStartedAt(now)
			}
			if upd.TurnSeq > 0 {
				builder.SetTurnSeq(upd.TurnSeq)
			}
			if upd.PodID != "" {
				builder.SetPodID(upd.PodID)
			}
		}
		if isTerminal(status) {
			builder.SetCompletedAt(now)
			builder.ClearBearerToken()
		}
		if upd.LatestOutput != "" {
			builder.SetLatestOutput(upd.LatestOutput)
		}
		if upd.LatestErrorCode != "" {
			builder.SetLatestErrorCode(upd.LatestErrorCode)
		}

		n, err := builder.Save(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update run status: %w", err)
		}
		if n == 0 {
			// Status changed between read and write; revalidate against the
			// new value. Forward-only transitions make this loop terminate.
			continue
		}
		return s.GetRun(ctx, runID)
	}
	return nil, fmt.Errorf("run %s status kept moving: %w", runID, ErrIllegalTransition)
}

// ListRuns lists runs with filtering and pagination, newest first.
func (s *RunService) ListRuns(ctx context.Context, filters models.RunFilters) (*models.RunListResponse, error) {
	q := s.client.Run.Query()

	if filters.ProjectID != "" {
		q = q.Where(run.ProjectIDEQ(filters.ProjectID))
	}
	if filters.OwnerID != "" {
		q = q.Where(run.OwnerIDEQ(filters.OwnerID))
	}
	if filters.Status != "" {
		q = q.Where(run.StatusEQ(run.Status(filters.Status)))
	}

	total, err := q.Clone().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	runs, err := q.
		Order(ent.Desc(run.FieldCreatedAt)).
		Limit(limit).
		Offset(offset).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	out := make([]*models.RunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, models.NewRunResponse(r))
	}
	return &models.RunListResponse{
		Runs:       out,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// TouchHeartbeat bumps last_heartbeat_at for orphan detection. Called from
// the lease refresher.
func (s *RunService) TouchHeartbeat(ctx context.Context, runID string) error {
	return s.client.Run.UpdateOneID(runID).
		SetLastHeartbeatAt(time.Now()).
		Exec(ctx)
}

// CountByStatus returns how many runs are currently in the given status.
// Queued is the queue depth; running feeds pool health.
func (s *RunService) CountByStatus(ctx context.Context, status run.Status) (int, error) {
	n, err := s.client.Run.Query().
		Where(run.StatusEQ(status)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs by status: %w", err)
	}
	return n, nil
}

// CountActiveOnPod returns how many running runs a pod currently owns.
func (s *RunService) CountActiveOnPod(ctx context.Context, podID string) (int, error) {
	n, err := s.client.Run.Query().
		Where(
			run.StatusEQ(run.StatusRunning),
			run.PodIDEQ(podID),
		).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count active runs on pod: %w", err)
	}
	return n, nil
}

func isTerminal(status run.Status) bool {
	switch status {
	case run.StatusCompleted, run.StatusFailed, run.StatusTimeout, run.StatusCancelled:
		return true
	}
	return false
}

// transitionAllowed encodes the forward-only status table: queued may move
// to running or straight to any terminal (pre-start cancellation), running
// may only finish, terminals are immutable.
func transitionAllowed(from, to run.Status) bool {
	switch from {
	case run.StatusQueued:
		return to != run.StatusQueued
	case run.StatusRunning:
		return isTerminal(to)
	default:
		return false
	}
}
