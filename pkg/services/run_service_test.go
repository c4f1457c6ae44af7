package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/pkg/models"
	testdb "github.com/runforge/agentd/test/database"
)

func testRunInput() CreateRunInput {
	return CreateRunInput{
		ProjectID:   "proj-1",
		OwnerID:     "alice",
		UserMessage: "inspect the cluster",
	}
}

func TestRunService_CreateRun(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewRunService(client.Client)
	ctx := context.Background()

	t.Run("creates run in queued status", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)

		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "proj-1", r.ProjectID)
		assert.Equal(t, "alice", r.OwnerID)
		assert.Equal(t, "inspect the cluster", r.UserMessage)
		assert.Equal(t, run.StatusQueued, r.Status)
		assert.Equal(t, 0, r.LastEventSeq)
		assert.Equal(t, 0, r.TurnSeq)
		assert.Nil(t, r.ChatID)
		assert.Nil(t, r.StartedAt)
		assert.Nil(t, r.CompletedAt)
		assert.False(t, r.CreatedAt.IsZero())
	})

	t.Run("stores optional chat and credential", func(t *testing.T) {
		in := testRunInput()
		in.ChatID = "chat-42"
		in.BearerToken = "tok-xyz"

		r, err := svc.CreateRun(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, r.ChatID)
		assert.Equal(t, "chat-42", *r.ChatID)

		// Read back from the database to confirm the credential persisted.
		stored, err := client.Client.Run.Get(ctx, r.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.BearerToken)
		assert.Equal(t, "tok-xyz", *stored.BearerToken)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		cases := []struct {
			name  string
			mod   func(*CreateRunInput)
			field string
		}{
			{"missing project_id", func(in *CreateRunInput) { in.ProjectID = "" }, "project_id"},
			{"missing user_message", func(in *CreateRunInput) { in.UserMessage = "" }, "user_message"},
			{"missing owner_id", func(in *CreateRunInput) { in.OwnerID = "" }, "owner_id"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := testRunInput()
				tc.mod(&in)
				_, err := svc.CreateRun(ctx, in)
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				assert.Contains(t, err.Error(), tc.field)
			})
		}
	})
}

func TestRunService_GetRun(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewRunService(client.Client)
	ctx := context.Background()

	created, err := svc.CreateRun(ctx, testRunInput())
	require.NoError(t, err)

	t.Run("returns existing run", func(t *testing.T) {
		r, err := svc.GetRun(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, r.ID)
	})

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		_, err := svc.GetRun(ctx, "no-such-run")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRunService_AppendEvent(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewRunService(client.Client)
	ctx := context.Background()

	t.Run("assigns dense sequence numbers and bumps the watermark", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)

		for i := 1; i <= 3; i++ {
			ev, err := svc.AppendEvent(ctx, r.ID, "assistant.delta", map[string]interface{}{"n": i})
			require.NoError(t, err)
			assert.Equal(t, i, ev.Seq)
		}

		updated, err := svc.GetRun(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.LastEventSeq)
	})

	t.Run("round-trips the payload", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)

		payload := map[string]interface{}{
			"type":    "assistant.message",
			"content": "All pods healthy.",
			"nested":  map[string]interface{}{"tokens": float64(42)},
		}
		ev, err := svc.AppendEvent(ctx, r.ID, "assistant.message", payload)
		require.NoError(t, err)

		events, err := svc.ListEvents(ctx, r.ID, 0, 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, ev.ID, events[0].ID)
		assert.Equal(t, payload, events[0].Payload)
	})

	t.Run("rejects appends to terminal runs", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, r.ID, run.StatusCancelled, StatusUpdate{})
		require.NoError(t, err)

		_, err = svc.AppendEvent(ctx, r.ID, "assistant.delta", map[string]interface{}{})
		assert.ErrorIs(t, err, ErrIllegalTransition)

		updated, err := svc.GetRun(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.LastEventSeq, "terminal runs never gain events")
	})

	t.Run("returns ErrNotFound for unknown run", func(t *testing.T) {
		_, err := svc.AppendEvent(ctx, "no-such-run", "assistant.delta", map[string]interface{}{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("gives up after repeated seq conflicts", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)
		_, err = svc.AppendEvent(ctx, r.ID, "assistant.delta", map[string]interface{}{})
		require.NoError(t, err)

		// Plant an event at the next seq without moving the watermark, as a
		// competing appender would between this call's read and write. Every
		// retry rereads watermark 1 and collides with the planted seq 2.
		_, err = client.Client.RunEvent.Create().
			SetID(uuid.New().String()).
			SetRunID(r.ID).
			SetSeq(2).
			SetEventType("assistant.delta").
			SetPayload(map[string]interface{}{}).
			Save(ctx)
		require.NoError(t, err)

		_, err = svc.AppendEvent(ctx, r.ID, "assistant.delta", map[string]interface{}{})
		assert.ErrorIs(t, err, ErrSeqConflict)
	})

	t.Run("recovers when the watermark catches up", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)

		// A fully committed competing append: event plus watermark.
		_, err = client.Client.RunEvent.Create().
			SetID(uuid.New().String()).
			SetRunID(r.ID).
			SetSeq(1).
			SetEventType("assistant.delta").
			SetPayload(map[string]interface{}{}).
			Save(ctx)
		require.NoError(t, err)
		err = client.Client.Run.UpdateOneID(r.ID).SetLastEventSeq(1).Exec(ctx)
		require.NoError(t, err)

		ev, err := svc.AppendEvent(ctx, r.ID, "assistant.delta", map[string]interface{}{})
		require.NoError(t, err)
		assert.Equal(t, 2, ev.Seq)
	})
}

func TestRunService_ListEvents(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewRunService(client.Client)
	ctx := context.Background()

	r, err := svc.CreateRun(ctx, testRunInput())
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		_, err := svc.AppendEvent(ctx, r.ID, "assistant.delta", map[string]interface{}{"n": i})
		require.NoError(t, err)
	}

	t.Run("returns everything after the given seq in order", func(t *testing.T) {
		events, err := svc.ListEvents(ctx, r.ID, 2, 0)
		require.NoError(t, err)
		require.Len(t, events, 3)
		for i, ev := range events {
			assert.Equal(t, 3+i, ev.Seq)
		}
	})

	t.Run("respects the limit", func(t *testing.T) {
		events, err := svc.ListEvents(ctx, r.ID, 0, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, 1, events[0].Seq)
		assert.Equal(t, 2, events[1].Seq)
	})

	t.Run("empty past the watermark", func(t *testing.T) {
		events, err := svc.ListEvents(ctx, r.ID, 5, 0)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestRunService_SetStatus(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewRunService(client.Client)
	ctx := context.Background()

	t.Run("queued to running stamps turn bookkeeping", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)

		updated, err := svc.SetStatus(ctx, r.ID, run.StatusRunning, StatusUpdate{
			TurnSeq: 1,
			PodID:   "pod-1",
		})
		require.NoError(t, err)
		assert.Equal(t, run.StatusRunning, updated.Status)
		assert.Equal(t, 1, updated.TurnSeq)
		require.NotNil(t, updated.PodID)
		assert.Equal(t, "pod-1", *updated.PodID)
		require.NotNil(t, updated.StartedAt)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("terminal transition stamps completed_at and drops the credential", func(t *testing.T) {
		in := testRunInput()
		in.BearerToken = "tok-secret"
		r, err := svc.CreateRun(ctx, in)
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, r.ID, run.StatusRunning, StatusUpdate{TurnSeq: 1})
		require.NoError(t, err)

		updated, err := svc.SetStatus(ctx, r.ID, run.StatusCompleted, StatusUpdate{
			LatestOutput: "All pods healthy.",
		})
		require.NoError(t, err)
		assert.Equal(t, run.StatusCompleted, updated.Status)
		require.NotNil(t, updated.CompletedAt)
		require.NotNil(t, updated.LatestOutput)
		assert.Equal(t, "All pods healthy.", *updated.LatestOutput)

		stored, err := client.Client.Run.Get(ctx, r.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.BearerToken)
	})

	t.Run("failed transition records the error code", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, r.ID, run.StatusRunning, StatusUpdate{TurnSeq: 1})
		require.NoError(t, err)

		updated, err := svc.SetStatus(ctx, r.ID, run.StatusFailed, StatusUpdate{
			LatestErrorCode: models.ErrorCodeTimeout,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.LatestErrorCode)
		assert.Equal(t, models.ErrorCodeTimeout, *updated.LatestErrorCode)
	})

	t.Run("queued can be cancelled before any turn starts", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)

		updated, err := svc.SetStatus(ctx, r.ID, run.StatusCancelled, StatusUpdate{})
		require.NoError(t, err)
		assert.Equal(t, run.StatusCancelled, updated.Status)
		assert.Nil(t, updated.StartedAt)
		require.NotNil(t, updated.CompletedAt)
	})

	t.Run("rejects backward and terminal transitions", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, r.ID, run.StatusRunning, StatusUpdate{TurnSeq: 1})
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, r.ID, run.StatusCompleted, StatusUpdate{})
		require.NoError(t, err)

		cases := []struct {
			name string
			to   run.Status
		}{
			{"terminal back to running", run.StatusRunning},
			{"terminal back to queued", run.StatusQueued},
			{"terminal to another terminal", run.StatusFailed},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.SetStatus(ctx, r.ID, tc.to, StatusUpdate{})
				assert.ErrorIs(t, err, ErrIllegalTransition)
			})
		}

		// The run's record is unchanged by the rejected attempts.
		stored, err := svc.GetRun(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, run.StatusCompleted, stored.Status)
	})

	t.Run("running cannot go back to queued", func(t *testing.T) {
		r, err := svc.CreateRun(ctx, testRunInput())
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, r.ID, run.StatusRunning, StatusUpdate{TurnSeq: 1})
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, r.ID, run.StatusQueued, StatusUpdate{})
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("returns ErrNotFound for unknown run", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, "no-such-run", run.StatusRunning, StatusUpdate{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRunService_ListRuns(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewRunService(client.Client)
	ctx := context.Background()

	mkRun := func(project, owner string) string {
		r, err := svc.CreateRun(ctx, CreateRunInput{
			ProjectID:   project,
			OwnerID:     owner,
			UserMessage: "m",
		})
		require.NoError(t, err)
		// Distinct created_at for deterministic ordering.
		time.Sleep(5 * time.Millisecond)
		return r.ID
	}

	a1 := mkRun("proj-a", "alice")
	a2 := mkRun("proj-a", "bob")
	b1 := mkRun("proj-b", "alice")
	_, err := svc.SetStatus(ctx, b1, run.StatusCancelled, StatusUpdate{})
	require.NoError(t, err)

	t.Run("filters by project", func(t *testing.T) {
		resp, err := svc.ListRuns(ctx, models.RunFilters{ProjectID: "proj-a"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.TotalCount)
		require.Len(t, resp.Runs, 2)
		// Newest first.
		assert.Equal(t, a2, resp.Runs[0].RunID)
		assert.Equal(t, a1, resp.Runs[1].RunID)
	})

	t.Run("filters by owner and status", func(t *testing.T) {
		resp, err := svc.ListRuns(ctx, models.RunFilters{OwnerID: "alice", Status: "cancelled"})
		require.NoError(t, err)
		require.Len(t, resp.Runs, 1)
		assert.Equal(t, b1, resp.Runs[0].RunID)
	})

	t.Run("paginates with total count", func(t *testing.T) {
		resp, err := svc.ListRuns(ctx, models.RunFilters{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.TotalCount)
		assert.Len(t, resp.Runs, 2)
		assert.Equal(t, 2, resp.Limit)

		next, err := svc.ListRuns(ctx, models.RunFilters{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, next.Runs, 1)
		assert.Equal(t, 2, next.Offset)
	})

	t.Run("clamps an absent limit to the default", func(t *testing.T) {
		resp, err := svc.ListRuns(ctx, models.RunFilters{})
		require.NoError(t, err)
		assert.Equal(t, 25, resp.Limit)
	})
}

func TestRunService_TouchHeartbeat(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewRunService(client.Client)
	ctx := context.Background()

	r, err := svc.CreateRun(ctx, testRunInput())
	require.NoError(t, err)
	assert.Nil(t, r.LastHeartbeatAt)

	require.NoError(t, svc.TouchHeartbeat(ctx, r.ID))
	first, err := svc.GetRun(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, first.LastHeartbeatAt)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, svc.TouchHeartbeat(ctx, r.ID))
	second, err := svc.GetRun(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, second.LastHeartbeatAt)
	assert.True(t, second.LastHeartbeatAt.After(*first.LastHeartbeatAt))
}
