package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runforge/agentd/pkg/config"
	"github.com/runforge/agentd/pkg/coordinator"
	"github.com/runforge/agentd/pkg/models"
	"github.com/runforge/agentd/pkg/services"
	testdb "github.com/runforge/agentd/test/database"
)

// newTestServer wires a full server against a per-test database schema and
// a miniredis instance. The worker pool is nil: turn execution has its own
// tests in the queue package.
func newTestServer(t *testing.T) (*Server, *miniredis.Miniredis, *services.RunService) {
	t.Helper()

	dbClient := testdb.NewTestClient(t)
	runService := services.NewRunService(dbClient.Client)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })
	coord := coordinator.NewRedisCoordinatorFromClient(redisClient, config.LeaseConfig{
		TTL:             90 * time.Second,
		RefreshInterval: 30 * time.Second,
		CancelTTL:       15 * time.Minute,
	})

	cfg := &config.Settings{
		Stream: config.StreamConfig{HeartbeatInterval: 30 * time.Second},
	}
	return NewServer(cfg, dbClient, runService, coord, nil), mr, runService
}

// doRequest performs a request against the server's router with a valid
// bearer token and an identity header.
func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("X-Forwarded-User", "alice")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func createTestRun(t *testing.T, s *Server, projectID string) string {
	t.Helper()
	rec := doRequest(s, http.MethodPost, "/runs", `{"project_id":"`+projectID+`","user_message":"investigate"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CreateRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.RunID)
	return resp.RunID
}

func TestServer_AuthRequired(t *testing.T) {
	s, _, _ := newTestServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/runs"},
		{http.MethodGet, "/runs"},
		{http.MethodGet, "/runs/some-id"},
		{http.MethodPost, "/runs/some-id/cancel"},
		{http.MethodGet, "/runs/some-id/events"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			rec := httptest.NewRecorder()
			s.echo.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), authErrorDetail)
		})
	}

	t.Run("health needs no credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		s.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServer_CreateAndGetRun(t *testing.T) {
	s, _, _ := newTestServer(t)

	runID := createTestRun(t, s, "proj-1")

	rec := doRequest(s, http.MethodGet, "/runs/"+runID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, runID, resp.RunID)
	assert.Equal(t, "proj-1", resp.ProjectID)
	assert.Equal(t, "alice", resp.OwnerID, "owner comes from the proxy identity header")
	assert.Equal(t, "queued", resp.Status)
	assert.Equal(t, 0, resp.LastEventSeq)
}

func TestServer_CreateRunValidation(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/runs", `{"user_message":"no project"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "project_id")
}

func TestServer_GetRunNotFound(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/runs/no-such-run", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "resource not found")
}

func TestServer_ListRuns(t *testing.T) {
	s, _, _ := newTestServer(t)

	createTestRun(t, s, "proj-a")
	createTestRun(t, s, "proj-a")
	createTestRun(t, s, "proj-b")

	rec := doRequest(s, http.MethodGet, "/runs?project_id=proj-a", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RunListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCount)
	assert.Len(t, resp.Runs, 2)
	for _, r := range resp.Runs {
		assert.Equal(t, "proj-a", r.ProjectID)
	}
}

func TestServer_CancelRun(t *testing.T) {
	s, mr, _ := newTestServer(t)

	runID := createTestRun(t, s, "proj-1")

	rec := doRequest(s, http.MethodPost, "/runs/"+runID+"/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CancelRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)

	// A queued run has no in-flight turn; the marker addresses the turn a
	// worker would start next.
	val, err := mr.Get("agentic:run:" + runID + ":turn:1:cancel")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
}

func TestServer_CancelRunNotFound(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/runs/no-such-run/cancel", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_StreamReplaysJournal(t *testing.T) {
	s, _, runService := newTestServer(t)

	runID := createTestRun(t, s, "proj-1")

	ctx := t.Context()
	_, err := runService.AppendEvent(ctx, runID, "agent.message", map[string]interface{}{"text": "working"})
	require.NoError(t, err)
	_, err = runService.AppendEvent(ctx, runID, models.EventRunCompleted, map[string]interface{}{"output": "done"})
	require.NoError(t, err)

	// The journal ends in a terminal event, so the stream replays and
	// returns without following the live channel.
	rec := doRequest(s, http.MethodGet, "/runs/"+runID+"/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `"seq":1`)
	assert.Contains(t, body, `"event_type":"agent.message"`)
	assert.Contains(t, body, `"seq":2`)
	assert.Contains(t, body, `"event_type":"run.completed"`)
}

func TestServer_StreamResumesAfterSeq(t *testing.T) {
	s, _, runService := newTestServer(t)

	runID := createTestRun(t, s, "proj-1")

	ctx := t.Context()
	_, err := runService.AppendEvent(ctx, runID, "agent.message", map[string]interface{}{"text": "working"})
	require.NoError(t, err)
	_, err = runService.AppendEvent(ctx, runID, models.EventRunCompleted, map[string]interface{}{})
	require.NoError(t, err)

	rec := doRequest(s, http.MethodGet, "/runs/"+runID+"/events?after_seq=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, `"seq":1`)
	assert.Contains(t, body, `"seq":2`)
}

func TestServer_StreamRunNotFound(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/runs/no-such-run/events", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "resource not found")
}

func TestServer_HealthDetail(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health/detail", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, healthStatusHealthy, resp.Status)
	assert.Equal(t, healthStatusHealthy, resp.Checks["database"].Status)
	assert.Equal(t, healthStatusHealthy, resp.Checks["redis"].Status)
}

func TestServer_Metrics(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "agentd_runs_created_total")
	assert.Contains(t, rec.Body.String(), "agentd_queue_depth")
}
