package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	echo "github.com/labstack/echo/v5"

	"github.com/runforge/agentd/pkg/coordinator"
	"github.com/runforge/agentd/pkg/metrics"
	"github.com/runforge/agentd/pkg/models"
	"github.com/runforge/agentd/pkg/stream"
)

// coordSubscriber adapts the coordinator's pub/sub to the stream package's
// Subscriber interface.
type coordSubscriber struct {
	coord *coordinator.RedisCoordinator
}

func (s coordSubscriber) Subscribe(ctx context.Context, runID string) (stream.LiveFeed, error) {
	return s.coord.Subscribe(ctx, runID)
}

// sseWriter emits stream frames in Server-Sent Events format, flushing
// after every write so frames reach the client immediately.
type sseWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	return &sseWriter{w: w, rc: http.NewResponseController(w)}
}

func (s *sseWriter) WriteEvent(frame models.EventFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encoding frame seq %d: %w", frame.Seq, err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	return s.rc.Flush()
}

func (s *sseWriter) WriteComment(comment string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", comment); err != nil {
		return err
	}
	return s.rc.Flush()
}

// streamEventsHandler handles GET /runs/:id/events. Replays journaled
// events after the client's watermark, then follows the live channel until
// the run reaches a terminal event or the client disconnects.
func (s *Server) streamEventsHandler(c *echo.Context) error {
	runID := c.Param("id")
	if runID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "run id is required")
	}

	afterSeq := 0
	if v := c.QueryParam("after_seq"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid after_seq: must be a non-negative integer")
		}
		afterSeq = n
	}

	// Resolve 404 before committing to the stream; after the first write
	// the status line is out.
	if _, err := s.runService.GetRun(c.Request().Context(), runID); err != nil {
		return mapServiceError(err)
	}

	h := c.Response().Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)

	metrics.IncLiveSubscribers()
	defer metrics.DecLiveSubscribers()

	err := s.streamReader.Stream(c.Request().Context(), newSSEWriter(c.Response()), runID, afterSeq)
	if err != nil {
		// The status line is already written; dropping the connection is
		// the signal for the client to reconnect and resume from its
		// watermark.
		slog.Warn("Event stream ended abnormally", "run_id", runID, "error", err)
	}
	return nil
}
