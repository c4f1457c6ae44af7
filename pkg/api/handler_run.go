package api

import (
	"net/http"
	"strconv"

	echo "github.com/labstack/echo/v5"

	"github.com/runforge/agentd/ent/run"
	"github.com/runforge/agentd/pkg/metrics"
	"github.com/runforge/agentd/pkg/models"
	"github.com/runforge/agentd/pkg/services"
)

// createRunHandler handles POST /runs. The run is journaled as queued and
// picked up by a worker; the response carries only the id the client needs
// to follow it.
func (s *Server) createRunHandler(c *echo.Context) error {
	var req models.CreateRunRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	r, err := s.runService.CreateRun(c.Request().Context(), services.CreateRunInput{
		ProjectID:   req.ProjectID,
		OwnerID:     extractOwner(c),
		ChatID:      req.ChatID,
		UserMessage: req.UserMessage,
		BearerToken: bearerToken(c),
	})
	if err != nil {
		return mapServiceError(err)
	}

	metrics.IncRunCreated()

	return c.JSON(http.StatusOK, &models.CreateRunResponse{RunID: r.ID})
}

// getRunHandler handles GET /runs/:id.
func (s *Server) getRunHandler(c *echo.Context) error {
	runID := c.Param("id")
	if runID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "run id is required")
	}

	r, err := s.runService.GetRun(c.Request().Context(), runID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, models.NewRunResponse(r))
}

// listRunsHandler handles GET /runs.
func (s *Server) listRunsHandler(c *echo.Context) error {
	filters := models.RunFilters{
		ProjectID: c.QueryParam("project_id"),
		OwnerID:   c.QueryParam("owner_id"),
	}

	if v := c.QueryParam("status"); v != "" {
		if err := run.StatusValidator(run.Status(v)); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status: "+v)
		}
		filters.Status = v
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit: must be between 1 and 100")
		}
		filters.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset: must be a non-negative integer")
		}
		filters.Offset = n
	}

	result, err := s.runService.ListRuns(c.Request().Context(), filters)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// cancelRunHandler handles POST /runs/:id/cancel. Cancellation is a marker
// in the coordinator, observed by whichever worker holds the turn; the
// request is accepted for any existing run, terminal ones included, where
// the marker simply expires unread.
func (s *Server) cancelRunHandler(c *echo.Context) error {
	runID := c.Param("id")
	if runID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "run id is required")
	}

	r, err := s.runService.GetRun(c.Request().Context(), runID)
	if err != nil {
		return mapServiceError(err)
	}

	// Address the in-flight turn when one exists; otherwise the turn a
	// worker would start next.
	turnSeq := r.TurnSeq
	if turnSeq == 0 {
		turnSeq = r.LastEventSeq + 1
	}

	if err := s.coord.RequestCancel(c.Request().Context(), runID, turnSeq); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, &models.CancelRunResponse{Accepted: true})
}
