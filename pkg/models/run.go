package models

import (
	"time"

	"github.com/runforge/agentd/ent"
)

// CreateRunRequest contains fields for creating a new run.
// owner_id is not part of the body; it comes from the auth proxy headers.
type CreateRunRequest struct {
	ProjectID   string `json:"project_id"`
	UserMessage string `json:"user_message"`
	ChatID      string `json:"chat_id,omitempty"`
}

// CreateRunResponse is returned by POST /runs.
type CreateRunResponse struct {
	RunID string `json:"run_id"`
}

// CancelRunResponse is returned by POST /runs/{id}/cancel.
// Accepted is true even when no worker currently holds the turn; the marker
// waits for the worker to observe it.
type CancelRunResponse struct {
	Accepted bool `json:"accepted"`
}

// RunResponse is the externally visible projection of a run record.
type RunResponse struct {
	RunID           string     `json:"run_id"`
	ProjectID       string     `json:"project_id"`
	OwnerID         string     `json:"owner_id"`
	ChatID          *string    `json:"chat_id,omitempty"`
	UserMessage     string     `json:"user_message"`
	Status          string     `json:"status"`
	LastEventSeq    int        `json:"last_event_seq"`
	LatestOutput    *string    `json:"latest_output,omitempty"`
	LatestErrorCode *string    `json:"latest_error_code,omitempty"`
	PodID           *string    `json:"pod_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// NewRunResponse projects an ent run onto the API shape.
func NewRunResponse(r *ent.Run) *RunResponse {
	return &RunResponse{
		RunID:           r.ID,
		ProjectID:       r.ProjectID,
		OwnerID:         r.OwnerID,
		ChatID:          r.ChatID,
		UserMessage:     r.UserMessage,
		Status:          string(r.Status),
		LastEventSeq:    r.LastEventSeq,
		LatestOutput:    r.LatestOutput,
		LatestErrorCode: r.LatestErrorCode,
		PodID:           r.PodID,
		CreatedAt:       r.CreatedAt,
		StartedAt:       r.StartedAt,
		CompletedAt:     r.CompletedAt,
	}
}

// RunFilters contains filtering options for listing runs.
type RunFilters struct {
	ProjectID string `json:"project_id,omitempty"`
	OwnerID   string `json:"owner_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// RunListResponse contains a paginated run list.
type RunListResponse struct {
	Runs       []*RunResponse `json:"runs"`
	TotalCount int            `json:"total_count"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}
