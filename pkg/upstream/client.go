// Package upstream opens streaming turns against the downstream agent
// service and yields its NDJSON response as parsed events.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxErrorBodyBytes caps how much of an upstream error response is read
// back for diagnostics.
const maxErrorBodyBytes = 8 * 1024

// TurnRequest carries everything needed to open one turn. The run ID
// doubles as the upstream thread ID so the service correlates successive
// turns of the same run.
type TurnRequest struct {
	ProjectID   string
	RunID       string
	UserMessage string
	BearerToken string
}

// turnMessage is the single user message that opens a turn.
type turnMessage struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// turnPayload is the request body for the agent service endpoint.
type turnPayload struct {
	ThreadID string                 `json:"threadId"`
	State    map[string]interface{} `json:"state"`
	Actions  []interface{}          `json:"actions"`
	Messages []turnMessage          `json:"messages"`
}

// Client opens streaming turns against the agent service.
type Client struct {
	httpClient *http.Client
	serviceURL string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient creates a client for the agent service at serviceURL. timeout
// bounds the wait for response headers and the gap between stream reads;
// it does not cap total stream duration.
func NewClient(serviceURL string, timeout time.Duration) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	return &Client{
		httpClient: &http.Client{Transport: transport},
		serviceURL: strings.TrimRight(serviceURL, "/"),
		timeout:    timeout,
		logger:     slog.Default().With("component", "upstream"),
	}
}

// StartTurn opens a streaming POST for one turn and returns the event
// stream. The caller must Close the returned stream on every exit path.
// HTTP error responses are returned as *HTTPError; connect stalls as
// ErrTimeout.
func (c *Client) StartTurn(ctx context.Context, req TurnRequest) (*Stream, error) {
	payload := turnPayload{
		ThreadID: req.RunID,
		State:    map[string]interface{}{},
		Actions:  []interface{}{},
		Messages: []turnMessage{{
			ID:      uuid.NewString(),
			Type:    "TextMessage",
			Role:    "user",
			Content: req.UserMessage,
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode turn payload: %w", err)
	}

	url := fmt.Sprintf("%s/copilotkit/%s", c.serviceURL, req.ProjectID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.BearerToken)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: no response within %s", ErrTimeout, c.timeout)
		}
		return nil, fmt.Errorf("open turn stream: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(strings.ToValidUTF8(string(detail), "�")),
		}
	}

	return newStream(ctx, resp.Body, c.timeout, c.logger), nil
}

// isTimeout reports whether err is a connect or response-header deadline
// failure, as opposed to a refused connection or a cancelled context.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
