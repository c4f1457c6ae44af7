package upstream

import (
	"errors"
	"fmt"
)

// ErrTimeout reports that the agent service produced nothing within the
// configured window, either while waiting for response headers or between
// stream reads. Total stream duration is not bounded as long as data keeps
// flowing.
var ErrTimeout = errors.New("upstream timeout")

// HTTPError reports an error response (status >= 400) from the agent
// service. Body holds the trimmed response body for diagnostics.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.StatusCode, e.Body)
}

// ErrorCode is the short token recorded on runs that fail on an upstream
// HTTP error, e.g. AGENT_UPSTREAM_401.
func (e *HTTPError) ErrorCode() string {
	return fmt.Sprintf("AGENT_UPSTREAM_%d", e.StatusCode)
}
