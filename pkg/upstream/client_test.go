package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTurn_RequestShape(t *testing.T) {
	var (
		gotMethod  string
		gotPath    string
		gotAuth    string
		gotAccept  string
		gotPayload turnPayload
		decodeErr  error
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		decodeErr = json.NewDecoder(r.Body).Decode(&gotPayload)

		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = io.WriteString(w, `{"event_type":"assistant.delta","content":"hel"}`+"\n")
		_, _ = io.WriteString(w, `{"event_type":"assistant.message","content":"hello"}`+"\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	stream, err := client.StartTurn(context.Background(), TurnRequest{
		ProjectID:   "proj-1",
		RunID:       "run-1",
		UserMessage: "hi",
		BearerToken: "tok-123",
	})
	require.NoError(t, err)
	defer stream.Close()

	first, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "assistant.delta", first["event_type"])

	second, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "assistant.message", second["event_type"])

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/copilotkit/proj-1", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/x-ndjson", gotAccept)

	require.NoError(t, decodeErr)
	assert.Equal(t, "run-1", gotPayload.ThreadID, "thread id must equal the run id")
	assert.NotNil(t, gotPayload.State)
	assert.NotNil(t, gotPayload.Actions)
	require.Len(t, gotPayload.Messages, 1)
	msg := gotPayload.Messages[0]
	assert.Equal(t, "TextMessage", msg.Type)
	assert.Equal(t, "user", msg.Role)
	assert.Equal(t, "hi", msg.Content)
	_, err = uuid.Parse(msg.ID)
	assert.NoError(t, err, "message id must be a UUID")
}

func TestNext_DiscardsNonObjectLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "\n")
		_, _ = io.WriteString(w, `"just a string"`+"\n")
		_, _ = io.WriteString(w, "42\n")
		_, _ = io.WriteString(w, "null\n")
		_, _ = io.WriteString(w, "[1,2,3]\n")
		_, _ = io.WriteString(w, "not json at all\n")
		_, _ = io.WriteString(w, "   \n")
		_, _ = io.WriteString(w, `{"event_type":"assistant.message"}`+"\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	stream, err := client.StartTurn(context.Background(), TurnRequest{ProjectID: "proj-1", RunID: "run-1"})
	require.NoError(t, err)
	defer stream.Close()

	event, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "assistant.message", event["event_type"])

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestNext_FlushesTrailingLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// No trailing newline after the last event.
		_, _ = io.WriteString(w, `{"seq":1}`+"\n"+`{"seq":2}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	stream, err := client.StartTurn(context.Background(), TurnRequest{ProjectID: "proj-1", RunID: "run-1"})
	require.NoError(t, err)
	defer stream.Close()

	first, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, float64(1), first["seq"])

	second, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, float64(2), second["seq"])

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStartTurn_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.StartTurn(context.Background(), TurnRequest{ProjectID: "proj-1", RunID: "run-1"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "bad credentials", httpErr.Body)
	assert.Equal(t, "AGENT_UPSTREAM_401", httpErr.ErrorCode())
}

func TestStartTurn_ConnectTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Hold the response headers until the client gives up.
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 100*time.Millisecond)
	_, err := client.StartTurn(context.Background(), TurnRequest{ProjectID: "proj-1", RunID: "run-1"})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestNext_IdleTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"seq":1}`+"\n")
		w.(http.Flusher).Flush()
		// Stall without closing so only the watchdog can end the stream.
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 200*time.Millisecond)
	stream, err := client.StartTurn(context.Background(), TurnRequest{ProjectID: "proj-1", RunID: "run-1"})
	require.NoError(t, err)
	defer stream.Close()

	first, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, float64(1), first["seq"])

	_, err = stream.Next()
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestNext_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client := NewClient(server.URL, 5*time.Second)
	stream, err := client.StartTurn(ctx, TurnRequest{ProjectID: "proj-1", RunID: "run-1"})
	require.NoError(t, err)
	defer stream.Close()

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err = stream.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestStream_CloseEarly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for i := 1; ; i++ {
			if _, err := fmt.Fprintf(w, `{"seq":%d}`+"\n", i); err != nil {
				return
			}
			flusher.Flush()
			select {
			case <-r.Context().Done():
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	stream, err := client.StartTurn(context.Background(), TurnRequest{ProjectID: "proj-1", RunID: "run-1"})
	require.NoError(t, err)

	_, err = stream.Next()
	require.NoError(t, err)

	// Early termination by the consumer closes the connection; Close is
	// idempotent.
	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())
}
