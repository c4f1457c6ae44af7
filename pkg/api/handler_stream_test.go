package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runforge/agentd/pkg/models"
)

func TestSSEWriter_WriteEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newSSEWriter(rec)

	err := w.WriteEvent(models.EventFrame{
		Seq:       3,
		EventType: "agent.message",
		Payload:   map[string]interface{}{"text": "hello"},
	})
	require.NoError(t, err)

	assert.Equal(t, "data: {\"seq\":3,\"event_type\":\"agent.message\",\"payload\":{\"text\":\"hello\"}}\n\n", rec.Body.String())
	assert.True(t, rec.Flushed, "every frame must be flushed immediately")
}

func TestSSEWriter_WriteComment(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newSSEWriter(rec)

	require.NoError(t, w.WriteComment("ping"))

	assert.Equal(t, ": ping\n\n", rec.Body.String())
	assert.True(t, rec.Flushed)
}

func TestSSEWriter_FramesAccumulate(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newSSEWriter(rec)

	require.NoError(t, w.WriteEvent(models.EventFrame{Seq: 1, EventType: "agent.message"}))
	require.NoError(t, w.WriteComment("ping"))
	require.NoError(t, w.WriteEvent(models.EventFrame{Seq: 2, EventType: models.EventRunCompleted}))

	body := rec.Body.String()
	assert.Contains(t, body, "data: {\"seq\":1,")
	assert.Contains(t, body, ": ping\n\n")
	assert.Contains(t, body, "\"event_type\":\"run.completed\"")
}
