package models

import (
	"encoding/json"

	"github.com/runforge/agentd/ent"
)

// Terminal event types written by the worker. A stream ends when one of
// these is delivered.
const (
	EventRunCompleted = "run.completed"
	EventRunFailed    = "run.failed"
	EventRunTimeout   = "run.timeout"
	EventRunCancelled = "run.cancelled"
)

// IsTerminalEventType reports whether the event type closes the run.
func IsTerminalEventType(eventType string) bool {
	switch eventType {
	case EventRunCompleted, EventRunFailed, EventRunTimeout, EventRunCancelled:
		return true
	}
	return false
}

// Error codes recorded in latest_error_code when a turn ends abnormally.
// Upstream HTTP failures carry a derived AGENT_UPSTREAM_{status} code
// instead.
const (
	ErrorCodeTimeout   = "AGENT_TIMEOUT"
	ErrorCodeLeaseLost = "AGENT_LEASE_LOST"
	ErrorCodeGeneric   = "AGENT_GENERIC"
)

// EventFrame is the single wire shape for journaled events: it is published
// on the live channel and written as SSE data frames, so clients see the
// same object on both paths.
type EventFrame struct {
	Seq       int                    `json:"seq"`
	EventType string                 `json:"event_type"`
	Payload   map[string]interface{} `json:"payload"`
}

// NewEventFrame projects a journaled event onto the wire shape.
func NewEventFrame(ev *ent.RunEvent) EventFrame {
	return EventFrame{
		Seq:       ev.Seq,
		EventType: ev.EventType,
		Payload:   ev.Payload,
	}
}

// Encode renders the frame as the UTF-8 JSON string carried by the live
// channel.
func (f EventFrame) Encode() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeEventFrame parses a live channel message.
func DecodeEventFrame(s string) (EventFrame, error) {
	var f EventFrame
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return EventFrame{}, err
	}
	return f, nil
}
