package preview

import (
	"encoding/json"
	"fmt"
)

// EventType tags a sandbox → host message.
type EventType string

const (
	// EventError reports a compile, mount, or runtime failure.
	EventError EventType = "preview-error"
	// EventNavigation reports an in-preview navigation. Informational only.
	EventNavigation EventType = "preview-navigation"
)

// ErrorDetail is the single structured failure shape every error category
// converges on before crossing the message channel.
type ErrorDetail struct {
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// Event is one sandbox → host message. Zero, one, or many error events
// may arrive per load; absence after a timeout is the implicit success
// signal.
type Event struct {
	Type  EventType    `json:"type"`
	Error *ErrorDetail `json:"error,omitempty"`
	Path  string       `json:"path,omitempty"`
}

// ParseEvent decodes and validates a raw sandbox message. Unknown types
// are rejected so the host never relays garbage.
func ParseEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("malformed preview event: %w", err)
	}

	switch ev.Type {
	case EventError:
		if ev.Error == nil || ev.Error.Message == "" {
			return Event{}, fmt.Errorf("preview-error event without an error message")
		}
	case EventNavigation:
		if ev.Path == "" {
			return Event{}, fmt.Errorf("preview-navigation event without a path")
		}
	default:
		return Event{}, fmt.Errorf("unknown preview event type: %q", ev.Type)
	}
	return ev, nil
}
