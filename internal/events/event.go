package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	ChatMessage     = "events:chat:message"
	AIBusy          = "events:ai:busy"
	AIIdle          = "events:ai:idle"
	ToolRun         = "events:tool:run"
	ProjectsChanged = "events:projects:changed"
	ExportDone      = "events:export:done"
)

// Event is the payload every backend event carries to the frontend.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	ProjectID string            `json:"projectId,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const projectContextKey contextKey = "innovateai/events/project"

// WithProject returns a derived context annotated with the project id so
// emitters can scope payloads automatically.
func WithProject(ctx context.Context, projectID string) context.Context {
	if strings.TrimSpace(projectID) == "" {
		return ctx
	}
	return context.WithValue(ctx, projectContextKey, projectID)
}

// ProjectFromContext extracts the project id associated with ctx.
func ProjectFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(projectContextKey).(string); ok {
		return v
	}
	return ""
}

func CreateEvent(eventType EventType, message string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// With returns a copy of e with the metadata pair added.
func (e Event) With(key, value string) Event {
	md := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		md[k] = v
	}
	md[key] = value
	e.Metadata = md
	return e
}

func NewInfo(message string) Event {
	return CreateEvent(EventInfo, message)
}

func NewWarn(message string) Event {
	return CreateEvent(EventWarn, message)
}

func NewError(message string) Event {
	return CreateEvent(EventError, message)
}

func NewSuccess(message string) Event {
	return CreateEvent(EventSuccess, message)
}
