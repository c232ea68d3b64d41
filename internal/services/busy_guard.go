package services

import (
	"context"
	"errors"
	"sync"

	"innovateai/internal/events"
)

var ErrAIBusy = errors.New("an AI request is already running for this project")

// BusyGuard allows one outstanding AI call per project.
type BusyGuard struct {
	mu     sync.Mutex
	active map[string]string
}

func NewBusyGuard() *BusyGuard {
	return &BusyGuard{active: make(map[string]string)}
}

// Acquire marks the project busy with activity. The returned release must be
// called exactly once when the call finishes.
func (g *BusyGuard) Acquire(ctx context.Context, projectID, activity string) (func(), error) {
	g.mu.Lock()
	if current, busy := g.active[projectID]; busy {
		g.mu.Unlock()
		events.Emit(events.WithProject(ctx, projectID), events.AIBusy,
			events.NewWarn("AI is busy").With("activity", current).With("rejected", activity))
		return nil, ErrAIBusy
	}
	g.active[projectID] = activity
	g.mu.Unlock()

	events.Emit(events.WithProject(ctx, projectID), events.AIBusy, events.NewInfo(activity+" started").With("activity", activity))

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, projectID)
			g.mu.Unlock()
			events.Emit(events.WithProject(ctx, projectID), events.AIIdle, events.NewInfo(activity+" finished").With("activity", activity))
		})
	}, nil
}

// Activity reports what the project is busy with, or "" when idle.
func (g *BusyGuard) Activity(projectID string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active[projectID]
}
