package models

import (
	"time"

	"innovateai/internal/kanban"
)

// Project is one idea and everything generated for it. Projects are
// replaced as a whole; nothing updates a single field in storage.
type Project struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	ChatHistory     []ChatMessage    `json:"chatHistory"`
	Kanban          kanban.Board     `json:"kanbanTasks"`
	GeneratedAssets []GeneratedAsset `json:"generatedAssets"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Clone returns a deep copy so callers can build the next version of a
// project without touching the stored one.
func (p Project) Clone() Project {
	out := p
	out.ChatHistory = append([]ChatMessage{}, p.ChatHistory...)
	out.Kanban = kanban.Clone(p.Kanban)
	out.GeneratedAssets = make([]GeneratedAsset, len(p.GeneratedAssets))
	for i, a := range p.GeneratedAssets {
		out.GeneratedAssets[i] = a.Clone()
	}
	return out
}
