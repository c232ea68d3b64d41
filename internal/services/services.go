package services

import (
	"context"

	"innovateai/internal/repositories"
)

// Services aggregates the domain services of the app. Fields use plural
// names to align with the service container convention.
type Services struct {
	Projects ProjectService
	Chats    ChatService
	Tools    ToolService
	Kanbans  KanbanService
	Settings AppSettingsService
	Models   ModelCatalogService
	Busy     *BusyGuard
}

// NewServices constructs the service container over kv. ai may be nil when
// no API key is configured; AI features then report ErrAIUnavailable.
func NewServices(kv repositories.KVRepository, ai AIGateway, catalog ModelCatalogService) *Services {
	projects := NewProjectService(kv)
	busy := NewBusyGuard()
	return &Services{
		Projects: projects,
		Chats:    NewChatService(projects, ai, busy),
		Tools:    NewToolService(projects, ai, busy),
		Kanbans:  NewKanbanService(projects),
		Settings: NewAppSettingsService(kv, catalog),
		Models:   catalog,
		Busy:     busy,
	}
}

// Startup loads persisted state.
func (s *Services) Startup(ctx context.Context) error {
	return s.Projects.Startup(ctx)
}
