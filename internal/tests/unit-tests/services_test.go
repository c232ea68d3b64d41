package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovateai/internal/kanban"
	"innovateai/internal/llm/client"
	"innovateai/internal/services"
	"innovateai/internal/tests/mocks"
)

func TestServices_StartupLoadsStoredProjects(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMemoryKV()
	_, err := services.NewProjectService(kv).Create(ctx, "Garden Link", "Connect gardeners")
	require.NoError(t, err)
	catalog, err := services.NewModelCatalogService()
	require.NoError(t, err)

	svc := services.NewServices(kv, nil, catalog)
	require.NoError(t, svc.Startup(ctx))

	list, err := svc.Projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Services take their context per call; none is captured at startup.
	p, id, err := svc.Kanbans.AddTask(ctx, list[0].ID, kanban.ColumnTodo, "Interview gardeners")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, kanban.ColumnTasks(p.Kanban, kanban.ColumnTodo), 1)

	_, err = svc.Tools.Run(ctx, list[0].ID, services.ToolSWOT)
	assert.ErrorIs(t, err, client.ErrAIUnavailable)
}
