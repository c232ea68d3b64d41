package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovateai/internal/models"
	"innovateai/internal/services"
	"innovateai/internal/tests/mocks"
)

func TestBusyGuard_OnePerProject(t *testing.T) {
	guard := services.NewBusyGuard()
	ctx := context.Background()

	release, err := guard.Acquire(ctx, "p1", "chat")
	require.NoError(t, err)
	assert.Equal(t, "chat", guard.Activity("p1"))

	_, err = guard.Acquire(ctx, "p1", "swot")
	assert.ErrorIs(t, err, services.ErrAIBusy)

	other, err := guard.Acquire(ctx, "p2", "swot")
	require.NoError(t, err)
	other()

	release()
	release()
	assert.Empty(t, guard.Activity("p1"))

	again, err := guard.Acquire(ctx, "p1", "swot")
	require.NoError(t, err)
	again()
}

func TestBusyGuard_ToolRejectedWhileChatRuns(t *testing.T) {
	projects, p := newProjectWithService(t)
	started := make(chan struct{})
	unblock := make(chan struct{})
	ai := &mocks.AIGatewayMock{
		ConverseFunc: func(ctx context.Context, history []models.ChatMessage, next string) (string, error) {
			close(started)
			<-unblock
			return "done", nil
		},
	}
	busy := services.NewBusyGuard()
	chat := services.NewChatService(projects, ai, busy)
	tools := services.NewToolService(projects, ai, busy)

	result := make(chan error, 1)
	go func() {
		_, err := chat.Send(context.Background(), p.ID, "hello")
		result <- err
	}()
	<-started

	_, err := tools.Run(context.Background(), p.ID, services.ToolSWOT)
	assert.ErrorIs(t, err, services.ErrAIBusy)
	_, err = chat.Send(context.Background(), p.ID, "again")
	assert.ErrorIs(t, err, services.ErrAIBusy)

	close(unblock)
	require.NoError(t, <-result)

	got, _ := projects.Get(context.Background(), p.ID)
	assert.Len(t, got.ChatHistory, 2)
	assert.Equal(t, 0, ai.CallCount("GenerateSWOT"))
}
