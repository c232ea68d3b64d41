package mocks

import (
	"context"
	"errors"
	"sync"

	"innovateai/internal/kanban"
	"innovateai/internal/models"
)

var ErrNotConfigured = errors.New("mock: no behaviour configured")

// AIGatewayMock records calls and delegates to the Func fields. Unset fields
// fail with ErrNotConfigured.
type AIGatewayMock struct {
	ConverseFunc                 func(ctx context.Context, history []models.ChatMessage, next string) (string, error)
	GenerateSWOTFunc             func(ctx context.Context, idea string) (*models.SWOTAnalysis, error)
	GenerateRoadmapFunc          func(ctx context.Context, idea string) (*models.Roadmap, error)
	GenerateTextFunc             func(ctx context.Context, prompt string) (string, error)
	GenerateGroundedAnalysisFunc func(ctx context.Context, prompt string) (models.MarketAnalysis, error)
	GenerateBoardFunc            func(ctx context.Context, description string) (*kanban.Proposal, error)

	mu    sync.Mutex
	Calls []string
}

func (m *AIGatewayMock) record(name string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, name)
	m.mu.Unlock()
}

func (m *AIGatewayMock) Converse(ctx context.Context, history []models.ChatMessage, next string) (string, error) {
	m.record("Converse")
	if m.ConverseFunc != nil {
		return m.ConverseFunc(ctx, history, next)
	}
	return "", ErrNotConfigured
}

func (m *AIGatewayMock) GenerateSWOT(ctx context.Context, idea string) (*models.SWOTAnalysis, error) {
	m.record("GenerateSWOT")
	if m.GenerateSWOTFunc != nil {
		return m.GenerateSWOTFunc(ctx, idea)
	}
	return nil, ErrNotConfigured
}

func (m *AIGatewayMock) GenerateRoadmap(ctx context.Context, idea string) (*models.Roadmap, error) {
	m.record("GenerateRoadmap")
	if m.GenerateRoadmapFunc != nil {
		return m.GenerateRoadmapFunc(ctx, idea)
	}
	return nil, ErrNotConfigured
}

func (m *AIGatewayMock) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.record("GenerateText")
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}
	return "", ErrNotConfigured
}

func (m *AIGatewayMock) GenerateGroundedAnalysis(ctx context.Context, prompt string) (models.MarketAnalysis, error) {
	m.record("GenerateGroundedAnalysis")
	if m.GenerateGroundedAnalysisFunc != nil {
		return m.GenerateGroundedAnalysisFunc(ctx, prompt)
	}
	return models.MarketAnalysis{}, ErrNotConfigured
}

func (m *AIGatewayMock) GenerateBoard(ctx context.Context, description string) (*kanban.Proposal, error) {
	m.record("GenerateBoard")
	if m.GenerateBoardFunc != nil {
		return m.GenerateBoardFunc(ctx, description)
	}
	return nil, ErrNotConfigured
}

// CallCount reports how often name was called.
func (m *AIGatewayMock) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == name {
			n++
		}
	}
	return n
}
