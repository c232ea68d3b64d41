package services

import (
	"context"

	"innovateai/internal/kanban"
	"innovateai/internal/models"
)

// AIGateway is what the services need from the hosted model. It is
// satisfied by *client.Gateway.
type AIGateway interface {
	Converse(ctx context.Context, history []models.ChatMessage, next string) (string, error)
	GenerateSWOT(ctx context.Context, idea string) (*models.SWOTAnalysis, error)
	GenerateRoadmap(ctx context.Context, idea string) (*models.Roadmap, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateGroundedAnalysis(ctx context.Context, prompt string) (models.MarketAnalysis, error)
	GenerateBoard(ctx context.Context, description string) (*kanban.Proposal, error)
}
