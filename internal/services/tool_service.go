package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"innovateai/internal/assetlog"
	"innovateai/internal/events"
	"innovateai/internal/kanban"
	"innovateai/internal/llm/client"
	"innovateai/internal/models"
)

// Tool names accepted by ToolService.Run.
const (
	ToolSWOT        = "swot"
	ToolRoadmap     = "roadmap"
	ToolExpand      = "expand"
	ToolPitch       = "pitch"
	ToolUserStories = "user_stories"
	ToolMarket      = "market"
	ToolKanbanPlan  = "kanban_plan"
)

var ErrUnknownTool = errors.New("unknown tool")

var toolTitles = map[string]string{
	ToolSWOT:        "SWOT Analysis",
	ToolRoadmap:     "Product Roadmap",
	ToolExpand:      "Idea Expansion",
	ToolPitch:       "Elevator Pitch",
	ToolUserStories: "User Stories",
	ToolMarket:      "Market Analysis",
	ToolKanbanPlan:  "Kanban Plan",
}

// ToolResult is the project after a tool run. Asset is nil for kanban_plan.
type ToolResult struct {
	Project models.Project         `json:"project"`
	Asset   *models.GeneratedAsset `json:"asset,omitempty"`
}

type ToolService interface {
	Tools() []string
	Run(ctx context.Context, projectID, tool string) (*ToolResult, error)
	RemoveAsset(ctx context.Context, projectID, assetID string) (*models.Project, error)
	Assets(ctx context.Context, projectID string) ([]models.GeneratedAsset, error)
}

type toolService struct {
	projects ProjectService
	ai       AIGateway
	busy     *BusyGuard
	now      func() time.Time
}

func NewToolService(projects ProjectService, ai AIGateway, busy *BusyGuard) ToolService {
	return &toolService{projects: projects, ai: ai, busy: busy, now: time.Now}
}

func (s *toolService) Tools() []string {
	return []string{ToolSWOT, ToolRoadmap, ToolExpand, ToolPitch, ToolUserStories, ToolMarket, ToolKanbanPlan}
}

// Run generates the tool's output for the project's idea. Nothing is stored
// unless the AI call returns a valid result.
func (s *toolService) Run(ctx context.Context, projectID, tool string) (*ToolResult, error) {
	title, ok := toolTitles[tool]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
	if s.ai == nil {
		return nil, client.ErrAIUnavailable
	}
	ctx = events.WithProject(ctx, projectID)

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	release, err := s.busy.Acquire(ctx, projectID, tool)
	if err != nil {
		return nil, err
	}
	defer release()

	events.Emit(ctx, events.ToolRun, events.NewInfo("Running "+title).With("tool", tool))

	if tool == ToolKanbanPlan {
		return s.runKanbanPlan(ctx, project)
	}

	asset, err := s.generateAsset(ctx, *project, tool, title)
	if err != nil {
		log.Printf("Tool %s failed for project %s: %v", tool, projectID, err)
		events.Emit(ctx, events.ToolRun, events.NewError(title+" failed: "+err.Error()).With("tool", tool))
		return nil, err
	}

	updated, err := s.projects.Mutate(ctx, projectID, func(p *models.Project) error {
		next, err := assetlog.Append(*p, asset)
		if err != nil {
			return err
		}
		*p = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, events.ToolRun, events.NewSuccess(title+" ready").With("tool", tool).With("assetId", asset.ID))
	return &ToolResult{Project: *updated, Asset: &asset}, nil
}

func (s *toolService) runKanbanPlan(ctx context.Context, project *models.Project) (*ToolResult, error) {
	board, err := kanban.Seed(ctx, s.ai, project.Description)
	if err != nil {
		log.Printf("Kanban plan failed for project %s: %v", project.ID, err)
		events.Emit(ctx, events.ToolRun, events.NewError("Kanban plan failed: "+err.Error()).With("tool", ToolKanbanPlan))
		return nil, err
	}
	updated, err := s.projects.Mutate(ctx, project.ID, func(p *models.Project) error {
		p.Kanban = board
		return nil
	})
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, events.ToolRun, events.NewSuccess("Kanban plan ready").With("tool", ToolKanbanPlan))
	return &ToolResult{Project: *updated}, nil
}

func (s *toolService) generateAsset(ctx context.Context, p models.Project, tool, title string) (models.GeneratedAsset, error) {
	asset := models.GeneratedAsset{
		ID:        uuid.NewString(),
		Type:      models.AssetType(tool),
		Title:     title,
		CreatedAt: s.now().UTC(),
	}
	data := client.PromptData{Name: p.Name, Idea: p.Description}

	switch tool {
	case ToolSWOT:
		swot, err := s.ai.GenerateSWOT(ctx, p.Description)
		if err != nil {
			return asset, err
		}
		asset.SWOT = swot
	case ToolRoadmap:
		roadmap, err := s.ai.GenerateRoadmap(ctx, p.Description)
		if err != nil {
			return asset, err
		}
		asset.Roadmap = roadmap
	case ToolMarket:
		prompt, err := client.Prompt("market", data)
		if err != nil {
			return asset, err
		}
		market, err := s.ai.GenerateGroundedAnalysis(ctx, prompt)
		if err != nil {
			return asset, err
		}
		asset.Market = &market
	default:
		prompt, err := client.Prompt(tool, data)
		if err != nil {
			return asset, err
		}
		text, err := s.ai.GenerateText(ctx, prompt)
		if err != nil {
			return asset, err
		}
		asset.Text = text
	}

	if err := asset.Validate(); err != nil {
		return asset, fmt.Errorf("%w: %w", client.ErrMalformedOutput, err)
	}
	return asset, nil
}

func (s *toolService) RemoveAsset(ctx context.Context, projectID, assetID string) (*models.Project, error) {
	return s.projects.Mutate(ctx, projectID, func(p *models.Project) error {
		*p = assetlog.RemoveByID(*p, assetID)
		return nil
	})
}

// Assets lists the project's assets newest first.
func (s *toolService) Assets(ctx context.Context, projectID string) ([]models.GeneratedAsset, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return assetlog.SortedByRecency(p.GeneratedAssets), nil
}
