package services

import (
	"context"
	"strings"

	"innovateai/internal/kanban"
	"innovateai/internal/models"
)

type KanbanService interface {
	AddTask(ctx context.Context, projectID, columnID, content string) (*models.Project, string, error)
	RemoveTask(ctx context.Context, projectID, columnID, taskID string) (*models.Project, error)
	ColumnTasks(ctx context.Context, projectID, columnID string) ([]kanban.Task, error)
}

type kanbanService struct {
	projects ProjectService
}

func NewKanbanService(projects ProjectService) KanbanService {
	return &kanbanService{projects: projects}
}

// AddTask appends a task to the column. Blank content changes nothing and
// returns an empty id.
func (s *kanbanService) AddTask(ctx context.Context, projectID, columnID, content string) (*models.Project, string, error) {
	if strings.TrimSpace(content) == "" {
		p, err := s.projects.Get(ctx, projectID)
		return p, "", err
	}
	var id string
	p, err := s.projects.Mutate(ctx, projectID, func(p *models.Project) error {
		board, newID, err := kanban.AddTask(p.Kanban, columnID, content)
		if err != nil {
			return err
		}
		p.Kanban = board
		id = newID
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return p, id, nil
}

func (s *kanbanService) RemoveTask(ctx context.Context, projectID, columnID, taskID string) (*models.Project, error) {
	return s.projects.Mutate(ctx, projectID, func(p *models.Project) error {
		board, err := kanban.RemoveTask(p.Kanban, columnID, taskID)
		if err != nil {
			return err
		}
		p.Kanban = board
		return nil
	})
}

func (s *kanbanService) ColumnTasks(ctx context.Context, projectID, columnID string) ([]kanban.Task, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return kanban.ColumnTasks(p.Kanban, columnID), nil
}
