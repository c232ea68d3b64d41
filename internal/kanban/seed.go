package kanban

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Proposal is a board as returned by a generator, before validation. Tasks
// and columns are lists because the model cannot emit keyed maps under a
// response schema.
type Proposal struct {
	Tasks       []Task   `json:"tasks"`
	Columns     []Column `json:"columns"`
	ColumnOrder []string `json:"columnOrder"`
}

// Generator proposes a starter board for an idea.
type Generator interface {
	GenerateBoard(ctx context.Context, description string) (*Proposal, error)
}

// Seed asks gen for a starter board and accepts it only once it passes
// FromProposal.
func Seed(ctx context.Context, gen Generator, description string) (Board, error) {
	if gen == nil {
		return Board{}, errors.New("board generator is required")
	}
	p, err := gen.GenerateBoard(ctx, description)
	if err != nil {
		return Board{}, err
	}
	if p == nil {
		return Board{}, fmt.Errorf("%w: empty proposal", ErrMalformedBoard)
	}
	return FromProposal(*p)
}

// FromProposal turns a generated proposal into a board. The first column of
// ColumnOrder is the starting column: every task must be placed there and
// all other columns must be empty. Tasks the proposal lists but never places
// are appended to the starting column.
func FromProposal(p Proposal) (Board, error) {
	b, err := fromProposal(p)
	if err != nil {
		if errors.Is(err, ErrMalformedBoard) {
			return Board{}, err
		}
		return Board{}, fmt.Errorf("%w: %w", ErrMalformedBoard, err)
	}
	return b, nil
}

func fromProposal(p Proposal) (Board, error) {
	if len(p.Tasks) == 0 {
		return Board{}, fmt.Errorf("%w: no tasks generated", ErrMalformedBoard)
	}
	if len(p.ColumnOrder) == 0 {
		return Board{}, fmt.Errorf("%w: no column order", ErrMalformedBoard)
	}

	b := Board{
		Tasks:       make(map[string]Task, len(p.Tasks)),
		Columns:     make(map[string]Column, len(p.Columns)),
		ColumnOrder: make([]string, 0, len(p.ColumnOrder)),
	}
	taskOrder := make([]string, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		t.ID = strings.TrimSpace(t.ID)
		t.Content = strings.TrimSpace(t.Content)
		if t.ID == "" || t.Content == "" {
			return Board{}, fmt.Errorf("%w: task without id or content", ErrMalformedBoard)
		}
		if _, dup := b.Tasks[t.ID]; dup {
			return Board{}, fmt.Errorf("%w: task %s", ErrDuplicateID, t.ID)
		}
		b.Tasks[t.ID] = t
		taskOrder = append(taskOrder, t.ID)
	}

	for _, c := range p.Columns {
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return Board{}, fmt.Errorf("%w: column without id", ErrMalformedBoard)
		}
		if _, dup := b.Columns[c.ID]; dup {
			return Board{}, fmt.Errorf("%w: column %s", ErrDuplicateID, c.ID)
		}
		if strings.TrimSpace(c.Title) == "" {
			c.Title = c.ID
		}
		ids := make([]string, 0, len(c.TaskIDs))
		for _, id := range c.TaskIDs {
			ids = append(ids, strings.TrimSpace(id))
		}
		c.TaskIDs = ids
		b.Columns[c.ID] = c
	}

	for _, id := range p.ColumnOrder {
		id = strings.TrimSpace(id)
		if _, ok := b.Columns[id]; !ok {
			return Board{}, fmt.Errorf("%w: %s", ErrUnknownColumn, id)
		}
		b.ColumnOrder = append(b.ColumnOrder, id)
	}

	start := b.ColumnOrder[0]
	placed := make(map[string]bool, len(b.Tasks))
	for _, colID := range b.ColumnOrder {
		col := b.Columns[colID]
		for _, taskID := range col.TaskIDs {
			if _, ok := b.Tasks[taskID]; !ok {
				return Board{}, fmt.Errorf("%w: %s in column %s", ErrDanglingTask, taskID, colID)
			}
			if colID != start {
				return Board{}, fmt.Errorf("%w: task %s placed in %s", ErrSeedPlacement, taskID, colID)
			}
			placed[taskID] = true
		}
	}

	startCol := b.Columns[start]
	for _, id := range taskOrder {
		if !placed[id] {
			startCol.TaskIDs = append(startCol.TaskIDs, id)
		}
	}
	b.Columns[start] = startCol

	if err := Validate(b); err != nil {
		return Board{}, err
	}
	return b, nil
}
