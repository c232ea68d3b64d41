// Package kanban holds the task board of a project and the only operations
// allowed to change it. Every operation returns a new Board; the input is
// never modified.
package kanban

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Default column ids of a freshly created board.
const (
	ColumnTodo       = "todo"
	ColumnInProgress = "inProgress"
	ColumnDone       = "done"
)

var (
	ErrUnknownColumn  = errors.New("unknown column")
	ErrDanglingTask   = errors.New("column references a task that does not exist")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrMalformedBoard = errors.New("malformed board")
	ErrSeedPlacement  = errors.New("generated tasks must start in the first column")
)

// Task is a single card on the board.
type Task struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Column is an ordered list of task ids.
type Column struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"taskIds"`
}

// Board is the normalized board shape: tasks keyed by id, columns keyed by
// id and an explicit column order.
type Board struct {
	Tasks       map[string]Task   `json:"tasks"`
	Columns     map[string]Column `json:"columns"`
	ColumnOrder []string          `json:"columnOrder"`
}

// NewBoard returns an empty board with the three default columns.
func NewBoard() Board {
	return Board{
		Tasks: map[string]Task{},
		Columns: map[string]Column{
			ColumnTodo:       {ID: ColumnTodo, Title: "To Do", TaskIDs: []string{}},
			ColumnInProgress: {ID: ColumnInProgress, Title: "In Progress", TaskIDs: []string{}},
			ColumnDone:       {ID: ColumnDone, Title: "Done", TaskIDs: []string{}},
		},
		ColumnOrder: []string{ColumnTodo, ColumnInProgress, ColumnDone},
	}
}

// Clone returns a deep copy of b.
func Clone(b Board) Board {
	out := Board{
		Tasks:       make(map[string]Task, len(b.Tasks)),
		Columns:     make(map[string]Column, len(b.Columns)),
		ColumnOrder: append([]string{}, b.ColumnOrder...),
	}
	for id, t := range b.Tasks {
		out.Tasks[id] = t
	}
	for id, c := range b.Columns {
		c.TaskIDs = append([]string{}, c.TaskIDs...)
		out.Columns[id] = c
	}
	return out
}

// newTaskID is swapped in tests that need deterministic ids.
var newTaskID = func() string {
	return "task-" + uuid.NewString()
}

// AddTask appends a new task with the given content to the end of a column.
// Blank content is a no-op: the input board is returned as is together with
// an empty id.
func AddTask(b Board, columnID, content string) (Board, string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return b, "", nil
	}
	if _, ok := b.Columns[columnID]; !ok {
		return b, "", fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}

	out := Clone(b)
	id := newTaskID()
	for _, exists := out.Tasks[id]; exists; _, exists = out.Tasks[id] {
		id = newTaskID()
	}
	out.Tasks[id] = Task{ID: id, Content: content}
	col := out.Columns[columnID]
	col.TaskIDs = append(col.TaskIDs, id)
	out.Columns[columnID] = col
	return out, id, nil
}

// RemoveTask drops taskID from the column and deletes the task itself, so
// every stored task stays reachable from some column. Removing a task that
// is not in the column is a no-op.
func RemoveTask(b Board, columnID, taskID string) (Board, error) {
	col, ok := b.Columns[columnID]
	if !ok {
		return b, fmt.Errorf("%w: %s", ErrUnknownColumn, columnID)
	}
	idx := -1
	for i, id := range col.TaskIDs {
		if id == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return b, nil
	}

	out := Clone(b)
	col = out.Columns[columnID]
	col.TaskIDs = append(col.TaskIDs[:idx], col.TaskIDs[idx+1:]...)
	out.Columns[columnID] = col
	if !referenced(out, taskID) {
		delete(out.Tasks, taskID)
	}
	return out, nil
}

func referenced(b Board, taskID string) bool {
	for _, c := range b.Columns {
		for _, id := range c.TaskIDs {
			if id == taskID {
				return true
			}
		}
	}
	return false
}

// ColumnTasks resolves a column to its visible tasks in order. Ids that do
// not resolve are skipped.
func ColumnTasks(b Board, columnID string) []Task {
	col, ok := b.Columns[columnID]
	if !ok {
		return nil
	}
	tasks := make([]Task, 0, len(col.TaskIDs))
	for _, id := range col.TaskIDs {
		if t, ok := b.Tasks[id]; ok {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Validate checks the write-path invariants: the column order lists every
// column exactly once, every referenced task exists, and every stored task
// sits in exactly one column.
func Validate(b Board) error {
	if len(b.ColumnOrder) == 0 {
		return fmt.Errorf("%w: no columns", ErrMalformedBoard)
	}
	if len(b.ColumnOrder) != len(b.Columns) {
		return fmt.Errorf("%w: column order lists %d columns, board has %d", ErrMalformedBoard, len(b.ColumnOrder), len(b.Columns))
	}
	seenCols := make(map[string]bool, len(b.ColumnOrder))
	seenTasks := make(map[string]bool, len(b.Tasks))
	for _, colID := range b.ColumnOrder {
		if seenCols[colID] {
			return fmt.Errorf("%w: column %s", ErrDuplicateID, colID)
		}
		seenCols[colID] = true
		col, ok := b.Columns[colID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, colID)
		}
		if col.ID != colID {
			return fmt.Errorf("%w: column keyed %s has id %s", ErrMalformedBoard, colID, col.ID)
		}
		for _, taskID := range col.TaskIDs {
			t, ok := b.Tasks[taskID]
			if !ok {
				return fmt.Errorf("%w: %s in column %s", ErrDanglingTask, taskID, colID)
			}
			if t.ID != taskID {
				return fmt.Errorf("%w: task keyed %s has id %s", ErrMalformedBoard, taskID, t.ID)
			}
			if seenTasks[taskID] {
				return fmt.Errorf("%w: task %s", ErrDuplicateID, taskID)
			}
			seenTasks[taskID] = true
		}
	}
	if len(seenTasks) != len(b.Tasks) {
		return fmt.Errorf("%w: %d tasks are not placed in any column", ErrMalformedBoard, len(b.Tasks)-len(seenTasks))
	}
	return nil
}
