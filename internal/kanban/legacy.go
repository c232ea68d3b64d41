package kanban

import "strings"

// LegacyBoard is the older fixed three-column layout. It is only read when
// importing stored or exported data; boards are never written in this shape.
type LegacyBoard struct {
	Todo       []Task `json:"todo"`
	InProgress []Task `json:"inProgress"`
	Done       []Task `json:"done"`
}

// FromLegacy converts a fixed-column board into the normalized shape. Blank
// tasks are skipped; missing or repeated ids get a fresh one.
func FromLegacy(l LegacyBoard) Board {
	b := NewBoard()
	place := func(colID string, tasks []Task) {
		col := b.Columns[colID]
		for _, t := range tasks {
			t.Content = strings.TrimSpace(t.Content)
			if t.Content == "" {
				continue
			}
			t.ID = strings.TrimSpace(t.ID)
			if _, dup := b.Tasks[t.ID]; t.ID == "" || dup {
				t.ID = newTaskID()
			}
			b.Tasks[t.ID] = t
			col.TaskIDs = append(col.TaskIDs, t.ID)
		}
		b.Columns[colID] = col
	}
	place(ColumnTodo, l.Todo)
	place(ColumnInProgress, l.InProgress)
	place(ColumnDone, l.Done)
	return b
}
