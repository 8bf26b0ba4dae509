package board

import (
	"errors"
	"time"
)

// DefaultColumns seed a board the first time it is read.
var DefaultColumns = []string{"To Do", "In Progress", "Done"}

var (
	ErrIdeaNotFound   = errors.New("idea not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrLabelNotFound  = errors.New("label not found")
	ErrForbidden      = errors.New("only the idea author can edit the board")
	ErrColumnNotEmpty = errors.New("column still has tasks")
	ErrWrongIdea      = errors.New("item belongs to another idea")
)

type IdeaRef struct {
	AuthorID   string
	Visibility string
}

func (i IdeaRef) VisibleTo(userID string) bool {
	return i.Visibility != "private" || i.AuthorID == userID
}

type Column struct {
	ID        string    `json:"id"`
	IdeaID    string    `json:"idea_id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID          string    `json:"id"`
	IdeaID      string    `json:"idea_id"`
	ColumnID    string    `json:"column_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	AssigneeID  *string   `json:"assignee_id"`
	Position    int       `json:"position"`
	LabelIDs    []string  `json:"label_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Label struct {
	ID     string `json:"id"`
	IdeaID string `json:"idea_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

type ColumnWithTasks struct {
	Column
	Tasks []Task `json:"tasks"`
}

type Board struct {
	Columns []ColumnWithTasks `json:"columns"`
	Labels  []Label           `json:"labels"`
}

// assemble groups tasks under their columns. Both inputs are expected in
// position order; tasks pointing at unknown columns are dropped.
func assemble(columns []Column, tasks []Task, labels []Label) *Board {
	b := &Board{
		Columns: make([]ColumnWithTasks, 0, len(columns)),
		Labels:  labels,
	}
	if b.Labels == nil {
		b.Labels = []Label{}
	}

	idx := make(map[string]int, len(columns))
	for i, col := range columns {
		idx[col.ID] = i
		b.Columns = append(b.Columns, ColumnWithTasks{Column: col, Tasks: []Task{}})
	}
	for _, t := range tasks {
		if i, ok := idx[t.ColumnID]; ok {
			b.Columns[i].Tasks = append(b.Columns[i].Tasks, t)
		}
	}
	return b
}

// insertAt returns ids with id inserted at pos, clamped to [0, len(ids)].
func insertAt(ids []string, id string, pos int) []string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(ids) {
		pos = len(ids)
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:pos]...)
	out = append(out, id)
	return append(out, ids[pos:]...)
}
