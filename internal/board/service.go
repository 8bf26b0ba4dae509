package board

import (
	"context"

	"github.com/vibecodes/vibecodes-api/internal/validation"
)

type Store interface {
	Idea(ctx context.Context, ideaID string) (*IdeaRef, error)
	EnsureColumns(ctx context.Context, ideaID string, titles []string) error
	Columns(ctx context.Context, ideaID string) ([]Column, error)
	GetColumn(ctx context.Context, id string) (*Column, error)
	CreateColumn(ctx context.Context, col *Column) error
	RenameColumn(ctx context.Context, id, title string) error
	CountTasks(ctx context.Context, columnID string) (int, error)
	DeleteColumn(ctx context.Context, id string) error
	Tasks(ctx context.Context, ideaID string) ([]Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	CreateTask(ctx context.Context, t *Task) error
	UpdateTask(ctx context.Context, t *Task) error
	MoveTask(ctx context.Context, taskID, columnID string, position int) error
	DeleteTask(ctx context.Context, id string) error
	Labels(ctx context.Context, ideaID string) ([]Label, error)
	GetLabel(ctx context.Context, id string) (*Label, error)
	CreateLabel(ctx context.Context, l *Label) error
	DeleteLabel(ctx context.Context, id string) error
	LabelIdeas(ctx context.Context, labelIDs []string) (map[string]string, error)
	SetTaskLabels(ctx context.Context, taskID string, labelIDs []string) error
}

// Service is the per-idea kanban. Anyone who can see the idea can read the
// board; only the idea author can change it.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListBoard(ctx context.Context, viewerID, ideaID string) (*Board, error) {
	id, err := validation.UUID(ideaID, "Idea ID")
	if err != nil {
		return nil, err
	}
	idea, err := s.store.Idea(ctx, id)
	if err != nil {
		return nil, err
	}
	if !idea.VisibleTo(viewerID) {
		return nil, ErrIdeaNotFound
	}

	columns, err := s.store.Columns(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		if err := s.store.EnsureColumns(ctx, id, DefaultColumns); err != nil {
			return nil, err
		}
		if columns, err = s.store.Columns(ctx, id); err != nil {
			return nil, err
		}
	}

	tasks, err := s.store.Tasks(ctx, id)
	if err != nil {
		return nil, err
	}
	labels, err := s.store.Labels(ctx, id)
	if err != nil {
		return nil, err
	}
	return assemble(columns, tasks, labels), nil
}

func (s *Service) CreateColumn(ctx context.Context, userID, ideaID, title string) (*Column, error) {
	id, err := s.authorize(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}
	t, err := validation.ColumnTitle(title)
	if err != nil {
		return nil, err
	}
	col := &Column{IdeaID: id, Title: t}
	if err := s.store.CreateColumn(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *Service) RenameColumn(ctx context.Context, userID, columnID, title string) (*Column, error) {
	col, err := s.column(ctx, userID, columnID)
	if err != nil {
		return nil, err
	}
	if col.Title, err = validation.ColumnTitle(title); err != nil {
		return nil, err
	}
	if err := s.store.RenameColumn(ctx, col.ID, col.Title); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *Service) DeleteColumn(ctx context.Context, userID, columnID string) error {
	col, err := s.column(ctx, userID, columnID)
	if err != nil {
		return err
	}
	n, err := s.store.CountTasks(ctx, col.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrColumnNotEmpty
	}
	return s.store.DeleteColumn(ctx, col.ID)
}

type TaskInput struct {
	Title       *string
	Description *string
	AssigneeID  *string
}

func (s *Service) CreateTask(ctx context.Context, userID, columnID string, in TaskInput) (*Task, error) {
	col, err := s.column(ctx, userID, columnID)
	if err != nil {
		return nil, err
	}
	var title string
	if in.Title != nil {
		title = *in.Title
	}
	t := &Task{IdeaID: col.IdeaID, ColumnID: col.ID}
	if t.Title, err = validation.TaskTitle(title); err != nil {
		return nil, err
	}
	if t.Description, err = validation.OptionalDescription(in.Description); err != nil {
		return nil, err
	}
	if t.AssigneeID, err = validation.OptionalUUID(in.AssigneeID, "Assignee ID"); err != nil {
		return nil, err
	}
	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTask applies the non-nil fields. An empty description or assignee clears it.
func (s *Service) UpdateTask(ctx context.Context, userID, taskID string, in TaskInput) (*Task, error) {
	t, err := s.task(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if t.Title, err = validation.TaskTitle(*in.Title); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if t.Description, err = validation.OptionalDescription(in.Description); err != nil {
			return nil, err
		}
	}
	if in.AssigneeID != nil {
		if t.AssigneeID, err = validation.OptionalUUID(in.AssigneeID, "Assignee ID"); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) MoveTask(ctx context.Context, userID, taskID, columnID string, position int) (*Task, error) {
	t, err := s.task(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	cid, err := validation.UUID(columnID, "Column ID")
	if err != nil {
		return nil, err
	}
	col, err := s.store.GetColumn(ctx, cid)
	if err != nil {
		return nil, err
	}
	if col.IdeaID != t.IdeaID {
		return nil, ErrWrongIdea
	}
	if err := s.store.MoveTask(ctx, t.ID, col.ID, position); err != nil {
		return nil, err
	}
	return s.store.GetTask(ctx, t.ID)
}

func (s *Service) DeleteTask(ctx context.Context, userID, taskID string) error {
	t, err := s.task(ctx, userID, taskID)
	if err != nil {
		return err
	}
	return s.store.DeleteTask(ctx, t.ID)
}

func (s *Service) CreateLabel(ctx context.Context, userID, ideaID, name, color string) (*Label, error) {
	id, err := s.authorize(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}
	l := &Label{IdeaID: id}
	if l.Name, err = validation.LabelName(name); err != nil {
		return nil, err
	}
	if l.Color, err = validation.LabelColor(color); err != nil {
		return nil, err
	}
	if err := s.store.CreateLabel(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) DeleteLabel(ctx context.Context, userID, labelID string) error {
	id, err := validation.UUID(labelID, "Label ID")
	if err != nil {
		return err
	}
	l, err := s.store.GetLabel(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authorize(ctx, userID, l.IdeaID); err != nil {
		return err
	}
	return s.store.DeleteLabel(ctx, l.ID)
}

// SetTaskLabels replaces the task's labels. Every label must belong to the task's idea.
func (s *Service) SetTaskLabels(ctx context.Context, userID, taskID string, labelIDs []string) (*Task, error) {
	t, err := s.task(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(labelIDs))
	seen := make(map[string]bool, len(labelIDs))
	for _, raw := range labelIDs {
		id, err := validation.UUID(raw, "Label ID")
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	owners, err := s.store.LabelIdeas(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		ideaID, ok := owners[id]
		if !ok {
			return nil, ErrLabelNotFound
		}
		if ideaID != t.IdeaID {
			return nil, ErrWrongIdea
		}
	}

	if err := s.store.SetTaskLabels(ctx, t.ID, ids); err != nil {
		return nil, err
	}
	t.LabelIDs = ids
	return t, nil
}

// authorize returns the normalized idea id when userID may edit its board.
func (s *Service) authorize(ctx context.Context, userID, ideaID string) (string, error) {
	id, err := validation.UUID(ideaID, "Idea ID")
	if err != nil {
		return "", err
	}
	idea, err := s.store.Idea(ctx, id)
	if err != nil {
		return "", err
	}
	if idea.AuthorID != userID {
		if !idea.VisibleTo(userID) {
			return "", ErrIdeaNotFound
		}
		return "", ErrForbidden
	}
	return id, nil
}

func (s *Service) column(ctx context.Context, userID, columnID string) (*Column, error) {
	id, err := validation.UUID(columnID, "Column ID")
	if err != nil {
		return nil, err
	}
	col, err := s.store.GetColumn(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, userID, col.IdeaID); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *Service) task(ctx context.Context, userID, taskID string) (*Task, error) {
	id, err := validation.UUID(taskID, "Task ID")
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, userID, t.IdeaID); err != nil {
		return nil, err
	}
	return t, nil
}
