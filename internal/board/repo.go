package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Idea(ctx context.Context, ideaID string) (*IdeaRef, error) {
	var ref IdeaRef
	err := r.db.QueryRowContext(ctx, `SELECT author_id, visibility FROM ideas WHERE id = $1;`, ideaID).
		Scan(&ref.AuthorID, &ref.Visibility)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIdeaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}
	return &ref, nil
}

// EnsureColumns seeds titles as the idea's columns unless it already has some.
// The idea row is locked so concurrent first reads seed once.
func (r *Repo) EnsureColumns(ctx context.Context, ideaID string, titles []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT id FROM ideas WHERE id = $1 FOR UPDATE;`, ideaID); err != nil {
		return fmt.Errorf("lock idea: %w", err)
	}

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM board_columns WHERE idea_id = $1;`, ideaID).Scan(&n); err != nil {
		return fmt.Errorf("count columns: %w", err)
	}
	if n > 0 {
		return tx.Commit()
	}

	for i, title := range titles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO board_columns (id, idea_id, title, position) VALUES ($1, $2, $3, $4);`,
			uuid.NewString(), ideaID, title, i); err != nil {
			return fmt.Errorf("insert column: %w", err)
		}
	}
	return tx.Commit()
}

func (r *Repo) Columns(ctx context.Context, ideaID string) ([]Column, error) {
	const q = `
SELECT id, idea_id, title, position, created_at
FROM board_columns
WHERE idea_id = $1
ORDER BY position ASC, created_at ASC;
`
	rows, err := r.db.QueryContext(ctx, q, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	out := make([]Column, 0, 4)
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.ID, &col.IdeaID, &col.Title, &col.Position, &col.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, rows.Err()
}

func (r *Repo) GetColumn(ctx context.Context, id string) (*Column, error) {
	var col Column
	err := r.db.QueryRowContext(ctx,
		`SELECT id, idea_id, title, position, created_at FROM board_columns WHERE id = $1;`, id).
		Scan(&col.ID, &col.IdeaID, &col.Title, &col.Position, &col.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrColumnNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get column: %w", err)
	}
	return &col, nil
}

// CreateColumn appends the column after the idea's last one.
func (r *Repo) CreateColumn(ctx context.Context, col *Column) error {
	if col.ID == "" {
		col.ID = uuid.NewString()
	}
	const q = `
INSERT INTO board_columns (id, idea_id, title, position)
VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position) + 1, 0) FROM board_columns WHERE idea_id = $2))
RETURNING position, created_at;
`
	if err := r.db.QueryRowContext(ctx, q, col.ID, col.IdeaID, col.Title).Scan(&col.Position, &col.CreatedAt); err != nil {
		return fmt.Errorf("insert column: %w", err)
	}
	return nil
}

func (r *Repo) RenameColumn(ctx context.Context, id, title string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE board_columns SET title = $2 WHERE id = $1;`, id, title)
	if err != nil {
		return fmt.Errorf("rename column: %w", err)
	}
	return expectOne(result, ErrColumnNotFound)
}

func (r *Repo) CountTasks(ctx context.Context, columnID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM board_tasks WHERE column_id = $1;`, columnID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (r *Repo) DeleteColumn(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM board_columns WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete column: %w", err)
	}
	return expectOne(result, ErrColumnNotFound)
}

const taskSelect = `
SELECT t.id, t.idea_id, t.column_id, t.title, t.description, t.assignee_id, t.position,
       COALESCE(array_remove(array_agg(tl.label_id::text), NULL), '{}'), t.created_at, t.updated_at
FROM board_tasks t
LEFT JOIN board_task_labels tl ON tl.task_id = t.id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var desc, assignee sql.NullString
	var labels []string
	err := row.Scan(&t.ID, &t.IdeaID, &t.ColumnID, &t.Title, &desc, &assignee, &t.Position,
		pq.Array(&labels), &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	if assignee.Valid {
		t.AssigneeID = &assignee.String
	}
	if labels == nil {
		labels = []string{}
	}
	t.LabelIDs = labels
	return &t, nil
}

func (r *Repo) Tasks(ctx context.Context, ideaID string) ([]Task, error) {
	q := taskSelect + `WHERE t.idea_id = $1
GROUP BY t.id
ORDER BY t.position ASC, t.created_at ASC;`

	rows, err := r.db.QueryContext(ctx, q, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *Repo) GetTask(ctx context.Context, id string) (*Task, error) {
	q := taskSelect + `WHERE t.id = $1
GROUP BY t.id;`

	t, err := scanTask(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// CreateTask appends the task to the bottom of its column.
func (r *Repo) CreateTask(ctx context.Context, t *Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const q = `
INSERT INTO board_tasks (id, idea_id, column_id, title, description, assignee_id, position)
VALUES ($1, $2, $3, $4, $5, $6, (SELECT COALESCE(MAX(position) + 1, 0) FROM board_tasks WHERE column_id = $3))
RETURNING position, created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, t.ID, t.IdeaID, t.ColumnID, t.Title, t.Description, t.AssigneeID).
		Scan(&t.Position, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	if t.LabelIDs == nil {
		t.LabelIDs = []string{}
	}
	return nil
}

func (r *Repo) UpdateTask(ctx context.Context, t *Task) error {
	const q = `
UPDATE board_tasks
SET title = $2, description = $3, assignee_id = $4, updated_at = now()
WHERE id = $1
RETURNING updated_at;
`
	err := r.db.QueryRowContext(ctx, q, t.ID, t.Title, t.Description, t.AssigneeID).Scan(&t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// MoveTask places the task at position within columnID and renumbers both the
// target column and, when it changed, the source column.
func (r *Repo) MoveTask(ctx context.Context, taskID, columnID string, position int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var source string
	err = tx.QueryRowContext(ctx, `SELECT column_id FROM board_tasks WHERE id = $1 FOR UPDATE;`, taskID).Scan(&source)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("lock task: %w", err)
	}

	siblings, err := columnTaskIDs(ctx, tx, columnID, taskID)
	if err != nil {
		return err
	}
	if err := renumber(ctx, tx, columnID, insertAt(siblings, taskID, position)); err != nil {
		return err
	}

	if source != columnID {
		rest, err := columnTaskIDs(ctx, tx, source, taskID)
		if err != nil {
			return err
		}
		if err := renumber(ctx, tx, source, rest); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func columnTaskIDs(ctx context.Context, tx *sql.Tx, columnID, excludeID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM board_tasks WHERE column_id = $1 AND id <> $2 ORDER BY position ASC, created_at ASC;`,
		columnID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list column tasks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func renumber(ctx context.Context, tx *sql.Tx, columnID string, ids []string) error {
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE board_tasks SET column_id = $2, position = $3, updated_at = now() WHERE id = $1;`,
			id, columnID, i); err != nil {
			return fmt.Errorf("reposition task: %w", err)
		}
	}
	return nil
}

func (r *Repo) DeleteTask(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM board_tasks WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOne(result, ErrTaskNotFound)
}

func (r *Repo) Labels(ctx context.Context, ideaID string) ([]Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, idea_id, name, color FROM board_labels WHERE idea_id = $1 ORDER BY name ASC;`, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	defer rows.Close()

	out := make([]Label, 0, 8)
	for rows.Next() {
		var l Label
		if err := rows.Scan(&l.ID, &l.IdeaID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) GetLabel(ctx context.Context, id string) (*Label, error) {
	var l Label
	err := r.db.QueryRowContext(ctx, `SELECT id, idea_id, name, color FROM board_labels WHERE id = $1;`, id).
		Scan(&l.ID, &l.IdeaID, &l.Name, &l.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLabelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get label: %w", err)
	}
	return &l, nil
}

func (r *Repo) CreateLabel(ctx context.Context, l *Label) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO board_labels (id, idea_id, name, color) VALUES ($1, $2, $3, $4);`,
		l.ID, l.IdeaID, l.Name, l.Color); err != nil {
		return fmt.Errorf("insert label: %w", err)
	}
	return nil
}

func (r *Repo) DeleteLabel(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM board_labels WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete label: %w", err)
	}
	return expectOne(result, ErrLabelNotFound)
}

// LabelIdeas maps each existing label id to its idea.
func (r *Repo) LabelIdeas(ctx context.Context, labelIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(labelIDs))
	if len(labelIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, idea_id FROM board_labels WHERE id = ANY($1);`, pq.Array(labelIDs))
	if err != nil {
		return nil, fmt.Errorf("lookup labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, ideaID string
		if err := rows.Scan(&id, &ideaID); err != nil {
			return nil, err
		}
		out[id] = ideaID
	}
	return out, rows.Err()
}

// SetTaskLabels replaces the task's label set.
func (r *Repo) SetTaskLabels(ctx context.Context, taskID string, labelIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM board_task_labels WHERE task_id = $1;`, taskID); err != nil {
		return fmt.Errorf("clear task labels: %w", err)
	}
	if len(labelIDs) > 0 {
		const q = `INSERT INTO board_task_labels (task_id, label_id) SELECT $1, unnest($2::uuid[]);`
		if _, err := tx.ExecContext(ctx, q, taskID, pq.Array(labelIDs)); err != nil {
			return fmt.Errorf("insert task labels: %w", err)
		}
	}
	return tx.Commit()
}

func expectOne(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
