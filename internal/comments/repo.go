package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
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

// Create inserts the comment and bumps the idea's comment_count.
func (r *Repo) Create(ctx context.Context, cm *Comment) error {
	if cm.ID == "" {
		cm.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const q = `
INSERT INTO comments (id, idea_id, author_id, parent_comment_id, content, type)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at;
`
	if err := tx.QueryRowContext(ctx, q, cm.ID, cm.IdeaID, cm.AuthorID, cm.ParentCommentID, cm.Content, cm.Type).
		Scan(&cm.CreatedAt); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE ideas SET comment_count = comment_count + 1 WHERE id = $1;`, cm.IdeaID); err != nil {
		return fmt.Errorf("bump comment_count: %w", err)
	}
	return tx.Commit()
}

func (r *Repo) Get(ctx context.Context, id string) (*Comment, error) {
	const q = `
SELECT id, idea_id, author_id, parent_comment_id, content, type, created_at
FROM comments WHERE id = $1;
`
	cm, err := scanComment(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return cm, nil
}

func (r *Repo) List(ctx context.Context, ideaID string) ([]Comment, error) {
	const q = `
SELECT id, idea_id, author_id, parent_comment_id, content, type, created_at
FROM comments
WHERE idea_id = $1
ORDER BY created_at ASC;
`
	rows, err := r.db.QueryContext(ctx, q, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := make([]Comment, 0, 16)
	for rows.Next() {
		cm, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *cm)
	}
	return out, rows.Err()
}

// Delete removes the comment (children cascade) and recounts the idea.
func (r *Repo) Delete(ctx context.Context, id, ideaID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	const recount = `UPDATE ideas SET comment_count = (SELECT count(*) FROM comments WHERE idea_id = $1) WHERE id = $1;`
	if _, err := tx.ExecContext(ctx, recount, ideaID); err != nil {
		return fmt.Errorf("recount comments: %w", err)
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*Comment, error) {
	var cm Comment
	var parent sql.NullString
	if err := row.Scan(&cm.ID, &cm.IdeaID, &cm.AuthorID, &parent, &cm.Content, &cm.Type, &cm.CreatedAt); err != nil {
		return nil, err
	}
	if parent.Valid {
		cm.ParentCommentID = &parent.String
	}
	return &cm, nil
}
