package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vibecodes/vibecodes-api/internal/discussions/domain"
)

// DiscussionRepository persists discussions and their replies.
type DiscussionRepository struct {
	db *sql.DB
}

func NewDiscussionRepository(db *sql.DB) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

const discussionColumns = `id, idea_id, author_id, title, body, pinned, reply_count, created_at, updated_at, last_activity_at`

func scanDiscussion(row rowScanner) (*domain.Discussion, error) {
	var d domain.Discussion
	err := row.Scan(&d.ID, &d.IdeaID, &d.AuthorID, &d.Title, &d.Body, &d.Pinned,
		&d.ReplyCount, &d.CreatedAt, &d.UpdatedAt, &d.LastActivityAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a discussion, filling ID and timestamps.
func (r *DiscussionRepository) Create(ctx context.Context, d *domain.Discussion) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	const q = `
INSERT INTO discussions (id, idea_id, author_id, title, body)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, updated_at, last_activity_at;
`
	err := r.db.QueryRowContext(ctx, q, d.ID, d.IdeaID, d.AuthorID, d.Title, d.Body).
		Scan(&d.CreatedAt, &d.UpdatedAt, &d.LastActivityAt)
	if err != nil {
		return fmt.Errorf("insert discussion: %w", err)
	}
	return nil
}

// ListByIdea returns pinned threads first, then most recently active.
func (r *DiscussionRepository) ListByIdea(ctx context.Context, ideaID string) ([]domain.Discussion, error) {
	q := `SELECT ` + discussionColumns + `
FROM discussions
WHERE idea_id = $1
ORDER BY pinned DESC, last_activity_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, ideaID)
	if err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Discussion, 0, 16)
	for rows.Next() {
		d, err := scanDiscussion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DiscussionRepository) GetByID(ctx context.Context, id string) (*domain.Discussion, error) {
	q := `SELECT ` + discussionColumns + ` FROM discussions WHERE id = $1;`

	d, err := scanDiscussion(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDiscussionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get discussion: %w", err)
	}
	return d, nil
}

func (r *DiscussionRepository) Update(ctx context.Context, d *domain.Discussion) error {
	const q = `
UPDATE discussions
SET title = $2, body = $3, updated_at = now()
WHERE id = $1
RETURNING updated_at;
`
	err := r.db.QueryRowContext(ctx, q, d.ID, d.Title, d.Body).Scan(&d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrDiscussionNotFound
	}
	if err != nil {
		return fmt.Errorf("update discussion: %w", err)
	}
	return nil
}

func (r *DiscussionRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	const q = `UPDATE discussions SET pinned = $2, updated_at = now() WHERE id = $1;`

	result, err := r.db.ExecContext(ctx, q, id, pinned)
	if err != nil {
		return fmt.Errorf("pin discussion: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDiscussionNotFound
	}
	return nil
}

// Delete removes a discussion; replies go with it via ON DELETE CASCADE.
func (r *DiscussionRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM discussions WHERE id = $1;`, id)
	if err != nil {
		return false, fmt.Errorf("delete discussion: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Idea returns the author and visibility of the idea a discussion hangs off.
func (r *DiscussionRepository) Idea(ctx context.Context, ideaID string) (*domain.IdeaRef, error) {
	var ref domain.IdeaRef
	err := r.db.QueryRowContext(ctx, `SELECT author_id, visibility FROM ideas WHERE id = $1;`, ideaID).
		Scan(&ref.AuthorID, &ref.Visibility)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrIdeaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}
	return &ref, nil
}

// CreateReply inserts a reply and bumps the thread's counters in one transaction.
func (r *DiscussionRepository) CreateReply(ctx context.Context, reply *domain.Reply) error {
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const insertQ = `
INSERT INTO discussion_replies (id, discussion_id, author_id, content, parent_reply_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at;
`
	err = tx.QueryRowContext(ctx, insertQ, reply.ID, reply.DiscussionID, reply.AuthorID, reply.Content, reply.ParentReplyID).
		Scan(&reply.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}

	const bumpQ = `
UPDATE discussions
SET reply_count = reply_count + 1, last_activity_at = now()
WHERE id = $1;
`
	if _, err := tx.ExecContext(ctx, bumpQ, reply.DiscussionID); err != nil {
		return fmt.Errorf("bump discussion: %w", err)
	}

	return tx.Commit()
}

func (r *DiscussionRepository) GetReply(ctx context.Context, id string) (*domain.Reply, error) {
	const q = `
SELECT id, discussion_id, author_id, content, parent_reply_id, created_at
FROM discussion_replies
WHERE id = $1;
`
	var reply domain.Reply
	var parent sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&reply.ID, &reply.DiscussionID, &reply.AuthorID, &reply.Content, &parent, &reply.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReplyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reply: %w", err)
	}
	if parent.Valid {
		reply.ParentReplyID = &parent.String
	}
	return &reply, nil
}

// ListReplies returns a thread's replies oldest first.
func (r *DiscussionRepository) ListReplies(ctx context.Context, discussionID string) ([]domain.Reply, error) {
	const q = `
SELECT id, discussion_id, author_id, content, parent_reply_id, created_at
FROM discussion_replies
WHERE discussion_id = $1
ORDER BY created_at ASC;
`
	rows, err := r.db.QueryContext(ctx, q, discussionID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Reply, 0, 32)
	for rows.Next() {
		var reply domain.Reply
		var parent sql.NullString
		if err := rows.Scan(&reply.ID, &reply.DiscussionID, &reply.AuthorID, &reply.Content, &parent, &reply.CreatedAt); err != nil {
			return nil, err
		}
		if parent.Valid {
			p := parent.String
			reply.ParentReplyID = &p
		}
		out = append(out, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReply removes a reply and recounts the thread.
func (r *DiscussionRepository) DeleteReply(ctx context.Context, id, discussionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM discussion_replies WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete reply: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrReplyNotFound
	}

	const recountQ = `
UPDATE discussions
SET reply_count = (SELECT count(*) FROM discussion_replies WHERE discussion_id = $1)
WHERE id = $1;
`
	if _, err := tx.ExecContext(ctx, recountQ, discussionID); err != nil {
		return fmt.Errorf("recount replies: %w", err)
	}

	return tx.Commit()
}
