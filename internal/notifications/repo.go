package notifications

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, n *Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	const q = `
INSERT INTO notifications (id, user_id, actor_id, type, idea_id, discussion_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at;
`
	if err := r.db.QueryRowContext(ctx, q, n.ID, n.UserID, n.ActorID, n.Type, n.IdeaID, n.DiscussionID).Scan(&n.CreatedAt); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]Notification, error) {
	const q = `
SELECT id, user_id, actor_id, type, idea_id, discussion_id, read, created_at
FROM notifications
WHERE user_id = $1 AND ($2 = false OR read = false)
ORDER BY created_at DESC
LIMIT $3;
`
	rows, err := r.db.QueryContext(ctx, q, userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]Notification, 0, limit)
	for rows.Next() {
		var n Notification
		var ideaID, discussionID sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.ActorID, &n.Type, &ideaID, &discussionID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if ideaID.Valid {
			n.IdeaID = &ideaID.String
		}
		if discussionID.Valid {
			n.DiscussionID = &discussionID.String
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repo) UnreadCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND read = false;`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

func (r *Repo) MarkRead(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE user_id = $1 AND read = false;`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return result.RowsAffected()
}

// DeleteReadBefore purges read notifications created before cutoff.
func (r *Repo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE read = true AND created_at < $1;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return result.RowsAffected()
}
