package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vibecodes/vibecodes-api/internal/ideas/domain"
)

// IdeaRepository provides persistence operations for ideas and votes.
type IdeaRepository struct {
	db *sql.DB
}

func NewIdeaRepository(db *sql.DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

const ideaColumns = `id, author_id, title, description, tags, github_url, status, visibility, upvotes, comment_count, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (*domain.Idea, error) {
	var i domain.Idea
	var tags []string
	var github sql.NullString
	err := row.Scan(&i.ID, &i.AuthorID, &i.Title, &i.Description, pq.Array(&tags), &github,
		&i.Status, &i.Visibility, &i.Upvotes, &i.CommentCount, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	i.Tags = tags
	if github.Valid {
		i.GithubURL = &github.String
	}
	return &i, nil
}

func (r *IdeaRepository) Create(ctx context.Context, i *domain.Idea) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}

	const q = `
INSERT INTO ideas (id, author_id, title, description, tags, github_url, status, visibility)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, i.ID, i.AuthorID, i.Title, i.Description, pq.Array(i.Tags),
		i.GithubURL, i.Status, i.Visibility).Scan(&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert idea: %w", err)
	}
	return nil
}

func (r *IdeaRepository) GetByID(ctx context.Context, id string) (*domain.Idea, error) {
	q := `SELECT ` + ideaColumns + ` FROM ideas WHERE id = $1;`

	i, err := scanIdea(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrIdeaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}
	return i, nil
}

// List returns public ideas plus the viewer's own private ones.
func (r *IdeaRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.Idea, error) {
	order := "created_at DESC"
	if f.Sort == domain.SortPopular {
		order = "upvotes DESC, created_at DESC"
	}

	q := `SELECT ` + ideaColumns + `
FROM ideas
WHERE (visibility = 'public' OR author_id = $1)
  AND ($2 = '' OR $2 = ANY(tags))
  AND ($3 = '' OR author_id = $3)
ORDER BY ` + order + `
LIMIT $4 OFFSET $5;`

	rows, err := r.db.QueryContext(ctx, q, f.ViewerID, f.Tag, f.AuthorID, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Idea, 0, f.Limit)
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *IdeaRepository) Update(ctx context.Context, i *domain.Idea) error {
	const q = `
UPDATE ideas
SET title = $2, description = $3, tags = $4, github_url = $5, visibility = $6, status = $7, updated_at = now()
WHERE id = $1
RETURNING updated_at;
`
	err := r.db.QueryRowContext(ctx, q, i.ID, i.Title, i.Description, pq.Array(i.Tags), i.GithubURL, i.Visibility, i.Status).
		Scan(&i.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrIdeaNotFound
	}
	if err != nil {
		return fmt.Errorf("update idea: %w", err)
	}
	return nil
}

// Delete removes the idea; votes, comments, board and discussions cascade.
func (r *IdeaRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = $1;`, id)
	if err != nil {
		return false, fmt.Errorf("delete idea: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ToggleVote removes the user's vote if present, otherwise adds one, and
// returns the resulting state with the recounted total.
func (r *IdeaRepository) ToggleVote(ctx context.Context, ideaID, userID string) (*domain.VoteResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE idea_id = $1 AND user_id = $2;`, ideaID, userID)
	if err != nil {
		return nil, fmt.Errorf("delete vote: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	res := &domain.VoteResult{Voted: removed == 0}
	if res.Voted {
		if _, err := tx.ExecContext(ctx, `INSERT INTO votes (idea_id, user_id) VALUES ($1, $2);`, ideaID, userID); err != nil {
			return nil, fmt.Errorf("insert vote: %w", err)
		}
	}

	const recountQ = `
UPDATE ideas
SET upvotes = (SELECT count(*) FROM votes WHERE idea_id = $1)
WHERE id = $1
RETURNING upvotes;
`
	if err := tx.QueryRowContext(ctx, recountQ, ideaID).Scan(&res.Upvotes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIdeaNotFound
		}
		return nil, fmt.Errorf("recount votes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// HasVoted reports whether userID has voted for each of ideaIDs.
func (r *IdeaRepository) HasVoted(ctx context.Context, userID string, ideaIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(ideaIDs))
	if len(ideaIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT idea_id FROM votes WHERE user_id = $1 AND idea_id = ANY($2);`, userID, pq.Array(ideaIDs))
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
