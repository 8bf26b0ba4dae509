package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const botColumns = `id::text, owner_id::text, name, role, system_prompt, bio, avatar_url, is_active, created_at, updated_at`

func scanBot(row pgx.Row) (*Bot, error) {
	var b Bot
	err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Role, &b.SystemPrompt, &b.Bio, &b.AvatarURL,
		&b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *Repo) Create(ctx context.Context, b *Bot) (*Bot, error) {
	q := `
insert into bot_profiles (owner_id, name, role, system_prompt, bio, avatar_url)
values ($1::uuid, $2, $3, $4, $5, $6)
returning ` + botColumns + `;`

	out, err := scanBot(r.db.QueryRow(ctx, q, b.OwnerID, b.Name, b.Role, b.SystemPrompt, b.Bio, b.AvatarURL))
	if uniqueViolation(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("insert bot: %w", err)
	}
	return out, nil
}

func (r *Repo) ListByOwner(ctx context.Context, ownerID string) ([]Bot, error) {
	q := `select ` + botColumns + `
from bot_profiles
where owner_id = $1::uuid
order by created_at desc;`

	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Bot, 0, 8)
	for rows.Next() {
		b, err := scanBot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (*Bot, error) {
	q := `select ` + botColumns + ` from bot_profiles where id = $1::uuid;`
	return scanBot(r.db.QueryRow(ctx, q, id))
}

func (r *Repo) Update(ctx context.Context, b *Bot) (*Bot, error) {
	q := `
update bot_profiles
set name = $2, role = $3, system_prompt = $4, bio = $5, avatar_url = $6, updated_at = now()
where id = $1::uuid
returning ` + botColumns + `;`

	out, err := scanBot(r.db.QueryRow(ctx, q, b.ID, b.Name, b.Role, b.SystemPrompt, b.Bio, b.AvatarURL))
	if uniqueViolation(err) {
		return nil, ErrNameTaken
	}
	return out, err
}

func (r *Repo) SetActive(ctx context.Context, id string, active bool) (*Bot, error) {
	q := `
update bot_profiles
set is_active = $2, updated_at = now()
where id = $1::uuid
returning ` + botColumns + `;`
	return scanBot(r.db.QueryRow(ctx, q, id, active))
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from bot_profiles where id = $1::uuid;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
