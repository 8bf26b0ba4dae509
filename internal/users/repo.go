package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	FirebaseUID string
	Email       string
	DisplayName string
	AvatarURL   string
}

// EnsureUser upserts the profile keyed by identity-provider UID and returns
// its internal UUID. Profile fields the user edited are never overwritten.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	if u.FirebaseUID == "" {
		return "", fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, display_name, avatar_url, updated_at)
values ($1, nullif($2,''), nullif($3,''), nullif($4,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(users.display_name, excluded.display_name),
  avatar_url = coalesce(users.avatar_url, excluded.avatar_url),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRow(ctx, q, u.FirebaseUID, u.Email, u.DisplayName, u.AvatarURL).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

const profileColumns = `id::text, email, display_name, bio, github_url, avatar_url, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.DisplayName, &p.Bio, &p.GithubURL, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Profile, error) {
	q := `select ` + profileColumns + ` from users where id = $1::uuid;`
	return scanProfile(r.db.QueryRow(ctx, q, id))
}

func (r *Repo) Update(ctx context.Context, p *Profile) (*Profile, error) {
	q := `
update users
set display_name = $2, bio = $3, github_url = $4, avatar_url = $5, updated_at = now()
where id = $1::uuid
returning ` + profileColumns + `;`
	return scanProfile(r.db.QueryRow(ctx, q, p.ID, p.DisplayName, p.Bio, p.GithubURL, p.AvatarURL))
}
