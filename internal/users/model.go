package users

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type Profile struct {
	ID          string    `json:"id"`
	Email       *string   `json:"email,omitempty"`
	DisplayName *string   `json:"display_name"`
	Bio         *string   `json:"bio"`
	GithubURL   *string   `json:"github_url"`
	AvatarURL   *string   `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	GithubURL   *string
	AvatarURL   *string
}
