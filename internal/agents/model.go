package agents

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("bot not found")
	ErrForbidden = errors.New("only the bot owner can do that")
	ErrNameTaken = errors.New("you already have a bot with that name")
)

// Bot is an AI team member profile owned by a user.
type Bot struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Role         *string   `json:"role"`
	SystemPrompt *string   `json:"system_prompt"`
	Bio          *string   `json:"bio"`
	AvatarURL    *string   `json:"avatar_url"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BotInput struct {
	Name         *string
	Role         *string
	SystemPrompt *string
	Bio          *string
	AvatarURL    *string
}
