package notifications

import (
	"errors"
	"time"
)

const (
	TypeComment      = "comment"
	TypeVote         = "vote"
	TypeReply        = "reply"
	TypeCollaborator = "collaborator"
)

var ErrNotFound = errors.New("notification not found")

type Notification struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ActorID      string    `json:"actor_id"`
	Type         string    `json:"type"`
	IdeaID       *string   `json:"idea_id,omitempty"`
	DiscussionID *string   `json:"discussion_id,omitempty"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewNotification is what other modules hand to Service.Notify.
type NewNotification struct {
	UserID       string
	ActorID      string
	Type         string
	IdeaID       *string
	DiscussionID *string
}
