package comments

import (
	"errors"
	"time"
)

const (
	TypeComment    = "comment"
	TypeSuggestion = "suggestion"
	TypeQuestion   = "question"
)

var (
	ErrNotFound       = errors.New("comment not found")
	ErrIdeaNotFound   = errors.New("idea not found")
	ErrForbidden      = errors.New("only the comment author can do that")
	ErrInvalidType    = errors.New("invalid comment type")
	ErrParentMismatch = errors.New("parent comment belongs to another idea")
)

type Comment struct {
	ID              string    `json:"id"`
	IdeaID          string    `json:"idea_id"`
	AuthorID        string    `json:"author_id"`
	ParentCommentID *string   `json:"parent_comment_id"`
	Content         string    `json:"content"`
	Type            string    `json:"type"`
	CreatedAt       time.Time `json:"created_at"`
}

// IdeaRef is the slice of an idea comments need for access checks.
type IdeaRef struct {
	AuthorID   string
	Visibility string
}

func (i IdeaRef) VisibleTo(userID string) bool {
	return i.Visibility != "private" || i.AuthorID == userID
}

func isValidType(t string) bool {
	switch t {
	case TypeComment, TypeSuggestion, TypeQuestion:
		return true
	}
	return false
}
