package domain

import "time"

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusArchived   = "archived"

	VisibilityPublic  = "public"
	VisibilityPrivate = "private"

	SortNewest  = "newest"
	SortPopular = "popular"
)

// Idea is a submission on the board.
type Idea struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Tags         []string  `json:"tags"`
	GithubURL    *string   `json:"github_url"`
	Status       string    `json:"status"`
	Visibility   string    `json:"visibility"`
	Upvotes      int       `json:"upvotes"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (i *Idea) VisibleTo(userID string) bool {
	return i.Visibility != VisibilityPrivate || i.AuthorID == userID
}

type CreateIdeaRequest struct {
	AuthorID    string
	Title       string
	Description string
	Tags        []string
	GithubURL   *string
	Visibility  string
}

type UpdateIdeaRequest struct {
	Title       *string
	Description *string
	Tags        []string
	GithubURL   *string
	Visibility  *string
}

// ListFilter narrows ListIdeas. Private ideas are only listed for ViewerID.
type ListFilter struct {
	ViewerID string
	Sort     string
	Tag      string
	AuthorID string
	Limit    int
	Offset   int
}

type VoteResult struct {
	Voted   bool `json:"voted"`
	Upvotes int  `json:"upvotes"`
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusArchived:
		return true
	}
	return false
}
