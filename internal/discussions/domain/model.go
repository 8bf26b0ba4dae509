package domain

import "time"

// Discussion is a thread attached to an idea.
type Discussion struct {
	ID             string    `json:"id"`
	IdeaID         string    `json:"idea_id"`
	AuthorID       string    `json:"author_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Pinned         bool      `json:"pinned"`
	ReplyCount     int       `json:"reply_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// IdeaRef is the part of the parent idea that decides who may see its threads.
type IdeaRef struct {
	AuthorID   string
	Visibility string
}

// VisibleTo reports whether userID may see the idea. Private ideas are
// visible to their author only.
func (i IdeaRef) VisibleTo(userID string) bool {
	return i.Visibility != "private" || i.AuthorID == userID
}

// Reply is a single row of a discussion. ParentReplyID is nil for replies
// made directly to the discussion.
type Reply struct {
	ID            string    `json:"id"`
	DiscussionID  string    `json:"discussion_id"`
	AuthorID      string    `json:"author_id"`
	Content       string    `json:"content"`
	ParentReplyID *string   `json:"parent_reply_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReplyTreeNode is a top-level reply together with its direct children.
type ReplyTreeNode struct {
	Reply
	Children []Reply `json:"children"`
}

// Thread is what the discussion page renders.
type Thread struct {
	Discussion Discussion      `json:"discussion"`
	Replies    []ReplyTreeNode `json:"replies"`
}

type CreateDiscussionRequest struct {
	IdeaID   string
	AuthorID string
	Title    string
	Body     string
}

type UpdateDiscussionRequest struct {
	Title *string
	Body  *string
}

type CreateReplyRequest struct {
	DiscussionID  string
	AuthorID      string
	Content       string
	ParentReplyID *string
}
