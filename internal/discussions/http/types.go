package http

import "github.com/vibecodes/vibecodes-api/internal/discussions/service"

type Handler struct {
	svc *service.DiscussionService
}

func New(svc *service.DiscussionService) *Handler {
	return &Handler{svc: svc}
}

type createDiscussionReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type updateDiscussionReq struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

type createReplyReq struct {
	Content       string  `json:"content"`
	ParentReplyID *string `json:"parent_reply_id,omitempty"`
}
