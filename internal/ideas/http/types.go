package http

import "github.com/vibecodes/vibecodes-api/internal/ideas/service"

type Handler struct {
	svc *service.IdeaService
}

func New(svc *service.IdeaService) *Handler {
	return &Handler{svc: svc}
}

type createIdeaReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	GithubURL   *string  `json:"github_url,omitempty"`
	Visibility  string   `json:"visibility"`
}

type updateIdeaReq struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	GithubURL   *string  `json:"github_url,omitempty"`
	Visibility  *string  `json:"visibility,omitempty"`
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}
