package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibecodes/vibecodes-api/internal/api/respond"
	"github.com/vibecodes/vibecodes-api/internal/auth"
)

var statuses = respond.Statuses{
	ErrNotFound: http.StatusNotFound,
}

type Handler struct {
	svc *Service
}

func Register(api *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	api.GET("/me", h.me)
	api.PATCH("/me", h.updateMe)
	api.GET("/users/:id", h.profile)
}

type updateReq struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	GithubURL   *string `json:"github_url,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

func (h *Handler) me(c *gin.Context) {
	p, err := h.svc.GetMe(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) updateMe(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	p, err := h.svc.UpdateProfile(c.Request.Context(), auth.UserID(c), ProfileUpdate(req))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) profile(c *gin.Context) {
	p, err := h.svc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"profile": p})
}
