package enhance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibecodes/vibecodes-api/internal/api/respond"
	"github.com/vibecodes/vibecodes-api/internal/auth"
	"github.com/vibecodes/vibecodes-api/internal/ideas/domain"
)

var statuses = respond.Statuses{
	ErrDisabled:            http.StatusServiceUnavailable,
	ErrRateLimited:         http.StatusTooManyRequests,
	ErrUpstream:            http.StatusBadGateway,
	domain.ErrIdeaNotFound: http.StatusNotFound,
	domain.ErrForbidden:    http.StatusForbidden,
}

type Handler struct {
	svc *Service
}

func Register(api *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}
	api.POST("/ideas/:id/enhance", h.enhance)
}

type enhanceReq struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) enhance(c *gin.Context) {
	var req enhanceReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Fail(c, http.StatusBadRequest, "invalid body")
			return
		}
	}

	desc, err := h.svc.Enhance(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Prompt)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"description": desc})
}
