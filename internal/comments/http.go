package comments

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibecodes/vibecodes-api/internal/api/respond"
	"github.com/vibecodes/vibecodes-api/internal/auth"
)

var statuses = respond.Statuses{
	ErrNotFound:       http.StatusNotFound,
	ErrIdeaNotFound:   http.StatusNotFound,
	ErrForbidden:      http.StatusForbidden,
	ErrInvalidType:    http.StatusBadRequest,
	ErrParentMismatch: http.StatusBadRequest,
}

type Handler struct {
	svc *Service
}

func Register(api *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	api.GET("/ideas/:id/comments", h.list)
	api.POST("/ideas/:id/comments", h.create)
	api.DELETE("/comments/:id", h.delete)
}

type createReq struct {
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parent_comment_id,omitempty"`
	Type            string  `json:"type"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	cm, err := h.svc.Create(c.Request.Context(), CreateRequest{
		IdeaID:          c.Param("id"),
		AuthorID:        auth.UserID(c),
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
		Type:            req.Type,
	})
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusCreated, gin.H{"comment": cm})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"comments": items})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, nil)
}
