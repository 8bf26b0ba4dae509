package agents

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibecodes/vibecodes-api/internal/api/respond"
	"github.com/vibecodes/vibecodes-api/internal/auth"
)

var statuses = respond.Statuses{
	ErrNotFound:  http.StatusNotFound,
	ErrForbidden: http.StatusForbidden,
	ErrNameTaken: http.StatusConflict,
}

type Handler struct {
	svc *Service
}

func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.POST("/:id/active", h.setActive)
	rg.DELETE("/:id", h.delete)
}

type botReq struct {
	Name         *string `json:"name,omitempty"`
	Role         *string `json:"role,omitempty"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
}

type activeReq struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	var req botReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	b, err := h.svc.CreateBot(c.Request.Context(), auth.UserID(c), BotInput(req))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusCreated, gin.H{"bot": b})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListMyBots(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"bots": items})
}

func (h *Handler) get(c *gin.Context) {
	b, err := h.svc.GetBot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"bot": b})
}

func (h *Handler) update(c *gin.Context) {
	var req botReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	b, err := h.svc.UpdateBot(c.Request.Context(), auth.UserID(c), c.Param("id"), BotInput(req))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"bot": b})
}

func (h *Handler) setActive(c *gin.Context) {
	var req activeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "active is required")
		return
	}
	b, err := h.svc.SetActive(c.Request.Context(), auth.UserID(c), c.Param("id"), *req.Active)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"bot": b})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.DeleteBot(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, nil)
}
