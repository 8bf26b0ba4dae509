package board

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibecodes/vibecodes-api/internal/api/respond"
	"github.com/vibecodes/vibecodes-api/internal/auth"
)

var statuses = respond.Statuses{
	ErrIdeaNotFound:   http.StatusNotFound,
	ErrColumnNotFound: http.StatusNotFound,
	ErrTaskNotFound:   http.StatusNotFound,
	ErrLabelNotFound:  http.StatusNotFound,
	ErrForbidden:      http.StatusForbidden,
	ErrColumnNotEmpty: http.StatusConflict,
	ErrWrongIdea:      http.StatusBadRequest,
}

type Handler struct {
	svc *Service
}

func Register(api *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	api.GET("/ideas/:id/board", h.board)
	api.POST("/ideas/:id/board/columns", h.createColumn)
	api.POST("/ideas/:id/board/labels", h.createLabel)

	b := api.Group("/board")
	b.PATCH("/columns/:id", h.renameColumn)
	b.DELETE("/columns/:id", h.deleteColumn)
	b.POST("/columns/:id/tasks", h.createTask)
	b.PATCH("/tasks/:id", h.updateTask)
	b.POST("/tasks/:id/move", h.moveTask)
	b.PUT("/tasks/:id/labels", h.setTaskLabels)
	b.DELETE("/tasks/:id", h.deleteTask)
	b.DELETE("/labels/:id", h.deleteLabel)
}

type columnReq struct {
	Title string `json:"title"`
}

type taskReq struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
}

type moveReq struct {
	ColumnID string `json:"column_id" binding:"required"`
	Position int    `json:"position"`
}

type labelReq struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type taskLabelsReq struct {
	LabelIDs []string `json:"label_ids"`
}

func (h *Handler) board(c *gin.Context) {
	b, err := h.svc.ListBoard(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"board": b})
}

func (h *Handler) createColumn(c *gin.Context) {
	var req columnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	col, err := h.svc.CreateColumn(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Title)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusCreated, gin.H{"column": col})
}

func (h *Handler) renameColumn(c *gin.Context) {
	var req columnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	col, err := h.svc.RenameColumn(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Title)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"column": col})
}

func (h *Handler) deleteColumn(c *gin.Context) {
	if err := h.svc.DeleteColumn(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, nil)
}

func (h *Handler) createTask(c *gin.Context) {
	var req taskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	t, err := h.svc.CreateTask(c.Request.Context(), auth.UserID(c), c.Param("id"), TaskInput(req))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusCreated, gin.H{"task": t})
}

func (h *Handler) updateTask(c *gin.Context) {
	var req taskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	t, err := h.svc.UpdateTask(c.Request.Context(), auth.UserID(c), c.Param("id"), TaskInput(req))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"task": t})
}

func (h *Handler) moveTask(c *gin.Context) {
	var req moveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "column_id is required")
		return
	}
	t, err := h.svc.MoveTask(c.Request.Context(), auth.UserID(c), c.Param("id"), req.ColumnID, req.Position)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"task": t})
}

func (h *Handler) deleteTask(c *gin.Context) {
	if err := h.svc.DeleteTask(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, nil)
}

func (h *Handler) createLabel(c *gin.Context) {
	var req labelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	l, err := h.svc.CreateLabel(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Name, req.Color)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusCreated, gin.H{"label": l})
}

func (h *Handler) deleteLabel(c *gin.Context) {
	if err := h.svc.DeleteLabel(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, nil)
}

func (h *Handler) setTaskLabels(c *gin.Context) {
	var req taskLabelsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	t, err := h.svc.SetTaskLabels(c.Request.Context(), auth.UserID(c), c.Param("id"), req.LabelIDs)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"task": t})
}
