package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibecodes/vibecodes-api/internal/api/respond"
	"github.com/vibecodes/vibecodes-api/internal/auth"
	"github.com/vibecodes/vibecodes-api/internal/discussions/domain"
)

var statuses = respond.Statuses{
	domain.ErrIdeaNotFound:       http.StatusNotFound,
	domain.ErrDiscussionNotFound: http.StatusNotFound,
	domain.ErrReplyNotFound:      http.StatusNotFound,
	domain.ErrForbidden:          http.StatusForbidden,
	domain.ErrParentNotInThread:  http.StatusBadRequest,
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListDiscussions(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"discussions": items})
}

func (h *Handler) create(c *gin.Context) {
	var req createDiscussionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	d, err := h.svc.CreateDiscussion(c.Request.Context(), &domain.CreateDiscussionRequest{
		IdeaID:   c.Param("id"),
		AuthorID: auth.UserID(c),
		Title:    req.Title,
		Body:     req.Body,
	})
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusCreated, gin.H{"discussion": d})
}

func (h *Handler) thread(c *gin.Context) {
	thread, err := h.svc.GetThread(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"discussion": thread.Discussion, "replies": thread.Replies})
}

func (h *Handler) update(c *gin.Context) {
	var req updateDiscussionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	d, err := h.svc.UpdateDiscussion(c.Request.Context(), auth.UserID(c), c.Param("id"), &domain.UpdateDiscussionRequest{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"discussion": d})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.DeleteDiscussion(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, nil)
}

func (h *Handler) togglePin(c *gin.Context) {
	d, err := h.svc.TogglePin(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"discussion": d})
}

func (h *Handler) addReply(c *gin.Context) {
	var req createReplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	reply, err := h.svc.AddReply(c.Request.Context(), &domain.CreateReplyRequest{
		DiscussionID:  c.Param("id"),
		AuthorID:      auth.UserID(c),
		Content:       req.Content,
		ParentReplyID: req.ParentReplyID,
	})
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusCreated, gin.H{"reply": reply})
}

func (h *Handler) deleteReply(c *gin.Context) {
	if err := h.svc.DeleteReply(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, nil)
}
