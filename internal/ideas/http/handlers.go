package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vibecodes/vibecodes-api/internal/api/respond"
	"github.com/vibecodes/vibecodes-api/internal/auth"
	"github.com/vibecodes/vibecodes-api/internal/ideas/domain"
)

var statuses = respond.Statuses{
	domain.ErrIdeaNotFound:  http.StatusNotFound,
	domain.ErrForbidden:     http.StatusForbidden,
	domain.ErrInvalidStatus: http.StatusBadRequest,
	domain.ErrInvalidSort:   http.StatusBadRequest,
}

// list serves GET /ideas?sort=&tag=&author=&limit=&offset=
func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	viewer := auth.UserID(c)

	ideas, err := h.svc.ListIdeas(c.Request.Context(), domain.ListFilter{
		ViewerID: viewer,
		Sort:     c.Query("sort"),
		Tag:      c.Query("tag"),
		AuthorID: c.Query("author"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}

	voted, err := h.svc.VotedIdeas(c.Request.Context(), viewer, ideas)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"ideas": ideas, "voted": voted})
}

func (h *Handler) create(c *gin.Context) {
	var req createIdeaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	idea, err := h.svc.CreateIdea(c.Request.Context(), &domain.CreateIdeaRequest{
		AuthorID:    auth.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		GithubURL:   req.GithubURL,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusCreated, gin.H{"idea": idea})
}

func (h *Handler) get(c *gin.Context) {
	viewer := auth.UserID(c)
	idea, err := h.svc.GetIdea(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}

	voted, err := h.svc.VotedIdeas(c.Request.Context(), viewer, []domain.Idea{*idea})
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"idea": idea, "voted": voted[idea.ID]})
}

func (h *Handler) update(c *gin.Context) {
	var req updateIdeaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	idea, err := h.svc.UpdateIdea(c.Request.Context(), auth.UserID(c), c.Param("id"), &domain.UpdateIdeaRequest{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		GithubURL:   req.GithubURL,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"idea": idea})
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, http.StatusBadRequest, "status is required")
		return
	}

	idea, err := h.svc.UpdateStatus(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Status)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"idea": idea})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.DeleteIdea(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, nil)
}

func (h *Handler) toggleVote(c *gin.Context) {
	res, err := h.svc.ToggleVote(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"voted": res.Voted, "upvotes": res.Upvotes})
}
