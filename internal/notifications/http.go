package notifications

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vibecodes/vibecodes-api/internal/api/respond"
	"github.com/vibecodes/vibecodes-api/internal/auth"
	"github.com/vibecodes/vibecodes-api/internal/validation"
)

const keepAliveInterval = 15 * time.Second

type Handler struct {
	svc       *Service
	publisher *Publisher
}

func NewHandler(svc *Service, publisher *Publisher) *Handler {
	return &Handler{svc: svc, publisher: publisher}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/unread-count", h.unreadCount)
	rg.POST("/read-all", h.markAllRead)
	rg.POST("/:id/read", h.markRead)
	if h.publisher != nil {
		rg.GET("/stream", h.stream)
	}
}

var statuses = respond.Statuses{ErrNotFound: http.StatusNotFound}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	unreadOnly := c.Query("unread") == "true"

	items, err := h.svc.List(c.Request.Context(), auth.UserID(c), unreadOnly, limit)
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"notifications": items})
}

func (h *Handler) unreadCount(c *gin.Context) {
	n, err := h.svc.UnreadCount(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"count": n})
}

func (h *Handler) markRead(c *gin.Context) {
	id, err := validation.UUID(c.Param("id"), "Notification ID")
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), auth.UserID(c), id); err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, nil)
}

func (h *Handler) markAllRead(c *gin.Context) {
	n, err := h.svc.MarkAllRead(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respond.Error(c, err, statuses)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"updated": n})
}

// stream relays the caller's notification channel as Server-Sent Events.
func (h *Handler) stream(c *gin.Context) {
	ctx := c.Request.Context()
	sub := h.publisher.Subscribe(ctx, auth.UserID(c))
	defer sub.Close()

	// Wait for the subscription to be confirmed before telling the client we're live.
	if _, err := sub.Receive(ctx); err != nil {
		respond.Error(c, fmt.Errorf("subscribe: %w", err), statuses)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		respond.Fail(c, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	fmt.Fprint(c.Writer, "event: ready\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case msg, ok := <-messages:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "event: notification\ndata: %s\n\n", msg.Payload)
			flusher.Flush()
		}
	}
}
