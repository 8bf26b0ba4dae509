package http

import "github.com/gin-gonic/gin"

// Register attaches idea routes under the API group.
func (h *Handler) Register(api *gin.RouterGroup) {
	g := api.Group("/ideas")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PATCH("/:id/status", h.updateStatus)
	g.POST("/:id/vote", h.toggleVote)
}
