package http

import "github.com/gin-gonic/gin"

// Register attaches discussion routes under the API group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/ideas/:id/discussions", h.list)
	api.POST("/ideas/:id/discussions", h.create)

	d := api.Group("/discussions")
	d.GET("/:id", h.thread)
	d.PATCH("/:id", h.update)
	d.DELETE("/:id", h.delete)
	d.POST("/:id/pin", h.togglePin)
	d.POST("/:id/replies", h.addReply)

	api.DELETE("/replies/:id", h.deleteReply)
}
