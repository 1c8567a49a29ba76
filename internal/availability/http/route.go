package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches slot and exception management under /availability
// and the public read endpoints under /mentors/:id.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	mentors := g.Group("/mentors")

	// === Public Routes ===
	mentors.GET("/:id/windows", h.ListWindows)
	mentors.GET("/:id/slots", h.ListSlots)
	mentors.GET("/:id/exceptions", h.ListExceptions)

	// === Authenticated Routes ===
	authed := g.Group("/availability")
	authed.Use(authMiddleware)
	{
		authed.POST("/slots", h.CreateSlot)
		authed.PATCH("/slots/:id", h.UpdateSlot)
		authed.POST("/exceptions", h.CreateException)
		authed.DELETE("/exceptions/:id", h.DeleteException)
	}
}
