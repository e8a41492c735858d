package router

import (
	"github.com/labstack/echo/v4"
)

// RegisterContact mounts /api/contact. Anyone may submit (rate limited);
// the inbox is admin only.
func RegisterContact(e *echo.Echo, o Options) {
	h := o.Contact
	g := e.Group("/api/contact")

	g.POST("", h.Submit, o.RateLimit)

	admin := adminOnly(o)
	g.GET("", h.List, admin...)
	g.GET("/stats/unread", h.UnreadCount, admin...)
	g.GET("/:id", h.Get, admin...)
	g.PATCH("/:id/read", h.MarkRead, admin...)
	g.DELETE("/:id", h.Delete, admin...)
}
