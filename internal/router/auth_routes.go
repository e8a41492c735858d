package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/middleware"
)

// RegisterAuth mounts /api/auth. Login and register are rate limited; me and
// password require a valid token.
func RegisterAuth(e *echo.Echo, o Options) {
	g := e.Group("/api/auth")
	g.POST("/login", o.Auth.Login, o.RateLimit)
	if o.AllowRegister {
		g.POST("/register", o.Auth.Register, o.RateLimit)
	}

	authed := g.Group("", middleware.JWTAuth(o.Tokens))
	authed.GET("/me", o.Auth.Me)
	authed.PUT("/password", o.Auth.ChangePassword)
}
