package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole allows the request through only when the identity set by
// JWTAuth carries one of roles. A missing identity is treated as a role
// mismatch, so mounting it without JWTAuth fails closed with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build the allowed set once at mount time.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// No identity means JWTAuth did not run or did not succeed;
			// deny rather than guess.
			id, ok := IdentityFrom(c)
			if !ok || !allowed[id.Role] {
				authRejections.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Access denied"})
			}
			// Role accepted, continue down the chain.
			return next(c)
		}
	}
}
