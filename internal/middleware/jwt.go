package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/model"
	"github.com/iliyamo/portfolio/internal/utils"
)

// MsgUnauthorized is the body of every 401 produced by JWTAuth. Missing and
// invalid tokens share it so a caller cannot tell which check failed.
const MsgUnauthorized = "Invalid or missing token"

// TokenVerifier decodes a raw bearer token into an identity.
// *utils.TokenManager satisfies it.
type TokenVerifier interface {
	Verify(raw string) (model.Identity, error)
}

// JWTAuth validates the Bearer token on the request and stores the decoded
// identity in the context (see IdentityFrom). Verification is pure CPU work
// and never touches the database.
func JWTAuth(v TokenVerifier) echo.MiddlewareFunc {
	// The outer function runs once when the middleware is mounted.
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		// The returned handler runs for every request on the route.
		return func(c echo.Context) error {
			// The header must be "Bearer <token>"; anything else counts as
			// a missing token.
			raw, err := utils.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				authRejections.WithLabelValues("missing").Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": MsgUnauthorized})
			}
			// Signature, algorithm and expiry are all checked by Verify. The
			// response body is the same as above; only the metric label
			// differs.
			id, err := v.Verify(raw)
			if err != nil {
				authRejections.WithLabelValues("invalid").Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": MsgUnauthorized})
			}
			// Handlers and RequireRole read the identity from the context.
			setIdentity(c, id)
			return next(c)
		}
	}
}
