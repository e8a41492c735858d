package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/model"
)

// Context keys populated by JWTAuth. "user_id" and "role" are plain values
// for handlers that only need one field.
const (
	ctxIdentity = "identity"
	ctxUserID   = "user_id"
	ctxRole     = "role"
)

func setIdentity(c echo.Context, id model.Identity) {
	c.Set(ctxIdentity, id)
	c.Set(ctxUserID, id.ID)
	c.Set(ctxRole, id.Role)
}

// IdentityFrom returns the identity injected by JWTAuth, if any.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(ctxIdentity).(model.Identity)
	return id, ok
}

// userKey identifies the caller for rate limit keys; "anon" when the
// request is unauthenticated.
func userKey(c echo.Context) string {
	if id, ok := IdentityFrom(c); ok && id.ID != 0 {
		return strconv.FormatUint(id.ID, 10)
	}
	return "anon"
}
