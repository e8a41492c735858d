package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/middleware"
	"github.com/iliyamo/portfolio/internal/service"
	"github.com/iliyamo/portfolio/internal/validate"
)

// Messages for auth failures. Login never says which half of the pair was
// wrong.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailTaken         = "Email already registered"
	msgWrongPassword      = "Current password is incorrect"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// Login exchanges an email/password pair for a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var in service.LoginInput
	if err := c.Bind(&in); err != nil {
		middleware.ObserveLogin(middleware.LoginInvalid)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	res, err := h.Auth.Login(ctx, in)
	var verr *validate.Error
	switch {
	case err == nil:
		middleware.ObserveLogin(middleware.LoginSuccess)
		return c.JSON(http.StatusOK, res)
	case errors.As(err, &verr):
		middleware.ObserveLogin(middleware.LoginInvalid)
		return validationFailed(c, verr)
	case errors.Is(err, service.ErrInvalidCredentials):
		middleware.ObserveLogin(middleware.LoginFailure)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgInvalidCredentials})
	default:
		return err
	}
}

// Register creates another admin account and returns its token.
func (h *AuthHandler) Register(c echo.Context) error {
	var in service.RegisterInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	res, err := h.Auth.Register(ctx, in)
	var verr *validate.Error
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, res)
	case errors.As(err, &verr):
		return validationFailed(c, verr)
	case errors.Is(err, service.ErrDuplicateAccount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgEmailTaken})
	default:
		return err
	}
}

// Me returns the account behind the bearer token.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": middleware.MsgUnauthorized})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	u, err := h.Auth.Me(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		return notFound(c, "User")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// ChangePassword rehashes the caller's password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": middleware.MsgUnauthorized})
	}
	var in service.ChangePasswordInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Auth.ChangePassword(ctx, id, in)
	var verr *validate.Error
	switch {
	case err == nil:
		return message(c, http.StatusOK, "Password updated successfully")
	case errors.As(err, &verr):
		return validationFailed(c, verr)
	case errors.Is(err, service.ErrWrongPassword):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgWrongPassword})
	case errors.Is(err, service.ErrNotFound):
		return notFound(c, "User")
	default:
		return err
	}
}
