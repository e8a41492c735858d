// Package handler exposes the HTTP handlers of the portfolio API. Handlers
// map known domain errors to status codes themselves; anything unexpected is
// returned to echo and rendered by HTTPErrorHandler.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/validate"
)

// dbTimeout bounds every repository call made by a handler.
const dbTimeout = 5 * time.Second

func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
}

func notFound(c echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": what + " not found"})
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// bind decodes the request body into dst and runs the registered validator.
// It writes the 400 response itself and reports whether the caller may go on.
func bind(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(dst); err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			return false, validationFailed(c, verr)
		}
		return false, err
	}
	return true, nil
}

// validationFailed renders field level validation errors.
func validationFailed(c echo.Context, verr *validate.Error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":  "Validation failed",
		"errors": verr.Fields,
	})
}

// requireField reports a missing mandatory field for create requests whose input
// struct is shared with partial updates.
func requireField(c echo.Context, field string, present bool) (bool, error) {
	if present {
		return true, nil
	}
	return false, validationFailed(c, validate.Fail(field, field+" is required"))
}
