// Package router builds the echo server: the global middleware stack and
// every route of the API.
package router

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/portfolio/internal/handler"
	"github.com/iliyamo/portfolio/internal/middleware"
	"github.com/iliyamo/portfolio/internal/validate"
)

// Options carries everything New needs. Nil Cache, Invalidate or RateLimit
// middlewares are treated as no-ops.
type Options struct {
	Log        *slog.Logger
	Dev        bool
	ClientURL  string
	UploadsDir string
	BodyLimit  string

	Tokens middleware.TokenVerifier

	Auth     *handler.AuthHandler
	Projects *handler.ProjectHandler
	Profile  *handler.ProfileHandler
	Contact  *handler.ContactHandler
	Admin    *handler.AdminHandler

	Cache      echo.MiddlewareFunc
	Invalidate echo.MiddlewareFunc
	RateLimit  echo.MiddlewareFunc

	// AllowRegister exposes POST /api/auth/register.
	AllowRegister bool
}

func noop(next echo.HandlerFunc) echo.HandlerFunc { return next }

func orNoop(m echo.MiddlewareFunc) echo.MiddlewareFunc {
	if m == nil {
		return noop
	}
	return m
}

// New returns a configured echo instance with all routes registered.
func New(o Options) *echo.Echo {
	if o.Log == nil {
		o.Log = slog.Default()
	}
	o.Cache = orNoop(o.Cache)
	o.Invalidate = orNoop(o.Invalidate)
	o.RateLimit = orNoop(o.RateLimit)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(o.Log, o.Dev)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(o.Log))
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())
	if o.ClientURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{o.ClientURL},
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
		}))
	}
	if o.BodyLimit != "" {
		e.Use(echomw.BodyLimit(o.BodyLimit))
	}

	RegisterRoutes(e, o)
	return e
}

// RegisterRoutes wires ops endpoints and every API group.
func RegisterRoutes(e *echo.Echo, o Options) {
	e.GET("/api/health", handler.Health)
	e.GET("/metrics", middleware.MetricsHandler())
	if o.UploadsDir != "" {
		e.Static("/uploads", o.UploadsDir)
	}

	RegisterAuth(e, o)
	RegisterProjects(e, o)
	RegisterProfile(e, o)
	RegisterContact(e, o)
	RegisterAdmin(e, o)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Route not found"})
	})
}

// adminOnly is the Verifier followed by the Role Gate.
func adminOnly(o Options) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(o.Tokens),
		middleware.RequireRole("admin"),
		o.Invalidate,
	}
}
