package router

import (
	"github.com/labstack/echo/v4"
)

// RegisterProjects mounts /api/projects. Public reads go through the
// response cache; writes need an admin token.
func RegisterProjects(e *echo.Echo, o Options) {
	h := o.Projects
	g := e.Group("/api/projects")

	g.GET("", h.List, o.Cache)
	g.GET("/slug/:slug", h.GetBySlug, o.Cache)
	g.GET("/:id", h.GetByID, o.Cache)

	admin := adminOnly(o)
	g.POST("", h.Create, admin...)
	g.PUT("/:id", h.Update, admin...)
	g.DELETE("/:id", h.Delete, admin...)
	g.POST("/:id/images", h.AddImage, admin...)
	g.DELETE("/images/:imageId", h.DeleteImage, admin...)
}

// RegisterProfile mounts /api/profile.
func RegisterProfile(e *echo.Echo, o Options) {
	h := o.Profile
	g := e.Group("/api/profile")

	g.GET("", h.Get, o.Cache)
	g.GET("/skills", h.ListSkills, o.Cache)
	g.GET("/experiences", h.ListExperiences, o.Cache)
	g.GET("/education", h.ListEducation, o.Cache)
	g.GET("/testimonials", h.ListTestimonials, o.Cache)

	g.PUT("", h.Upsert, adminOnly(o)...)
}
