package router

import (
	"github.com/labstack/echo/v4"
)

// RegisterAdmin mounts /api/admin. The whole group sits behind the Verifier
// and the Role Gate.
func RegisterAdmin(e *echo.Echo, o Options) {
	a := o.Admin
	g := e.Group("/api/admin", adminOnly(o)...)

	g.GET("/stats", a.Stats)

	g.GET("/skills", a.Skills.List)
	g.POST("/skills", a.Skills.Create)
	g.PUT("/skills/:id", a.Skills.Update)
	g.DELETE("/skills/:id", a.Skills.Delete)

	g.GET("/experiences", a.Experiences.List)
	g.POST("/experiences", a.Experiences.Create)
	g.PUT("/experiences/:id", a.Experiences.Update)
	g.DELETE("/experiences/:id", a.Experiences.Delete)

	g.GET("/education", a.Education.List)
	g.POST("/education", a.Education.Create)
	g.PUT("/education/:id", a.Education.Update)
	g.DELETE("/education/:id", a.Education.Delete)

	g.GET("/testimonials", a.Testimonials.List)
	g.POST("/testimonials", a.Testimonials.Create)
	g.PUT("/testimonials/:id", a.Testimonials.Update)
	g.DELETE("/testimonials/:id", a.Testimonials.Delete)

	g.GET("/settings", a.ListSettings)
	g.PUT("/settings/:key", a.PutSetting)
}
