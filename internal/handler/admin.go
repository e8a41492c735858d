package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/model"
	"github.com/iliyamo/portfolio/internal/repository"
)

// AdminRepos groups the repositories behind /api/admin.
type AdminRepos struct {
	Projects     *repository.ProjectRepo
	Messages     *repository.MessageRepo
	Skills       *repository.SkillRepo
	Experiences  *repository.ExperienceRepo
	Education    *repository.EducationRepo
	Testimonials *repository.TestimonialRepo
	Settings     *repository.SettingRepo
}

// AdminHandler serves /api/admin. Every route is mounted behind JWTAuth
// and RequireRole("admin").
type AdminHandler struct {
	repos AdminRepos

	Skills       *Resource[model.Skill, model.SkillInput]
	Experiences  *Resource[model.Experience, model.ExperienceInput]
	Education    *Resource[model.Education, model.EducationInput]
	Testimonials *Resource[model.Testimonial, model.TestimonialInput]
}

func blank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

func NewAdminHandler(r AdminRepos) *AdminHandler {
	return &AdminHandler{
		repos: r,
		Skills: &Resource[model.Skill, model.SkillInput]{
			Name:   "Skill",
			list:   r.Skills.List,
			create: r.Skills.Create,
			update: r.Skills.Update,
			remove: r.Skills.Delete,
			mandatory: func(in model.SkillInput) string {
				if blank(in.Name) {
					return "name"
				}
				return ""
			},
		},
		Experiences: &Resource[model.Experience, model.ExperienceInput]{
			Name:   "Experience",
			list:   r.Experiences.List,
			create: r.Experiences.Create,
			update: r.Experiences.Update,
			remove: r.Experiences.Delete,
			mandatory: func(in model.ExperienceInput) string {
				switch {
				case blank(in.Company):
					return "company"
				case blank(in.Position):
					return "position"
				}
				return ""
			},
		},
		Education: &Resource[model.Education, model.EducationInput]{
			Name:   "Education",
			list:   r.Education.List,
			create: r.Education.Create,
			update: r.Education.Update,
			remove: r.Education.Delete,
			mandatory: func(in model.EducationInput) string {
				if blank(in.Institution) {
					return "institution"
				}
				return ""
			},
		},
		Testimonials: &Resource[model.Testimonial, model.TestimonialInput]{
			Name: "Testimonial",
			list: func(ctx context.Context) ([]model.Testimonial, error) {
				return r.Testimonials.List(ctx, false)
			},
			create: r.Testimonials.Create,
			update: r.Testimonials.Update,
			remove: r.Testimonials.Delete,
			mandatory: func(in model.TestimonialInput) string {
				switch {
				case blank(in.Name):
					return "name"
				case blank(in.Content):
					return "content"
				}
				return ""
			},
		},
	}
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	var (
		s   model.DashboardStats
		err error
	)
	if s.TotalProjects, err = h.repos.Projects.Count(ctx); err != nil {
		return err
	}
	if s.TotalMessages, err = h.repos.Messages.Count(ctx); err != nil {
		return err
	}
	if s.UnreadMessages, err = h.repos.Messages.CountUnread(ctx); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) ListSettings(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	list, err := h.repos.Settings.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// PutSetting upserts the setting named by the :key path parameter.
func (h *AdminHandler) PutSetting(c echo.Context) error {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid key"})
	}
	var in model.SettingInput
	if ok, err := bind(c, &in); !ok {
		return err
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	s, err := h.repos.Settings.Upsert(ctx, key, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}
