package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/model"
	"github.com/iliyamo/portfolio/internal/repository"
)

// ProfileHandler serves /api/profile: the owner profile and the public
// listings of skills, experience, education and testimonials.
type ProfileHandler struct {
	Profile      *repository.ProfileRepo
	Skills       *repository.SkillRepo
	Experiences  *repository.ExperienceRepo
	Education    *repository.EducationRepo
	Testimonials *repository.TestimonialRepo
}

func (h *ProfileHandler) Get(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	p, err := h.Profile.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Profile")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Upsert creates the profile on first use and patches it afterwards.
func (h *ProfileHandler) Upsert(c echo.Context) error {
	var in model.ProfileInput
	if ok, err := bind(c, &in); !ok {
		return err
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	p, err := h.Profile.Upsert(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// ListSkills returns skills, optionally narrowed by ?category=.
func (h *ProfileHandler) ListSkills(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	list, err := h.Skills.ListPublic(ctx, c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ProfileHandler) ListExperiences(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	list, err := h.Experiences.ListPublic(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ProfileHandler) ListEducation(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	list, err := h.Education.ListPublic(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ListTestimonials returns visible testimonials only.
func (h *ProfileHandler) ListTestimonials(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	list, err := h.Testimonials.List(ctx, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
