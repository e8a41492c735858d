package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/model"
	"github.com/iliyamo/portfolio/internal/repository"
)

// ProjectHandler serves /api/projects. Reads are public, writes are
// mounted behind JWTAuth and RequireRole by the router.
type ProjectHandler struct {
	Projects *repository.ProjectRepo
}

func NewProjectHandler(projects *repository.ProjectRepo) *ProjectHandler {
	return &ProjectHandler{Projects: projects}
}

// List returns projects filtered by ?status= (default published),
// ?featured=true and ?category=.
func (h *ProjectHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	list, err := h.Projects.List(ctx, model.ProjectFilter{
		Status:       c.QueryParam("status"),
		FeaturedOnly: c.QueryParam("featured") == "true",
		Category:     c.QueryParam("category"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ProjectHandler) GetBySlug(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	p, err := h.Projects.GetBySlug(ctx, c.Param("slug"))
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Project")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) GetByID(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return notFound(c, "Project")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	p, err := h.Projects.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Project")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var in model.ProjectInput
	if ok, err := bind(c, &in); !ok {
		return err
	}
	if ok, err := requireField(c, "title", in.Title != nil); !ok {
		return err
	}
	if ok, err := requireField(c, "slug", in.Slug != nil); !ok {
		return err
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	p, err := h.Projects.Create(ctx, in)
	if errors.Is(err, repository.ErrDuplicate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project with this slug already exists"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in model.ProjectInput
	if ok, err := bind(c, &in); !ok {
		return err
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	p, err := h.Projects.Update(ctx, id, in)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(c, "Project")
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Project with this slug already exists"})
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Projects.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Project")
	}
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Project deleted successfully")
}

func (h *ProjectHandler) AddImage(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in model.ProjectImageInput
	if ok, err := bind(c, &in); !ok {
		return err
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	img, err := h.Projects.AddImage(ctx, id, in)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Project")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, img)
}

func (h *ProjectHandler) DeleteImage(c echo.Context) error {
	id, ok := parseID(c, "imageId")
	if !ok {
		return invalidID(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	if err := h.Projects.DeleteImage(ctx, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Image deleted successfully")
}
