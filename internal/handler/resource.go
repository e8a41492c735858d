package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/repository"
)

// Resource serves list/create/update/delete for one admin-managed table.
// Updates are partial: absent fields keep their stored value.
type Resource[T, In any] struct {
	Name   string // singular, used in messages ("Skill not found")
	list   func(context.Context) ([]T, error)
	create func(context.Context, In) (T, error)
	update func(context.Context, uint64, In) (T, error)
	remove func(context.Context, uint64) error
	// mandatory names the first required field missing from a create
	// payload, or "" when the payload is complete.
	mandatory func(In) string
}

func (r *Resource[T, In]) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	list, err := r.list(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (r *Resource[T, In]) Create(c echo.Context) error {
	var in In
	if ok, err := bind(c, &in); !ok {
		return err
	}
	if r.mandatory != nil {
		if field := r.mandatory(in); field != "" {
			_, err := requireField(c, field, false)
			return err
		}
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	item, err := r.create(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

func (r *Resource[T, In]) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in In
	if ok, err := bind(c, &in); !ok {
		return err
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	item, err := r.update(ctx, id, in)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, r.Name)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (r *Resource[T, In]) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := r.remove(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, r.Name)
	}
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, r.Name+" deleted successfully")
}
