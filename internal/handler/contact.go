package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio/internal/model"
	"github.com/iliyamo/portfolio/internal/repository"
	"github.com/iliyamo/portfolio/internal/service"
	"github.com/iliyamo/portfolio/internal/validate"
)

// ContactHandler serves /api/contact. Submitting is public; reading the
// inbox requires an admin.
type ContactHandler struct {
	Contact  *service.ContactService
	Messages *repository.MessageRepo
	Log      *slog.Logger
}

func NewContactHandler(contact *service.ContactService, messages *repository.MessageRepo, log *slog.Logger) *ContactHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ContactHandler{Contact: contact, Messages: messages, Log: log}
}

func (h *ContactHandler) Submit(c echo.Context) error {
	var in model.ContactInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	msg, err := h.Contact.Submit(ctx, in)
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return validationFailed(c, verr)
	case err != nil:
		h.Log.Error("contact submit failed", slog.String("path", c.Request().URL.Path), slog.Any("err", err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send message. Please try again."})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Message sent successfully! I will get back to you soon.",
		"id":      msg.ID,
	})
}

// List returns the inbox, optionally filtered by ?is_read=true|false.
func (h *ContactHandler) List(c echo.Context) error {
	var isRead *bool
	if raw := c.QueryParam("is_read"); raw != "" {
		v := raw == "true"
		isRead = &v
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	list, err := h.Messages.List(ctx, isRead)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ContactHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return notFound(c, "Message")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	m, err := h.Messages.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Message")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

type markReadReq struct {
	IsRead *bool `json:"is_read"`
}

// MarkRead sets is_read; an absent flag means true.
func (h *ContactHandler) MarkRead(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req markReadReq
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
		}
	}
	read := req.IsRead == nil || *req.IsRead
	ctx, cancel := dbContext(c)
	defer cancel()

	m, err := h.Messages.SetRead(ctx, id, read)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Message")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *ContactHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	err := h.Messages.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Message")
	}
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Message deleted successfully")
}

func (h *ContactHandler) UnreadCount(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	n, err := h.Messages.CountUnread(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"unread": n})
}

