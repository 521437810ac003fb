// Package handler exposes the HTTP handlers for the marketplace API:
// public browsing, guest and owner actions, and the admin moderation
// surface. Authentication and role gating happen in middleware; the
// handlers translate requests into repository and workflow calls and
// map the typed errors those layers return onto HTTP statuses.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/repository"
	"github.com/renthaven/property-rental-marketplace/internal/workflow"
)

// fail renders err as a JSON error response with the right status.
// Unknown errors become an opaque 500 so internals never leak.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPropertyNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrRequestNotFound),
		errors.Is(err, repository.ErrMessageNotFound),
		errors.Is(err, repository.ErrNotificationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})

	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})

	case errors.Is(err, workflow.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already cancelled"})

	case errors.Is(err, repository.ErrStateConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "state conflict"})

	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already exists"})

	case errors.Is(err, repository.ErrForeignKey):
		return c.JSON(http.StatusConflict, echo.Map{"error": "referenced row missing or in use"})

	case errors.Is(err, workflow.ErrNotesRequired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "admin notes required"})

	case errors.Is(err, workflow.ErrBookingLimit):
		return c.JSON(http.StatusConflict, echo.Map{"error": "active booking limit reached"})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
