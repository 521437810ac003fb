package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/middleware"
	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
	"github.com/renthaven/property-rental-marketplace/internal/utils"
	"github.com/renthaven/property-rental-marketplace/internal/workflow"
)

// OwnerHandler covers the owner surface: managing listings and acting
// on bookings made against them.
type OwnerHandler struct {
	Listings   *workflow.Properties
	Stays      *workflow.Bookings
	Properties *repository.PropertyRepo
	Bookings   *repository.BookingRepo
}

type listingBody struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"image_url"`
}

func (b *listingBody) validate() string {
	b.Title = strings.TrimSpace(b.Title)
	if b.Title == "" {
		return "title is required"
	}
	if b.Price <= 0 {
		return "price must be positive"
	}
	return ""
}

// CreateListing handles POST /v1/owner/properties. The new listing
// enters the moderation queue as pending.
func (h *OwnerHandler) CreateListing(c echo.Context) error {
	var body listingBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return badRequest(c, msg)
	}

	p := &model.Property{
		ID:          utils.NewID("prop"),
		OwnerID:     middleware.UserID(c),
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Location:    body.Location,
		ImageURL:    body.ImageURL,
	}
	if err := h.Listings.Create(c.Request().Context(), p); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// ListMyListings handles GET /v1/owner/properties. Owners see all of
// their listings including pending and rejected ones.
func (h *OwnerHandler) ListMyListings(c echo.Context) error {
	items, err := h.Properties.ListByOwner(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateListing handles PUT /v1/owner/properties/:id. Editing a
// rejected listing re-queues it for moderation.
func (h *OwnerHandler) UpdateListing(c echo.Context) error {
	var body listingBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return badRequest(c, msg)
	}

	p := &model.Property{
		ID:          c.Param("id"),
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Location:    body.Location,
		ImageURL:    body.ImageURL,
	}
	updated, err := h.Listings.OwnerUpdate(c.Request().Context(), middleware.UserID(c), p)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteListing handles DELETE /v1/owner/properties/:id.
func (h *OwnerHandler) DeleteListing(c echo.Context) error {
	err := h.Listings.OwnerDelete(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBookings handles GET /v1/owner/bookings: every booking against
// the owner's listings.
func (h *OwnerHandler) ListBookings(c echo.Context) error {
	items, err := h.Bookings.ListForOwner(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ApproveBooking handles POST /v1/owner/bookings/:id/approve.
func (h *OwnerHandler) ApproveBooking(c echo.Context) error {
	err := h.Stays.Approve(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelBooking handles DELETE /v1/owner/bookings/:id.
func (h *OwnerHandler) CancelBooking(c echo.Context) error {
	err := h.Stays.CancelByOwner(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
