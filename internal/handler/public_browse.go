package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
)

// PublicHandler serves unauthenticated browsing. Only verified
// listings are visible here, and responses omit moderation fields.
type PublicHandler struct {
	Properties *repository.PropertyRepo
	Contacts   *repository.ContactRepo
	Settings   *repository.SettingsRepo
}

// PublicProperty is a listing as shown to guests.
type PublicProperty struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Location    string  `json:"location,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

func publicView(p model.Property) PublicProperty {
	return PublicProperty{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Location:    p.Location,
		ImageURL:    p.ImageURL,
	}
}

// ListProperties handles GET /v1/properties. Optional query filters:
// location (substring match) and max_price.
func (h *PublicHandler) ListProperties(c echo.Context) error {
	var maxPrice float64
	if raw := c.QueryParam("max_price"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return badRequest(c, "invalid max_price")
		}
		maxPrice = f
	}
	props, err := h.Properties.ListVerified(c.Request().Context(), c.QueryParam("location"), maxPrice)
	if err != nil {
		return fail(c, err)
	}
	out := make([]PublicProperty, 0, len(props))
	for _, p := range props {
		out = append(out, publicView(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetProperty handles GET /v1/properties/:id. Listings that are not
// verified do not exist as far as guests are concerned.
func (h *PublicHandler) GetProperty(c echo.Context) error {
	p, err := h.Properties.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if p.Status != model.PropertyVerified {
		return fail(c, repository.ErrPropertyNotFound)
	}
	return c.JSON(http.StatusOK, publicView(*p))
}

// SubmitContact handles POST /v1/contact. Guests may write support
// without an account; authenticated callers get the message linked to
// their uid by the user-scoped variant.
func (h *PublicHandler) SubmitContact(c echo.Context) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Message = strings.TrimSpace(body.Message)
	if body.Name == "" || body.Email == "" || body.Message == "" {
		return badRequest(c, "name, email and message are required")
	}

	m := &model.ContactMessage{
		Name:    body.Name,
		Email:   strings.ToLower(body.Email),
		Subject: body.Subject,
		Message: body.Message,
	}
	if err := h.Contacts.Insert(c.Request().Context(), m); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}
