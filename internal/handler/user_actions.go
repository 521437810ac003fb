package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/middleware"
	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
	"github.com/renthaven/property-rental-marketplace/internal/utils"
	"github.com/renthaven/property-rental-marketplace/internal/workflow"
)

// UserHandler covers the authenticated guest surface: placing and
// cancelling bookings, owner-role requests, the message center and
// support messages tied to the account.
type UserHandler struct {
	Stays         *workflow.Bookings
	RoleRequests  *workflow.RoleRequests
	Users         *repository.UserRepo
	Bookings      *repository.BookingRepo
	Requests      *repository.RoleRequestRepo
	Notifications *repository.NotificationRepo
	Contacts      *repository.ContactRepo
}

const dateLayout = "2006-01-02"

// CreateBooking handles POST /v1/bookings.
func (h *UserHandler) CreateBooking(c echo.Context) error {
	var body struct {
		PropertyID string `json:"property_id"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.PropertyID == "" {
		return badRequest(c, "property_id is required")
	}
	start, err := time.Parse(dateLayout, body.StartDate)
	if err != nil {
		return badRequest(c, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, body.EndDate)
	if err != nil {
		return badRequest(c, "end_date must be YYYY-MM-DD")
	}
	if !end.After(start) {
		return badRequest(c, "end_date must be after start_date")
	}

	b := &model.Booking{
		ID:         utils.NewID("bkg"),
		UserID:     middleware.UserID(c),
		PropertyID: body.PropertyID,
		StartDate:  body.StartDate,
		EndDate:    body.EndDate,
	}
	if err := h.Stays.Create(c.Request().Context(), b); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// ListMyBookings handles GET /v1/bookings.
func (h *UserHandler) ListMyBookings(c echo.Context) error {
	items, err := h.Bookings.ListByUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CancelMyBooking handles DELETE /v1/bookings/:id.
func (h *UserHandler) CancelMyBooking(c echo.Context) error {
	err := h.Stays.CancelByGuest(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SubmitRoleRequest handles POST /v1/role-request.
func (h *UserHandler) SubmitRoleRequest(c echo.Context) error {
	req, err := h.RoleRequests.Submit(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, req)
}

// GetMyRoleRequest handles GET /v1/role-request.
func (h *UserHandler) GetMyRoleRequest(c echo.Context) error {
	req, err := h.Requests.GetByUserID(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, req)
}

// ListNotifications handles GET /v1/notifications?unread=true.
func (h *UserHandler) ListNotifications(c echo.Context) error {
	onlyUnread := c.QueryParam("unread") == "true"
	uid := middleware.UserID(c)
	items, err := h.Notifications.ListByUser(c.Request().Context(), uid, onlyUnread)
	if err != nil {
		return fail(c, err)
	}
	unread, err := h.Notifications.CountUnread(c.Request().Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "unread": unread})
}

// MarkNotificationRead handles POST /v1/notifications/:id/read.
func (h *UserHandler) MarkNotificationRead(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "invalid notification id")
	}
	rows, err := h.Notifications.MarkRead(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	if rows == 0 {
		return fail(c, repository.ErrNotificationNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /v1/notifications/read-all.
func (h *UserHandler) MarkAllNotificationsRead(c echo.Context) error {
	n, err := h.Notifications.MarkAllRead(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"marked": n})
}

// SubmitContact handles POST /v1/support. Unlike the public /v1/contact
// variant, the message is linked to the account so replies show up in
// the user's support history.
func (h *UserHandler) SubmitContact(c echo.Context) error {
	var body struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(body.Message) == "" {
		return badRequest(c, "message is required")
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	m := &model.ContactMessage{
		UserID:  &u.UID,
		Name:    u.Name,
		Email:   u.Email,
		Subject: body.Subject,
		Message: strings.TrimSpace(body.Message),
	}
	if err := h.Contacts.Insert(ctx, m); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// ListMyContactMessages handles GET /v1/support. It returns the
// account's support threads including any admin replies.
func (h *UserHandler) ListMyContactMessages(c echo.Context) error {
	items, err := h.Contacts.ListByUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
