package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
	"github.com/renthaven/property-rental-marketplace/internal/workflow"
)

// AdminHandler covers the moderation surface: accounts, the listing
// review queue, role requests, bookings, the support inbox and the
// platform settings.
type AdminHandler struct {
	Accounts     *workflow.Users
	Listings     *workflow.Properties
	Stays        *workflow.Bookings
	RoleRequests *workflow.RoleRequests

	Users      *repository.UserRepo
	Properties *repository.PropertyRepo
	Bookings   *repository.BookingRepo
	Requests   *repository.RoleRequestRepo
	Contacts   *repository.ContactRepo
	Settings   *repository.SettingsRepo
	Notify     workflow.Notifier
}

// ---- accounts ----

// ListUsers handles GET /v1/admin/users?role=&status=.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context(), c.QueryParam("role"), c.QueryParam("status"))
	if err != nil {
		return fail(c, err)
	}
	out := make([]accountView, 0, len(users))
	for i := range users {
		out = append(out, viewOf(&users[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// SetUserStatus handles PATCH /v1/admin/users/:id/status.
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !model.ValidUserStatus(body.Status) {
		return badRequest(c, "status must be active, pending or suspended")
	}
	if err := h.Accounts.SetStatus(c.Request().Context(), c.Param("id"), body.Status); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetUserRole handles PATCH /v1/admin/users/:id/role.
func (h *AdminHandler) SetUserRole(c echo.Context) error {
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Accounts.SetRole(c.Request().Context(), c.Param("id"), body.Role); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser handles DELETE /v1/admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.Accounts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- listing moderation ----

// ListProperties handles GET /v1/admin/properties?status=. Without a
// filter the review queue (pending) is returned.
func (h *AdminHandler) ListProperties(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		status = model.PropertyPending
	}
	items, err := h.Properties.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ApproveProperty handles POST /v1/admin/properties/:id/approve.
func (h *AdminHandler) ApproveProperty(c echo.Context) error {
	if err := h.Listings.Approve(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RejectProperty handles POST /v1/admin/properties/:id/reject.
func (h *AdminHandler) RejectProperty(c echo.Context) error {
	if err := h.Listings.Reject(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- role requests ----

// ListRoleRequests handles GET /v1/admin/role-requests?status=.
func (h *AdminHandler) ListRoleRequests(c echo.Context) error {
	items, err := h.Requests.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ApproveRoleRequest handles POST /v1/admin/role-requests/:id/approve.
func (h *AdminHandler) ApproveRoleRequest(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "invalid request id")
	}
	if err := h.RoleRequests.Approve(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RejectRoleRequest handles POST /v1/admin/role-requests/:id/reject.
func (h *AdminHandler) RejectRoleRequest(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "invalid request id")
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.RoleRequests.Reject(c.Request().Context(), id, strings.TrimSpace(body.Notes)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- bookings ----

// ListBookings handles GET /v1/admin/bookings?status=.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	items, err := h.Bookings.ListAll(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CancelBooking handles DELETE /v1/admin/bookings/:id.
func (h *AdminHandler) CancelBooking(c echo.Context) error {
	if err := h.Stays.CancelByAdmin(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- support inbox ----

// ListContactMessages handles GET /v1/admin/contact?status=.
func (h *AdminHandler) ListContactMessages(c echo.Context) error {
	items, err := h.Contacts.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// MarkContactSeen handles POST /v1/admin/contact/:id/seen.
func (h *AdminHandler) MarkContactSeen(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "invalid message id")
	}
	rows, err := h.Contacts.MarkSeen(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if rows == 0 {
		return fail(c, repository.ErrStateConflict)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplyContact handles POST /v1/admin/contact/:id/reply. Replying
// marks the thread seen; if the author still has an account they also
// get a notification.
func (h *AdminHandler) ReplyContact(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "invalid message id")
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Text = strings.TrimSpace(body.Text)
	if body.Text == "" {
		return badRequest(c, "text is required")
	}

	ctx := c.Request().Context()
	msg, err := h.Contacts.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	rows, err := h.Contacts.Reply(ctx, id, body.Text)
	if err != nil {
		return fail(c, err)
	}
	if rows == 0 {
		return fail(c, repository.ErrMessageNotFound)
	}

	if msg.UserID != nil {
		h.Notify.Notify(ctx, *msg.UserID, model.NoticeContactReply,
			"Support replied", "Support answered your message: "+msg.Subject,
			strconv.FormatInt(id, 10))
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- platform settings ----

// GetSettings handles GET /v1/admin/settings.
func (h *AdminHandler) GetSettings(c echo.Context) error {
	s, err := h.Settings.GetAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateSettings handles PATCH /v1/admin/settings. Unknown keys are
// ignored; the response reports how many keys actually changed.
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	patch := map[string]any{}
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	changed, err := h.Settings.UpdatePartial(c.Request().Context(), patch)
	if err != nil {
		return fail(c, err)
	}
	s, err := h.Settings.GetAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"changed": changed, "settings": s})
}
