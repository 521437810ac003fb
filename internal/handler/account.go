package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/renthaven/property-rental-marketplace/internal/middleware"
	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
	"github.com/renthaven/property-rental-marketplace/internal/utils"
)

// AccountHandler covers account creation and profile access. Token
// issuance lives in the external auth service; this API only creates
// and reads account rows.
type AccountHandler struct {
	Users      *repository.UserRepo
	Settings   *repository.SettingsRepo
	BcryptCost int
}

// accountView strips credential material from a user row.
type accountView struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Mobile    string `json:"mobile,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

func viewOf(u *model.User) accountView {
	return accountView{
		UID: u.UID, Name: u.Name, Email: u.Email, Role: u.Role,
		Status: u.Status, Mobile: u.Mobile, AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// Register handles POST /v1/auth/register. New accounts always start with
// the plain user role; promotion goes through the role request
// workflow. Registration honors the platform toggle.
func (h *AccountHandler) Register(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Mobile   string `json:"mobile"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	if body.Name == "" || body.Email == "" || len(body.Password) < 8 {
		return badRequest(c, "name, email and a password of at least 8 characters are required")
	}

	settings, err := h.Settings.GetAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if !settings.AllowRegistration {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "registration is disabled"})
	}

	hash, err := utils.HashPassword(body.Password, h.BcryptCost)
	if err != nil {
		return fail(c, err)
	}
	u := &model.User{
		UID:          utils.NewID("usr"),
		Name:         body.Name,
		Email:        body.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Status:       model.UserActive,
		Mobile:       body.Mobile,
	}
	if err := h.Users.Create(c.Request().Context(), u); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, viewOf(u))
}

// Me handles GET /v1/me.
func (h *AccountHandler) Me(c echo.Context) error {
	u, err := h.Users.GetByID(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(u))
}

// UpdateProfile handles PUT /v1/me. Only display fields are mutable;
// email, role and status are controlled elsewhere.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var body struct {
		Name      string `json:"name"`
		Mobile    string `json:"mobile"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return badRequest(c, "name is required")
	}

	uid := middleware.UserID(c)
	rows, err := h.Users.UpdateProfile(c.Request().Context(), uid, body.Name, body.Mobile, body.AvatarURL)
	if err != nil {
		return fail(c, err)
	}
	if rows == 0 {
		return fail(c, repository.ErrUserNotFound)
	}
	u, err := h.Users.GetByID(c.Request().Context(), uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(u))
}
