package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/renthaven/property-rental-marketplace/internal/database"
	"github.com/renthaven/property-rental-marketplace/internal/handler"
	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/notify"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
	"github.com/renthaven/property-rental-marketplace/internal/router"
	"github.com/renthaven/property-rental-marketplace/internal/workflow"
)

const testSecret = "test-secret"

type testEnv struct {
	e  *echo.Echo
	db *sql.DB

	users      *repository.UserRepo
	properties *repository.PropertyRepo
	bookings   *repository.BookingRepo
	settings   *repository.SettingsRepo
}

// newTestEnv wires the full route table against an in-memory store,
// the same way cmd/server does, minus Redis and the broker.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Apply(context.Background(), db))

	users := repository.NewUserRepo(db)
	properties := repository.NewPropertyRepo(db)
	bookings := repository.NewBookingRepo(db)
	requests := repository.NewRoleRequestRepo(db)
	contacts := repository.NewContactRepo(db)
	notifications := repository.NewNotificationRepo(db)
	settings := repository.NewSettingsRepo(db)

	dispatcher := notify.NewDispatcher(notifications, false)
	roleRequests := &workflow.RoleRequests{DB: db, Users: users, Requests: requests, Notify: dispatcher}
	listings := &workflow.Properties{DB: db, Properties: properties, Notify: dispatcher}
	stays := &workflow.Bookings{DB: db, Bookings: bookings, Properties: properties, Settings: settings, Notify: dispatcher}
	accounts := &workflow.Users{Users: users, Notify: dispatcher}

	e := echo.New()
	noop := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	pub := &handler.PublicHandler{Properties: properties, Contacts: contacts, Settings: settings}
	account := &handler.AccountHandler{Users: users, Settings: settings, BcryptCost: bcrypt.MinCost}
	user := &handler.UserHandler{
		Stays: stays, RoleRequests: roleRequests, Users: users,
		Bookings: bookings, Requests: requests,
		Notifications: notifications, Contacts: contacts,
	}
	owner := &handler.OwnerHandler{Listings: listings, Stays: stays, Properties: properties, Bookings: bookings}
	admin := &handler.AdminHandler{
		Accounts: accounts, Listings: listings, Stays: stays, RoleRequests: roleRequests,
		Users: users, Properties: properties, Bookings: bookings, Requests: requests,
		Contacts: contacts, Settings: settings, Notify: dispatcher,
	}

	router.RegisterPublic(e, pub, account, noop)
	router.RegisterUser(e, user, account, testSecret)
	router.RegisterOwner(e, owner, testSecret)
	router.RegisterAdmin(e, admin, testSecret)

	return &testEnv{e: e, db: db, users: users, properties: properties, bookings: bookings, settings: settings}
}

func (env *testEnv) seedUser(t *testing.T, uid, role string) *model.User {
	t.Helper()
	u := &model.User{
		UID: uid, Name: "Test " + uid, Email: uid + "@example.com",
		PasswordHash: "x", Role: role, Status: model.UserActive,
	}
	require.NoError(t, env.users.Create(context.Background(), u))
	return u
}

func (env *testEnv) seedProperty(t *testing.T, id, ownerID, status string) {
	t.Helper()
	p := &model.Property{ID: id, OwnerID: ownerID, Title: "Listing " + id, Price: 100, Location: "Lisbon"}
	require.NoError(t, env.properties.Create(context.Background(), p))
	if status != model.PropertyPending {
		_, err := env.db.Exec(`UPDATE properties SET status = ? WHERE id = ?`, status, id)
		require.NoError(t, err)
	}
}

func token(t *testing.T, uid, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uid,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (env *testEnv) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func TestPublicBrowseShowsOnlyVerifiedListings(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner1", model.RoleOwner)
	env.seedProperty(t, "p1", owner.UID, model.PropertyVerified)
	env.seedProperty(t, "p2", owner.UID, model.PropertyPending)

	rec := env.do(http.MethodGet, "/v1/properties", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ID)

	// Unverified detail looks like 404 to guests.
	rec = env.do(http.MethodGet, "/v1/properties/p2", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(http.MethodGet, "/v1/properties/p1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterHonorsPlatformToggle(t *testing.T) {
	env := newTestEnv(t)
	body := `{"name":"Ana","email":"ana@example.com","password":"supersecret"}`

	rec := env.do(http.MethodPost, "/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate email conflicts.
	rec = env.do(http.MethodPost, "/v1/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, err := env.settings.UpdatePartial(context.Background(), map[string]any{"allowRegistration": false})
	require.NoError(t, err)
	rec = env.do(http.MethodPost, "/v1/auth/register",
		`{"name":"Bo","email":"bo@example.com","password":"supersecret"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleGates(t *testing.T) {
	env := newTestEnv(t)
	guest := env.seedUser(t, "guest1", model.RoleUser)

	rec := env.do(http.MethodGet, "/v1/admin/users", "", token(t, guest.UID, model.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/v1/owner/properties", "", token(t, guest.UID, model.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/v1/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/v1/me", "", token(t, guest.UID, model.RoleUser))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner1", model.RoleOwner)
	guest := env.seedUser(t, "guest1", model.RoleUser)
	env.seedProperty(t, "p1", owner.UID, model.PropertyVerified)

	rec := env.do(http.MethodPost, "/v1/bookings",
		`{"property_id":"p1","start_date":"2026-09-10","end_date":"2026-09-12"}`,
		token(t, guest.UID, model.RoleUser))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = env.do(http.MethodPost, "/v1/owner/bookings/"+created.ID+"/approve", "",
		token(t, owner.UID, model.RoleOwner))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodDelete, "/v1/bookings/"+created.ID, "",
		token(t, guest.UID, model.RoleUser))
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The second cancel hits the terminal-state guard.
	rec = env.do(http.MethodDelete, "/v1/bookings/"+created.ID, "",
		token(t, guest.UID, model.RoleUser))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The guest has a booking-status notification from the approval.
	rec = env.do(http.MethodGet, "/v1/notifications", "", token(t, guest.UID, model.RoleUser))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), model.NoticeBookingStatus)
}

func TestAdminSettingsPatch(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin1", model.RoleAdmin)

	rec := env.do(http.MethodPatch, "/v1/admin/settings",
		`{"siteName":"RentHaven EU","maxBookingsPerUser":3,"bogusKey":true}`,
		token(t, admin.UID, model.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Changed  int                    `json:"changed"`
		Settings model.PlatformSettings `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Changed)
	assert.Equal(t, "RentHaven EU", resp.Settings.SiteName)
	assert.Equal(t, 3, resp.Settings.MaxBookingsPerUser)
}

func TestAdminModerationQueue(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin1", model.RoleAdmin)
	owner := env.seedUser(t, "owner1", model.RoleOwner)
	env.seedProperty(t, "p1", owner.UID, model.PropertyPending)

	adm := token(t, admin.UID, model.RoleAdmin)

	rec := env.do(http.MethodGet, "/v1/admin/properties", "", adm)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "p1")

	rec = env.do(http.MethodPost, "/v1/admin/properties/p1/approve", "", adm)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Re-deciding an already-decided listing conflicts.
	rec = env.do(http.MethodPost, "/v1/admin/properties/p1/reject", "", adm)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
