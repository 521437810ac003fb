package workflow

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renthaven/property-rental-marketplace/internal/database"
	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
)

type notice struct {
	userID, kind, title, body, relatedID string
}

// notifyRecorder captures dispatched notices so tests can assert on
// commit-then-notify ordering and on calls that must never happen.
type notifyRecorder struct {
	mu    sync.Mutex
	calls []notice
}

func (r *notifyRecorder) Notify(_ context.Context, userID, kind, title, body, relatedID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notice{userID, kind, title, body, relatedID})
}

func (r *notifyRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *notifyRecorder) last() notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

type fixture struct {
	db  *sql.DB
	rec *notifyRecorder

	users    *repository.UserRepo
	props    *repository.PropertyRepo
	bookings *repository.BookingRepo
	requests *repository.RoleRequestRepo
	settings *repository.SettingsRepo

	roleRequests *RoleRequests
	properties   *Properties
	stays        *Bookings
	accounts     *Users
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Apply(context.Background(), db))

	f := &fixture{
		db:       db,
		rec:      &notifyRecorder{},
		users:    repository.NewUserRepo(db),
		props:    repository.NewPropertyRepo(db),
		bookings: repository.NewBookingRepo(db),
		requests: repository.NewRoleRequestRepo(db),
		settings: repository.NewSettingsRepo(db),
	}
	f.roleRequests = &RoleRequests{DB: db, Users: f.users, Requests: f.requests, Notify: f.rec}
	f.properties = &Properties{DB: db, Properties: f.props, Notify: f.rec}
	f.stays = &Bookings{DB: db, Bookings: f.bookings, Properties: f.props, Settings: f.settings, Notify: f.rec}
	f.accounts = &Users{Users: f.users, Notify: f.rec}
	return f
}

func (f *fixture) seedUser(t *testing.T, uid, role string) *model.User {
	t.Helper()
	u := &model.User{
		UID:          uid,
		Name:         "Test " + uid,
		Email:        uid + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       model.UserActive,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) seedProperty(t *testing.T, id, ownerID, status string) *model.Property {
	t.Helper()
	p := &model.Property{ID: id, OwnerID: ownerID, Title: "Listing " + id, Price: 150}
	require.NoError(t, f.props.Create(context.Background(), p))
	if status != model.PropertyPending {
		_, err := f.db.Exec(`UPDATE properties SET status = ? WHERE id = ?`, status, id)
		require.NoError(t, err)
		p.Status = status
	}
	return p
}

func (f *fixture) seedBooking(t *testing.T, id, userID, propertyID, status string) *model.Booking {
	t.Helper()
	b := &model.Booking{
		ID: id, UserID: userID, PropertyID: propertyID,
		StartDate: "2026-09-10", EndDate: "2026-09-12",
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	if status != model.BookingPending {
		_, err := f.db.Exec(`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
		require.NoError(t, err)
		b.Status = status
	}
	return b
}
