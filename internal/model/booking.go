package model

// Booking records a user's stay request for a property. The status
// path is pending -> approved -> cancelled (or pending -> cancelled);
// cancellation is terminal and there is no resurrection path. Dates
// are "YYYY-MM-DD" strings; BookingDate is the placement timestamp in
// the store's datetime format, UTC.
type Booking struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	PropertyID  string `json:"property_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
	BookingDate string `json:"booking_date"`
}

// Booking status values stored in bookings.status.
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingCancelled = "cancelled"
)
