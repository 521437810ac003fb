package model

// RoleRequest is a user's petition to be promoted to the owner role.
// The userId column is UNIQUE, so each user owns at most one request
// row for the lifetime of the account: a re-request after a rejection
// reuses the same row (and keeps the same id) instead of inserting a
// second one. ActionTimestamp and AdminNotes are nil while the request
// is pending; notes are mandatory on rejection.
type RoleRequest struct {
	ID               int64   `json:"id"`
	UserID           string  `json:"user_id"`
	RequestedRole    string  `json:"requested_role"`
	Status           string  `json:"status"`
	RequestTimestamp string  `json:"request_timestamp"`
	ActionTimestamp  *string `json:"action_timestamp,omitempty"`
	AdminNotes       *string `json:"admin_notes,omitempty"`
}

// Role request status values stored in roleRequests.status.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)
