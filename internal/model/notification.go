package model

// Notification is a user-facing notice written by the dispatcher after
// a workflow transition commits. Type is a free-form tag such as
// "role_request_status" or "booking_status"; RelatedID points at the
// entity that triggered the notice and is opaque to this layer.
type Notification struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	RelatedID string `json:"related_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Notification status values stored in notifications.status.
const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
)

// Well-known notification type tags produced by the workflows.
const (
	NoticeRoleRequestStatus    = "role_request_status"
	NoticeRoleRequestSubmitted = "role_request_submitted"
	NoticePropertyStatus       = "property_status"
	NoticeBookingStatus        = "booking_status"
	NoticeBookingRequested     = "booking_requested"
	NoticeAccountStatus        = "account_status"
	NoticeContactReply         = "contact_reply"
)
