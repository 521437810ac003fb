package model

// ContactMessage is a support inquiry. The userId column is nullable
// and declared ON DELETE SET NULL so support history survives account
// deletion, unlike every other user-owned table which cascades.
type ContactMessage struct {
	ID             int64   `json:"id"`
	UserID         *string `json:"user_id,omitempty"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Subject        string  `json:"subject"`
	Message        string  `json:"message"`
	Status         string  `json:"status"`
	ReplyText      *string `json:"reply_text,omitempty"`
	ReplyTimestamp *string `json:"reply_timestamp,omitempty"`
	HasAdminReply  bool    `json:"has_admin_reply"`
	CreatedAt      string  `json:"created_at"`
}

// Contact message status values stored in contactMessages.status.
const (
	MessageUnseen = "unseen"
	MessageSeen   = "seen"
)
