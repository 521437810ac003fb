// Package queue defines message payloads exchanged over the message broker.
package queue

// NotificationCreatedEvent is published after the dispatcher stores a
// notification row. It carries enough context for downstream consumers
// to log or fan out (email, push) without querying the primary store.
type NotificationCreatedEvent struct {
	NotificationID int64  `json:"notification_id"`
	UserID         string `json:"user_id"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	RelatedID      string `json:"related_id,omitempty"`
	CreatedAt      string `json:"created_at"`
}
