// Package notify implements the fire-and-forget notification
// dispatcher invoked by the workflows after a transition commits.
package notify

import (
	"context"
	"log"

	"github.com/renthaven/property-rental-marketplace/internal/model"
	"github.com/renthaven/property-rental-marketplace/internal/queue"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
	queue_publisher "github.com/renthaven/property-rental-marketplace/internal/service"
)

// Dispatcher stores notices and fans them out to the message broker.
// Every path is best-effort: a failed insert or publish is logged and
// dropped, because a notification hiccup must never mask or undo the
// committed transition that triggered it.
type Dispatcher struct {
	Notifications *repository.NotificationRepo

	// PublishEvents mirrors stored notices onto the broker for
	// downstream consumers. Off in tests.
	PublishEvents bool
}

func NewDispatcher(repo *repository.NotificationRepo, publish bool) *Dispatcher {
	return &Dispatcher{Notifications: repo, PublishEvents: publish}
}

// Notify inserts a notification row on the shared handle, outside any
// caller transaction. There is no error return on purpose.
func (d *Dispatcher) Notify(ctx context.Context, userID, kind, title, body, relatedID string) {
	n := &model.Notification{
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   body,
		RelatedID: relatedID,
	}
	if err := d.Notifications.Insert(ctx, n); err != nil {
		log.Printf("notify: store notice for user %s failed: %v", userID, err)
		return
	}

	if !d.PublishEvents {
		return
	}
	// Best effort; the publisher logs its own failures.
	_ = queue_publisher.PublishNotificationCreated(ctx, queue.NotificationCreatedEvent{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		RelatedID:      n.RelatedID,
		CreatedAt:      n.CreatedAt,
	})
}
