package ports

import (
	"context"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

// Notifier publishes lifecycle events to subscribed observers after a
// committed write. Delivery is best-effort and at-most-once: a failed publish
// is logged and never rolls back or blocks the underlying write.
type Notifier interface {
	// Publish fans the event out to all of its topics.
	Publish(ctx context.Context, event domain.LifecycleEvent) error

	// Subscribe returns a stream of events for one topic plus a cancel
	// function that releases the stream. The channel is closed on cancel or
	// when ctx ends; subscribers reconcile by re-querying on receipt.
	Subscribe(ctx context.Context, topic string) (<-chan domain.LifecycleEvent, func(), error)
}

// EventPublisher is the engine-facing side of the notification pipeline: an
// async, fire-and-forget hand-off that returns immediately.
type EventPublisher interface {
	Enqueue(event domain.LifecycleEvent)
}
