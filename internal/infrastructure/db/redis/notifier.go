package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/timecardhq/timecard-api/internal/core/domain"
)

// channelPrefix namespaces lifecycle topics inside a shared Redis instance.
const channelPrefix = "timecard:"

// subscriberBuffer bounds how far a slow subscriber may lag before events are
// dropped. Dropping is acceptable: events are wake-up signals, and subscribers
// reconcile by re-querying.
const subscriberBuffer = 16

// Notifier implements ports.Notifier on Redis Pub/Sub. Publishes happen after
// the store write has committed and are never part of its transaction.
type Notifier struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewNotifier creates a Notifier wrapping the given Redis client.
func NewNotifier(client *redis.Client, log zerolog.Logger) *Notifier {
	return &Notifier{client: client, log: log}
}

// Publish fans the event out to the managers topic and the owner's topic.
func (n *Notifier) Publish(ctx context.Context, event domain.LifecycleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify marshal: %w", err)
	}

	for _, topic := range event.Topics() {
		if err := n.client.Publish(ctx, channelPrefix+topic, payload).Err(); err != nil {
			return fmt.Errorf("notify publish %s: %w", topic, err)
		}
	}
	return nil
}

// Subscribe opens a stream of events for one topic. The returned cancel
// function releases the underlying Pub/Sub connection; the channel closes
// when cancel is called or ctx ends.
func (n *Notifier) Subscribe(ctx context.Context, topic string) (<-chan domain.LifecycleEvent, func(), error) {
	sub := n.client.Subscribe(ctx, channelPrefix+topic)

	// Confirm the subscription before handing the stream to the caller.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("notify subscribe %s: %w", topic, err)
	}

	out := make(chan domain.LifecycleEvent, subscriberBuffer)
	done := make(chan struct{})

	go func() {
		defer close(out)
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event domain.LifecycleEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					n.log.Warn().Err(err).Str("topic", topic).Msg("dropping undecodable event")
					continue
				}
				select {
				case out <- event:
				default:
					n.log.Warn().Str("topic", topic).Msg("subscriber lagging, event dropped")
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = sub.Close()
		})
	}
	return out, cancel, nil
}
