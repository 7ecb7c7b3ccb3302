package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/timecardhq/timecard-api/internal/api/metrics"
	"github.com/timecardhq/timecard-api/internal/core/domain"
	"github.com/timecardhq/timecard-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes lifecycle events to a fixed set of publish workers using
// consistent hashing on the owner id, guaranteeing per-contributor event
// ordering. Publishing is fire-and-forget: a failed publish is counted and
// logged but never surfaces to the write path.
type Dispatcher struct {
	workers  []chan domain.LifecycleEvent
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.LifecycleEvent, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LifecycleEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its owner. When the
// worker's buffer is full the event is dropped rather than blocking the
// request path; subscribers recover on their next re-query.
func (d *Dispatcher) Enqueue(event domain.LifecycleEvent) {
	idx := d.shardIndex(event.OwnerID)
	select {
	case d.workers[idx] <- event:
		metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EventsPublishedTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("entry_id", event.EntryID).
			Int("worker_id", idx).
			Msg("notify queue full, event dropped")
	}
}

// shardIndex maps an owner id deterministically to a worker index.
func (d *Dispatcher) shardIndex(ownerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LifecycleEvent) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotifyQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.notifier.Publish(ctx, event); err != nil {
				metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("entry_id", event.EntryID).
					Int("worker_id", id).
					Msg("event publish failed")
				continue
			}
			metrics.EventsPublishedTotal.WithLabelValues("ok").Inc()
		}
	}
}
