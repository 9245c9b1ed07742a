package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/api/metrics"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the user id, guaranteeing per-user delivery ordering.
type Dispatcher struct {
	workers []chan *domain.Notification
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.Notification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its user. A full
// worker channel drops the notification rather than blocking the caller.
func (d *Dispatcher) Enqueue(n *domain.Notification) {
	idx := d.shardIndex(n.UserID.String())
	select {
	case d.workers[idx] <- n:
		metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.NotificationsDropped.Inc()
		d.log.Warn().
			Str("user_id", n.UserID.String()).
			Str("type", string(n.Type)).
			Int("worker_id", idx).
			Msg("notification dropped, worker queue full")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.Notification) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Deliver(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("user_id", n.UserID.String()).
					Str("type", string(n.Type)).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
