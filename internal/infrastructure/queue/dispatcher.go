package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/resolvenow/complaint-system/internal/api/metrics"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes lifecycle events to a fixed set of workers using
// consistent hashing on the complaint id, guaranteeing per-complaint audit
// ordering.
type Dispatcher struct {
	workers []chan ports.ComplaintEventInput
	service ports.EventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ComplaintEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ComplaintEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its complaint id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.ComplaintEventInput) {
	idx := d.shardIndex(event.ComplaintID)
	d.workers[idx] <- event
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a complaint id deterministically to a worker index.
func (d *Dispatcher) shardIndex(complaintID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(complaintID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ComplaintEventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				metrics.EventsErrorsTotal.WithLabelValues("audit_write_failed").Inc()
				d.log.Error().Err(err).
					Str("complaint_id", event.ComplaintID).
					Int("worker_id", id).
					Msg("lifecycle event processing failed")
				continue
			}
			metrics.EventsProcessedTotal.WithLabelValues(string(event.Type)).Inc()
		}
	}
}
