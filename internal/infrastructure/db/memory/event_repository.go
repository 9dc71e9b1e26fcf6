package memory

import (
	"context"
	"sync"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// EventRepository is an in-memory, append-only audit trail.
type EventRepository struct {
	mu     sync.RWMutex
	events []*domain.ComplaintEvent
}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

func (r *EventRepository) InsertEvent(_ context.Context, e *domain.ComplaintEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *e
	r.events = append(r.events, &clone)
	return nil
}

func (r *EventRepository) ListByComplaint(_ context.Context, complaintID string) ([]*domain.ComplaintEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.ComplaintEvent
	for _, e := range r.events {
		if e.ComplaintID == complaintID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}
