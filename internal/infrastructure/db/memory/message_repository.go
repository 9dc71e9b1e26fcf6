package memory

import (
	"context"
	"sync"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// MessageRepository is an in-memory, append-only message log.
type MessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Append(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *m
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *MessageRepository) ListByComplaint(_ context.Context, complaintID string) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Message
	for _, m := range r.messages {
		if m.ComplaintID == complaintID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}
