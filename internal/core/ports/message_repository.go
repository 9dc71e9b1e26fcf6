package ports

import (
	"context"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// MessageRepository defines persistence operations for chat messages.
// The collection is append-only: there is no update or delete.
type MessageRepository interface {
	Append(ctx context.Context, m *domain.Message) error
	// ListByComplaint returns every message for the complaint in insertion
	// order. An unknown complaint id yields an empty slice, not an error;
	// existence checks belong to the service.
	ListByComplaint(ctx context.Context, complaintID string) ([]*domain.Message, error)
}
