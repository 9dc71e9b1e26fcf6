package ports

import (
	"context"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// EventRepository persists the complaint lifecycle audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.ComplaintEvent) error
	// ListByComplaint returns the complaint's audit records in insertion order.
	ListByComplaint(ctx context.Context, complaintID string) ([]*domain.ComplaintEvent, error)
}
