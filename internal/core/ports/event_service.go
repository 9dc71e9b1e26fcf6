package ports

import "context"

// EventService records a single lifecycle event in the audit trail.
// Implementations must tolerate repeated delivery of the same event.
type EventService interface {
	Process(ctx context.Context, event ComplaintEventInput) error
}
