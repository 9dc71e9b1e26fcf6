package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

type eventService struct {
	events ports.EventRepository
	log    zerolog.Logger
}

// NewEventService returns an EventService that persists lifecycle events to
// the audit trail.
func NewEventService(events ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{events: events, log: log}
}

// Process persists a single lifecycle event. Audit writes are best-effort
// from the caller's perspective; the dispatcher logs failures and moves on.
func (s *eventService) Process(ctx context.Context, in ports.ComplaintEventInput) error {
	event := &domain.ComplaintEvent{
		ComplaintID: in.ComplaintID,
		Type:        in.Type,
		Status:      in.Status,
		ActorID:     in.ActorID,
		ActorName:   in.ActorName,
		Timestamp:   in.Timestamp,
	}

	if err := s.events.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	s.log.Debug().
		Str("complaint_id", in.ComplaintID).
		Str("type", string(in.Type)).
		Str("status", string(in.Status)).
		Msg("lifecycle event recorded")

	return nil
}
