package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

type stubEventRepo struct {
	events    []*domain.ComplaintEvent
	insertErr error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.ComplaintEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *e
	r.events = append(r.events, &clone)
	return nil
}

func (r *stubEventRepo) ListByComplaint(_ context.Context, complaintID string) ([]*domain.ComplaintEvent, error) {
	var out []*domain.ComplaintEvent
	for _, e := range r.events {
		if e.ComplaintID == complaintID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func TestEventService_Process_PersistsAuditRecord(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewEventService(repo, discardLogger)

	now := time.Now().UTC()
	err := svc.Process(context.Background(), ports.ComplaintEventInput{
		ComplaintID: "CMP-00000001",
		Type:        domain.EventAssigned,
		Status:      domain.StatusAssigned,
		ActorID:     "admin-1",
		ActorName:   "Admin",
		Timestamp:   now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 stored event, got %d", len(repo.events))
	}
	stored := repo.events[0]
	if stored.Type != domain.EventAssigned || stored.Status != domain.StatusAssigned {
		t.Errorf("event fields wrong: %+v", stored)
	}
	if !stored.Timestamp.Equal(now) {
		t.Errorf("timestamp must be carried verbatim: %v vs %v", stored.Timestamp, now)
	}
}

func TestEventService_Process_RepoError(t *testing.T) {
	repo := &stubEventRepo{insertErr: errors.New("audit store down")}
	svc := NewEventService(repo, discardLogger)

	err := svc.Process(context.Background(), ports.ComplaintEventInput{
		ComplaintID: "CMP-00000001",
		Type:        domain.EventCreated,
		Status:      domain.StatusPending,
		Timestamp:   time.Now().UTC(),
	})
	if err == nil {
		t.Fatal("expected error when audit store fails, got nil")
	}
}
