package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

// recordingEventService captures processed events per complaint id.
type recordingEventService struct {
	mu     sync.Mutex
	byID   map[string][]ports.ComplaintEventInput
	doneCh chan struct{}
	want   int
	seen   int
}

func newRecordingEventService(want int) *recordingEventService {
	return &recordingEventService{
		byID:   make(map[string][]ports.ComplaintEventInput),
		doneCh: make(chan struct{}),
		want:   want,
	}
}

func (s *recordingEventService) Process(_ context.Context, e ports.ComplaintEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[e.ComplaintID] = append(s.byID[e.ComplaintID], e)
	s.seen++
	if s.seen == s.want {
		close(s.doneCh)
	}
	return nil
}

func TestDispatcher_PreservesPerComplaintOrder(t *testing.T) {
	const perComplaint = 20
	complaintIDs := []string{"CMP-AAAA0001", "CMP-BBBB0002", "CMP-CCCC0003"}

	svc := newRecordingEventService(perComplaint * len(complaintIDs))
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < perComplaint; i++ {
		for _, id := range complaintIDs {
			d.Enqueue(ports.ComplaintEventInput{
				ComplaintID: id,
				Type:        domain.EventStatusChanged,
				Status:      domain.StatusInProgress,
				Timestamp:   time.Unix(int64(i), 0).UTC(),
			})
		}
	}

	select {
	case <-svc.doneCh:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for events to drain")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for _, id := range complaintIDs {
		events := svc.byID[id]
		if len(events) != perComplaint {
			t.Fatalf("%s: expected %d events, got %d", id, perComplaint, len(events))
		}
		for i := 1; i < len(events); i++ {
			if events[i].Timestamp.Before(events[i-1].Timestamp) {
				t.Errorf("%s: per-complaint order broken at %d", id, i)
			}
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newRecordingEventService(0), zerolog.Nop())

	for _, id := range []string{"CMP-00000001", "CMP-SEED0001", "CMP-FFFFFFFF"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("%s: shard index not deterministic: %d vs %d", id, got, first)
			}
		}
	}
}
