// Package memory provides the default storage backend: process-lifetime,
// mutex-guarded collections. Complaints and messages reset to their seed
// values on every restart; only the session record survives (in Redis,
// when enabled).
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

// ComplaintRepository is an in-memory implementation of
// ports.ComplaintRepository. All reads return clones so callers can never
// mutate the store through a snapshot.
type ComplaintRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Complaint
	order []string
}

func NewComplaintRepository() *ComplaintRepository {
	return &ComplaintRepository{byID: make(map[string]*domain.Complaint)}
}

func (r *ComplaintRepository) Create(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *c
	r.byID[c.ID] = &clone
	r.order = append(r.order, c.ID)
	return nil
}

func (r *ComplaintRepository) FindByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrComplaintNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *ComplaintRepository) Update(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrComplaintNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *ComplaintRepository) List(_ context.Context, f ports.ListComplaintsFilter) ([]*domain.Complaint, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Complaint, 0, len(r.order))
	for _, id := range r.order {
		c := r.byID[id]
		if !matches(c, f) {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}

	total := int64(len(matched))
	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []*domain.Complaint{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func matches(c *domain.Complaint, f ports.ListComplaintsFilter) bool {
	if f.UserID != "" && c.UserID != f.UserID {
		return false
	}
	if f.AssignedAgentID != "" {
		assignedToAgent := c.AssignedAgentID == f.AssignedAgentID
		pendingPool := f.IncludePending && c.Status == domain.StatusPending
		if !assignedToAgent && !pendingPool {
			return false
		}
	}
	if f.Status != "" && string(c.Status) != f.Status {
		return false
	}
	if f.Priority != "" && string(c.Priority) != f.Priority {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Title), needle) &&
			!strings.Contains(strings.ToLower(c.Description), needle) &&
			!strings.Contains(strings.ToLower(c.UserName), needle) {
			return false
		}
	}
	return true
}

func (r *ComplaintRepository) CountByStatus(_ context.Context) (map[domain.ComplaintStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.ComplaintStatus]int64)
	for _, c := range r.byID {
		counts[c.Status]++
	}
	return counts, nil
}

func (r *ComplaintRepository) CountByPriority(_ context.Context) (map[domain.Priority]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.Priority]int64)
	for _, c := range r.byID {
		counts[c.Priority]++
	}
	return counts, nil
}

func (r *ComplaintRepository) CountAssignedTo(_ context.Context, agentID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, c := range r.byID {
		if c.AssignedAgentID != agentID {
			continue
		}
		if c.Status == domain.StatusResolved || c.Status == domain.StatusClosed {
			continue
		}
		n++
	}
	return n, nil
}
