package ports

import (
	"context"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// ListComplaintsFilter carries all query parameters for listing complaints.
// Role scoping is resolved by the service layer before the filter reaches a
// repository: a customer filter carries UserID, an agent filter carries
// AssignedAgentID plus IncludePending, an admin filter carries neither.
type ListComplaintsFilter struct {
	UserID          string // non-empty = scoped to the owning customer
	AssignedAgentID string // non-empty = scoped to the assigned agent
	// IncludePending widens an agent-scoped filter to also return the
	// unassigned pending pool the agent may claim from.
	IncludePending bool
	Status         string // optional: filter by lifecycle status
	Priority       string // optional: filter by priority label
	Category       string // optional: filter by category label
	Search         string // optional: partial match on title, description, or user_name
	Page           int    // 1-based
	Limit          int    // max rows per page (capped at 100 by the service)
}

// ComplaintRepository defines persistence operations for complaints.
// Repositories perform no access control; scoping arrives via the filter.
type ComplaintRepository interface {
	Create(ctx context.Context, c *domain.Complaint) error
	// FindByID retrieves a complaint by id, or domain.ErrComplaintNotFound.
	FindByID(ctx context.Context, id string) (*domain.Complaint, error)
	// Update overwrites the stored complaint matching c.ID. It never
	// inserts: an unknown id yields domain.ErrComplaintNotFound.
	Update(ctx context.Context, c *domain.Complaint) error
	// List returns a page of complaints matching filter, in insertion
	// order, plus the total match count.
	List(ctx context.Context, filter ListComplaintsFilter) ([]*domain.Complaint, int64, error)
	// CountByStatus returns the number of complaints per lifecycle status.
	CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int64, error)
	// CountByPriority returns the number of complaints per priority label.
	CountByPriority(ctx context.Context) (map[domain.Priority]int64, error)
	// CountAssignedTo returns the number of open complaints (not resolved
	// or closed) currently assigned to the given agent.
	CountAssignedTo(ctx context.Context, agentID string) (int64, error)
}
