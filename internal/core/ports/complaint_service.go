package ports

import (
	"context"
	"time"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// Actor identifies who is performing an operation. Role and the matching id
// are taken from validated auth claims by the transport layer.
type Actor struct {
	ID   string
	Name string
	Role domain.Role
}

// CreateComplaintInput carries all data needed to file a new complaint.
// ID, status, and timestamps are allocated by the service.
type CreateComplaintInput struct {
	UserID      string
	UserName    string
	Title       string
	Description string
	Category    string
	Priority    string
	Address     string
	City        string
	State       string
	Pincode     string
	Phone       string
	Attachments []string
}

// AssignComplaintInput assigns a complaint to exactly one agent.
type AssignComplaintInput struct {
	ComplaintID string
	AgentID     string
	AgentName   string
	Actor       Actor
}

// UpdateStatusInput overwrites a complaint's lifecycle status.
type UpdateStatusInput struct {
	ComplaintID string
	Status      string
	Actor       Actor
}

// SendMessageInput appends one chat message to a complaint's thread.
type SendMessageInput struct {
	ComplaintID string
	SenderID    string
	SenderName  string
	SenderType  domain.Role
	Message     string
}

// ListComplaintsInput carries all parameters for the list endpoint. Scoping
// by Actor.Role happens in the service, not the caller.
type ListComplaintsInput struct {
	Actor    Actor
	Status   string
	Priority string
	Category string
	Search   string
	Page     int
	Limit    int
}

// ListComplaintsResult is returned by ListComplaints.
type ListComplaintsResult struct {
	Items      []*domain.Complaint
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ComplaintStats aggregates the dashboard counters.
type ComplaintStats struct {
	Total      int64
	Pending    int64
	Assigned   int64
	InProgress int64
	// Resolved counts both resolved and closed complaints.
	Resolved int64
	Urgent   int64
}

// AgentSummary is one row of the agent directory: an agent plus the number
// of open complaints currently assigned to them.
type AgentSummary struct {
	ID            string
	Name          string
	Email         string
	AssignedCount int64
}

// ComplaintService defines the use-case operations over complaints and
// their message threads.
type ComplaintService interface {
	CreateComplaint(ctx context.Context, input CreateComplaintInput) (*domain.Complaint, error)
	GetComplaint(ctx context.Context, complaintID string, actor Actor) (*domain.Complaint, error)
	ListComplaints(ctx context.Context, input ListComplaintsInput) (*ListComplaintsResult, error)
	AssignComplaint(ctx context.Context, input AssignComplaintInput) (*domain.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, input UpdateStatusInput) (*domain.Complaint, error)
	SendMessage(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	GetComplaintMessages(ctx context.Context, complaintID string) ([]*domain.Message, error)
	Stats(ctx context.Context) (*ComplaintStats, error)
	ListAgents(ctx context.Context) ([]AgentSummary, error)
}

// ComplaintEventInput is the DTO handed to the event pipeline after a
// lifecycle mutation commits.
type ComplaintEventInput struct {
	ComplaintID string
	Type        domain.EventType
	Status      domain.ComplaintStatus
	ActorID     string
	ActorName   string
	Timestamp   time.Time
}
