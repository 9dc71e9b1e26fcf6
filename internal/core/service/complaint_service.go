package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

// EventSink is where committed lifecycle mutations are reported. The queue
// dispatcher implements it; enqueueing never blocks the mutation path.
type EventSink interface {
	Enqueue(event ports.ComplaintEventInput)
}

// ComplaintService implements ports.ComplaintService on top of the
// complaint, message, and user repositories.
type ComplaintService struct {
	repo     ports.ComplaintRepository
	messages ports.MessageRepository
	users    ports.AuthRepository
	events   EventSink
	logger   zerolog.Logger
	// latency simulates the call/response delay of a remote backend on
	// complaint submission. Zero in tests and production; non-zero only
	// in demo setups.
	latency time.Duration
}

func NewComplaintService(
	repo ports.ComplaintRepository,
	messages ports.MessageRepository,
	users ports.AuthRepository,
	events EventSink,
	logger zerolog.Logger,
	latency time.Duration,
) *ComplaintService {
	return &ComplaintService{
		repo:     repo,
		messages: messages,
		users:    users,
		events:   events,
		logger:   logger,
		latency:  latency,
	}
}

// CreateComplaint files a new complaint. The store allocates the id, forces
// status to pending, and stamps both timestamps; the priority must be one
// of the known labels, the category is stored as supplied.
func (s *ComplaintService) CreateComplaint(ctx context.Context, input ports.CreateComplaintInput) (*domain.Complaint, error) {
	priority := domain.Priority(input.Priority)
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, input.Priority)
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	complaint := &domain.Complaint{
		ID:          generateComplaintID(),
		UserID:      input.UserID,
		UserName:    input.UserName,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    priority,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		Pincode:     input.Pincode,
		Phone:       input.Phone,
		Attachments: input.Attachments,
	}

	if err := s.repo.Create(ctx, complaint); err != nil {
		s.logger.Error().Err(err).Msg("failed to create complaint")
		return nil, err
	}

	s.logger.Info().
		Str("complaint_id", complaint.ID).
		Str("user_id", complaint.UserID).
		Str("priority", string(complaint.Priority)).
		Msg("complaint created")

	s.emit(ports.ComplaintEventInput{
		ComplaintID: complaint.ID,
		Type:        domain.EventCreated,
		Status:      domain.StatusPending,
		ActorID:     input.UserID,
		ActorName:   input.UserName,
		Timestamp:   now,
	})

	return complaint, nil
}

// GetComplaint retrieves one complaint, scoped by the actor's role:
// customers see only their own, agents see complaints assigned to them plus
// the pending pool, admins see everything.
func (s *ComplaintService) GetComplaint(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleAgent:
		if complaint.Status != domain.StatusPending && complaint.AssignedAgentID != actor.ID {
			return nil, domain.ErrForbidden
		}
	default:
		// Ownership failures read as not-found so customers cannot probe
		// for other customers' complaint ids.
		if complaint.UserID != actor.ID {
			return nil, domain.ErrComplaintNotFound
		}
	}

	return complaint, nil
}

// ListComplaints returns a role-scoped, filtered, paginated snapshot in
// insertion order.
func (s *ComplaintService) ListComplaints(ctx context.Context, input ports.ListComplaintsInput) (*ports.ListComplaintsResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}

	filter := ports.ListComplaintsFilter{
		Status:   input.Status,
		Priority: input.Priority,
		Category: input.Category,
		Search:   input.Search,
		Page:     page,
		Limit:    limit,
	}
	switch input.Actor.Role {
	case domain.RoleAdmin:
	case domain.RoleAgent:
		filter.AssignedAgentID = input.Actor.ID
		filter.IncludePending = true
	default:
		filter.UserID = input.Actor.ID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListComplaintsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// AssignComplaint associates a complaint with exactly one agent and forces
// status to assigned, regardless of the prior status. Admins may assign any
// agent; agents may only claim a complaint for themselves.
func (s *ComplaintService) AssignComplaint(ctx context.Context, input ports.AssignComplaintInput) (*domain.Complaint, error) {
	switch input.Actor.Role {
	case domain.RoleAdmin:
	case domain.RoleAgent:
		if input.AgentID != input.Actor.ID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	complaint, err := s.repo.FindByID(ctx, input.ComplaintID)
	if err != nil {
		return nil, err
	}

	complaint.AssignedAgentID = input.AgentID
	complaint.AssignedAgentName = input.AgentName
	complaint.Status = domain.StatusAssigned
	complaint.Touch(time.Now().UTC())

	if err := s.repo.Update(ctx, complaint); err != nil {
		return nil, fmt.Errorf("assign complaint: %w", err)
	}

	s.logger.Info().
		Str("complaint_id", complaint.ID).
		Str("agent_id", input.AgentID).
		Msg("complaint assigned")

	s.emit(ports.ComplaintEventInput{
		ComplaintID: complaint.ID,
		Type:        domain.EventAssigned,
		Status:      domain.StatusAssigned,
		ActorID:     input.Actor.ID,
		ActorName:   input.Actor.Name,
		Timestamp:   complaint.UpdatedAt,
	})

	return complaint, nil
}

// UpdateComplaintStatus overwrites the complaint's status with any valid
// lifecycle label. There is no transition table: resolved may move back to
// pending (agent override is a supported workflow).
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Complaint, error) {
	status := domain.ComplaintStatus(input.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
	}

	complaint, err := s.repo.FindByID(ctx, input.ComplaintID)
	if err != nil {
		return nil, err
	}

	switch input.Actor.Role {
	case domain.RoleAdmin:
	case domain.RoleAgent:
		if complaint.AssignedAgentID != input.Actor.ID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	complaint.Status = status
	complaint.Touch(time.Now().UTC())

	if err := s.repo.Update(ctx, complaint); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.logger.Info().
		Str("complaint_id", complaint.ID).
		Str("status", string(status)).
		Msg("complaint status updated")

	s.emit(ports.ComplaintEventInput{
		ComplaintID: complaint.ID,
		Type:        domain.EventStatusChanged,
		Status:      status,
		ActorID:     input.Actor.ID,
		ActorName:   input.Actor.Name,
		Timestamp:   complaint.UpdatedAt,
	})

	return complaint, nil
}

// SendMessage appends one message to a complaint's thread. The text must be
// non-empty after trimming and the complaint must exist; a message never
// bumps the complaint's UpdatedAt (threads and lifecycle are independent).
func (s *ComplaintService) SendMessage(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	if _, err := s.repo.FindByID(ctx, input.ComplaintID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:          uuid.NewString(),
		ComplaintID: input.ComplaintID,
		SenderID:    input.SenderID,
		SenderName:  input.SenderName,
		SenderType:  input.SenderType,
		Message:     input.Message,
		Timestamp:   time.Now().UTC(),
	}

	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	return msg, nil
}

// GetComplaintMessages returns the complaint's thread in insertion order.
// The read is idempotent and recomputed per call; an unknown complaint id
// yields an empty thread.
func (s *ComplaintService) GetComplaintMessages(ctx context.Context, complaintID string) ([]*domain.Message, error) {
	return s.messages.ListByComplaint(ctx, complaintID)
}

// Stats aggregates the dashboard counters over the whole collection.
func (s *ComplaintService) Stats(ctx context.Context) (*ports.ComplaintStats, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	byPriority, err := s.repo.CountByPriority(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	stats := &ports.ComplaintStats{
		Pending:    byStatus[domain.StatusPending],
		Assigned:   byStatus[domain.StatusAssigned],
		InProgress: byStatus[domain.StatusInProgress],
		Resolved:   byStatus[domain.StatusResolved] + byStatus[domain.StatusClosed],
		Urgent:     byPriority[domain.PriorityUrgent],
	}
	for _, n := range byStatus {
		stats.Total += n
	}
	return stats, nil
}

// ListAgents returns the agent directory with each agent's open assignment
// count (open = not resolved and not closed).
func (s *ComplaintService) ListAgents(ctx context.Context) ([]ports.AgentSummary, error) {
	agents, err := s.users.ListByRole(ctx, domain.RoleAgent)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}

	summaries := make([]ports.AgentSummary, 0, len(agents))
	for _, agent := range agents {
		count, err := s.repo.CountAssignedTo(ctx, agent.ID)
		if err != nil {
			return nil, fmt.Errorf("list agents: %w", err)
		}
		summaries = append(summaries, ports.AgentSummary{
			ID:            agent.ID,
			Name:          agent.Name,
			Email:         agent.Email,
			AssignedCount: count,
		})
	}
	return summaries, nil
}

func (s *ComplaintService) emit(event ports.ComplaintEventInput) {
	if s.events != nil {
		s.events.Enqueue(event)
	}
}

// simulateLatency blocks for the configured demo latency, honouring context
// cancellation. A zero latency returns immediately.
func (s *ComplaintService) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.latency):
		return nil
	}
}

// generateComplaintID returns a unique complaint id in the format CMP-XXXXXXXX.
func generateComplaintID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("CMP-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("CMP-%08X", b)
}
