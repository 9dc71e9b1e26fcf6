package handler

import (
	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createComplaintRequest, actor ports.Actor) ports.CreateComplaintInput {
	return ports.CreateComplaintInput{
		UserID:      actor.ID,
		UserName:    actor.Name,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Phone:       req.Phone,
		Attachments: req.Attachments,
	}
}

// --- Service result → HTTP response ---

func toComplaintResponse(c *domain.Complaint) complaintResponse {
	return complaintResponse{
		ID:                c.ID,
		UserID:            c.UserID,
		UserName:          c.UserName,
		Title:             c.Title,
		Description:       c.Description,
		Category:          c.Category,
		Priority:          string(c.Priority),
		Status:            string(c.Status),
		CreatedAt:         c.CreatedAt.UTC(),
		UpdatedAt:         c.UpdatedAt.UTC(),
		AssignedAgentID:   c.AssignedAgentID,
		AssignedAgentName: c.AssignedAgentName,
		Address:           c.Address,
		City:              c.City,
		State:             c.State,
		Pincode:           c.Pincode,
		Phone:             c.Phone,
		Attachments:       c.Attachments,
	}
}

func toListResponse(r *ports.ListComplaintsResult) listComplaintsResponse {
	items := make([]complaintResponse, len(r.Items))
	for i, c := range r.Items {
		items[i] = toComplaintResponse(c)
	}
	return listComplaintsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:          m.ID,
		ComplaintID: m.ComplaintID,
		SenderID:    m.SenderID,
		SenderName:  m.SenderName,
		SenderType:  string(m.SenderType),
		Message:     m.Message,
		Timestamp:   m.Timestamp.UTC(),
	}
}

func toMessagesResponse(msgs []*domain.Message) messagesResponse {
	items := make([]messageResponse, len(msgs))
	for i, m := range msgs {
		items[i] = toMessageResponse(m)
	}
	return messagesResponse{Data: items}
}

func toEventsResponse(events []*domain.ComplaintEvent) eventsResponse {
	items := make([]eventResponse, len(events))
	for i, ev := range events {
		items[i] = eventResponse{
			ComplaintID: ev.ComplaintID,
			Type:        string(ev.Type),
			Status:      string(ev.Status),
			ActorID:     ev.ActorID,
			ActorName:   ev.ActorName,
			Timestamp:   ev.Timestamp.UTC(),
		}
	}
	return eventsResponse{Data: items}
}

func toStatsResponse(s *ports.ComplaintStats) statsResponse {
	return statsResponse{
		Total:      s.Total,
		Pending:    s.Pending,
		Assigned:   s.Assigned,
		InProgress: s.InProgress,
		Resolved:   s.Resolved,
		Urgent:     s.Urgent,
	}
}

func toAgentsResponse(agents []ports.AgentSummary) agentsResponse {
	items := make([]agentResponse, len(agents))
	for i, a := range agents {
		items[i] = agentResponse{
			ID:            a.ID,
			Name:          a.Name,
			Email:         a.Email,
			AssignedCount: a.AssignedCount,
		}
	}
	return agentsResponse{Data: items}
}
