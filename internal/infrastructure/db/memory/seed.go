package memory

import (
	"context"
	"time"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// Seed populates the in-memory backend with the demo fixtures: two
// complaints (one assigned, one pending), the opening chat exchange on the
// first complaint, and the agent directory.
func Seed(complaints *ComplaintRepository, messages *MessageRepository, users *AuthRepository) error {
	ctx := context.Background()

	for _, agent := range []domain.User{
		{ID: "agent-sarah", Name: "Sarah Wilson", Email: "sarah@resolvenow.com", Role: domain.RoleAgent, CreatedAt: seedTime("2025-01-02T09:00:00Z")},
		{ID: "agent-mike", Name: "Mike Johnson", Email: "mike@resolvenow.com", Role: domain.RoleAgent, CreatedAt: seedTime("2025-01-02T09:05:00Z")},
		{ID: "agent-lisa", Name: "Lisa Chen", Email: "lisa@resolvenow.com", Role: domain.RoleAgent, CreatedAt: seedTime("2025-01-02T09:10:00Z")},
	} {
		a := agent
		if _, err := users.Create(ctx, &a); err != nil {
			return err
		}
	}

	seedComplaints := []domain.Complaint{
		{
			ID:                "CMP-SEED0001",
			UserID:            "user-john",
			UserName:          "John Doe",
			Title:             "Defective Product Received",
			Description:       "I received a damaged smartphone with a cracked screen. The package was properly sealed, but the product inside was defective.",
			Category:          "Product Quality",
			Priority:          domain.PriorityHigh,
			Status:            domain.StatusAssigned,
			CreatedAt:         seedTime("2025-01-21T10:30:00Z"),
			UpdatedAt:         seedTime("2025-01-21T14:15:00Z"),
			AssignedAgentID:   "agent-sarah",
			AssignedAgentName: "Sarah Wilson",
			Address:           "123 Main Street",
			City:              "New York",
			State:             "NY",
			Pincode:           "10001",
			Phone:             "+1234567890",
		},
		{
			ID:          "CMP-SEED0002",
			UserID:      "user-mike",
			UserName:    "Mike Johnson",
			Title:       "Poor Customer Service Experience",
			Description: "The customer service representative was rude and unhelpful when I called regarding my order delay.",
			Category:    "Customer Service",
			Priority:    domain.PriorityMedium,
			Status:      domain.StatusPending,
			CreatedAt:   seedTime("2025-01-21T09:15:00Z"),
			UpdatedAt:   seedTime("2025-01-21T09:15:00Z"),
			Address:     "456 Oak Avenue",
			City:        "Los Angeles",
			State:       "CA",
			Pincode:     "90210",
			Phone:       "+1987654321",
		},
	}
	for _, c := range seedComplaints {
		complaint := c
		if err := complaints.Create(ctx, &complaint); err != nil {
			return err
		}
	}

	seedMessages := []domain.Message{
		{
			ID:          "msg-seed-1",
			ComplaintID: "CMP-SEED0001",
			SenderID:    "user-john",
			SenderName:  "John Doe",
			SenderType:  domain.RoleCustomer,
			Message:     "Hello, I need help with my defective product.",
			Timestamp:   seedTime("2025-01-21T14:30:00Z"),
		},
		{
			ID:          "msg-seed-2",
			ComplaintID: "CMP-SEED0001",
			SenderID:    "agent-sarah",
			SenderName:  "Sarah Wilson",
			SenderType:  domain.RoleAgent,
			Message:     "Hi John, I understand your concern. Can you please provide more details about the damage?",
			Timestamp:   seedTime("2025-01-21T14:35:00Z"),
		},
	}
	for _, m := range seedMessages {
		msg := m
		if err := messages.Append(ctx, &msg); err != nil {
			return err
		}
	}

	return nil
}

func seedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("memory: bad seed timestamp: " + value)
	}
	return t
}
