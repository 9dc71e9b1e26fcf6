package domain

import (
	"errors"
	"time"
)

// ComplaintStatus represents the lifecycle state of a complaint.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusAssigned   ComplaintStatus = "assigned"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusClosed     ComplaintStatus = "closed"
)

// Priority represents the urgency label a customer attaches to a complaint.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var ErrComplaintNotFound = errors.New("complaint not found")
var ErrEmptyMessage = errors.New("message text must not be empty")
var ErrInvalidStatus = errors.New("invalid complaint status")
var ErrInvalidPriority = errors.New("invalid priority")
var ErrForbidden = errors.New("access forbidden")

// IsValid reports whether s is one of the five known lifecycle states.
// There is deliberately no transition table: any valid status may replace
// any other (agent override is allowed, e.g. resolved back to pending).
func (s ComplaintStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// IsValid reports whether p is one of the four known priority labels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Complaint is the core aggregate root. UserName and AssignedAgentName are
// denormalized display copies; UserID and AssignedAgentID are authoritative.
type Complaint struct {
	ID                string          `json:"id" bson:"_id,omitempty"`
	UserID            string          `json:"user_id" bson:"user_id"`
	UserName          string          `json:"user_name" bson:"user_name"`
	Title             string          `json:"title" bson:"title"`
	Description       string          `json:"description" bson:"description"`
	Category          string          `json:"category" bson:"category"`
	Priority          Priority        `json:"priority" bson:"priority"`
	Status            ComplaintStatus `json:"status" bson:"status"`
	CreatedAt         time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" bson:"updated_at"`
	AssignedAgentID   string          `json:"assigned_agent_id,omitempty" bson:"assigned_agent_id,omitempty"`
	AssignedAgentName string          `json:"assigned_agent_name,omitempty" bson:"assigned_agent_name,omitempty"`
	Address           string          `json:"address" bson:"address"`
	City              string          `json:"city" bson:"city"`
	State             string          `json:"state" bson:"state"`
	Pincode           string          `json:"pincode" bson:"pincode"`
	Phone             string          `json:"phone" bson:"phone"`
	// Attachments holds opaque upload references. The service never
	// inspects or stores file bytes.
	Attachments []string `json:"attachments,omitempty" bson:"attachments,omitempty"`
}

// Touch bumps UpdatedAt to now, guaranteeing a strict increase even when two
// mutations land within the same clock tick.
func (c *Complaint) Touch(now time.Time) {
	if !now.After(c.UpdatedAt) {
		now = c.UpdatedAt.Add(time.Nanosecond)
	}
	c.UpdatedAt = now
}
