package domain

import "time"

// EventType classifies a lifecycle change recorded in the audit trail.
type EventType string

const (
	EventCreated       EventType = "created"
	EventAssigned      EventType = "assigned"
	EventStatusChanged EventType = "status_changed"
)

// ComplaintEvent is an audit record of a single lifecycle change on a
// complaint. Events are written asynchronously and never block the mutation
// that produced them.
type ComplaintEvent struct {
	ComplaintID string          `json:"complaint_id" bson:"complaint_id"`
	Type        EventType       `json:"type" bson:"type"`
	Status      ComplaintStatus `json:"status" bson:"status"`
	ActorID     string          `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	ActorName   string          `json:"actor_name,omitempty" bson:"actor_name,omitempty"`
	Timestamp   time.Time       `json:"timestamp" bson:"timestamp"`
}
