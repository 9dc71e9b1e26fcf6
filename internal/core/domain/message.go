package domain

import "time"

// Message is a single chat entry in a complaint's thread. Messages are
// append-only: no edits, no deletes, ordered by creation.
type Message struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ComplaintID string    `json:"complaint_id" bson:"complaint_id"`
	SenderID    string    `json:"sender_id" bson:"sender_id"`
	SenderName  string    `json:"sender_name" bson:"sender_name"`
	SenderType  Role      `json:"sender_type" bson:"sender_type"`
	Message     string    `json:"message" bson:"message"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}
