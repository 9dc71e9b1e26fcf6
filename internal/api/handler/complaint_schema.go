package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createComplaintRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category"    validate:"required"`
	Priority    string   `json:"priority"    validate:"required,oneof=low medium high urgent"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Pincode     string   `json:"pincode"`
	Phone       string   `json:"phone"`
	Attachments []string `json:"attachments,omitempty"`
}

type assignComplaintRequest struct {
	AgentID   string `json:"agent_id"   validate:"required"`
	AgentName string `json:"agent_name"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type sendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// --- Response types ---
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type complaintResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	UserName          string    `json:"user_name"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Priority          string    `json:"priority"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	AssignedAgentID   string    `json:"assigned_agent_id,omitempty"`
	AssignedAgentName string    `json:"assigned_agent_name,omitempty"`
	Address           string    `json:"address,omitempty"`
	City              string    `json:"city,omitempty"`
	State             string    `json:"state,omitempty"`
	Pincode           string    `json:"pincode,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	Attachments       []string  `json:"attachments,omitempty"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listComplaintsResponse struct {
	Data       []complaintResponse `json:"data"`
	Pagination paginationResponse  `json:"pagination"`
}

type messageResponse struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaint_id"`
	SenderID    string    `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	SenderType  string    `json:"sender_type"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

type messagesResponse struct {
	Data []messageResponse `json:"data"`
}

type eventResponse struct {
	ComplaintID string    `json:"complaint_id"`
	Type        string    `json:"type"`
	Status      string    `json:"status,omitempty"`
	ActorID     string    `json:"actor_id,omitempty"`
	ActorName   string    `json:"actor_name,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type eventsResponse struct {
	Data []eventResponse `json:"data"`
}

type statsResponse struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Assigned   int64 `json:"assigned"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Urgent     int64 `json:"urgent"`
}

type agentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AssignedCount int64  `json:"assigned_count"`
}

type agentsResponse struct {
	Data []agentResponse `json:"data"`
}
