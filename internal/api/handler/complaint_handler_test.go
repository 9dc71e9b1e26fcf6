package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

type stubComplaintService struct {
	createFn       func(ctx context.Context, input ports.CreateComplaintInput) (*domain.Complaint, error)
	getFn          func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error)
	listFn         func(ctx context.Context, input ports.ListComplaintsInput) (*ports.ListComplaintsResult, error)
	assignFn       func(ctx context.Context, input ports.AssignComplaintInput) (*domain.Complaint, error)
	updateStatusFn func(ctx context.Context, input ports.UpdateStatusInput) (*domain.Complaint, error)
	sendMessageFn  func(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error)
	getMessagesFn  func(ctx context.Context, complaintID string) ([]*domain.Message, error)
	statsFn        func(ctx context.Context) (*ports.ComplaintStats, error)
	listAgentsFn   func(ctx context.Context) ([]ports.AgentSummary, error)
}

func (s *stubComplaintService) CreateComplaint(ctx context.Context, input ports.CreateComplaintInput) (*domain.Complaint, error) {
	return s.createFn(ctx, input)
}

func (s *stubComplaintService) GetComplaint(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
	return s.getFn(ctx, complaintID, actor)
}

func (s *stubComplaintService) ListComplaints(ctx context.Context, input ports.ListComplaintsInput) (*ports.ListComplaintsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubComplaintService) AssignComplaint(ctx context.Context, input ports.AssignComplaintInput) (*domain.Complaint, error) {
	return s.assignFn(ctx, input)
}

func (s *stubComplaintService) UpdateComplaintStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Complaint, error) {
	return s.updateStatusFn(ctx, input)
}

func (s *stubComplaintService) SendMessage(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	return s.sendMessageFn(ctx, input)
}

func (s *stubComplaintService) GetComplaintMessages(ctx context.Context, complaintID string) ([]*domain.Message, error) {
	return s.getMessagesFn(ctx, complaintID)
}

func (s *stubComplaintService) Stats(ctx context.Context) (*ports.ComplaintStats, error) {
	return s.statsFn(ctx)
}

func (s *stubComplaintService) ListAgents(ctx context.Context) ([]ports.AgentSummary, error) {
	return s.listAgentsFn(ctx)
}

type stubEventRepo struct {
	listFn func(ctx context.Context, complaintID string) ([]*domain.ComplaintEvent, error)
}

func (s *stubEventRepo) InsertEvent(ctx context.Context, event *domain.ComplaintEvent) error {
	return nil
}

func (s *stubEventRepo) ListByComplaint(ctx context.Context, complaintID string) ([]*domain.ComplaintEvent, error) {
	return s.listFn(ctx, complaintID)
}

// newComplaintTestContext builds an authenticated request context the way
// the Auth middleware would.
func newComplaintTestContext(t *testing.T, method, path, body string, actor ports.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", actor.ID)
	c.Set("name", actor.Name)
	c.Set("role", string(actor.Role))
	return c, rec
}

func customerActor() ports.Actor {
	return ports.Actor{ID: "user-1", Name: "John Doe", Role: domain.RoleCustomer}
}

func TestComplaintHandler_Create_Success(t *testing.T) {
	stub := &stubComplaintService{
		createFn: func(ctx context.Context, input ports.CreateComplaintInput) (*domain.Complaint, error) {
			if input.UserID != "user-1" || input.UserName != "John Doe" {
				t.Fatalf("actor identity not propagated: %+v", input)
			}
			return &domain.Complaint{
				ID:       "CMP-00000001",
				UserID:   input.UserID,
				Title:    input.Title,
				Priority: domain.Priority(input.Priority),
				Status:   domain.StatusPending,
			}, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodPost, "/v1/complaints",
		`{"title":"Broken product","description":"Stopped working","category":"Product Quality","priority":"high"}`,
		customerActor())

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "pending" {
		t.Fatalf("expected pending status, got %v", resp["status"])
	}
}

func TestComplaintHandler_Create_RejectsUnknownPriority(t *testing.T) {
	stub := &stubComplaintService{
		createFn: func(ctx context.Context, input ports.CreateComplaintInput) (*domain.Complaint, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodPost, "/v1/complaints",
		`{"title":"x","description":"y","category":"z","priority":"extreme"}`,
		customerActor())

	_ = handler.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestComplaintHandler_Create_Unauthenticated(t *testing.T) {
	handler := NewComplaintHandler(&stubComplaintService{}, &stubEventRepo{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/complaints", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	var httpErr *echo.HTTPError
	if err == nil || !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestComplaintHandler_List_PassesFilters(t *testing.T) {
	stub := &stubComplaintService{
		listFn: func(ctx context.Context, input ports.ListComplaintsInput) (*ports.ListComplaintsResult, error) {
			if input.Status != "pending" || input.Search != "refund" || input.Page != 2 || input.Limit != 10 {
				t.Fatalf("filters not propagated: %+v", input)
			}
			if input.Actor.Role != domain.RoleCustomer {
				t.Fatalf("actor not propagated: %+v", input.Actor)
			}
			return &ports.ListComplaintsResult{Page: 2, Limit: 10}, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodGet,
		"/v1/complaints?status=pending&search=refund&page=2&limit=10", "", customerActor())

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestComplaintHandler_Get_NotFound(t *testing.T) {
	stub := &stubComplaintService{
		getFn: func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
			return nil, domain.ErrComplaintNotFound
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodGet, "/v1/complaints/CMP-404", "", customerActor())
	c.SetParamNames("id")
	c.SetParamValues("CMP-404")

	_ = handler.Get(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestComplaintHandler_Assign_Forbidden(t *testing.T) {
	stub := &stubComplaintService{
		assignFn: func(ctx context.Context, input ports.AssignComplaintInput) (*domain.Complaint, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodPut, "/v1/complaints/CMP-1/assign",
		`{"agent_id":"agent-2","agent_name":"Mike Chen"}`,
		ports.Actor{ID: "agent-1", Name: "Sarah Wilson", Role: domain.RoleAgent})
	c.SetParamNames("id")
	c.SetParamValues("CMP-1")

	_ = handler.Assign(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestComplaintHandler_UpdateStatus_UnknownLabel(t *testing.T) {
	stub := &stubComplaintService{
		updateStatusFn: func(ctx context.Context, input ports.UpdateStatusInput) (*domain.Complaint, error) {
			return nil, domain.ErrInvalidStatus
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodPut, "/v1/complaints/CMP-1/status",
		`{"status":"vanished"}`,
		ports.Actor{ID: "agent-1", Name: "Sarah Wilson", Role: domain.RoleAgent})
	c.SetParamNames("id")
	c.SetParamValues("CMP-1")

	_ = handler.UpdateStatus(c)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestComplaintHandler_SendMessage_EmptyText(t *testing.T) {
	stub := &stubComplaintService{
		getFn: func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
			return &domain.Complaint{ID: complaintID, UserID: actor.ID}, nil
		},
		sendMessageFn: func(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
			return nil, domain.ErrEmptyMessage
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodPost, "/v1/complaints/CMP-1/messages",
		`{"message":"   "}`, customerActor())
	c.SetParamNames("id")
	c.SetParamValues("CMP-1")

	_ = handler.SendMessage(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestComplaintHandler_SendMessage_Success(t *testing.T) {
	stub := &stubComplaintService{
		getFn: func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
			return &domain.Complaint{ID: complaintID, UserID: actor.ID}, nil
		},
		sendMessageFn: func(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
			if input.SenderType != domain.RoleCustomer {
				t.Fatalf("sender type not propagated: %v", input.SenderType)
			}
			return &domain.Message{
				ID:          "msg-1",
				ComplaintID: input.ComplaintID,
				SenderID:    input.SenderID,
				SenderName:  input.SenderName,
				SenderType:  input.SenderType,
				Message:     input.Message,
				Timestamp:   time.Now().UTC(),
			}, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodPost, "/v1/complaints/CMP-1/messages",
		`{"message":"Any update?"}`, customerActor())
	c.SetParamNames("id")
	c.SetParamValues("CMP-1")

	if err := handler.SendMessage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestComplaintHandler_ListMessages_ForeignCustomerNotFound(t *testing.T) {
	stub := &stubComplaintService{
		getFn: func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
			return nil, domain.ErrComplaintNotFound
		},
		getMessagesFn: func(ctx context.Context, complaintID string) ([]*domain.Message, error) {
			t.Fatalf("thread must not be read when the complaint is not visible")
			return nil, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodGet, "/v1/complaints/CMP-OTHER/messages", "", customerActor())
	c.SetParamNames("id")
	c.SetParamValues("CMP-OTHER")

	_ = handler.ListMessages(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestComplaintHandler_ListMessages_ReturnsThread(t *testing.T) {
	stub := &stubComplaintService{
		getFn: func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
			return &domain.Complaint{ID: complaintID, UserID: actor.ID}, nil
		},
		getMessagesFn: func(ctx context.Context, complaintID string) ([]*domain.Message, error) {
			return []*domain.Message{
				{ID: "msg-1", ComplaintID: complaintID, Message: "Hello"},
				{ID: "msg-2", ComplaintID: complaintID, Message: "Any update?"},
			}, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodGet, "/v1/complaints/CMP-1/messages", "", customerActor())
	c.SetParamNames("id")
	c.SetParamValues("CMP-1")

	if err := handler.ListMessages(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0]["id"] != "msg-1" {
		t.Fatalf("unexpected thread payload: %+v", resp.Data)
	}
}

func TestComplaintHandler_SendMessage_ForeignCustomerNotFound(t *testing.T) {
	stub := &stubComplaintService{
		getFn: func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
			return nil, domain.ErrComplaintNotFound
		},
		sendMessageFn: func(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
			t.Fatalf("thread must not be written when the complaint is not visible")
			return nil, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodPost, "/v1/complaints/CMP-OTHER/messages",
		`{"message":"let me in"}`, customerActor())
	c.SetParamNames("id")
	c.SetParamValues("CMP-OTHER")

	_ = handler.SendMessage(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestComplaintHandler_SendMessage_ForeignAgentForbidden(t *testing.T) {
	stub := &stubComplaintService{
		getFn: func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
			return nil, domain.ErrForbidden
		},
		sendMessageFn: func(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
			t.Fatalf("thread must not be written when the complaint is not visible")
			return nil, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodPost, "/v1/complaints/CMP-1/messages",
		`{"message":"claiming this thread"}`,
		ports.Actor{ID: "agent-2", Name: "Mike Chen", Role: domain.RoleAgent})
	c.SetParamNames("id")
	c.SetParamValues("CMP-1")

	_ = handler.SendMessage(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestComplaintHandler_Events_EnforcesVisibility(t *testing.T) {
	stub := &stubComplaintService{
		getFn: func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
			return nil, domain.ErrComplaintNotFound
		},
	}
	events := &stubEventRepo{
		listFn: func(ctx context.Context, complaintID string) ([]*domain.ComplaintEvent, error) {
			t.Fatalf("events must not be listed when the complaint is not visible")
			return nil, nil
		},
	}
	handler := NewComplaintHandler(stub, events)

	c, rec := newComplaintTestContext(t, http.MethodGet, "/v1/complaints/CMP-1/events", "", customerActor())
	c.SetParamNames("id")
	c.SetParamValues("CMP-1")

	_ = handler.Events(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestComplaintHandler_Events_ReturnsTrail(t *testing.T) {
	stub := &stubComplaintService{
		getFn: func(ctx context.Context, complaintID string, actor ports.Actor) (*domain.Complaint, error) {
			return &domain.Complaint{ID: complaintID}, nil
		},
	}
	events := &stubEventRepo{
		listFn: func(ctx context.Context, complaintID string) ([]*domain.ComplaintEvent, error) {
			return []*domain.ComplaintEvent{
				{ComplaintID: complaintID, Type: domain.EventCreated, Status: domain.StatusPending},
				{ComplaintID: complaintID, Type: domain.EventAssigned, Status: domain.StatusAssigned},
			}, nil
		},
	}
	handler := NewComplaintHandler(stub, events)

	c, rec := newComplaintTestContext(t, http.MethodGet, "/v1/complaints/CMP-1/events", "", customerActor())
	c.SetParamNames("id")
	c.SetParamValues("CMP-1")

	if err := handler.Events(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0]["type"] != "created" {
		t.Fatalf("unexpected events payload: %+v", resp.Data)
	}
}

func TestComplaintHandler_Stats(t *testing.T) {
	stub := &stubComplaintService{
		statsFn: func(ctx context.Context) (*ports.ComplaintStats, error) {
			return &ports.ComplaintStats{Total: 5, Pending: 2, Resolved: 1}, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodGet, "/v1/stats", "",
		ports.Actor{ID: "admin-1", Name: "Admin", Role: domain.RoleAdmin})

	if err := handler.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(5) || resp["pending"] != float64(2) {
		t.Fatalf("unexpected stats payload: %+v", resp)
	}
}

func TestComplaintHandler_ListAgents(t *testing.T) {
	stub := &stubComplaintService{
		listAgentsFn: func(ctx context.Context) ([]ports.AgentSummary, error) {
			return []ports.AgentSummary{
				{ID: "agent-1", Name: "Sarah Wilson", Email: "agent.sarah@resolvenow.com", AssignedCount: 3},
			}, nil
		},
	}
	handler := NewComplaintHandler(stub, &stubEventRepo{})

	c, rec := newComplaintTestContext(t, http.MethodGet, "/v1/agents", "",
		ports.Actor{ID: "admin-1", Name: "Admin", Role: domain.RoleAdmin})

	if err := handler.ListAgents(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0]["assigned_count"] != float64(3) {
		t.Fatalf("unexpected agents payload: %+v", resp.Data)
	}
}
