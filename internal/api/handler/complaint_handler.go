package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/resolvenow/complaint-system/internal/api/metrics"
	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

// ComplaintHandler handles HTTP requests for complaint operations.
type ComplaintHandler struct {
	service ports.ComplaintService
	events  ports.EventRepository
}

func NewComplaintHandler(service ports.ComplaintService, events ports.EventRepository) *ComplaintHandler {
	return &ComplaintHandler{service: service, events: events}
}

// Create handles POST /v1/complaints.
//
// @Summary      File a new complaint
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createComplaintRequest  true  "Complaint details"
// @Success      201   {object}  complaintResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/complaints [post]
func (h *ComplaintHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createComplaintRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	complaint, err := h.service.CreateComplaint(c.Request().Context(), toCreateInput(req, actor))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPriority) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create complaint"})
	}

	metrics.ComplaintsCreatedTotal.WithLabelValues(string(complaint.Priority)).Inc()
	return c.JSON(http.StatusCreated, toComplaintResponse(complaint))
}

// List handles GET /v1/complaints. Results are scoped by the caller's role:
// customers see their own complaints, agents see pending plus their
// assignments, admins see everything.
//
// @Summary      List complaints visible to the caller
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        priority  query     string  false  "Filter by priority"
// @Param        category  query     string  false  "Filter by category"
// @Param        search    query     string  false  "Substring match on title and description"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (default 20, max 100)"
// @Success      200       {object}  listComplaintsResponse
// @Failure      401       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /v1/complaints [get]
func (h *ComplaintHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input := ports.ListComplaintsInput{
		Actor:    actor,
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	result, err := h.service.ListComplaints(c.Request().Context(), input)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list complaints"})
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /v1/complaints/:id.
//
// @Summary      Get a complaint by id
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Complaint id (e.g. CMP-7A8B9C2D)"
// @Success      200  {object}  complaintResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/complaints/{id} [get]
func (h *ComplaintHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	complaint, err := h.service.GetComplaint(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return complaintError(c, err)
	}

	return c.JSON(http.StatusOK, toComplaintResponse(complaint))
}

// Assign handles PUT /v1/complaints/:id/assign.
//
// @Summary      Assign a complaint to an agent
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Complaint id"
// @Param        body  body      assignComplaintRequest  true  "Target agent"
// @Success      200   {object}  complaintResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/complaints/{id}/assign [put]
func (h *ComplaintHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignComplaintRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	complaint, err := h.service.AssignComplaint(c.Request().Context(), ports.AssignComplaintInput{
		ComplaintID: c.Param("id"),
		AgentID:     req.AgentID,
		AgentName:   req.AgentName,
		Actor:       actor,
	})
	if err != nil {
		return complaintError(c, err)
	}

	metrics.ComplaintsAssignedTotal.Inc()
	return c.JSON(http.StatusOK, toComplaintResponse(complaint))
}

// UpdateStatus handles PUT /v1/complaints/:id/status.
//
// @Summary      Overwrite a complaint's status
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Complaint id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  complaintResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/complaints/{id}/status [put]
func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	complaint, err := h.service.UpdateComplaintStatus(c.Request().Context(), ports.UpdateStatusInput{
		ComplaintID: c.Param("id"),
		Status:      req.Status,
		Actor:       actor,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		}
		return complaintError(c, err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(complaint.Status)).Inc()
	return c.JSON(http.StatusOK, toComplaintResponse(complaint))
}

// SendMessage handles POST /v1/complaints/:id/messages. Writing to a thread
// requires the same visibility as reading the complaint itself.
//
// @Summary      Append a message to a complaint's thread
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Complaint id"
// @Param        body  body      sendMessageRequest  true  "Message text"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/complaints/{id}/messages [post]
func (h *ComplaintHandler) SendMessage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	complaintID := c.Param("id")
	if _, err := h.service.GetComplaint(c.Request().Context(), complaintID, actor); err != nil {
		return complaintError(c, err)
	}

	msg, err := h.service.SendMessage(c.Request().Context(), ports.SendMessageInput{
		ComplaintID: complaintID,
		SenderID:    actor.ID,
		SenderName:  actor.Name,
		SenderType:  actor.Role,
		Message:     req.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return complaintError(c, err)
	}

	metrics.MessagesSentTotal.WithLabelValues(string(msg.SenderType)).Inc()
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}

// ListMessages handles GET /v1/complaints/:id/messages. The thread is only
// readable by actors who can see the complaint, so the service lookup runs
// first; a customer asking for a foreign id gets the same not-found answer
// as for the complaint itself.
//
// @Summary      Read a complaint's message thread
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Complaint id"
// @Success      200  {object}  messagesResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/complaints/{id}/messages [get]
func (h *ComplaintHandler) ListMessages(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	complaintID := c.Param("id")
	if _, err := h.service.GetComplaint(c.Request().Context(), complaintID, actor); err != nil {
		return complaintError(c, err)
	}

	msgs, err := h.service.GetComplaintMessages(c.Request().Context(), complaintID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list messages"})
	}

	return c.JSON(http.StatusOK, toMessagesResponse(msgs))
}

// Events handles GET /v1/complaints/:id/events. Visibility follows the same
// rules as reading the complaint itself, so the service lookup runs first.
//
// @Summary      Read a complaint's audit trail
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Complaint id"
// @Success      200  {object}  eventsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/complaints/{id}/events [get]
func (h *ComplaintHandler) Events(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	complaintID := c.Param("id")
	if _, err := h.service.GetComplaint(c.Request().Context(), complaintID, actor); err != nil {
		return complaintError(c, err)
	}

	events, err := h.events.ListByComplaint(c.Request().Context(), complaintID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list events"})
	}

	return c.JSON(http.StatusOK, toEventsResponse(events))
}

// Stats handles GET /v1/stats.
//
// @Summary      Aggregate complaint counters for the dashboard
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/stats [get]
func (h *ComplaintHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to compute stats"})
	}

	return c.JSON(http.StatusOK, toStatsResponse(stats))
}

// ListAgents handles GET /v1/agents.
//
// @Summary      List agents with their open assignment counts
// @Tags         agents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  agentsResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/agents [get]
func (h *ComplaintHandler) ListAgents(c echo.Context) error {
	agents, err := h.service.ListAgents(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list agents"})
	}

	return c.JSON(http.StatusOK, toAgentsResponse(agents))
}

// complaintError maps the common service errors shared by several handlers.
func complaintError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrComplaintNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "complaint not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// queryInt parses an optional integer query parameter, returning 0 when the
// parameter is absent or malformed so the service applies its defaults.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
