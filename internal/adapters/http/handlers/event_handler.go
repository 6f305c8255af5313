package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles event and signup endpoints
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEvent schedules an event
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EventInput true "Event data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req services.EventInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.EventDate.IsZero() {
		return response.BadRequest(c, "Title and event date are required")
	}

	event, err := h.eventService.CreateEvent(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Event created successfully", event)
}

// ListEvents lists events
// @Summary List events
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /events [get]
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	events, total, err := h.eventService.ListEvents(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Events retrieved successfully", pagination.NewResponse(events, params, total))
}

// GetEvent gets one event
// @Summary Get event by ID
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.GetEvent(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Event retrieved successfully", event)
}

// UpdateEvent patches an event
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body services.EventUpdateInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	var req services.EventUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	event, err := h.eventService.UpdateEvent(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Event updated successfully", event)
}

// DeleteEvent removes an event
// @Summary Delete event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	if err := h.eventService.DeleteEvent(c.Context(), id, middleware.GetIdentity(c), c.IP()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// Register signs a student up for an event
// @Summary Register for event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SignupInput true "Signup data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /events/register [post]
func (h *EventHandler) Register(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.EventID == 0 || req.StudentID == 0 {
		return response.BadRequest(c, "Event and student are required")
	}

	participation, err := h.eventService.Register(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Registered successfully", participation)
}

// MarkAttended records that a participant showed up
// @Summary Mark participant attended
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participation ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/participations/{id}/attended [post]
func (h *EventHandler) MarkAttended(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid participation ID")
	}

	participation, err := h.eventService.MarkAttended(c.Context(), id, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Participation updated successfully", participation)
}

// ListParticipants lists an event's signups
// @Summary List event participants
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id}/participants [get]
func (h *EventHandler) ListParticipants(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	participants, err := h.eventService.ListParticipants(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Participants retrieved successfully", participants)
}

// ListStudentParticipations lists a student's event signups
// @Summary List a student's event signups
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/participations [get]
func (h *EventHandler) ListStudentParticipations(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	participations, err := h.eventService.ListParticipationsByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Participations retrieved successfully", participations)
}
