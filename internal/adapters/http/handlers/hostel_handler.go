package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HostelHandler handles hostel, room and allocation endpoints
type HostelHandler struct {
	hostelService *services.HostelService
}

// NewHostelHandler creates a new hostel handler
func NewHostelHandler(hostelService *services.HostelService) *HostelHandler {
	return &HostelHandler{hostelService: hostelService}
}

// CreateHostel registers a hostel
// @Summary Create hostel
// @Tags Hostel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.HostelInput true "Hostel data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /hostels [post]
func (h *HostelHandler) CreateHostel(c *fiber.Ctx) error {
	var req services.HostelInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	hostel, err := h.hostelService.CreateHostel(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Hostel created successfully", hostel)
}

// ListHostels lists hostels
// @Summary List hostels
// @Tags Hostel
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by hostel type"
// @Success 200 {object} response.Response
// @Router /hostels [get]
func (h *HostelHandler) ListHostels(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	hostels, total, err := h.hostelService.ListHostels(c.Context(), c.Query("type"), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Hostels retrieved successfully", pagination.NewResponse(hostels, params, total))
}

// GetHostel gets one hostel with its rooms
// @Summary Get hostel by ID
// @Tags Hostel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hostels/{id} [get]
func (h *HostelHandler) GetHostel(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	hostel, err := h.hostelService.GetHostel(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Hostel retrieved successfully", hostel)
}

// CreateRoom adds a room
// @Summary Create room
// @Tags Hostel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RoomInput true "Room data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /hostels/rooms [post]
func (h *HostelHandler) CreateRoom(c *fiber.Ctx) error {
	var req services.RoomInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.HostelID == 0 || req.RoomNumber == "" || req.Capacity < 1 {
		return response.BadRequest(c, "Hostel, room number and a positive capacity are required")
	}

	room, err := h.hostelService.CreateRoom(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Room created successfully", room)
}

// ListRooms lists a hostel's rooms
// @Summary List rooms
// @Tags Hostel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /hostels/{id}/rooms [get]
func (h *HostelHandler) ListRooms(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid hostel ID")
	}

	rooms, err := h.hostelService.ListRooms(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Rooms retrieved successfully", rooms)
}

// Allocate houses a student
// @Summary Allocate room
// @Tags Hostel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AllocateInput true "Allocation data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /hostels/allocations [post]
func (h *HostelHandler) Allocate(c *fiber.Ctx) error {
	var req services.AllocateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RoomID == 0 || req.StudentID == 0 {
		return response.BadRequest(c, "Room and student are required")
	}

	allocation, err := h.hostelService.Allocate(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Room allocated successfully", allocation)
}

// Vacate closes an allocation
// @Summary Vacate room
// @Tags Hostel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Allocation ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /hostels/allocations/{id}/vacate [post]
func (h *HostelHandler) Vacate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid allocation ID")
	}

	allocation, err := h.hostelService.Vacate(c.Context(), id, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Room vacated successfully", allocation)
}

// ListStudentAllocations lists a student's allocation history
// @Summary List a student's allocations
// @Tags Hostel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/allocations [get]
func (h *HostelHandler) ListStudentAllocations(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	allocations, err := h.hostelService.ListAllocationsByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Allocations retrieved successfully", allocations)
}
