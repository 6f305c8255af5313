package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LeaveHandler handles leave application endpoints
type LeaveHandler struct {
	leaveService *services.LeaveService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// Apply files a leave application
// @Summary Apply for leave
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.LeaveInput true "Leave data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /leaves [post]
func (h *LeaveHandler) Apply(c *fiber.Ctx) error {
	var req services.LeaveInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.StudentID == 0 || req.Reason == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return response.BadRequest(c, "Student, reason and a date range are required")
	}

	leave, err := h.leaveService.Apply(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Leave application filed successfully", leave)
}

// List lists leave applications
// @Summary List leave applications
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /leaves [get]
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	leaves, total, err := h.leaveService.List(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Leave applications retrieved successfully", pagination.NewResponse(leaves, params, total))
}

// Get gets one leave application
// @Summary Get leave application by ID
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leaves/{id} [get]
func (h *LeaveHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid leave ID")
	}

	leave, err := h.leaveService.Get(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Leave application retrieved successfully", leave)
}

// ListStudentLeaves lists a student's leave applications
// @Summary List a student's leave applications
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/leaves [get]
func (h *LeaveHandler) ListStudentLeaves(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	leaves, err := h.leaveService.ListByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Leave applications retrieved successfully", leaves)
}

// Review decides a pending leave application
// @Summary Review leave application
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Param body body services.ReviewInput true "Review decision"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leaves/{id}/review [post]
func (h *LeaveHandler) Review(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid leave ID")
	}

	var req services.ReviewInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leave, err := h.leaveService.Review(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Leave application reviewed successfully", leave)
}
