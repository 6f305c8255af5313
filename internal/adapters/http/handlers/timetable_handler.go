package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Timetable endpoints live on the academic handler since slots are part
// of the course structure.

// CreateTimetable adds a weekly slot
// @Summary Create timetable slot
// @Tags Timetables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.TimetableInput true "Slot data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /timetables [post]
func (h *AcademicHandler) CreateTimetable(c *fiber.Ctx) error {
	var req services.TimetableInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CourseID == 0 || req.StartTime == "" || req.EndTime == "" {
		return response.BadRequest(c, "Course, start time and end time are required")
	}

	entry, err := h.academicService.CreateTimetable(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Timetable slot created successfully", entry)
}

// ListTimetables lists every slot
// @Summary List timetable slots
// @Tags Timetables
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /timetables [get]
func (h *AcademicHandler) ListTimetables(c *fiber.Ctx) error {
	entries, err := h.academicService.ListTimetables(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Timetable retrieved successfully", entries)
}

// GetTimetable gets one slot
// @Summary Get timetable slot by ID
// @Tags Timetables
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /timetables/{id} [get]
func (h *AcademicHandler) GetTimetable(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid timetable ID")
	}

	entry, err := h.academicService.GetTimetable(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Timetable slot retrieved successfully", entry)
}

// ListTimetablesByDay lists one weekday's slots
// @Summary List timetable slots by day
// @Tags Timetables
// @Produce json
// @Security BearerAuth
// @Param day path int true "Day of week, 0 (Sunday) to 6 (Saturday)"
// @Success 200 {object} response.Response
// @Router /timetables/day/{day} [get]
func (h *AcademicHandler) ListTimetablesByDay(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil || day < 0 || day > 6 {
		return response.BadRequest(c, "Day must be an integer from 0 to 6")
	}

	entries, err := h.academicService.ListTimetablesByDay(c.Context(), day)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Timetable retrieved successfully", entries)
}

// ListCourseTimetables lists a course's slots
// @Summary List a course's timetable
// @Tags Timetables
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id}/timetables [get]
func (h *AcademicHandler) ListCourseTimetables(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	entries, err := h.academicService.ListTimetablesByCourse(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Timetable retrieved successfully", entries)
}

// UpdateTimetable patches a slot
// @Summary Update timetable slot
// @Tags Timetables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Param body body services.TimetableUpdateInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /timetables/{id} [put]
func (h *AcademicHandler) UpdateTimetable(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid timetable ID")
	}

	var req services.TimetableUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.academicService.UpdateTimetable(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Timetable slot updated successfully", entry)
}

// DeleteTimetable removes a slot
// @Summary Delete timetable slot
// @Tags Timetables
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /timetables/{id} [delete]
func (h *AcademicHandler) DeleteTimetable(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid timetable ID")
	}

	if err := h.academicService.DeleteTimetable(c.Context(), id, middleware.GetIdentity(c), c.IP()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}
