package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AssignmentHandler handles assignment and submission endpoints
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// Create posts an assignment
// @Summary Create assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AssignmentInput true "Assignment data"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	var req services.AssignmentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.CourseID == 0 || req.DueDate.IsZero() {
		return response.BadRequest(c, "Title, course and due date are required")
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Assignment created successfully", assignment)
}

// List lists assignments
// @Summary List assignments
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param course_id query int false "Filter by course"
// @Success 200 {object} response.Response
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var courseID *uint
	if raw := c.QueryInt("course_id"); raw > 0 {
		v := uint(raw)
		courseID = &v
	}

	assignments, total, err := h.assignmentService.ListAssignments(c.Context(), courseID, params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Assignments retrieved successfully", pagination.NewResponse(assignments, params, total))
}

// Get gets one assignment
// @Summary Get assignment by ID
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	assignment, err := h.assignmentService.GetAssignment(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Assignment retrieved successfully", assignment)
}

// Update patches an assignment
// @Summary Update assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param body body services.AssignmentUpdateInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	var req services.AssignmentUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	assignment, err := h.assignmentService.UpdateAssignment(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Assignment updated successfully", assignment)
}

// Delete removes an assignment
// @Summary Delete assignment
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	if err := h.assignmentService.DeleteAssignment(c.Context(), id, middleware.GetIdentity(c), c.IP()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// Submit records the caller's answer to an assignment
// @Summary Submit assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmissionInput true "Submission data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /submissions [post]
func (h *AssignmentHandler) Submit(c *fiber.Ctx) error {
	var req services.SubmissionInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.AssignmentID == 0 {
		return response.BadRequest(c, "Assignment is required")
	}

	submission, err := h.assignmentService.Submit(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Assignment submitted successfully", submission)
}

// Grade scores a submission
// @Summary Grade submission
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param body body services.SubmissionGradeInput true "Grading data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /submissions/{id} [put]
func (h *AssignmentHandler) Grade(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	var req services.SubmissionGradeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.MarksObtained == nil && req.Feedback == "" {
		return response.BadRequest(c, "Marks or feedback is required")
	}

	submission, err := h.assignmentService.Grade(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Submission graded successfully", submission)
}

// ListSubmissions lists one assignment's submissions
// @Summary List assignment submissions
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/{id}/submissions [get]
func (h *AssignmentHandler) ListSubmissions(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	submissions, err := h.assignmentService.ListSubmissionsByAssignment(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Submissions retrieved successfully", submissions)
}

// ListStudentSubmissions lists a student's submissions
// @Summary List a student's submissions
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/submissions [get]
func (h *AssignmentHandler) ListStudentSubmissions(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	submissions, err := h.assignmentService.ListSubmissionsByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Submissions retrieved successfully", submissions)
}
