package handlers

import (
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AcademicHandler handles department, course, enrollment, attendance and
// grade endpoints
type AcademicHandler struct {
	academicService *services.AcademicService
}

// NewAcademicHandler creates a new academic handler
func NewAcademicHandler(academicService *services.AcademicService) *AcademicHandler {
	return &AcademicHandler{academicService: academicService}
}

// CreateDepartment creates a department
// @Summary Create department
// @Tags Academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DepartmentInput true "Department data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /departments [post]
func (h *AcademicHandler) CreateDepartment(c *fiber.Ctx) error {
	var req services.DepartmentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" || req.Code == "" {
		return response.BadRequest(c, "Name and code are required")
	}

	dept, err := h.academicService.CreateDepartment(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Department created successfully", dept)
}

// ListDepartments lists all departments
// @Summary List departments
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /departments [get]
func (h *AcademicHandler) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.academicService.ListDepartments(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Departments retrieved successfully", depts)
}

// GetDepartment gets one department
// @Summary Get department by ID
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id} [get]
func (h *AcademicHandler) GetDepartment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	dept, err := h.academicService.GetDepartment(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Department retrieved successfully", dept)
}

// UpdateDepartment patches a department
// @Summary Update department
// @Tags Academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param body body services.DepartmentInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id} [put]
func (h *AcademicHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	var req services.DepartmentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dept, err := h.academicService.UpdateDepartment(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Department updated successfully", dept)
}

// DeleteDepartment removes a department
// @Summary Delete department
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /departments/{id} [delete]
func (h *AcademicHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	if err := h.academicService.DeleteDepartment(c.Context(), id, middleware.GetIdentity(c), c.IP()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// CreateCourse creates a course
// @Summary Create course
// @Tags Academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CourseInput true "Course data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /courses [post]
func (h *AcademicHandler) CreateCourse(c *fiber.Ctx) error {
	var req services.CourseInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" || req.Code == "" || req.DepartmentID == 0 {
		return response.BadRequest(c, "Name, code and department are required")
	}

	course, err := h.academicService.CreateCourse(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Course created successfully", course)
}

// ListCourses lists courses
// @Summary List courses
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /courses [get]
func (h *AcademicHandler) ListCourses(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	courses, total, err := h.academicService.ListCourses(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Courses retrieved successfully", pagination.NewResponse(courses, params, total))
}

// GetCourse gets one course
// @Summary Get course by ID
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id} [get]
func (h *AcademicHandler) GetCourse(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	course, err := h.academicService.GetCourse(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Course retrieved successfully", course)
}

// UpdateCourse patches a course
// @Summary Update course
// @Tags Academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body services.CourseUpdateInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id} [put]
func (h *AcademicHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	var req services.CourseUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.academicService.UpdateCourse(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Course updated successfully", course)
}

// DeleteCourse removes a course
// @Summary Delete course
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /courses/{id} [delete]
func (h *AcademicHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	if err := h.academicService.DeleteCourse(c.Context(), id, middleware.GetIdentity(c), c.IP()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// Enroll enrolls a student in a course
// @Summary Enroll in course
// @Tags Academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EnrollmentInput true "Enrollment data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /enrollments [post]
func (h *AcademicHandler) Enroll(c *fiber.Ctx) error {
	var req services.EnrollmentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.StudentID == 0 || req.CourseID == 0 {
		return response.BadRequest(c, "Student and course are required")
	}

	enrollment, err := h.academicService.Enroll(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Enrolled successfully", enrollment)
}

// ListEnrollments lists enrollments
// @Summary List enrollments
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /enrollments [get]
func (h *AcademicHandler) ListEnrollments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	enrollments, total, err := h.academicService.ListEnrollments(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Enrollments retrieved successfully", pagination.NewResponse(enrollments, params, total))
}

// ListStudentEnrollments lists a student's enrollments
// @Summary List a student's enrollments
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/enrollments [get]
func (h *AcademicHandler) ListStudentEnrollments(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	enrollments, err := h.academicService.ListEnrollmentsByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Enrollments retrieved successfully", enrollments)
}

// Unenroll drops an enrollment
// @Summary Drop enrollment
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /enrollments/{id} [delete]
func (h *AcademicHandler) Unenroll(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment ID")
	}

	if err := h.academicService.Unenroll(c.Context(), id, middleware.GetIdentity(c), c.IP()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// MarkAttendance records one attendance mark
// @Summary Mark attendance
// @Tags Academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AttendanceInput true "Attendance data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /attendance [post]
func (h *AcademicHandler) MarkAttendance(c *fiber.Ctx) error {
	var req services.AttendanceInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.StudentID == 0 || req.CourseID == 0 || req.Status == "" {
		return response.BadRequest(c, "Student, course and status are required")
	}

	att, err := h.academicService.MarkAttendance(c.Context(), &req, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Attendance marked successfully", att)
}

// ListStudentAttendance lists a student's attendance
// @Summary List a student's attendance
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/attendance [get]
func (h *AcademicHandler) ListStudentAttendance(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	marks, err := h.academicService.ListAttendanceByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Attendance retrieved successfully", marks)
}

// ListCourseAttendance lists a course's attendance, optionally for one day
// @Summary List a course's attendance
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param date query string false "Day filter (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id}/attendance [get]
func (h *AcademicHandler) ListCourseAttendance(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		}
		date = &parsed
	}

	marks, err := h.academicService.ListAttendanceByCourse(c.Context(), id, date)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Attendance retrieved successfully", marks)
}

// SubmitGrade records or replaces a grade
// @Summary Submit grade
// @Tags Academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.GradeInput true "Grade data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /grades [post]
func (h *AcademicHandler) SubmitGrade(c *fiber.Ctx) error {
	var req services.GradeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.EnrollmentID == 0 {
		return response.BadRequest(c, "Enrollment is required")
	}

	grade, err := h.academicService.SubmitGrade(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Grade submitted successfully", grade)
}

// ListStudentGrades lists a student's grades
// @Summary List a student's grades
// @Tags Academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/grades [get]
func (h *AcademicHandler) ListStudentGrades(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	grades, err := h.academicService.ListGradesByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Grades retrieved successfully", grades)
}
