package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user and profile endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List lists users
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param is_active query bool false "Filter by active flag"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		v := raw == "true"
		isActive = &v
	}

	users, total, err := h.userService.List(c.Context(), c.Query("role"), isActive, params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(users, params, total))
}

// Get gets one user
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "User retrieved successfully", user)
}

// Update patches a user's account flags
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UserUpdateInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req services.UserUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "User updated successfully", user)
}

// Deactivate soft deletes a user
// @Summary Deactivate user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.Deactivate(c.Context(), id, middleware.GetIdentity(c), c.IP()); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// ListStudents lists student profiles
// @Summary List students
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /students [get]
func (h *UserHandler) ListStudents(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	students, total, err := h.userService.ListStudents(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Students retrieved successfully", pagination.NewResponse(students, params, total))
}

// GetStudent gets one student profile
// @Summary Get student by ID
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /students/{id} [get]
func (h *UserHandler) GetStudent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	student, err := h.userService.GetStudent(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Student retrieved successfully", student)
}

// UpdateStudent patches a student profile
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param body body models.Student true "Update data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /students/{id} [put]
func (h *UserHandler) UpdateStudent(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var patch models.Student
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	student, err := h.userService.UpdateStudent(c.Context(), id, &patch, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Student updated successfully", student)
}

// ListTeachers lists teacher profiles
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /teachers [get]
func (h *UserHandler) ListTeachers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	teachers, total, err := h.userService.ListTeachers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Teachers retrieved successfully", pagination.NewResponse(teachers, params, total))
}

// GetTeacher gets one teacher profile
// @Summary Get teacher by ID
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /teachers/{id} [get]
func (h *UserHandler) GetTeacher(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid teacher ID")
	}

	teacher, err := h.userService.GetTeacher(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Teacher retrieved successfully", teacher)
}

// UpdateTeacher patches a teacher profile
// @Summary Update teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param body body models.Teacher true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /teachers/{id} [put]
func (h *UserHandler) UpdateTeacher(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid teacher ID")
	}

	var patch models.Teacher
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	teacher, err := h.userService.UpdateTeacher(c.Context(), id, &patch)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Teacher updated successfully", teacher)
}

// ListLibrarians lists librarian profiles
// @Summary List librarians
// @Tags Librarians
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /librarians [get]
func (h *UserHandler) ListLibrarians(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	librarians, total, err := h.userService.ListLibrarians(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Librarians retrieved successfully", pagination.NewResponse(librarians, params, total))
}

// GetLibrarian gets one librarian profile
// @Summary Get librarian by ID
// @Tags Librarians
// @Produce json
// @Security BearerAuth
// @Param id path int true "Librarian ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /librarians/{id} [get]
func (h *UserHandler) GetLibrarian(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid librarian ID")
	}

	librarian, err := h.userService.GetLibrarian(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Librarian retrieved successfully", librarian)
}

// UpdateLibrarian patches a librarian profile
// @Summary Update librarian
// @Tags Librarians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Librarian ID"
// @Param body body models.Librarian true "Update data"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /librarians/{id} [put]
func (h *UserHandler) UpdateLibrarian(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid librarian ID")
	}

	var patch models.Librarian
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	librarian, err := h.userService.UpdateLibrarian(c.Context(), id, &patch, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Librarian updated successfully", librarian)
}
