package handlers

import (
	"errors"

	"github.com/LEGENDANISH/UMS/internal/core/domain"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleError maps a service error onto the HTTP response taxonomy.
// Handlers call this after their own, more specific mappings.
func handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrNotCourseTeacher):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrCopiesOutOfRange):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrStudentNotFound),
		errors.Is(err, domain.ErrTeacherNotFound),
		errors.Is(err, domain.ErrDepartmentNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrEnrollmentNotFound),
		errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrBorrowNotFound),
		errors.Is(err, domain.ErrFeeRecordNotFound),
		errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrAllocationNotFound),
		errors.Is(err, domain.ErrClubNotFound),
		errors.Is(err, domain.ErrMembershipNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrLeaveNotFound),
		errors.Is(err, domain.ErrAssignmentNotFound),
		errors.Is(err, domain.ErrSubmissionNotFound),
		errors.Is(err, domain.ErrTimetableNotFound),
		errors.Is(err, domain.ErrLibrarianNotFound),
		errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrDuplicateEntry),
		errors.Is(err, domain.ErrDuplicateBorrow),
		errors.Is(err, domain.ErrAlreadyReturned),
		errors.Is(err, domain.ErrDuplicateISBN),
		errors.Is(err, domain.ErrDuplicateReceipt),
		errors.Is(err, domain.ErrDuplicateEnrollment),
		errors.Is(err, domain.ErrDuplicateMembership),
		errors.Is(err, domain.ErrDuplicateSignup),
		errors.Is(err, domain.ErrActiveAllocation),
		errors.Is(err, domain.ErrDuplicateSubmission),
		errors.Is(err, domain.ErrDuplicateEmployeeID),
		errors.Is(err, domain.ErrLeaveAlreadyReviewed):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrBookUnavailable),
		errors.Is(err, domain.ErrBalanceExceeded),
		errors.Is(err, domain.ErrRoomFull),
		errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrDeadlinePassed):
		return response.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}

// parseIDParam reads a positive uint path parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, domain.ErrInvalidInput
	}
	return uint(id), nil
}
