package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// UserErrors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("email already in use")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Library errors
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrBookUnavailable  = errors.New("book is not available for borrowing")
	ErrDuplicateBorrow  = errors.New("student already has this book borrowed")
	ErrBorrowNotFound   = errors.New("borrow record not found")
	ErrAlreadyReturned  = errors.New("book already returned")
	ErrCopiesOutOfRange = errors.New("available copies cannot exceed total copies")
	ErrDuplicateISBN    = errors.New("isbn already exists")
)

// Fee errors
var (
	ErrFeeRecordNotFound = errors.New("fee record not found")
	ErrBalanceExceeded   = errors.New("payment amount exceeds outstanding balance")
	ErrDuplicateReceipt  = errors.New("receipt number or transaction id already exists")
)

// Hostel errors
var (
	ErrRoomNotFound       = errors.New("hostel room not found")
	ErrRoomFull           = errors.New("room is at full capacity")
	ErrActiveAllocation   = errors.New("student already has an active hostel allocation")
	ErrAllocationNotFound = errors.New("allocation not found or already vacated")
)

// Club & event errors
var (
	ErrClubNotFound        = errors.New("club not found")
	ErrDuplicateMembership = errors.New("student is already a member of this club")
	ErrMembershipNotFound  = errors.New("membership not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrEventFull           = errors.New("event is at full capacity")
	ErrDeadlinePassed      = errors.New("registration deadline has passed")
	ErrDuplicateSignup     = errors.New("student is already registered for this event")
)

// Academic errors
var (
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrTeacherNotFound     = errors.New("teacher not found")
	ErrDuplicateEnrollment = errors.New("student already enrolled in this course")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrNotCourseTeacher    = errors.New("you do not teach this course")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrDuplicateSubmission = errors.New("assignment already submitted")
	ErrTimetableNotFound   = errors.New("timetable entry not found")
)

// Staff profile errors
var (
	ErrLibrarianNotFound   = errors.New("librarian not found")
	ErrDuplicateEmployeeID = errors.New("employee id already in use")
)

// Leave errors
var (
	ErrLeaveNotFound        = errors.New("leave application not found")
	ErrLeaveAlreadyReviewed = errors.New("leave application already reviewed")
	ErrInvalidDateRange     = errors.New("end date must be after start date")
)
