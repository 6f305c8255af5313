package repositories

import (
	"context"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
)

// UserRepository defines user and role-profile data access
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *models.User, profile interface{}) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context, role string, isActive *bool, offset, limit int) ([]*models.User, int64, error)

	GetStudentByID(ctx context.Context, id uint) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID uint) (*models.Student, error)
	ListStudents(ctx context.Context, offset, limit int) ([]*models.Student, int64, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	GetTeacherByID(ctx context.Context, id uint) (*models.Teacher, error)
	ListTeachers(ctx context.Context, offset, limit int) ([]*models.Teacher, int64, error)
	UpdateTeacher(ctx context.Context, teacher *models.Teacher) error
	GetLibrarianByID(ctx context.Context, id uint) (*models.Librarian, error)
	ListLibrarians(ctx context.Context, offset, limit int) ([]*models.Librarian, int64, error)
	UpdateLibrarian(ctx context.Context, librarian *models.Librarian) error
}

// AuditRepository defines append-only audit log access
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.AuditLog, int64, error)
	ListByAction(ctx context.Context, action string, offset, limit int) ([]*models.AuditLog, int64, error)
}

// AcademicRepository defines department, course, enrollment, attendance and
// grade data access
type AcademicRepository interface {
	CreateDepartment(ctx context.Context, dept *models.Department) error
	GetDepartmentByID(ctx context.Context, id uint) (*models.Department, error)
	ListDepartments(ctx context.Context) ([]*models.Department, error)
	UpdateDepartment(ctx context.Context, dept *models.Department) error
	DeleteDepartment(ctx context.Context, id uint) error

	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourseByID(ctx context.Context, id uint) (*models.Course, error)
	ListCourses(ctx context.Context, offset, limit int) ([]*models.Course, int64, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id uint) error

	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	GetEnrollmentByID(ctx context.Context, id uint) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, offset, limit int) ([]*models.Enrollment, int64, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID uint) ([]*models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id uint) error

	CreateAttendance(ctx context.Context, att *models.Attendance) error
	ListAttendanceByStudent(ctx context.Context, studentID uint) ([]*models.Attendance, error)
	ListAttendanceByCourse(ctx context.Context, courseID uint, date *time.Time) ([]*models.Attendance, error)

	UpsertGrade(ctx context.Context, grade *models.Grade) error
	ListGradesByStudent(ctx context.Context, studentID uint) ([]*models.Grade, error)

	CreateAssignment(ctx context.Context, assignment *models.Assignment) error
	GetAssignmentByID(ctx context.Context, id uint) (*models.Assignment, error)
	ListAssignments(ctx context.Context, courseID *uint, offset, limit int) ([]*models.Assignment, int64, error)
	UpdateAssignment(ctx context.Context, assignment *models.Assignment) error
	DeleteAssignment(ctx context.Context, id uint) error

	CreateSubmission(ctx context.Context, submission *models.AssignmentSubmission) error
	GetSubmissionByID(ctx context.Context, id uint) (*models.AssignmentSubmission, error)
	UpdateSubmission(ctx context.Context, submission *models.AssignmentSubmission) error
	ListSubmissionsByAssignment(ctx context.Context, assignmentID uint) ([]*models.AssignmentSubmission, error)
	ListSubmissionsByStudent(ctx context.Context, studentID uint) ([]*models.AssignmentSubmission, error)

	CreateTimetable(ctx context.Context, entry *models.Timetable) error
	GetTimetableByID(ctx context.Context, id uint) (*models.Timetable, error)
	ListTimetables(ctx context.Context) ([]*models.Timetable, error)
	ListTimetablesByCourse(ctx context.Context, courseID uint) ([]*models.Timetable, error)
	ListTimetablesByDay(ctx context.Context, dayOfWeek int) ([]*models.Timetable, error)
	UpdateTimetable(ctx context.Context, entry *models.Timetable) error
	DeleteTimetable(ctx context.Context, id uint) error
}

// LibraryRepository defines book and borrow data access. IssueBook and
// ReturnBook are the transactional invariant enforcers for
// available_copies and the one-open-borrow rule.
type LibraryRepository interface {
	CreateBook(ctx context.Context, book *models.Book) error
	GetBookByID(ctx context.Context, id uint) (*models.Book, error)
	ListBooks(ctx context.Context, category string, offset, limit int) ([]*models.Book, int64, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	UpdateBookCopies(ctx context.Context, id uint, totalCopies, availableCopies *int) error
	DeleteBook(ctx context.Context, id uint) error

	IssueBook(ctx context.Context, studentID, bookID uint, dueDate time.Time) (*models.BorrowRecord, error)
	ReturnBook(ctx context.Context, borrowID uint, finePerDay float64) (*models.BorrowRecord, error)
	GetBorrowByID(ctx context.Context, id uint) (*models.BorrowRecord, error)
	ListBorrows(ctx context.Context, offset, limit int) ([]*models.BorrowRecord, int64, error)
	ListBorrowsByStudent(ctx context.Context, studentID uint) ([]*models.BorrowRecord, error)
	ListBorrowsByBook(ctx context.Context, bookID uint) ([]*models.BorrowRecord, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// FeeRepository defines fee record and transaction data access.
// ApplyTransaction is the transactional invariant enforcer for amount_paid.
type FeeRepository interface {
	CreateRecord(ctx context.Context, record *models.FeeRecord) error
	GetRecordByID(ctx context.Context, id uint) (*models.FeeRecord, error)
	ListRecords(ctx context.Context, offset, limit int) ([]*models.FeeRecord, int64, error)
	ListRecordsByStudent(ctx context.Context, studentID uint) ([]*models.FeeRecord, error)
	UpdateRecord(ctx context.Context, record *models.FeeRecord) error
	ApplyTransaction(ctx context.Context, txn *models.FeeTransaction) (*models.FeeRecord, error)
	ListTransactionsByRecord(ctx context.Context, feeRecordID uint) ([]*models.FeeTransaction, error)
	ListRecordsDueBetween(ctx context.Context, from, to time.Time) ([]*models.FeeRecord, error)
}

// ClubRepository defines club and membership data access
type ClubRepository interface {
	CreateClub(ctx context.Context, club *models.Club) error
	GetClubByID(ctx context.Context, id uint) (*models.Club, error)
	ListClubs(ctx context.Context, offset, limit int) ([]*models.Club, int64, error)
	UpdateClub(ctx context.Context, club *models.Club) error
	DeleteClub(ctx context.Context, id uint) error

	CreateMembership(ctx context.Context, membership *models.ClubMembership) error
	GetMembershipByID(ctx context.Context, id uint) (*models.ClubMembership, error)
	UpdateMembership(ctx context.Context, membership *models.ClubMembership) error
	DeleteMembership(ctx context.Context, id uint) error
	ListMembershipsByClub(ctx context.Context, clubID uint) ([]*models.ClubMembership, error)
	ListMembershipsByStudent(ctx context.Context, studentID uint) ([]*models.ClubMembership, error)

	CreateBudgetEntry(ctx context.Context, entry *models.ClubBudget) error
	ListBudgetEntries(ctx context.Context, entryType string, clubID *uint, offset, limit int) ([]*models.ClubBudget, int64, error)
	ListBudgetEntriesByClub(ctx context.Context, clubID uint) ([]*models.ClubBudget, error)
}

// EventRepository defines event and participation data access.
// RegisterParticipant is the transactional invariant enforcer for
// registered_count against max_participants.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventByID(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, status string, offset, limit int) ([]*models.Event, int64, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uint) error

	RegisterParticipant(ctx context.Context, eventID, studentID uint) (*models.EventParticipation, error)
	GetParticipationByID(ctx context.Context, id uint) (*models.EventParticipation, error)
	MarkAttended(ctx context.Context, id uint) (*models.EventParticipation, error)
	ListParticipationsByEvent(ctx context.Context, eventID uint) ([]*models.EventParticipation, error)
	ListParticipationsByStudent(ctx context.Context, studentID uint) ([]*models.EventParticipation, error)
}

// HostelRepository defines hostel, room and allocation data access.
// Allocate and Vacate are the transactional invariant enforcers for
// occupied against capacity and the one-active-allocation rule.
type HostelRepository interface {
	CreateHostel(ctx context.Context, hostel *models.Hostel) error
	GetHostelByID(ctx context.Context, id uint) (*models.Hostel, error)
	ListHostels(ctx context.Context, hostelType string, offset, limit int) ([]*models.Hostel, int64, error)
	UpdateHostel(ctx context.Context, hostel *models.Hostel) error

	CreateRoom(ctx context.Context, room *models.HostelRoom) error
	GetRoomByID(ctx context.Context, id uint) (*models.HostelRoom, error)
	ListRoomsByHostel(ctx context.Context, hostelID uint) ([]*models.HostelRoom, error)

	Allocate(ctx context.Context, roomID, studentID uint) (*models.HostelAllocation, error)
	Vacate(ctx context.Context, allocationID uint) (*models.HostelAllocation, error)
	GetAllocationByID(ctx context.Context, id uint) (*models.HostelAllocation, error)
	ListAllocationsByStudent(ctx context.Context, studentID uint) ([]*models.HostelAllocation, error)
}

// LeaveRepository defines leave application data access
type LeaveRepository interface {
	Create(ctx context.Context, leave *models.LeaveApplication) error
	GetByID(ctx context.Context, id uint) (*models.LeaveApplication, error)
	Update(ctx context.Context, leave *models.LeaveApplication) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.LeaveApplication, int64, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*models.LeaveApplication, error)
}

// NotificationRepository defines notification data access
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByIDForUser(ctx context.Context, id, userID uint) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uint, isRead *bool, offset, limit int) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	Delete(ctx context.Context, id, userID uint) error
}
