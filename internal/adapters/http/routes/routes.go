package routes

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/handlers"
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/config"
	"github.com/LEGENDANISH/UMS/internal/core/domain"
	"github.com/LEGENDANISH/UMS/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto the app
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	academicRepo := repositories.NewAcademicRepository(db)
	libraryRepo := repositories.NewLibraryRepository(db)
	feeRepo := repositories.NewFeeRepository(db)
	clubRepo := repositories.NewClubRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	hostelRepo := repositories.NewHostelRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize services
	auditService := services.NewAuditService(auditRepo, cfg)
	authService := services.NewAuthService(userRepo, auditService, cfg)
	userService := services.NewUserService(userRepo, auditService)
	academicService := services.NewAcademicService(academicRepo, userRepo, auditService)
	assignmentService := services.NewAssignmentService(academicRepo, userRepo, auditService)
	libraryService := services.NewLibraryService(libraryRepo, userRepo, auditService)
	feeService := services.NewFeeService(feeRepo, userRepo, auditService)
	clubService := services.NewClubService(clubRepo, userRepo, auditService)
	eventService := services.NewEventService(eventRepo, clubRepo, userRepo, auditService)
	hostelService := services.NewHostelService(hostelRepo, userRepo, auditService)
	leaveService := services.NewLeaveService(leaveRepo, auditService)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	academicHandler := handlers.NewAcademicHandler(academicService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	libraryHandler := handlers.NewLibraryHandler(libraryService)
	feeHandler := handlers.NewFeeHandler(feeService)
	clubHandler := handlers.NewClubHandler(clubService)
	eventHandler := handlers.NewEventHandler(eventService)
	hostelHandler := handlers.NewHostelHandler(hostelService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	auth := middleware.AuthMiddleware(cfg, authService)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/student/login", middleware.AuthRateLimiter(), authHandler.StudentLogin)
	authRoutes.Post("/admin/login", middleware.AuthRateLimiter(), authHandler.AdminLogin)
	authRoutes.Get("/me", auth, authHandler.Me)
	authRoutes.Post("/change-password", auth, authHandler.ChangePassword)

	// User management routes (ADMIN)
	userRoutes := apiV1.Group("/users", auth, middleware.AdminOnly())
	userRoutes.Get("/", userHandler.List)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Put("/:id", userHandler.Update)
	userRoutes.Delete("/:id", userHandler.Deactivate)

	// Student profile routes
	studentRoutes := apiV1.Group("/students", auth)
	studentRoutes.Get("/", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManagement, domain.RoleTeacher, domain.RoleLibrarian), userHandler.ListStudents)
	studentRoutes.Get("/:id", userHandler.GetStudent)
	studentRoutes.Put("/:id", userHandler.UpdateStudent)
	studentRoutes.Get("/:id/enrollments", academicHandler.ListStudentEnrollments)
	studentRoutes.Get("/:id/attendance", academicHandler.ListStudentAttendance)
	studentRoutes.Get("/:id/grades", academicHandler.ListStudentGrades)
	studentRoutes.Get("/:id/submissions", assignmentHandler.ListStudentSubmissions)
	studentRoutes.Get("/:id/borrows", libraryHandler.ListStudentBorrows)
	studentRoutes.Get("/:id/fees", feeHandler.ListStudentRecords)
	studentRoutes.Get("/:id/memberships", clubHandler.ListStudentMemberships)
	studentRoutes.Get("/:id/participations", eventHandler.ListStudentParticipations)
	studentRoutes.Get("/:id/allocations", hostelHandler.ListStudentAllocations)
	studentRoutes.Get("/:id/leaves", leaveHandler.ListStudentLeaves)

	// Teacher profile routes
	teacherRoutes := apiV1.Group("/teachers", auth)
	teacherRoutes.Get("/", userHandler.ListTeachers)
	teacherRoutes.Get("/:id", userHandler.GetTeacher)
	teacherRoutes.Put("/:id", middleware.StaffOnly(), userHandler.UpdateTeacher)

	// Librarian profile routes (ADMIN and MANAGEMENT)
	librarianRoutes := apiV1.Group("/librarians", auth, middleware.RequireRoles(domain.RoleAdmin, domain.RoleManagement))
	librarianRoutes.Get("/", userHandler.ListLibrarians)
	librarianRoutes.Get("/:id", userHandler.GetLibrarian)
	librarianRoutes.Put("/:id", userHandler.UpdateLibrarian)

	// Department routes (ADMIN writes, any authenticated reads)
	deptRoutes := apiV1.Group("/departments", auth)
	deptRoutes.Get("/", academicHandler.ListDepartments)
	deptRoutes.Get("/:id", academicHandler.GetDepartment)
	deptRoutes.Post("/", middleware.AdminOnly(), academicHandler.CreateDepartment)
	deptRoutes.Put("/:id", middleware.AdminOnly(), academicHandler.UpdateDepartment)
	deptRoutes.Delete("/:id", middleware.AdminOnly(), academicHandler.DeleteDepartment)

	// Course routes
	courseRoutes := apiV1.Group("/courses", auth)
	courseRoutes.Get("/", academicHandler.ListCourses)
	courseRoutes.Get("/:id", academicHandler.GetCourse)
	courseRoutes.Get("/:id/attendance", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManagement, domain.RoleTeacher), academicHandler.ListCourseAttendance)
	courseRoutes.Get("/:id/timetables", academicHandler.ListCourseTimetables)
	courseRoutes.Post("/", middleware.AdminOnly(), academicHandler.CreateCourse)
	courseRoutes.Put("/:id", middleware.AdminOnly(), academicHandler.UpdateCourse)
	courseRoutes.Delete("/:id", middleware.AdminOnly(), academicHandler.DeleteCourse)

	// Enrollment routes
	enrollmentRoutes := apiV1.Group("/enrollments", auth)
	enrollmentRoutes.Post("/", academicHandler.Enroll)
	enrollmentRoutes.Get("/", middleware.StaffOnly(), academicHandler.ListEnrollments)
	enrollmentRoutes.Delete("/:id", academicHandler.Unenroll)

	// Attendance & grade routes (TEACHER and staff)
	apiV1.Post("/attendance", auth, middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin), academicHandler.MarkAttendance)
	apiV1.Post("/grades", auth, middleware.RequireRoles(domain.RoleTeacher, domain.RoleAdmin), academicHandler.SubmitGrade)

	// Assignment routes (course teachers write, anyone authenticated reads)
	assignmentRoutes := apiV1.Group("/assignments", auth)
	assignmentRoutes.Get("/", assignmentHandler.List)
	assignmentRoutes.Get("/:id", assignmentHandler.Get)
	assignmentRoutes.Get("/:id/submissions", assignmentHandler.ListSubmissions)
	assignmentRoutes.Post("/", middleware.RequireRoles(domain.RoleTeacher), assignmentHandler.Create)
	assignmentRoutes.Put("/:id", middleware.RequireRoles(domain.RoleTeacher), assignmentHandler.Update)
	assignmentRoutes.Delete("/:id", middleware.RequireRoles(domain.RoleTeacher), assignmentHandler.Delete)

	// Submission routes (students submit, course teachers grade)
	apiV1.Post("/submissions", auth, middleware.RequireRoles(domain.RoleStudent), assignmentHandler.Submit)
	apiV1.Put("/submissions/:id", auth, middleware.RequireRoles(domain.RoleTeacher), assignmentHandler.Grade)

	// Timetable routes
	timetableRoutes := apiV1.Group("/timetables", auth)
	timetableRoutes.Get("/", academicHandler.ListTimetables)
	timetableRoutes.Get("/day/:day", academicHandler.ListTimetablesByDay)
	timetableRoutes.Get("/:id", academicHandler.GetTimetable)
	timetableRoutes.Post("/", middleware.RequireRoles(domain.RoleAdmin, domain.RoleTeacher), academicHandler.CreateTimetable)
	timetableRoutes.Put("/:id", middleware.RequireRoles(domain.RoleAdmin, domain.RoleTeacher), academicHandler.UpdateTimetable)
	timetableRoutes.Delete("/:id", middleware.AdminOnly(), academicHandler.DeleteTimetable)

	// Library routes
	bookRoutes := apiV1.Group("/books", auth)
	bookRoutes.Get("/", libraryHandler.ListBooks)
	bookRoutes.Get("/:id", libraryHandler.GetBook)
	bookRoutes.Get("/:id/borrows", middleware.RequireRoles(domain.RoleLibrarian, domain.RoleAdmin), libraryHandler.ListBookBorrows)
	bookRoutes.Post("/", middleware.RequireRoles(domain.RoleLibrarian, domain.RoleAdmin), libraryHandler.CreateBook)
	bookRoutes.Put("/:id", middleware.RequireRoles(domain.RoleLibrarian, domain.RoleAdmin), libraryHandler.UpdateBook)
	bookRoutes.Delete("/:id", middleware.RequireRoles(domain.RoleLibrarian, domain.RoleAdmin), libraryHandler.DeleteBook)

	borrowRoutes := apiV1.Group("/borrows", auth, middleware.RequireRoles(domain.RoleLibrarian, domain.RoleAdmin))
	borrowRoutes.Post("/", libraryHandler.IssueBook)
	borrowRoutes.Get("/", libraryHandler.ListBorrows)
	borrowRoutes.Post("/:id/return", libraryHandler.ReturnBook)

	// Fee routes
	feeRoutes := apiV1.Group("/fees", auth)
	feeRoutes.Get("/:id", feeHandler.GetRecord)
	feeRoutes.Get("/:id/transactions", feeHandler.ListTransactions)
	feeRoutes.Get("/", middleware.StaffOnly(), feeHandler.ListRecords)
	feeRoutes.Post("/", middleware.StaffOnly(), feeHandler.CreateRecord)
	feeRoutes.Put("/:id", middleware.StaffOnly(), feeHandler.UpdateRecord)
	feeRoutes.Post("/pay", middleware.StaffOnly(), feeHandler.Pay)

	// Club routes
	clubRoutes := apiV1.Group("/clubs", auth)
	clubRoutes.Get("/", clubHandler.ListClubs)
	clubRoutes.Get("/:id", clubHandler.GetClub)
	clubRoutes.Get("/:id/members", clubHandler.ListMembers)
	clubRoutes.Post("/join", clubHandler.Join)
	clubRoutes.Post("/", middleware.RequireRoles(domain.RoleAdmin, domain.RoleClubCoordinator), clubHandler.CreateClub)
	clubRoutes.Put("/:id", middleware.RequireRoles(domain.RoleAdmin, domain.RoleClubCoordinator), clubHandler.UpdateClub)
	clubRoutes.Delete("/:id", middleware.AdminOnly(), clubHandler.DeleteClub)
	clubRoutes.Post("/memberships/:id/approve", middleware.RequireRoles(domain.RoleAdmin, domain.RoleClubCoordinator), clubHandler.ApproveMembership)
	clubRoutes.Delete("/memberships/:id", clubHandler.Leave)
	clubRoutes.Get("/:id/budgets", clubHandler.ListClubBudgetEntries)

	// Club budget ledger routes
	budgetRoutes := apiV1.Group("/club-budgets", auth)
	budgetRoutes.Get("/", clubHandler.ListBudgetEntries)
	budgetRoutes.Post("/", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManagement, domain.RoleClubCoordinator), clubHandler.RecordBudgetEntry)

	// Event routes
	eventRoutes := apiV1.Group("/events", auth)
	eventRoutes.Get("/", eventHandler.ListEvents)
	eventRoutes.Get("/:id", eventHandler.GetEvent)
	eventRoutes.Get("/:id/participants", eventHandler.ListParticipants)
	eventRoutes.Post("/register", eventHandler.Register)
	eventRoutes.Post("/", middleware.RequireRoles(domain.RoleAdmin, domain.RoleClubCoordinator), eventHandler.CreateEvent)
	eventRoutes.Put("/:id", middleware.RequireRoles(domain.RoleAdmin, domain.RoleClubCoordinator), eventHandler.UpdateEvent)
	eventRoutes.Delete("/:id", middleware.AdminOnly(), eventHandler.DeleteEvent)
	eventRoutes.Post("/participations/:id/attended", middleware.RequireRoles(domain.RoleAdmin, domain.RoleClubCoordinator), eventHandler.MarkAttended)

	// Hostel routes
	hostelRoutes := apiV1.Group("/hostels", auth)
	hostelRoutes.Get("/", hostelHandler.ListHostels)
	hostelRoutes.Get("/:id", hostelHandler.GetHostel)
	hostelRoutes.Get("/:id/rooms", hostelHandler.ListRooms)
	hostelRoutes.Post("/", middleware.StaffOnly(), hostelHandler.CreateHostel)
	hostelRoutes.Post("/rooms", middleware.StaffOnly(), hostelHandler.CreateRoom)
	hostelRoutes.Post("/allocations", middleware.StaffOnly(), hostelHandler.Allocate)
	hostelRoutes.Post("/allocations/:id/vacate", middleware.StaffOnly(), hostelHandler.Vacate)

	// Leave routes
	leaveRoutes := apiV1.Group("/leaves", auth)
	leaveRoutes.Post("/", leaveHandler.Apply)
	leaveRoutes.Get("/:id", leaveHandler.Get)
	leaveRoutes.Get("/", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManagement, domain.RoleTeacher), leaveHandler.List)
	leaveRoutes.Post("/:id/review", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManagement, domain.RoleTeacher), leaveHandler.Review)

	// Notification routes
	notificationRoutes := apiV1.Group("/notifications", auth)
	notificationRoutes.Get("/", notificationHandler.ListMine)
	notificationRoutes.Post("/", middleware.AdminOnly(), notificationHandler.Send)
	notificationRoutes.Post("/read-all", notificationHandler.MarkAllRead)
	notificationRoutes.Post("/:id/read", notificationHandler.MarkRead)
	notificationRoutes.Delete("/:id", notificationHandler.Delete)

	// Audit routes (ADMIN only, read-only)
	auditRoutes := apiV1.Group("/audit", auth, middleware.AdminOnly())
	auditRoutes.Get("/", auditHandler.List)
	auditRoutes.Get("/users/:id", auditHandler.ListByUser)
}
