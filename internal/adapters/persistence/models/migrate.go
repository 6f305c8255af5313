package models

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates all application tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Student{},
		&Teacher{},
		&Admin{},
		&Librarian{},
		&AuditLog{},
		&Department{},
		&Course{},
		&Enrollment{},
		&Attendance{},
		&Grade{},
		&Assignment{},
		&AssignmentSubmission{},
		&Timetable{},
		&Book{},
		&BorrowRecord{},
		&FeeRecord{},
		&FeeTransaction{},
		&Club{},
		&ClubMembership{},
		&ClubBudget{},
		&Event{},
		&EventParticipation{},
		&Hostel{},
		&HostelRoom{},
		&HostelAllocation{},
		&LeaveApplication{},
		&Notification{},
	)
}
