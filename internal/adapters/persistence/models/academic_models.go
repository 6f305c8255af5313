package models

import (
	"time"
)

// ============================================================
// Academic Structure Tables
// ============================================================

// Department groups students, teachers and courses
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Code      string    `gorm:"uniqueIndex;size:10;not null" json:"code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

// Course represents courses table
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Code         string    `gorm:"uniqueIndex;size:20;not null" json:"code"`
	Credits      int       `gorm:"not null" json:"credits"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	DepartmentID uint      `gorm:"index;not null" json:"department_id"`
	TeacherID    *uint     `gorm:"index" json:"teacher_id,omitempty"`
	Semester     int       `json:"semester"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Teacher    *Teacher    `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Enrollment links a student to a course for one semester/year.
// A student enrolls in a course at most once per term.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"uniqueIndex:uidx_enrollment_term;not null" json:"student_id"`
	CourseID  uint      `gorm:"uniqueIndex:uidx_enrollment_term;not null" json:"course_id"`
	Semester  int       `gorm:"uniqueIndex:uidx_enrollment_term" json:"semester"`
	Year      int       `gorm:"uniqueIndex:uidx_enrollment_term" json:"year"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// Attendance statuses
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLate    = "LATE"
)

// Attendance represents one student's attendance for one course on one date
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"uniqueIndex:uidx_attendance_day;not null" json:"student_id"`
	CourseID  uint      `gorm:"uniqueIndex:uidx_attendance_day;not null" json:"course_id"`
	Date      time.Time `gorm:"uniqueIndex:uidx_attendance_day;not null" json:"date"`
	Status    string    `gorm:"size:10;not null" json:"status"`
	MarkedBy  uint      `json:"marked_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// Assignment is coursework posted by the teacher who teaches the course
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CourseID    uint      `gorm:"index;not null" json:"course_id"`
	TeacherID   uint      `gorm:"index;not null" json:"teacher_id"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	TotalMarks  float64   `gorm:"type:decimal(6,2)" json:"total_marks"`
	Attachments []string  `gorm:"serializer:json" json:"attachments,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Course  *Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentSubmission is one student's answer to an assignment; one
// submission per student and assignment
type AssignmentSubmission struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AssignmentID  uint      `gorm:"uniqueIndex:uidx_assignment_submission;not null" json:"assignment_id"`
	StudentID     uint      `gorm:"uniqueIndex:uidx_assignment_submission;not null" json:"student_id"`
	Attachments   []string  `gorm:"serializer:json" json:"attachments,omitempty"`
	Remarks       string    `gorm:"size:255" json:"remarks,omitempty"`
	MarksObtained *float64  `gorm:"type:decimal(6,2)" json:"marks_obtained,omitempty"`
	Feedback      string    `gorm:"type:text" json:"feedback,omitempty"`
	SubmittedAt   time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	Student    *Student    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}

// Timetable is one weekly slot of a course. DayOfWeek runs 0 (Sunday)
// to 6 (Saturday); times are "HH:mm" strings.
type Timetable struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CourseID   uint      `gorm:"index;not null" json:"course_id"`
	DayOfWeek  int       `gorm:"index;not null" json:"day_of_week"`
	StartTime  string    `gorm:"size:5;not null" json:"start_time"`
	EndTime    string    `gorm:"size:5;not null" json:"end_time"`
	RoomNumber string    `gorm:"size:20" json:"room_number,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Timetable) TableName() string {
	return "timetables"
}

// Grade holds the result for one enrollment
type Grade struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EnrollmentID uint      `gorm:"uniqueIndex;not null" json:"enrollment_id"`
	Marks        float64   `gorm:"type:decimal(5,2)" json:"marks"`
	GradeLetter  string    `gorm:"size:2" json:"grade_letter"`
	GradedBy     uint      `json:"graded_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Enrollment *Enrollment `gorm:"foreignKey:EnrollmentID" json:"enrollment,omitempty"`
}

func (Grade) TableName() string {
	return "grades"
}
