package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Identity Tables
// ============================================================

// User represents users table. A user owns exactly one role profile
// (Student/Teacher/Admin/Librarian) once registration completes.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;not null" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time     `json:"last_login,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Student   *Student   `gorm:"foreignKey:UserID" json:"student,omitempty"`
	Teacher   *Teacher   `gorm:"foreignKey:UserID" json:"teacher,omitempty"`
	Admin     *Admin     `gorm:"foreignKey:UserID" json:"admin,omitempty"`
	Librarian *Librarian `gorm:"foreignKey:UserID" json:"librarian,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO - never carries the password hash
type UserResponse struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Student   *Student   `json:"student,omitempty"`
	Teacher   *Teacher   `json:"teacher,omitempty"`
	Admin     *Admin     `json:"admin,omitempty"`
	Librarian *Librarian `json:"librarian,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		Student:   u.Student,
		Teacher:   u.Teacher,
		Admin:     u.Admin,
		Librarian: u.Librarian,
	}
}

// Student profile, owned 1:1 by a User
type Student struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName       string     `gorm:"size:50;not null" json:"first_name"`
	LastName        string     `gorm:"size:50;not null" json:"last_name"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	Gender          string     `gorm:"size:10" json:"gender"`
	Phone           string     `gorm:"size:20" json:"phone"`
	Address         string     `gorm:"size:255" json:"address,omitempty"`
	RollNumber      string     `gorm:"uniqueIndex;size:20;not null" json:"roll_number"`
	AdmissionDate   time.Time  `gorm:"autoCreateTime" json:"admission_date"`
	DepartmentID    *uint      `gorm:"index" json:"department_id,omitempty"`
	CurrentSemester int        `json:"current_semester"`
	CurrentYear     int        `json:"current_year"`
	CGPA            float64    `gorm:"type:decimal(4,2);default:0" json:"cgpa"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

// Teacher profile, owned 1:1 by a User
type Teacher struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName      string     `gorm:"size:50;not null" json:"first_name"`
	LastName       string     `gorm:"size:50;not null" json:"last_name"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Gender         string     `gorm:"size:10" json:"gender"`
	Phone          string     `gorm:"size:20" json:"phone"`
	EmployeeID     string     `gorm:"uniqueIndex;size:20;not null" json:"employee_id"`
	JoiningDate    *time.Time `json:"joining_date,omitempty"`
	Qualification  string     `gorm:"size:100" json:"qualification"`
	Specialization string     `gorm:"size:100" json:"specialization,omitempty"`
	DepartmentID   *uint      `gorm:"index" json:"department_id,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// Admin profile, owned 1:1 by a User
type Admin struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName   string    `gorm:"size:50;not null" json:"first_name"`
	LastName    string    `gorm:"size:50;not null" json:"last_name"`
	Phone       string    `gorm:"size:20" json:"phone"`
	Designation string    `gorm:"size:100" json:"designation"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// Librarian profile, owned 1:1 by a User
type Librarian struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName  string    `gorm:"size:50;not null" json:"first_name"`
	LastName   string    `gorm:"size:50;not null" json:"last_name"`
	Phone      string    `gorm:"size:20" json:"phone"`
	EmployeeID string    `gorm:"uniqueIndex;size:20;not null" json:"employee_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Librarian) TableName() string {
	return "librarians"
}

// AuditLog is append-only: rows are created by the application and never
// updated or deleted, so it carries no update/soft-delete columns.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Action    string    `gorm:"size:20;index;not null" json:"action"`
	Entity    string    `gorm:"size:50;not null" json:"entity"`
	EntityID  uint      `json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details,omitempty"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
