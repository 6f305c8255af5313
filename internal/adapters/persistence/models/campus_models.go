package models

import (
	"time"
)

// ============================================================
// Club, Event, Hostel, Leave & Notification Tables
// ============================================================

// Club represents clubs table
type Club struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	CoordinatorID *uint     `gorm:"index" json:"coordinator_id,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Coordinator *Teacher `gorm:"foreignKey:CoordinatorID" json:"coordinator,omitempty"`
}

func (Club) TableName() string {
	return "clubs"
}

// Membership statuses
const (
	MembershipPending = "PENDING"
	MembershipActive  = "ACTIVE"
)

// ClubMembership links students to clubs; one membership per pair
type ClubMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClubID    uint      `gorm:"uniqueIndex:uidx_club_member;not null" json:"club_id"`
	StudentID uint      `gorm:"uniqueIndex:uidx_club_member;not null" json:"student_id"`
	Role      string    `gorm:"size:20;default:'MEMBER'" json:"role"`
	Status    string    `gorm:"size:20;default:'PENDING'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Club    *Club    `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (ClubMembership) TableName() string {
	return "club_memberships"
}

// Budget entry types
const (
	BudgetIncome  = "INCOME"
	BudgetExpense = "EXPENSE"
)

// ClubBudget is one money movement in a club's ledger. TransactionDate
// is stamped by the server, never taken from the request.
type ClubBudget struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ClubID          uint      `gorm:"index;not null" json:"club_id"`
	Title           string    `gorm:"size:100;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	Amount          float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type            string    `gorm:"size:10;not null" json:"type"`
	Category        string    `gorm:"size:50" json:"category,omitempty"`
	TransactionDate time.Time `gorm:"autoCreateTime" json:"transaction_date"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Club *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}

func (ClubBudget) TableName() string {
	return "club_budgets"
}

// Event statuses
const (
	EventUpcoming  = "UPCOMING"
	EventCompleted = "COMPLETED"
	EventCancelled = "CANCELLED"
)

// Event represents events table. RegisteredCount is the registration
// counter guarded by the campus repository; max_participants = 0 means
// unlimited.
type Event struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Title                string     `gorm:"size:255;not null" json:"title"`
	Description          string     `gorm:"type:text" json:"description,omitempty"`
	ClubID               *uint      `gorm:"index" json:"club_id,omitempty"`
	EventDate            time.Time  `gorm:"not null" json:"event_date"`
	Venue                string     `gorm:"size:100" json:"venue"`
	MaxParticipants      int        `gorm:"default:0" json:"max_participants"`
	RegisteredCount      int        `gorm:"default:0" json:"registered_count"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	Status               string     `gorm:"size:20;default:'UPCOMING'" json:"status"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Club *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// EventParticipation links students to events; one signup per pair
type EventParticipation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"uniqueIndex:uidx_event_signup;not null" json:"event_id"`
	StudentID uint      `gorm:"uniqueIndex:uidx_event_signup;not null" json:"student_id"`
	Attended  bool      `gorm:"default:false" json:"attended"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Event   *Event   `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (EventParticipation) TableName() string {
	return "event_participations"
}

// Hostel represents hostels table
type Hostel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Type       string    `gorm:"size:20" json:"type"`
	TotalRooms int       `json:"total_rooms"`
	Warden     string    `gorm:"size:100" json:"warden,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Rooms []HostelRoom `gorm:"foreignKey:HostelID" json:"rooms,omitempty"`
}

func (Hostel) TableName() string {
	return "hostels"
}

// HostelRoom represents hostel_rooms table.
// Invariant: occupied <= capacity, enforced by the conditional updates in
// the campus repository.
type HostelRoom struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	HostelID       uint      `gorm:"uniqueIndex:uidx_hostel_room;not null" json:"hostel_id"`
	RoomNumber     string    `gorm:"uniqueIndex:uidx_hostel_room;size:10;not null" json:"room_number"`
	Capacity       int       `gorm:"not null" json:"capacity"`
	Occupied       int       `gorm:"default:0" json:"occupied"`
	FeePerSemester float64   `gorm:"type:decimal(10,2)" json:"fee_per_semester"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HostelRoom) TableName() string {
	return "hostel_rooms"
}

// HostelAllocation gives a student a room until vacated. Active mirrors the
// open-borrow trick: 1 while current, NULL after vacating, so the unique
// index admits at most one active allocation per student.
type HostelAllocation struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RoomID        uint       `gorm:"index;not null" json:"room_id"`
	StudentID     uint       `gorm:"uniqueIndex:uidx_active_allocation;not null" json:"student_id"`
	Active        *bool      `gorm:"uniqueIndex:uidx_active_allocation" json:"-"`
	AllocatedDate time.Time  `gorm:"autoCreateTime" json:"allocated_date"`
	VacatedDate   *time.Time `json:"vacated_date,omitempty"`

	Room    *HostelRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Student *Student    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (HostelAllocation) TableName() string {
	return "hostel_allocations"
}

// Leave statuses
const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

// LeaveApplication represents leave_applications table
type LeaveApplication struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	StudentID  uint       `gorm:"index;not null" json:"student_id"`
	StartDate  time.Time  `gorm:"not null" json:"start_date"`
	EndDate    time.Time  `gorm:"not null" json:"end_date"`
	Reason     string     `gorm:"size:255;not null" json:"reason"`
	Status     string     `gorm:"size:20;default:'PENDING'" json:"status"`
	Remarks    string     `gorm:"size:255" json:"remarks,omitempty"`
	ReviewedBy *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	AppliedAt  time.Time  `gorm:"autoCreateTime" json:"applied_at"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// Notification represents notifications table
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"size:20;default:'GENERAL'" json:"type"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
