package services

import (
	"context"
	"errors"
	"log"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// HostelService handles hostels, rooms and allocations
type HostelService struct {
	hostelRepo repositories.HostelRepository
	userRepo   repositories.UserRepository
	audit      *AuditService
}

// NewHostelService creates a new hostel service
func NewHostelService(hostelRepo repositories.HostelRepository, userRepo repositories.UserRepository, audit *AuditService) *HostelService {
	return &HostelService{
		hostelRepo: hostelRepo,
		userRepo:   userRepo,
		audit:      audit,
	}
}

// HostelInput represents hostel create input
type HostelInput struct {
	Name       string `json:"name" validate:"required"`
	Type       string `json:"type"`
	TotalRooms int    `json:"total_rooms"`
	Warden     string `json:"warden,omitempty"`
}

// CreateHostel registers a hostel building
func (s *HostelService) CreateHostel(ctx context.Context, input *HostelInput, actor *domain.Identity, sourceIP string) (*models.Hostel, error) {
	hostel := &models.Hostel{
		Name:       input.Name,
		Type:       input.Type,
		TotalRooms: input.TotalRooms,
		Warden:     input.Warden,
	}
	if err := s.hostelRepo.CreateHostel(ctx, hostel); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "Hostel", hostel.ID, nil, sourceIP); err != nil {
		return nil, err
	}
	return hostel, nil
}

// GetHostel gets a hostel with its rooms
func (s *HostelService) GetHostel(ctx context.Context, id uint) (*models.Hostel, error) {
	hostel, err := s.hostelRepo.GetHostelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return hostel, nil
}

// ListHostels lists hostels, optionally filtered by type
func (s *HostelService) ListHostels(ctx context.Context, hostelType string, offset, limit int) ([]*models.Hostel, int64, error) {
	return s.hostelRepo.ListHostels(ctx, hostelType, offset, limit)
}

// RoomInput represents room create input
type RoomInput struct {
	HostelID       uint    `json:"hostel_id" validate:"required"`
	RoomNumber     string  `json:"room_number" validate:"required"`
	Capacity       int     `json:"capacity" validate:"required,min=1"`
	FeePerSemester float64 `json:"fee_per_semester"`
}

// CreateRoom adds a room to a hostel
func (s *HostelService) CreateRoom(ctx context.Context, input *RoomInput, actor *domain.Identity, sourceIP string) (*models.HostelRoom, error) {
	if input.Capacity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.GetHostel(ctx, input.HostelID); err != nil {
		return nil, err
	}

	room := &models.HostelRoom{
		HostelID:       input.HostelID,
		RoomNumber:     input.RoomNumber,
		Capacity:       input.Capacity,
		FeePerSemester: input.FeePerSemester,
	}
	if err := s.hostelRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "HostelRoom", room.ID, nil, sourceIP); err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms lists a hostel's rooms
func (s *HostelService) ListRooms(ctx context.Context, hostelID uint) ([]*models.HostelRoom, error) {
	if _, err := s.GetHostel(ctx, hostelID); err != nil {
		return nil, err
	}
	return s.hostelRepo.ListRoomsByHostel(ctx, hostelID)
}

// AllocateInput represents an allocation request
type AllocateInput struct {
	RoomID    uint `json:"room_id" validate:"required"`
	StudentID uint `json:"student_id" validate:"required"`
}

// Allocate houses a student. Room capacity and the one-active-allocation
// rule are enforced atomically by the repository.
func (s *HostelService) Allocate(ctx context.Context, input *AllocateInput, actor *domain.Identity, sourceIP string) (*models.HostelAllocation, error) {
	if _, err := s.userRepo.GetStudentByID(ctx, input.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	allocation, err := s.hostelRepo.Allocate(ctx, input.RoomID, input.StudentID)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionAllocate, "HostelAllocation", allocation.ID,
		map[string]uint{"room_id": input.RoomID, "student_id": input.StudentID}, sourceIP); err != nil {
		return nil, err
	}

	log.Printf("🏠 Student %d allocated to room %d", input.StudentID, input.RoomID)
	return allocation, nil
}

// Vacate closes an allocation and frees the bed
func (s *HostelService) Vacate(ctx context.Context, allocationID uint, actor *domain.Identity, sourceIP string) (*models.HostelAllocation, error) {
	allocation, err := s.hostelRepo.Vacate(ctx, allocationID)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionVacate, "HostelAllocation", allocation.ID, nil, sourceIP); err != nil {
		return nil, err
	}
	return allocation, nil
}

// ListAllocationsByStudent lists a student's allocation history. Students
// may only see their own.
func (s *HostelService) ListAllocationsByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.HostelAllocation, error) {
	if !actor.CanAccessStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.hostelRepo.ListAllocationsByStudent(ctx, studentID)
}
