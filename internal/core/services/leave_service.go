package services

import (
	"context"
	"errors"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// LeaveService handles leave applications and their review
type LeaveService struct {
	leaveRepo repositories.LeaveRepository
	audit     *AuditService
}

// NewLeaveService creates a new leave service
func NewLeaveService(leaveRepo repositories.LeaveRepository, audit *AuditService) *LeaveService {
	return &LeaveService{leaveRepo: leaveRepo, audit: audit}
}

// LeaveInput represents a leave application
type LeaveInput struct {
	StudentID uint      `json:"student_id" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Reason    string    `json:"reason" validate:"required"`
}

// Apply files a leave application. Students may only apply for themselves.
func (s *LeaveService) Apply(ctx context.Context, input *LeaveInput, actor *domain.Identity, sourceIP string) (*models.LeaveApplication, error) {
	if actor.Role == domain.RoleStudent && !actor.OwnsStudent(input.StudentID) {
		return nil, domain.ErrForbidden
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	leave := &models.LeaveApplication{
		StudentID: input.StudentID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Reason:    input.Reason,
		Status:    models.LeavePending,
	}
	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "LeaveApplication", leave.ID,
		map[string]uint{"student_id": input.StudentID}, sourceIP); err != nil {
		return nil, err
	}
	return leave, nil
}

// Get gets a leave application. Students may only see their own.
func (s *LeaveService) Get(ctx context.Context, id uint, actor *domain.Identity) (*models.LeaveApplication, error) {
	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, err
	}
	if !actor.CanAccessStudent(leave.StudentID) {
		return nil, domain.ErrForbidden
	}
	return leave, nil
}

// List lists leave applications, optionally filtered by status
func (s *LeaveService) List(ctx context.Context, status string, offset, limit int) ([]*models.LeaveApplication, int64, error) {
	return s.leaveRepo.List(ctx, status, offset, limit)
}

// ListByStudent lists a student's leave applications
func (s *LeaveService) ListByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.LeaveApplication, error) {
	if !actor.CanAccessStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.leaveRepo.ListByStudent(ctx, studentID)
}

// ReviewInput represents a review decision
type ReviewInput struct {
	Approve bool   `json:"approve"`
	Remarks string `json:"remarks,omitempty"`
}

// Review decides a pending leave application. An application is reviewed
// at most once.
func (s *LeaveService) Review(ctx context.Context, id uint, input *ReviewInput, actor *domain.Identity, sourceIP string) (*models.LeaveApplication, error) {
	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, err
	}
	if leave.Status != models.LeavePending {
		return nil, domain.ErrLeaveAlreadyReviewed
	}

	now := time.Now()
	if input.Approve {
		leave.Status = models.LeaveApproved
	} else {
		leave.Status = models.LeaveRejected
	}
	leave.Remarks = input.Remarks
	leave.ReviewedBy = &actor.UserID
	leave.ReviewedAt = &now

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "LeaveApplication", leave.ID,
		map[string]string{"status": leave.Status}, sourceIP); err != nil {
		return nil, err
	}
	return leave, nil
}
