package services

import (
	"context"
	"errors"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// ClubService handles clubs and memberships
type ClubService struct {
	clubRepo repositories.ClubRepository
	userRepo repositories.UserRepository
	audit    *AuditService
}

// NewClubService creates a new club service
func NewClubService(clubRepo repositories.ClubRepository, userRepo repositories.UserRepository, audit *AuditService) *ClubService {
	return &ClubService{
		clubRepo: clubRepo,
		userRepo: userRepo,
		audit:    audit,
	}
}

// ClubInput represents club create/update input
type ClubInput struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description,omitempty"`
	CoordinatorID *uint  `json:"coordinator_id,omitempty"`
}

// CreateClub registers a club
func (s *ClubService) CreateClub(ctx context.Context, input *ClubInput, actor *domain.Identity, sourceIP string) (*models.Club, error) {
	if input.CoordinatorID != nil {
		if _, err := s.userRepo.GetTeacherByID(ctx, *input.CoordinatorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrTeacherNotFound
			}
			return nil, err
		}
	}

	club := &models.Club{
		Name:          input.Name,
		Description:   input.Description,
		CoordinatorID: input.CoordinatorID,
	}
	if err := s.clubRepo.CreateClub(ctx, club); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "Club", club.ID, nil, sourceIP); err != nil {
		return nil, err
	}
	return club, nil
}

// GetClub gets a club by ID
func (s *ClubService) GetClub(ctx context.Context, id uint) (*models.Club, error) {
	club, err := s.clubRepo.GetClubByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}

// ListClubs lists clubs with pagination
func (s *ClubService) ListClubs(ctx context.Context, offset, limit int) ([]*models.Club, int64, error) {
	return s.clubRepo.ListClubs(ctx, offset, limit)
}

// UpdateClub patches a club
func (s *ClubService) UpdateClub(ctx context.Context, id uint, input *ClubInput, actor *domain.Identity, sourceIP string) (*models.Club, error) {
	club, err := s.GetClub(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		club.Name = input.Name
	}
	if input.Description != "" {
		club.Description = input.Description
	}
	if input.CoordinatorID != nil {
		if _, err := s.userRepo.GetTeacherByID(ctx, *input.CoordinatorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrTeacherNotFound
			}
			return nil, err
		}
		club.CoordinatorID = input.CoordinatorID
	}

	if err := s.clubRepo.UpdateClub(ctx, club); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "Club", club.ID, input, sourceIP); err != nil {
		return nil, err
	}
	return club, nil
}

// DeleteClub removes a club
func (s *ClubService) DeleteClub(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) error {
	if err := s.clubRepo.DeleteClub(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrClubNotFound
		}
		return err
	}
	return s.audit.Record(ctx, &actor.UserID, ActionDelete, "Club", id, nil, sourceIP)
}

// JoinInput represents a membership request
type JoinInput struct {
	ClubID    uint   `json:"club_id" validate:"required"`
	StudentID uint   `json:"student_id" validate:"required"`
	Role      string `json:"role,omitempty"`
}

// Join creates a pending membership. Students may only join as themselves.
func (s *ClubService) Join(ctx context.Context, input *JoinInput, actor *domain.Identity, sourceIP string) (*models.ClubMembership, error) {
	if actor.Role == domain.RoleStudent && !actor.OwnsStudent(input.StudentID) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.GetClub(ctx, input.ClubID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetStudentByID(ctx, input.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = "MEMBER"
	}
	membership := &models.ClubMembership{
		ClubID:    input.ClubID,
		StudentID: input.StudentID,
		Role:      role,
		Status:    models.MembershipPending,
	}
	if err := s.clubRepo.CreateMembership(ctx, membership); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateMembership
		}
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "ClubMembership", membership.ID,
		map[string]uint{"club_id": input.ClubID, "student_id": input.StudentID}, sourceIP); err != nil {
		return nil, err
	}
	return membership, nil
}

// ApproveMembership flips a pending membership to active
func (s *ClubService) ApproveMembership(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) (*models.ClubMembership, error) {
	membership, err := s.clubRepo.GetMembershipByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}

	membership.Status = models.MembershipActive
	if err := s.clubRepo.UpdateMembership(ctx, membership); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "ClubMembership", membership.ID,
		map[string]string{"status": membership.Status}, sourceIP); err != nil {
		return nil, err
	}
	return membership, nil
}

// Leave removes a membership. Students may only remove their own.
func (s *ClubService) Leave(ctx context.Context, id uint, actor *domain.Identity, sourceIP string) error {
	membership, err := s.clubRepo.GetMembershipByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMembershipNotFound
		}
		return err
	}
	if actor.Role == domain.RoleStudent && !actor.OwnsStudent(membership.StudentID) {
		return domain.ErrForbidden
	}

	if err := s.clubRepo.DeleteMembership(ctx, id); err != nil {
		return err
	}
	return s.audit.Record(ctx, &actor.UserID, ActionDelete, "ClubMembership", id, nil, sourceIP)
}

// ListMembers lists a club's memberships
func (s *ClubService) ListMembers(ctx context.Context, clubID uint) ([]*models.ClubMembership, error) {
	if _, err := s.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.clubRepo.ListMembershipsByClub(ctx, clubID)
}

// ListMembershipsByStudent lists a student's club memberships
func (s *ClubService) ListMembershipsByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.ClubMembership, error) {
	if !actor.CanAccessStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.clubRepo.ListMembershipsByStudent(ctx, studentID)
}

// BudgetInput represents one ledger entry
type BudgetInput struct {
	ClubID      uint    `json:"club_id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required"`
	Category    string  `json:"category,omitempty"`
}

// RecordBudgetEntry appends an income or expense to a club's ledger.
// The transaction date is stamped server-side.
func (s *ClubService) RecordBudgetEntry(ctx context.Context, input *BudgetInput, actor *domain.Identity, sourceIP string) (*models.ClubBudget, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	switch input.Type {
	case models.BudgetIncome, models.BudgetExpense:
	default:
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.GetClub(ctx, input.ClubID); err != nil {
		return nil, err
	}

	entry := &models.ClubBudget{
		ClubID:      input.ClubID,
		Title:       input.Title,
		Description: input.Description,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
	}
	if err := s.clubRepo.CreateBudgetEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "ClubBudget", entry.ID,
		map[string]interface{}{"club_id": input.ClubID, "type": input.Type, "amount": input.Amount}, sourceIP); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListBudgetEntries lists ledger entries, optionally filtered by type
// and club
func (s *ClubService) ListBudgetEntries(ctx context.Context, entryType string, clubID *uint, offset, limit int) ([]*models.ClubBudget, int64, error) {
	if entryType != "" && entryType != models.BudgetIncome && entryType != models.BudgetExpense {
		return nil, 0, domain.ErrInvalidInput
	}
	return s.clubRepo.ListBudgetEntries(ctx, entryType, clubID, offset, limit)
}

// ListBudgetEntriesByClub lists one club's full ledger
func (s *ClubService) ListBudgetEntriesByClub(ctx context.Context, clubID uint) ([]*models.ClubBudget, error) {
	if _, err := s.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.clubRepo.ListBudgetEntriesByClub(ctx, clubID)
}
