package repositories

import (
	"context"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// leaveRepository implements LeaveRepository interface
type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, leave *models.LeaveApplication) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *leaveRepository) GetByID(ctx context.Context, id uint) (*models.LeaveApplication, error) {
	var leave models.LeaveApplication
	err := r.db.WithContext(ctx).Preload("Student").Where("id = ?", id).First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) Update(ctx context.Context, leave *models.LeaveApplication) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

func (r *leaveRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.LeaveApplication, int64, error) {
	var leaves []*models.LeaveApplication
	var total int64

	query := r.db.WithContext(ctx).Model(&models.LeaveApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Student").
		Order("applied_at DESC").
		Offset(offset).Limit(limit).
		Find(&leaves).Error
	if err != nil {
		return nil, 0, err
	}

	return leaves, total, nil
}

func (r *leaveRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.LeaveApplication, error) {
	var leaves []*models.LeaveApplication
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&leaves).Error
	return leaves, err
}
