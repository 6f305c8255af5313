package repositories

import (
	"context"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// auditRepository implements AuditRepository interface.
// Audit rows are append-only: there are no update or delete methods.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create appends one audit entry
func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List lists audit entries, newest first
func (r *auditRepository) List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.AuditLog{}), offset, limit)
}

// ListByUser lists a user's audit entries
func (r *auditRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{}).Where("user_id = ?", userID)
	return r.list(ctx, query, offset, limit)
}

// ListByAction lists audit entries for one action tag
func (r *auditRepository) ListByAction(ctx context.Context, action string, offset, limit int) ([]*models.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{}).Where("action = ?", action)
	return r.list(ctx, query, offset, limit)
}

func (r *auditRepository) list(ctx context.Context, query *gorm.DB, offset, limit int) ([]*models.AuditLog, int64, error) {
	var entries []*models.AuditLog
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
