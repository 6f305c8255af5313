package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// feeRepository implements FeeRepository interface
type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

// CreateRecord creates a new fee record with nothing paid
func (r *feeRepository) CreateRecord(ctx context.Context, record *models.FeeRecord) error {
	record.AmountPaid = 0
	record.Status = models.FeePending
	return r.db.WithContext(ctx).Create(record).Error
}

// GetRecordByID gets a fee record with its transactions
func (r *feeRepository) GetRecordByID(ctx context.Context, id uint) (*models.FeeRecord, error) {
	var record models.FeeRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Transactions").
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecords lists fee records with pagination
func (r *feeRepository) ListRecords(ctx context.Context, offset, limit int) ([]*models.FeeRecord, int64, error) {
	var records []*models.FeeRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.FeeRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Transactions").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListRecordsByStudent lists a student's fee records
func (r *feeRepository) ListRecordsByStudent(ctx context.Context, studentID uint) ([]*models.FeeRecord, error) {
	var records []*models.FeeRecord
	err := r.db.WithContext(ctx).
		Preload("Transactions").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// UpdateRecord updates the mutable fields of a fee record.
// amount_paid is deliberately not touched here; it only moves through
// ApplyTransaction.
func (r *feeRepository) UpdateRecord(ctx context.Context, record *models.FeeRecord) error {
	return r.db.WithContext(ctx).Model(&models.FeeRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"total_amount": record.TotalAmount,
			"due_date":     record.DueDate,
			"status":       record.Status,
		}).Error
}

// ApplyTransaction records a payment and advances amount_paid, atomically.
// The advance is a single conditional update that refuses to push
// amount_paid past total_amount, so concurrent payments cannot overshoot.
// The derived status is recomputed from the post-update row.
func (r *feeRepository) ApplyTransaction(ctx context.Context, txn *models.FeeTransaction) (*models.FeeRecord, error) {
	var record models.FeeRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.FeeRecord{}).
			Where("id = ? AND amount_paid + ? <= total_amount", txn.FeeRecordID, txn.Amount).
			Update("amount_paid", gorm.Expr("amount_paid + ?", txn.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.FeeRecord{}).Where("id = ?", txn.FeeRecordID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrFeeRecordNotFound
			}
			return domain.ErrBalanceExceeded
		}

		if err := tx.Create(txn).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateReceipt
			}
			return err
		}

		if err := tx.Where("id = ?", txn.FeeRecordID).First(&record).Error; err != nil {
			return err
		}
		record.Status = record.DeriveStatus()
		return tx.Model(&models.FeeRecord{}).
			Where("id = ?", record.ID).
			Update("status", record.Status).Error
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// ListTransactionsByRecord lists the transactions of one fee record
func (r *feeRepository) ListTransactionsByRecord(ctx context.Context, feeRecordID uint) ([]*models.FeeTransaction, error) {
	var txns []*models.FeeTransaction
	err := r.db.WithContext(ctx).
		Where("fee_record_id = ?", feeRecordID).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}

// ListRecordsDueBetween lists unpaid records with a due date in the window.
// Used by the daily fee reminder sweep.
func (r *feeRepository) ListRecordsDueBetween(ctx context.Context, from, to time.Time) ([]*models.FeeRecord, error) {
	var records []*models.FeeRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("status <> ? AND due_date BETWEEN ? AND ?", models.FeePaid, from, to).
		Find(&records).Error
	return records, err
}
