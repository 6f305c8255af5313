package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeService handles fee records and payments
type FeeService struct {
	feeRepo  repositories.FeeRepository
	userRepo repositories.UserRepository
	audit    *AuditService
}

// NewFeeService creates a new fee service
func NewFeeService(feeRepo repositories.FeeRepository, userRepo repositories.UserRepository, audit *AuditService) *FeeService {
	return &FeeService{
		feeRepo:  feeRepo,
		userRepo: userRepo,
		audit:    audit,
	}
}

// FeeRecordInput represents fee record create input
type FeeRecordInput struct {
	StudentID   uint      `json:"student_id" validate:"required"`
	Semester    int       `json:"semester" validate:"required"`
	Year        int       `json:"year" validate:"required"`
	TotalAmount float64   `json:"total_amount" validate:"required,gt=0"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// CreateRecord opens a fee record for a student
func (s *FeeService) CreateRecord(ctx context.Context, input *FeeRecordInput, actor *domain.Identity, sourceIP string) (*models.FeeRecord, error) {
	if input.TotalAmount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.userRepo.GetStudentByID(ctx, input.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	record := &models.FeeRecord{
		StudentID:   input.StudentID,
		Semester:    input.Semester,
		Year:        input.Year,
		TotalAmount: input.TotalAmount,
		DueDate:     input.DueDate,
		Status:      models.FeePending,
	}
	if err := s.feeRepo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "FeeRecord", record.ID,
		map[string]interface{}{"student_id": input.StudentID, "total_amount": input.TotalAmount}, sourceIP); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecord gets a fee record. Students may only see their own.
func (s *FeeService) GetRecord(ctx context.Context, id uint, actor *domain.Identity) (*models.FeeRecord, error) {
	record, err := s.feeRepo.GetRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFeeRecordNotFound
		}
		return nil, err
	}
	if !actor.CanAccessStudent(record.StudentID) {
		return nil, domain.ErrForbidden
	}
	return record, nil
}

// ListRecords lists all fee records
func (s *FeeService) ListRecords(ctx context.Context, offset, limit int) ([]*models.FeeRecord, int64, error) {
	return s.feeRepo.ListRecords(ctx, offset, limit)
}

// ListRecordsByStudent lists a student's fee records
func (s *FeeService) ListRecordsByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.FeeRecord, error) {
	if !actor.CanAccessStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.feeRepo.ListRecordsByStudent(ctx, studentID)
}

// FeeRecordUpdateInput represents fee record update input. Payment state is
// deliberately absent: amount_paid only moves through Pay.
type FeeRecordUpdateInput struct {
	TotalAmount *float64   `json:"total_amount,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateRecord patches a fee record's terms
func (s *FeeService) UpdateRecord(ctx context.Context, id uint, input *FeeRecordUpdateInput, actor *domain.Identity, sourceIP string) (*models.FeeRecord, error) {
	record, err := s.feeRepo.GetRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFeeRecordNotFound
		}
		return nil, err
	}

	if input.TotalAmount != nil {
		if *input.TotalAmount < record.AmountPaid {
			return nil, domain.ErrInvalidInput
		}
		record.TotalAmount = *input.TotalAmount
	}
	if input.DueDate != nil {
		record.DueDate = *input.DueDate
	}
	record.Status = record.DeriveStatus()

	if err := s.feeRepo.UpdateRecord(ctx, record); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionUpdate, "FeeRecord", record.ID, input, sourceIP); err != nil {
		return nil, err
	}
	return record, nil
}

// PaymentInput represents a payment against a fee record
type PaymentInput struct {
	FeeRecordID    uint    `json:"fee_record_id" validate:"required"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod  string  `json:"payment_method" validate:"required"`
	TransactionRef *string `json:"transaction_ref,omitempty"`
	Remarks        string  `json:"remarks,omitempty"`
}

// Pay applies a payment. The balance ceiling is enforced atomically by the
// repository; each accepted payment gets a generated receipt number.
func (s *FeeService) Pay(ctx context.Context, input *PaymentInput, actor *domain.Identity, sourceIP string) (*models.FeeRecord, *models.FeeTransaction, error) {
	if input.Amount <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}

	txn := &models.FeeTransaction{
		FeeRecordID:    input.FeeRecordID,
		Amount:         input.Amount,
		PaymentMethod:  input.PaymentMethod,
		TransactionRef: input.TransactionRef,
		ReceiptNumber:  newReceiptNumber(),
		Remarks:        input.Remarks,
	}

	record, err := s.feeRepo.ApplyTransaction(ctx, txn)
	if err != nil {
		return nil, nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionPayment, "FeeTransaction", txn.ID,
		map[string]interface{}{"fee_record_id": input.FeeRecordID, "amount": input.Amount, "receipt": txn.ReceiptNumber}, sourceIP); err != nil {
		return nil, nil, err
	}

	log.Printf("💰 Payment of %.2f applied to fee record %d (receipt %s)", input.Amount, input.FeeRecordID, txn.ReceiptNumber)
	return record, txn, nil
}

// ListTransactions lists the payments against a fee record
func (s *FeeService) ListTransactions(ctx context.Context, feeRecordID uint, actor *domain.Identity) ([]*models.FeeTransaction, error) {
	if _, err := s.GetRecord(ctx, feeRecordID, actor); err != nil {
		return nil, err
	}
	return s.feeRepo.ListTransactionsByRecord(ctx, feeRecordID)
}

// newReceiptNumber mints a unique receipt identifier
func newReceiptNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("RCPT-%s", id[:16])
}
