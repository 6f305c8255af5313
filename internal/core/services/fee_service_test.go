package services

import (
	"context"
	"testing"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeeService(t *testing.T) (*FeeService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewFeeService(
		repositories.NewFeeRepository(db),
		repositories.NewUserRepository(db),
		newTestAudit(t, db),
	)
	return svc, db
}

func createTestFeeRecord(t *testing.T, svc *FeeService, studentID uint, total float64) *models.FeeRecord {
	t.Helper()
	record, err := svc.CreateRecord(context.Background(), &FeeRecordInput{
		StudentID:   studentID,
		Semester:    1,
		Year:        2026,
		TotalAmount: total,
		DueDate:     time.Now().AddDate(0, 1, 0),
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	return record
}

func TestCreateFeeRecord(t *testing.T) {
	svc, db := newFeeService(t)

	_, student := createTestStudent(t, db, "payer@ums.com", "CS2024030")
	record := createTestFeeRecord(t, svc, student.ID, 50000)

	assert.Equal(t, models.FeePending, record.Status)
	assert.Zero(t, record.AmountPaid)

	_, err := svc.CreateRecord(context.Background(), &FeeRecordInput{
		StudentID:   999,
		Semester:    1,
		Year:        2026,
		TotalAmount: 50000,
		DueDate:     time.Now(),
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrStudentNotFound)
}

func TestPayAdvancesStatus(t *testing.T) {
	svc, db := newFeeService(t)
	ctx := context.Background()

	_, student := createTestStudent(t, db, "partial@ums.com", "CS2024031")
	record := createTestFeeRecord(t, svc, student.ID, 1000)

	record, txn, err := svc.Pay(ctx, &PaymentInput{
		FeeRecordID:   record.ID,
		Amount:        400,
		PaymentMethod: "UPI",
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.FeePartiallyPaid, record.Status)
	assert.Equal(t, float64(400), record.AmountPaid)
	assert.Contains(t, txn.ReceiptNumber, "RCPT-")

	record, _, err = svc.Pay(ctx, &PaymentInput{
		FeeRecordID:   record.ID,
		Amount:        600,
		PaymentMethod: "CASH",
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.FeePaid, record.Status)
	assert.Zero(t, record.Balance())
}

func TestPayOverBalanceRejected(t *testing.T) {
	svc, db := newFeeService(t)
	ctx := context.Background()

	_, student := createTestStudent(t, db, "over@ums.com", "CS2024032")
	record := createTestFeeRecord(t, svc, student.ID, 1000)

	_, _, err := svc.Pay(ctx, &PaymentInput{
		FeeRecordID:   record.ID,
		Amount:        1001,
		PaymentMethod: "UPI",
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrBalanceExceeded)

	// Nothing paid, no transaction recorded
	after, err := svc.GetRecord(ctx, record.ID, adminIdentity())
	require.NoError(t, err)
	assert.Zero(t, after.AmountPaid)
	assert.Empty(t, after.Transactions)
}

func TestPayRemainingBalanceOnly(t *testing.T) {
	svc, db := newFeeService(t)
	ctx := context.Background()

	_, student := createTestStudent(t, db, "remain@ums.com", "CS2024033")
	record := createTestFeeRecord(t, svc, student.ID, 1000)

	_, _, err := svc.Pay(ctx, &PaymentInput{FeeRecordID: record.ID, Amount: 900, PaymentMethod: "UPI"}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, _, err = svc.Pay(ctx, &PaymentInput{FeeRecordID: record.ID, Amount: 200, PaymentMethod: "UPI"}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrBalanceExceeded)

	_, _, err = svc.Pay(ctx, &PaymentInput{FeeRecordID: record.ID, Amount: 100, PaymentMethod: "UPI"}, adminIdentity(), "127.0.0.1")
	assert.NoError(t, err)
}

func TestPayUnknownRecord(t *testing.T) {
	svc, _ := newFeeService(t)

	_, _, err := svc.Pay(context.Background(), &PaymentInput{
		FeeRecordID:   999,
		Amount:        100,
		PaymentMethod: "UPI",
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrFeeRecordNotFound)
}

func TestUpdateRecordCannotUndercutPaid(t *testing.T) {
	svc, db := newFeeService(t)
	ctx := context.Background()

	_, student := createTestStudent(t, db, "undercut@ums.com", "CS2024034")
	record := createTestFeeRecord(t, svc, student.ID, 1000)

	_, _, err := svc.Pay(ctx, &PaymentInput{FeeRecordID: record.ID, Amount: 500, PaymentMethod: "UPI"}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	below := 400.0
	_, err = svc.UpdateRecord(ctx, record.ID, &FeeRecordUpdateInput{TotalAmount: &below}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Lowering total to exactly what was paid settles the record
	exact := 500.0
	updated, err := svc.UpdateRecord(ctx, record.ID, &FeeRecordUpdateInput{TotalAmount: &exact}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.FeePaid, updated.Status)
}

func TestFeeRecordAccess(t *testing.T) {
	svc, db := newFeeService(t)
	ctx := context.Background()

	ownerUser, owner := createTestStudent(t, db, "feeowner@ums.com", "CS2024035")
	otherUser, other := createTestStudent(t, db, "feeother@ums.com", "CS2024036")
	record := createTestFeeRecord(t, svc, owner.ID, 1000)

	_, err := svc.GetRecord(ctx, record.ID, studentIdentity(otherUser, other))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetRecord(ctx, record.ID, studentIdentity(ownerUser, owner))
	assert.NoError(t, err)

	_, err = svc.ListTransactions(ctx, record.ID, studentIdentity(otherUser, other))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
