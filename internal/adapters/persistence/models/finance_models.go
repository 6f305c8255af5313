package models

import (
	"time"
)

// ============================================================
// Fee Tables
// ============================================================

// Fee statuses, derived from amount_paid on every accepted transaction
const (
	FeePending       = "PENDING"
	FeePartiallyPaid = "PARTIALLY_PAID"
	FeePaid          = "PAID"
)

// FeeRecord represents fee_records table.
// amount_paid only ever advances through FeeTransaction creation and can
// never exceed total_amount.
type FeeRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"index;not null" json:"student_id"`
	Semester    int       `json:"semester"`
	Year        int       `json:"year"`
	TotalAmount float64   `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	AmountPaid  float64   `gorm:"type:decimal(10,2);default:0" json:"amount_paid"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `gorm:"size:20;default:'PENDING'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Student      *Student         `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Transactions []FeeTransaction `gorm:"foreignKey:FeeRecordID" json:"transactions,omitempty"`
}

func (FeeRecord) TableName() string {
	return "fee_records"
}

// Balance returns the outstanding amount
func (f *FeeRecord) Balance() float64 {
	return f.TotalAmount - f.AmountPaid
}

// DeriveStatus recomputes the status from amount_paid
func (f *FeeRecord) DeriveStatus() string {
	switch {
	case f.AmountPaid >= f.TotalAmount:
		return FeePaid
	case f.AmountPaid > 0:
		return FeePartiallyPaid
	default:
		return FeePending
	}
}

// FeeTransaction represents fee_transactions table
type FeeTransaction struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FeeRecordID    uint      `gorm:"index;not null" json:"fee_record_id"`
	Amount         float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod  string    `gorm:"size:20;not null" json:"payment_method"`
	TransactionRef *string   `gorm:"uniqueIndex;size:100" json:"transaction_ref,omitempty"`
	ReceiptNumber  string    `gorm:"uniqueIndex;size:50;not null" json:"receipt_number"`
	Remarks        string    `gorm:"size:255" json:"remarks,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FeeTransaction) TableName() string {
	return "fee_transactions"
}
