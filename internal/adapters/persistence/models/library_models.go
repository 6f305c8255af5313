package models

import (
	"time"
)

// ============================================================
// Library Tables
// ============================================================

// Book statuses
const (
	BookAvailable   = "AVAILABLE"
	BookUnavailable = "UNAVAILABLE"
)

// Book represents books table.
// Invariant: 0 <= available_copies <= total_copies, enforced by the
// conditional updates in the library repository.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Author          string    `gorm:"size:100;not null" json:"author"`
	ISBN            string    `gorm:"uniqueIndex;size:20;not null" json:"isbn"`
	Publisher       string    `gorm:"size:100" json:"publisher,omitempty"`
	PublishedYear   int       `json:"published_year,omitempty"`
	Category        string    `gorm:"size:50;index" json:"category"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	TotalCopies     int       `gorm:"not null" json:"total_copies"`
	AvailableCopies int       `gorm:"not null" json:"available_copies"`
	Status          string    `gorm:"size:20;default:'AVAILABLE'" json:"status"`
	ShelfLocation   string    `gorm:"size:50" json:"shelf_location,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// Borrow statuses
const (
	BorrowBorrowed = "BORROWED"
	BorrowOverdue  = "OVERDUE"
	BorrowReturned = "RETURNED"
)

// BorrowRecord transitions BORROWED -> RETURNED exactly once.
// Active is 1 while the borrow is open and NULL once returned; since NULLs
// never collide in a unique index (MySQL and SQLite alike), the composite
// index allows any number of closed records but at most one open borrow per
// student and book.
type BorrowRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	StudentID  uint       `gorm:"uniqueIndex:uidx_open_borrow;not null" json:"student_id"`
	BookID     uint       `gorm:"uniqueIndex:uidx_open_borrow;not null" json:"book_id"`
	Active     *bool      `gorm:"uniqueIndex:uidx_open_borrow" json:"-"`
	BorrowDate time.Time  `gorm:"autoCreateTime" json:"borrow_date"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	FineAmount float64    `gorm:"type:decimal(10,2);default:0" json:"fine_amount"`
	FinePaid   bool       `gorm:"default:false" json:"fine_paid"`
	Status     string     `gorm:"size:20;default:'BORROWED'" json:"status"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Book    *Book    `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (BorrowRecord) TableName() string {
	return "borrow_records"
}

// IsOpen reports whether the book is still out
func (b *BorrowRecord) IsOpen() bool {
	return b.Status != BorrowReturned
}
