package repositories

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// libraryRepository implements LibraryRepository interface
type libraryRepository struct {
	db *gorm.DB
}

// NewLibraryRepository creates a new library repository
func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

// CreateBook creates a new book with all copies available
func (r *libraryRepository) CreateBook(ctx context.Context, book *models.Book) error {
	book.AvailableCopies = book.TotalCopies
	book.Status = models.BookAvailable
	err := r.db.WithContext(ctx).Create(book).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateISBN
	}
	return err
}

// GetBookByID gets a book by ID
func (r *libraryRepository) GetBookByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks lists books, optionally filtered by category
func (r *libraryRepository) ListBooks(ctx context.Context, category string, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Book{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("title ASC").Offset(offset).Limit(limit).Find(&books).Error
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// UpdateBook updates a book's metadata. The copy counters are never
// written here: a Save from a stale read could resurrect a copy that a
// concurrent issue already claimed, so counter changes go through
// UpdateBookCopies instead.
func (r *libraryRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	err := r.db.WithContext(ctx).
		Omit("total_copies", "available_copies").
		Save(book).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateISBN
	}
	return err
}

// UpdateBookCopies adjusts the copy counters with a single conditional
// update, validated against the row's current values rather than a
// stale read. Passing both counters replaces both; passing one keeps
// the other and refuses the change if it would leave more copies
// available than exist in total.
func (r *libraryRepository) UpdateBookCopies(ctx context.Context, id uint, totalCopies, availableCopies *int) error {
	if totalCopies == nil && availableCopies == nil {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Book{})
		values := map[string]interface{}{}

		switch {
		case totalCopies != nil && availableCopies != nil:
			query = query.Where("id = ?", id)
			values["total_copies"] = *totalCopies
			values["available_copies"] = *availableCopies
		case totalCopies != nil:
			query = query.Where("id = ? AND available_copies <= ?", id, *totalCopies)
			values["total_copies"] = *totalCopies
		default:
			query = query.Where("id = ? AND ? <= total_copies", id, *availableCopies)
			values["available_copies"] = *availableCopies
		}

		result := query.Updates(values)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrBookNotFound
			}
			return domain.ErrCopiesOutOfRange
		}

		// Keep the availability status in step with the new counter
		if err := tx.Model(&models.Book{}).
			Where("id = ? AND available_copies = 0", id).
			Update("status", models.BookUnavailable).Error; err != nil {
			return err
		}
		return tx.Model(&models.Book{}).
			Where("id = ? AND available_copies > 0", id).
			Update("status", models.BookAvailable).Error
	})
}

// DeleteBook deletes a book
func (r *libraryRepository) DeleteBook(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IssueBook creates an open borrow record and takes one copy, atomically.
// The copy is claimed with a single conditional update so two concurrent
// issues can never both succeed on the last copy, and the open-borrow
// unique index rejects a second open record for the same student and book.
func (r *libraryRepository) IssueBook(ctx context.Context, studentID, bookID uint, dueDate time.Time) (*models.BorrowRecord, error) {
	var borrow *models.BorrowRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Book{}).
			Where("id = ? AND available_copies > 0", bookID).
			Update("available_copies", gorm.Expr("available_copies - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrBookNotFound
			}
			return domain.ErrBookUnavailable
		}

		active := true
		borrow = &models.BorrowRecord{
			StudentID: studentID,
			BookID:    bookID,
			Active:    &active,
			DueDate:   dueDate,
			Status:    models.BorrowBorrowed,
		}
		if err := tx.Create(borrow).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateBorrow
			}
			return err
		}

		// Last copy gone: reflect it on the book status
		return tx.Model(&models.Book{}).
			Where("id = ? AND available_copies = 0", bookID).
			Update("status", models.BookUnavailable).Error
	})
	if err != nil {
		return nil, err
	}

	return borrow, nil
}

// ReturnBook closes an open borrow record, computes any overdue fine and
// releases the copy, atomically. Closing is itself conditional on the
// record still being open, so a record transitions to RETURNED exactly once.
func (r *libraryRepository) ReturnBook(ctx context.Context, borrowID uint, finePerDay float64) (*models.BorrowRecord, error) {
	var borrow models.BorrowRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", borrowID).First(&borrow).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBorrowNotFound
			}
			return err
		}

		returnDate := time.Now()
		var fine float64
		if returnDate.After(borrow.DueDate) {
			days := math.Ceil(returnDate.Sub(borrow.DueDate).Hours() / 24)
			fine = days * finePerDay
		}

		result := tx.Model(&models.BorrowRecord{}).
			Where("id = ? AND status <> ?", borrowID, models.BorrowReturned).
			Updates(map[string]interface{}{
				"active":      nil,
				"return_date": returnDate,
				"fine_amount": fine,
				"fine_paid":   fine == 0,
				"status":      models.BorrowReturned,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrAlreadyReturned
		}

		if err := tx.Model(&models.Book{}).
			Where("id = ?", borrow.BookID).
			Updates(map[string]interface{}{
				"available_copies": gorm.Expr("available_copies + 1"),
				"status":           models.BookAvailable,
			}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", borrowID).First(&borrow).Error
	})
	if err != nil {
		return nil, err
	}

	return &borrow, nil
}

// GetBorrowByID gets a borrow record with its student and book
func (r *libraryRepository) GetBorrowByID(ctx context.Context, id uint) (*models.BorrowRecord, error) {
	var borrow models.BorrowRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Book").
		Where("id = ?", id).
		First(&borrow).Error
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// ListBorrows lists borrow records with pagination
func (r *libraryRepository) ListBorrows(ctx context.Context, offset, limit int) ([]*models.BorrowRecord, int64, error) {
	var borrows []*models.BorrowRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.BorrowRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Book").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&borrows).Error
	if err != nil {
		return nil, 0, err
	}

	return borrows, total, nil
}

// ListBorrowsByStudent lists a student's borrow records
func (r *libraryRepository) ListBorrowsByStudent(ctx context.Context, studentID uint) ([]*models.BorrowRecord, error) {
	var borrows []*models.BorrowRecord
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&borrows).Error
	return borrows, err
}

// ListBorrowsByBook lists a book's borrow records
func (r *libraryRepository) ListBorrowsByBook(ctx context.Context, bookID uint) ([]*models.BorrowRecord, error) {
	var borrows []*models.BorrowRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&borrows).Error
	return borrows, err
}

// MarkOverdue flips open borrows past their due date to OVERDUE and returns
// the number of records touched. Run by the daily sweep.
func (r *libraryRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.BorrowRecord{}).
		Where("status = ? AND due_date < ?", models.BorrowBorrowed, now).
		Update("status", models.BorrowOverdue)
	return result.RowsAffected, result.Error
}
