package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// FinePerDay is the overdue fine rate per day
const FinePerDay = 1.0

// LibraryService handles books and borrowing
type LibraryService struct {
	libraryRepo repositories.LibraryRepository
	userRepo    repositories.UserRepository
	audit       *AuditService
}

// NewLibraryService creates a new library service
func NewLibraryService(libraryRepo repositories.LibraryRepository, userRepo repositories.UserRepository, audit *AuditService) *LibraryService {
	return &LibraryService{
		libraryRepo: libraryRepo,
		userRepo:    userRepo,
		audit:       audit,
	}
}

// BookInput represents book create/update input
type BookInput struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	ISBN          string `json:"isbn" validate:"required"`
	Publisher     string `json:"publisher,omitempty"`
	PublishedYear int    `json:"published_year,omitempty"`
	Category      string `json:"category"`
	Description   string `json:"description,omitempty"`
	TotalCopies   int    `json:"total_copies" validate:"required,min=1"`
	ShelfLocation string `json:"shelf_location,omitempty"`
}

// CreateBook adds a book with all copies available
func (s *LibraryService) CreateBook(ctx context.Context, input *BookInput, actor *domain.Identity, sourceIP string) (*models.Book, error) {
	if input.TotalCopies < 1 {
		return nil, domain.ErrInvalidInput
	}

	book := &models.Book{
		Title:         input.Title,
		Author:        input.Author,
		ISBN:          input.ISBN,
		Publisher:     input.Publisher,
		PublishedYear: input.PublishedYear,
		Category:      input.Category,
		Description:   input.Description,
		TotalCopies:   input.TotalCopies,
		ShelfLocation: input.ShelfLocation,
	}
	if err := s.libraryRepo.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionCreate, "Book", book.ID, nil, sourceIP); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook gets a book by ID
func (s *LibraryService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.libraryRepo.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// ListBooks lists books with pagination
func (s *LibraryService) ListBooks(ctx context.Context, category string, offset, limit int) ([]*models.Book, int64, error) {
	return s.libraryRepo.ListBooks(ctx, category, offset, limit)
}

// BookUpdateInput represents book update input
type BookUpdateInput struct {
	Title           string  `json:"title,omitempty"`
	Author          string  `json:"author,omitempty"`
	Publisher       string  `json:"publisher,omitempty"`
	Category        string  `json:"category,omitempty"`
	Description     string  `json:"description,omitempty"`
	TotalCopies     *int    `json:"total_copies,omitempty"`
	AvailableCopies *int    `json:"available_copies,omitempty"`
	ShelfLocation   string  `json:"shelf_location,omitempty"`
	Status          *string `json:"status,omitempty"`
}

// UpdateBook patches a book, refusing any change that would leave more
// copies available than exist in total. Counter changes are applied by
// the repository against the row's current values, so a patch racing a
// concurrent issue or return cannot resurrect a claimed copy.
func (s *LibraryService) UpdateBook(ctx context.Context, id uint, input *BookUpdateInput) (*models.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TotalCopies != nil && *input.TotalCopies < 1 {
		return nil, domain.ErrCopiesOutOfRange
	}
	if input.AvailableCopies != nil && *input.AvailableCopies < 0 {
		return nil, domain.ErrCopiesOutOfRange
	}
	if input.TotalCopies != nil && input.AvailableCopies != nil && *input.AvailableCopies > *input.TotalCopies {
		return nil, domain.ErrCopiesOutOfRange
	}

	if input.Title != "" {
		book.Title = input.Title
	}
	if input.Author != "" {
		book.Author = input.Author
	}
	if input.Publisher != "" {
		book.Publisher = input.Publisher
	}
	if input.Category != "" {
		book.Category = input.Category
	}
	if input.Description != "" {
		book.Description = input.Description
	}
	if input.ShelfLocation != "" {
		book.ShelfLocation = input.ShelfLocation
	}
	if input.Status != nil {
		book.Status = *input.Status
	}

	if err := s.libraryRepo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	if input.TotalCopies != nil || input.AvailableCopies != nil {
		if err := s.libraryRepo.UpdateBookCopies(ctx, id, input.TotalCopies, input.AvailableCopies); err != nil {
			return nil, err
		}
	}

	return s.GetBook(ctx, id)
}

// DeleteBook removes a book
func (s *LibraryService) DeleteBook(ctx context.Context, id uint) error {
	err := s.libraryRepo.DeleteBook(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrBookNotFound
	}
	return err
}

// IssueInput represents a book issue request
type IssueInput struct {
	StudentID uint      `json:"student_id" validate:"required"`
	BookID    uint      `json:"book_id" validate:"required"`
	DueDate   time.Time `json:"due_date" validate:"required"`
}

// IssueBook lends a copy to a student. Availability and the one-open-
// borrow rule are enforced atomically by the repository.
func (s *LibraryService) IssueBook(ctx context.Context, input *IssueInput, actor *domain.Identity, sourceIP string) (*models.BorrowRecord, error) {
	if _, err := s.userRepo.GetStudentByID(ctx, input.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	borrow, err := s.libraryRepo.IssueBook(ctx, input.StudentID, input.BookID, input.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionIssue, "BorrowRecord", borrow.ID,
		map[string]uint{"book_id": input.BookID, "student_id": input.StudentID}, sourceIP); err != nil {
		return nil, err
	}

	log.Printf("✅ Book %d issued to student %d", input.BookID, input.StudentID)
	return borrow, nil
}

// ReturnBook closes a borrow and computes the overdue fine
func (s *LibraryService) ReturnBook(ctx context.Context, borrowID uint, actor *domain.Identity, sourceIP string) (*models.BorrowRecord, error) {
	borrow, err := s.libraryRepo.ReturnBook(ctx, borrowID, FinePerDay)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &actor.UserID, ActionReturn, "BorrowRecord", borrow.ID,
		map[string]float64{"fine_amount": borrow.FineAmount}, sourceIP); err != nil {
		return nil, err
	}
	return borrow, nil
}

// ListBorrows lists all borrow records
func (s *LibraryService) ListBorrows(ctx context.Context, offset, limit int) ([]*models.BorrowRecord, int64, error) {
	return s.libraryRepo.ListBorrows(ctx, offset, limit)
}

// ListBorrowsByStudent lists a student's borrows. Students may only see
// their own.
func (s *LibraryService) ListBorrowsByStudent(ctx context.Context, studentID uint, actor *domain.Identity) ([]*models.BorrowRecord, error) {
	if !actor.CanAccessStudent(studentID) {
		return nil, domain.ErrForbidden
	}
	return s.libraryRepo.ListBorrowsByStudent(ctx, studentID)
}

// ListBorrowsByBook lists a book's borrow history
func (s *LibraryService) ListBorrowsByBook(ctx context.Context, bookID uint) ([]*models.BorrowRecord, error) {
	return s.libraryRepo.ListBorrowsByBook(ctx, bookID)
}
