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

func newLibraryService(t *testing.T) (*LibraryService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewLibraryService(
		repositories.NewLibraryRepository(db),
		repositories.NewUserRepository(db),
		newTestAudit(t, db),
	)
	return svc, db
}

func createTestBook(t *testing.T, svc *LibraryService, isbn string, copies int) *models.Book {
	t.Helper()
	book, err := svc.CreateBook(context.Background(), &BookInput{
		Title:       "The Go Programming Language",
		Author:      "Donovan & Kernighan",
		ISBN:        isbn,
		Category:    "PROGRAMMING",
		TotalCopies: copies,
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	return book
}

func TestCreateBookAllCopiesAvailable(t *testing.T) {
	svc, _ := newLibraryService(t)

	book := createTestBook(t, svc, "978-0134190440", 3)
	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)
	assert.Equal(t, models.BookAvailable, book.Status)
}

func TestUpdateBookCopiesOutOfRange(t *testing.T) {
	svc, _ := newLibraryService(t)
	ctx := context.Background()

	book := createTestBook(t, svc, "978-0134190441", 2)

	five := 5
	_, err := svc.UpdateBook(ctx, book.ID, &BookUpdateInput{AvailableCopies: &five})
	assert.ErrorIs(t, err, domain.ErrCopiesOutOfRange)

	one := 1
	updated, err := svc.UpdateBook(ctx, book.ID, &BookUpdateInput{AvailableCopies: &one})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.AvailableCopies)
}

func TestIssueBookDecrementsCopies(t *testing.T) {
	svc, db := newLibraryService(t)
	ctx := context.Background()

	_, student := createTestStudent(t, db, "reader@ums.com", "CS2024020")
	book := createTestBook(t, svc, "978-0134190442", 2)

	borrow, err := svc.IssueBook(ctx, &IssueInput{
		StudentID: student.ID,
		BookID:    book.ID,
		DueDate:   time.Now().AddDate(0, 0, 14),
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.BorrowBorrowed, borrow.Status)

	after, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.AvailableCopies)
}

func TestIssueBookSecondOpenBorrowRejected(t *testing.T) {
	svc, db := newLibraryService(t)
	ctx := context.Background()

	_, student := createTestStudent(t, db, "reader2@ums.com", "CS2024021")
	book := createTestBook(t, svc, "978-0134190443", 5)

	input := &IssueInput{StudentID: student.ID, BookID: book.ID, DueDate: time.Now().AddDate(0, 0, 14)}
	_, err := svc.IssueBook(ctx, input, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.IssueBook(ctx, input, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrDuplicateBorrow)

	// The failed issue must not leak a copy
	after, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, after.AvailableCopies)
}

func TestIssueBookNoCopiesLeft(t *testing.T) {
	svc, db := newLibraryService(t)
	ctx := context.Background()

	_, first := createTestStudent(t, db, "first@ums.com", "CS2024022")
	_, second := createTestStudent(t, db, "second@ums.com", "CS2024023")
	book := createTestBook(t, svc, "978-0134190444", 1)

	due := time.Now().AddDate(0, 0, 14)
	_, err := svc.IssueBook(ctx, &IssueInput{StudentID: first.ID, BookID: book.ID, DueDate: due}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.IssueBook(ctx, &IssueInput{StudentID: second.ID, BookID: book.ID, DueDate: due}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrBookUnavailable)

	after, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookUnavailable, after.Status)
}

func TestIssueBookUnknownStudent(t *testing.T) {
	svc, _ := newLibraryService(t)

	book := createTestBook(t, svc, "978-0134190445", 1)
	_, err := svc.IssueBook(context.Background(), &IssueInput{
		StudentID: 999,
		BookID:    book.ID,
		DueDate:   time.Now().AddDate(0, 0, 14),
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrStudentNotFound)
}

func TestReturnBookRestoresCopyAndFine(t *testing.T) {
	svc, db := newLibraryService(t)
	ctx := context.Background()

	_, student := createTestStudent(t, db, "late@ums.com", "CS2024024")
	book := createTestBook(t, svc, "978-0134190446", 1)

	// Overdue by a hair over two days, which rounds up to three fine days
	borrow, err := svc.IssueBook(ctx, &IssueInput{
		StudentID: student.ID,
		BookID:    book.ID,
		DueDate:   time.Now().Add(-50 * time.Hour),
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	returned, err := svc.ReturnBook(ctx, borrow.ID, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.BorrowReturned, returned.Status)
	assert.NotNil(t, returned.ReturnDate)
	assert.Equal(t, 3*FinePerDay, returned.FineAmount)
	assert.False(t, returned.FinePaid)

	after, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.AvailableCopies)
	assert.Equal(t, models.BookAvailable, after.Status)
}

func TestReturnBookTwice(t *testing.T) {
	svc, db := newLibraryService(t)
	ctx := context.Background()

	_, student := createTestStudent(t, db, "twice@ums.com", "CS2024025")
	book := createTestBook(t, svc, "978-0134190447", 1)

	borrow, err := svc.IssueBook(ctx, &IssueInput{
		StudentID: student.ID,
		BookID:    book.ID,
		DueDate:   time.Now().AddDate(0, 0, 14),
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.ReturnBook(ctx, borrow.ID, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	_, err = svc.ReturnBook(ctx, borrow.ID, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrAlreadyReturned)

	// The duplicate return must not inflate availability
	after, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.AvailableCopies)
}

func TestUpdateBookKeepsCountersFromStaleRead(t *testing.T) {
	svc, db := newLibraryService(t)
	ctx := context.Background()

	_, student := createTestStudent(t, db, "racer@ums.com", "CS2024028")
	book := createTestBook(t, svc, "978-0134190448", 2)

	// Snapshot the row, then let an issue claim a copy behind its back
	stale, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)

	_, err = svc.IssueBook(ctx, &IssueInput{
		StudentID: student.ID,
		BookID:    book.ID,
		DueDate:   time.Now().AddDate(0, 0, 14),
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	// A metadata-only patch must not write the counters it read
	updated, err := svc.UpdateBook(ctx, book.ID, &BookUpdateInput{Title: "Renamed edition"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed edition", updated.Title)
	assert.Equal(t, 1, updated.AvailableCopies)

	// Nor may a full save of the stale struct resurrect the claimed copy
	libraryRepo := repositories.NewLibraryRepository(db)
	require.NoError(t, libraryRepo.UpdateBook(ctx, stale))

	after, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.AvailableCopies)
	assert.Equal(t, 2, after.TotalCopies)
}

func TestUpdateBookCopiesConditional(t *testing.T) {
	svc, _ := newLibraryService(t)
	ctx := context.Background()

	book := createTestBook(t, svc, "978-0134190449", 3)

	// Shrinking the total below the copies currently available is refused
	two := 2
	_, err := svc.UpdateBook(ctx, book.ID, &BookUpdateInput{TotalCopies: &two})
	assert.ErrorIs(t, err, domain.ErrCopiesOutOfRange)

	zero := 0
	updated, err := svc.UpdateBook(ctx, book.ID, &BookUpdateInput{AvailableCopies: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.AvailableCopies)
	assert.Equal(t, models.BookUnavailable, updated.Status)

	// Restocking works and flips the status back
	four := 4
	updated, err = svc.UpdateBook(ctx, book.ID, &BookUpdateInput{TotalCopies: &four, AvailableCopies: &two})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.TotalCopies)
	assert.Equal(t, 2, updated.AvailableCopies)
	assert.Equal(t, models.BookAvailable, updated.Status)
}

func TestListBorrowsByStudentAccess(t *testing.T) {
	svc, db := newLibraryService(t)
	ctx := context.Background()

	ownerUser, owner := createTestStudent(t, db, "owner@ums.com", "CS2024026")
	_, other := createTestStudent(t, db, "other@ums.com", "CS2024027")

	_, err := svc.ListBorrowsByStudent(ctx, other.ID, studentIdentity(ownerUser, owner))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListBorrowsByStudent(ctx, owner.ID, studentIdentity(ownerUser, owner))
	assert.NoError(t, err)

	_, err = svc.ListBorrowsByStudent(ctx, other.ID, adminIdentity())
	assert.NoError(t, err)
}
