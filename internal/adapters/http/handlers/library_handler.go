package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LibraryHandler handles book and borrow endpoints
type LibraryHandler struct {
	libraryService *services.LibraryService
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(libraryService *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// CreateBook adds a book
// @Summary Create book
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BookInput true "Book data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *LibraryHandler) CreateBook(c *fiber.Ctx) error {
	var req services.BookInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.Author == "" || req.ISBN == "" {
		return response.BadRequest(c, "Title, author and ISBN are required")
	}

	book, err := h.libraryService.CreateBook(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Book created successfully", book)
}

// ListBooks lists books
// @Summary List books
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *LibraryHandler) ListBooks(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	books, total, err := h.libraryService.ListBooks(c.Context(), c.Query("category"), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Books retrieved successfully", pagination.NewResponse(books, params, total))
}

// GetBook gets one book
// @Summary Get book by ID
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *LibraryHandler) GetBook(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.libraryService.GetBook(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Book retrieved successfully", book)
}

// UpdateBook patches a book
// @Summary Update book
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body services.BookUpdateInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *LibraryHandler) UpdateBook(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	var req services.BookUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.libraryService.UpdateBook(c.Context(), id, &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Book updated successfully", book)
}

// DeleteBook removes a book
// @Summary Delete book
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *LibraryHandler) DeleteBook(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	if err := h.libraryService.DeleteBook(c.Context(), id); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// IssueBook lends a copy to a student
// @Summary Issue book
// @Tags Library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.IssueInput true "Issue data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /borrows [post]
func (h *LibraryHandler) IssueBook(c *fiber.Ctx) error {
	var req services.IssueInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.StudentID == 0 || req.BookID == 0 || req.DueDate.IsZero() {
		return response.BadRequest(c, "Student, book and due date are required")
	}

	borrow, err := h.libraryService.IssueBook(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Book issued successfully", borrow)
}

// ReturnBook closes a borrow
// @Summary Return book
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrow ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /borrows/{id}/return [post]
func (h *LibraryHandler) ReturnBook(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid borrow ID")
	}

	borrow, err := h.libraryService.ReturnBook(c.Context(), id, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Book returned successfully", borrow)
}

// ListBorrows lists borrow records
// @Summary List borrows
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /borrows [get]
func (h *LibraryHandler) ListBorrows(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	borrows, total, err := h.libraryService.ListBorrows(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Borrows retrieved successfully", pagination.NewResponse(borrows, params, total))
}

// ListStudentBorrows lists a student's borrows
// @Summary List a student's borrows
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/borrows [get]
func (h *LibraryHandler) ListStudentBorrows(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	borrows, err := h.libraryService.ListBorrowsByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Borrows retrieved successfully", borrows)
}

// ListBookBorrows lists a book's borrow history
// @Summary List a book's borrows
// @Tags Library
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Router /books/{id}/borrows [get]
func (h *LibraryHandler) ListBookBorrows(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	borrows, err := h.libraryService.ListBorrowsByBook(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Borrows retrieved successfully", borrows)
}
