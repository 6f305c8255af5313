package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FeeHandler handles fee record and payment endpoints
type FeeHandler struct {
	feeService *services.FeeService
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(feeService *services.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// CreateRecord opens a fee record
// @Summary Create fee record
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.FeeRecordInput true "Fee record data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fees [post]
func (h *FeeHandler) CreateRecord(c *fiber.Ctx) error {
	var req services.FeeRecordInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.StudentID == 0 || req.TotalAmount <= 0 {
		return response.BadRequest(c, "Student and a positive total amount are required")
	}

	record, err := h.feeService.CreateRecord(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Fee record created successfully", record)
}

// ListRecords lists fee records
// @Summary List fee records
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /fees [get]
func (h *FeeHandler) ListRecords(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	records, total, err := h.feeService.ListRecords(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Fee records retrieved successfully", pagination.NewResponse(records, params, total))
}

// GetRecord gets one fee record
// @Summary Get fee record by ID
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee record ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fees/{id} [get]
func (h *FeeHandler) GetRecord(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fee record ID")
	}

	record, err := h.feeService.GetRecord(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Fee record retrieved successfully", record)
}

// ListStudentRecords lists a student's fee records
// @Summary List a student's fee records
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/{id}/fees [get]
func (h *FeeHandler) ListStudentRecords(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	records, err := h.feeService.ListRecordsByStudent(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Fee records retrieved successfully", records)
}

// UpdateRecord patches a fee record's terms
// @Summary Update fee record
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee record ID"
// @Param body body services.FeeRecordUpdateInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fees/{id} [put]
func (h *FeeHandler) UpdateRecord(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fee record ID")
	}

	var req services.FeeRecordUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.feeService.UpdateRecord(c.Context(), id, &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Fee record updated successfully", record)
}

// Pay applies a payment
// @Summary Pay fee
// @Tags Fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PaymentInput true "Payment data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /fees/pay [post]
func (h *FeeHandler) Pay(c *fiber.Ctx) error {
	var req services.PaymentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.FeeRecordID == 0 || req.Amount <= 0 || req.PaymentMethod == "" {
		return response.BadRequest(c, "Fee record, a positive amount and a payment method are required")
	}

	record, txn, err := h.feeService.Pay(c.Context(), &req, middleware.GetIdentity(c), c.IP())
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Payment applied successfully", fiber.Map{
		"record":      record,
		"transaction": txn,
	})
}

// ListTransactions lists the payments against a fee record
// @Summary List fee transactions
// @Tags Fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee record ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /fees/{id}/transactions [get]
func (h *FeeHandler) ListTransactions(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fee record ID")
	}

	txns, err := h.feeService.ListTransactions(c.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Transactions retrieved successfully", txns)
}
