package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuditHandler handles audit log read endpoints. The log itself is
// append-only; there are no write routes.
type AuditHandler struct {
	auditService *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List lists audit entries
// @Summary List audit log
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param action query string false "Filter by action tag"
// @Success 200 {object} response.Response
// @Router /audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	if action := c.Query("action"); action != "" {
		entries, total, err := h.auditService.ListByAction(c.Context(), action, params.Offset, params.Limit)
		if err != nil {
			return handleError(c, err)
		}
		return response.Success(c, "Audit log retrieved successfully", pagination.NewResponse(entries, params, total))
	}

	entries, total, err := h.auditService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Audit log retrieved successfully", pagination.NewResponse(entries, params, total))
}

// ListByUser lists a user's audit entries
// @Summary List a user's audit log
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /audit/users/{id} [get]
func (h *AuditHandler) ListByUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}
	params := pagination.GetParams(c)

	entries, total, err := h.auditService.ListByUser(c.Context(), id, params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Audit log retrieved successfully", pagination.NewResponse(entries, params, total))
}
