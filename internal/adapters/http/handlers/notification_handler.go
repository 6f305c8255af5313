package handlers

import (
	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/core/services"
	"github.com/LEGENDANISH/UMS/internal/pkg/pagination"
	"github.com/LEGENDANISH/UMS/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Send creates a notification for a user
// @Summary Send notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.NotificationInput true "Notification data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications [post]
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var req services.NotificationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.UserID == 0 || req.Title == "" {
		return response.BadRequest(c, "User and title are required")
	}

	notification, err := h.notificationService.Send(c.Context(), &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Notification sent successfully", notification)
}

// ListMine lists the caller's notifications
// @Summary List my notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param is_read query bool false "Filter by read state"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var isRead *bool
	if raw := c.Query("is_read"); raw != "" {
		v := raw == "true"
		isRead = &v
	}

	notifications, total, err := h.notificationService.ListMine(c.Context(), middleware.GetIdentity(c), isRead, params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Notifications retrieved successfully", pagination.NewResponse(notifications, params, total))
}

// MarkRead marks one notification as read
// @Summary Mark notification read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(c.Context(), id, middleware.GetIdentity(c)); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Notification marked read", nil)
}

// MarkAllRead marks all the caller's notifications as read
// @Summary Mark all notifications read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAllRead(c.Context(), middleware.GetIdentity(c)); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "All notifications marked read", nil)
}

// Delete removes one of the caller's notifications
// @Summary Delete notification
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.Delete(c.Context(), id, middleware.GetIdentity(c)); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}
