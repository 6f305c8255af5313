package services

import (
	"context"
	"errors"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"gorm.io/gorm"
)

// NotificationService handles per-user notifications. Every read and
// mutation is scoped to the owning user.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// NotificationInput represents a notification to send
type NotificationInput struct {
	UserID  uint   `json:"user_id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

// Send creates a notification for a user
func (s *NotificationService) Send(ctx context.Context, input *NotificationInput) (*models.Notification, error) {
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	notifType := input.Type
	if notifType == "" {
		notifType = "GENERAL"
	}
	notification := &models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    notifType,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListMine lists the caller's notifications, optionally filtered by read
// state
func (s *NotificationService) ListMine(ctx context.Context, actor *domain.Identity, isRead *bool, offset, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.ListByUser(ctx, actor.UserID, isRead, offset, limit)
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id uint, actor *domain.Identity) error {
	if err := s.notificationRepo.MarkRead(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// MarkAllRead marks all the caller's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, actor *domain.Identity) error {
	return s.notificationRepo.MarkAllRead(ctx, actor.UserID)
}

// Delete removes one of the caller's notifications
func (s *NotificationService) Delete(ctx context.Context, id uint, actor *domain.Identity) error {
	if err := s.notificationRepo.Delete(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}
