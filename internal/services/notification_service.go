package services

import (
	"context"
	"errors"
	"fmt"

	"rentflow/internal/common"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

// NotificationService manages in-app notifications for users
type NotificationService interface {
	Notify(ctx context.Context, userID int64, message string, notificationType models.NotificationType) (*models.Notification, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID int64, message string, notificationType models.NotificationType) (*models.Notification, error) {
	if message == "" {
		return nil, errors.New("notification message is required")
	}
	if notificationType == "" {
		notificationType = models.NotificationGeneral
	}
	if !notificationType.Valid() {
		return nil, fmt.Errorf("invalid notification type: %s", notificationType)
	}

	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		return nil, fmt.Errorf("notification recipient: %w", err)
	}

	notification := &models.Notification{
		UserID:  userID,
		Message: common.SanitizeHTMLElement(message),
		Type:    notificationType,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) (*models.Notification, error) {
	notification, err := s.notificationRepo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	// A user can only touch their own notifications.
	if notification.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, n := range notifications {
		if n.IsRead {
			continue
		}
		if _, err := s.notificationRepo.MarkRead(ctx, n.ID); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}
