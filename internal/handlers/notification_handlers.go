package handlers

import (
	"errors"
	"net/http"

	"rentflow/internal/common"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
	"rentflow/internal/services"

	"github.com/labstack/echo/v4"
)

// NotificationHandlers handles notification-related HTTP requests
type NotificationHandlers struct {
	notificationSvc services.NotificationService
}

// NewNotificationHandlers creates a new notification handlers instance
func NewNotificationHandlers(notificationSvc services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationSvc: notificationSvc}
}

// CreateNotificationRequest represents the notification creation payload
type CreateNotificationRequest struct {
	UserID  int64                   `json:"user_id" validate:"required"`
	Message string                  `json:"message" validate:"required"`
	Type    models.NotificationType `json:"type"`
}

// CreateNotification handles POST /notifications
func (h *NotificationHandlers) CreateNotification(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetUserIDFromContext(ctx); !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.UserID <= 0 {
		return common.SendValidationError(c, "user_id", "user_id must be positive")
	}

	notification, err := h.notificationSvc.Notify(ctx, req.UserID, req.Message, req.Type)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "user")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, notification)
}

// GetNotifications handles GET /notifications
func (h *NotificationHandlers) GetNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	notifications, err := h.notificationSvc.ListForUser(ctx, userID)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve notifications: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead handles PUT /notifications/:id/read
func (h *NotificationHandlers) MarkNotificationRead(c echo.Context) error {
	ctx := c.Request().Context()

	notificationID, err := common.ValidateID(c.Param("id"), "notification_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	notification, err := h.notificationSvc.MarkRead(ctx, userID, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "notification")
		}
		return common.SendServerError(c, "Failed to mark notification read: "+err.Error())
	}

	return c.JSON(http.StatusOK, notification)
}

// MarkAllNotificationsRead handles PUT /notifications/read-all
func (h *NotificationHandlers) MarkAllNotificationsRead(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	marked, err := h.notificationSvc.MarkAllRead(ctx, userID)
	if err != nil {
		return common.SendServerError(c, "Failed to mark notifications read: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "All notifications marked as read",
		"marked_read": marked,
	})
}
