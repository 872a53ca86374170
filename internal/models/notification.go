package models

import "time"

// NotificationType classifies in-app notifications for the portal.
type NotificationType string

const (
	NotificationPaymentDue      NotificationType = "payment_due"
	NotificationPaymentReceived NotificationType = "payment_received"
	NotificationPaymentOverdue  NotificationType = "payment_overdue"
	NotificationRentReminder    NotificationType = "rent_reminder"
	NotificationGeneral         NotificationType = "general"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationPaymentDue, NotificationPaymentReceived, NotificationPaymentOverdue, NotificationRentReminder, NotificationGeneral:
		return true
	}
	return false
}

type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"user_id" db:"user_id"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// NotificationUpdate carries a partial update; nil fields are left untouched.
type NotificationUpdate struct {
	Message *string           `json:"message"`
	Type    *NotificationType `json:"type"`
	IsRead  *bool             `json:"is_read"`
}
