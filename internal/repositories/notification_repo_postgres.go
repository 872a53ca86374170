package repositories

import (
	"context"

	"rentflow/internal/models"
)

type pgNotificationRepo struct {
	db Querier
}

func NewNotificationRepo(db Querier) NotificationRepository {
	return &pgNotificationRepo{db: db}
}

func (r *pgNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message, type, is_read)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		notification.UserID, notification.Message, string(notification.Type), notification.IsRead,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *pgNotificationRepo) Get(ctx context.Context, id int64) (*models.Notification, error) {
	notification := &models.Notification{}
	var typ string
	query := `
		SELECT id, user_id, message, type, is_read, created_at
		FROM notifications
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&notification.ID, &notification.UserID, &notification.Message,
		&typ, &notification.IsRead, &notification.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	notification.Type = models.NotificationType(typ)
	return notification, nil
}

func (r *pgNotificationRepo) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &typ, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = models.NotificationType(typ)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *pgNotificationRepo) Update(ctx context.Context, id int64, upd *models.NotificationUpdate) (*models.Notification, error) {
	notification := &models.Notification{}
	var typ string
	var updType *string
	if upd.Type != nil {
		t := string(*upd.Type)
		updType = &t
	}
	query := `
		UPDATE notifications
		SET message = COALESCE($2, message),
		    type = COALESCE($3, type),
		    is_read = COALESCE($4, is_read)
		WHERE id = $1
		RETURNING id, user_id, message, type, is_read, created_at
	`
	err := r.db.QueryRow(ctx, query, id, upd.Message, updType, upd.IsRead).Scan(
		&notification.ID, &notification.UserID, &notification.Message,
		&typ, &notification.IsRead, &notification.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	notification.Type = models.NotificationType(typ)
	return notification, nil
}

func (r *pgNotificationRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgNotificationRepo) MarkRead(ctx context.Context, id int64) (*models.Notification, error) {
	notification := &models.Notification{}
	var typ string
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1
		RETURNING id, user_id, message, type, is_read, created_at
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&notification.ID, &notification.UserID, &notification.Message,
		&typ, &notification.IsRead, &notification.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	notification.Type = models.NotificationType(typ)
	return notification, nil
}
