package repositories

import (
	"context"
	"sort"

	"rentflow/internal/models"
)

type NotificationRepository interface {
	Get(ctx context.Context, id int64) (*models.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	Create(ctx context.Context, notification *models.Notification) error
	Update(ctx context.Context, id int64, upd *models.NotificationUpdate) (*models.Notification, error)
	Delete(ctx context.Context, id int64) (bool, error)
	MarkRead(ctx context.Context, id int64) (*models.Notification, error)
}

type memoryNotificationRepo struct {
	store *MemoryStore
}

func NewMemoryNotificationRepo(store *MemoryStore) NotificationRepository {
	return &memoryNotificationRepo{store: store}
}

func (r *memoryNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	notification.ID = s.nextNotificationID
	s.nextNotificationID++
	notification.CreatedAt = s.now()
	s.notifications[notification.ID] = *notification
	return nil
}

func (r *memoryNotificationRepo) Get(ctx context.Context, id int64) (*models.Notification, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	notification, ok := s.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &notification, nil
}

// ListByUser returns the user's notifications most recent first. This is
// the only repository listing with a defined order.
func (r *memoryNotificationRepo) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := []models.Notification{}
	for _, n := range s.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].ID > notifications[j].ID
		}
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (r *memoryNotificationRepo) Update(ctx context.Context, id int64, upd *models.NotificationUpdate) (*models.Notification, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return r.applyUpdate(id, upd)
}

func (r *memoryNotificationRepo) Delete(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.notifications[id]
	if ok {
		delete(s.notifications, id)
	}
	return ok, nil
}

func (r *memoryNotificationRepo) MarkRead(ctx context.Context, id int64) (*models.Notification, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	read := true
	return r.applyUpdate(id, &models.NotificationUpdate{IsRead: &read})
}

// applyUpdate merges the provided fields; callers must hold the write lock.
func (r *memoryNotificationRepo) applyUpdate(id int64, upd *models.NotificationUpdate) (*models.Notification, error) {
	s := r.store
	notification, ok := s.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Message != nil {
		notification.Message = *upd.Message
	}
	if upd.Type != nil {
		notification.Type = *upd.Type
	}
	if upd.IsRead != nil {
		notification.IsRead = *upd.IsRead
	}
	s.notifications[id] = notification
	return &notification, nil
}
