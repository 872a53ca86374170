package repositories

import (
	"context"

	"rentflow/internal/models"
)

// UserRepository stores portal identities. The contract has no update or
// delete; users are written once at signup and the role never changes.
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type memoryUserRepo struct {
	store *MemoryStore
}

func NewMemoryUserRepo(store *MemoryStore) UserRepository {
	return &memoryUserRepo{store: store}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Client-supplied id/createdAt are discarded; the store stamps both.
	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = s.now()
	s.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Get(ctx context.Context, id int64) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}
