package repositories

import (
	"context"

	"rentflow/internal/models"
)

type PropertyRepository interface {
	Get(ctx context.Context, id int64) (*models.Property, error)
	ListByLandlord(ctx context.Context, landlordID int64) ([]models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	Update(ctx context.Context, id int64, upd *models.PropertyUpdate) (*models.Property, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type memoryPropertyRepo struct {
	store *MemoryStore
}

func NewMemoryPropertyRepo(store *MemoryStore) PropertyRepository {
	return &memoryPropertyRepo{store: store}
}

func (r *memoryPropertyRepo) Create(ctx context.Context, property *models.Property) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	property.ID = s.nextPropertyID
	s.nextPropertyID++
	property.CreatedAt = s.now()
	s.properties[property.ID] = *property
	return nil
}

func (r *memoryPropertyRepo) Get(ctx context.Context, id int64) (*models.Property, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	property, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &property, nil
}

// ListByLandlord is a linear scan; an unknown landlord id yields an empty
// slice, never an error.
func (r *memoryPropertyRepo) ListByLandlord(ctx context.Context, landlordID int64) ([]models.Property, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	properties := []models.Property{}
	for _, p := range s.properties {
		if p.LandlordID == landlordID {
			properties = append(properties, p)
		}
	}
	return properties, nil
}

func (r *memoryPropertyRepo) Update(ctx context.Context, id int64, upd *models.PropertyUpdate) (*models.Property, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	property, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		property.Name = *upd.Name
	}
	if upd.Address != nil {
		property.Address = *upd.Address
	}
	if upd.City != nil {
		property.City = *upd.City
	}
	if upd.State != nil {
		property.State = *upd.State
	}
	if upd.Zip != nil {
		property.Zip = *upd.Zip
	}
	if upd.TotalUnits != nil {
		property.TotalUnits = *upd.TotalUnits
	}
	if upd.IsActive != nil {
		property.IsActive = *upd.IsActive
	}
	s.properties[id] = property
	return &property, nil
}

func (r *memoryPropertyRepo) Delete(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.properties[id]
	if ok {
		delete(s.properties, id)
	}
	return ok, nil
}
