package repositories

import (
	"context"

	"rentflow/internal/models"
)

type UnitRepository interface {
	Get(ctx context.Context, id int64) (*models.Unit, error)
	ListByProperty(ctx context.Context, propertyID int64) ([]models.Unit, error)
	Create(ctx context.Context, unit *models.Unit) error
	Update(ctx context.Context, id int64, upd *models.UnitUpdate) (*models.Unit, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type memoryUnitRepo struct {
	store *MemoryStore
}

func NewMemoryUnitRepo(store *MemoryStore) UnitRepository {
	return &memoryUnitRepo{store: store}
}

func (r *memoryUnitRepo) Create(ctx context.Context, unit *models.Unit) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	unit.ID = s.nextUnitID
	s.nextUnitID++
	unit.CreatedAt = s.now()
	s.units[unit.ID] = *unit
	return nil
}

func (r *memoryUnitRepo) Get(ctx context.Context, id int64) (*models.Unit, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	unit, ok := s.units[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &unit, nil
}

func (r *memoryUnitRepo) ListByProperty(ctx context.Context, propertyID int64) ([]models.Unit, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	units := []models.Unit{}
	for _, u := range s.units {
		if u.PropertyID == propertyID {
			units = append(units, u)
		}
	}
	return units, nil
}

func (r *memoryUnitRepo) Update(ctx context.Context, id int64, upd *models.UnitUpdate) (*models.Unit, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	unit, ok := s.units[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.UnitNumber != nil {
		unit.UnitNumber = *upd.UnitNumber
	}
	if upd.MonthlyRent != nil {
		unit.MonthlyRent = *upd.MonthlyRent
	}
	if upd.Bedrooms != nil {
		unit.Bedrooms = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		unit.Bathrooms = *upd.Bathrooms
	}
	if upd.IsOccupied != nil {
		unit.IsOccupied = *upd.IsOccupied
	}
	s.units[id] = unit
	return &unit, nil
}

func (r *memoryUnitRepo) Delete(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.units[id]
	if ok {
		delete(s.units, id)
	}
	return ok, nil
}
