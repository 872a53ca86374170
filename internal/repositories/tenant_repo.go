package repositories

import (
	"context"

	"rentflow/internal/models"
)

// TenantRepository stores lease records. Create, Update and Delete also
// maintain the denormalized Unit.IsOccupied flag; each of those mutations
// runs as a single critical section so the tenant write and the unit write
// can never interleave with another mutation.
type TenantRepository interface {
	Get(ctx context.Context, id int64) (*models.Tenant, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Tenant, error)
	ListByLandlord(ctx context.Context, landlordID int64) ([]models.TenantWithDetails, error)
	Create(ctx context.Context, tenant *models.Tenant) error
	Update(ctx context.Context, id int64, upd *models.TenantUpdate) (*models.Tenant, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type memoryTenantRepo struct {
	store *MemoryStore
}

func NewMemoryTenantRepo(store *MemoryStore) TenantRepository {
	return &memoryTenantRepo{store: store}
}

func (r *memoryTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant.ID = s.nextTenantID
	s.nextTenantID++
	tenant.CreatedAt = s.now()
	s.tenants[tenant.ID] = *tenant

	// The target unit is flagged occupied unconditionally, regardless of
	// the lease's IsActive value.
	if unit, ok := s.units[tenant.UnitID]; ok {
		unit.IsOccupied = true
		s.units[tenant.UnitID] = unit
	}
	return nil
}

func (r *memoryTenantRepo) Get(ctx context.Context, id int64) (*models.Tenant, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant, ok := s.tenants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &tenant, nil
}

// GetByUserID returns the earliest lease record for the user (lowest id)
// when more than one exists.
func (r *memoryTenantRepo) GetByUserID(ctx context.Context, userID int64) (*models.Tenant, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Tenant
	for _, t := range s.tenants {
		if t.UserID != userID {
			continue
		}
		if found == nil || t.ID < found.ID {
			t := t
			found = &t
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *memoryTenantRepo) ListByLandlord(ctx context.Context, landlordID int64) ([]models.TenantWithDetails, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tenantsWithDetailsForLandlord(landlordID), nil
}

func (r *memoryTenantRepo) Update(ctx context.Context, id int64, upd *models.TenantUpdate) (*models.Tenant, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant, ok := s.tenants[id]
	if !ok {
		return nil, ErrNotFound
	}
	oldUnitID := tenant.UnitID

	if upd.UnitID != nil {
		tenant.UnitID = *upd.UnitID
	}
	if upd.LeaseStartDate != nil {
		tenant.LeaseStartDate = *upd.LeaseStartDate
	}
	if upd.LeaseEndDate != nil {
		tenant.LeaseEndDate = *upd.LeaseEndDate
	}
	if upd.RentDueDay != nil {
		tenant.RentDueDay = *upd.RentDueDay
	}
	if upd.IsActive != nil {
		tenant.IsActive = *upd.IsActive
	}
	s.tenants[id] = tenant

	// Occupancy is only touched when the lease moves units. In particular,
	// deactivating a lease in place leaves its unit flagged occupied.
	if upd.UnitID != nil && *upd.UnitID != oldUnitID {
		r.clearUnitIfVacant(oldUnitID, id)
		// The new unit is flagged occupied even when the moved lease is
		// inactive; only the old unit gets the active-lease recompute.
		if unit, ok := s.units[tenant.UnitID]; ok {
			unit.IsOccupied = true
			s.units[tenant.UnitID] = unit
		}
	}
	return &tenant, nil
}

func (r *memoryTenantRepo) Delete(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant, ok := s.tenants[id]
	if !ok {
		return false, nil
	}
	delete(s.tenants, id)
	r.clearUnitIfVacant(tenant.UnitID, id)
	return true, nil
}

// clearUnitIfVacant flags the unit vacant unless some other active lease
// still references it. The occupancy signal is "any active lease", not a
// 1:1 tenancy constraint. Callers must hold the write lock.
func (r *memoryTenantRepo) clearUnitIfVacant(unitID, excludeTenantID int64) {
	s := r.store
	for _, t := range s.tenants {
		if t.UnitID == unitID && t.IsActive && t.ID != excludeTenantID {
			return
		}
	}
	if unit, ok := s.units[unitID]; ok {
		unit.IsOccupied = false
		s.units[unitID] = unit
	}
}
