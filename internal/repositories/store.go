package repositories

import (
	"errors"
	"sync"
	"time"

	"rentflow/internal/models"
)

// ErrNotFound is the absent marker returned by every repository when an id
// does not resolve to a row. The postgres backend translates pgx.ErrNoRows
// to it so callers check one sentinel regardless of backend.
var ErrNotFound = errors.New("record not found")

// MemoryStore is the in-memory storage backend: one map per entity keyed by
// id, with per-entity monotonic counters starting at 1. Ids are never
// reused for the life of the process, even after deletes. A single RWMutex
// guards all maps so that multi-record mutations (the tenant/unit occupancy
// writes) run inside one critical section.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[int64]models.User
	properties    map[int64]models.Property
	units         map[int64]models.Unit
	tenants       map[int64]models.Tenant
	payments      map[int64]models.Payment
	notifications map[int64]models.Notification

	nextUserID         int64
	nextPropertyID     int64
	nextUnitID         int64
	nextTenantID       int64
	nextPaymentID      int64
	nextNotificationID int64

	now func() time.Time
}

// SetClock replaces the timestamp source used to stamp created_at on new
// records. Tests install a fixed or stepped clock to get deterministic
// ordering.
func (s *MemoryStore) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = clock
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[int64]models.User),
		properties:    make(map[int64]models.Property),
		units:         make(map[int64]models.Unit),
		tenants:       make(map[int64]models.Tenant),
		payments:      make(map[int64]models.Payment),
		notifications: make(map[int64]models.Notification),

		nextUserID:         1,
		nextPropertyID:     1,
		nextUnitID:         1,
		nextTenantID:       1,
		nextPaymentID:      1,
		nextNotificationID: 1,

		now: time.Now,
	}
}

// tenantsWithDetailsForLandlord walks landlord -> properties -> units ->
// tenants and enriches each lease with its user and unit/property chain.
// Results are in scan order, which is not stable; callers needing a stable
// order sort explicitly. Callers must hold at least a read lock.
func (s *MemoryStore) tenantsWithDetailsForLandlord(landlordID int64) []models.TenantWithDetails {
	propertiesByID := make(map[int64]models.Property)
	for _, p := range s.properties {
		if p.LandlordID == landlordID {
			propertiesByID[p.ID] = p
		}
	}

	unitsByID := make(map[int64]models.Unit)
	for _, u := range s.units {
		if _, ok := propertiesByID[u.PropertyID]; ok {
			unitsByID[u.ID] = u
		}
	}

	details := []models.TenantWithDetails{}
	for _, t := range s.tenants {
		unit, ok := unitsByID[t.UnitID]
		if !ok {
			continue
		}
		details = append(details, models.TenantWithDetails{
			Tenant:   t,
			User:     s.users[t.UserID],
			Unit:     unit,
			Property: propertiesByID[unit.PropertyID],
		})
	}
	return details
}
