package models

import "time"

// Tenant is the lease association record linking a tenant-role User to a
// Unit. The User role and this entity share a name; the entity is always
// the lease record.
type Tenant struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	UnitID         int64     `json:"unit_id" db:"unit_id"`
	LeaseStartDate time.Time `json:"lease_start_date" db:"lease_start_date"`
	LeaseEndDate   time.Time `json:"lease_end_date" db:"lease_end_date"`
	RentDueDay     int       `json:"rent_due_day" db:"rent_due_day"` // day of month, 1-31
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// TenantUpdate carries a partial update; nil fields are left untouched.
// Setting UnitID to a different unit moves the lease and triggers the
// occupancy bookkeeping on both units.
type TenantUpdate struct {
	UnitID         *int64     `json:"unit_id"`
	LeaseStartDate *time.Time `json:"lease_start_date"`
	LeaseEndDate   *time.Time `json:"lease_end_date"`
	RentDueDay     *int       `json:"rent_due_day"`
	IsActive       *bool      `json:"is_active"`
}

// TenantWithDetails is the landlord-facing join view: the lease record
// together with its user and its unit/property chain.
type TenantWithDetails struct {
	Tenant
	User     User     `json:"user"`
	Unit     Unit     `json:"unit"`
	Property Property `json:"property"`
}
