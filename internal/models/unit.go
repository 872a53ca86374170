package models

import "time"

type Unit struct {
	ID          int64     `json:"id" db:"id"`
	PropertyID  int64     `json:"property_id" db:"property_id"`
	UnitNumber  string    `json:"unit_number" db:"unit_number"`
	MonthlyRent float64   `json:"monthly_rent" db:"monthly_rent"`
	Bedrooms    int       `json:"bedrooms" db:"bedrooms"`
	Bathrooms   float64   `json:"bathrooms" db:"bathrooms"`
	IsOccupied  bool      `json:"is_occupied" db:"is_occupied"` // denormalized, maintained by tenant mutations
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// UnitUpdate carries a partial update; nil fields are left untouched.
type UnitUpdate struct {
	UnitNumber  *string  `json:"unit_number"`
	MonthlyRent *float64 `json:"monthly_rent"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *float64 `json:"bathrooms"`
	IsOccupied  *bool    `json:"is_occupied"`
}
