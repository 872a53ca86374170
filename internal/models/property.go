package models

import "time"

type Property struct {
	ID         int64     `json:"id" db:"id"`
	LandlordID int64     `json:"landlord_id" db:"landlord_id"`
	Name       string    `json:"name" db:"name"`
	Address    string    `json:"address" db:"address"`
	City       string    `json:"city" db:"city"`
	State      string    `json:"state" db:"state"`
	Zip        string    `json:"zip" db:"zip"`
	TotalUnits int       `json:"total_units" db:"total_units"` // declared target, not reconciled against unit rows
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PropertyUpdate carries a partial update; nil fields are left untouched.
type PropertyUpdate struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	Zip        *string `json:"zip"`
	TotalUnits *int    `json:"total_units"`
	IsActive   *bool   `json:"is_active"`
}

// PropertyWithUnits is the dashboard view of a property and all of its units.
type PropertyWithUnits struct {
	Property
	Units []Unit `json:"units"`
}
