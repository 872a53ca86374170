package models

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

type Payment struct {
	ID            int64         `json:"id" db:"id"`
	TenantID      int64         `json:"tenant_id" db:"tenant_id"`
	Amount        float64       `json:"amount" db:"amount"`
	DueDate       time.Time     `json:"due_date" db:"due_date"`
	PaymentDate   *time.Time    `json:"payment_date" db:"payment_date"`
	Status        PaymentStatus `json:"status" db:"status"`
	PaymentMethod *string       `json:"payment_method" db:"payment_method"`
	Notes         *string       `json:"notes" db:"notes"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// PaymentUpdate carries a partial update; nil fields are left untouched.
type PaymentUpdate struct {
	Amount        *float64       `json:"amount"`
	DueDate       *time.Time     `json:"due_date"`
	PaymentDate   *time.Time     `json:"payment_date"`
	Status        *PaymentStatus `json:"status"`
	PaymentMethod *string        `json:"payment_method"`
	Notes         *string        `json:"notes"`
}

// PaymentWithDetails is the landlord-facing join view: the payment together
// with its full tenant/user/unit/property chain.
type PaymentWithDetails struct {
	Payment
	Tenant   Tenant   `json:"tenant"`
	User     User     `json:"user"`
	Unit     Unit     `json:"unit"`
	Property Property `json:"property"`
}
