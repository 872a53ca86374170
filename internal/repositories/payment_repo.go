package repositories

import (
	"context"

	"rentflow/internal/models"
)

type PaymentRepository interface {
	Get(ctx context.Context, id int64) (*models.Payment, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]models.Payment, error)
	ListByLandlord(ctx context.Context, landlordID int64) ([]models.PaymentWithDetails, error)
	ListPending(ctx context.Context) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, id int64, upd *models.PaymentUpdate) (*models.Payment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type memoryPaymentRepo struct {
	store *MemoryStore
}

func NewMemoryPaymentRepo(store *MemoryStore) PaymentRepository {
	return &memoryPaymentRepo{store: store}
}

func (r *memoryPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	payment.ID = s.nextPaymentID
	s.nextPaymentID++
	payment.CreatedAt = s.now()
	s.payments[payment.ID] = *payment
	return nil
}

func (r *memoryPaymentRepo) Get(ctx context.Context, id int64) (*models.Payment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &payment, nil
}

// ListByTenant is a direct filter with no enrichment.
func (r *memoryPaymentRepo) ListByTenant(ctx context.Context, tenantID int64) ([]models.Payment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments := []models.Payment{}
	for _, p := range s.payments {
		if p.TenantID == tenantID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

// ListByLandlord resolves the landlord's lease set first, then filters
// payments by it, so a payment can never leak across landlords. Unknown
// landlord ids yield an empty slice.
func (r *memoryPaymentRepo) ListByLandlord(ctx context.Context, landlordID int64) ([]models.PaymentWithDetails, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	detailsByTenant := make(map[int64]models.TenantWithDetails)
	for _, td := range s.tenantsWithDetailsForLandlord(landlordID) {
		detailsByTenant[td.Tenant.ID] = td
	}

	payments := []models.PaymentWithDetails{}
	for _, p := range s.payments {
		td, ok := detailsByTenant[p.TenantID]
		if !ok {
			continue
		}
		payments = append(payments, models.PaymentWithDetails{
			Payment:  p,
			Tenant:   td.Tenant,
			User:     td.User,
			Unit:     td.Unit,
			Property: td.Property,
		})
	}
	return payments, nil
}

// ListPending returns every pending payment across all landlords. The
// background sweeps use it to find payments to promote or remind on.
func (r *memoryPaymentRepo) ListPending(ctx context.Context) ([]models.Payment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments := []models.Payment{}
	for _, p := range s.payments {
		if p.Status == models.PaymentPending {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (r *memoryPaymentRepo) Update(ctx context.Context, id int64, upd *models.PaymentUpdate) (*models.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Amount != nil {
		payment.Amount = *upd.Amount
	}
	if upd.DueDate != nil {
		payment.DueDate = *upd.DueDate
	}
	if upd.PaymentDate != nil {
		payment.PaymentDate = upd.PaymentDate
	}
	if upd.Status != nil {
		payment.Status = *upd.Status
	}
	if upd.PaymentMethod != nil {
		payment.PaymentMethod = upd.PaymentMethod
	}
	if upd.Notes != nil {
		payment.Notes = upd.Notes
	}
	s.payments[id] = payment
	return &payment, nil
}

func (r *memoryPaymentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.payments[id]
	if ok {
		delete(s.payments, id)
	}
	return ok, nil
}
