package repositories

import (
	"context"

	"rentflow/internal/models"
)

type pgPaymentRepo struct {
	db Querier
}

func NewPaymentRepo(db Querier) PaymentRepository {
	return &pgPaymentRepo{db: db}
}

func (r *pgPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (tenant_id, amount, due_date, payment_date, status, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		payment.TenantID, payment.Amount, payment.DueDate, payment.PaymentDate,
		string(payment.Status), payment.PaymentMethod, payment.Notes,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (r *pgPaymentRepo) Get(ctx context.Context, id int64) (*models.Payment, error) {
	payment := &models.Payment{}
	var status string
	query := `
		SELECT id, tenant_id, amount, due_date, payment_date, status, payment_method, notes, created_at
		FROM payments
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID, &payment.TenantID, &payment.Amount, &payment.DueDate,
		&payment.PaymentDate, &status, &payment.PaymentMethod, &payment.Notes, &payment.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	payment.Status = models.PaymentStatus(status)
	return payment, nil
}

func (r *pgPaymentRepo) ListByTenant(ctx context.Context, tenantID int64) ([]models.Payment, error) {
	query := `
		SELECT id, tenant_id, amount, due_date, payment_date, status, payment_method, notes, created_at
		FROM payments
		WHERE tenant_id = $1
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		var status string
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.Amount, &p.DueDate,
			&p.PaymentDate, &status, &p.PaymentMethod, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Status = models.PaymentStatus(status)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *pgPaymentRepo) ListByLandlord(ctx context.Context, landlordID int64) ([]models.PaymentWithDetails, error) {
	query := `
		SELECT pay.id, pay.tenant_id, pay.amount, pay.due_date, pay.payment_date, pay.status, pay.payment_method, pay.notes, pay.created_at,
		       t.id, t.user_id, t.unit_id, t.lease_start_date, t.lease_end_date, t.rent_due_day, t.is_active, t.created_at,
		       u.id, u.username, u.email, u.first_name, u.last_name, u.phone, u.role, u.created_at,
		       un.id, un.property_id, un.unit_number, un.monthly_rent, un.bedrooms, un.bathrooms, un.is_occupied, un.created_at,
		       p.id, p.landlord_id, p.name, p.address, p.city, p.state, p.zip, p.total_units, p.is_active, p.created_at
		FROM payments pay
		JOIN tenants t ON t.id = pay.tenant_id
		JOIN units un ON un.id = t.unit_id
		JOIN properties p ON p.id = un.property_id
		JOIN users u ON u.id = t.user_id
		WHERE p.landlord_id = $1
	`
	rows, err := r.db.Query(ctx, query, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.PaymentWithDetails{}
	for rows.Next() {
		var d models.PaymentWithDetails
		var status, role string
		if err := rows.Scan(
			&d.Payment.ID, &d.Payment.TenantID, &d.Payment.Amount, &d.Payment.DueDate,
			&d.Payment.PaymentDate, &status, &d.Payment.PaymentMethod, &d.Payment.Notes, &d.Payment.CreatedAt,
			&d.Tenant.ID, &d.Tenant.UserID, &d.Tenant.UnitID, &d.Tenant.LeaseStartDate,
			&d.Tenant.LeaseEndDate, &d.Tenant.RentDueDay, &d.Tenant.IsActive, &d.Tenant.CreatedAt,
			&d.User.ID, &d.User.Username, &d.User.Email, &d.User.FirstName,
			&d.User.LastName, &d.User.Phone, &role, &d.User.CreatedAt,
			&d.Unit.ID, &d.Unit.PropertyID, &d.Unit.UnitNumber, &d.Unit.MonthlyRent,
			&d.Unit.Bedrooms, &d.Unit.Bathrooms, &d.Unit.IsOccupied, &d.Unit.CreatedAt,
			&d.Property.ID, &d.Property.LandlordID, &d.Property.Name, &d.Property.Address,
			&d.Property.City, &d.Property.State, &d.Property.Zip, &d.Property.TotalUnits,
			&d.Property.IsActive, &d.Property.CreatedAt,
		); err != nil {
			return nil, err
		}
		d.Payment.Status = models.PaymentStatus(status)
		d.User.Role = models.Role(role)
		payments = append(payments, d)
	}
	return payments, rows.Err()
}

func (r *pgPaymentRepo) ListPending(ctx context.Context) ([]models.Payment, error) {
	query := `
		SELECT id, tenant_id, amount, due_date, payment_date, status, payment_method, notes, created_at
		FROM payments
		WHERE status = 'pending'
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		var status string
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.Amount, &p.DueDate,
			&p.PaymentDate, &status, &p.PaymentMethod, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Status = models.PaymentStatus(status)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *pgPaymentRepo) Update(ctx context.Context, id int64, upd *models.PaymentUpdate) (*models.Payment, error) {
	payment := &models.Payment{}
	var status string
	var updStatus *string
	if upd.Status != nil {
		s := string(*upd.Status)
		updStatus = &s
	}
	query := `
		UPDATE payments
		SET amount = COALESCE($2, amount),
		    due_date = COALESCE($3, due_date),
		    payment_date = COALESCE($4, payment_date),
		    status = COALESCE($5, status),
		    payment_method = COALESCE($6, payment_method),
		    notes = COALESCE($7, notes)
		WHERE id = $1
		RETURNING id, tenant_id, amount, due_date, payment_date, status, payment_method, notes, created_at
	`
	err := r.db.QueryRow(ctx, query, id,
		upd.Amount, upd.DueDate, upd.PaymentDate, updStatus, upd.PaymentMethod, upd.Notes,
	).Scan(
		&payment.ID, &payment.TenantID, &payment.Amount, &payment.DueDate,
		&payment.PaymentDate, &status, &payment.PaymentMethod, &payment.Notes, &payment.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	payment.Status = models.PaymentStatus(status)
	return payment, nil
}

func (r *pgPaymentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
