package repositories

import (
	"context"

	"rentflow/internal/models"
)

type pgTenantRepo struct {
	db Querier
}

func NewTenantRepo(db Querier) TenantRepository {
	return &pgTenantRepo{db: db}
}

func (r *pgTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	insert := `
		INSERT INTO tenants (user_id, unit_id, lease_start_date, lease_end_date, rent_due_day, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, insert,
		tenant.UserID, tenant.UnitID, tenant.LeaseStartDate, tenant.LeaseEndDate, tenant.RentDueDay, tenant.IsActive,
	).Scan(&tenant.ID, &tenant.CreatedAt)
	if err != nil {
		tx.Rollback(ctx)
		return err
	}

	// Occupied unconditionally, regardless of the lease's IsActive value.
	if _, err := tx.Exec(ctx, `UPDATE units SET is_occupied = true WHERE id = $1`, tenant.UnitID); err != nil {
		tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (r *pgTenantRepo) Get(ctx context.Context, id int64) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, user_id, unit_id, lease_start_date, lease_end_date, rent_due_day, is_active, created_at
		FROM tenants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tenant.ID, &tenant.UserID, &tenant.UnitID, &tenant.LeaseStartDate,
		&tenant.LeaseEndDate, &tenant.RentDueDay, &tenant.IsActive, &tenant.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return tenant, nil
}

func (r *pgTenantRepo) GetByUserID(ctx context.Context, userID int64) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, user_id, unit_id, lease_start_date, lease_end_date, rent_due_day, is_active, created_at
		FROM tenants
		WHERE user_id = $1
		ORDER BY id
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&tenant.ID, &tenant.UserID, &tenant.UnitID, &tenant.LeaseStartDate,
		&tenant.LeaseEndDate, &tenant.RentDueDay, &tenant.IsActive, &tenant.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return tenant, nil
}

func (r *pgTenantRepo) ListByLandlord(ctx context.Context, landlordID int64) ([]models.TenantWithDetails, error) {
	query := `
		SELECT t.id, t.user_id, t.unit_id, t.lease_start_date, t.lease_end_date, t.rent_due_day, t.is_active, t.created_at,
		       u.id, u.username, u.email, u.first_name, u.last_name, u.phone, u.role, u.created_at,
		       un.id, un.property_id, un.unit_number, un.monthly_rent, un.bedrooms, un.bathrooms, un.is_occupied, un.created_at,
		       p.id, p.landlord_id, p.name, p.address, p.city, p.state, p.zip, p.total_units, p.is_active, p.created_at
		FROM tenants t
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

	details := []models.TenantWithDetails{}
	for rows.Next() {
		var d models.TenantWithDetails
		var role string
		if err := rows.Scan(
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
		d.User.Role = models.Role(role)
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *pgTenantRepo) Update(ctx context.Context, id int64, upd *models.TenantUpdate) (*models.Tenant, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{}
	selectQuery := `
		SELECT id, user_id, unit_id, lease_start_date, lease_end_date, rent_due_day, is_active, created_at
		FROM tenants
		WHERE id = $1
		FOR UPDATE
	`
	err = tx.QueryRow(ctx, selectQuery, id).Scan(
		&tenant.ID, &tenant.UserID, &tenant.UnitID, &tenant.LeaseStartDate,
		&tenant.LeaseEndDate, &tenant.RentDueDay, &tenant.IsActive, &tenant.CreatedAt,
	)
	if err != nil {
		tx.Rollback(ctx)
		return nil, notFound(err)
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

	update := `
		UPDATE tenants
		SET unit_id = $2, lease_start_date = $3, lease_end_date = $4, rent_due_day = $5, is_active = $6
		WHERE id = $1
	`
	_, err = tx.Exec(ctx, update, id,
		tenant.UnitID, tenant.LeaseStartDate, tenant.LeaseEndDate, tenant.RentDueDay, tenant.IsActive,
	)
	if err != nil {
		tx.Rollback(ctx)
		return nil, err
	}

	if upd.UnitID != nil && *upd.UnitID != oldUnitID {
		// Clear the old unit only when no other active lease references it.
		clearOld := `
			UPDATE units SET is_occupied = false
			WHERE id = $1
			  AND NOT EXISTS (SELECT 1 FROM tenants WHERE unit_id = $1 AND is_active AND id <> $2)
		`
		if _, err := tx.Exec(ctx, clearOld, oldUnitID, id); err != nil {
			tx.Rollback(ctx)
			return nil, err
		}
		// The new unit is flagged occupied even when the moved lease is
		// inactive; only the old unit gets the active-lease recompute.
		if _, err := tx.Exec(ctx, `UPDATE units SET is_occupied = true WHERE id = $1`, tenant.UnitID); err != nil {
			tx.Rollback(ctx)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *pgTenantRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}

	var unitID int64
	err = tx.QueryRow(ctx, `DELETE FROM tenants WHERE id = $1 RETURNING unit_id`, id).Scan(&unitID)
	if err != nil {
		tx.Rollback(ctx)
		if notFound(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}

	clear := `
		UPDATE units SET is_occupied = false
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM tenants WHERE unit_id = $1 AND is_active)
	`
	if _, err := tx.Exec(ctx, clear, unitID); err != nil {
		tx.Rollback(ctx)
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
