package repositories

import (
	"context"

	"rentflow/internal/models"
)

type pgUnitRepo struct {
	db Querier
}

func NewUnitRepo(db Querier) UnitRepository {
	return &pgUnitRepo{db: db}
}

func (r *pgUnitRepo) Create(ctx context.Context, unit *models.Unit) error {
	query := `
		INSERT INTO units (property_id, unit_number, monthly_rent, bedrooms, bathrooms, is_occupied)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		unit.PropertyID, unit.UnitNumber, unit.MonthlyRent, unit.Bedrooms, unit.Bathrooms, unit.IsOccupied,
	).Scan(&unit.ID, &unit.CreatedAt)
}

func (r *pgUnitRepo) Get(ctx context.Context, id int64) (*models.Unit, error) {
	unit := &models.Unit{}
	query := `
		SELECT id, property_id, unit_number, monthly_rent, bedrooms, bathrooms, is_occupied, created_at
		FROM units
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&unit.ID, &unit.PropertyID, &unit.UnitNumber, &unit.MonthlyRent,
		&unit.Bedrooms, &unit.Bathrooms, &unit.IsOccupied, &unit.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return unit, nil
}

func (r *pgUnitRepo) ListByProperty(ctx context.Context, propertyID int64) ([]models.Unit, error) {
	query := `
		SELECT id, property_id, unit_number, monthly_rent, bedrooms, bathrooms, is_occupied, created_at
		FROM units
		WHERE property_id = $1
	`
	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := []models.Unit{}
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan(
			&u.ID, &u.PropertyID, &u.UnitNumber, &u.MonthlyRent,
			&u.Bedrooms, &u.Bathrooms, &u.IsOccupied, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *pgUnitRepo) Update(ctx context.Context, id int64, upd *models.UnitUpdate) (*models.Unit, error) {
	unit := &models.Unit{}
	query := `
		UPDATE units
		SET unit_number = COALESCE($2, unit_number),
		    monthly_rent = COALESCE($3, monthly_rent),
		    bedrooms = COALESCE($4, bedrooms),
		    bathrooms = COALESCE($5, bathrooms),
		    is_occupied = COALESCE($6, is_occupied)
		WHERE id = $1
		RETURNING id, property_id, unit_number, monthly_rent, bedrooms, bathrooms, is_occupied, created_at
	`
	err := r.db.QueryRow(ctx, query, id,
		upd.UnitNumber, upd.MonthlyRent, upd.Bedrooms, upd.Bathrooms, upd.IsOccupied,
	).Scan(
		&unit.ID, &unit.PropertyID, &unit.UnitNumber, &unit.MonthlyRent,
		&unit.Bedrooms, &unit.Bathrooms, &unit.IsOccupied, &unit.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return unit, nil
}

func (r *pgUnitRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
