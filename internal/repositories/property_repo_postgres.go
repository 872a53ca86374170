package repositories

import (
	"context"

	"rentflow/internal/models"
)

type pgPropertyRepo struct {
	db Querier
}

func NewPropertyRepo(db Querier) PropertyRepository {
	return &pgPropertyRepo{db: db}
}

func (r *pgPropertyRepo) Create(ctx context.Context, property *models.Property) error {
	query := `
		INSERT INTO properties (landlord_id, name, address, city, state, zip, total_units, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		property.LandlordID, property.Name, property.Address, property.City,
		property.State, property.Zip, property.TotalUnits, property.IsActive,
	).Scan(&property.ID, &property.CreatedAt)
}

func (r *pgPropertyRepo) Get(ctx context.Context, id int64) (*models.Property, error) {
	property := &models.Property{}
	query := `
		SELECT id, landlord_id, name, address, city, state, zip, total_units, is_active, created_at
		FROM properties
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&property.ID, &property.LandlordID, &property.Name, &property.Address, &property.City,
		&property.State, &property.Zip, &property.TotalUnits, &property.IsActive, &property.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return property, nil
}

func (r *pgPropertyRepo) ListByLandlord(ctx context.Context, landlordID int64) ([]models.Property, error) {
	query := `
		SELECT id, landlord_id, name, address, city, state, zip, total_units, is_active, created_at
		FROM properties
		WHERE landlord_id = $1
	`
	rows, err := r.db.Query(ctx, query, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(
			&p.ID, &p.LandlordID, &p.Name, &p.Address, &p.City,
			&p.State, &p.Zip, &p.TotalUnits, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *pgPropertyRepo) Update(ctx context.Context, id int64, upd *models.PropertyUpdate) (*models.Property, error) {
	property := &models.Property{}
	query := `
		UPDATE properties
		SET name = COALESCE($2, name),
		    address = COALESCE($3, address),
		    city = COALESCE($4, city),
		    state = COALESCE($5, state),
		    zip = COALESCE($6, zip),
		    total_units = COALESCE($7, total_units),
		    is_active = COALESCE($8, is_active)
		WHERE id = $1
		RETURNING id, landlord_id, name, address, city, state, zip, total_units, is_active, created_at
	`
	err := r.db.QueryRow(ctx, query, id,
		upd.Name, upd.Address, upd.City, upd.State, upd.Zip, upd.TotalUnits, upd.IsActive,
	).Scan(
		&property.ID, &property.LandlordID, &property.Name, &property.Address, &property.City,
		&property.State, &property.Zip, &property.TotalUnits, &property.IsActive, &property.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return property, nil
}

func (r *pgPropertyRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
