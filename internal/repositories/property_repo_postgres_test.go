package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentflow/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PropertyRepoPostgresTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    PropertyRepository
	context context.Context
}

func (suite *PropertyRepoPostgresTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewPropertyRepo(mock)
	suite.context = context.Background()
}

func (suite *PropertyRepoPostgresTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestPropertyRepoPostgresTestSuite(t *testing.T) {
	suite.Run(t, new(PropertyRepoPostgresTestSuite))
}

func (suite *PropertyRepoPostgresTestSuite) TestCreate_ScansBackIDAndCreatedAt() {
	property := &models.Property{
		LandlordID: 3,
		Name:       "Riverside Flats",
		Address:    "12 Quay St",
		City:       "Portland",
		State:      "OR",
		Zip:        "97201",
		TotalUnits: 8,
		IsActive:   true,
	}
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`
		INSERT INTO properties \(landlord_id, name, address, city, state, zip, total_units, is_active\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\)
		RETURNING id, created_at
	`).WithArgs(property.LandlordID, property.Name, property.Address, property.City,
		property.State, property.Zip, property.TotalUnits, property.IsActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), createdAt))

	err := suite.repo.Create(suite.context, property)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), property.ID)
	assert.Equal(suite.T(), createdAt, property.CreatedAt)
}

func (suite *PropertyRepoPostgresTestSuite) TestGet_Success() {
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`
		SELECT id, landlord_id, name, address, city, state, zip, total_units, is_active, created_at
		FROM properties
		WHERE id = \$1
	`).WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "landlord_id", "name", "address", "city", "state", "zip", "total_units", "is_active", "created_at"}).
			AddRow(int64(7), int64(3), "Riverside Flats", "12 Quay St", "Portland", "OR", "97201", 8, true, createdAt))

	property, err := suite.repo.Get(suite.context, 7)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), property.ID)
	assert.Equal(suite.T(), int64(3), property.LandlordID)
	assert.Equal(suite.T(), "Riverside Flats", property.Name)
	assert.Equal(suite.T(), 8, property.TotalUnits)
	assert.True(suite.T(), property.IsActive)
}

func (suite *PropertyRepoPostgresTestSuite) TestGet_NotFound() {
	suite.mock.ExpectQuery(`
		SELECT id, landlord_id, name, address, city, state, zip, total_units, is_active, created_at
		FROM properties
		WHERE id = \$1
	`).WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	property, err := suite.repo.Get(suite.context, 99)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
	assert.Nil(suite.T(), property)
}

func (suite *PropertyRepoPostgresTestSuite) TestListByLandlord_Success() {
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"id", "landlord_id", "name", "address", "city", "state", "zip", "total_units", "is_active", "created_at"}).
		AddRow(int64(1), int64(3), "Riverside Flats", "12 Quay St", "Portland", "OR", "97201", 8, true, createdAt).
		AddRow(int64(2), int64(3), "Hilltop Court", "5 Summit Ave", "Portland", "OR", "97210", 4, false, createdAt)

	suite.mock.ExpectQuery(`
		SELECT id, landlord_id, name, address, city, state, zip, total_units, is_active, created_at
		FROM properties
		WHERE landlord_id = \$1
	`).WithArgs(int64(3)).
		WillReturnRows(rows)

	properties, err := suite.repo.ListByLandlord(suite.context, 3)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), properties, 2)
	assert.Equal(suite.T(), "Riverside Flats", properties[0].Name)
	assert.Equal(suite.T(), "Hilltop Court", properties[1].Name)
}

func (suite *PropertyRepoPostgresTestSuite) TestListByLandlord_Empty() {
	rows := pgxmock.NewRows([]string{"id", "landlord_id", "name", "address", "city", "state", "zip", "total_units", "is_active", "created_at"})

	suite.mock.ExpectQuery(`
		SELECT id, landlord_id, name, address, city, state, zip, total_units, is_active, created_at
		FROM properties
		WHERE landlord_id = \$1
	`).WithArgs(int64(404)).
		WillReturnRows(rows)

	properties, err := suite.repo.ListByLandlord(suite.context, 404)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), properties)
}

func (suite *PropertyRepoPostgresTestSuite) TestUpdate_PartialFieldsViaCoalesce() {
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	upd := &models.PropertyUpdate{
		Name:       stringPtr("Riverside Flats II"),
		TotalUnits: intPtr(10),
	}

	suite.mock.ExpectQuery(`
		UPDATE properties
		SET name = COALESCE\(\$2, name\),
		    address = COALESCE\(\$3, address\),
		    city = COALESCE\(\$4, city\),
		    state = COALESCE\(\$5, state\),
		    zip = COALESCE\(\$6, zip\),
		    total_units = COALESCE\(\$7, total_units\),
		    is_active = COALESCE\(\$8, is_active\)
		WHERE id = \$1
		RETURNING id, landlord_id, name, address, city, state, zip, total_units, is_active, created_at
	`).WithArgs(int64(7), upd.Name, upd.Address, upd.City, upd.State, upd.Zip, upd.TotalUnits, upd.IsActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "landlord_id", "name", "address", "city", "state", "zip", "total_units", "is_active", "created_at"}).
			AddRow(int64(7), int64(3), "Riverside Flats II", "12 Quay St", "Portland", "OR", "97201", 10, true, createdAt))

	property, err := suite.repo.Update(suite.context, 7, upd)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Riverside Flats II", property.Name)
	assert.Equal(suite.T(), 10, property.TotalUnits)
	assert.Equal(suite.T(), "12 Quay St", property.Address)
}

func (suite *PropertyRepoPostgresTestSuite) TestUpdate_NotFound() {
	upd := &models.PropertyUpdate{Name: stringPtr("Ghost")}

	suite.mock.ExpectQuery(`UPDATE properties`).
		WithArgs(int64(99), upd.Name, upd.Address, upd.City, upd.State, upd.Zip, upd.TotalUnits, upd.IsActive).
		WillReturnError(pgx.ErrNoRows)

	property, err := suite.repo.Update(suite.context, 99, upd)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
	assert.Nil(suite.T(), property)
}

func (suite *PropertyRepoPostgresTestSuite) TestDelete_ReportsPresence() {
	suite.mock.ExpectExec(`DELETE FROM properties WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	present, err := suite.repo.Delete(suite.context, 7)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), present)

	suite.mock.ExpectExec(`DELETE FROM properties WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	present, err = suite.repo.Delete(suite.context, 7)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), present)
}

func (suite *PropertyRepoPostgresTestSuite) TestDelete_DatabaseError() {
	suite.mock.ExpectExec(`DELETE FROM properties WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(errors.New("database connection failed"))

	present, err := suite.repo.Delete(suite.context, 7)
	assert.Error(suite.T(), err)
	assert.False(suite.T(), present)
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func int64Ptr(i int64) *int64 {
	return &i
}
