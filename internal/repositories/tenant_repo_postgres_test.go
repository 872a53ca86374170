package repositories

import (
	"context"
	"testing"
	"time"

	"rentflow/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TenantRepoPostgresTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    TenantRepository
	context context.Context
	start   time.Time
	end     time.Time
}

func (suite *TenantRepoPostgresTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewTenantRepo(mock)
	suite.context = context.Background()
	suite.start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *TenantRepoPostgresTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestTenantRepoPostgresTestSuite(t *testing.T) {
	suite.Run(t, new(TenantRepoPostgresTestSuite))
}

func (suite *TenantRepoPostgresTestSuite) tenantRow(id, userID, unitID int64, active bool, createdAt time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "unit_id", "lease_start_date", "lease_end_date", "rent_due_day", "is_active", "created_at"}).
		AddRow(id, userID, unitID, suite.start, suite.end, 1, active, createdAt)
}

func (suite *TenantRepoPostgresTestSuite) TestCreate_InsertsAndMarksUnitOccupied() {
	tenant := &models.Tenant{
		UserID:         4,
		UnitID:         9,
		LeaseStartDate: suite.start,
		LeaseEndDate:   suite.end,
		RentDueDay:     1,
		IsActive:       true,
	}
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`
		INSERT INTO tenants \(user_id, unit_id, lease_start_date, lease_end_date, rent_due_day, is_active\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)
		RETURNING id, created_at
	`).WithArgs(tenant.UserID, tenant.UnitID, tenant.LeaseStartDate, tenant.LeaseEndDate, tenant.RentDueDay, tenant.IsActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), createdAt))
	suite.mock.ExpectExec(`UPDATE units SET is_occupied = true WHERE id = \$1`).
		WithArgs(tenant.UnitID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.Create(suite.context, tenant)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), tenant.ID)
	assert.Equal(suite.T(), createdAt, tenant.CreatedAt)
}

func (suite *TenantRepoPostgresTestSuite) TestCreate_InactiveLeaseStillMarksUnitOccupied() {
	tenant := &models.Tenant{
		UserID:         4,
		UnitID:         9,
		LeaseStartDate: suite.start,
		LeaseEndDate:   suite.end,
		RentDueDay:     1,
		IsActive:       false,
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO tenants`).
		WithArgs(tenant.UserID, tenant.UnitID, tenant.LeaseStartDate, tenant.LeaseEndDate, tenant.RentDueDay, tenant.IsActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))
	// The occupancy write happens regardless of is_active.
	suite.mock.ExpectExec(`UPDATE units SET is_occupied = true WHERE id = \$1`).
		WithArgs(tenant.UnitID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.Create(suite.context, tenant)
	assert.NoError(suite.T(), err)
}

func (suite *TenantRepoPostgresTestSuite) TestCreate_InsertErrorRollsBack() {
	tenant := &models.Tenant{UserID: 4, UnitID: 9, LeaseStartDate: suite.start, LeaseEndDate: suite.end, RentDueDay: 1, IsActive: true}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO tenants`).
		WithArgs(tenant.UserID, tenant.UnitID, tenant.LeaseStartDate, tenant.LeaseEndDate, tenant.RentDueDay, tenant.IsActive).
		WillReturnError(assert.AnError)
	suite.mock.ExpectRollback()

	err := suite.repo.Create(suite.context, tenant)
	assert.Error(suite.T(), err)
}

func (suite *TenantRepoPostgresTestSuite) TestUpdate_MoveClearsOldUnitAndMarksNewUnit() {
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	newUnit := int64(12)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`
		SELECT id, user_id, unit_id, lease_start_date, lease_end_date, rent_due_day, is_active, created_at
		FROM tenants
		WHERE id = \$1
		FOR UPDATE
	`).WithArgs(int64(2)).
		WillReturnRows(suite.tenantRow(2, 4, 9, true, createdAt))
	suite.mock.ExpectExec(`
		UPDATE tenants
		SET unit_id = \$2, lease_start_date = \$3, lease_end_date = \$4, rent_due_day = \$5, is_active = \$6
		WHERE id = \$1
	`).WithArgs(int64(2), newUnit, suite.start, suite.end, 1, true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`
		UPDATE units SET is_occupied = false
		WHERE id = \$1
		  AND NOT EXISTS \(SELECT 1 FROM tenants WHERE unit_id = \$1 AND is_active AND id <> \$2\)
	`).WithArgs(int64(9), int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`UPDATE units SET is_occupied = true WHERE id = \$1`).
		WithArgs(newUnit).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	tenant, err := suite.repo.Update(suite.context, 2, &models.TenantUpdate{UnitID: &newUnit})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), newUnit, tenant.UnitID)
}

func (suite *TenantRepoPostgresTestSuite) TestUpdate_SameFieldsSkipOccupancyWrites() {
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	day := 15

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(2)).
		WillReturnRows(suite.tenantRow(2, 4, 9, true, createdAt))
	suite.mock.ExpectExec(`UPDATE tenants`).
		WithArgs(int64(2), int64(9), suite.start, suite.end, day, true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	tenant, err := suite.repo.Update(suite.context, 2, &models.TenantUpdate{RentDueDay: &day})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 15, tenant.RentDueDay)
	assert.Equal(suite.T(), int64(9), tenant.UnitID)
}

func (suite *TenantRepoPostgresTestSuite) TestUpdate_NotFoundRollsBack() {
	day := 15

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	tenant, err := suite.repo.Update(suite.context, 99, &models.TenantUpdate{RentDueDay: &day})
	assert.ErrorIs(suite.T(), err, ErrNotFound)
	assert.Nil(suite.T(), tenant)
}

func (suite *TenantRepoPostgresTestSuite) TestDelete_RemovesAndRecomputesUnit() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`DELETE FROM tenants WHERE id = \$1 RETURNING unit_id`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"unit_id"}).AddRow(int64(9)))
	suite.mock.ExpectExec(`
		UPDATE units SET is_occupied = false
		WHERE id = \$1
		  AND NOT EXISTS \(SELECT 1 FROM tenants WHERE unit_id = \$1 AND is_active\)
	`).WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	present, err := suite.repo.Delete(suite.context, 2)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), present)
}

func (suite *TenantRepoPostgresTestSuite) TestDelete_AbsentReportsNoPresence() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`DELETE FROM tenants WHERE id = \$1 RETURNING unit_id`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	present, err := suite.repo.Delete(suite.context, 99)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), present)
}

func (suite *TenantRepoPostgresTestSuite) TestGetByUserID_OrdersByEarliestLease() {
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`
		SELECT id, user_id, unit_id, lease_start_date, lease_end_date, rent_due_day, is_active, created_at
		FROM tenants
		WHERE user_id = \$1
		ORDER BY id
		LIMIT 1
	`).WithArgs(int64(4)).
		WillReturnRows(suite.tenantRow(2, 4, 9, true, createdAt))

	tenant, err := suite.repo.GetByUserID(suite.context, 4)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), tenant.ID)
}
