package dashboard

import (
	"context"
	"testing"
	"time"

	"rentflow/internal/models"
	"rentflow/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *repositories.MemoryStore
	users    repositories.UserRepository
	props    repositories.PropertyRepository
	units    repositories.UnitRepository
	tenants  repositories.TenantRepository
	payments repositories.PaymentRepository
	svc      *service
	now      time.Time
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = repositories.NewMemoryStore()
	suite.users = repositories.NewMemoryUserRepo(suite.store)
	suite.props = repositories.NewMemoryPropertyRepo(suite.store)
	suite.units = repositories.NewMemoryUnitRepo(suite.store)
	suite.tenants = repositories.NewMemoryTenantRepo(suite.store)
	suite.payments = repositories.NewMemoryPaymentRepo(suite.store)

	suite.now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	suite.svc = &service{
		propertyRepo: suite.props,
		unitRepo:     suite.units,
		tenantRepo:   suite.tenants,
		paymentRepo:  suite.payments,
		now:          func() time.Time { return suite.now },
	}
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

// seedPortfolio creates a landlord with one property, two units and a
// lease on the first unit, returning the landlord id and the lease.
func (suite *DashboardServiceTestSuite) seedPortfolio() (int64, *models.Tenant) {
	landlord := &models.User{Username: "landlord", Email: "landlord@example.com", Role: models.RoleLandlord}
	assert.NoError(suite.T(), suite.users.Create(suite.ctx, landlord))

	property := &models.Property{LandlordID: landlord.ID, Name: "Block A", TotalUnits: 2, IsActive: true}
	assert.NoError(suite.T(), suite.props.Create(suite.ctx, property))

	unitA := &models.Unit{PropertyID: property.ID, UnitNumber: "1A", MonthlyRent: 1000, Bedrooms: 2, Bathrooms: 1}
	assert.NoError(suite.T(), suite.units.Create(suite.ctx, unitA))
	unitB := &models.Unit{PropertyID: property.ID, UnitNumber: "1B", MonthlyRent: 1200, Bedrooms: 3, Bathrooms: 2}
	assert.NoError(suite.T(), suite.units.Create(suite.ctx, unitB))

	renter := &models.User{Username: "renter", Email: "renter@example.com", Role: models.RoleTenant}
	assert.NoError(suite.T(), suite.users.Create(suite.ctx, renter))

	lease := &models.Tenant{
		UserID:         renter.ID,
		UnitID:         unitA.ID,
		LeaseStartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		LeaseEndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RentDueDay:     1,
		IsActive:       true,
	}
	assert.NoError(suite.T(), suite.tenants.Create(suite.ctx, lease))

	return landlord.ID, lease
}

func (suite *DashboardServiceTestSuite) createPayment(tenantID int64, amount float64, dueDate time.Time, status models.PaymentStatus, paidAt *time.Time) *models.Payment {
	p := &models.Payment{TenantID: tenantID, Amount: amount, DueDate: dueDate, Status: status, PaymentDate: paidAt}
	assert.NoError(suite.T(), suite.payments.Create(suite.ctx, p))
	return p
}

func (suite *DashboardServiceTestSuite) TestSummary_Counts() {
	landlordID, _ := suite.seedPortfolio()

	summary, err := suite.svc.Summary(suite.ctx, landlordID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, summary.PropertiesCount)
	assert.Equal(suite.T(), 1, summary.TenantsCount)
}

func (suite *DashboardServiceTestSuite) TestSummary_PropertiesIncludeUnits() {
	landlordID, _ := suite.seedPortfolio()

	summary, err := suite.svc.Summary(suite.ctx, landlordID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), summary.Properties, 1)
	assert.Len(suite.T(), summary.Properties[0].Units, 2)
	assert.Equal(suite.T(), "1A", summary.Properties[0].Units[0].UnitNumber)
}

func (suite *DashboardServiceTestSuite) TestSummary_PaymentBuckets() {
	landlordID, lease := suite.seedPortfolio()

	// Strictly future and pending: upcoming.
	suite.createPayment(lease.ID, 100, suite.now.Add(24*time.Hour), models.PaymentPending, nil)
	// Strictly past and pending: overdue.
	suite.createPayment(lease.ID, 200, suite.now.Add(-24*time.Hour), models.PaymentPending, nil)
	// Flagged overdue regardless of date: overdue.
	suite.createPayment(lease.ID, 300, suite.now.Add(48*time.Hour), models.PaymentOverdue, nil)
	// Due exactly now: neither bucket.
	suite.createPayment(lease.ID, 400, suite.now, models.PaymentPending, nil)
	// Paid: neither bucket.
	paidAt := suite.now.Add(-time.Hour)
	suite.createPayment(lease.ID, 500, suite.now.Add(-48*time.Hour), models.PaymentPaid, &paidAt)

	summary, err := suite.svc.Summary(suite.ctx, landlordID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 100.0, summary.UpcomingPaymentsTotal)
	assert.Equal(suite.T(), 500.0, summary.OverduePaymentsTotal)
}

func (suite *DashboardServiceTestSuite) TestSummary_TenantActivityKeepsTenNewest() {
	landlordID, lease := suite.seedPortfolio()

	// Step the store clock so each payment gets a distinct created_at.
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	suite.store.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	for i := 1; i <= 12; i++ {
		suite.createPayment(lease.ID, float64(i), suite.now, models.PaymentPending, nil)
	}

	summary, err := suite.svc.Summary(suite.ctx, landlordID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), summary.TenantActivity, 10)
	// Newest first: the 12th payment leads, the 1st and 2nd fall off.
	assert.Equal(suite.T(), 12.0, summary.TenantActivity[0].Payment.Amount)
	assert.Equal(suite.T(), 3.0, summary.TenantActivity[9].Payment.Amount)
}

func (suite *DashboardServiceTestSuite) TestSummary_TenantActivityOrdersByCreationTime() {
	landlordID, lease := suite.seedPortfolio()

	// Run the clock backwards so insertion order and timestamps disagree.
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	suite.store.SetClock(func() time.Time {
		tick++
		return base.Add(-time.Duration(tick) * time.Minute)
	})

	suite.createPayment(lease.ID, 1, suite.now, models.PaymentPending, nil)
	suite.createPayment(lease.ID, 2, suite.now, models.PaymentPending, nil)
	suite.createPayment(lease.ID, 3, suite.now, models.PaymentPending, nil)

	summary, err := suite.svc.Summary(suite.ctx, landlordID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), summary.TenantActivity, 3)
	// The first payment carries the newest timestamp, so it leads.
	assert.Equal(suite.T(), 1.0, summary.TenantActivity[0].Payment.Amount)
	assert.Equal(suite.T(), 3.0, summary.TenantActivity[2].Payment.Amount)
}

func (suite *DashboardServiceTestSuite) TestSummary_TenantActivityIncludesAllStatuses() {
	landlordID, lease := suite.seedPortfolio()

	paidAt := suite.now
	suite.createPayment(lease.ID, 100, suite.now, models.PaymentPending, nil)
	suite.createPayment(lease.ID, 200, suite.now, models.PaymentPaid, &paidAt)
	suite.createPayment(lease.ID, 300, suite.now, models.PaymentOverdue, nil)

	summary, err := suite.svc.Summary(suite.ctx, landlordID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), summary.TenantActivity, 3)
}

func (suite *DashboardServiceTestSuite) TestSummary_MonthlyIncomeSixBucketsOldestFirst() {
	landlordID, lease := suite.seedPortfolio()

	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	febA := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	febB := time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC)
	suite.createPayment(lease.ID, 1000, jan, models.PaymentPaid, &jan)
	suite.createPayment(lease.ID, 1000, febA, models.PaymentPaid, &febA)
	suite.createPayment(lease.ID, 500, febB, models.PaymentPaid, &febB)
	// Pending payments never count toward income.
	suite.createPayment(lease.ID, 900, jan, models.PaymentPending, nil)
	// Paid but never dated: excluded from the buckets.
	suite.createPayment(lease.ID, 800, jan, models.PaymentPaid, nil)
	// Outside the six month window.
	old := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	suite.createPayment(lease.ID, 700, old, models.PaymentPaid, &old)

	summary, err := suite.svc.Summary(suite.ctx, landlordID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), summary.MonthlyIncome, 6)

	labels := make([]string, 0, 6)
	for _, m := range summary.MonthlyIncome {
		labels = append(labels, m.Month)
	}
	assert.Equal(suite.T(), []string{"October '25", "November '25", "December '25", "January '26", "February '26", "March '26"}, labels)

	assert.Equal(suite.T(), 0.0, summary.MonthlyIncome[0].Amount)
	assert.Equal(suite.T(), 1000.0, summary.MonthlyIncome[3].Amount)
	assert.Equal(suite.T(), 1500.0, summary.MonthlyIncome[4].Amount)
	assert.Equal(suite.T(), 0.0, summary.MonthlyIncome[5].Amount)
}

func (suite *DashboardServiceTestSuite) TestSummary_UnknownLandlordIsEmptyNotError() {
	landlordID, lease := suite.seedPortfolio()
	suite.createPayment(lease.ID, 100, suite.now.Add(24*time.Hour), models.PaymentPending, nil)

	summary, err := suite.svc.Summary(suite.ctx, landlordID+100)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, summary.PropertiesCount)
	assert.Equal(suite.T(), 0, summary.TenantsCount)
	assert.Equal(suite.T(), 0.0, summary.UpcomingPaymentsTotal)
	assert.Equal(suite.T(), 0.0, summary.OverduePaymentsTotal)
	assert.Empty(suite.T(), summary.Properties)
	assert.Empty(suite.T(), summary.TenantActivity)
	assert.Len(suite.T(), summary.MonthlyIncome, 6)
	for _, m := range summary.MonthlyIncome {
		assert.Equal(suite.T(), 0.0, m.Amount)
	}
}

func (suite *DashboardServiceTestSuite) TestSummary_CrossLandlordPaymentsExcluded() {
	landlordID, lease := suite.seedPortfolio()
	suite.createPayment(lease.ID, 100, suite.now.Add(24*time.Hour), models.PaymentPending, nil)

	// A second landlord with their own tenant and payment.
	other := &models.User{Username: "other", Email: "other@example.com", Role: models.RoleLandlord}
	assert.NoError(suite.T(), suite.users.Create(suite.ctx, other))
	property := &models.Property{LandlordID: other.ID, Name: "Block B", TotalUnits: 1, IsActive: true}
	assert.NoError(suite.T(), suite.props.Create(suite.ctx, property))
	unit := &models.Unit{PropertyID: property.ID, UnitNumber: "2A", MonthlyRent: 900}
	assert.NoError(suite.T(), suite.units.Create(suite.ctx, unit))
	renter := &models.User{Username: "renter2", Email: "renter2@example.com", Role: models.RoleTenant}
	assert.NoError(suite.T(), suite.users.Create(suite.ctx, renter))
	otherLease := &models.Tenant{
		UserID: renter.ID, UnitID: unit.ID,
		LeaseStartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		LeaseEndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RentDueDay:     1, IsActive: true,
	}
	assert.NoError(suite.T(), suite.tenants.Create(suite.ctx, otherLease))
	suite.createPayment(otherLease.ID, 999, suite.now.Add(24*time.Hour), models.PaymentPending, nil)

	summary, err := suite.svc.Summary(suite.ctx, landlordID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 100.0, summary.UpcomingPaymentsTotal)
	assert.Len(suite.T(), summary.TenantActivity, 1)
	for _, a := range summary.TenantActivity {
		assert.Equal(suite.T(), lease.ID, a.Payment.TenantID)
	}
}

// TestSummary_PortfolioWithPaidAndOverdueRent walks one landlord from an
// empty store to a populated dashboard: lease creation flips occupancy,
// settled rent lands in its income month, and yesterday's unpaid rent
// shows up overdue.
func (suite *DashboardServiceTestSuite) TestSummary_PortfolioWithPaidAndOverdueRent() {
	landlord := &models.User{Username: "landlord", Email: "landlord@example.com", Role: models.RoleLandlord}
	assert.NoError(suite.T(), suite.users.Create(suite.ctx, landlord))
	property := &models.Property{LandlordID: landlord.ID, Name: "Maple House", TotalUnits: 1, IsActive: true}
	assert.NoError(suite.T(), suite.props.Create(suite.ctx, property))
	unit := &models.Unit{PropertyID: property.ID, UnitNumber: "1", MonthlyRent: 1000}
	assert.NoError(suite.T(), suite.units.Create(suite.ctx, unit))
	renter := &models.User{Username: "renter", Email: "renter@example.com", Role: models.RoleTenant}
	assert.NoError(suite.T(), suite.users.Create(suite.ctx, renter))

	lease := &models.Tenant{
		UserID:         renter.ID,
		UnitID:         unit.ID,
		LeaseStartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		LeaseEndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RentDueDay:     1,
		IsActive:       true,
	}
	assert.NoError(suite.T(), suite.tenants.Create(suite.ctx, lease))

	occupied, err := suite.units.Get(suite.ctx, unit.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), occupied.IsOccupied)

	// February rent, settled in February.
	lastMonth := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	suite.createPayment(lease.ID, 1000, lastMonth, models.PaymentPaid, &lastMonth)
	// March rent, a day late and still pending.
	suite.createPayment(lease.ID, 1000, suite.now.Add(-24*time.Hour), models.PaymentPending, nil)

	summary, err := suite.svc.Summary(suite.ctx, landlord.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, summary.PropertiesCount)
	assert.Equal(suite.T(), 1, summary.TenantsCount)
	assert.Equal(suite.T(), 0.0, summary.UpcomingPaymentsTotal)
	assert.Equal(suite.T(), 1000.0, summary.OverduePaymentsTotal)

	assert.Len(suite.T(), summary.MonthlyIncome, 6)
	assert.Equal(suite.T(), "February '26", summary.MonthlyIncome[4].Month)
	assert.Equal(suite.T(), 1000.0, summary.MonthlyIncome[4].Amount)
	// The overdue March payment is not income.
	assert.Equal(suite.T(), 0.0, summary.MonthlyIncome[5].Amount)
}

func (suite *DashboardServiceTestSuite) TestSummary_ActivityEnrichment() {
	landlordID, lease := suite.seedPortfolio()
	suite.createPayment(lease.ID, 100, suite.now, models.PaymentPending, nil)

	summary, err := suite.svc.Summary(suite.ctx, landlordID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), summary.TenantActivity, 1)

	a := summary.TenantActivity[0]
	assert.Equal(suite.T(), "renter", a.User.Username)
	assert.Equal(suite.T(), "1A", a.Unit.UnitNumber)
	assert.Equal(suite.T(), "Block A", a.Property.Name)
	assert.Equal(suite.T(), lease.ID, a.Tenant.ID)
}
