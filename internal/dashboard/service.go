package dashboard

import (
	"context"
	"log"
	"sort"
	"time"

	"rentflow/internal/caching"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

const activityLimit = 10

// Service assembles the landlord dashboard from the underlying
// repositories. Results are cached per landlord and invalidated by the
// mutation paths in the entity services.
type Service interface {
	Summary(ctx context.Context, landlordID int64) (*models.DashboardSummary, error)
}

type service struct {
	propertyRepo repositories.PropertyRepository
	unitRepo     repositories.UnitRepository
	tenantRepo   repositories.TenantRepository
	paymentRepo  repositories.PaymentRepository
	cacheSvc     caching.CacheService
	cacheTTL     time.Duration
	now          func() time.Time
}

func NewService(
	propertyRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	tenantRepo repositories.TenantRepository,
	paymentRepo repositories.PaymentRepository,
	cacheSvc caching.CacheService,
	cacheTTL time.Duration,
) Service {
	return &service{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		tenantRepo:   tenantRepo,
		paymentRepo:  paymentRepo,
		cacheSvc:     cacheSvc,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

func (s *service) Summary(ctx context.Context, landlordID int64) (*models.DashboardSummary, error) {
	if s.cacheSvc != nil {
		cached, err := s.cacheSvc.GetDashboardSummary(ctx, landlordID)
		if err != nil {
			log.Printf("Dashboard cache lookup failed for landlord %d: %v", landlordID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	properties, err := s.propertyRepo.ListByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenantRepo.ListByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summary := &models.DashboardSummary{
		PropertiesCount:       len(properties),
		TenantsCount:          len(tenants),
		UpcomingPaymentsTotal: sumUpcoming(payments, now),
		OverduePaymentsTotal:  sumOverdue(payments, now),
		TenantActivity:        recentActivity(payments),
		MonthlyIncome:         monthlyIncome(payments, now),
	}

	summary.Properties = make([]models.PropertyWithUnits, 0, len(properties))
	for _, p := range properties {
		units, err := s.unitRepo.ListByProperty(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		summary.Properties = append(summary.Properties, models.PropertyWithUnits{Property: p, Units: units})
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetDashboardSummary(ctx, landlordID, summary, s.cacheTTL); err != nil {
			log.Printf("Dashboard cache store failed for landlord %d: %v", landlordID, err)
		}
	}

	return summary, nil
}

// sumUpcoming totals pending payments whose due date is strictly in the
// future. A payment due exactly now counts as neither upcoming nor
// overdue.
func sumUpcoming(payments []models.PaymentWithDetails, now time.Time) float64 {
	var total float64
	for _, p := range payments {
		if p.Payment.Status == models.PaymentPending && p.Payment.DueDate.After(now) {
			total += p.Payment.Amount
		}
	}
	return total
}

// sumOverdue totals payments already flagged overdue plus pending
// payments whose due date is strictly in the past.
func sumOverdue(payments []models.PaymentWithDetails, now time.Time) float64 {
	var total float64
	for _, p := range payments {
		if p.Payment.Status == models.PaymentOverdue ||
			(p.Payment.Status == models.PaymentPending && p.Payment.DueDate.Before(now)) {
			total += p.Payment.Amount
		}
	}
	return total
}

// recentActivity returns the ten most recently created payments, newest
// first, regardless of status.
func recentActivity(payments []models.PaymentWithDetails) []models.PaymentWithDetails {
	activity := make([]models.PaymentWithDetails, len(payments))
	copy(activity, payments)

	sort.Slice(activity, func(i, j int) bool {
		a, b := activity[i].Payment, activity[j].Payment
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID > b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	if len(activity) > activityLimit {
		activity = activity[:activityLimit]
	}
	return activity
}

// monthlyIncome buckets paid payments by the calendar month of their
// payment date over the last six months, oldest first. Months with no
// income appear with a zero amount.
func monthlyIncome(payments []models.PaymentWithDetails, now time.Time) []models.MonthlyIncome {
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	income := make([]models.MonthlyIncome, 0, 6)
	for i := 5; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0)

		var total float64
		for _, p := range payments {
			if p.Payment.Status != models.PaymentPaid || p.Payment.PaymentDate == nil {
				continue
			}
			paidAt := *p.Payment.PaymentDate
			if paidAt.Year() == month.Year() && paidAt.Month() == month.Month() {
				total += p.Payment.Amount
			}
		}

		income = append(income, models.MonthlyIncome{
			Month:  month.Format("January '06"),
			Amount: total,
		})
	}
	return income
}
