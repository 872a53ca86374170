package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"rentflow/internal/caching"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
	"rentflow/internal/services"
)

// PaymentJobs holds the periodic payment sweeps run by the background
// scheduler. The store itself never promotes a payment to overdue; these
// jobs are the only writer of that transition.
type PaymentJobs struct {
	paymentRepo     repositories.PaymentRepository
	tenantRepo      repositories.TenantRepository
	unitRepo        repositories.UnitRepository
	propertyRepo    repositories.PropertyRepository
	notificationSvc services.NotificationService
	cacheSvc        caching.CacheService
	now             func() time.Time
}

// NewPaymentJobs creates the payment job set
func NewPaymentJobs(
	paymentRepo repositories.PaymentRepository,
	tenantRepo repositories.TenantRepository,
	unitRepo repositories.UnitRepository,
	propertyRepo repositories.PropertyRepository,
	notificationSvc services.NotificationService,
	cacheSvc caching.CacheService,
) *PaymentJobs {
	return &PaymentJobs{
		paymentRepo:     paymentRepo,
		tenantRepo:      tenantRepo,
		unitRepo:        unitRepo,
		propertyRepo:    propertyRepo,
		notificationSvc: notificationSvc,
		cacheSvc:        cacheSvc,
		now:             time.Now,
	}
}

// MarkOverduePayments flips pending payments whose due date has passed
// to overdue, notifies the tenant's user, and invalidates the owning
// landlord's dashboard cache.
func (j *PaymentJobs) MarkOverduePayments(ctx context.Context) error {
	now := j.now()

	pending, err := j.paymentRepo.ListPending(ctx)
	if err != nil {
		log.Printf("Overdue sweep: failed to list pending payments: %v", err)
		return err
	}

	marked := 0
	for _, payment := range pending {
		// Due exactly now is not yet overdue.
		if !payment.DueDate.Before(now) {
			continue
		}

		status := models.PaymentOverdue
		if _, err := j.paymentRepo.Update(ctx, payment.ID, &models.PaymentUpdate{Status: &status}); err != nil {
			log.Printf("Overdue sweep: failed to update payment %d: %v", payment.ID, err)
			continue
		}
		marked++

		lease, err := j.tenantRepo.Get(ctx, payment.TenantID)
		if err != nil {
			log.Printf("Overdue sweep: payment %d has no lease: %v", payment.ID, err)
			continue
		}

		message := fmt.Sprintf("Your rent payment of $%.2f due on %s is now overdue.",
			payment.Amount, payment.DueDate.Format("January 2, 2006"))
		if _, err := j.notificationSvc.Notify(ctx, lease.UserID, message, models.NotificationPaymentOverdue); err != nil {
			log.Printf("Overdue sweep: failed to notify user %d: %v", lease.UserID, err)
		}

		j.invalidateDashboardForLease(ctx, lease)
	}

	if marked > 0 {
		log.Printf("Overdue sweep: marked %d payments overdue", marked)
	}
	return nil
}

// SendRentReminders notifies tenant users of pending payments coming due
// within the lead window. A cache sentinel with a 24h TTL keeps each
// payment to one reminder per day.
func (j *PaymentJobs) SendRentReminders(ctx context.Context, leadDays int) error {
	now := j.now()
	cutoff := now.AddDate(0, 0, leadDays)

	pending, err := j.paymentRepo.ListPending(ctx)
	if err != nil {
		log.Printf("Rent reminders: failed to list pending payments: %v", err)
		return err
	}

	sent := 0
	for _, payment := range pending {
		if !payment.DueDate.After(now) || payment.DueDate.After(cutoff) {
			continue
		}

		key := fmt.Sprintf("rentflow:reminder:%d:%s", payment.ID, now.Format("2006-01-02"))
		fresh, err := j.cacheSvc.SetIfAbsent(ctx, key, "sent", 24*time.Hour)
		if err != nil {
			log.Printf("Rent reminders: dedupe check failed for payment %d: %v", payment.ID, err)
			continue
		}
		if !fresh {
			continue
		}

		lease, err := j.tenantRepo.Get(ctx, payment.TenantID)
		if err != nil {
			log.Printf("Rent reminders: payment %d has no lease: %v", payment.ID, err)
			continue
		}

		message := fmt.Sprintf("Reminder: your rent payment of $%.2f is due on %s.",
			payment.Amount, payment.DueDate.Format("January 2, 2006"))
		if _, err := j.notificationSvc.Notify(ctx, lease.UserID, message, models.NotificationRentReminder); err != nil {
			log.Printf("Rent reminders: failed to notify user %d: %v", lease.UserID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("Rent reminders: sent %d reminders", sent)
	}
	return nil
}

// invalidateDashboardForLease walks the lease to its landlord and drops
// the cached dashboard. A broken chain is logged and skipped.
func (j *PaymentJobs) invalidateDashboardForLease(ctx context.Context, lease *models.Tenant) {
	unit, err := j.unitRepo.Get(ctx, lease.UnitID)
	if err != nil {
		log.Printf("Dashboard invalidation: lease %d has no unit: %v", lease.ID, err)
		return
	}
	property, err := j.propertyRepo.Get(ctx, unit.PropertyID)
	if err != nil {
		log.Printf("Dashboard invalidation: unit %d has no property: %v", unit.ID, err)
		return
	}
	if err := j.cacheSvc.DeleteDashboardSummary(ctx, property.LandlordID); err != nil {
		log.Printf("Dashboard invalidation: failed for landlord %d: %v", property.LandlordID, err)
	}
}
