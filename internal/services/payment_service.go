package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rentflow/internal/caching"
	"rentflow/internal/common"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

// PaymentService manages rent payments. Landlords record and edit
// payments for their own tenants; renters can settle their own.
// Payment events raise in-app notifications for the affected users.
type PaymentService interface {
	Create(ctx context.Context, landlordID int64, req *CreatePaymentRequest) (*models.Payment, error)
	GetForLandlord(ctx context.Context, landlordID, id int64) (*models.Payment, error)
	ListForLandlord(ctx context.Context, landlordID int64) ([]models.PaymentWithDetails, error)
	ListForTenantUser(ctx context.Context, userID int64) ([]models.Payment, error)
	Update(ctx context.Context, landlordID, id int64, upd *models.PaymentUpdate) (*models.Payment, error)
	Delete(ctx context.Context, landlordID, id int64) error
	Process(ctx context.Context, userID int64, role models.Role, id int64, req *ProcessPaymentRequest) (*models.Payment, error)
	GetReceiptData(ctx context.Context, userID int64, role models.Role, id int64) (*models.PaymentWithDetails, error)
}

type paymentService struct {
	paymentRepo     repositories.PaymentRepository
	tenantRepo      repositories.TenantRepository
	unitRepo        repositories.UnitRepository
	propertyRepo    repositories.PropertyRepository
	userRepo        repositories.UserRepository
	notificationSvc NotificationService
	cacheSvc        caching.CacheService
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	tenantRepo repositories.TenantRepository,
	unitRepo repositories.UnitRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	notificationSvc NotificationService,
	cacheSvc caching.CacheService,
) PaymentService {
	return &paymentService{
		paymentRepo:     paymentRepo,
		tenantRepo:      tenantRepo,
		unitRepo:        unitRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		cacheSvc:        cacheSvc,
	}
}

type CreatePaymentRequest struct {
	TenantID int64                `json:"tenant_id" validate:"required"`
	Amount   float64              `json:"amount" validate:"required"`
	DueDate  time.Time            `json:"due_date" validate:"required"`
	Status   models.PaymentStatus `json:"status"`
	Notes    *string              `json:"notes"`
}

type ProcessPaymentRequest struct {
	PaymentMethod string  `json:"payment_method" validate:"required"`
	Notes         *string `json:"notes"`
}

func (s *paymentService) Create(ctx context.Context, landlordID int64, req *CreatePaymentRequest) (*models.Payment, error) {
	if err := common.SanitizeHTMLField(req.Notes, "payment notes"); err != nil {
		return nil, common.SecureErrorMessage("sanitize payment notes", err)
	}
	if err := common.ValidatePositiveFloat(req.Amount, "amount", 10000000); err != nil {
		return nil, err
	}
	if req.DueDate.IsZero() {
		return nil, errors.New("due_date is required")
	}

	lease, err := s.tenantRepo.Get(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	owner, err := s.leaseLandlord(ctx, lease)
	if err != nil {
		return nil, err
	}
	if owner != landlordID {
		return nil, repositories.ErrNotFound
	}

	status := req.Status
	if status == "" {
		status = models.PaymentPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid payment status: %s", status)
	}

	payment := &models.Payment{
		TenantID: req.TenantID,
		Amount:   req.Amount,
		DueDate:  req.DueDate,
		Status:   status,
		Notes:    req.Notes,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.notify(ctx, lease.UserID,
		fmt.Sprintf("A rent payment of $%.2f is due on %s.", payment.Amount, payment.DueDate.Format("January 2, 2006")),
		models.NotificationPaymentDue)
	s.invalidateDashboard(ctx, landlordID)
	return payment, nil
}

func (s *paymentService) GetForLandlord(ctx context.Context, landlordID, id int64) (*models.Payment, error) {
	payment, _, owner, err := s.paymentChain(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner != landlordID {
		return nil, repositories.ErrNotFound
	}
	return payment, nil
}

func (s *paymentService) ListForLandlord(ctx context.Context, landlordID int64) ([]models.PaymentWithDetails, error) {
	return s.paymentRepo.ListByLandlord(ctx, landlordID)
}

func (s *paymentService) ListForTenantUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	lease, err := s.tenantRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []models.Payment{}, nil
		}
		return nil, err
	}
	return s.paymentRepo.ListByTenant(ctx, lease.ID)
}

func (s *paymentService) Update(ctx context.Context, landlordID, id int64, upd *models.PaymentUpdate) (*models.Payment, error) {
	payment, lease, owner, err := s.paymentChain(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner != landlordID {
		return nil, repositories.ErrNotFound
	}
	if upd.Amount != nil {
		if err := common.ValidatePositiveFloat(*upd.Amount, "amount", 10000000); err != nil {
			return nil, err
		}
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, fmt.Errorf("invalid payment status: %s", *upd.Status)
	}
	if err := common.SanitizeHTMLField(upd.Notes, "payment notes"); err != nil {
		return nil, common.SecureErrorMessage("sanitize payment notes", err)
	}

	wasPaid := payment.Status == models.PaymentPaid
	updated, err := s.paymentRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	if !wasPaid && updated.Status == models.PaymentPaid {
		s.notify(ctx, lease.UserID,
			fmt.Sprintf("Your rent payment of $%.2f was recorded as paid.", updated.Amount),
			models.NotificationPaymentReceived)
	}
	s.invalidateDashboard(ctx, landlordID)
	return updated, nil
}

func (s *paymentService) Delete(ctx context.Context, landlordID, id int64) error {
	_, _, owner, err := s.paymentChain(ctx, id)
	if err != nil {
		return err
	}
	if owner != landlordID {
		return repositories.ErrNotFound
	}

	present, err := s.paymentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !present {
		return repositories.ErrNotFound
	}

	s.invalidateDashboard(ctx, landlordID)
	return nil
}

// Process settles a pending or overdue payment. A renter can settle
// their own payment; a landlord can settle any payment in their
// portfolio. Both parties are notified.
func (s *paymentService) Process(ctx context.Context, userID int64, role models.Role, id int64, req *ProcessPaymentRequest) (*models.Payment, error) {
	if req.PaymentMethod == "" {
		return nil, errors.New("payment_method is required")
	}
	if err := common.SanitizeHTMLField(req.Notes, "payment notes"); err != nil {
		return nil, common.SecureErrorMessage("sanitize payment notes", err)
	}

	payment, lease, owner, err := s.paymentChain(ctx, id)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleTenant:
		if lease.UserID != userID {
			return nil, repositories.ErrNotFound
		}
	case models.RoleLandlord:
		if owner != userID {
			return nil, repositories.ErrNotFound
		}
	default:
		return nil, repositories.ErrNotFound
	}

	if payment.Status == models.PaymentPaid {
		return nil, errors.New("payment has already been processed")
	}

	now := time.Now()
	status := models.PaymentPaid
	upd := &models.PaymentUpdate{
		Status:        &status,
		PaymentDate:   &now,
		PaymentMethod: &req.PaymentMethod,
		Notes:         req.Notes,
	}
	updated, err := s.paymentRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, lease.UserID,
		fmt.Sprintf("Your rent payment of $%.2f was received.", updated.Amount),
		models.NotificationPaymentReceived)

	renter, err := s.userRepo.Get(ctx, lease.UserID)
	renterName := "a tenant"
	if err == nil {
		renterName = renter.Username
	}
	s.notify(ctx, owner,
		fmt.Sprintf("Payment of $%.2f received from %s.", updated.Amount, renterName),
		models.NotificationPaymentReceived)

	s.invalidateDashboard(ctx, owner)
	return updated, nil
}

// GetReceiptData assembles the fully enriched payment used to render a
// receipt, enforcing the same access rules as Process.
func (s *paymentService) GetReceiptData(ctx context.Context, userID int64, role models.Role, id int64) (*models.PaymentWithDetails, error) {
	payment, lease, owner, err := s.paymentChain(ctx, id)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleTenant:
		if lease.UserID != userID {
			return nil, repositories.ErrNotFound
		}
	case models.RoleLandlord:
		if owner != userID {
			return nil, repositories.ErrNotFound
		}
	default:
		return nil, repositories.ErrNotFound
	}

	details := &models.PaymentWithDetails{Payment: *payment, Tenant: *lease}

	user, err := s.userRepo.Get(ctx, lease.UserID)
	if err != nil {
		return nil, err
	}
	details.User = *user

	unit, err := s.unitRepo.Get(ctx, lease.UnitID)
	if err != nil {
		return nil, err
	}
	details.Unit = *unit

	property, err := s.propertyRepo.Get(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	details.Property = *property

	return details, nil
}

// paymentChain resolves a payment together with its lease and the
// landlord who owns the property the lease sits in.
func (s *paymentService) paymentChain(ctx context.Context, id int64) (*models.Payment, *models.Tenant, int64, error) {
	payment, err := s.paymentRepo.Get(ctx, id)
	if err != nil {
		return nil, nil, 0, err
	}
	lease, err := s.tenantRepo.Get(ctx, payment.TenantID)
	if err != nil {
		return nil, nil, 0, err
	}
	owner, err := s.leaseLandlord(ctx, lease)
	if err != nil {
		return nil, nil, 0, err
	}
	return payment, lease, owner, nil
}

func (s *paymentService) leaseLandlord(ctx context.Context, lease *models.Tenant) (int64, error) {
	unit, err := s.unitRepo.Get(ctx, lease.UnitID)
	if err != nil {
		return 0, err
	}
	property, err := s.propertyRepo.Get(ctx, unit.PropertyID)
	if err != nil {
		return 0, err
	}
	return property.LandlordID, nil
}

func (s *paymentService) notify(ctx context.Context, userID int64, message string, notificationType models.NotificationType) {
	if _, err := s.notificationSvc.Notify(ctx, userID, message, notificationType); err != nil {
		log.Printf("Failed to send notification to user %d: %v", userID, err)
	}
}

func (s *paymentService) invalidateDashboard(ctx context.Context, landlordID int64) {
	if err := s.cacheSvc.DeleteDashboardSummary(ctx, landlordID); err != nil {
		log.Printf("Failed to invalidate dashboard cache for landlord %d: %v", landlordID, err)
	}
}
