package services

import (
	"context"
	"errors"
	"log"
	"time"

	"rentflow/internal/caching"
	"rentflow/internal/common"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

// TenantService manages lease records linking renter accounts to units.
// Landlord-facing operations are scoped to the caller's portfolio; a
// lease under another landlord's property is reported as not found.
type TenantService interface {
	Create(ctx context.Context, landlordID int64, req *CreateTenantRequest) (*models.Tenant, error)
	GetForLandlord(ctx context.Context, landlordID, id int64) (*models.Tenant, error)
	ListForLandlord(ctx context.Context, landlordID int64) ([]models.TenantWithDetails, error)
	Update(ctx context.Context, landlordID, id int64, upd *models.TenantUpdate) (*models.Tenant, error)
	Deactivate(ctx context.Context, landlordID, id int64) (*models.Tenant, error)
	GetTenancyForUser(ctx context.Context, userID int64) (*models.TenantWithDetails, error)
}

type tenantService struct {
	tenantRepo   repositories.TenantRepository
	unitRepo     repositories.UnitRepository
	propertyRepo repositories.PropertyRepository
	userRepo     repositories.UserRepository
	cacheSvc     caching.CacheService
}

func NewTenantService(
	tenantRepo repositories.TenantRepository,
	unitRepo repositories.UnitRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	cacheSvc caching.CacheService,
) TenantService {
	return &tenantService{
		tenantRepo:   tenantRepo,
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		cacheSvc:     cacheSvc,
	}
}

type CreateTenantRequest struct {
	UserID         int64     `json:"user_id" validate:"required"`
	UnitID         int64     `json:"unit_id" validate:"required"`
	LeaseStartDate time.Time `json:"lease_start_date" validate:"required"`
	LeaseEndDate   time.Time `json:"lease_end_date" validate:"required"`
	RentDueDay     int       `json:"rent_due_day" validate:"required"`
	IsActive       *bool     `json:"is_active"`
}

func (s *tenantService) Create(ctx context.Context, landlordID int64, req *CreateTenantRequest) (*models.Tenant, error) {
	user, err := s.userRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, errors.New("tenant user not found")
	}
	if user.Role != models.RoleTenant {
		return nil, errors.New("linked user must have the tenant role")
	}

	if _, err := s.ownedUnit(ctx, landlordID, req.UnitID); err != nil {
		return nil, err
	}

	if err := common.ValidateDateRange(req.LeaseStartDate, req.LeaseEndDate); err != nil {
		return nil, err
	}
	if err := common.ValidateRentDueDay(req.RentDueDay); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	tenant := &models.Tenant{
		UserID:         req.UserID,
		UnitID:         req.UnitID,
		LeaseStartDate: req.LeaseStartDate,
		LeaseEndDate:   req.LeaseEndDate,
		RentDueDay:     req.RentDueDay,
		IsActive:       active,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, landlordID)
	return tenant, nil
}

func (s *tenantService) GetForLandlord(ctx context.Context, landlordID, id int64) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkLeaseOwnership(ctx, landlordID, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) ListForLandlord(ctx context.Context, landlordID int64) ([]models.TenantWithDetails, error) {
	return s.tenantRepo.ListByLandlord(ctx, landlordID)
}

func (s *tenantService) Update(ctx context.Context, landlordID, id int64, upd *models.TenantUpdate) (*models.Tenant, error) {
	if _, err := s.GetForLandlord(ctx, landlordID, id); err != nil {
		return nil, err
	}
	if upd.UnitID != nil {
		// A lease can only be moved onto another unit in the same portfolio.
		if _, err := s.ownedUnit(ctx, landlordID, *upd.UnitID); err != nil {
			return nil, err
		}
	}
	if upd.RentDueDay != nil {
		if err := common.ValidateRentDueDay(*upd.RentDueDay); err != nil {
			return nil, err
		}
	}
	if upd.LeaseStartDate != nil && upd.LeaseEndDate != nil {
		if err := common.ValidateDateRange(*upd.LeaseStartDate, *upd.LeaseEndDate); err != nil {
			return nil, err
		}
	}

	tenant, err := s.tenantRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, landlordID)
	return tenant, nil
}

// Deactivate ends a lease without removing the record or recomputing
// unit occupancy. Payment history stays attached to the lease.
func (s *tenantService) Deactivate(ctx context.Context, landlordID, id int64) (*models.Tenant, error) {
	inactive := false
	return s.Update(ctx, landlordID, id, &models.TenantUpdate{IsActive: &inactive})
}

func (s *tenantService) GetTenancyForUser(ctx context.Context, userID int64) (*models.TenantWithDetails, error) {
	tenant, err := s.tenantRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := &models.TenantWithDetails{Tenant: *tenant}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	details.User = *user

	unit, err := s.unitRepo.Get(ctx, tenant.UnitID)
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

// ownedUnit resolves a unit and confirms its property belongs to the
// calling landlord.
func (s *tenantService) ownedUnit(ctx context.Context, landlordID, unitID int64) (*models.Unit, error) {
	unit, err := s.unitRepo.Get(ctx, unitID)
	if err != nil {
		return nil, err
	}
	property, err := s.propertyRepo.Get(ctx, unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.LandlordID != landlordID {
		return nil, repositories.ErrNotFound
	}
	return unit, nil
}

func (s *tenantService) checkLeaseOwnership(ctx context.Context, landlordID int64, tenant *models.Tenant) error {
	_, err := s.ownedUnit(ctx, landlordID, tenant.UnitID)
	return err
}

func (s *tenantService) invalidateDashboard(ctx context.Context, landlordID int64) {
	if err := s.cacheSvc.DeleteDashboardSummary(ctx, landlordID); err != nil {
		log.Printf("Failed to invalidate dashboard cache for landlord %d: %v", landlordID, err)
	}
}
