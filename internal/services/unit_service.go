package services

import (
	"context"
	"log"

	"rentflow/internal/caching"
	"rentflow/internal/common"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

// UnitService manages the units inside a landlord's properties.
type UnitService interface {
	Create(ctx context.Context, landlordID int64, req *CreateUnitRequest) (*models.Unit, error)
	GetForLandlord(ctx context.Context, landlordID, id int64) (*models.Unit, error)
	ListForProperty(ctx context.Context, landlordID, propertyID int64) ([]models.Unit, error)
	Update(ctx context.Context, landlordID, id int64, upd *models.UnitUpdate) (*models.Unit, error)
	Delete(ctx context.Context, landlordID, id int64) error
}

type unitService struct {
	unitRepo     repositories.UnitRepository
	propertyRepo repositories.PropertyRepository
	cacheSvc     caching.CacheService
}

func NewUnitService(unitRepo repositories.UnitRepository, propertyRepo repositories.PropertyRepository, cacheSvc caching.CacheService) UnitService {
	return &unitService{
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		cacheSvc:     cacheSvc,
	}
}

type CreateUnitRequest struct {
	PropertyID  int64   `json:"property_id" validate:"required"`
	UnitNumber  string  `json:"unit_number" validate:"required"`
	MonthlyRent float64 `json:"monthly_rent" validate:"required"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   float64 `json:"bathrooms"`
}

func (s *unitService) Create(ctx context.Context, landlordID int64, req *CreateUnitRequest) (*models.Unit, error) {
	if err := common.ValidateRequiredString(req.UnitNumber, "unit_number"); err != nil {
		return nil, err
	}
	if err := common.ValidatePositiveFloat(req.MonthlyRent, "monthly_rent", 1000000); err != nil {
		return nil, err
	}
	if _, err := s.ownedProperty(ctx, landlordID, req.PropertyID); err != nil {
		return nil, err
	}

	unit := &models.Unit{
		PropertyID:  req.PropertyID,
		UnitNumber:  req.UnitNumber,
		MonthlyRent: req.MonthlyRent,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, landlordID)
	return unit, nil
}

func (s *unitService) GetForLandlord(ctx context.Context, landlordID, id int64) (*models.Unit, error) {
	unit, err := s.unitRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedProperty(ctx, landlordID, unit.PropertyID); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *unitService) ListForProperty(ctx context.Context, landlordID, propertyID int64) ([]models.Unit, error) {
	if _, err := s.ownedProperty(ctx, landlordID, propertyID); err != nil {
		return nil, err
	}
	return s.unitRepo.ListByProperty(ctx, propertyID)
}

func (s *unitService) Update(ctx context.Context, landlordID, id int64, upd *models.UnitUpdate) (*models.Unit, error) {
	if _, err := s.GetForLandlord(ctx, landlordID, id); err != nil {
		return nil, err
	}
	if upd.MonthlyRent != nil {
		if err := common.ValidatePositiveFloat(*upd.MonthlyRent, "monthly_rent", 1000000); err != nil {
			return nil, err
		}
	}

	unit, err := s.unitRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, landlordID)
	return unit, nil
}

func (s *unitService) Delete(ctx context.Context, landlordID, id int64) error {
	if _, err := s.GetForLandlord(ctx, landlordID, id); err != nil {
		return err
	}

	present, err := s.unitRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !present {
		return repositories.ErrNotFound
	}

	s.invalidateDashboard(ctx, landlordID)
	return nil
}

// ownedProperty resolves a property and confirms it belongs to the
// calling landlord, reporting not found otherwise.
func (s *unitService) ownedProperty(ctx context.Context, landlordID, propertyID int64) (*models.Property, error) {
	property, err := s.propertyRepo.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.LandlordID != landlordID {
		return nil, repositories.ErrNotFound
	}
	return property, nil
}

func (s *unitService) invalidateDashboard(ctx context.Context, landlordID int64) {
	if err := s.cacheSvc.DeleteDashboardSummary(ctx, landlordID); err != nil {
		log.Printf("Failed to invalidate dashboard cache for landlord %d: %v", landlordID, err)
	}
}
