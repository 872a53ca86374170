package services

import (
	"context"
	"log"
	"time"

	"rentflow/internal/caching"
	"rentflow/internal/common"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

const propertyCacheTTL = 10 * time.Minute

// PropertyService manages a landlord's properties. Every operation is
// scoped to the calling landlord; records owned by someone else are
// reported as not found.
type PropertyService interface {
	Create(ctx context.Context, landlordID int64, req *CreatePropertyRequest) (*models.Property, error)
	GetForLandlord(ctx context.Context, landlordID, id int64) (*models.Property, error)
	ListForLandlord(ctx context.Context, landlordID int64) ([]models.Property, error)
	Update(ctx context.Context, landlordID, id int64, upd *models.PropertyUpdate) (*models.Property, error)
	Delete(ctx context.Context, landlordID, id int64) error
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
	cacheSvc     caching.CacheService
}

func NewPropertyService(propertyRepo repositories.PropertyRepository, cacheSvc caching.CacheService) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		cacheSvc:     cacheSvc,
	}
}

type CreatePropertyRequest struct {
	Name       string `json:"name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	TotalUnits int    `json:"total_units" validate:"required"`
	IsActive   *bool  `json:"is_active"`
}

func (s *propertyService) Create(ctx context.Context, landlordID int64, req *CreatePropertyRequest) (*models.Property, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Address, "address"); err != nil {
		return nil, err
	}
	if err := common.ValidatePositiveInteger(req.TotalUnits, "total_units", 10000); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	property := &models.Property{
		LandlordID: landlordID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Zip:        req.Zip,
		TotalUnits: req.TotalUnits,
		IsActive:   active,
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, landlordID)
	return property, nil
}

// GetForLandlord reads through a per-property cache. The ownership check
// runs on every read, cached or not, so a hit never leaks another
// landlord's record.
func (s *propertyService) GetForLandlord(ctx context.Context, landlordID, id int64) (*models.Property, error) {
	if cached, err := s.cacheSvc.GetProperty(ctx, id); err != nil {
		log.Printf("Property cache lookup failed for %d: %v", id, err)
	} else if cached != nil {
		if cached.LandlordID != landlordID {
			return nil, repositories.ErrNotFound
		}
		return cached, nil
	}

	property, err := s.propertyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.LandlordID != landlordID {
		return nil, repositories.ErrNotFound
	}

	if err := s.cacheSvc.SetProperty(ctx, property, propertyCacheTTL); err != nil {
		log.Printf("Property cache store failed for %d: %v", id, err)
	}
	return property, nil
}

func (s *propertyService) ListForLandlord(ctx context.Context, landlordID int64) ([]models.Property, error) {
	return s.propertyRepo.ListByLandlord(ctx, landlordID)
}

func (s *propertyService) Update(ctx context.Context, landlordID, id int64, upd *models.PropertyUpdate) (*models.Property, error) {
	if _, err := s.GetForLandlord(ctx, landlordID, id); err != nil {
		return nil, err
	}
	if upd.TotalUnits != nil {
		if err := common.ValidatePositiveInteger(*upd.TotalUnits, "total_units", 10000); err != nil {
			return nil, err
		}
	}

	property, err := s.propertyRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, landlordID)
	s.cacheSvc.DeleteProperty(ctx, id)
	return property, nil
}

func (s *propertyService) Delete(ctx context.Context, landlordID, id int64) error {
	if _, err := s.GetForLandlord(ctx, landlordID, id); err != nil {
		return err
	}

	present, err := s.propertyRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !present {
		return repositories.ErrNotFound
	}

	s.invalidateDashboard(ctx, landlordID)
	s.cacheSvc.DeleteProperty(ctx, id)
	return nil
}

func (s *propertyService) invalidateDashboard(ctx context.Context, landlordID int64) {
	if err := s.cacheSvc.DeleteDashboardSummary(ctx, landlordID); err != nil {
		log.Printf("Failed to invalidate dashboard cache for landlord %d: %v", landlordID, err)
	}
}
