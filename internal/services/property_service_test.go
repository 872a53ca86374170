package services

import (
	"context"
	"errors"
	"testing"

	"rentflow/internal/models"
	"rentflow/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PropertyServiceTestSuite struct {
	suite.Suite
	mockPropertyRepo *MockPropertyRepository
	mockCache        *MockCacheService
	service          PropertyService
	landlordID       int64
}

func (suite *PropertyServiceTestSuite) SetupTest() {
	suite.mockPropertyRepo = &MockPropertyRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewPropertyService(suite.mockPropertyRepo, suite.mockCache)
	suite.landlordID = 1
}

func (suite *PropertyServiceTestSuite) TearDownTest() {
	suite.mockPropertyRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestPropertyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PropertyServiceTestSuite))
}

func (suite *PropertyServiceTestSuite) ownedProperty() *models.Property {
	return &models.Property{
		ID:         4,
		LandlordID: suite.landlordID,
		Name:       "Maple House",
		Address:    "12 Maple Street",
		TotalUnits: 8,
		IsActive:   true,
	}
}

func (suite *PropertyServiceTestSuite) TestCreate_Success() {
	req := &CreatePropertyRequest{
		Name:       "Maple House",
		Address:    "12 Maple Street",
		City:       "Pune",
		TotalUnits: 8,
	}

	suite.mockPropertyRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Property")).Return(nil).Run(func(args mock.Arguments) {
		property := args.Get(1).(*models.Property)
		property.ID = 4
	}).Once()
	suite.mockCache.On("DeleteDashboardSummary", mock.Anything, suite.landlordID).Return(nil).Once()

	property, err := suite.service.Create(context.Background(), suite.landlordID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), property.ID)
	assert.Equal(suite.T(), suite.landlordID, property.LandlordID)
	assert.True(suite.T(), property.IsActive)
}

func (suite *PropertyServiceTestSuite) TestCreate_MissingName() {
	req := &CreatePropertyRequest{
		Name:       "   ",
		Address:    "12 Maple Street",
		TotalUnits: 8,
	}

	property, err := suite.service.Create(context.Background(), suite.landlordID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), property)
	assert.Equal(suite.T(), "name is required", err.Error())
	suite.mockPropertyRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *PropertyServiceTestSuite) TestCreate_NonPositiveUnits() {
	req := &CreatePropertyRequest{
		Name:       "Maple House",
		Address:    "12 Maple Street",
		TotalUnits: 0,
	}

	property, err := suite.service.Create(context.Background(), suite.landlordID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), property)
	assert.Equal(suite.T(), "total_units must be positive", err.Error())
}

func (suite *PropertyServiceTestSuite) TestGetForLandlord_CacheMissReadsRepo() {
	property := suite.ownedProperty()

	suite.mockCache.On("GetProperty", mock.Anything, int64(4)).Return((*models.Property)(nil), nil).Once()
	suite.mockPropertyRepo.On("Get", mock.Anything, int64(4)).Return(property, nil).Once()
	suite.mockCache.On("SetProperty", mock.Anything, property, propertyCacheTTL).Return(nil).Once()

	got, err := suite.service.GetForLandlord(context.Background(), suite.landlordID, 4)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), property, got)
}

func (suite *PropertyServiceTestSuite) TestGetForLandlord_CacheHitSkipsRepo() {
	property := suite.ownedProperty()

	suite.mockCache.On("GetProperty", mock.Anything, int64(4)).Return(property, nil).Once()

	got, err := suite.service.GetForLandlord(context.Background(), suite.landlordID, 4)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), property, got)
	suite.mockPropertyRepo.AssertNotCalled(suite.T(), "Get", mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "SetProperty", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PropertyServiceTestSuite) TestGetForLandlord_CachedForeignPropertyFailsClosed() {
	foreign := suite.ownedProperty()
	foreign.LandlordID = 99

	suite.mockCache.On("GetProperty", mock.Anything, int64(4)).Return(foreign, nil).Once()

	got, err := suite.service.GetForLandlord(context.Background(), suite.landlordID, 4)

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)
	suite.mockPropertyRepo.AssertNotCalled(suite.T(), "Get", mock.Anything, mock.Anything)
}

func (suite *PropertyServiceTestSuite) TestGetForLandlord_CacheErrorFallsBackToRepo() {
	property := suite.ownedProperty()

	suite.mockCache.On("GetProperty", mock.Anything, int64(4)).Return((*models.Property)(nil), errors.New("redis down")).Once()
	suite.mockPropertyRepo.On("Get", mock.Anything, int64(4)).Return(property, nil).Once()
	suite.mockCache.On("SetProperty", mock.Anything, property, propertyCacheTTL).Return(nil).Once()

	got, err := suite.service.GetForLandlord(context.Background(), suite.landlordID, 4)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), property, got)
}

func (suite *PropertyServiceTestSuite) TestGetForLandlord_ForeignPropertyNotCached() {
	foreign := suite.ownedProperty()
	foreign.LandlordID = 99

	suite.mockCache.On("GetProperty", mock.Anything, int64(4)).Return((*models.Property)(nil), nil).Once()
	suite.mockPropertyRepo.On("Get", mock.Anything, int64(4)).Return(foreign, nil).Once()

	got, err := suite.service.GetForLandlord(context.Background(), suite.landlordID, 4)

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)
	suite.mockCache.AssertNotCalled(suite.T(), "SetProperty", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PropertyServiceTestSuite) TestUpdate_InvalidatesCaches() {
	property := suite.ownedProperty()
	updated := suite.ownedProperty()
	updated.TotalUnits = 12

	suite.mockCache.On("GetProperty", mock.Anything, int64(4)).Return(property, nil).Once()
	suite.mockPropertyRepo.On("Update", mock.Anything, int64(4), mock.AnythingOfType("*models.PropertyUpdate")).Return(updated, nil).Once()
	suite.mockCache.On("DeleteDashboardSummary", mock.Anything, suite.landlordID).Return(nil).Once()
	suite.mockCache.On("DeleteProperty", mock.Anything, int64(4)).Return(nil).Once()

	got, err := suite.service.Update(context.Background(), suite.landlordID, 4, &models.PropertyUpdate{TotalUnits: intPtr(12)})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 12, got.TotalUnits)
}

func (suite *PropertyServiceTestSuite) TestUpdate_RejectsExcessiveUnits() {
	property := suite.ownedProperty()

	suite.mockCache.On("GetProperty", mock.Anything, int64(4)).Return(property, nil).Once()

	got, err := suite.service.Update(context.Background(), suite.landlordID, 4, &models.PropertyUpdate{TotalUnits: intPtr(10001)})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), got)
	assert.Equal(suite.T(), "total_units cannot exceed 10000", err.Error())
	suite.mockPropertyRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PropertyServiceTestSuite) TestDelete_InvalidatesCaches() {
	property := suite.ownedProperty()

	suite.mockCache.On("GetProperty", mock.Anything, int64(4)).Return(property, nil).Once()
	suite.mockPropertyRepo.On("Delete", mock.Anything, int64(4)).Return(true, nil).Once()
	suite.mockCache.On("DeleteDashboardSummary", mock.Anything, suite.landlordID).Return(nil).Once()
	suite.mockCache.On("DeleteProperty", mock.Anything, int64(4)).Return(nil).Once()

	err := suite.service.Delete(context.Background(), suite.landlordID, 4)

	assert.NoError(suite.T(), err)
}

func (suite *PropertyServiceTestSuite) TestDelete_GoneBetweenReadAndDelete() {
	property := suite.ownedProperty()

	suite.mockCache.On("GetProperty", mock.Anything, int64(4)).Return(property, nil).Once()
	suite.mockPropertyRepo.On("Delete", mock.Anything, int64(4)).Return(false, nil).Once()

	err := suite.service.Delete(context.Background(), suite.landlordID, 4)

	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)
	suite.mockCache.AssertNotCalled(suite.T(), "DeleteProperty", mock.Anything, mock.Anything)
}
