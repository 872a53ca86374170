package handlers

import (
	"errors"
	"net/http"

	"rentflow/internal/common"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
	"rentflow/internal/services"

	"github.com/labstack/echo/v4"
)

// PropertyHandlers handles property-related HTTP requests
type PropertyHandlers struct {
	propertyService services.PropertyService
}

// NewPropertyHandlers creates a new property handlers instance
func NewPropertyHandlers(propertyService services.PropertyService) *PropertyHandlers {
	return &PropertyHandlers{propertyService: propertyService}
}

// CreateProperty handles POST /properties
func (h *PropertyHandlers) CreateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	property, err := h.propertyService.Create(ctx, landlordID, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, property)
}

// GetProperties handles GET /properties
func (h *PropertyHandlers) GetProperties(c echo.Context) error {
	ctx := c.Request().Context()

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	properties, err := h.propertyService.ListForLandlord(ctx, landlordID)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve properties: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"properties": properties,
		"count":      len(properties),
	})
}

// GetPropertyByID handles GET /properties/:id
func (h *PropertyHandlers) GetPropertyByID(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := common.ValidateID(c.Param("id"), "property_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	property, err := h.propertyService.GetForLandlord(ctx, landlordID, propertyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "property")
		}
		return common.SendServerError(c, "Failed to retrieve property: "+err.Error())
	}

	return c.JSON(http.StatusOK, property)
}

// UpdateProperty handles PUT /properties/:id
func (h *PropertyHandlers) UpdateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := common.ValidateID(c.Param("id"), "property_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var upd models.PropertyUpdate
	if err := c.Bind(&upd); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	property, err := h.propertyService.Update(ctx, landlordID, propertyID, &upd)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "property")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE /properties/:id
func (h *PropertyHandlers) DeleteProperty(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := common.ValidateID(c.Param("id"), "property_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.propertyService.Delete(ctx, landlordID, propertyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "property")
		}
		return common.SendServerError(c, "Failed to delete property: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Property deleted successfully",
	})
}
