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

// UnitHandlers handles unit-related HTTP requests
type UnitHandlers struct {
	unitService services.UnitService
}

// NewUnitHandlers creates a new unit handlers instance
func NewUnitHandlers(unitService services.UnitService) *UnitHandlers {
	return &UnitHandlers{unitService: unitService}
}

// CreateUnit handles POST /units
func (h *UnitHandlers) CreateUnit(c echo.Context) error {
	ctx := c.Request().Context()

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateUnitRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	unit, err := h.unitService.Create(ctx, landlordID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "property")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, unit)
}

// GetUnitsByProperty handles GET /properties/:id/units
func (h *UnitHandlers) GetUnitsByProperty(c echo.Context) error {
	ctx := c.Request().Context()

	propertyID, err := common.ValidateID(c.Param("id"), "property_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	units, err := h.unitService.ListForProperty(ctx, landlordID, propertyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "property")
		}
		return common.SendServerError(c, "Failed to retrieve units: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"units": units,
		"count": len(units),
	})
}

// GetUnitByID handles GET /units/:id
func (h *UnitHandlers) GetUnitByID(c echo.Context) error {
	ctx := c.Request().Context()

	unitID, err := common.ValidateID(c.Param("id"), "unit_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	unit, err := h.unitService.GetForLandlord(ctx, landlordID, unitID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "unit")
		}
		return common.SendServerError(c, "Failed to retrieve unit: "+err.Error())
	}

	return c.JSON(http.StatusOK, unit)
}

// UpdateUnit handles PUT /units/:id
func (h *UnitHandlers) UpdateUnit(c echo.Context) error {
	ctx := c.Request().Context()

	unitID, err := common.ValidateID(c.Param("id"), "unit_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var upd models.UnitUpdate
	if err := c.Bind(&upd); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	unit, err := h.unitService.Update(ctx, landlordID, unitID, &upd)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "unit")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, unit)
}

// DeleteUnit handles DELETE /units/:id
func (h *UnitHandlers) DeleteUnit(c echo.Context) error {
	ctx := c.Request().Context()

	unitID, err := common.ValidateID(c.Param("id"), "unit_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.unitService.Delete(ctx, landlordID, unitID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "unit")
		}
		return common.SendServerError(c, "Failed to delete unit: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Unit deleted successfully",
	})
}
