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

// TenantHandlers handles tenant lease HTTP requests
type TenantHandlers struct {
	tenantService services.TenantService
}

// NewTenantHandlers creates a new tenant handlers instance
func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// CreateTenant handles POST /tenants
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tenant, err := h.tenantService.Create(ctx, landlordID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "unit")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, tenant)
}

// GetTenants handles GET /tenants
func (h *TenantHandlers) GetTenants(c echo.Context) error {
	ctx := c.Request().Context()

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	tenants, err := h.tenantService.ListForLandlord(ctx, landlordID)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve tenants: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"count":   len(tenants),
	})
}

// GetTenantByID handles GET /tenants/:id
func (h *TenantHandlers) GetTenantByID(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateID(c.Param("id"), "tenant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	tenant, err := h.tenantService.GetForLandlord(ctx, landlordID, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "tenant")
		}
		return common.SendServerError(c, "Failed to retrieve tenant: "+err.Error())
	}

	return c.JSON(http.StatusOK, tenant)
}

// UpdateTenant handles PUT /tenants/:id
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateID(c.Param("id"), "tenant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var upd models.TenantUpdate
	if err := c.Bind(&upd); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tenant, err := h.tenantService.Update(ctx, landlordID, tenantID, &upd)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "tenant")
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, tenant)
}

// DeactivateTenant handles DELETE /tenants/:id. The lease record is kept
// for payment history; only the active flag is cleared.
func (h *TenantHandlers) DeactivateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateID(c.Param("id"), "tenant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if _, err := h.tenantService.Deactivate(ctx, landlordID, tenantID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "tenant")
		}
		return common.SendServerError(c, "Failed to deactivate tenant: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Tenant deactivated successfully",
	})
}

// GetMyTenancy handles GET /my/tenancy for tenant users
func (h *TenantHandlers) GetMyTenancy(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	tenancy, err := h.tenantService.GetTenancyForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "tenancy")
		}
		return common.SendServerError(c, "Failed to retrieve tenancy: "+err.Error())
	}

	return c.JSON(http.StatusOK, tenancy)
}
