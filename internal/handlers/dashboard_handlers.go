package handlers

import (
	"net/http"

	"rentflow/internal/common"
	"rentflow/internal/dashboard"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers handles dashboard HTTP requests
type DashboardHandlers struct {
	dashboardSvc dashboard.Service
}

// NewDashboardHandlers creates a new dashboard handlers instance
func NewDashboardHandlers(dashboardSvc dashboard.Service) *DashboardHandlers {
	return &DashboardHandlers{dashboardSvc: dashboardSvc}
}

// GetSummary handles GET /dashboard/summary
func (h *DashboardHandlers) GetSummary(c echo.Context) error {
	ctx := c.Request().Context()

	landlordID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	summary, err := h.dashboardSvc.Summary(ctx, landlordID)
	if err != nil {
		return common.SendServerError(c, "Failed to build dashboard summary: "+err.Error())
	}

	return c.JSON(http.StatusOK, summary)
}
