package handlers

import (
	"net/http"

	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves summary statistics
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats()
	if err != nil {
		respondError(c, err, "dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAvailableOptions handles GET /available-options
func (h *DashboardHandler) GetAvailableOptions(c *gin.Context) {
	options, err := h.dashboardService.AvailableOptions()
	if err != nil {
		respondError(c, err, "available options")
		return
	}
	c.JSON(http.StatusOK, options)
}
