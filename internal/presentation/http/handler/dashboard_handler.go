package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stockmate-app/stockmate-api/internal/application/report"
	"github.com/stockmate-app/stockmate-api/internal/application/service"
	"github.com/stockmate-app/stockmate-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard and reporting HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles fetching the dashboard overview
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// SalesReport handles the sales analytics report
func (h *DashboardHandler) SalesReport(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	rangeName := c.DefaultQuery("range", "7days")
	switch rangeName {
	case "today", "7days", "30days", "all":
	default:
		response.BadRequest(c, "Invalid range, expected today, 7days, 30days or all")
		return
	}

	rankBy := report.RankByRevenue
	switch c.DefaultQuery("rank_by", "revenue") {
	case "revenue":
	case "units":
		rankBy = report.RankByUnits
	default:
		response.BadRequest(c, "Invalid rank_by, expected revenue or units")
		return
	}

	result, err := h.dashboardService.GetSalesReport(c.Request.Context(), *userID, rangeName, rankBy, 10)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report retrieved successfully", result)
}
