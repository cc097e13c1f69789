package admin

import (
	"strconv"

	"github.com/delicute/delicute-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 获取经营概览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	overview, err := h.DashboardService.GetOverview(days)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load dashboard overview", err)
		return
	}
	response.Success(c, overview)
}

// GetDashboardTrends 获取每日订单/营收走势
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	trends, err := h.DashboardService.GetOrderTrends(days)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load dashboard trends", err)
		return
	}
	response.Success(c, gin.H{"trends": trends})
}

// GetDashboardTopMenuItems 获取热销菜品排行
func (h *Handler) GetDashboardTopMenuItems(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rankings, err := h.DashboardService.GetTopMenuItems(days, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load menu rankings", err)
		return
	}
	response.Success(c, gin.H{"rankings": rankings})
}
