package service

import (
	"time"

	"github.com/delicute/delicute-api/internal/repository"
)

// DashboardService 经营看板服务
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建看板服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardOverview 经营概览
type DashboardOverview struct {
	repository.DashboardOverviewRow
	Days int `json:"days"`
}

// GetOverview 获取最近 N 天的经营概览
func (s *DashboardService) GetOverview(days int) (*DashboardOverview, error) {
	days = normalizeDashboardDays(days)
	startAt, endAt := resolveDashboardRange(days)
	row, err := s.repo.GetOverview(startAt, endAt)
	if err != nil {
		return nil, err
	}
	return &DashboardOverview{DashboardOverviewRow: row, Days: days}, nil
}

// GetOrderTrends 获取按日订单趋势
func (s *DashboardService) GetOrderTrends(days int) ([]repository.DashboardOrderTrendRow, error) {
	startAt, endAt := resolveDashboardRange(normalizeDashboardDays(days))
	return s.repo.GetOrderTrends(startAt, endAt)
}

// GetTopMenuItems 获取已支付订单的菜品销量排行
func (s *DashboardService) GetTopMenuItems(days, limit int) ([]repository.DashboardMenuItemRankingRow, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	startAt, endAt := resolveDashboardRange(normalizeDashboardDays(days))
	return s.repo.GetTopMenuItems(startAt, endAt, limit)
}

func normalizeDashboardDays(days int) int {
	if days <= 0 {
		return 7
	}
	if days > 90 {
		return 90
	}
	return days
}

func resolveDashboardRange(days int) (time.Time, time.Time) {
	endAt := time.Now()
	startAt := endAt.AddDate(0, 0, -days)
	return startAt, endAt
}
