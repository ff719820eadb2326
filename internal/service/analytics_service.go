package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vanyanv/restaurant-dashboard/internal/analytics"
	"github.com/vanyanv/restaurant-dashboard/internal/db"
)

const (
	defaultWindowDays = 30
	recentAlertWindow = 50
)

// AnalyticsService resolves the authorized store scope and date window, then
// hands the fetched reports to the pure analytics package.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

// Summary is the cross-store analytics payload for owner dashboards.
type Summary struct {
	TodayReports      int64                    `json:"todayReports"`
	TotalReports      int                      `json:"totalReports"`
	TotalRevenue      decimal.Decimal          `json:"totalRevenue"`
	AverageTips       decimal.Decimal          `json:"averageTips"`
	AvgPrepCompletion int                      `json:"avgPrepCompletion"`
	RevenueByDay      []analytics.DayBucket    `json:"revenueByDay"`
	SalesBreakdown    analytics.SalesBreakdown `json:"salesBreakdown"`
	Trends            analytics.TrendSummary   `json:"trends"`
	StoreCount        int                      `json:"storeCount"`
	IsAllStores       bool                     `json:"isAllStores"`
}

func emptySummary() *Summary {
	return &Summary{
		TotalRevenue: decimal.Zero,
		AverageTips:  decimal.Zero,
		RevenueByDay: []analytics.DayBucket{},
		SalesBreakdown: analytics.SalesBreakdown{
			Cash: decimal.Zero,
			Card: decimal.Zero,
		},
		Trends: analytics.TrendSummary{
			RevenueGrowth:       decimal.Zero,
			CurrentWeekRevenue:  decimal.Zero,
			PreviousWeekRevenue: decimal.Zero,
		},
	}
}

// Summary aggregates the last `days` of reports for the requested store, or
// for every active store the scope can see when storeID is empty or "all".
// Zero stores is a valid state and yields the zero-valued summary.
func (s *AnalyticsService) Summary(scope AccessScope, storeID string, days int) (*Summary, error) {
	if days <= 0 {
		days = defaultWindowDays
	}

	storeIDs, isAll, err := s.resolveStoreIDs(scope, storeID)
	if err != nil {
		return nil, err
	}
	if len(storeIDs) == 0 {
		return emptySummary(), nil
	}

	now := time.Now()
	today := db.DateOnly(now)
	windowStart := today.AddDate(0, 0, -days)

	var stored []db.DailyReport
	if err := s.db.Preload("Store").Preload("Manager").
		Where("store_id IN ? AND date >= ?", storeIDs, windowStart).
		Order("date ASC").
		Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("load report window: %w", err)
	}

	var todayCount int64
	if err := s.db.Model(&db.DailyReport{}).
		Where("store_id IN ? AND date = ?", storeIDs, today).
		Count(&todayCount).Error; err != nil {
		return nil, fmt.Errorf("count today's reports: %w", err)
	}

	reports := analytics.SnapshotAll(stored)

	summary := emptySummary()
	summary.TodayReports = todayCount
	summary.TotalReports = len(reports)
	summary.TotalRevenue = analytics.TotalRevenue(reports)
	summary.AverageTips = analytics.AverageTips(reports)
	summary.AvgPrepCompletion = analytics.AvgPrepCompletion(reports)
	summary.RevenueByDay = analytics.RevenueByDay(reports)
	summary.SalesBreakdown = analytics.BreakdownSales(reports)
	summary.Trends = analytics.Trends(reports, today)
	summary.StoreCount = len(storeIDs)
	summary.IsAllStores = isAll
	return summary, nil
}

// ReportVariance is one report's signed till variance for the metrics view.
type ReportVariance struct {
	ReportID string          `json:"reportId"`
	Date     string          `json:"date"`
	Shift    string          `json:"shift"`
	Variance decimal.Decimal `json:"variance"`
}

// StoreMetrics is the per-store deep dive payload.
type StoreMetrics struct {
	StoreID           string                         `json:"storeId"`
	StoreName         string                         `json:"storeName"`
	TotalReports      int                            `json:"totalReports"`
	TotalRevenue      decimal.Decimal                `json:"totalRevenue"`
	AverageTips       decimal.Decimal                `json:"averageTips"`
	AvgPrepCompletion int                            `json:"avgPrepCompletion"`
	SalesBreakdown    analytics.SalesBreakdown       `json:"salesBreakdown"`
	RevenueByDay      []analytics.DayBucket          `json:"revenueByDay"`
	PrepTasks         []analytics.TaskCompletion     `json:"prepTasks"`
	ManagerStats      []analytics.ManagerPerformance `json:"managerStats"`
	TillVariances     []ReportVariance               `json:"tillVariances"`
}

// StoreMetrics computes the detailed metrics for one store over the window.
func (s *AnalyticsService) StoreMetrics(scope AccessScope, storeID string, days int) (*StoreMetrics, error) {
	allowed, err := canAccessStore(s.db, scope, storeID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrStoreNotFound
	}

	var store db.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	if days <= 0 {
		days = defaultWindowDays
	}
	windowStart := db.DateOnly(time.Now()).AddDate(0, 0, -days)

	var stored []db.DailyReport
	if err := s.db.Preload("Store").Preload("Manager").
		Where("store_id = ? AND date >= ?", storeID, windowStart).
		Order("date DESC").
		Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("load store reports: %w", err)
	}

	reports := analytics.SnapshotAll(stored)

	variances := make([]ReportVariance, 0, len(reports))
	for _, r := range reports {
		variances = append(variances, ReportVariance{
			ReportID: r.ID,
			Date:     r.Date.Format("2006-01-02"),
			Shift:    r.Shift,
			Variance: analytics.TillVariance(r),
		})
	}

	return &StoreMetrics{
		StoreID:           store.ID,
		StoreName:         store.Name,
		TotalReports:      len(reports),
		TotalRevenue:      analytics.TotalRevenue(reports),
		AverageTips:       analytics.AverageTips(reports),
		AvgPrepCompletion: analytics.AvgPrepCompletion(reports),
		SalesBreakdown:    analytics.BreakdownSales(reports),
		RevenueByDay:      analytics.RevenueByDay(reports),
		PrepTasks:         analytics.PrepTaskCompletion(reports, analytics.PrepTaskKeys),
		ManagerStats:      analytics.ManagerStats(reports),
		TillVariances:     variances,
	}, nil
}

// StatusGrid builds today's submission grid for every active store in scope.
// The day boundary is computed once here so a slow request cannot drift
// across midnight between stores.
func (s *AnalyticsService) StatusGrid(scope AccessScope) ([]analytics.StoreDayStatus, error) {
	stores, err := s.activeStores(scope)
	if err != nil {
		return nil, err
	}

	refs := make([]analytics.StoreRef, 0, len(stores))
	ids := make([]string, 0, len(stores))
	for _, store := range stores {
		refs = append(refs, analytics.StoreRef{ID: store.ID, Name: store.Name})
		ids = append(ids, store.ID)
	}

	today := db.DateOnly(time.Now())
	var stored []db.DailyReport
	if len(ids) > 0 {
		if err := s.db.Preload("Store").Preload("Manager").
			Where("store_id IN ? AND date = ?", ids, today).
			Find(&stored).Error; err != nil {
			return nil, fmt.Errorf("load today's reports: %w", err)
		}
	}

	return analytics.BuildStatusGrid(refs, analytics.SnapshotAll(stored)), nil
}

// Alerts produces the capped dashboard alert list: missing shift reports
// first, then low prep completion over the recent report window.
func (s *AnalyticsService) Alerts(scope AccessScope) ([]analytics.Alert, error) {
	grid, err := s.StatusGrid(scope)
	if err != nil {
		return nil, err
	}

	storeIDs, err := storeIDsFor(s.db, scope)
	if err != nil {
		return nil, err
	}

	var stored []db.DailyReport
	if len(storeIDs) > 0 {
		if err := s.db.Preload("Store").Preload("Manager").
			Where("store_id IN ?", storeIDs).
			Order("date DESC").
			Limit(recentAlertWindow).
			Find(&stored).Error; err != nil {
			return nil, fmt.Errorf("load recent reports: %w", err)
		}
	}

	return analytics.GenerateAlerts(grid, analytics.SnapshotAll(stored)), nil
}

func (s *AnalyticsService) activeStores(scope AccessScope) ([]db.Store, error) {
	query := s.db.Model(&db.Store{}).Where("stores.status = ?", db.StatusActive)
	if scope.IsOwner() {
		query = query.Where("owner_id = ?", scope.UserID)
	} else {
		query = query.
			Joins("JOIN store_managers ON store_managers.store_id = stores.id").
			Where("store_managers.manager_id = ? AND store_managers.status = ?", scope.UserID, db.StatusActive)
	}

	var stores []db.Store
	if err := query.Order("stores.name").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("list active stores: %w", err)
	}
	return stores, nil
}

func (s *AnalyticsService) resolveStoreIDs(scope AccessScope, storeID string) ([]string, bool, error) {
	if storeID == "" || storeID == "all" {
		stores, err := s.activeStores(scope)
		if err != nil {
			return nil, false, err
		}
		ids := make([]string, 0, len(stores))
		for _, store := range stores {
			ids = append(ids, store.ID)
		}
		return ids, true, nil
	}

	allowed, err := canAccessStore(s.db, scope, storeID)
	if err != nil {
		return nil, false, err
	}
	if !allowed {
		return nil, false, ErrStoreNotFound
	}
	return []string{storeID}, false, nil
}
