package service

import (
	"fmt"
	"math"
	"time"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
)

const (
	shiftsPerDay        = 2
	weeklyWindowDays    = 7
	recentPerStoreLimit = 7
	recentDashboardMax  = 20
)

// WeeklyStats summarizes a manager's trailing week. The week is the trailing
// seven days, the same definition the trend calculator uses.
type WeeklyStats struct {
	TotalReports      int     `json:"totalReports"`
	AvgPrepCompletion float64 `json:"avgPrepCompletion"`
	ExpectedReports   int     `json:"expectedReports"`
	MissedShifts      int     `json:"missedShifts"`
}

// ManagerStoreStatus is one assigned store with its recent activity.
type ManagerStoreStatus struct {
	StoreID        string           `json:"storeId"`
	StoreName      string           `json:"storeName"`
	Address        string           `json:"address"`
	RecentReports  []db.DailyReport `json:"recentReports"`
	CompletionRate float64          `json:"completionRate"`
	LastReportDate *time.Time       `json:"lastReportDate"`
	AssignedAt     time.Time        `json:"assignedAt"`
}

// ManagerDashboard is the payload behind the manager's landing page.
type ManagerDashboard struct {
	Stores       []ManagerStoreStatus `json:"stores"`
	WeeklyStats  WeeklyStats          `json:"weeklyStats"`
	TotalReports int                  `json:"totalReports"`
}

// ManagerDashboard assembles the assigned-store overview for one manager.
func (s *AnalyticsService) ManagerDashboard(managerID string) (*ManagerDashboard, error) {
	var assignments []db.StoreManager
	if err := s.db.Preload("Store").
		Where("manager_id = ? AND status = ?", managerID, db.StatusActive).
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}

	storeIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		storeIDs = append(storeIDs, a.StoreID)
	}

	dashboard := &ManagerDashboard{Stores: []ManagerStoreStatus{}}
	if len(storeIDs) == 0 {
		dashboard.WeeklyStats.ExpectedReports = 0
		return dashboard, nil
	}

	var recent []db.DailyReport
	if err := s.db.Preload("Store").
		Where("manager_id = ? AND store_id IN ?", managerID, storeIDs).
		Order("date DESC").
		Limit(recentDashboardMax).
		Find(&recent).Error; err != nil {
		return nil, fmt.Errorf("load recent reports: %w", err)
	}
	dashboard.TotalReports = len(recent)

	weekStart := db.DateOnly(time.Now()).AddDate(0, 0, -weeklyWindowDays)
	var weekly []db.DailyReport
	if err := s.db.
		Where("manager_id = ? AND store_id IN ? AND date >= ?", managerID, storeIDs, weekStart).
		Find(&weekly).Error; err != nil {
		return nil, fmt.Errorf("load weekly reports: %w", err)
	}

	expected := len(storeIDs) * shiftsPerDay * weeklyWindowDays
	dashboard.WeeklyStats = WeeklyStats{
		TotalReports:      len(weekly),
		AvgPrepCompletion: averageShiftCompletion(weekly),
		ExpectedReports:   expected,
		MissedShifts:      int(math.Max(0, float64(expected-len(weekly)))),
	}

	for _, a := range assignments {
		status := ManagerStoreStatus{
			StoreID:       a.StoreID,
			StoreName:     a.Store.Name,
			Address:       a.Store.Address,
			RecentReports: []db.DailyReport{},
			AssignedAt:    a.CreatedAt,
		}

		storeReports := make([]db.DailyReport, 0, recentPerStoreLimit)
		for _, r := range recent {
			if r.StoreID != a.StoreID {
				continue
			}
			if len(storeReports) < recentPerStoreLimit {
				storeReports = append(storeReports, r)
			}
		}
		status.RecentReports = storeReports
		status.CompletionRate = averageShiftCompletion(storeReports)
		if len(storeReports) > 0 {
			last := storeReports[0].Date
			status.LastReportDate = &last
		}

		dashboard.Stores = append(dashboard.Stores, status)
	}

	return dashboard, nil
}

// averageShiftCompletion averages the prep completion of the shift each
// report actually covers: morning reports contribute their morning score,
// everything else the evening score.
func averageShiftCompletion(reports []db.DailyReport) float64 {
	if len(reports) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reports {
		if r.Shift == db.ShiftMorning {
			sum += float64(r.MorningPrepCompleted)
		} else {
			sum += float64(r.EveningPrepCompleted)
		}
	}
	return sum / float64(len(reports))
}
