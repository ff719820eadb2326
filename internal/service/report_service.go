package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
)

var (
	// ErrReportAccessDenied is returned when the caller may not submit or
	// read reports for the requested store.
	ErrReportAccessDenied = errors.New("no access to this store")
	// ErrInvalidShift is returned for shift values outside MORNING, EVENING
	// and BOTH.
	ErrInvalidShift = errors.New("invalid shift")
)

const defaultReportLimit = 50

// ReportService handles daily report submission and listing.
type ReportService struct {
	db *gorm.DB
}

// NewReportService constructs a ReportService.
func NewReportService(gdb *gorm.DB) *ReportService {
	return &ReportService{db: gdb}
}

// ReportInput carries a validated report submission. Money values arrive
// normalized: absent numerics are zero by the time they reach this service.
type ReportInput struct {
	StoreID string
	Date    time.Time
	Shift   db.Shift

	StartingAmount decimal.Decimal
	EndingAmount   decimal.Decimal
	TotalSales     decimal.Decimal
	CashSales      decimal.Decimal
	CardSales      decimal.Decimal
	TipCount       decimal.Decimal
	CashTips       decimal.Decimal

	MorningPrepCompleted int
	EveningPrepCompleted int

	PrepMeat           bool
	PrepSauce          bool
	PrepOnionsSliced   bool
	PrepOnionsDiced    bool
	PrepTomatoesSliced bool
	PrepLettuce        bool

	CustomerCount int
	Notes         string
}

// Submit upserts a daily report on the (store, date, shift) key. Two
// submissions for the same key resolve to last write wins through the unique
// constraint, never through application locking. The returned flag says
// whether a new row was created; it is informational only.
func (s *ReportService) Submit(scope AccessScope, input ReportInput) (*db.DailyReport, bool, error) {
	if !db.ValidShift(input.Shift) {
		return nil, false, ErrInvalidShift
	}

	allowed, err := canAccessStore(s.db, scope, input.StoreID)
	if err != nil {
		return nil, false, err
	}
	if !allowed {
		return nil, false, ErrReportAccessDenied
	}

	date := db.DateOnly(input.Date)

	var existingCount int64
	if err := s.db.Model(&db.DailyReport{}).
		Where("store_id = ? AND date = ? AND shift = ?", input.StoreID, date, input.Shift).
		Count(&existingCount).Error; err != nil {
		return nil, false, fmt.Errorf("check existing report: %w", err)
	}

	report := db.DailyReport{
		StoreID:              input.StoreID,
		ManagerID:            scope.UserID,
		Date:                 date,
		Shift:                input.Shift,
		StartingAmount:       input.StartingAmount,
		EndingAmount:         input.EndingAmount,
		TotalSales:           input.TotalSales,
		CashSales:            input.CashSales,
		CardSales:            input.CardSales,
		TipCount:             input.TipCount,
		CashTips:             input.CashTips,
		MorningPrepCompleted: input.MorningPrepCompleted,
		EveningPrepCompleted: input.EveningPrepCompleted,
		PrepMeat:             input.PrepMeat,
		PrepSauce:            input.PrepSauce,
		PrepOnionsSliced:     input.PrepOnionsSliced,
		PrepOnionsDiced:      input.PrepOnionsDiced,
		PrepTomatoesSliced:   input.PrepTomatoesSliced,
		PrepLettuce:          input.PrepLettuce,
		CustomerCount:        input.CustomerCount,
		Notes:                input.Notes,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "date"}, {Name: "shift"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"manager_id",
			"starting_amount", "ending_amount",
			"total_sales", "cash_sales", "card_sales",
			"tip_count", "cash_tips",
			"morning_prep_completed", "evening_prep_completed",
			"prep_meat", "prep_sauce", "prep_onions_sliced", "prep_onions_diced",
			"prep_tomatoes_sliced", "prep_lettuce",
			"customer_count", "notes",
			"updated_at",
		}),
	}).Create(&report).Error; err != nil {
		return nil, false, fmt.Errorf("upsert report: %w", err)
	}

	// Re-read through the unique key: on conflict the stored row keeps its
	// original id, not the one generated for the insert attempt.
	var stored db.DailyReport
	if err := s.db.Preload("Store").Preload("Manager").
		Where("store_id = ? AND date = ? AND shift = ?", input.StoreID, date, input.Shift).
		First(&stored).Error; err != nil {
		return nil, false, fmt.Errorf("load stored report: %w", err)
	}
	return &stored, existingCount == 0, nil
}

// ReportFilter narrows report listings.
type ReportFilter struct {
	StoreID string
	Date    *time.Time
	Shift   db.Shift
	Limit   int
}

// List returns reports visible to the scope, newest business date first.
// Owners see every report for their stores, managers only their own.
func (s *ReportService) List(scope AccessScope, filter ReportFilter) ([]db.DailyReport, error) {
	query := s.db.Preload("Store").Preload("Manager")

	if scope.IsOwner() {
		query = query.Where("store_id IN (?)",
			s.db.Model(&db.Store{}).Select("id").Where("owner_id = ?", scope.UserID))
	} else {
		query = query.Where("manager_id = ?", scope.UserID)
	}

	if filter.StoreID != "" {
		allowed, err := canAccessStore(s.db, scope, filter.StoreID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, ErrReportAccessDenied
		}
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", db.DateOnly(*filter.Date))
	}
	if filter.Shift != "" && filter.Shift != db.ShiftBoth {
		query = query.Where("shift = ?", filter.Shift)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultReportLimit
	}

	var reports []db.DailyReport
	if err := query.Order("date DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Recent returns the most recently submitted reports for the scope, for the
// activity feed. Ordered by submission time, not business date.
func (s *ReportService) Recent(scope AccessScope, storeID string, limit int) ([]db.DailyReport, error) {
	storeIDs, err := storeIDsFor(s.db, scope)
	if err != nil {
		return nil, err
	}
	if len(storeIDs) == 0 {
		return nil, nil
	}

	query := s.db.Preload("Store").Preload("Manager").
		Where("store_id IN ?", storeIDs)
	if storeID != "" {
		query = query.Where("store_id = ?", storeID)
	}
	if limit <= 0 {
		limit = 10
	}

	var reports []db.DailyReport
	if err := query.Order("created_at DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list recent reports: %w", err)
	}
	return reports, nil
}
