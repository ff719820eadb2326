package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Shift is the time-of-day scope of a single daily report.
type Shift string

const (
	ShiftMorning Shift = "MORNING"
	ShiftEvening Shift = "EVENING"
	ShiftBoth    Shift = "BOTH"
)

// ValidShift reports whether s is one of the three accepted shift values.
func ValidShift(s Shift) bool {
	return s == ShiftMorning || s == ShiftEvening || s == ShiftBoth
}

// DailyReport is the end-of-shift record a manager submits for a store.
// Store + Date + Shift carry a unique index; resubmission for the same key
// updates in place, so the table never holds duplicate shift reports.
// Date has date-only semantics and is stored normalized to UTC midnight.
type DailyReport struct {
	ID string `gorm:"primaryKey" json:"id"`

	StoreID string `gorm:"not null;index;index:idx_report_store_date_shift,unique" json:"storeId"`
	Store   Store  `gorm:"foreignKey:StoreID" json:"store,omitempty"`

	ManagerID string `gorm:"not null;index" json:"managerId"`
	Manager   User   `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`

	Date  time.Time `gorm:"not null;index:idx_report_store_date_shift,unique" json:"date"`
	Shift Shift     `gorm:"not null;index:idx_report_store_date_shift,unique" json:"shift"`

	StartingAmount decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"startingAmount"`
	EndingAmount   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"endingAmount"`
	TotalSales     decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"totalSales"`
	CashSales      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"cashSales"`
	CardSales      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"cardSales"`
	TipCount       decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"tipCount"`
	CashTips       decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"cashTips"`

	MorningPrepCompleted int `gorm:"not null;default:0" json:"morningPrepCompleted"`
	EveningPrepCompleted int `gorm:"not null;default:0" json:"eveningPrepCompleted"`

	PrepMeat           bool `gorm:"not null;default:false" json:"prepMeat"`
	PrepSauce          bool `gorm:"not null;default:false" json:"prepSauce"`
	PrepOnionsSliced   bool `gorm:"not null;default:false" json:"prepOnionsSliced"`
	PrepOnionsDiced    bool `gorm:"not null;default:false" json:"prepOnionsDiced"`
	PrepTomatoesSliced bool `gorm:"not null;default:false" json:"prepTomatoesSliced"`
	PrepLettuce        bool `gorm:"not null;default:false" json:"prepLettuce"`

	CustomerCount int    `json:"customerCount"`
	Notes         string `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *DailyReport) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// DateOnly truncates t to its calendar date in UTC. Report dates are
// compared by day, never by time-of-day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
