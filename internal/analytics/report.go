// Package analytics turns sets of daily report records into the summary
// numbers the dashboards display. Everything in this package is a pure
// reduction over in-memory snapshots: no I/O, no shared state, and every
// zero-denominator case has a defined zero result instead of an error.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
)

// Shift values mirrored as plain strings for grid and alert output.
const (
	ShiftMorning = "MORNING"
	ShiftEvening = "EVENING"
	ShiftBoth    = "BOTH"
)

// PrepTaskKeys lists the six fixed checklist tasks in display order.
var PrepTaskKeys = []string{
	"prepMeat",
	"prepSauce",
	"prepOnionsSliced",
	"prepOnionsDiced",
	"prepTomatoesSliced",
	"prepLettuce",
}

// Report is a normalized snapshot of one daily report. Nullable numeric
// columns are already resolved to zero here, so the aggregation functions
// never re-check presence.
type Report struct {
	ID          string
	StoreID     string
	StoreName   string
	ManagerID   string
	ManagerName string

	Date  time.Time
	Shift string

	StartingAmount decimal.Decimal
	EndingAmount   decimal.Decimal
	TotalSales     decimal.Decimal
	CashSales      decimal.Decimal
	CardSales      decimal.Decimal
	TipCount       decimal.Decimal
	CashTips       decimal.Decimal

	MorningPrep int
	EveningPrep int

	PrepTasks map[string]bool

	CustomerCount int
	CreatedAt     time.Time
}

// Snapshot converts a stored daily report into its analytics form. Store and
// manager names are taken from preloaded associations when present.
func Snapshot(r db.DailyReport) Report {
	return Report{
		ID:             r.ID,
		StoreID:        r.StoreID,
		StoreName:      r.Store.Name,
		ManagerID:      r.ManagerID,
		ManagerName:    r.Manager.Name,
		Date:           db.DateOnly(r.Date),
		Shift:          string(r.Shift),
		StartingAmount: r.StartingAmount,
		EndingAmount:   r.EndingAmount,
		TotalSales:     r.TotalSales,
		CashSales:      r.CashSales,
		CardSales:      r.CardSales,
		TipCount:       r.TipCount,
		CashTips:       r.CashTips,
		MorningPrep:    r.MorningPrepCompleted,
		EveningPrep:    r.EveningPrepCompleted,
		PrepTasks: map[string]bool{
			"prepMeat":           r.PrepMeat,
			"prepSauce":          r.PrepSauce,
			"prepOnionsSliced":   r.PrepOnionsSliced,
			"prepOnionsDiced":    r.PrepOnionsDiced,
			"prepTomatoesSliced": r.PrepTomatoesSliced,
			"prepLettuce":        r.PrepLettuce,
		},
		CustomerCount: r.CustomerCount,
		CreatedAt:     r.CreatedAt,
	}
}

// SnapshotAll converts a slice of stored reports, preserving order.
func SnapshotAll(reports []db.DailyReport) []Report {
	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		out = append(out, Snapshot(r))
	}
	return out
}

// prepScore is the per-report prep completion: the mean of the morning and
// evening percentages.
func prepScore(r Report) float64 {
	return float64(r.MorningPrep+r.EveningPrep) / 2
}

// CoversMorning reports whether the report accounts for the morning shift.
func (r Report) CoversMorning() bool {
	return r.Shift == ShiftMorning || r.Shift == ShiftBoth
}

// CoversEvening reports whether the report accounts for the evening shift.
func (r Report) CoversEvening() bool {
	return r.Shift == ShiftEvening || r.Shift == ShiftBoth
}
