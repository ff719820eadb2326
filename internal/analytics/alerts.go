package analytics

import (
	"fmt"
	"math"
	"strings"
)

// Alert types and severities.
const (
	AlertTypeMissingReport = "missing_report"
	AlertTypeLowPrep       = "low_prep"

	SeverityWarning = "warning"
	SeverityError   = "error"
)

const (
	// maxAlerts caps the combined alert list. Truncation drops the tail and
	// does not reorder by severity, matching the dashboard's long-standing
	// behavior.
	maxAlerts = 10

	// lowPrepWindow bounds how many recent reports the prep scan considers.
	lowPrepWindow = 50

	// lowPrepThreshold is the prep score below which a report alerts.
	lowPrepThreshold = 70
)

// Alert is one entry in the owner dashboard's attention list.
type Alert struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	StoreID   string `json:"storeId"`
	StoreName string `json:"storeName"`
	Shift     string `json:"shift,omitempty"`
	Manager   string `json:"manager,omitempty"`
	Date      string `json:"date,omitempty"`
	Message   string `json:"message"`
}

// GenerateAlerts scans the status grid for unsubmitted shifts and the recent
// report window for low prep completion. Missing-report alerts come first,
// then low-prep alerts; the combined list is truncated to maxAlerts. The
// recent slice is expected most-recent-first.
func GenerateAlerts(grid []StoreDayStatus, recent []Report) []Alert {
	alerts := make([]Alert, 0, maxAlerts)

	for _, store := range grid {
		if !store.Morning.Submitted {
			alerts = append(alerts, missingReportAlert(store, ShiftMorning))
		}
		if !store.Evening.Submitted {
			alerts = append(alerts, missingReportAlert(store, ShiftEvening))
		}
	}

	window := recent
	if len(window) > lowPrepWindow {
		window = window[:lowPrepWindow]
	}
	for _, r := range window {
		score := prepScore(r)
		if score >= lowPrepThreshold {
			continue
		}
		alerts = append(alerts, Alert{
			Type:      AlertTypeLowPrep,
			Severity:  SeverityError,
			StoreID:   r.StoreID,
			StoreName: r.StoreName,
			Manager:   r.ManagerName,
			Date:      r.Date.Format(isoDate),
			Message:   fmt.Sprintf("Prep completion at %d%%", int(math.Round(score))),
		})
	}

	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	return alerts
}

func missingReportAlert(store StoreDayStatus, shift string) Alert {
	return Alert{
		Type:      AlertTypeMissingReport,
		Severity:  SeverityWarning,
		StoreID:   store.StoreID,
		StoreName: store.StoreName,
		Shift:     shift,
		Message:   fmt.Sprintf("No %s report submitted today", strings.ToLower(shift)),
	}
}
