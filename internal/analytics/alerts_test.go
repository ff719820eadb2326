package analytics

import (
	"fmt"
	"testing"
	"time"
)

func prepReport(storeID, storeName string, morning, evening int) Report {
	return Report{
		StoreID:     storeID,
		StoreName:   storeName,
		ManagerName: "Maria",
		Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Shift:       ShiftMorning,
		MorningPrep: morning,
		EveningPrep: evening,
		PrepTasks:   map[string]bool{},
	}
}

func TestGenerateAlertsMissingReportsFirst(t *testing.T) {
	grid := []StoreDayStatus{
		{StoreID: "s1", StoreName: "Downtown"}, // nothing submitted
	}
	recent := []Report{prepReport("s1", "Downtown", 40, 40)}

	alerts := GenerateAlerts(grid, recent)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}
	if alerts[0].Type != AlertTypeMissingReport || alerts[1].Type != AlertTypeMissingReport {
		t.Fatalf("expected missing report alerts first, got %s then %s", alerts[0].Type, alerts[1].Type)
	}
	if alerts[0].Severity != SeverityWarning {
		t.Fatalf("expected warning severity for missing reports, got %s", alerts[0].Severity)
	}
	if alerts[0].Shift != ShiftMorning || alerts[1].Shift != ShiftEvening {
		t.Fatalf("expected morning then evening, got %s then %s", alerts[0].Shift, alerts[1].Shift)
	}
	if alerts[2].Type != AlertTypeLowPrep || alerts[2].Severity != SeverityError {
		t.Fatalf("expected low prep error alert last, got %s/%s", alerts[2].Type, alerts[2].Severity)
	}
	if alerts[2].Message != "Prep completion at 40%" {
		t.Fatalf("unexpected low prep message %q", alerts[2].Message)
	}
}

func TestGenerateAlertsFullySubmittedGridHasNoMissing(t *testing.T) {
	name := "Maria"
	grid := []StoreDayStatus{{
		StoreID:   "s1",
		StoreName: "Downtown",
		Morning:   ShiftStatus{Submitted: true, Manager: &name},
		Evening:   ShiftStatus{Submitted: true, Manager: &name},
	}}

	alerts := GenerateAlerts(grid, nil)
	for _, alert := range alerts {
		if alert.Type == AlertTypeMissingReport {
			t.Fatalf("unexpected missing report alert for fully submitted store")
		}
	}
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(alerts))
	}
}

func TestGenerateAlertsThreshold(t *testing.T) {
	recent := []Report{
		prepReport("s1", "Downtown", 70, 70), // exactly at threshold, no alert
		prepReport("s1", "Downtown", 70, 69), // 69.5, alerts
	}

	alerts := GenerateAlerts(nil, recent)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	// 69.5 rounds to 70 for display; the check uses the raw score.
	if alerts[0].Message != "Prep completion at 70%" {
		t.Fatalf("unexpected message %q", alerts[0].Message)
	}
}

func TestGenerateAlertsCappedAtTen(t *testing.T) {
	grid := make([]StoreDayStatus, 0, 8)
	for i := 0; i < 8; i++ {
		grid = append(grid, StoreDayStatus{
			StoreID:   fmt.Sprintf("s%d", i),
			StoreName: fmt.Sprintf("Store %d", i),
		})
	}
	recent := []Report{
		prepReport("s0", "Store 0", 10, 10),
		prepReport("s1", "Store 1", 10, 10),
	}

	alerts := GenerateAlerts(grid, recent)
	if len(alerts) != 10 {
		t.Fatalf("expected alert list capped at 10, got %d", len(alerts))
	}
	// Truncation keeps insertion order: all ten survivors are the
	// missing-report entries generated before the low prep scan.
	for i, alert := range alerts {
		if alert.Type != AlertTypeMissingReport {
			t.Fatalf("alert %d: expected missing_report after truncation, got %s", i, alert.Type)
		}
	}
}

func TestGenerateAlertsLowPrepWindowBound(t *testing.T) {
	recent := make([]Report, 0, lowPrepWindow+5)
	for i := 0; i < lowPrepWindow+5; i++ {
		r := prepReport("s1", "Downtown", 90, 90)
		if i >= lowPrepWindow {
			// Low scores beyond the window must not alert.
			r.MorningPrep = 0
			r.EveningPrep = 0
		}
		recent = append(recent, r)
	}

	alerts := GenerateAlerts(nil, recent)
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts from reports outside the window, got %d", len(alerts))
	}
}
