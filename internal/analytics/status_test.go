package analytics

import (
	"testing"
	"time"
)

func shiftReport(storeID, shift, managerName string) Report {
	return Report{
		StoreID:     storeID,
		ManagerName: managerName,
		Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Shift:       shift,
		PrepTasks:   map[string]bool{},
	}
}

func TestBuildStatusGridOneEntryPerStore(t *testing.T) {
	stores := []StoreRef{
		{ID: "s1", Name: "Downtown"},
		{ID: "s2", Name: "Westside"},
		{ID: "s3", Name: "Riverpark"},
	}
	today := []Report{
		shiftReport("s1", ShiftMorning, "Maria"),
		shiftReport("s1", ShiftEvening, "James"),
		shiftReport("s2", ShiftMorning, "Maria"),
	}

	grid := BuildStatusGrid(stores, today)
	if len(grid) != len(stores) {
		t.Fatalf("expected %d grid rows, got %d", len(stores), len(grid))
	}

	if !grid[0].Morning.Submitted || !grid[0].Evening.Submitted {
		t.Fatalf("s1: expected both shifts submitted, got morning=%v evening=%v",
			grid[0].Morning.Submitted, grid[0].Evening.Submitted)
	}
	if !grid[1].Morning.Submitted || grid[1].Evening.Submitted {
		t.Fatalf("s2: expected only morning submitted")
	}
	if grid[2].Morning.Submitted || grid[2].Evening.Submitted {
		t.Fatalf("s3: expected no shifts submitted for a store with no reports")
	}
}

func TestBuildStatusGridBothCoversBothShifts(t *testing.T) {
	stores := []StoreRef{{ID: "s1", Name: "Downtown"}}
	grid := BuildStatusGrid(stores, []Report{shiftReport("s1", ShiftBoth, "Maria")})

	if !grid[0].Morning.Submitted || !grid[0].Evening.Submitted {
		t.Fatalf("expected a BOTH report to cover both shifts")
	}
	if grid[0].Morning.Manager == nil || *grid[0].Morning.Manager != "Maria" {
		t.Fatalf("expected morning manager Maria, got %v", grid[0].Morning.Manager)
	}
}

func TestBuildStatusGridNilManagerForUnknownName(t *testing.T) {
	stores := []StoreRef{{ID: "s1", Name: "Downtown"}}
	grid := BuildStatusGrid(stores, []Report{shiftReport("s1", ShiftMorning, "")})

	if !grid[0].Morning.Submitted {
		t.Fatalf("expected morning submitted")
	}
	if grid[0].Morning.Manager != nil {
		t.Fatalf("expected nil manager for an empty name, got %q", *grid[0].Morning.Manager)
	}
}
