package analytics

// StoreRef identifies one store for grid building.
type StoreRef struct {
	ID   string
	Name string
}

// ShiftStatus says whether a shift report came in today and who filed it.
// Manager is nil when no report covers the shift.
type ShiftStatus struct {
	Submitted bool    `json:"submitted"`
	Manager   *string `json:"manager"`
}

// StoreDayStatus is one row of the today-status grid.
type StoreDayStatus struct {
	StoreID   string      `json:"storeId"`
	StoreName string      `json:"storeName"`
	Morning   ShiftStatus `json:"morning"`
	Evening   ShiftStatus `json:"evening"`
}

// BuildStatusGrid produces exactly one entry per store, regardless of how
// many reports exist today. A store with no reports still appears with both
// shifts unsubmitted, so alerting can detect the absence. A BOTH report
// covers morning and evening at once.
func BuildStatusGrid(stores []StoreRef, today []Report) []StoreDayStatus {
	grid := make([]StoreDayStatus, 0, len(stores))
	for _, store := range stores {
		status := StoreDayStatus{StoreID: store.ID, StoreName: store.Name}
		for _, r := range today {
			if r.StoreID != store.ID {
				continue
			}
			if r.CoversMorning() && !status.Morning.Submitted {
				status.Morning = submittedBy(r)
			}
			if r.CoversEvening() && !status.Evening.Submitted {
				status.Evening = submittedBy(r)
			}
		}
		grid = append(grid, status)
	}
	return grid
}

func submittedBy(r Report) ShiftStatus {
	status := ShiftStatus{Submitted: true}
	if r.ManagerName != "" {
		name := r.ManagerName
		status.Manager = &name
	}
	return status
}
