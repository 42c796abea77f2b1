package dto

import "github.com/vocatech/room-allocation-api/internal/models"

// PeriodOccupancy counts occupied and available rooms for one period of
// the day. A room counts as occupied for a period when at least one of
// its assigned classes runs in that period.
type PeriodOccupancy struct {
	Period    models.Period `json:"period"`
	Occupied  int           `json:"occupied"`
	Available int           `json:"available"`
}

// DashboardOverviewResponse is the per-period occupancy summary.
type DashboardOverviewResponse struct {
	Periods []PeriodOccupancy `json:"periods"`
}
