package entities

import (
	"gearguard/pkg/money"
	"gearguard/pkg/types"
)

// MaintenanceSession is a billable time block within a work order.
// TotalCostCents is derived: it always equals duration × cost per hour and
// is recomputed on every save, never set by the caller.
type MaintenanceSession struct {
	ID               uint64  `json:"id" db:"id"`
	WorkOrderID      uint64  `json:"work_order_id" db:"work_order_id"`
	Date             string  `json:"date" db:"date"`
	StartTime        string  `json:"start_time" db:"start_time"`
	EndTime          *string `json:"end_time,omitempty" db:"end_time"`
	CostPerHourCents int64   `json:"-" db:"cost_per_hour_cents"`
	DurationCentiHrs *int64  `json:"-" db:"duration_centihours"`
	TotalCostCents   int64   `json:"-" db:"total_cost_cents"`
	Notes            string  `json:"notes,omitempty" db:"notes"`

	types.BaseEntity
}

// Recalculate recomputes the derived total cost. Null operands count as
// zero; rounding is half-up at two decimal places (see pkg/money).
func (s *MaintenanceSession) Recalculate() {
	if s.DurationCentiHrs == nil || s.CostPerHourCents == 0 {
		s.TotalCostCents = 0
		return
	}
	s.TotalCostCents = money.Total(*s.DurationCentiHrs, s.CostPerHourCents)
}
