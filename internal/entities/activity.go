package entities

import (
	"time"

	"gearguard/pkg/types"
)

// Activity types.
const (
	ActivityInspection  = "Inspection"
	ActivityRepair      = "Repair"
	ActivityReplacement = "Replacement"
	ActivityCleaning    = "Cleaning"
	ActivityCalibration = "Calibration"
	ActivityTesting     = "Testing"
	ActivityOther       = "Other"
)

var ActivityTypes = []string{
	ActivityInspection,
	ActivityRepair,
	ActivityReplacement,
	ActivityCleaning,
	ActivityCalibration,
	ActivityTesting,
	ActivityOther,
}

func ValidActivityType(t string) bool {
	for _, known := range ActivityTypes {
		if known == t {
			return true
		}
	}
	return false
}

// Activity is a logged unit of work within a work order.
type Activity struct {
	ID           uint64     `json:"id" db:"id"`
	WorkOrderID  uint64     `json:"work_order_id" db:"work_order_id"`
	ActivityType string     `json:"activity_type" db:"activity_type"`
	Description  string     `json:"description" db:"description"`
	StartTime    time.Time  `json:"start_time" db:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty" db:"end_time"`
	CostCents    int64      `json:"-" db:"cost_cents"`
	PartsUsed    string     `json:"parts_used,omitempty" db:"parts_used"`
	Notes        string     `json:"notes,omitempty" db:"notes"`

	types.BaseEntity
}

// Duration returns hours between start and end, nil while the activity is
// still open. Derived, never persisted.
func (a *Activity) Duration() *float64 {
	if a.EndTime == nil {
		return nil
	}
	hours := a.EndTime.Sub(a.StartTime).Hours()
	return &hours
}
