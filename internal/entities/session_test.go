package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func centiPtr(v int64) *int64 { return &v }

func TestSessionRecalculate(t *testing.T) {
	s := MaintenanceSession{
		DurationCentiHrs: centiPtr(250), // 2.5h
		CostPerHourCents: 4000,          // 40.00/h
	}
	s.Recalculate()
	assert.Equal(t, int64(10000), s.TotalCostCents)

	// Half-up rounding: 1.33h * 37.77 = 50.2341 -> 50.23
	s = MaintenanceSession{DurationCentiHrs: centiPtr(133), CostPerHourCents: 3777}
	s.Recalculate()
	assert.Equal(t, int64(5023), s.TotalCostCents)

	// Missing duration zeroes the total.
	s = MaintenanceSession{CostPerHourCents: 4000, TotalCostCents: 999}
	s.Recalculate()
	assert.Equal(t, int64(0), s.TotalCostCents)

	// Zero rate zeroes the total.
	s = MaintenanceSession{DurationCentiHrs: centiPtr(250), TotalCostCents: 999}
	s.Recalculate()
	assert.Equal(t, int64(0), s.TotalCostCents)
}
