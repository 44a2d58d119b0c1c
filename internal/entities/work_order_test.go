package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWorkOrderNumber(t *testing.T) {
	n, ok := ParseWorkOrderNumber("WO-0042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = ParseWorkOrderNumber("garbage")
	assert.False(t, ok)

	_, ok = ParseWorkOrderNumber("WO-abc")
	assert.False(t, ok)
}

func TestNextWorkOrderNumber(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		total    uint64
		want     string
	}{
		{name: "empty table", existing: nil, total: 0, want: "WO-0001"},
		{name: "sequential", existing: []string{"WO-0001", "WO-0002"}, total: 2, want: "WO-0003"},
		{name: "gap uses max", existing: []string{"WO-0001", "WO-0007"}, total: 2, want: "WO-0008"},
		{name: "unparseable falls back to count", existing: []string{"legacy", "other"}, total: 2, want: "WO-0003"},
		{name: "mixed keeps max parseable", existing: []string{"legacy", "WO-0005"}, total: 2, want: "WO-0006"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextWorkOrderNumber(tc.existing, tc.total))
		})
	}
}

func TestValidWorkOrderStatus(t *testing.T) {
	assert.True(t, ValidWorkOrderStatus(WorkOrderCompleted))
	assert.False(t, ValidWorkOrderStatus("Closed"))
}
