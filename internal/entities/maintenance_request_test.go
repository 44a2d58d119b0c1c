package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	cases := []struct {
		name    string
		request MaintenanceRequest
		want    bool
	}{
		{
			name:    "preventive past schedule",
			request: MaintenanceRequest{RequestType: TypePreventive, Status: StatusNew, ScheduledDate: datePtr(past)},
			want:    true,
		},
		{
			name:    "preventive future schedule",
			request: MaintenanceRequest{RequestType: TypePreventive, Status: StatusNew, ScheduledDate: datePtr(future)},
			want:    false,
		},
		{
			name:    "repaired never overdue",
			request: MaintenanceRequest{RequestType: TypePreventive, Status: StatusRepaired, ScheduledDate: datePtr(past)},
			want:    false,
		},
		{
			name:    "corrective never overdue",
			request: MaintenanceRequest{RequestType: TypeCorrective, Status: StatusNew, ScheduledDate: datePtr(past)},
			want:    false,
		},
		{
			name:    "no scheduled date",
			request: MaintenanceRequest{RequestType: TypePreventive, Status: StatusNew},
			want:    false,
		},
		{
			name:    "in progress past schedule still overdue",
			request: MaintenanceRequest{RequestType: TypePreventive, Status: StatusInProgress, ScheduledDate: datePtr(past)},
			want:    true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.request.IsOverdue(now))
		})
	}
}

func TestStatusColor(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)

	overdue := MaintenanceRequest{RequestType: TypePreventive, Status: StatusInProgress, ScheduledDate: datePtr(past)}
	assert.Equal(t, "#dc3545", overdue.StatusColor(now), "overdue wins over status")

	repaired := MaintenanceRequest{Status: StatusRepaired}
	assert.Equal(t, "#198754", repaired.StatusColor(now))

	inProgress := MaintenanceRequest{Status: StatusInProgress}
	assert.Equal(t, "#ffc107", inProgress.StatusColor(now))

	fresh := MaintenanceRequest{Status: StatusNew}
	assert.Equal(t, "#0dcaf0", fresh.StatusColor(now))
}

func TestCanTransition(t *testing.T) {
	for _, from := range Statuses {
		for _, to := range Statuses {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, CanTransition("Unknown", StatusNew))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusInProgress))
	assert.False(t, ValidStatus("Done"))
	assert.False(t, ValidStatus(""))
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityCritical))
	assert.False(t, ValidPriority("Urgent"))
}
