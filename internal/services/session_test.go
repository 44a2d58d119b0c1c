package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

func newSessionService(sessionRepo *fakeSessionRepo) SessionServiceInterface {
	woRepo := &fakeWorkOrderRepo{
		findWorkOrder: func(ctx context.Context, id uint64) (*repositories.WorkOrderListItem, error) {
			return &repositories.WorkOrderListItem{
				WorkOrder:     entities.WorkOrder{ID: id},
				EquipmentName: "Lathe",
			}, nil
		},
	}
	return NewSessionService(sessionRepo, woRepo, zap.NewNop())
}

func TestDeriveDuration(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int64
	}{
		{name: "full hours", start: "09:00", end: "11:00", want: 200},
		{name: "half hour", start: "09:00", end: "09:30", want: 50},
		{name: "rounds half up", start: "09:00", end: "09:10", want: 17}, // 10min = 16.67 centi-hours
		{name: "zero", start: "09:00", end: "09:00", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := deriveDuration(tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := deriveDuration("10:00", "09:00")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_time")

	_, err = deriveDuration("25:00", "09:00")
	require.ErrorAs(t, err, &verr)
}

func TestCreateSessionDerivesDurationAndTotal(t *testing.T) {
	var saved entities.MaintenanceSession
	sessionRepo := &fakeSessionRepo{
		createSession: func(ctx context.Context, s entities.MaintenanceSession) (uint64, error) {
			saved = s
			return 20, nil
		},
		findSession: func(ctx context.Context, id uint64) (*entities.MaintenanceSession, error) {
			saved.ID = id
			return &saved, nil
		},
	}
	svc := newSessionService(sessionRepo)

	result, err := svc.CreateSession(context.Background(), dto.CreateSessionDTO{
		WorkOrderID: 10,
		Date:        "2026-03-12",
		StartTime:   "09:00",
		EndTime:     "11:30",
		CostPerHour: "40.00",
	})
	require.NoError(t, err)

	require.NotNil(t, saved.DurationCentiHrs)
	assert.Equal(t, int64(250), *saved.DurationCentiHrs)
	assert.Equal(t, int64(10000), saved.TotalCostCents, "2.5h x 40.00/h")
	assert.Equal(t, "100.00", result.TotalCost)
}

func TestCreateSessionExplicitDurationWins(t *testing.T) {
	var saved entities.MaintenanceSession
	sessionRepo := &fakeSessionRepo{
		createSession: func(ctx context.Context, s entities.MaintenanceSession) (uint64, error) {
			saved = s
			return 20, nil
		},
		findSession: func(ctx context.Context, id uint64) (*entities.MaintenanceSession, error) {
			return &saved, nil
		},
	}
	svc := newSessionService(sessionRepo)

	_, err := svc.CreateSession(context.Background(), dto.CreateSessionDTO{
		WorkOrderID: 10,
		Date:        "2026-03-12",
		StartTime:   "09:00",
		EndTime:     "11:30",
		Duration:    "1.00",
		CostPerHour: "40.00",
	})
	require.NoError(t, err)

	require.NotNil(t, saved.DurationCentiHrs)
	assert.Equal(t, int64(100), *saved.DurationCentiHrs, "explicit duration overrides the clock delta")
	assert.Equal(t, int64(4000), saved.TotalCostCents)
}

func TestUpdateSessionRecomputesTotal(t *testing.T) {
	duration := int64(200)
	stored := entities.MaintenanceSession{
		ID:               20,
		WorkOrderID:      10,
		Date:             "2026-03-12",
		StartTime:        "09:00",
		CostPerHourCents: 4000,
		DurationCentiHrs: &duration,
		TotalCostCents:   8000,
	}

	var saved entities.MaintenanceSession
	sessionRepo := &fakeSessionRepo{
		findSession: func(ctx context.Context, id uint64) (*entities.MaintenanceSession, error) {
			clone := stored
			return &clone, nil
		},
		updateSession: func(ctx context.Context, id uint64, s entities.MaintenanceSession) error {
			saved = s
			return nil
		},
	}
	svc := newSessionService(sessionRepo)

	newRate := "50.00"
	_, err := svc.UpdateSession(context.Background(), 20, dto.UpdateSessionDTO{CostPerHour: &newRate})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), saved.TotalCostCents, "total always follows duration x rate")
}

func TestCreateSessionRejectsBadCost(t *testing.T) {
	svc := newSessionService(&fakeSessionRepo{})

	_, err := svc.CreateSession(context.Background(), dto.CreateSessionDTO{
		WorkOrderID: 10,
		Date:        "2026-03-12",
		StartTime:   "09:00",
		CostPerHour: "forty",
	})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cost_per_hour")
}
