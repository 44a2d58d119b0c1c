package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

func uintPtr(v uint64) *uint64 { return &v }

func requestItem(req entities.MaintenanceRequest) *repositories.RequestListItem {
	return &repositories.RequestListItem{MaintenanceRequest: req, EquipmentName: "CNC Lathe #1"}
}

func newRequestService(
	reqRepo repositories.RequestRepositoryInterface,
	eqRepo repositories.EquipmentRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
) MaintenanceRequestServiceInterface {
	logger := zap.NewNop()
	return NewMaintenanceRequestService(reqRepo, eqRepo, teamRepo, userRepo, &fakeTxManager{}, eventbus.New(logger), logger)
}

func TestCreateRequestRejectsScrappedEquipment(t *testing.T) {
	eqRepo := &fakeEquipmentRepo{
		findEquipment: func(ctx context.Context, id uint64) (*repositories.EquipmentListItem, error) {
			return &repositories.EquipmentListItem{
				Equipment: entities.Equipment{ID: id, Name: "Old Press", IsScrapped: true},
			}, nil
		},
	}
	svc := newRequestService(&fakeRequestRepo{}, eqRepo, &fakeTeamRepo{}, &fakeUserRepo{})

	_, err := svc.CreateRequest(actorCtx(types.Actor{ID: 7}), dto.CreateMaintenanceRequestDTO{
		Subject:     "Press is leaking",
		EquipmentID: 3,
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "equipment_id")
}

func TestCreateRequestPreventiveNeedsSchedule(t *testing.T) {
	eqRepo := &fakeEquipmentRepo{
		findEquipment: func(ctx context.Context, id uint64) (*repositories.EquipmentListItem, error) {
			return &repositories.EquipmentListItem{Equipment: entities.Equipment{ID: id, Name: "Lathe"}}, nil
		},
	}
	svc := newRequestService(&fakeRequestRepo{}, eqRepo, &fakeTeamRepo{}, &fakeUserRepo{})

	_, err := svc.CreateRequest(actorCtx(types.Actor{ID: 7}), dto.CreateMaintenanceRequestDTO{
		Subject:     "Quarterly check",
		EquipmentID: 3,
		RequestType: entities.TypePreventive,
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "scheduled_date")
}

func TestCreateRequestInheritsEquipmentTeam(t *testing.T) {
	eqRepo := &fakeEquipmentRepo{
		findEquipment: func(ctx context.Context, id uint64) (*repositories.EquipmentListItem, error) {
			return &repositories.EquipmentListItem{
				Equipment: entities.Equipment{ID: id, Name: "Lathe", MaintenanceTeamID: uintPtr(9)},
			}, nil
		},
	}

	var created entities.MaintenanceRequest
	reqRepo := &fakeRequestRepo{
		createRequest: func(ctx context.Context, req entities.MaintenanceRequest) (uint64, error) {
			created = req
			return 42, nil
		},
		findRequest: func(ctx context.Context, id uint64) (*repositories.RequestListItem, error) {
			created.ID = id
			return requestItem(created), nil
		},
	}
	svc := newRequestService(reqRepo, eqRepo, &fakeTeamRepo{}, &fakeUserRepo{})

	result, err := svc.CreateRequest(actorCtx(types.Actor{ID: 7}), dto.CreateMaintenanceRequestDTO{
		Subject:     "Spindle noise",
		EquipmentID: 3,
	})
	require.NoError(t, err)

	require.NotNil(t, created.MaintenanceTeamID)
	assert.Equal(t, uint64(9), *created.MaintenanceTeamID, "team inherited from equipment")
	assert.Equal(t, entities.TypeCorrective, created.RequestType, "type defaults to corrective")
	assert.Equal(t, entities.PriorityMedium, created.Priority, "priority defaults to medium")
	assert.Equal(t, entities.StatusNew, created.Status)
	require.NotNil(t, created.CreatedByID)
	assert.Equal(t, uint64(7), *created.CreatedByID)
	assert.Equal(t, uint64(42), result.ID)
}

func TestCreateRequestAssigneeMustBeTeamMember(t *testing.T) {
	eqRepo := &fakeEquipmentRepo{
		findEquipment: func(ctx context.Context, id uint64) (*repositories.EquipmentListItem, error) {
			return &repositories.EquipmentListItem{Equipment: entities.Equipment{ID: id, Name: "Lathe"}}, nil
		},
	}
	teamRepo := &fakeTeamRepo{
		findTeam: func(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error) {
			return &entities.MaintenanceTeam{ID: id, Name: "Mechanics"}, nil
		},
		isMember: func(ctx context.Context, teamID, userID uint64) (bool, error) {
			return false, nil
		},
	}
	userRepo := &fakeUserRepo{
		findUser: func(ctx context.Context, id uint64) (*entities.User, error) {
			return &entities.User{ID: id, FullName: "Tom"}, nil
		},
	}
	svc := newRequestService(&fakeRequestRepo{}, eqRepo, teamRepo, userRepo)

	_, err := svc.CreateRequest(actorCtx(types.Actor{ID: 7}), dto.CreateMaintenanceRequestDTO{
		Subject:           "Spindle noise",
		EquipmentID:       3,
		MaintenanceTeamID: uintPtr(9),
		AssignedToID:      uintPtr(11),
		ScheduledDate:     null.TimeFrom(time.Now()),
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "assigned_to_id")
}

func TestTransitionStatusPermissions(t *testing.T) {
	item := requestItem(entities.MaintenanceRequest{
		ID:                5,
		Status:            entities.StatusNew,
		MaintenanceTeamID: uintPtr(9),
		CreatedByID:       uintPtr(7),
	})
	reqRepo := &fakeRequestRepo{
		findRequest: func(ctx context.Context, id uint64) (*repositories.RequestListItem, error) {
			return item, nil
		},
	}
	svc := newRequestService(reqRepo, &fakeEquipmentRepo{}, &fakeTeamRepo{}, &fakeUserRepo{})

	// The creator alone can see the request but cannot move the workflow.
	_, err := svc.TransitionStatus(actorCtx(types.Actor{ID: 7}), 5, entities.StatusInProgress)
	var perr *apperrors.PermissionError
	require.ErrorAs(t, err, &perr)

	// Members of an unrelated team are outside the visibility scope, so the
	// response never confirms the request exists.
	_, err = svc.TransitionStatus(actorCtx(types.Actor{ID: 8, TeamIDs: []uint64{2}}), 5, entities.StatusInProgress)
	var nferr *apperrors.NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestTransitionStatusUnknownStatus(t *testing.T) {
	svc := newRequestService(&fakeRequestRepo{}, &fakeEquipmentRepo{}, &fakeTeamRepo{}, &fakeUserRepo{})

	_, err := svc.TransitionStatus(actorCtx(types.Actor{ID: 1, IsManager: true}), 5, "Done")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
}

func TestTransitionStatusRepairedStampsCompletion(t *testing.T) {
	item := requestItem(entities.MaintenanceRequest{ID: 5, EquipmentID: 3, Status: entities.StatusInProgress})

	var stamped bool
	reqRepo := &fakeRequestRepo{
		findRequest: func(ctx context.Context, id uint64) (*repositories.RequestListItem, error) {
			return item, nil
		},
		transitionInTx: func(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, stampCompleted bool) error {
			stamped = stampCompleted
			assert.Equal(t, entities.StatusRepaired, newStatus)
			return nil
		},
	}
	svc := newRequestService(reqRepo, &fakeEquipmentRepo{}, &fakeTeamRepo{}, &fakeUserRepo{})

	_, err := svc.TransitionStatus(actorCtx(types.Actor{ID: 1, IsManager: true}), 5, entities.StatusRepaired)
	require.NoError(t, err)
	assert.True(t, stamped, "reaching Repaired stamps completed_at")
}

func TestTransitionStatusScrapPropagatesToEquipment(t *testing.T) {
	item := requestItem(entities.MaintenanceRequest{ID: 5, EquipmentID: 3, Status: entities.StatusNew})

	var scrappedEquipmentID uint64
	reqRepo := &fakeRequestRepo{
		findRequest: func(ctx context.Context, id uint64) (*repositories.RequestListItem, error) {
			return item, nil
		},
		transitionInTx: func(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, stampCompleted bool) error {
			assert.False(t, stampCompleted, "Scrap does not stamp completion")
			return nil
		},
	}
	eqRepo := &fakeEquipmentRepo{
		markScrappedInTx: func(ctx context.Context, tx pgx.Tx, id uint64) error {
			scrappedEquipmentID = id
			return nil
		},
	}
	svc := newRequestService(reqRepo, eqRepo, &fakeTeamRepo{}, &fakeUserRepo{})

	_, err := svc.TransitionStatus(actorCtx(types.Actor{ID: 1, IsManager: true}), 5, entities.StatusScrap)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), scrappedEquipmentID, "equipment scrapped in the same transaction")
}

func TestAssignTechnicianChecksMembership(t *testing.T) {
	item := requestItem(entities.MaintenanceRequest{ID: 5, MaintenanceTeamID: uintPtr(9)})
	reqRepo := &fakeRequestRepo{
		findRequest: func(ctx context.Context, id uint64) (*repositories.RequestListItem, error) {
			return item, nil
		},
	}
	teamRepo := &fakeTeamRepo{
		isMember: func(ctx context.Context, teamID, userID uint64) (bool, error) {
			return false, nil
		},
	}
	userRepo := &fakeUserRepo{
		findUser: func(ctx context.Context, id uint64) (*entities.User, error) {
			return &entities.User{ID: id}, nil
		},
	}
	svc := newRequestService(reqRepo, &fakeEquipmentRepo{}, teamRepo, userRepo)

	_, err := svc.AssignTechnician(actorCtx(types.Actor{ID: 1, IsManager: true}), 5, 11)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "user_id")
}

func TestFindRequestOutsideScope(t *testing.T) {
	item := requestItem(entities.MaintenanceRequest{
		ID:                5,
		MaintenanceTeamID: uintPtr(9),
		CreatedByID:       uintPtr(2),
	})
	reqRepo := &fakeRequestRepo{
		findRequest: func(ctx context.Context, id uint64) (*repositories.RequestListItem, error) {
			return item, nil
		},
	}
	svc := newRequestService(reqRepo, &fakeEquipmentRepo{}, &fakeTeamRepo{}, &fakeUserRepo{})

	// Out-of-scope actors get not-found, never a permission error that would
	// confirm the record exists.
	var nferr *apperrors.NotFoundError
	_, err := svc.FindRequest(actorCtx(types.Actor{ID: 7}), 5)
	require.ErrorAs(t, err, &nferr)

	// A team member's scope is exactly their teams: even the creator loses
	// sight of the request once they belong to an unrelated team.
	_, err = svc.FindRequest(actorCtx(types.Actor{ID: 2, TeamIDs: []uint64{4}}), 5)
	require.ErrorAs(t, err, &nferr)

	// Teamless creator, responsible-team member and manager all see it.
	for _, actor := range []types.Actor{
		{ID: 2},
		{ID: 7, TeamIDs: []uint64{9}},
		{ID: 1, IsManager: true},
	} {
		_, err := svc.FindRequest(actorCtx(actor), 5)
		assert.NoError(t, err, "actor %+v", actor)
	}
}

func TestKanbanAlwaysCarriesAllColumns(t *testing.T) {
	reqRepo := &fakeRequestRepo{
		getRequests: func(ctx context.Context, scope repositories.RequestScope, filter types.Filter) ([]repositories.RequestListItem, uint64, error) {
			assert.False(t, filter.WithPagination, "kanban loads everything at once")
			return []repositories.RequestListItem{
				*requestItem(entities.MaintenanceRequest{ID: 1, Status: entities.StatusNew}),
				*requestItem(entities.MaintenanceRequest{ID: 2, Status: entities.StatusNew}),
				*requestItem(entities.MaintenanceRequest{ID: 3, Status: entities.StatusRepaired}),
			}, 3, nil
		},
	}
	svc := newRequestService(reqRepo, &fakeEquipmentRepo{}, &fakeTeamRepo{}, &fakeUserRepo{})

	board, err := svc.Kanban(actorCtx(types.Actor{ID: 1, IsManager: true}))
	require.NoError(t, err)

	assert.Equal(t, entities.Statuses, board.Order)
	require.Len(t, board.Columns, len(entities.Statuses))
	assert.Len(t, board.Columns[entities.StatusNew], 2)
	assert.Len(t, board.Columns[entities.StatusRepaired], 1)
	assert.Empty(t, board.Columns[entities.StatusScrap], "empty lanes still render")
}

func TestCalendarEventsColors(t *testing.T) {
	now := time.Now()
	past := now.AddDate(0, 0, -2)
	future := now.AddDate(0, 0, 2)

	overdueItem := requestItem(entities.MaintenanceRequest{
		ID: 1, Subject: "Filter swap", RequestType: entities.TypePreventive,
		Status: entities.StatusNew, ScheduledDate: &past,
	})
	plannedItem := requestItem(entities.MaintenanceRequest{
		ID: 2, Subject: "Belt check", RequestType: entities.TypePreventive,
		Status: entities.StatusNew, ScheduledDate: &future,
	})
	teamName := "Mechanics"
	assigneeName := "Tom Becker"
	plannedItem.TeamName = &teamName
	plannedItem.AssigneeName = &assigneeName

	reqRepo := &fakeRequestRepo{
		getScheduledBetween: func(ctx context.Context, scope repositories.RequestScope, from, to time.Time) ([]repositories.RequestListItem, error) {
			return []repositories.RequestListItem{*overdueItem, *plannedItem}, nil
		},
	}
	svc := newRequestService(reqRepo, &fakeEquipmentRepo{}, &fakeTeamRepo{}, &fakeUserRepo{})

	events, err := svc.CalendarEvents(actorCtx(types.Actor{ID: 1, IsManager: true}), now.AddDate(0, -1, 0), now.AddDate(0, 2, 0))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "#dc3545", events[0].Color)
	assert.True(t, events[0].ExtendedProps.Overdue)
	assert.Equal(t, "/api/maintenance-requests/1", events[0].URL)
	assert.Equal(t, "Unassigned", events[0].ExtendedProps.Team, "missing team reads Unassigned")
	assert.Equal(t, "Unassigned", events[0].ExtendedProps.AssignedTo, "missing assignee reads Unassigned")

	assert.Equal(t, "#0dcaf0", events[1].Color)
	assert.False(t, events[1].ExtendedProps.Overdue)
	assert.Equal(t, "Mechanics", events[1].ExtendedProps.Team)
	assert.Equal(t, "Tom Becker", events[1].ExtendedProps.AssignedTo)
}

func TestDeleteRequestManagerOnly(t *testing.T) {
	var deleted bool
	reqRepo := &fakeRequestRepo{
		deleteRequest: func(ctx context.Context, id uint64) error {
			deleted = true
			return nil
		},
	}
	svc := newRequestService(reqRepo, &fakeEquipmentRepo{}, &fakeTeamRepo{}, &fakeUserRepo{})

	err := svc.DeleteRequest(actorCtx(types.Actor{ID: 7}), 5)
	var perr *apperrors.PermissionError
	require.ErrorAs(t, err, &perr)
	assert.False(t, deleted)

	require.NoError(t, svc.DeleteRequest(actorCtx(types.Actor{ID: 1, IsManager: true}), 5))
	assert.True(t, deleted)
}
