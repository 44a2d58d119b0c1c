package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

func newWorkOrderService(woRepo *fakeWorkOrderRepo, eqRepo *fakeEquipmentRepo) WorkOrderServiceInterface {
	return NewWorkOrderService(woRepo, eqRepo, &fakeRequestRepo{}, &fakeTxManager{}, zap.NewNop())
}

func healthyEquipment() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{
		findEquipment: func(ctx context.Context, id uint64) (*repositories.EquipmentListItem, error) {
			return &repositories.EquipmentListItem{Equipment: entities.Equipment{ID: id, Name: "Lathe"}}, nil
		},
	}
}

func TestCreateWorkOrderAllocatesSequentialNumber(t *testing.T) {
	var inserted entities.WorkOrder
	woRepo := &fakeWorkOrderRepo{
		listNumbersInTx: func(ctx context.Context, tx pgx.Tx) ([]string, error) {
			return []string{"WO-0001", "WO-0003"}, nil
		},
		countInTx: func(ctx context.Context, tx pgx.Tx) (uint64, error) { return 2, nil },
		createInTx: func(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (uint64, error) {
			inserted = wo
			return 10, nil
		},
		findWorkOrder: func(ctx context.Context, id uint64) (*repositories.WorkOrderListItem, error) {
			inserted.ID = id
			return &repositories.WorkOrderListItem{WorkOrder: inserted, EquipmentName: "Lathe"}, nil
		},
	}
	svc := newWorkOrderService(woRepo, healthyEquipment())

	result, err := svc.CreateWorkOrder(context.Background(), dto.CreateWorkOrderDTO{
		EquipmentID: 3,
		Date:        "2026-03-12",
		Time:        "09:30",
	})
	require.NoError(t, err)

	assert.Equal(t, "WO-0004", inserted.WorkOrderNumber)
	assert.Equal(t, entities.WorkOrderOpen, inserted.Status)
	assert.Equal(t, entities.PriorityMedium, inserted.Priority)
	assert.Equal(t, "WO-0004", result.WorkOrderNumber)
}

func TestCreateWorkOrderRetriesOnNumberCollision(t *testing.T) {
	attempts := 0
	woRepo := &fakeWorkOrderRepo{
		listNumbersInTx: func(ctx context.Context, tx pgx.Tx) ([]string, error) {
			return []string{"WO-0001"}, nil
		},
		countInTx: func(ctx context.Context, tx pgx.Tx) (uint64, error) { return 1, nil },
		createInTx: func(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (uint64, error) {
			attempts++
			if attempts < 3 {
				return 0, repositories.ErrDuplicateWorkOrderNumber
			}
			return 10, nil
		},
		findWorkOrder: func(ctx context.Context, id uint64) (*repositories.WorkOrderListItem, error) {
			return &repositories.WorkOrderListItem{
				WorkOrder:     entities.WorkOrder{ID: id, WorkOrderNumber: "WO-0002"},
				EquipmentName: "Lathe",
			}, nil
		},
	}
	svc := newWorkOrderService(woRepo, healthyEquipment())

	_, err := svc.CreateWorkOrder(context.Background(), dto.CreateWorkOrderDTO{EquipmentID: 3, Date: "2026-03-12"})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts, "two collisions then success")
}

func TestCreateWorkOrderGivesUpAfterRepeatedCollisions(t *testing.T) {
	woRepo := &fakeWorkOrderRepo{
		listNumbersInTx: func(ctx context.Context, tx pgx.Tx) ([]string, error) { return nil, nil },
		countInTx:       func(ctx context.Context, tx pgx.Tx) (uint64, error) { return 0, nil },
		createInTx: func(ctx context.Context, tx pgx.Tx, wo entities.WorkOrder) (uint64, error) {
			return 0, repositories.ErrDuplicateWorkOrderNumber
		},
	}
	svc := newWorkOrderService(woRepo, healthyEquipment())

	_, err := svc.CreateWorkOrder(context.Background(), dto.CreateWorkOrderDTO{EquipmentID: 3, Date: "2026-03-12"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateWorkOrderNumber)
}

func TestCreateWorkOrderRejectsScrappedEquipment(t *testing.T) {
	eqRepo := &fakeEquipmentRepo{
		findEquipment: func(ctx context.Context, id uint64) (*repositories.EquipmentListItem, error) {
			return &repositories.EquipmentListItem{
				Equipment: entities.Equipment{ID: id, Name: "Old Press", IsScrapped: true},
			}, nil
		},
	}
	svc := newWorkOrderService(&fakeWorkOrderRepo{}, eqRepo)

	_, err := svc.CreateWorkOrder(context.Background(), dto.CreateWorkOrderDTO{EquipmentID: 3, Date: "2026-03-12"})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "equipment_id")
}

func TestUpdateWorkOrderValidatesStatus(t *testing.T) {
	woRepo := &fakeWorkOrderRepo{
		findWorkOrder: func(ctx context.Context, id uint64) (*repositories.WorkOrderListItem, error) {
			return &repositories.WorkOrderListItem{
				WorkOrder:     entities.WorkOrder{ID: id, Status: entities.WorkOrderOpen},
				EquipmentName: "Lathe",
			}, nil
		},
	}
	svc := newWorkOrderService(woRepo, healthyEquipment())

	bad := "Closed"
	_, err := svc.UpdateWorkOrder(context.Background(), 10, dto.UpdateWorkOrderDTO{Status: &bad})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
}
