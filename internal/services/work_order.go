package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/money"
	"gearguard/pkg/types"
)

// Number allocation races lose the unique-constraint check and retry with a
// freshly computed number.
const workOrderCreateAttempts = 3

type WorkOrderServiceInterface interface {
	GetWorkOrders(ctx context.Context, filter types.Filter) ([]dto.WorkOrderDTO, uint64, error)
	FindWorkOrder(ctx context.Context, id uint64) (*dto.WorkOrderDTO, error)
	CreateWorkOrder(ctx context.Context, payload dto.CreateWorkOrderDTO) (*dto.WorkOrderDTO, error)
	UpdateWorkOrder(ctx context.Context, id uint64, payload dto.UpdateWorkOrderDTO) (*dto.WorkOrderDTO, error)
	DeleteWorkOrder(ctx context.Context, id uint64) error
}

type WorkOrderService struct {
	workOrderRepo repositories.WorkOrderRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	requestRepo   repositories.RequestRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewWorkOrderService(
	workOrderRepo repositories.WorkOrderRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) WorkOrderServiceInterface {
	return &WorkOrderService{
		workOrderRepo: workOrderRepo,
		equipmentRepo: equipmentRepo,
		requestRepo:   requestRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

func workOrderToDTO(item repositories.WorkOrderListItem) dto.WorkOrderDTO {
	out := dto.WorkOrderDTO{
		ID:                   item.ID,
		WorkOrderNumber:      item.WorkOrderNumber,
		Equipment:            dto.ShortEquipmentDTO{ID: item.EquipmentID, Name: item.EquipmentName},
		MaintenanceRequestID: item.MaintenanceRequestID,
		Date:                 item.Date,
		Time:                 item.Time,
		Status:               item.Status,
		Priority:             item.Priority,
		Description:          item.Description,
		TotalCost:            money.FormatFixed2(item.TotalCostCents),
		CreatedAt:            item.CreatedAt.Format(dateTimeFormat),
	}
	if item.AssignedToID != nil && item.AssigneeName != nil {
		out.AssignedTo = &dto.ShortUserDTO{ID: *item.AssignedToID, FullName: *item.AssigneeName}
	}
	if item.UpdatedAt != nil {
		s := item.UpdatedAt.Format(dateTimeFormat)
		out.UpdatedAt = &s
	}
	return out
}

func (s *WorkOrderService) GetWorkOrders(ctx context.Context, filter types.Filter) ([]dto.WorkOrderDTO, uint64, error) {
	items, total, err := s.workOrderRepo.GetWorkOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.WorkOrderDTO, 0, len(items))
	for _, item := range items {
		out = append(out, workOrderToDTO(item))
	}
	return out, total, nil
}

func (s *WorkOrderService) FindWorkOrder(ctx context.Context, id uint64) (*dto.WorkOrderDTO, error) {
	item, err := s.workOrderRepo.FindWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	result := workOrderToDTO(*item)
	return &result, nil
}

// CreateWorkOrder allocates the WO-%04d number and inserts in one
// transaction. If a concurrent insert takes the same number the unique
// constraint fires and the whole allocation is retried with fresh state.
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, payload dto.CreateWorkOrderDTO) (*dto.WorkOrderDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equipment.IsScrapped {
		return nil, apperrors.NewValidationError("equipment_id", "equipment %q is scrapped", equipment.Name)
	}

	priority := payload.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}

	wo := entities.WorkOrder{
		EquipmentID:          payload.EquipmentID,
		MaintenanceRequestID: payload.MaintenanceRequestID,
		Date:                 payload.Date,
		Time:                 payload.Time,
		Status:               entities.WorkOrderOpen,
		Priority:             priority,
		AssignedToID:         payload.AssignedToID,
		Description:          payload.Description,
	}
	if payload.MaintenanceRequestID != nil {
		if _, err := s.requestRepo.FindRequest(ctx, *payload.MaintenanceRequestID); err != nil {
			return nil, err
		}
	}

	var newID uint64
	for attempt := 0; attempt < workOrderCreateAttempts; attempt++ {
		err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			numbers, err := s.workOrderRepo.ListNumbersInTx(ctx, tx)
			if err != nil {
				return err
			}
			total, err := s.workOrderRepo.CountInTx(ctx, tx)
			if err != nil {
				return err
			}
			wo.WorkOrderNumber = entities.NextWorkOrderNumber(numbers, total)

			newID, err = s.workOrderRepo.CreateInTx(ctx, tx, wo)
			return err
		})
		if !errors.Is(err, repositories.ErrDuplicateWorkOrderNumber) {
			break
		}
		s.logger.Warn("work order number collision, retrying",
			zap.String("number", wo.WorkOrderNumber),
			zap.Int("attempt", attempt+1),
		)
	}
	if err != nil {
		return nil, err
	}

	return s.FindWorkOrder(ctx, newID)
}

func (s *WorkOrderService) UpdateWorkOrder(ctx context.Context, id uint64, payload dto.UpdateWorkOrderDTO) (*dto.WorkOrderDTO, error) {
	item, err := s.workOrderRepo.FindWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	wo := item.WorkOrder
	if payload.Date != nil {
		wo.Date = *payload.Date
	}
	if payload.Time != nil {
		wo.Time = *payload.Time
	}
	if payload.Status != nil {
		if !entities.ValidWorkOrderStatus(*payload.Status) {
			return nil, apperrors.NewValidationError("status", "unknown work order status %q", *payload.Status)
		}
		wo.Status = *payload.Status
	}
	if payload.Priority != nil {
		wo.Priority = *payload.Priority
	}
	if payload.AssignedToID != nil {
		wo.AssignedToID = payload.AssignedToID
	}
	if payload.Description != nil {
		wo.Description = *payload.Description
	}

	if err := s.workOrderRepo.UpdateWorkOrder(ctx, id, wo); err != nil {
		return nil, err
	}
	return s.FindWorkOrder(ctx, id)
}

func (s *WorkOrderService) DeleteWorkOrder(ctx context.Context, id uint64) error {
	return s.workOrderRepo.DeleteWorkOrder(ctx, id)
}
