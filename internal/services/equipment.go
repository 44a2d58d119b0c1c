package services

import (
	"context"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
	GetCategories(ctx context.Context) ([]entities.EquipmentCategory, error)
	CreateCategory(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (*entities.EquipmentCategory, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

func equipmentToDTO(item repositories.EquipmentListItem) dto.EquipmentDTO {
	out := dto.EquipmentDTO{
		ID:                 item.ID,
		Name:               item.Name,
		SerialNumber:       item.SerialNumber,
		Department:         item.Department,
		Location:           item.Location,
		Company:            item.Company,
		UsedFor:            item.UsedFor,
		Condition:          item.Condition,
		Description:        item.Description,
		IsScrapped:         item.IsScrapped,
		ActiveRequestCount: item.ActiveRequestCount,
		CreatedAt:          item.CreatedAt.Format(dateTimeFormat),
	}
	if item.CategoryID != nil && item.CategoryName != nil {
		out.Category = &dto.ShortCategoryDTO{ID: *item.CategoryID, Name: *item.CategoryName}
	}
	if item.MaintenanceTeamID != nil && item.TeamName != nil {
		out.MaintenanceTeam = &dto.ShortTeamDTO{ID: *item.MaintenanceTeamID, Name: *item.TeamName}
	}
	if item.AssignedEmployeeID != nil && item.EmployeeName != nil {
		out.AssignedEmployee = &dto.ShortUserDTO{ID: *item.AssignedEmployeeID, FullName: *item.EmployeeName}
	}
	if item.AcquisitionDate != nil {
		s := item.AcquisitionDate.Format(dateFormat)
		out.AcquisitionDate = &s
	}
	return out
}

func (s *EquipmentService) GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	items, total, err := s.equipmentRepo.GetEquipment(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.EquipmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, equipmentToDTO(item))
	}
	return out, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	item, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	result := equipmentToDTO(*item)
	return &result, nil
}

func (s *EquipmentService) validateRefs(ctx context.Context, teamID, employeeID *uint64) error {
	if teamID != nil {
		if _, err := s.teamRepo.FindTeam(ctx, *teamID); err != nil {
			return err
		}
	}
	if employeeID != nil {
		if _, err := s.userRepo.FindUser(ctx, *employeeID); err != nil {
			return err
		}
	}
	return nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := s.validateRefs(ctx, payload.MaintenanceTeamID, payload.AssignedEmployeeID); err != nil {
		return nil, err
	}

	condition := payload.Condition
	if condition == "" {
		condition = entities.ConditionGood
	}

	eq := entities.Equipment{
		Name:               payload.Name,
		SerialNumber:       payload.SerialNumber,
		Department:         payload.Department,
		Location:           payload.Location,
		CategoryID:         payload.CategoryID,
		Company:            payload.Company,
		UsedFor:            payload.UsedFor,
		Condition:          condition,
		Description:        payload.Description,
		MaintenanceTeamID:  payload.MaintenanceTeamID,
		AssignedEmployeeID: payload.AssignedEmployeeID,
	}
	if payload.AcquisitionDate.Valid {
		t := payload.AcquisitionDate.Time
		eq.AcquisitionDate = &t
	}

	newID, err := s.equipmentRepo.CreateEquipment(ctx, eq)
	if err != nil {
		return nil, err
	}
	return s.FindEquipment(ctx, newID)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	item, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.IsScrapped {
		return nil, apperrors.NewValidationError("id", "scrapped equipment cannot be edited")
	}
	if err := s.validateRefs(ctx, payload.MaintenanceTeamID, payload.AssignedEmployeeID); err != nil {
		return nil, err
	}

	eq := item.Equipment
	if payload.Name != nil {
		eq.Name = *payload.Name
	}
	if payload.SerialNumber != nil {
		eq.SerialNumber = payload.SerialNumber
	}
	if payload.Department != nil {
		eq.Department = *payload.Department
	}
	if payload.Location != nil {
		eq.Location = *payload.Location
	}
	if payload.CategoryID != nil {
		eq.CategoryID = payload.CategoryID
	}
	if payload.Company != nil {
		eq.Company = *payload.Company
	}
	if payload.UsedFor != nil {
		eq.UsedFor = *payload.UsedFor
	}
	if payload.AcquisitionDate.Valid {
		t := payload.AcquisitionDate.Time
		eq.AcquisitionDate = &t
	}
	if payload.Condition != nil {
		eq.Condition = *payload.Condition
	}
	if payload.Description != nil {
		eq.Description = *payload.Description
	}
	if payload.MaintenanceTeamID != nil {
		eq.MaintenanceTeamID = payload.MaintenanceTeamID
	}
	if payload.AssignedEmployeeID != nil {
		eq.AssignedEmployeeID = payload.AssignedEmployeeID
	}

	if err := s.equipmentRepo.UpdateEquipment(ctx, id, eq); err != nil {
		return nil, err
	}
	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	item, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return err
	}
	if item.ActiveRequestCount > 0 {
		return apperrors.NewValidationError("id", "equipment has %d open maintenance requests", item.ActiveRequestCount)
	}
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}

func (s *EquipmentService) GetCategories(ctx context.Context) ([]entities.EquipmentCategory, error) {
	return s.equipmentRepo.GetCategories(ctx)
}

func (s *EquipmentService) CreateCategory(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (*entities.EquipmentCategory, error) {
	newID, err := s.equipmentRepo.CreateCategory(ctx, payload.Name)
	if err != nil {
		return nil, err
	}
	return &entities.EquipmentCategory{ID: newID, Name: payload.Name}, nil
}
