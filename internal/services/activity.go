package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/money"
)

type ActivityServiceInterface interface {
	GetActivitiesForWorkOrder(ctx context.Context, workOrderID uint64) ([]dto.ActivityDTO, error)
	CreateActivity(ctx context.Context, payload dto.CreateActivityDTO) (*dto.ActivityDTO, error)
	UpdateActivity(ctx context.Context, id uint64, payload dto.UpdateActivityDTO) (*dto.ActivityDTO, error)
	DeleteActivity(ctx context.Context, id uint64) error
}

type ActivityService struct {
	activityRepo  repositories.ActivityRepositoryInterface
	workOrderRepo repositories.WorkOrderRepositoryInterface
	logger        *zap.Logger
}

func NewActivityService(
	activityRepo repositories.ActivityRepositoryInterface,
	workOrderRepo repositories.WorkOrderRepositoryInterface,
	logger *zap.Logger,
) ActivityServiceInterface {
	return &ActivityService{
		activityRepo:  activityRepo,
		workOrderRepo: workOrderRepo,
		logger:        logger,
	}
}

func activityToDTO(a entities.Activity) dto.ActivityDTO {
	out := dto.ActivityDTO{
		ID:           a.ID,
		WorkOrderID:  a.WorkOrderID,
		ActivityType: a.ActivityType,
		Description:  a.Description,
		StartTime:    a.StartTime.Format(dateTimeFormat),
		Cost:         money.FormatFixed2(a.CostCents),
		PartsUsed:    a.PartsUsed,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt.Format(dateTimeFormat),
	}
	if a.EndTime != nil {
		s := a.EndTime.Format(dateTimeFormat)
		out.EndTime = &s
	}
	if hours := a.Duration(); hours != nil {
		s := money.FormatFixed2(int64(*hours*100 + 0.5))
		out.DurationHours = &s
	}
	return out
}

func (s *ActivityService) GetActivitiesForWorkOrder(ctx context.Context, workOrderID uint64) ([]dto.ActivityDTO, error) {
	if _, err := s.workOrderRepo.FindWorkOrder(ctx, workOrderID); err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.GetActivitiesForWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityDTO, 0, len(activities))
	for _, a := range activities {
		out = append(out, activityToDTO(a))
	}
	return out, nil
}

func (s *ActivityService) CreateActivity(ctx context.Context, payload dto.CreateActivityDTO) (*dto.ActivityDTO, error) {
	if _, err := s.workOrderRepo.FindWorkOrder(ctx, payload.WorkOrderID); err != nil {
		return nil, err
	}

	a := entities.Activity{
		WorkOrderID:  payload.WorkOrderID,
		ActivityType: payload.ActivityType,
		Description:  payload.Description,
		StartTime:    time.Now(),
		PartsUsed:    payload.PartsUsed,
		Notes:        payload.Notes,
	}
	if payload.StartTime.Valid {
		a.StartTime = payload.StartTime.Time
	}
	if payload.EndTime.Valid {
		t := payload.EndTime.Time
		a.EndTime = &t
	}
	if a.EndTime != nil && a.EndTime.Before(a.StartTime) {
		return nil, apperrors.NewValidationError("end_time", "end time precedes start time")
	}
	if payload.Cost != "" {
		cents, err := money.ParseFixed2(payload.Cost)
		if err != nil {
			return nil, apperrors.NewValidationError("cost", "%v", err)
		}
		a.CostCents = cents
	}

	newID, err := s.activityRepo.CreateActivity(ctx, a)
	if err != nil {
		return nil, err
	}
	created, err := s.activityRepo.FindActivity(ctx, newID)
	if err != nil {
		return nil, err
	}
	result := activityToDTO(*created)
	return &result, nil
}

func (s *ActivityService) UpdateActivity(ctx context.Context, id uint64, payload dto.UpdateActivityDTO) (*dto.ActivityDTO, error) {
	a, err := s.activityRepo.FindActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.ActivityType != nil {
		a.ActivityType = *payload.ActivityType
	}
	if payload.Description != nil {
		a.Description = *payload.Description
	}
	if payload.StartTime.Valid {
		a.StartTime = payload.StartTime.Time
	}
	if payload.EndTime.Valid {
		t := payload.EndTime.Time
		a.EndTime = &t
	}
	if a.EndTime != nil && a.EndTime.Before(a.StartTime) {
		return nil, apperrors.NewValidationError("end_time", "end time precedes start time")
	}
	if payload.Cost != nil {
		cents, err := money.ParseFixed2(*payload.Cost)
		if err != nil {
			return nil, apperrors.NewValidationError("cost", "%v", err)
		}
		a.CostCents = cents
	}
	if payload.PartsUsed != nil {
		a.PartsUsed = *payload.PartsUsed
	}
	if payload.Notes != nil {
		a.Notes = *payload.Notes
	}

	if err := s.activityRepo.UpdateActivity(ctx, id, *a); err != nil {
		return nil, err
	}
	updated, err := s.activityRepo.FindActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	result := activityToDTO(*updated)
	return &result, nil
}

func (s *ActivityService) DeleteActivity(ctx context.Context, id uint64) error {
	return s.activityRepo.DeleteActivity(ctx, id)
}
