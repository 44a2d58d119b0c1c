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

const clockFormat = "15:04"

type SessionServiceInterface interface {
	GetSessionsForWorkOrder(ctx context.Context, workOrderID uint64) ([]dto.SessionDTO, error)
	CreateSession(ctx context.Context, payload dto.CreateSessionDTO) (*dto.SessionDTO, error)
	UpdateSession(ctx context.Context, id uint64, payload dto.UpdateSessionDTO) (*dto.SessionDTO, error)
	DeleteSession(ctx context.Context, id uint64) error
}

type SessionService struct {
	sessionRepo   repositories.SessionRepositoryInterface
	workOrderRepo repositories.WorkOrderRepositoryInterface
	logger        *zap.Logger
}

func NewSessionService(
	sessionRepo repositories.SessionRepositoryInterface,
	workOrderRepo repositories.WorkOrderRepositoryInterface,
	logger *zap.Logger,
) SessionServiceInterface {
	return &SessionService{
		sessionRepo:   sessionRepo,
		workOrderRepo: workOrderRepo,
		logger:        logger,
	}
}

func sessionToDTO(s entities.MaintenanceSession) dto.SessionDTO {
	out := dto.SessionDTO{
		ID:          s.ID,
		WorkOrderID: s.WorkOrderID,
		Date:        s.Date,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		CostPerHour: money.FormatFixed2(s.CostPerHourCents),
		TotalCost:   money.FormatFixed2(s.TotalCostCents),
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt.Format(dateTimeFormat),
	}
	if s.DurationCentiHrs != nil {
		d := money.FormatFixed2(*s.DurationCentiHrs)
		out.Duration = &d
	}
	return out
}

// deriveDuration computes centi-hours between two wall-clock times when the
// caller logs an end time without an explicit duration.
func deriveDuration(startTime, endTime string) (int64, error) {
	start, err := time.Parse(clockFormat, startTime)
	if err != nil {
		return 0, apperrors.NewValidationError("start_time", "invalid time %q", startTime)
	}
	end, err := time.Parse(clockFormat, endTime)
	if err != nil {
		return 0, apperrors.NewValidationError("end_time", "invalid time %q", endTime)
	}
	if end.Before(start) {
		return 0, apperrors.NewValidationError("end_time", "end time precedes start time")
	}
	minutes := int64(end.Sub(start).Minutes())
	// minutes -> centi-hours, rounded half-up
	return (minutes*100 + 30) / 60, nil
}

func (s *SessionService) GetSessionsForWorkOrder(ctx context.Context, workOrderID uint64) ([]dto.SessionDTO, error) {
	if _, err := s.workOrderRepo.FindWorkOrder(ctx, workOrderID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.GetSessionsForWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionDTO, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, sessionToDTO(session))
	}
	return out, nil
}

func (s *SessionService) CreateSession(ctx context.Context, payload dto.CreateSessionDTO) (*dto.SessionDTO, error) {
	if _, err := s.workOrderRepo.FindWorkOrder(ctx, payload.WorkOrderID); err != nil {
		return nil, err
	}

	session := entities.MaintenanceSession{
		WorkOrderID: payload.WorkOrderID,
		Date:        payload.Date,
		StartTime:   payload.StartTime,
		Notes:       payload.Notes,
	}
	if payload.EndTime != "" {
		end := payload.EndTime
		session.EndTime = &end
	}
	if payload.CostPerHour != "" {
		cents, err := money.ParseFixed2(payload.CostPerHour)
		if err != nil {
			return nil, apperrors.NewValidationError("cost_per_hour", "%v", err)
		}
		session.CostPerHourCents = cents
	}

	switch {
	case payload.Duration != "":
		centi, err := money.ParseFixed2(payload.Duration)
		if err != nil {
			return nil, apperrors.NewValidationError("duration", "%v", err)
		}
		session.DurationCentiHrs = &centi
	case session.EndTime != nil:
		centi, err := deriveDuration(session.StartTime, *session.EndTime)
		if err != nil {
			return nil, err
		}
		session.DurationCentiHrs = &centi
	}

	session.Recalculate()

	newID, err := s.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		return nil, err
	}
	created, err := s.sessionRepo.FindSession(ctx, newID)
	if err != nil {
		return nil, err
	}
	result := sessionToDTO(*created)
	return &result, nil
}

func (s *SessionService) UpdateSession(ctx context.Context, id uint64, payload dto.UpdateSessionDTO) (*dto.SessionDTO, error) {
	session, err := s.sessionRepo.FindSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Date != nil {
		session.Date = *payload.Date
	}
	if payload.StartTime != nil {
		session.StartTime = *payload.StartTime
	}
	if payload.EndTime != nil {
		session.EndTime = payload.EndTime
	}
	if payload.CostPerHour != nil {
		cents, err := money.ParseFixed2(*payload.CostPerHour)
		if err != nil {
			return nil, apperrors.NewValidationError("cost_per_hour", "%v", err)
		}
		session.CostPerHourCents = cents
	}
	switch {
	case payload.Duration != nil:
		centi, err := money.ParseFixed2(*payload.Duration)
		if err != nil {
			return nil, apperrors.NewValidationError("duration", "%v", err)
		}
		session.DurationCentiHrs = &centi
	case (payload.EndTime != nil || payload.StartTime != nil) && session.EndTime != nil:
		centi, err := deriveDuration(session.StartTime, *session.EndTime)
		if err != nil {
			return nil, err
		}
		session.DurationCentiHrs = &centi
	}

	// Derived total is recomputed on every save, whatever changed.
	session.Recalculate()

	if err := s.sessionRepo.UpdateSession(ctx, id, *session); err != nil {
		return nil, err
	}
	updated, err := s.sessionRepo.FindSession(ctx, id)
	if err != nil {
		return nil, err
	}
	result := sessionToDTO(*updated)
	return &result, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, id uint64) error {
	return s.sessionRepo.DeleteSession(ctx, id)
}
