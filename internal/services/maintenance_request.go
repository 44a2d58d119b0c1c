package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/money"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04:05"
)

type MaintenanceRequestServiceInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error)
	DeleteRequest(ctx context.Context, id uint64) error
	TransitionStatus(ctx context.Context, id uint64, newStatus string) (*dto.MaintenanceRequestDTO, error)
	AssignTechnician(ctx context.Context, id uint64, userID uint64) (*dto.MaintenanceRequestDTO, error)
	Kanban(ctx context.Context) (*dto.KanbanBoardDTO, error)
	CalendarEvents(ctx context.Context, from, to time.Time) ([]dto.CalendarEventDTO, error)
}

type MaintenanceRequestService struct {
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	txManager     repositories.TxManagerInterface
	bus           *eventbus.Bus
	logger        *zap.Logger
}

func NewMaintenanceRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) MaintenanceRequestServiceInterface {
	return &MaintenanceRequestService{
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		txManager:     txManager,
		bus:           bus,
		logger:        logger,
	}
}

func requestToDTO(item repositories.RequestListItem, now time.Time) dto.MaintenanceRequestDTO {
	out := dto.MaintenanceRequestDTO{
		ID:          item.ID,
		Subject:     item.Subject,
		Description: item.Description,
		Equipment:   dto.ShortEquipmentDTO{ID: item.EquipmentID, Name: item.EquipmentName},
		RequestType: item.RequestType,
		Status:      item.Status,
		Priority:    item.Priority,
		IsOverdue:   item.IsOverdue(now),
		CreatedAt:   item.CreatedAt.Format(dateTimeFormat),
	}
	if item.MaintenanceTeamID != nil && item.TeamName != nil {
		out.MaintenanceTeam = &dto.ShortTeamDTO{ID: *item.MaintenanceTeamID, Name: *item.TeamName}
	}
	if item.AssignedToID != nil && item.AssigneeName != nil {
		out.AssignedTo = &dto.ShortUserDTO{ID: *item.AssignedToID, FullName: *item.AssigneeName}
	}
	if item.CreatedByID != nil && item.CreatorName != nil {
		out.CreatedBy = &dto.ShortUserDTO{ID: *item.CreatedByID, FullName: *item.CreatorName}
	}
	if item.ScheduledDate != nil {
		s := item.ScheduledDate.Format(dateFormat)
		out.ScheduledDate = &s
	}
	if item.DueDate != nil {
		s := item.DueDate.Format(dateFormat)
		out.DueDate = &s
	}
	if item.CompletedAt != nil {
		s := item.CompletedAt.Format(dateTimeFormat)
		out.CompletedAt = &s
	}
	if item.DurationCentiHrs != nil {
		s := money.FormatFixed2(*item.DurationCentiHrs)
		out.DurationHours = &s
	}
	if item.UpdatedAt != nil {
		s := item.UpdatedAt.Format(dateTimeFormat)
		out.UpdatedAt = &s
	}
	return out
}

// canActorSee mirrors RequestScope for a single record. The branches are
// exclusive: managers see all, team members see exactly their teams'
// requests, and only actors without any team fall back to the creator rule.
func canActorSee(actor types.Actor, item *repositories.RequestListItem) bool {
	if actor.IsManager {
		return true
	}
	if len(actor.TeamIDs) > 0 {
		return item.MaintenanceTeamID != nil && actor.MemberOf(*item.MaintenanceTeamID)
	}
	return item.CreatedByID != nil && *item.CreatedByID == actor.ID
}

// canActorTransition gates status changes: managers always, otherwise only
// members of the team the request belongs to.
func canActorTransition(actor types.Actor, item *repositories.RequestListItem) bool {
	if actor.IsManager {
		return true
	}
	return item.MaintenanceTeamID != nil && actor.MemberOf(*item.MaintenanceTeamID)
}

func (s *MaintenanceRequestService) GetRequests(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, uint64, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.requestRepo.GetRequests(ctx, repositories.ScopeForActor(actor), filter)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	out := make([]dto.MaintenanceRequestDTO, 0, len(items))
	for _, item := range items {
		out = append(out, requestToDTO(item, now))
	}
	return out, total, nil
}

func (s *MaintenanceRequestService) FindRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	// Out-of-scope reads report not-found so the response never confirms
	// that a hidden record exists.
	if !canActorSee(actor, item) {
		return nil, apperrors.NewNotFoundError("maintenance request", id)
	}

	result := requestToDTO(*item, time.Now())
	return &result, nil
}

// CreateRequest validates in a fixed order so clients get stable error
// messages: equipment exists, equipment not scrapped, preventive requests
// carry a scheduled date, assignee belongs to the responsible team. When no
// team is given the request inherits the equipment's maintenance team.
func (s *MaintenanceRequestService) CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equipment.IsScrapped {
		return nil, apperrors.NewValidationError("equipment_id", "equipment %q is scrapped and can no longer receive requests", equipment.Name)
	}

	requestType := payload.RequestType
	if requestType == "" {
		requestType = entities.TypeCorrective
	}
	if requestType == entities.TypePreventive && !payload.ScheduledDate.Valid {
		return nil, apperrors.NewValidationError("scheduled_date", "preventive requests require a scheduled date")
	}

	priority := payload.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}

	teamID := payload.MaintenanceTeamID
	if teamID == nil {
		teamID = equipment.MaintenanceTeamID
	} else {
		if _, err := s.teamRepo.FindTeam(ctx, *teamID); err != nil {
			return nil, err
		}
	}

	if payload.AssignedToID != nil {
		if _, err := s.userRepo.FindUser(ctx, *payload.AssignedToID); err != nil {
			return nil, err
		}
		if teamID != nil {
			member, err := s.teamRepo.IsMember(ctx, *teamID, *payload.AssignedToID)
			if err != nil {
				return nil, err
			}
			if !member {
				return nil, apperrors.NewValidationError("assigned_to_id", "assignee is not a member of the responsible team")
			}
		}
	}

	creatorID := actor.ID
	req := entities.MaintenanceRequest{
		Subject:           payload.Subject,
		Description:       payload.Description,
		EquipmentID:       payload.EquipmentID,
		MaintenanceTeamID: teamID,
		RequestType:       requestType,
		Status:            entities.StatusNew,
		Priority:          priority,
		AssignedToID:      payload.AssignedToID,
		CreatedByID:       &creatorID,
	}
	if payload.ScheduledDate.Valid {
		t := payload.ScheduledDate.Time
		req.ScheduledDate = &t
	}
	if payload.DueDate.Valid {
		t := payload.DueDate.Time
		req.DueDate = &t
	}

	newID, err := s.requestRepo.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = newID

	s.bus.Publish(ctx, events.RequestCreatedEvent{Request: req, ActorID: actor.ID})

	item, err := s.requestRepo.FindRequest(ctx, newID)
	if err != nil {
		return nil, err
	}
	result := requestToDTO(*item, time.Now())
	return &result, nil
}

func (s *MaintenanceRequestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canActorSee(actor, item) {
		return nil, apperrors.NewNotFoundError("maintenance request", id)
	}

	req := item.MaintenanceRequest
	if payload.Subject != nil {
		req.Subject = *payload.Subject
	}
	if payload.Description != nil {
		req.Description = *payload.Description
	}
	if payload.Priority != nil {
		req.Priority = *payload.Priority
	}
	if payload.MaintenanceTeamID != nil {
		if _, err := s.teamRepo.FindTeam(ctx, *payload.MaintenanceTeamID); err != nil {
			return nil, err
		}
		req.MaintenanceTeamID = payload.MaintenanceTeamID
	}
	if payload.AssignedToID != nil {
		if _, err := s.userRepo.FindUser(ctx, *payload.AssignedToID); err != nil {
			return nil, err
		}
		if req.MaintenanceTeamID != nil {
			member, err := s.teamRepo.IsMember(ctx, *req.MaintenanceTeamID, *payload.AssignedToID)
			if err != nil {
				return nil, err
			}
			if !member {
				return nil, apperrors.NewValidationError("assigned_to_id", "assignee is not a member of the responsible team")
			}
		}
		req.AssignedToID = payload.AssignedToID
	}
	if payload.ScheduledDate.Valid {
		t := payload.ScheduledDate.Time
		req.ScheduledDate = &t
	}
	if payload.DueDate.Valid {
		t := payload.DueDate.Time
		req.DueDate = &t
	}
	if payload.DurationHours != nil {
		centi, err := money.ParseFixed2(*payload.DurationHours)
		if err != nil {
			return nil, apperrors.NewValidationError("duration_hours", "%v", err)
		}
		req.DurationCentiHrs = &centi
	}
	if req.RequestType == entities.TypePreventive && req.ScheduledDate == nil {
		return nil, apperrors.NewValidationError("scheduled_date", "preventive requests require a scheduled date")
	}

	if err := s.requestRepo.UpdateRequest(ctx, id, req); err != nil {
		return nil, err
	}
	return s.FindRequest(ctx, id)
}

func (s *MaintenanceRequestService) DeleteRequest(ctx context.Context, id uint64) error {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return err
	}
	if !actor.IsManager {
		return apperrors.NewPermissionError("only managers may delete requests")
	}
	return s.requestRepo.DeleteRequest(ctx, id)
}

// TransitionStatus moves the request through the workflow. Reaching Repaired
// stamps completed_at exactly once; reaching Scrap additionally scraps the
// equipment in the same transaction, so the two writes are atomic.
func (s *MaintenanceRequestService) TransitionStatus(ctx context.Context, id uint64, newStatus string) (*dto.MaintenanceRequestDTO, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if !entities.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("status", "unknown status %q", newStatus)
	}

	item, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canActorSee(actor, item) {
		return nil, apperrors.NewNotFoundError("maintenance request", id)
	}
	if !canActorTransition(actor, item) {
		return nil, apperrors.NewPermissionError("only managers or members of the responsible team may change the status")
	}

	oldStatus := item.Status
	if !entities.CanTransition(oldStatus, newStatus) {
		return nil, apperrors.NewValidationError("status", "transition %q -> %q is not allowed", oldStatus, newStatus)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		stampCompleted := newStatus == entities.StatusRepaired
		if err := s.requestRepo.TransitionInTx(ctx, tx, id, newStatus, stampCompleted); err != nil {
			return err
		}
		if newStatus == entities.StatusScrap {
			return s.equipmentRepo.MarkScrappedInTx(ctx, tx, item.EquipmentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated := item.MaintenanceRequest
	updated.Status = newStatus
	s.bus.Publish(ctx, events.RequestStatusChangedEvent{
		Request:   updated,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ActorID:   actor.ID,
	})

	return s.FindRequest(ctx, id)
}

// AssignTechnician sets the assignee after checking team membership. A
// request with no responsible team only requires the technician to exist.
func (s *MaintenanceRequestService) AssignTechnician(ctx context.Context, id uint64, userID uint64) (*dto.MaintenanceRequestDTO, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canActorSee(actor, item) {
		return nil, apperrors.NewNotFoundError("maintenance request", id)
	}
	if !canActorTransition(actor, item) {
		return nil, apperrors.NewPermissionError("only managers or members of the responsible team may assign technicians")
	}

	if _, err := s.userRepo.FindUser(ctx, userID); err != nil {
		return nil, err
	}
	if item.MaintenanceTeamID != nil {
		member, err := s.teamRepo.IsMember(ctx, *item.MaintenanceTeamID, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperrors.NewValidationError("user_id", "technician is not a member of the responsible team")
		}
	}

	if err := s.requestRepo.UpdateAssignment(ctx, id, userID, nil); err != nil {
		return nil, err
	}
	return s.FindRequest(ctx, id)
}

// Kanban groups visible requests into columns. Every status column is always
// present, so an empty board still renders all five lanes.
func (s *MaintenanceRequestService) Kanban(ctx context.Context) (*dto.KanbanBoardDTO, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	filter := types.Filter{WithPagination: false}
	items, _, err := s.requestRepo.GetRequests(ctx, repositories.ScopeForActor(actor), filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	board := &dto.KanbanBoardDTO{
		Columns: make(map[string][]dto.MaintenanceRequestDTO, len(entities.Statuses)),
		Order:   entities.Statuses,
	}
	for _, status := range entities.Statuses {
		board.Columns[status] = []dto.MaintenanceRequestDTO{}
	}
	for _, item := range items {
		board.Columns[item.Status] = append(board.Columns[item.Status], requestToDTO(item, now))
	}
	return board, nil
}

// CalendarEvents renders scheduled requests as calendar entries with the
// stable color contract: red for overdue, green for repaired, yellow for
// in progress, teal otherwise.
func (s *MaintenanceRequestService) CalendarEvents(ctx context.Context, from, to time.Time) ([]dto.CalendarEventDTO, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.requestRepo.GetScheduledBetween(ctx, repositories.ScopeForActor(actor), from, to)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]dto.CalendarEventDTO, 0, len(items))
	for _, item := range items {
		event := dto.CalendarEventDTO{
			ID:    item.ID,
			Title: item.Subject,
			Start: item.ScheduledDate.Format(dateFormat),
			URL:   requestURL(item.ID),
			Color: item.StatusColor(now),
			ExtendedProps: dto.CalendarEventExtendedProps{
				Equipment:  item.EquipmentName,
				Team:       "Unassigned",
				AssignedTo: "Unassigned",
				Status:     item.Status,
				Overdue:    item.IsOverdue(now),
			},
		}
		if item.DueDate != nil {
			event.End = item.DueDate.Format(dateFormat)
		}
		if item.TeamName != nil {
			event.ExtendedProps.Team = *item.TeamName
		}
		if item.AssigneeName != nil {
			event.ExtendedProps.AssignedTo = *item.AssigneeName
		}
		out = append(out, event)
	}
	return out, nil
}

func requestURL(id uint64) string {
	return fmt.Sprintf("/api/maintenance-requests/%d", id)
}
