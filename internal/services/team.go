package services

import (
	"context"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type TeamServiceInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, uint64, error)
	FindTeam(ctx context.Context, id uint64) (*dto.TeamDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error)
	DeleteTeam(ctx context.Context, id uint64) error
	AddMember(ctx context.Context, teamID uint64, payload dto.TeamMemberDTO) error
	RemoveMember(ctx context.Context, teamID, userID uint64) error
}

type TeamService struct {
	teamRepo repositories.TeamRepositoryInterface
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) TeamServiceInterface {
	return &TeamService{teamRepo: teamRepo, userRepo: userRepo, logger: logger}
}

func membersToDTO(members []entities.User) []dto.ShortUserDTO {
	out := make([]dto.ShortUserDTO, 0, len(members))
	for _, m := range members {
		out = append(out, dto.ShortUserDTO{ID: m.ID, FullName: m.FullName})
	}
	return out
}

func (s *TeamService) GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, uint64, error) {
	items, total, err := s.teamRepo.GetTeams(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.TeamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.TeamDTO{
			ID:                 item.ID,
			Name:               item.Name,
			Company:            item.Company,
			MemberCount:        item.MemberCount,
			ActiveRequestCount: item.ActiveRequestCount,
			CreatedAt:          item.CreatedAt.Format(dateTimeFormat),
		})
	}
	return out, total, nil
}

func (s *TeamService) FindTeam(ctx context.Context, id uint64) (*dto.TeamDTO, error) {
	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.teamRepo.GetMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Company:     team.Company,
		Members:     membersToDTO(members),
		MemberCount: int64(len(members)),
		CreatedAt:   team.CreatedAt.Format(dateTimeFormat),
	}, nil
}

func (s *TeamService) requireManager(ctx context.Context) error {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return err
	}
	if !actor.IsManager {
		return apperrors.NewPermissionError("only managers may manage teams")
	}
	return nil
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error) {
	if err := s.requireManager(ctx); err != nil {
		return nil, err
	}

	newID, err := s.teamRepo.CreateTeam(ctx, entities.MaintenanceTeam{
		Name:    payload.Name,
		Company: payload.Company,
	})
	if err != nil {
		return nil, err
	}
	return s.FindTeam(ctx, newID)
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error) {
	if err := s.requireManager(ctx); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Name != nil {
		team.Name = *payload.Name
	}
	if payload.Company != nil {
		team.Company = *payload.Company
	}

	if err := s.teamRepo.UpdateTeam(ctx, id, *team); err != nil {
		return nil, err
	}
	return s.FindTeam(ctx, id)
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	if err := s.requireManager(ctx); err != nil {
		return err
	}
	return s.teamRepo.DeleteTeam(ctx, id)
}

func (s *TeamService) AddMember(ctx context.Context, teamID uint64, payload dto.TeamMemberDTO) error {
	if err := s.requireManager(ctx); err != nil {
		return err
	}
	if _, err := s.teamRepo.FindTeam(ctx, teamID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindUser(ctx, payload.UserID); err != nil {
		return err
	}
	return s.teamRepo.AddMember(ctx, teamID, payload.UserID)
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uint64) error {
	if err := s.requireManager(ctx); err != nil {
		return err
	}
	return s.teamRepo.RemoveMember(ctx, teamID, userID)
}
