package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) requireManager(ctx context.Context) error {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return err
	}
	if !actor.IsManager {
		return apperrors.NewPermissionError("only managers may manage users")
	}
	return nil
}

func (s *UserService) userToDTO(ctx context.Context, user entities.User, withTeams bool) (*dto.UserDTO, error) {
	out := &dto.UserDTO{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		IsManager: user.IsManager,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(dateTimeFormat),
	}
	if withTeams {
		teams, err := s.userRepo.GetTeamsForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		out.Teams = make([]dto.ShortTeamDTO, 0, len(teams))
		for _, t := range teams {
			out.Teams = append(out.Teams, dto.ShortTeamDTO{ID: t.ID, Name: t.Name})
		}
	}
	return out, nil
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UserDTO, 0, len(users))
	for _, user := range users {
		item, err := s.userToDTO(ctx, user, false)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *item)
	}
	return out, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.userToDTO(ctx, *user, true)
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	if err := s.requireManager(ctx); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindUserByEmail(ctx, payload.Email); err == nil && existing != nil {
		return nil, apperrors.NewValidationError("email", "email %q is already registered", payload.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newID, err := s.userRepo.CreateUser(ctx, entities.User{
		FullName:     payload.FullName,
		Email:        payload.Email,
		PasswordHash: string(hash),
		IsManager:    payload.IsManager,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}
	return s.FindUser(ctx, newID)
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	if err := s.requireManager(ctx); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.FullName != nil {
		user.FullName = *payload.FullName
	}
	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if payload.IsManager != nil {
		user.IsManager = *payload.IsManager
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.userRepo.UpdateUser(ctx, id, *user); err != nil {
		return nil, err
	}
	return s.FindUser(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.requireManager(ctx); err != nil {
		return err
	}
	return s.userRepo.DeleteUser(ctx, id)
}
