package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, payload dto.RefreshDTO) error
	Profile(ctx context.Context) (*dto.ProfileDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cache      repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cache:      cache,
		jwtService: jwtService,
		logger:     logger,
	}
}

func refreshKey(userID uint64) string {
	return fmt.Sprintf("auth:refresh:%d", userID)
}

func (s *AuthService) actorFor(ctx context.Context, userID uint64) (types.Actor, error) {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return types.Actor{}, err
	}
	if !user.IsActive {
		return types.Actor{}, apperrors.ErrInvalidCredentials
	}
	teamIDs, err := s.userRepo.GetTeamIDsForUser(ctx, userID)
	if err != nil {
		return types.Actor{}, err
	}
	return types.Actor{
		ID:        user.ID,
		FullName:  user.FullName,
		IsManager: user.IsManager,
		TeamIDs:   teamIDs,
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, actor types.Actor) (*dto.TokenPairDTO, error) {
	access, refresh, refreshJTI, err := s.jwtService.GenerateTokens(actor)
	if err != nil {
		return nil, err
	}

	// Only the latest refresh JTI per user is honored; issuing a new pair
	// revokes the previous refresh token.
	if err := s.cache.Set(ctx, refreshKey(actor.ID), refreshJTI, s.jwtService.GetRefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		var notFound *apperrors.NotFoundError
		if errors.As(err, &notFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	actor, err := s.actorFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, actor)
}

// Refresh rotates the token pair: the presented refresh token must carry the
// JTI currently stored for the user, and a successful refresh replaces it.
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	storedJTI, err := s.cache.Get(ctx, refreshKey(claims.UserID))
	if err != nil {
		if errors.Is(err, repositories.ErrCacheMiss) {
			return nil, apperrors.ErrTokenRevoked
		}
		return nil, err
	}
	if storedJTI != claims.ID {
		return nil, apperrors.ErrTokenRevoked
	}

	actor, err := s.actorFor(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, actor)
}

func (s *AuthService) Logout(ctx context.Context, payload dto.RefreshDTO) error {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return err
	}
	if !claims.IsRefreshToken {
		return apperrors.ErrTokenIsNotRefresh
	}
	return s.cache.Del(ctx, refreshKey(claims.UserID))
}

func (s *AuthService) Profile(ctx context.Context) (*dto.ProfileDTO, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	teams, err := s.userRepo.GetTeamsForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileDTO{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		IsManager: user.IsManager,
		Teams:     make([]dto.ShortTeamDTO, 0, len(teams)),
	}
	for _, t := range teams {
		profile.Teams = append(profile.Teams, dto.ShortTeamDTO{ID: t.ID, Name: t.Name})
	}
	return profile, nil
}
