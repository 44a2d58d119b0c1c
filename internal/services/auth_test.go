package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
)

func authFixture(t *testing.T) (*fakeUserRepo, *fakeCache, AuthServiceInterface) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entities.User{
		ID:           7,
		FullName:     "Tom Becker",
		Email:        "tom@gearguard.local",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	userRepo := &fakeUserRepo{
		findUser: func(ctx context.Context, id uint64) (*entities.User, error) {
			if id != user.ID {
				return nil, apperrors.NewNotFoundError("user", id)
			}
			return user, nil
		},
		findUserByEmail: func(ctx context.Context, email string) (*entities.User, error) {
			if email != user.Email {
				return nil, apperrors.NewNotFoundError("user", 0)
			}
			return user, nil
		},
		getTeamIDsForUser: func(ctx context.Context, userID uint64) ([]uint64, error) {
			return []uint64{9}, nil
		},
	}

	cache := newFakeCache()
	jwtSvc := service.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	return userRepo, cache, NewAuthService(userRepo, cache, jwtSvc, zap.NewNop())
}

func TestLogin(t *testing.T) {
	_, cache, svc := authFixture(t)

	pair, err := svc.Login(context.Background(), dto.LoginDTO{Email: "tom@gearguard.local", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
	assert.Contains(t, cache.entries, "auth:refresh:7", "refresh JTI stored")
}

func TestLoginWrongPassword(t *testing.T) {
	_, _, svc := authFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "tom@gearguard.local", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailMasksNotFound(t *testing.T) {
	_, _, svc := authFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "nobody@gearguard.local", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "existence of accounts is not disclosed")
}

func TestRefreshRotatesToken(t *testing.T) {
	_, cache, svc := authFixture(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "tom@gearguard.local", Password: "secret123"})
	require.NoError(t, err)
	firstJTI := cache.entries["auth:refresh:7"]

	rotated, err := svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, firstJTI, cache.entries["auth:refresh:7"], "stored JTI replaced on rotation")

	// The old refresh token no longer matches the stored JTI.
	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	_, _, svc := authFixture(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "tom@gearguard.local", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: pair.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestLogoutRevokesRefresh(t *testing.T) {
	_, cache, svc := authFixture(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "tom@gearguard.local", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, dto.RefreshDTO{RefreshToken: pair.RefreshToken}))
	assert.NotContains(t, cache.entries, "auth:refresh:7")

	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
