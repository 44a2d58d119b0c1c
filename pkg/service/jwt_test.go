package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)
	actor := types.Actor{ID: 7, FullName: "Tom Becker", IsManager: false, TeamIDs: []uint64{9, 12}}

	access, refresh, refreshJTI, err := svc.GenerateTokens(actor)
	require.NoError(t, err)
	require.NotEmpty(t, refreshJTI)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "Tom Becker", claims.FullName)
	assert.Equal(t, []uint64{9, 12}, claims.TeamIDs)
	assert.False(t, claims.IsRefreshToken)
	assert.Equal(t, actor, claims.Actor())

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
	assert.Equal(t, refreshJTI, refreshClaims.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, time.Hour)
	verifier := NewJWTService("secret-b", time.Hour, time.Hour)

	access, _, _, err := issuer.GenerateTokens(types.Actor{ID: 7})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute)

	access, _, _, err := svc.GenerateTokens(types.Actor{ID: 7})
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour)
	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
