package service

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

// JwtCustomClaim carries the actor identity the rest of the application
// consumes: user id, the manager flag and team memberships.
type JwtCustomClaim struct {
	UserID         uint64   `json:"user_id"`
	FullName       string   `json:"full_name"`
	IsManager      bool     `json:"is_manager"`
	TeamIDs        []uint64 `json:"team_ids,omitempty"`
	IsRefreshToken bool     `json:"is_refresh,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts claims into the explicit actor value passed to services.
func (c *JwtCustomClaim) Actor() types.Actor {
	return types.Actor{
		ID:        c.UserID,
		FullName:  c.FullName,
		IsManager: c.IsManager,
		TeamIDs:   c.TeamIDs,
	}
}

type JWTService interface {
	GenerateTokens(actor types.Actor) (access string, refresh string, refreshJTI string, err error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	secretKey       string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration) JWTService {
	return &jwtService{
		secretKey:       secretKey,
		accessTokenExp:  accessTokenExp,
		refreshTokenExp: refreshTokenExp,
	}
}

func (s *jwtService) GenerateTokens(actor types.Actor) (string, string, string, error) {
	now := time.Now()
	refreshJTI := uuid.NewString()

	accessClaims := &JwtCustomClaim{
		UserID:    actor.ID,
		FullName:  actor.FullName,
		IsManager: actor.IsManager,
		TeamIDs:   actor.TeamIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExp)),
		},
	}

	refreshClaims := &JwtCustomClaim{
		UserID:         actor.ID,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        refreshJTI,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTokenExp)),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS512, accessClaims).SignedString([]byte(s.secretKey))
	if err != nil {
		return "", "", "", err
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshClaims).SignedString([]byte(s.secretKey))
	if err != nil {
		return "", "", "", err
	}

	return access, refresh, refreshJTI, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.secretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration  { return s.accessTokenExp }
func (s *jwtService) GetRefreshTokenTTL() time.Duration { return s.refreshTokenExp }
