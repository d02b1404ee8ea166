package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenService signs HS256 access tokens for operators and upstream services.
type tokenService struct {
	BaseService
	secret string
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(secret, issuer string, ttl time.Duration, opts ...Option) portssvc.TokenSvc {
	return &tokenService{
		BaseService: newBaseService(nil, opts...),
		secret:      secret,
		issuer:      issuer,
		ttl:         ttl,
	}
}

var _ portssvc.TokenSvc = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token whose subject is userID.
func (s *tokenService) GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}
	if s.secret == "" {
		return "", time.Time{}, fmt.Errorf("%w: JWT secret is not configured", apperrors.ErrValidation)
	}

	now := s.now()
	expiry := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", userID))
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}
