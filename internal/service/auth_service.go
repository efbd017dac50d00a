package service

import (
	"context"
	"time"

	"github.com/czegarraro/backend/internal/auth"
	"github.com/czegarraro/backend/internal/domain"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

// AuthService coordinates the login flow for the single demo account.
type AuthService struct {
	verifier auth.CredentialVerifier
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(verifier auth.CredentialVerifier, tokenMgr *auth.TokenManager) *AuthService {
	return &AuthService{verifier: verifier, tokenMgr: tokenMgr}
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(_ context.Context, username, password string) (*domain.AuthUser, string, time.Time, error) {
	if !s.verifier.Verify(username, password) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	token, expiresAt, err := s.tokenMgr.GenerateToken(username)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return &domain.AuthUser{Username: username}, token, expiresAt, nil
}

// Logout is a no-op for stateless JWT sessions; the transport clears the cookie.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}
