package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/travel-support-desk/internal/auth"
	"github.com/spec-kit/travel-support-desk/internal/domain"
	apperrors "github.com/spec-kit/travel-support-desk/pkg/util/errorutil"
)

// AuthService coordinates the dashboard login flow.
type AuthService struct {
	authenticator auth.Authenticator
	tokenMgr      *auth.TokenManager
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Authenticator auth.Authenticator
	TokenManager  *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		authenticator: deps.Authenticator,
		tokenMgr:      deps.TokenManager,
	}
}

// Login verifies the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	token, exp, err := s.tokenMgr.GenerateToken(admin)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return admin, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
