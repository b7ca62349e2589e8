package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

// ErrInvalidCredentials is returned for any username/password mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator verifies dashboard credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Admin, error)
}

// StaticAuthenticator accepts a single configured credential pair. The
// password is held only as a bcrypt hash.
type StaticAuthenticator struct {
	username     string
	passwordHash string
}

// NewStaticAuthenticator hashes password with the given bcrypt cost.
func NewStaticAuthenticator(username, password string, cost int) (*StaticAuthenticator, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password required")
	}
	hash, err := HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	return &StaticAuthenticator{username: username, passwordHash: hash}, nil
}

// Authenticate implements Authenticator.
func (a *StaticAuthenticator) Authenticate(_ context.Context, username, password string) (*domain.Admin, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passErr := ComparePassword(a.passwordHash, password)
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}
	return &domain.Admin{Username: a.username}, nil
}
