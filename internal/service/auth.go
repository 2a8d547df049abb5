package service

import (
	"errors"

	"github.com/veyrascripts/gallery/internal/auth"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	authenticator auth.Authenticator
	sessions      *auth.Sessions
}

func NewAuthService(authenticator auth.Authenticator, sessions *auth.Sessions) *AuthService {
	return &AuthService{authenticator: authenticator, sessions: sessions}
}

// Login exchanges the admin password for a session token.
func (s *AuthService) Login(password string) (string, error) {
	if !s.authenticator.Authenticate(password) {
		return "", ErrInvalidCredentials
	}
	return s.sessions.Issue()
}

func (s *AuthService) Sessions() *auth.Sessions {
	return s.sessions
}
