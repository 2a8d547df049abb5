package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrascripts/gallery/internal/auth"
)

func TestLogin(t *testing.T) {
	sessions := auth.NewSessions([]byte("hunter2"))
	svc := NewAuthService(auth.SharedSecret("hunter2"), sessions)

	_, err := svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.Login("hunter2")
	require.NoError(t, err)
	assert.NoError(t, sessions.Verify(token))
}
