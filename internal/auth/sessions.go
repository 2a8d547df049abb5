package auth

import (
	"errors"
	"net/http"
	"time"

	go_jwt "github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookie = "gallery_admin"
	sessionTTL    = 12 * time.Hour
	sessionType   = "admin"
)

var ErrInvalidSession = errors.New("invalid session")

// Sessions issues and checks the signed tokens kept in the admin UI cookie.
type Sessions struct {
	secretKey []byte
	now       func() time.Time
}

func NewSessions(secretKey []byte) *Sessions {
	return &Sessions{secretKey: secretKey, now: time.Now}
}

func (s *Sessions) Issue() (string, error) {
	now := s.now()
	claims := go_jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
		"typ": sessionType,
	}
	token := go_jwt.NewWithClaims(go_jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Sessions) Verify(tokenStr string) error {
	if tokenStr == "" {
		return ErrInvalidSession
	}

	token, err := go_jwt.Parse(tokenStr, func(t *go_jwt.Token) (interface{}, error) {
		if t.Method != go_jwt.SigningMethodHS256 {
			return nil, go_jwt.ErrSignatureInvalid
		}
		return s.secretKey, nil
	}, go_jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return ErrInvalidSession
	}

	claims, ok := token.Claims.(go_jwt.MapClaims)
	if !ok || claims["typ"] != sessionType {
		return ErrInvalidSession
	}
	return nil
}

// Cookie wraps a session token in a browser-session cookie.
func (s *Sessions) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Authenticated reports whether the request carries a valid session cookie.
func (s *Sessions) Authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return false
	}
	return s.Verify(cookie.Value) == nil
}
