package auth

import "crypto/subtle"

// Authenticator decides whether a caller-supplied secret grants admin access.
type Authenticator interface {
	Authenticate(secret string) bool
}

// SharedSecret accepts exactly one configured password.
type SharedSecret string

func (s SharedSecret) Authenticate(secret string) bool {
	if s == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s), []byte(secret)) == 1
}
