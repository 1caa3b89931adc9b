package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrAuthRequired marks operations that need a logged-in viewer. It is
	// a distinct condition, not a fetch failure: callers drive a login
	// prompt off it rather than an error banner.
	ErrAuthRequired = errors.New("authentication required")

	ErrInvalidToken = errors.New("invalid token")
)

// Claims mirrors the access token payload issued by the backend.
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	StoreID string `json:"store_id"`
	jwt.RegisteredClaims
}

// Session is the viewer's identity for one browsing session. The zero
// value is an anonymous session.
type Session struct {
	token  string
	claims Claims
}

// Anonymous returns a logged-out session.
func Anonymous() *Session {
	return &Session{}
}

// FromToken builds a session from a backend-issued access token. The
// client does not hold the signing secret, so claims are read without
// signature verification; the backend re-verifies on every call.
func FromToken(token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	return &Session{token: token, claims: claims}, nil
}

// IsAuthenticated reports whether the session carries an unexpired token.
func (s *Session) IsAuthenticated() bool {
	if s == nil || s.token == "" {
		return false
	}
	if s.claims.ExpiresAt != nil && s.claims.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}

// Token returns the raw bearer token, empty for anonymous sessions.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.claims.UserID
}

// StoreID is the viewer's own storefront id, empty for plain buyers. It
// feeds the catalog self-exclusion rule.
func (s *Session) StoreID() string {
	if s == nil {
		return ""
	}
	return s.claims.StoreID
}
