package client

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer token for API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken serves one fixed token. When the token is a JWT its exp claim
// is checked before each use so an expired token fails fast with
// ErrTokenExpired instead of a round trip. Opaque tokens are passed through.
type StaticToken struct {
	token string
	now   func() time.Time
}

func NewStaticToken(token string) *StaticToken {
	return &StaticToken{token: token, now: time.Now}
}

func (s *StaticToken) Token(context.Context) (string, error) {
	if s.token == "" {
		return "", nil
	}

	exp, err := tokenExpiry(s.token)
	if err != nil {
		return s.token, nil
	}
	if !exp.IsZero() && !s.now().Before(exp) {
		return "", fmt.Errorf("%w at %s", ErrTokenExpired, exp.Format(time.RFC3339))
	}
	return s.token, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the server
// does the verification.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
