package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken is returned for tokens that are malformed, expired or
// signed with another key.
var ErrInvalidToken = errors.New("invalid session token")

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

// SessionTokens signs and verifies the bearer tokens that identify sessions.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionTokens creates SessionTokens signing with secret (HS256).
func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is the lifetime of issued tokens.
func (t *SessionTokens) TTL() time.Duration {
	return t.ttl
}

// Issue returns a signed token for the session.
func (t *SessionTokens) Issue(sessionID string) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
	})

	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// Parse validates tokenString and returns the session ID it carries.
func (t *SessionTokens) Parse(tokenString string) (string, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.SessionID, nil
}

// Renew returns a fresh token for the session once less than half of the
// lifetime of tokenString is left. It returns "" while the token is still fresh.
func (t *SessionTokens) Renew(tokenString string) (string, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return "", err
	}
	remaining := time.Unix(claims.ExpiresAt, 0).Sub(t.now())
	if remaining >= t.ttl/2 {
		return "", nil
	}
	return t.Issue(claims.SessionID)
}

func (t *SessionTokens) parse(tokenString string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
