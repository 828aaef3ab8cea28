// Package auth provides stateless admin session management using JWT.
// No server-side session storage: the signed token carries the admin
// identity, so multiple instances can validate sessions independently.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/artpar/admingate/ports"
)

// ErrInvalidToken is returned for malformed, expired, or tampered
// session tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the JWT claims of one admin session.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// SessionService issues and validates admin session tokens.
// Thread-safe and suitable for concurrent use.
type SessionService struct {
	secret []byte
	issuer string
	clock  ports.Clock
}

// NewSessionService creates a session service. If secret is empty, a
// random 32-byte secret is generated (sessions then do not survive a
// restart). A nil clock uses real time.
func NewSessionService(secret string, clock ports.Clock) *SessionService {
	var secretBytes []byte
	if secret == "" {
		secretBytes = make([]byte, 32)
		rand.Read(secretBytes)
	} else {
		secretBytes = []byte(secret)
	}

	return &SessionService{
		secret: secretBytes,
		issuer: "admingate",
		clock:  clock,
	}
}

// Issue creates a session token for an authenticated admin.
func (s *SessionService) Issue(admin ports.CurrentAdmin, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	now := s.now()

	claims := Claims{
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   admin.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Resolve validates a token and returns the admin it was issued for.
func (s *SessionService) Resolve(tokenString string) (ports.CurrentAdmin, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return ports.CurrentAdmin{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return ports.CurrentAdmin{}, ErrInvalidToken
	}

	return ports.CurrentAdmin{Email: claims.Email, Role: claims.Role}, nil
}

func (s *SessionService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now().UTC()
}

// Ensure interface compliance.
var _ ports.SessionStore = (*SessionService)(nil)

// GenerateSecret generates a random secret suitable for session signing.
func GenerateSecret() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
