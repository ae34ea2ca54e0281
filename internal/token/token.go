package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the signature checked out but the token is past
	// its expiry.
	ErrExpired = errors.New("token expired")

	// ErrInvalid covers malformed tokens, bad signatures, and empty input.
	ErrInvalid = errors.New("token invalid")
)

// Service issues and verifies stateless HS256 session credentials. There is
// no server-side session table; a credential is valid as long as its
// signature verifies and its expiry has not passed.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a token service signing with secret; issued credentials
// live for ttl.
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue signs a credential for the subject with iat/exp claims.
func (s *Service) Issue(subjectID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the credential and returns the subject id. Expired and
// otherwise-invalid tokens fail with distinguishable errors so callers can
// produce different user-facing messages.
func (s *Service) Verify(credential string) (string, error) {
	if credential == "" {
		return "", ErrInvalid
	}

	parsed, err := jwt.ParseWithClaims(credential, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
