package otp

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrExpired is returned when the challenge's window has elapsed even
	// though the code itself matched.
	ErrExpired = errors.New("challenge expired")

	// ErrAlreadyUsed is returned when a verified or consumed challenge is
	// presented for verification again.
	ErrAlreadyUsed = errors.New("challenge already used")

	// ErrNotVerified is returned when a reset tries to spend a challenge
	// that was never verified.
	ErrNotVerified = errors.New("challenge not verified")
)

// Service issues and checks single-use reset challenges.
type Service struct {
	store      Store
	codeLength int
	window     time.Duration
	now        func() time.Time
}

// NewService builds the OTP service. window bounds both the
// pending-to-verified and verified-to-consumed steps.
func NewService(store Store, codeLength int, window time.Duration) *Service {
	return &Service{
		store:      store,
		codeLength: codeLength,
		window:     window,
		now:        time.Now,
	}
}

// Window returns the configured challenge validity period.
func (s *Service) Window() time.Duration {
	return s.window
}

// Request creates and persists a fresh pending challenge for the email.
// Earlier challenges for the same email are left untouched; any still-valid
// code remains usable.
func (s *Service) Request(ctx context.Context, email string) (Challenge, error) {
	code, err := Generate(s.codeLength)
	if err != nil {
		return Challenge{}, err
	}

	challenge := Challenge{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Code:      code,
		State:     StatePending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, challenge); err != nil {
		return Challenge{}, err
	}
	return challenge, nil
}

// Verify transitions a pending challenge to verified. It fails with
// ErrNotFound when no challenge matches, ErrAlreadyUsed when the challenge
// left the pending state, and ErrExpired when the window has elapsed.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	challenge, err := s.store.Find(ctx, email, code)
	if err != nil {
		return err
	}
	if challenge.State != StatePending {
		return ErrAlreadyUsed
	}
	if s.now().Sub(challenge.CreatedAt) > s.window {
		return ErrExpired
	}

	challenge.State = StateVerified
	challenge.VerifiedAt = s.now().UTC()
	return s.store.Update(ctx, challenge)
}

// Consume spends a verified challenge, invalidating it for any further
// reset. The verified state carries its own window, counted from the
// moment of verification.
func (s *Service) Consume(ctx context.Context, email, code string) error {
	challenge, err := s.store.Find(ctx, email, code)
	if err != nil {
		return err
	}
	switch challenge.State {
	case StatePending:
		return ErrNotVerified
	case StateConsumed:
		return ErrAlreadyUsed
	}
	if s.now().Sub(challenge.VerifiedAt) > s.window {
		return ErrExpired
	}

	challenge.State = StateConsumed
	return s.store.Update(ctx, challenge)
}
