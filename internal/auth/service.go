package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/orderly-app/orderly/internal/identity"
	"github.com/orderly-app/orderly/internal/notification"
	"github.com/orderly-app/orderly/internal/otp"
	"github.com/orderly-app/orderly/internal/password"
	"github.com/orderly-app/orderly/internal/token"
)

// Service implements the outward authentication operations: registration,
// login, and the OTP-based password recovery flow. It owns no storage of
// its own; everything is delegated to the injected collaborators.
type Service struct {
	identities *identity.Service
	users      identity.Repository
	tokens     *token.Service
	otps       *otp.Service
	policy     password.Policy
	notifier   notification.Notifier
	logger     *slog.Logger
}

// NewService wires the auth service.
func NewService(
	identities *identity.Service,
	users identity.Repository,
	tokens *token.Service,
	otps *otp.Service,
	policy password.Policy,
	notifier notification.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		identities: identities,
		users:      users,
		tokens:     tokens,
		otps:       otps,
		policy:     policy,
		notifier:   notifier,
		logger:     logger,
	}
}

// Register creates the super-admin account.
func (s *Service) Register(ctx context.Context, reg identity.Registration) (identity.User, error) {
	return s.identities.Register(ctx, reg)
}

// LoginResult is returned by Login.
type LoginResult struct {
	UserID string
	Token  string
}

// Login verifies credentials and issues a session credential.
func (s *Service) Login(ctx context.Context, email, pw string) (LoginResult, error) {
	user, err := s.identities.Authenticate(ctx, email, pw)
	if err != nil {
		return LoginResult{}, err
	}
	credential, err := s.tokens.Issue(user.ID)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{UserID: user.ID, Token: credential}, nil
}

// RequestPasswordReset creates a fresh reset challenge for a known account
// and hands the rendered code to the notifier. Unknown emails fail with
// identity.ErrNotFound. Previously issued challenges stay valid.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	challenge, err := s.otps.Request(ctx, user.Email)
	if err != nil {
		return err
	}

	body, err := notification.RenderPasswordResetOTP(user.Name, challenge.Code, s.otps.Window())
	if err != nil {
		return err
	}
	if err := s.notifier.Send(ctx, notification.Message{
		Kind:        notification.KindPasswordResetOTP,
		Destination: user.Email,
		Subject:     notification.ResetEmailSubject,
		Body:        body,
	}); err != nil {
		s.logger.Error("send reset notification", "email", user.Email, "error", err)
		return err
	}
	return nil
}

// VerifyOTP checks a reset code and marks its challenge verified.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	return s.otps.Verify(ctx, strings.ToLower(strings.TrimSpace(email)), code)
}

// ResetPassword spends a verified challenge and stores the new password.
// The policy check runs before the challenge is consumed so a weak password
// does not burn the code.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if violations := s.policy.Validate(newPassword); violations != nil {
		return &identity.ValidationError{Violations: violations}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.otps.Consume(ctx, user.Email, code); err != nil {
		return err
	}

	if err := s.identities.UpdatePassword(ctx, user.ID, newPassword); err != nil {
		// The challenge is already spent; per-request failures are
		// terminal with no rollback.
		s.logger.Error("store new password after reset", "user_id", user.ID, "error", err)
		return err
	}
	return nil
}

// IsNotFound reports whether err is a missing-account lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, identity.ErrNotFound)
}
