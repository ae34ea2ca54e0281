package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/orderly-app/orderly/internal/identity"
	"github.com/orderly-app/orderly/internal/logging"
	"github.com/orderly-app/orderly/internal/notification"
	"github.com/orderly-app/orderly/internal/otp"
	"github.com/orderly-app/orderly/internal/password"
	"github.com/orderly-app/orderly/internal/role"
	"github.com/orderly-app/orderly/internal/token"
)

const strongPassword = "Vz9!Km2#"

type recordingNotifier struct {
	messages []notification.Message
}

func (n *recordingNotifier) Send(_ context.Context, message notification.Message) error {
	n.messages = append(n.messages, message)
	return nil
}

// lastCode digs the reset code out of the rendered email body.
func (n *recordingNotifier) lastCode(t *testing.T) string {
	t.Helper()
	if len(n.messages) == 0 {
		t.Fatalf("no notification sent")
	}
	for _, line := range strings.Split(n.messages[len(n.messages)-1].Body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 6 && !strings.ContainsRune(line, ' ') {
			return line
		}
	}
	t.Fatalf("no code found in body %q", n.messages[len(n.messages)-1].Body)
	return ""
}

func newTestService(t *testing.T) (*Service, *recordingNotifier) {
	t.Helper()
	users := identity.NewMemoryRepository()
	roles := role.NewMemoryRepository()
	policy := password.DefaultPolicy()
	identities := identity.NewService(users, roles, policy)
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	otps := otp.NewService(otp.NewMemoryStore(), 6, 10*time.Minute)
	notifier := &recordingNotifier{}
	svc := NewService(identities, users, tokens, otps, policy, notifier, logging.Discard())
	return svc, notifier
}

func register(t *testing.T, svc *Service) identity.User {
	t.Helper()
	user, err := svc.Register(context.Background(), identity.Registration{
		Email:    "admin@example.com",
		Password: strongPassword,
		Name:     "Admin",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := register(t, svc)

	result, err := svc.Login(ctx, "admin@example.com", strongPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.UserID != user.ID || result.Token == "" {
		t.Fatalf("unexpected login result: %+v", result)
	}

	subject, err := svc.tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, subject)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)

	if _, err := svc.Login(context.Background(), "admin@example.com", "Wrong9!pw"); !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	svc, notifier := newTestService(t)

	err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("notifier must not fire for unknown emails")
	}
}

func TestRequestPasswordResetSendsExactlyOnce(t *testing.T) {
	svc, notifier := newTestService(t)
	register(t, svc)

	if err := svc.RequestPasswordReset(context.Background(), "admin@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifier.messages))
	}
	msg := notifier.messages[0]
	if msg.Kind != notification.KindPasswordResetOTP || msg.Destination != "admin@example.com" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if code := notifier.lastCode(t); len(code) != 6 {
		t.Fatalf("expected 6-character code in body, got %q", code)
	}
}

func TestPasswordRecoveryFlow(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()
	register(t, svc)

	if err := svc.RequestPasswordReset(ctx, "admin@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := notifier.lastCode(t)

	if err := svc.VerifyOTP(ctx, "Admin@Example.com", code); err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	const newPassword = "Xk7@Wq4$"
	if err := svc.ResetPassword(ctx, "admin@example.com", code, newPassword); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, err := svc.Login(ctx, "admin@example.com", strongPassword); !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
	if _, err := svc.Login(ctx, "admin@example.com", newPassword); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	// The challenge was consumed; it cannot reset the password again.
	if err := svc.ResetPassword(ctx, "admin@example.com", code, "Qp3&Zt8^"); !errors.Is(err, otp.ErrAlreadyUsed) {
		t.Fatalf("expected consumed challenge to be rejected, got %v", err)
	}
}

func TestResetPasswordRequiresVerification(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()
	register(t, svc)

	if err := svc.RequestPasswordReset(ctx, "admin@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := notifier.lastCode(t)

	if err := svc.ResetPassword(ctx, "admin@example.com", code, "Xk7@Wq4$"); !errors.Is(err, otp.ErrNotVerified) {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}
}

func TestResetPasswordWeakPasswordKeepsChallenge(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()
	register(t, svc)

	if err := svc.RequestPasswordReset(ctx, "admin@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := notifier.lastCode(t)
	if err := svc.VerifyOTP(ctx, "admin@example.com", code); err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	var verr *identity.ValidationError
	if err := svc.ResetPassword(ctx, "admin@example.com", code, "weak"); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// The policy failure must not burn the verified challenge.
	if err := svc.ResetPassword(ctx, "admin@example.com", code, "Xk7@Wq4$"); err != nil {
		t.Fatalf("reset after policy failure: %v", err)
	}
}

func TestVerifyOTPRepeatRejected(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()
	register(t, svc)

	if err := svc.RequestPasswordReset(ctx, "admin@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := notifier.lastCode(t)

	if err := svc.VerifyOTP(ctx, "admin@example.com", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if err := svc.VerifyOTP(ctx, "admin@example.com", code); !errors.Is(err, otp.ErrAlreadyUsed) {
		t.Fatalf("expected ErrAlreadyUsed, got %v", err)
	}
}
