package otp

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	svc := NewService(NewMemoryStore(), 6, 10*time.Minute)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := &current
	svc.now = func() time.Time { return *now }
	return svc, now
}

func TestRequestAndVerify(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Request(ctx, "Staff@Example.com")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if challenge.State != StatePending {
		t.Fatalf("expected pending challenge, got %s", challenge.State)
	}
	if len(challenge.Code) != 6 {
		t.Fatalf("expected 6-character code, got %q", challenge.Code)
	}

	*now = now.Add(9 * time.Minute)
	if err := svc.Verify(ctx, "staff@example.com", challenge.Code); err != nil {
		t.Fatalf("verify within window: %v", err)
	}

	// A second verification of the same code must be rejected.
	if err := svc.Verify(ctx, "staff@example.com", challenge.Code); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("expected ErrAlreadyUsed, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Request(ctx, "staff@example.com")
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	*now = now.Add(11 * time.Minute)
	if err := svc.Verify(ctx, "staff@example.com", challenge.Code); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyUnknownCode(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Verify(context.Background(), "staff@example.com", "AAAAAA"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMultiplePendingChallengesCoexist(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Request(ctx, "staff@example.com")
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	second, err := svc.Request(ctx, "staff@example.com")
	if err != nil {
		t.Fatalf("second request: %v", err)
	}

	if err := svc.Verify(ctx, "staff@example.com", first.Code); err != nil {
		t.Fatalf("verify first: %v", err)
	}
	if err := svc.Verify(ctx, "staff@example.com", second.Code); err != nil {
		t.Fatalf("verify second: %v", err)
	}
}

func TestConsumeLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Request(ctx, "staff@example.com")
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	// Pending challenges cannot be consumed.
	if err := svc.Consume(ctx, "staff@example.com", challenge.Code); !errors.Is(err, ErrNotVerified) {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}

	if err := svc.Verify(ctx, "staff@example.com", challenge.Code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := svc.Consume(ctx, "staff@example.com", challenge.Code); err != nil {
		t.Fatalf("consume: %v", err)
	}

	// Consumed challenges cannot be spent twice.
	if err := svc.Consume(ctx, "staff@example.com", challenge.Code); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("expected ErrAlreadyUsed, got %v", err)
	}
}

func TestConsumeVerifiedWindowElapsed(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Request(ctx, "staff@example.com")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := svc.Verify(ctx, "staff@example.com", challenge.Code); err != nil {
		t.Fatalf("verify: %v", err)
	}

	*now = now.Add(11 * time.Minute)
	if err := svc.Consume(ctx, "staff@example.com", challenge.Code); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}
