package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/orderly-app/orderly/internal/password"
	"github.com/orderly-app/orderly/internal/role"
)

const strongPassword = "Vz9!Km2#"

func newTestService() (*Service, Repository, role.Repository) {
	repo := NewMemoryRepository()
	roles := role.NewMemoryRepository()
	return NewService(repo, roles, password.DefaultPolicy()), repo, roles
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, Registration{Email: "Admin@Example.com", Password: strongPassword, Name: "Admin"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !user.IsSuperAdmin || !user.IsActive {
		t.Fatalf("expected active super admin, got %+v", user)
	}
	if user.Email != "admin@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}

	authed, err := svc.Authenticate(ctx, "ADMIN@example.com", strongPassword)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}
}

func TestRegisterSecondSuperAdminRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, Registration{Email: "admin@example.com", Password: strongPassword, Name: "Admin"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, Registration{Email: "other@example.com", Password: strongPassword, Name: "Other"})
	if !errors.Is(err, ErrSuperAdminExists) {
		t.Fatalf("expected ErrSuperAdminExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, Registration{Email: "", Password: strongPassword, Name: "X"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Register(ctx, Registration{Email: "not-an-email", Password: strongPassword, Name: "X"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	_, err := svc.Register(ctx, Registration{Email: "admin@example.com", Password: "weak", Name: "X"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations) == 0 {
		t.Fatalf("expected violations to be reported")
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, "ghost@example.com", strongPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if _, err := svc.Register(ctx, Registration{Email: "admin@example.com", Password: strongPassword, Name: "Admin"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "admin@example.com", "Wrong9!pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestAssignRole(t *testing.T) {
	svc, repo, roles := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, Registration{Email: "admin@example.com", Password: strongPassword, Name: "Admin"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	waiter := role.NewRole("waiter", []role.Permission{role.PermRead})
	if err := roles.Create(ctx, waiter); err != nil {
		t.Fatalf("create role: %v", err)
	}

	if err := svc.AssignRole(ctx, user.ID, waiter.ID); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	stored, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.RoleID != waiter.ID {
		t.Fatalf("expected role %s, got %s", waiter.ID, stored.RoleID)
	}

	if err := svc.AssignRole(ctx, user.ID, "missing-role"); err == nil {
		t.Fatalf("expected unknown role to be rejected")
	}
}

func TestUpdatePasswordEnforcesPolicy(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, Registration{Email: "admin@example.com", Password: strongPassword, Name: "Admin"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var verr *ValidationError
	if err := svc.UpdatePassword(ctx, user.ID, "weak"); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if err := svc.UpdatePassword(ctx, user.ID, "Xk7@Wq4$"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "admin@example.com", "Xk7@Wq4$"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
}
