package role

import (
	"context"
	"errors"
	"testing"
)

func TestCreateAndGetRole(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, "waiter", []Permission{PermRead, PermOrder})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Name != "waiter" || len(fetched.Permissions) != 2 {
		t.Fatalf("unexpected role: %+v", fetched)
	}
}

func TestCreateRejectsUnknownPermission(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	if _, err := svc.Create(context.Background(), "waiter", []Permission{"fly"}); err == nil {
		t.Fatalf("expected unknown permission to be rejected")
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "waiter", []Permission{PermRead}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "waiter", []Permission{PermRead}); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestUpdateAndDeleteRole(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, "waiter", []Permission{PermRead})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, "head-waiter", []Permission{PermRead, PermManageOrders})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "head-waiter" || len(updated.Permissions) != 2 {
		t.Fatalf("unexpected role after update: %+v", updated)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestHasAllRequiresEveryPermission(t *testing.T) {
	role := Role{Permissions: []Permission{PermRead, PermUpdate, PermDelete}}

	if !role.HasAll([]Permission{PermRead, PermUpdate}) {
		t.Fatalf("expected superset role to satisfy requirement")
	}

	partial := Role{Permissions: []Permission{PermRead}}
	if partial.HasAll([]Permission{PermRead, PermUpdate}) {
		t.Fatalf("expected partial grant to fail AND check")
	}

	if !role.HasAll(nil) {
		t.Fatalf("empty requirement must always pass")
	}
}

func TestPermissionValidation(t *testing.T) {
	if !PermManageStaff.Valid() {
		t.Fatalf("expected manage_staff to be a known permission")
	}
	if Permission("fly").Valid() {
		t.Fatalf("expected unknown token to be invalid")
	}
	if err := ValidatePermissions([]Permission{PermRead, "fly"}); err == nil {
		t.Fatalf("expected validation error for unknown token")
	}
}
