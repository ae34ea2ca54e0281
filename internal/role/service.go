package role

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidName is returned for empty role names.
var ErrInvalidName = errors.New("role name is required")

// Service manages the role catalogue.
type Service struct {
	repo Repository
}

// NewService creates a new role service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the permission set against the closed enumeration and
// inserts a new role with a unique name.
func (s *Service) Create(ctx context.Context, name string, permissions []Permission) (Role, error) {
	if name == "" {
		return Role{}, ErrInvalidName
	}
	if err := ValidatePermissions(permissions); err != nil {
		return Role{}, err
	}
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return Role{}, ErrNameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Role{}, err
	}

	role := NewRole(name, permissions)
	if err := s.repo.Create(ctx, role); err != nil {
		return Role{}, err
	}
	return role, nil
}

// Get fetches a role by id.
func (s *Service) Get(ctx context.Context, id string) (Role, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.repo.List(ctx)
}

// Update replaces the role's name and permission set.
func (s *Service) Update(ctx context.Context, id, name string, permissions []Permission) (Role, error) {
	if name == "" {
		return Role{}, ErrInvalidName
	}
	if err := ValidatePermissions(permissions); err != nil {
		return Role{}, err
	}

	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Role{}, err
	}
	role.Name = name
	role.Permissions = permissions
	role.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, role); err != nil {
		return Role{}, err
	}
	return role, nil
}

// Delete removes the role. Identities still referencing it are left alone;
// the dangling reference reads as no role.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
