package identity

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/orderly-app/orderly/internal/password"
	"github.com/orderly-app/orderly/internal/role"
)

var (
	// ErrInvalidCredentials is returned for any login failure; it does not
	// distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSuperAdminExists is returned when a second super-admin
	// registration is attempted.
	ErrSuperAdminExists = errors.New("super admin already exists")

	// ErrMissingFields is returned when a required registration field is
	// empty.
	ErrMissingFields = errors.New("email, password, and name are required")

	// ErrInvalidEmail is returned for malformed email addresses.
	ErrInvalidEmail = errors.New("invalid email address")
)

// ValidationError carries the full list of password policy violations.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "password is not strong enough: " + strings.Join(e.Violations, "; ")
}

// Service manages account lifecycle.
type Service struct {
	repo   Repository
	roles  role.Repository
	policy password.Policy
}

// NewService creates a new identity service.
func NewService(repo Repository, roles role.Repository, policy password.Policy) *Service {
	return &Service{repo: repo, roles: roles, policy: policy}
}

// Register creates the super-admin account. At most one may exist; the
// existence check runs before the insert, so concurrent registrations can
// race. The surrounding deployment registers exactly once.
func (s *Service) Register(ctx context.Context, reg Registration) (User, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	name := strings.TrimSpace(reg.Name)
	if email == "" || reg.Password == "" || name == "" {
		return User{}, ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidEmail
	}
	if violations := s.policy.Validate(reg.Password); violations != nil {
		return User{}, &ValidationError{Violations: violations}
	}

	exists, err := s.repo.SuperAdminExists(ctx)
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrSuperAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsSuperAdmin: true,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies an email/password pair.
func (s *Service) Authenticate(ctx context.Context, email, pw string) (User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(pw)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// AssignRole points the user at an existing role. The write is a plain
// read-modify-write; a concurrent role deletion leaves a dangling reference
// that lookups treat as no role.
func (s *Service) AssignRole(ctx context.Context, userID, roleID string) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	if roleID != "" {
		if _, err := s.roles.FindByID(ctx, roleID); err != nil {
			return err
		}
	}
	return s.repo.AssignRole(ctx, userID, roleID)
}

// UpdatePassword validates the new password against the policy and stores
// its hash.
func (s *Service) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if violations := s.policy.Validate(newPassword); violations != nil {
		return &ValidationError{Violations: violations}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, userID, hash)
}

// SetActive toggles the account flag checked by the authorization gate.
func (s *Service) SetActive(ctx context.Context, userID string, active bool) error {
	return s.repo.SetActive(ctx, userID, active)
}

// UpdateProfile changes the user's display name.
func (s *Service) UpdateProfile(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrMissingFields
	}
	return s.repo.UpdateName(ctx, userID, name)
}
