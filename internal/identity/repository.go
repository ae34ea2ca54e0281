package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	SuperAdminExists(ctx context.Context) (bool, error)
	UpdatePasswordHash(ctx context.Context, id string, hash []byte) error
	AssignRole(ctx context.Context, id, roleID string) error
	SetActive(ctx context.Context, id string, active bool) error
	UpdateName(ctx context.Context, id, name string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. A unique violation on email maps to
// ErrEmailTaken.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	var roleID *uuid.UUID
	if user.RoleID != "" {
		parsed, err := uuid.Parse(user.RoleID)
		if err != nil {
			return err
		}
		roleID = &parsed
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, email, name, password_hash, role_id, is_super_admin, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, strings.ToLower(user.Email), user.Name, user.PasswordHash, roleID,
		user.IsSuperAdmin, user.IsActive, user.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

const userColumns = `id, email, name, password_hash, role_id, is_super_admin, is_active, created_at`

// FindByEmail fetches a user by email, case-insensitively.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	return scanUser(row)
}

// FindByID fetches a user by id.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// SuperAdminExists reports whether any super-admin account exists.
func (r *PostgresRepository) SuperAdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE is_super_admin)`).Scan(&exists)
	return exists, err
}

// UpdatePasswordHash replaces the stored password hash.
func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id string, hash []byte) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
}

// AssignRole points the user at a role; an empty roleID clears it.
func (r *PostgresRepository) AssignRole(ctx context.Context, id, roleID string) error {
	var ref *uuid.UUID
	if roleID != "" {
		parsed, err := uuid.Parse(roleID)
		if err != nil {
			return err
		}
		ref = &parsed
	}
	return r.exec(ctx, `UPDATE users SET role_id = $1 WHERE id = $2`, ref, id)
}

// SetActive toggles the account's active flag.
func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.exec(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
}

// UpdateName changes the display name.
func (r *PostgresRepository) UpdateName(ctx context.Context, id, name string) error {
	return r.exec(ctx, `UPDATE users SET name = $1 WHERE id = $2`, name, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, value any, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, query, value, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		id        uuid.UUID
		roleID    *uuid.UUID
		createdAt time.Time
		user      User
	)
	if err := row.Scan(&id, &user.Email, &user.Name, &user.PasswordHash, &roleID,
		&user.IsSuperAdmin, &user.IsActive, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	if roleID != nil {
		user.RoleID = roleID.String()
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
