package role

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when no role matches the lookup.
	ErrNotFound = errors.New("role not found")

	// ErrNameTaken is returned when a role with the same name exists.
	ErrNameTaken = errors.New("role name already taken")
)

// Repository persists roles.
type Repository interface {
	Create(ctx context.Context, role Role) error
	FindByID(ctx context.Context, id string) (Role, error)
	FindByName(ctx context.Context, name string) (Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, role Role) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL. Permissions are
// stored as a text array.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed role repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new role. A unique violation on name maps to
// ErrNameTaken, closing the check-then-insert race in the service.
func (r *PostgresRepository) Create(ctx context.Context, role Role) error {
	roleID, err := uuid.Parse(role.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO roles (id, name, permissions, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)`,
		roleID, role.Name, PermissionStrings(role.Permissions), role.CreatedAt.UTC(), role.UpdatedAt.UTC())
	return mapNameConflict(err)
}

func mapNameConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrNameTaken
	}
	return err
}

// FindByID fetches a role by id.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Role, error) {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return Role{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, permissions, created_at, updated_at FROM roles WHERE id = $1`, roleID)
	return scanRole(row)
}

// FindByName fetches a role by its unique name.
func (r *PostgresRepository) FindByName(ctx context.Context, name string) (Role, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, permissions, created_at, updated_at FROM roles WHERE name = $1`, name)
	return scanRole(row)
}

// List returns all roles.
func (r *PostgresRepository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, permissions, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Update rewrites the role's name and permission set.
func (r *PostgresRepository) Update(ctx context.Context, role Role) error {
	roleID, err := uuid.Parse(role.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE roles SET name = $1, permissions = $2, updated_at = $3 WHERE id = $4`,
		role.Name, PermissionStrings(role.Permissions), role.UpdatedAt.UTC(), roleID)
	if err != nil {
		return mapNameConflict(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the role. Identities referencing it keep their dangling
// role id; lookups treat it as no role assigned.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, roleID)
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

func scanRole(row rowScanner) (Role, error) {
	var (
		id          uuid.UUID
		permissions []string
		role        Role
	)
	if err := row.Scan(&id, &role.Name, &permissions, &role.CreatedAt, &role.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrNotFound
		}
		return Role{}, err
	}
	role.ID = id.String()
	role.Permissions = PermissionsFromStrings(permissions)
	role.CreatedAt = role.CreatedAt.UTC()
	role.UpdatedAt = role.UpdatedAt.UTC()
	return role, nil
}

// NewRole builds a role value with a fresh id and timestamps.
func NewRole(name string, permissions []Permission) Role {
	now := time.Now().UTC()
	return Role{
		ID:          uuid.New().String(),
		Name:        name,
		Permissions: permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
