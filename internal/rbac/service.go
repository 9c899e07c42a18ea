package rbac

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RoleSource resolves the role set assigned to a user.
type RoleSource interface {
	RolesFor(ctx context.Context, userID int64) ([]Role, error)
}

// Service is the capability gate consumed by every privileged endpoint.
type Service struct {
	source RoleSource
}

// NewService wires the gate to a role source.
func NewService(source RoleSource) *Service {
	return &Service{source: source}
}

// Allows reports whether the user holds any of the candidate roles. Any
// failure to resolve the role set denies access rather than granting it.
func (s *Service) Allows(ctx context.Context, userID int64, candidates ...Role) bool {
	if len(candidates) == 0 {
		return true
	}
	if s == nil || s.source == nil {
		return false
	}
	roles, err := s.source.RolesFor(ctx, userID)
	if err != nil {
		return false
	}
	return HasRole(roles, candidates)
}

// RolesFor exposes the resolved role set, e.g. for the profile endpoint.
func (s *Service) RolesFor(ctx context.Context, userID int64) ([]Role, error) {
	return s.source.RolesFor(ctx, userID)
}

// Repository reads user_roles from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RolesFor returns the roles assigned to a user, unknown names skipped.
func (r *Repository) RolesFor(ctx context.Context, userID int64) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		if role, ok := ParseRole(raw); ok {
			roles = append(roles, role)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

// Assign grants a role to a user, idempotently.
func (r *Repository) Assign(ctx context.Context, userID int64, role Role) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, string(role))
	return err
}

// Remove revokes a role from a user.
func (r *Repository) Remove(ctx context.Context, userID int64, role Role) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role = $2`,
		userID, string(role))
	return err
}

var _ RoleSource = (*Repository)(nil)
