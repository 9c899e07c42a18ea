package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	RecordLogin(ctx context.Context, userID int64, at time.Time, ip, ua string) error
	PruneLogins(ctx context.Context, olderThan time.Duration) (int64, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, is_active, created_at, updated_at
		 FROM profiles WHERE lower(email) = lower($1)`, email)
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RecordLogin keeps a login trail in sessions for auditing.
func (r *PGRepository) RecordLogin(ctx context.Context, userID int64, at time.Time, ip, ua string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (user_id, logged_in_at, ip, ua) VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))`,
		userID, at.UTC(), ip, ua)
	return err
}

// PruneLogins drops login-trail rows older than the retention window.
func (r *PGRepository) PruneLogins(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM sessions WHERE logged_in_at < NOW() - make_interval(hours => $1)`,
		int(olderThan.Hours()))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ Repository = (*PGRepository)(nil)
