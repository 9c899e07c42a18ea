package users

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/platform/httpx"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Profile, int, error)
	Get(ctx context.Context, id int64) (Profile, error)
	Create(ctx context.Context, p Profile, passwordHash string) (Profile, error)
	Update(ctx context.Context, id int64, p Profile, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Profile, int, error) {
	query := `SELECT id, email, full_name, is_active, created_at, updated_at
	          FROM profiles WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM profiles WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		n := strconv.Itoa(argCount)
		clause := ` AND (email ILIKE $` + n + ` OR full_name ILIKE $` + n + `)`
		query += clause
		countQuery += clause
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY full_name ASC`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, full_name, is_active, created_at, updated_at
		 FROM profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.Email, &p.FullName, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Profile, passwordHash string) (Profile, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (email, full_name, password_hash, is_active, created_at, updated_at)
		 VALUES (lower($1), $2, $3, $4, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		p.Email, p.FullName, passwordHash, p.IsActive).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return Profile{}, httpx.ErrDuplicate
	}
	return p, err
}

// Update rewrites the profile; an empty hash keeps the stored password.
func (r *repository) Update(ctx context.Context, id int64, p Profile, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET email = lower($2), full_name = $3,
		   password_hash = COALESCE(NULLIF($4, ''), password_hash),
		   is_active = $5, updated_at = NOW()
		 WHERE id = $1`,
		id, p.Email, p.FullName, passwordHash, p.IsActive)
	if isUniqueViolation(err) {
		return httpx.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
