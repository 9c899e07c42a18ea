package leads

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters, status Status) ([]Lead, int, error)
	Get(ctx context.Context, id int64) (Lead, error)
	Create(ctx context.Context, l Lead) (Lead, error)
	Update(ctx context.Context, id int64, l Lead) error
	SetStatus(ctx context.Context, id int64, status Status, clientID *int64) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const leadColumns = `id, name, COALESCE(phone, ''), COALESCE(email, ''),
	COALESCE(source, ''), package_id, status, COALESCE(note, ''), client_id,
	created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(&l.ID, &l.Name, &l.Phone, &l.Email, &l.Source, &l.PackageID,
		&l.Status, &l.Note, &l.ClientID, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters, status Status) ([]Lead, int, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM leads WHERE 1=1`
	args := []any{}
	argCount := 0

	if status != "" {
		argCount++
		clause := ` AND status = $` + strconv.Itoa(argCount)
		query += clause
		countQuery += clause
		args = append(args, string(status))
	}
	if filters.Search != "" {
		argCount++
		n := strconv.Itoa(argCount)
		clause := ` AND (name ILIKE $` + n + ` OR phone ILIKE $` + n + `)`
		query += clause
		countQuery += clause
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY created_at DESC`
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

	var items []Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, l)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Lead, error) {
	l, err := scanLead(r.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, shared.ErrNotFound
	}
	return l, err
}

func (r *repository) Create(ctx context.Context, l Lead) (Lead, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO leads (name, phone, email, source, package_id, status, note,
		   created_at, updated_at)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, $6,
		   NULLIF($7, ''), NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		l.Name, l.Phone, l.Email, l.Source, l.PackageID, string(l.Status), l.Note).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *repository) Update(ctx context.Context, id int64, l Lead) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET name = $2, phone = NULLIF($3, ''), email = NULLIF($4, ''),
		   source = NULLIF($5, ''), package_id = $6, note = NULLIF($7, ''),
		   updated_at = NOW()
		 WHERE id = $1`,
		id, l.Name, l.Phone, l.Email, l.Source, l.PackageID, l.Note)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status Status, clientID *int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET status = $2, client_id = COALESCE($3, client_id),
		   updated_at = NOW() WHERE id = $1`,
		id, string(status), clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
