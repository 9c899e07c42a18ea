package packages

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Package, int, error)
	Get(ctx context.Context, id int64) (Package, error)
	Create(ctx context.Context, pkg Package) (Package, error)
	Update(ctx context.Context, id int64, pkg Package) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Package, int, error) {
	query := `SELECT id, name, COALESCE(description, ''), price, is_active, created_at, updated_at
	          FROM packages WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM packages WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		clause := ` AND name ILIKE $` + strconv.Itoa(argCount)
		query += clause
		countQuery += clause
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)
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

	var items []Package
	for rows.Next() {
		var p Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Package, error) {
	var p Package
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, ''), price, is_active, created_at, updated_at
		 FROM packages WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Package{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, pkg Package) (Package, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO packages (name, description, price, is_active, created_at, updated_at)
		 VALUES ($1, NULLIF($2, ''), $3, $4, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		pkg.Name, pkg.Description, pkg.Price, pkg.IsActive).
		Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt)
	return pkg, err
}

func (r *repository) Update(ctx context.Context, id int64, pkg Package) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE packages SET name = $2, description = NULLIF($3, ''), price = $4,
		 is_active = $5, updated_at = NOW() WHERE id = $1`,
		id, pkg.Name, pkg.Description, pkg.Price, pkg.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "price":
		return "price " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
