package workorders

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]SPK, int, error)
	Get(ctx context.Context, id int64) (SPK, error)
	Create(ctx context.Context, spk SPK) (SPK, error)
	Update(ctx context.Context, id int64, spk SPK) error
	Delete(ctx context.Context, id int64) error
	GenerateNumber(ctx context.Context, issued time.Time) (string, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const spkColumns = `s.id, s.number, s.project_id, COALESCE(p.name, ''),
	s.developer_id, COALESCE(u.full_name, ''), COALESCE(s.description, ''),
	s.issued_at, s.deadline, s.created_at, s.updated_at`

const spkFrom = ` FROM spks s
	LEFT JOIN projects p ON p.id = s.project_id
	LEFT JOIN profiles u ON u.id = s.developer_id`

func scanSPK(row pgx.Row) (SPK, error) {
	var s SPK
	err := row.Scan(&s.ID, &s.Number, &s.ProjectID, &s.ProjectName,
		&s.DeveloperID, &s.DeveloperName, &s.Description, &s.IssuedAt,
		&s.Deadline, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]SPK, int, error) {
	query := `SELECT ` + spkColumns + spkFrom + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*)` + spkFrom + ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		n := strconv.Itoa(argCount)
		clause := ` AND (s.number ILIKE $` + n + ` OR p.name ILIKE $` + n + `)`
		query += clause
		countQuery += clause
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY s.issued_at DESC, s.id DESC`
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

	var items []SPK
	for rows.Next() {
		s, err := scanSPK(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (SPK, error) {
	s, err := scanSPK(r.pool.QueryRow(ctx,
		`SELECT `+spkColumns+spkFrom+` WHERE s.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return SPK{}, shared.ErrNotFound
	}
	return s, err
}

func (r *repository) Create(ctx context.Context, spk SPK) (SPK, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO spks (number, project_id, developer_id, description,
		   issued_at, deadline, created_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		spk.Number, spk.ProjectID, spk.DeveloperID, spk.Description,
		spk.IssuedAt, spk.Deadline).
		Scan(&spk.ID, &spk.CreatedAt, &spk.UpdatedAt)
	return spk, err
}

func (r *repository) Update(ctx context.Context, id int64, spk SPK) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE spks SET project_id = $2, developer_id = $3,
		   description = NULLIF($4, ''), deadline = $5, updated_at = NOW()
		 WHERE id = $1`,
		id, spk.ProjectID, spk.DeveloperID, spk.Description, spk.Deadline)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM spks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateNumber produces SPK/<roman month>/<year>/<seq> from a per-month
// row in document_sequences. The sequence only moves forward, so a deleted
// order leaves a gap instead of freeing its number for reuse.
func (r *repository) GenerateNumber(ctx context.Context, issued time.Time) (string, error) {
	var seq int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "SPK", issued.Format("200601")).Scan(&seq)
	if err != nil {
		return "", err
	}
	return FormatNumber(issued, seq), nil
}
