package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters, status Status) ([]Invoice, int, error)
	Get(ctx context.Context, id int64) (Invoice, error)
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	Update(ctx context.Context, id int64, inv Invoice) error
	SetStatus(ctx context.Context, id int64, status Status, paidAt *time.Time) error
	Delete(ctx context.Context, id int64) error
	GenerateNumber(ctx context.Context, year int) (string, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const invoiceColumns = `i.id, i.number, i.client_id, COALESCE(c.name, ''),
	i.project_id, i.amount, i.status, i.issued_at, i.due_date, i.paid_at,
	COALESCE(i.note, ''), i.created_at, i.updated_at`

const invoiceFrom = ` FROM invoices i LEFT JOIN clients c ON c.id = i.client_id`

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.ClientID, &inv.ClientName,
		&inv.ProjectID, &inv.Amount, &inv.Status, &inv.IssuedAt, &inv.DueDate,
		&inv.PaidAt, &inv.Note, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters, status Status) ([]Invoice, int, error) {
	query := `SELECT ` + invoiceColumns + invoiceFrom + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*)` + invoiceFrom + ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if status != "" {
		argCount++
		clause := ` AND i.status = $` + strconv.Itoa(argCount)
		query += clause
		countQuery += clause
		args = append(args, string(status))
	}
	if filters.Search != "" {
		argCount++
		n := strconv.Itoa(argCount)
		clause := ` AND (i.number ILIKE $` + n + ` OR c.name ILIKE $` + n + `)`
		query += clause
		countQuery += clause
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY i.issued_at DESC, i.id DESC`
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

	var items []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx,
		`SELECT `+invoiceColumns+invoiceFrom+` WHERE i.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, shared.ErrNotFound
	}
	return inv, err
}

func (r *repository) Create(ctx context.Context, inv Invoice) (Invoice, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO invoices (number, client_id, project_id, amount, status,
		   issued_at, due_date, note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		inv.Number, inv.ClientID, inv.ProjectID, inv.Amount, string(inv.Status),
		inv.IssuedAt, inv.DueDate, inv.Note).
		Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func (r *repository) Update(ctx context.Context, id int64, inv Invoice) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET client_id = $2, project_id = $3, amount = $4,
		   due_date = $5, note = NULLIF($6, ''), updated_at = NOW()
		 WHERE id = $1`,
		id, inv.ClientID, inv.ProjectID, inv.Amount, inv.DueDate, inv.Note)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status Status, paidAt *time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET status = $2, paid_at = $3, updated_at = NOW() WHERE id = $1`,
		id, string(status), paidAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateNumber produces INV/<year>/<seq> from a per-year row in
// document_sequences. The sequence only moves forward, so a deleted draft
// leaves a gap instead of freeing its number for reuse.
func (r *repository) GenerateNumber(ctx context.Context, year int) (string, error) {
	var seq int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, period)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, "INV", strconv.Itoa(year)).Scan(&seq)
	if err != nil {
		return "", err
	}
	return FormatNumber(year, seq), nil
}

// FormatNumber renders an invoice number, e.g. INV/2024/007.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("INV/%d/%03d", year, seq)
}
