package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Repository defines persistence for finance entries.
type Repository interface {
	List(ctx context.Context) ([]ledger.FinanceEntry, error)
	Get(ctx context.Context, id string) (ledger.FinanceEntry, error)
	Insert(ctx context.Context, entry ledger.FinanceEntry) (ledger.FinanceEntry, error)
	Update(ctx context.Context, id string, entry ledger.FinanceEntry) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// List returns every entry newest first; filtering happens in memory over
// this snapshot, matching how the pages consume it.
func (r *repository) List(ctx context.Context) ([]ledger.FinanceEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tanggal, tipe, kategori, nominal, COALESCE(keterangan, '')
		 FROM finances ORDER BY tanggal DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []ledger.FinanceEntry
	for rows.Next() {
		var e ledger.FinanceEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Kind, &e.Category, &e.Amount, &e.Note); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (ledger.FinanceEntry, error) {
	var e ledger.FinanceEntry
	err := r.pool.QueryRow(ctx,
		`SELECT id, tanggal, tipe, kategori, nominal, COALESCE(keterangan, '')
		 FROM finances WHERE id = $1`, id).
		Scan(&e.ID, &e.Date, &e.Kind, &e.Category, &e.Amount, &e.Note)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.FinanceEntry{}, shared.ErrNotFound
	}
	return e, err
}

func (r *repository) Insert(ctx context.Context, entry ledger.FinanceEntry) (ledger.FinanceEntry, error) {
	entry.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO finances (id, tanggal, tipe, kategori, nominal, keterangan, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NOW(), NOW())`,
		entry.ID, entry.Date, string(entry.Kind), string(entry.Category), entry.Amount, entry.Note)
	if err != nil {
		return ledger.FinanceEntry{}, err
	}
	return entry, nil
}

func (r *repository) Update(ctx context.Context, id string, entry ledger.FinanceEntry) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE finances SET tanggal = $2, tipe = $3, kategori = $4, nominal = $5,
		 keterangan = NULLIF($6, ''), updated_at = NOW() WHERE id = $1`,
		id, entry.Date, string(entry.Kind), string(entry.Category), entry.Amount, entry.Note)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM finances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
