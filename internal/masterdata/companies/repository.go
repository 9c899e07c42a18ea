package companies

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Company, error)
	Get(ctx context.Context, id int64) (Company, error)
	Default(ctx context.Context) (Company, error)
	Create(ctx context.Context, c Company) (Company, error)
	Update(ctx context.Context, id int64, c Company) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const companyColumns = `id, name, COALESCE(address, ''), COALESCE(phone, ''),
	COALESCE(email, ''), COALESCE(bank_name, ''), COALESCE(bank_account, ''),
	COALESCE(bank_holder, ''), is_default, created_at, updated_at`

func scanCompany(row pgx.Row) (Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email,
		&c.BankName, &c.BankAccount, &c.BankHolder, &c.IsDefault,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns every profile; the catalogue is small enough that listing is
// not paginated.
func (r *repository) List(ctx context.Context) ([]Company, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY is_default DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Company, error) {
	c, err := scanCompany(r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, shared.ErrNotFound
	}
	return c, err
}

// Default returns the profile used on letterheads, falling back to the
// oldest profile when none is flagged.
func (r *repository) Default(ctx context.Context) (Company, error) {
	c, err := scanCompany(r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY is_default DESC, id ASC LIMIT 1`))
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, shared.ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, c Company) (Company, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO companies (name, address, phone, email, bank_name, bank_account,
		   bank_holder, is_default, created_at, updated_at)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
		   NULLIF($6, ''), NULLIF($7, ''), $8, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Address, c.Phone, c.Email, c.BankName, c.BankAccount,
		c.BankHolder, c.IsDefault).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *repository) Update(ctx context.Context, id int64, c Company) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE companies SET name = $2, address = NULLIF($3, ''), phone = NULLIF($4, ''),
		   email = NULLIF($5, ''), bank_name = NULLIF($6, ''), bank_account = NULLIF($7, ''),
		   bank_holder = NULLIF($8, ''), is_default = $9, updated_at = NOW()
		 WHERE id = $1`,
		id, c.Name, c.Address, c.Phone, c.Email, c.BankName, c.BankAccount,
		c.BankHolder, c.IsDefault)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
