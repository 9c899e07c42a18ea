package adsreport

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Repository defines persistence for daily ad reports.
type Repository interface {
	List(ctx context.Context) ([]ledger.AdEntry, error)
	Get(ctx context.Context, id string) (ledger.AdEntry, error)
	Insert(ctx context.Context, entry ledger.AdEntry) (ledger.AdEntry, error)
	Update(ctx context.Context, id string, entry ledger.AdEntry) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectColumns = `id, report_date, revenue, fee_payment, net_revenue,
	ads_spend, tax_11, profit_loss, leads, total_purchase, week, month`

func scanEntry(row pgx.Row) (ledger.AdEntry, error) {
	var e ledger.AdEntry
	err := row.Scan(&e.ID, &e.Date, &e.Revenue, &e.FeePayment, &e.NetRevenue,
		&e.AdsSpend, &e.TaxEstimate, &e.ProfitLoss, &e.Leads, &e.TotalPurchases,
		&e.Week, &e.Month)
	return e, err
}

// List returns every report newest first; filtering and aggregation happen
// in memory over this snapshot.
func (r *repository) List(ctx context.Context) ([]ledger.AdEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM ad_reports ORDER BY report_date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []ledger.AdEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (ledger.AdEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM ad_reports WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.AdEntry{}, shared.ErrNotFound
	}
	return e, err
}

// Insert stores the record with every derived column materialised. The
// ratio columns duplicate what the methods compute so ad-hoc SQL over the
// table stays usable without re-deriving.
func (r *repository) Insert(ctx context.Context, entry ledger.AdEntry) (ledger.AdEntry, error) {
	entry.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ad_reports (id, report_date, revenue, fee_payment, net_revenue,
		   ads_spend, tax_11, profit_loss, roas, leads, total_purchase,
		   conv_percent, cost_per_lead, cost_per_purchase, week, month, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())`,
		entry.ID, entry.Date, entry.Revenue, entry.FeePayment, entry.NetRevenue,
		entry.AdsSpend, entry.TaxEstimate, entry.ProfitLoss,
		ratioColumn(entry.ROAS()), entry.Leads, entry.TotalPurchases,
		ratioColumn(entry.ConversionRate()), ratioColumn(entry.CostPerLead()),
		ratioColumn(entry.CostPerPurchase()), entry.Week, entry.Month)
	if err != nil {
		return ledger.AdEntry{}, err
	}
	return entry, nil
}

func (r *repository) Update(ctx context.Context, id string, entry ledger.AdEntry) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ad_reports SET report_date = $2, revenue = $3, fee_payment = $4,
		   net_revenue = $5, ads_spend = $6, tax_11 = $7, profit_loss = $8,
		   roas = $9, leads = $10, total_purchase = $11, conv_percent = $12,
		   cost_per_lead = $13, cost_per_purchase = $14, week = $15, month = $16,
		   updated_at = NOW()
		 WHERE id = $1`,
		id, entry.Date, entry.Revenue, entry.FeePayment, entry.NetRevenue,
		entry.AdsSpend, entry.TaxEstimate, entry.ProfitLoss,
		ratioColumn(entry.ROAS()), entry.Leads, entry.TotalPurchases,
		ratioColumn(entry.ConversionRate()), ratioColumn(entry.CostPerLead()),
		ratioColumn(entry.CostPerPurchase()), entry.Week, entry.Month)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ad_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ratioColumn maps an undefined ratio to NULL rather than zero.
func ratioColumn(r ledger.Ratio) *float64 {
	if !r.Valid {
		return nil
	}
	return &r.Value
}
