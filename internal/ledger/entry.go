// Package ledger derives reporting state from finance and ad-performance
// records. It performs no I/O: callers hand it already-fetched rows and it
// returns filtered views, period summaries and derived ratios for the current
// render or export cycle.
package ledger

import "time"

// Kind classifies a finance entry.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	// KindAll is only meaningful as a filter value and matches both kinds.
	KindAll Kind = "all"
)

// Category labels a finance entry. It is informational only and never enters
// any arithmetic.
type Category string

const (
	CategoryRevenue     Category = "revenue"
	CategoryOperational Category = "operational"
	CategoryTax         Category = "tax"
	CategoryPayroll     Category = "payroll"
	CategoryHosting     Category = "hosting"
	CategoryAdvertising Category = "advertising"
	CategoryOther       Category = "other"
)

// Categories lists every accepted finance category.
var Categories = []Category{
	CategoryRevenue,
	CategoryOperational,
	CategoryTax,
	CategoryPayroll,
	CategoryHosting,
	CategoryAdvertising,
	CategoryOther,
}

// Known reports whether c belongs to the fixed category set.
func (c Category) Known() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FinanceEntry is one ledger transaction. Amount is always >= 0; the Kind
// decides whether it counts as income or expense.
type FinanceEntry struct {
	ID       string
	Date     time.Time
	Kind     Kind
	Category Category
	Amount   float64
	Note     string
}

// PeriodKey returns the month-year bucket used for period filtering.
func (e FinanceEntry) PeriodKey() string {
	return e.Date.Format("2006-01")
}

// AdEntry is one day of advertising performance. Revenue, FeePayment and
// AdsSpend are monetary; Leads and TotalPurchases are counts. The derived
// fields are filled by ComputeAd and persisted alongside the inputs as a
// cache of the same derivation.
type AdEntry struct {
	ID             string
	Date           time.Time
	Revenue        float64
	FeePayment     float64
	AdsSpend       float64
	Leads          int64
	TotalPurchases int64

	NetRevenue  float64
	TaxEstimate float64
	// ProfitLoss is nil on partially-computed records; summaries recompute
	// it from the inputs in that case.
	ProfitLoss *float64
	Week       int
	Month      string
}

// ROAS is revenue over ad spend.
func (e AdEntry) ROAS() Ratio {
	return NewRatio(e.Revenue, e.AdsSpend)
}

// ConversionRate is purchases per hundred leads.
func (e AdEntry) ConversionRate() Ratio {
	return NewRatio(float64(e.TotalPurchases)*100, float64(e.Leads))
}

// CostPerLead is ad spend over leads.
func (e AdEntry) CostPerLead() Ratio {
	return NewRatio(e.AdsSpend, float64(e.Leads))
}

// CostPerPurchase is ad spend over purchases.
func (e AdEntry) CostPerPurchase() Ratio {
	return NewRatio(e.AdsSpend, float64(e.TotalPurchases))
}

// Ratio is a derived quotient plus whether its denominator held any data.
// Value stays zero when Valid is false so totals can sum it safely; the
// presentation layer renders an invalid ratio as an em-dash, never "0".
type Ratio struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// NewRatio divides num by den, returning the zero Ratio when den == 0
// instead of ever producing NaN or Infinity.
func NewRatio(num, den float64) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return Ratio{Value: num / den, Valid: true}
}

// TaxPolicy holds the presumptive tax rates applied by the aggregation.
// Both figures are simulations rather than legal computations, so they stay
// configurable instead of being inlined as business rules.
type TaxPolicy struct {
	// FinalRate is the flat presumptive rate applied to gross income.
	FinalRate float64
	// AdRate is the rate applied to net ad revenue.
	AdRate float64
}

// DefaultTaxPolicy mirrors the rates the agency reports with today:
// 0.5% final tax on gross income and 11% on net ad revenue.
var DefaultTaxPolicy = TaxPolicy{FinalRate: 0.005, AdRate: 0.11}
