package ledger

import (
	"sort"
	"strings"
	"time"
)

// ValidationError reports every offending field of a rejected input keyed by
// its wire name. Nothing reaches the store when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// FinanceInput carries the user-entered fields of a finance entry.
type FinanceInput struct {
	Date     time.Time
	Kind     Kind
	Category Category
	Amount   float64
	Note     string
}

// ValidateFinance rejects missing or negative inputs with a field-level
// error; on success it returns the entry ready for persistence.
func ValidateFinance(in FinanceInput) (FinanceEntry, error) {
	verr := newValidationError()
	if in.Date.IsZero() {
		verr.Fields["tanggal"] = "tanggal wajib diisi"
	}
	if in.Kind != KindIncome && in.Kind != KindExpense {
		verr.Fields["tipe"] = "tipe harus income atau expense"
	}
	if !in.Category.Known() {
		verr.Fields["kategori"] = "kategori tidak dikenal"
	}
	if in.Amount < 0 {
		verr.Fields["nominal"] = "nominal tidak boleh negatif"
	}
	if len(verr.Fields) > 0 {
		return FinanceEntry{}, verr
	}
	return FinanceEntry{
		Date:     in.Date,
		Kind:     in.Kind,
		Category: in.Category,
		Amount:   in.Amount,
		Note:     strings.TrimSpace(in.Note),
	}, nil
}

// AdInput carries the five user-entered numeric fields of an ad report plus
// its date. Everything else on AdEntry is derived.
type AdInput struct {
	Date           time.Time
	Revenue        float64
	FeePayment     float64
	AdsSpend       float64
	Leads          int64
	TotalPurchases int64
}

// ComputeAd validates the input and returns the fully derived record,
// including the persisted period bucket columns. A negative value in any
// numeric field rejects the whole record.
func (p TaxPolicy) ComputeAd(in AdInput) (AdEntry, error) {
	verr := newValidationError()
	if in.Date.IsZero() {
		verr.Fields["report_date"] = "tanggal laporan wajib diisi"
	}
	if in.Revenue < 0 {
		verr.Fields["revenue"] = "revenue tidak boleh negatif"
	}
	if in.FeePayment < 0 {
		verr.Fields["fee_payment"] = "fee payment tidak boleh negatif"
	}
	if in.AdsSpend < 0 {
		verr.Fields["ads_spend"] = "ads spend tidak boleh negatif"
	}
	if in.Leads < 0 {
		verr.Fields["leads"] = "leads tidak boleh negatif"
	}
	if in.TotalPurchases < 0 {
		verr.Fields["total_purchase"] = "total purchase tidak boleh negatif"
	}
	if len(verr.Fields) > 0 {
		return AdEntry{}, verr
	}

	net := in.Revenue - in.FeePayment
	tax := net * p.AdRate
	profit := net - in.AdsSpend - tax
	bucket := BuildPeriodLabel(in.Date)

	return AdEntry{
		Date:           in.Date,
		Revenue:        in.Revenue,
		FeePayment:     in.FeePayment,
		AdsSpend:       in.AdsSpend,
		Leads:          in.Leads,
		TotalPurchases: in.TotalPurchases,
		NetRevenue:     net,
		TaxEstimate:    tax,
		ProfitLoss:     &profit,
		Week:           bucket.Week,
		Month:          bucket.Month,
	}, nil
}
