// Package finance serves the ledger of income and expense entries plus the
// derived period summary, spreadsheet and PDF views of it.
package finance

import (
	"time"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
)

// EntryRequest is the JSON payload for creating or replacing an entry.
// Updates are full-field replaces; there is no partial adjustment ledger.
type EntryRequest struct {
	Tanggal    string  `json:"tanggal"`
	Tipe       string  `json:"tipe"`
	Kategori   string  `json:"kategori"`
	Nominal    float64 `json:"nominal"`
	Keterangan string  `json:"keterangan"`
}

// Input parses the request into ledger input. Date parsing failures surface
// through ValidateFinance as a field error on tanggal.
func (r EntryRequest) Input() ledger.FinanceInput {
	date, err := time.Parse("2006-01-02", r.Tanggal)
	if err != nil {
		date = time.Time{}
	}
	return ledger.FinanceInput{
		Date:     date,
		Kind:     ledger.Kind(r.Tipe),
		Category: ledger.Category(r.Kategori),
		Amount:   r.Nominal,
		Note:     r.Keterangan,
	}
}

// EntryResponse is the JSON projection of one finance entry.
type EntryResponse struct {
	ID         string  `json:"id"`
	Tanggal    string  `json:"tanggal"`
	Tipe       string  `json:"tipe"`
	Kategori   string  `json:"kategori"`
	Nominal    float64 `json:"nominal"`
	Keterangan string  `json:"keterangan,omitempty"`
}

func toResponse(e ledger.FinanceEntry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Tanggal:    e.Date.Format("2006-01-02"),
		Tipe:       string(e.Kind),
		Kategori:   string(e.Category),
		Nominal:    e.Amount,
		Keterangan: e.Note,
	}
}

// ListView is the aggregate the page renders: the filtered rows, the period
// summary over exactly those rows, and the selectable period options.
type ListView struct {
	Entries []EntryResponse       `json:"entries"`
	Summary ledger.FinanceSummary `json:"summary"`
	Periods []string              `json:"periods"`
}
