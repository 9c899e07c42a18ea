package adsreport

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
)

// Exporter produces the spreadsheet projection of a filtered view. Cells
// stay numeric so the sheet remains usable for further calculation.
type Exporter struct{}

// NewExporter constructs an Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// WriteXLSX writes the filtered daily reports plus a trailing totals row.
// Undefined ratios are written as an em-dash, never as zero.
func (x *Exporter) WriteXLSX(w io.Writer, entries []ledger.AdEntry, summary ledger.AdsSummary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Laporan Ads"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Tanggal", "Revenue", "Fee Payment", "Net Revenue", "Ads Spend",
		"PPN 11%", "Profit/Loss", "ROAS", "Leads", "Purchase", "Conv %",
		"Cost/Lead", "Cost/Purchase", "Minggu", "Bulan"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	row := 2
	for _, e := range entries {
		values := []any{
			e.Date.Format("2006-01-02"), e.Revenue, e.FeePayment, e.NetRevenue,
			e.AdsSpend, e.TaxEstimate, profitCell(e), ratioCell(e.ROAS()),
			e.Leads, e.TotalPurchases, ratioCell(e.ConversionRate()),
			ratioCell(e.CostPerLead()), ratioCell(e.CostPerPurchase()),
			e.Week, e.Month,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}

	totals := []any{"Total", summary.TotalRevenue, "", "", summary.TotalAdsSpend, "",
		summary.TotalProfit, ratioCell(summary.AverageROAS), summary.TotalLeads,
		summary.TotalPurchases, ratioCell(summary.AverageConversionRate), "", "", "", ""}
	for i, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "G", 14)
	_ = f.SetColWidth(sheet, "H", "M", 12)
	_ = f.SetColWidth(sheet, "N", "O", 12)

	return f.Write(w)
}

func ratioCell(r ledger.Ratio) any {
	if !r.Valid {
		return "—"
	}
	return r.Value
}

func profitCell(e ledger.AdEntry) any {
	if e.ProfitLoss == nil {
		return "—"
	}
	return *e.ProfitLoss
}
