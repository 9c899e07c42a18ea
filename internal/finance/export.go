package finance

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/studio-kirana/kirana-erp/internal/ledger"
	"github.com/studio-kirana/kirana-erp/report"
)

// Exporter produces the spreadsheet and PDF projections of a filtered view.
// Both consume finished filter/summarize output and impose nothing on it.
type Exporter struct {
	pdf     *report.Client
	printer *message.Printer
}

// NewExporter constructs an Exporter. The PDF client may be nil when
// Gotenberg is not configured; RenderPDF then fails with a clear error.
func NewExporter(pdf *report.Client) *Exporter {
	return &Exporter{pdf: pdf, printer: message.NewPrinter(language.Indonesian)}
}

// WriteXLSX writes the filtered entries plus a trailing totals row.
func (x *Exporter) WriteXLSX(w io.Writer, entries []ledger.FinanceEntry, summary ledger.FinanceSummary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Keuangan"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Tanggal", "Tipe", "Kategori", "Nominal", "Keterangan"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	row := 2
	for _, e := range entries {
		values := []any{e.Date.Format("2006-01-02"), string(e.Kind), string(e.Category), e.Amount, e.Note}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}

	// Trailing totals row.
	totals := []any{"Total", "", "", summary.Balance,
		x.printer.Sprintf("Pemasukan %v / Pengeluaran %v", summary.TotalIncome, summary.TotalExpense)}
	for i, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "C", 14)
	_ = f.SetColWidth(sheet, "D", "D", 16)
	_ = f.SetColWidth(sheet, "E", "E", 32)

	return f.Write(w)
}

// RenderPDF renders the summary and rows as an HTML document and converts it
// through Gotenberg.
func (x *Exporter) RenderPDF(ctx context.Context, period string, entries []ledger.FinanceEntry, summary ledger.FinanceSummary) ([]byte, error) {
	if x.pdf == nil {
		return nil, fmt.Errorf("finance: pdf renderer not configured")
	}
	return x.pdf.RenderHTML(ctx, x.buildHTML(period, entries, summary))
}

func (x *Exporter) buildHTML(period string, entries []ledger.FinanceEntry, summary ledger.FinanceSummary) string {
	var b strings.Builder
	b.WriteString(`<html><head><meta charset="utf-8"><style>
body { font-family: sans-serif; font-size: 12px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
.num { text-align: right; }
.muted { color: #666; font-size: 10px; }
</style></head><body>`)
	b.WriteString("<h1>Laporan Keuangan</h1>")
	if period != "" && period != "all" {
		b.WriteString("<p>Periode: " + period + "</p>")
	}
	fmt.Fprintf(&b, `<p>Pemasukan: %s &middot; Pengeluaran: %s &middot; Saldo: %s</p>`,
		x.rupiah(summary.TotalIncome), x.rupiah(summary.TotalExpense), x.rupiah(summary.Balance))
	fmt.Fprintf(&b, `<p class="muted">Estimasi PPh final (simulasi, bukan perhitungan resmi): %s</p>`,
		x.rupiah(summary.EstimatedFinalTax))

	b.WriteString("<table><tr><th>Tanggal</th><th>Tipe</th><th>Kategori</th><th>Nominal</th><th>Keterangan</th></tr>")
	if len(entries) == 0 {
		b.WriteString(`<tr><td colspan="5">Belum ada data</td></tr>`)
	}
	for _, e := range entries {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td class="num">%s</td><td>%s</td></tr>`,
			e.Date.Format("02 Jan 2006"), e.Kind, e.Category, x.rupiah(e.Amount), html.EscapeString(e.Note))
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, `<p class="muted">Dibuat %s</p>`, time.Now().Format("2006-01-02 15:04"))
	b.WriteString("</body></html>")
	return b.String()
}

func (x *Exporter) rupiah(v float64) string {
	return x.printer.Sprintf("Rp%v", int64(v))
}
