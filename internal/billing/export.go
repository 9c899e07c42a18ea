package billing

import (
	"context"
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/studio-kirana/kirana-erp/internal/masterdata/companies"
	"github.com/studio-kirana/kirana-erp/report"
)

// Exporter renders invoices as PDF documents on the company letterhead.
type Exporter struct {
	pdf     *report.Client
	printer *message.Printer
}

func NewExporter(pdf *report.Client) *Exporter {
	return &Exporter{pdf: pdf, printer: message.NewPrinter(language.Indonesian)}
}

// RenderPDF builds the invoice document and converts it through Gotenberg.
func (x *Exporter) RenderPDF(ctx context.Context, inv Invoice, company companies.Company) ([]byte, error) {
	if x.pdf == nil {
		return nil, fmt.Errorf("billing: pdf renderer not configured")
	}
	return x.pdf.RenderHTML(ctx, x.buildHTML(inv, company))
}

func (x *Exporter) buildHTML(inv Invoice, company companies.Company) string {
	var b strings.Builder
	b.WriteString(`<html><head><meta charset="utf-8"><style>
body { font-family: sans-serif; font-size: 12px; }
.head { border-bottom: 2px solid #333; padding-bottom: 8px; margin-bottom: 16px; }
.head h2 { margin: 0; }
table { border-collapse: collapse; width: 100%; margin-top: 12px; }
th, td { border: 1px solid #999; padding: 6px 10px; text-align: left; }
.num { text-align: right; }
.muted { color: #666; font-size: 10px; }
.status { text-transform: uppercase; font-weight: bold; }
</style></head><body>`)

	fmt.Fprintf(&b, `<div class="head"><h2>%s</h2><p>%s<br>%s &middot; %s</p></div>`,
		html.EscapeString(company.Name), html.EscapeString(company.Address),
		html.EscapeString(company.Phone), html.EscapeString(company.Email))

	fmt.Fprintf(&b, `<h1>Invoice %s</h1>`, html.EscapeString(inv.Number))
	fmt.Fprintf(&b, `<p>Kepada: <strong>%s</strong></p>`, html.EscapeString(inv.ClientName))
	fmt.Fprintf(&b, `<p>Tanggal terbit: %s`, inv.IssuedAt.Format("02 Jan 2006"))
	if inv.DueDate != nil {
		fmt.Fprintf(&b, ` &middot; Jatuh tempo: %s`, inv.DueDate.Format("02 Jan 2006"))
	}
	b.WriteString(`</p>`)
	fmt.Fprintf(&b, `<p class="status">%s</p>`, inv.Status)

	b.WriteString(`<table><tr><th>Keterangan</th><th class="num">Jumlah</th></tr>`)
	note := inv.Note
	if note == "" {
		note = "Jasa pembuatan website"
	}
	fmt.Fprintf(&b, `<tr><td>%s</td><td class="num">%s</td></tr>`,
		html.EscapeString(note), x.rupiah(inv.Amount))
	fmt.Fprintf(&b, `<tr><td><strong>Total</strong></td><td class="num"><strong>%s</strong></td></tr>`,
		x.rupiah(inv.Amount))
	b.WriteString(`</table>`)

	if company.BankName != "" {
		fmt.Fprintf(&b, `<p>Pembayaran ke %s a.n. %s<br>No. rekening %s</p>`,
			html.EscapeString(company.BankName), html.EscapeString(company.BankHolder),
			html.EscapeString(company.BankAccount))
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func (x *Exporter) rupiah(v float64) string {
	return x.printer.Sprintf("Rp%v", int64(v))
}
