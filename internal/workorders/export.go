package workorders

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/studio-kirana/kirana-erp/internal/masterdata/companies"
	"github.com/studio-kirana/kirana-erp/report"
)

// Exporter renders SPK documents on the company letterhead. The letterhead
// repeats on every page through the Gotenberg header file.
type Exporter struct {
	pdf *report.Client
}

func NewExporter(pdf *report.Client) *Exporter {
	return &Exporter{pdf: pdf}
}

// RenderPDF builds the work order document and converts it through
// Gotenberg.
func (x *Exporter) RenderPDF(ctx context.Context, spk SPK, company companies.Company) ([]byte, error) {
	if x.pdf == nil {
		return nil, fmt.Errorf("workorders: pdf renderer not configured")
	}
	return x.pdf.RenderHTMLWithHeader(ctx, buildBody(spk), buildHeader(company))
}

func buildHeader(company companies.Company) string {
	var b strings.Builder
	b.WriteString(`<html><head><style>
.letterhead { font-family: sans-serif; font-size: 10px; border-bottom: 2px solid #333;
  padding: 4px 24px 8px; width: 100%; }
.letterhead strong { font-size: 13px; }
</style></head><body><div class="letterhead">`)
	fmt.Fprintf(&b, `<strong>%s</strong><br>%s &middot; %s`,
		html.EscapeString(company.Name), html.EscapeString(company.Address),
		html.EscapeString(company.Phone))
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func buildBody(spk SPK) string {
	var b strings.Builder
	b.WriteString(`<html><head><meta charset="utf-8"><style>
body { font-family: sans-serif; font-size: 12px; margin: 24px; }
h1 { font-size: 16px; text-align: center; text-decoration: underline; }
.number { text-align: center; margin-top: -8px; }
table { margin-top: 16px; }
td { padding: 4px 12px 4px 0; vertical-align: top; }
.sign { margin-top: 48px; width: 100%; }
.sign td { text-align: center; width: 50%; }
</style></head><body>`)

	b.WriteString(`<h1>Surat Perintah Kerja</h1>`)
	fmt.Fprintf(&b, `<p class="number">Nomor: %s</p>`, html.EscapeString(spk.Number))

	b.WriteString(`<table>`)
	fmt.Fprintf(&b, `<tr><td>Proyek</td><td>: %s</td></tr>`, html.EscapeString(spk.ProjectName))
	fmt.Fprintf(&b, `<tr><td>Dikerjakan oleh</td><td>: %s</td></tr>`, html.EscapeString(spk.DeveloperName))
	fmt.Fprintf(&b, `<tr><td>Tanggal terbit</td><td>: %s</td></tr>`, spk.IssuedAt.Format("02 Jan 2006"))
	if spk.Deadline != nil {
		fmt.Fprintf(&b, `<tr><td>Batas waktu</td><td>: %s</td></tr>`, spk.Deadline.Format("02 Jan 2006"))
	}
	b.WriteString(`</table>`)

	if spk.Description != "" {
		fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(spk.Description))
	}

	b.WriteString(`<table class="sign"><tr><td>Pemberi Tugas</td><td>Penerima Tugas</td></tr>
<tr><td style="height:72px"></td><td></td></tr>
<tr><td>(..........................)</td><td>(..........................)</td></tr></table>`)
	b.WriteString(`</body></html>`)
	return b.String()
}
