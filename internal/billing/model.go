// Package billing issues invoices for projects and tracks their lifecycle
// from draft through paid. Numbers follow INV/<year>/<seq>.
package billing

import "time"

// Status is the lifecycle stage of an invoice.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
	StatusVoid   Status = "void"
)

func (s Status) Known() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid, StatusVoid:
		return true
	}
	return false
}

// Invoice is one bill to a client.
type Invoice struct {
	ID         int64      `json:"id"`
	Number     string     `json:"number"`
	ClientID   int64      `json:"client_id"`
	ClientName string     `json:"client_name,omitempty"`
	ProjectID  *int64     `json:"project_id,omitempty"`
	Amount     float64    `json:"amount"`
	Status     Status     `json:"status"`
	IssuedAt   time.Time  `json:"issued_at"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	Note       string     `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// InvoiceForm is the JSON payload for creating an invoice. The number is
// generated server-side, never supplied.
type InvoiceForm struct {
	ClientID  int64   `json:"client_id" validate:"required,gt=0"`
	ProjectID *int64  `json:"project_id"`
	Amount    float64 `json:"amount" validate:"gte=0"`
	DueDate   string  `json:"due_date"`
	Note      string  `json:"note"`
}

func (f InvoiceForm) Model(base Invoice) Invoice {
	base.ClientID = f.ClientID
	base.ProjectID = f.ProjectID
	base.Amount = f.Amount
	base.Note = f.Note
	if f.DueDate != "" {
		if d, err := time.Parse("2006-01-02", f.DueDate); err == nil {
			base.DueDate = &d
		}
	}
	if base.Status == "" {
		base.Status = StatusDraft
	}
	return base
}
