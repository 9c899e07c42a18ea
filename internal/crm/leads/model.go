// Package leads runs the sales pipeline. A lead enters as baru, moves to
// diproses while CS follows up, and ends as closing or batal. Closing leads
// convert into clients.
package leads

import "time"

// Status is the pipeline stage of a lead.
type Status string

const (
	StatusBaru     Status = "baru"
	StatusDiproses Status = "diproses"
	StatusClosing  Status = "closing"
	StatusBatal    Status = "batal"
)

// Known reports whether s is a pipeline stage.
func (s Status) Known() bool {
	switch s {
	case StatusBaru, StatusDiproses, StatusClosing, StatusBatal:
		return true
	}
	return false
}

// CanMoveTo reports whether the transition from s to next is allowed. The
// pipeline only moves forward; the two terminal stages accept no moves.
func (s Status) CanMoveTo(next Status) bool {
	switch s {
	case StatusBaru:
		return next == StatusDiproses || next == StatusBatal
	case StatusDiproses:
		return next == StatusClosing || next == StatusBatal
	}
	return false
}

// Lead is one prospect in the pipeline.
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Source    string    `json:"source,omitempty"`
	PackageID *int64    `json:"package_id,omitempty"`
	Status    Status    `json:"status"`
	Note      string    `json:"note,omitempty"`
	ClientID  *int64    `json:"client_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeadForm is the JSON payload for creating or updating a lead. Status moves
// through the dedicated status endpoint, never through this form.
type LeadForm struct {
	Name      string `json:"name" validate:"required,min=2"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Source    string `json:"source"`
	PackageID *int64 `json:"package_id"`
	Note      string `json:"note"`
}

func (f LeadForm) Model(base Lead) Lead {
	base.Name = f.Name
	base.Phone = f.Phone
	base.Email = f.Email
	base.Source = f.Source
	base.PackageID = f.PackageID
	base.Note = f.Note
	if base.Status == "" {
		base.Status = StatusBaru
	}
	return base
}
