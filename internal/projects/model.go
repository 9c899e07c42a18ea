// Package projects tracks website builds from queue to delivery. A project
// belongs to a client, references the sold package and is assigned to a
// developer.
package projects

import "time"

// Status is the build stage of a project.
type Status string

const (
	StatusAntrian    Status = "antrian"
	StatusDikerjakan Status = "dikerjakan"
	StatusSelesai    Status = "selesai"
	StatusBatal      Status = "batal"
)

func (s Status) Known() bool {
	switch s {
	case StatusAntrian, StatusDikerjakan, StatusSelesai, StatusBatal:
		return true
	}
	return false
}

// Project is one website build.
type Project struct {
	ID          int64      `json:"id"`
	ClientID    int64      `json:"client_id"`
	PackageID   *int64     `json:"package_id,omitempty"`
	DeveloperID *int64     `json:"developer_id,omitempty"`
	Name        string     `json:"name"`
	Status      Status     `json:"status"`
	Value       float64    `json:"value"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProjectForm is the JSON payload for creating or updating a project.
// Dates use the 2006-01-02 layout.
type ProjectForm struct {
	ClientID    int64   `json:"client_id" validate:"required,gt=0"`
	PackageID   *int64  `json:"package_id"`
	DeveloperID *int64  `json:"developer_id"`
	Name        string  `json:"name" validate:"required,min=2"`
	Status      Status  `json:"status"`
	Value       float64 `json:"value" validate:"gte=0"`
	StartDate   string  `json:"start_date"`
	Deadline    string  `json:"deadline"`
	Note        string  `json:"note"`
}

// Model applies the form over an existing record. Unparseable dates are
// dropped rather than zeroed.
func (f ProjectForm) Model(base Project) Project {
	base.ClientID = f.ClientID
	base.PackageID = f.PackageID
	base.DeveloperID = f.DeveloperID
	base.Name = f.Name
	base.Value = f.Value
	base.Note = f.Note
	if f.Status != "" {
		base.Status = f.Status
	}
	if base.Status == "" {
		base.Status = StatusAntrian
	}
	base.StartDate = parseDate(f.StartDate)
	base.Deadline = parseDate(f.Deadline)
	return base
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &d
}
