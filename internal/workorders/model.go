// Package workorders issues SPK (surat perintah kerja) documents assigning
// a project to a developer. Numbers follow SPK/<roman month>/<year>/<seq>.
package workorders

import (
	"fmt"
	"time"
)

// SPK is one work order.
type SPK struct {
	ID            int64     `json:"id"`
	Number        string    `json:"number"`
	ProjectID     int64     `json:"project_id"`
	ProjectName   string    `json:"project_name,omitempty"`
	DeveloperID   int64     `json:"developer_id"`
	DeveloperName string    `json:"developer_name,omitempty"`
	Description   string    `json:"description,omitempty"`
	IssuedAt      time.Time `json:"issued_at"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SPKForm is the JSON payload for issuing a work order. The number is
// generated server-side.
type SPKForm struct {
	ProjectID   int64  `json:"project_id" validate:"required,gt=0"`
	DeveloperID int64  `json:"developer_id" validate:"required,gt=0"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

func (f SPKForm) Model(base SPK) SPK {
	base.ProjectID = f.ProjectID
	base.DeveloperID = f.DeveloperID
	base.Description = f.Description
	if f.Deadline != "" {
		if d, err := time.Parse("2006-01-02", f.Deadline); err == nil {
			base.Deadline = &d
		}
	}
	return base
}

var romanMonths = [12]string{
	"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII",
}

// RomanMonth renders a month number as its roman numeral for SPK numbers.
func RomanMonth(m time.Month) string {
	return romanMonths[int(m)-1]
}

// FormatNumber renders a work order number, e.g. SPK/V/2024/003.
func FormatNumber(issued time.Time, seq int64) string {
	return fmt.Sprintf("SPK/%s/%d/%03d", RomanMonth(issued.Month()), issued.Year(), seq)
}
