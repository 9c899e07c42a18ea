// Package clients tracks the agency's client roster. A client is created
// directly or by converting a closing lead.
package clients

import "time"

// Client is one customer of the agency.
type Client struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Domain      string    `json:"domain,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClientForm is the JSON payload for creating or updating a client.
type ClientForm struct {
	Name        string `json:"name" validate:"required,min=2"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
	Domain      string `json:"domain"`
	IsActive    *bool  `json:"is_active"`
}

// Model applies the form over an existing record. A missing is_active flag
// keeps the current value, defaulting to true for new clients.
func (f ClientForm) Model(base Client) Client {
	base.Name = f.Name
	base.ContactName = f.ContactName
	base.Phone = f.Phone
	base.Email = f.Email
	base.Address = f.Address
	base.Domain = f.Domain
	if f.IsActive != nil {
		base.IsActive = *f.IsActive
	} else if base.ID == 0 {
		base.IsActive = true
	}
	return base
}
