// Package users administers staff profiles and their role assignments.
// Every endpoint here is admin only.
package users

import (
	"time"

	"github.com/studio-kirana/kirana-erp/internal/rbac"
)

// Profile is one staff account, roles included.
type Profile struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	IsActive  bool        `json:"is_active"`
	Roles     []rbac.Role `json:"roles"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ProfileForm is the JSON payload for creating or updating a profile. The
// password is only required on create; blank on update keeps the current
// hash.
type ProfileForm struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Password string `json:"password" validate:"omitempty,min=8"`
	IsActive *bool  `json:"is_active"`
}
