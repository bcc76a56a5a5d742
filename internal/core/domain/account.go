package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
	RoleEditor     = "editor"
)

// EndUser is a storefront customer account.
type EndUser struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Administrator is an admin-panel account. Role defaults to RoleAdmin.
type Administrator struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         string      `json:"role"`
	Permissions  Permissions `json:"permissions"`
	Phone        string      `json:"phone,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// IsValidRole reports whether role is one of the known administrator roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSuperAdmin, RoleEditor:
		return true
	}
	return false
}
