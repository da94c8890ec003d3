package models

import "time"

// Admin roles stored on admin_users records.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AdminUser represents a member of the administration panel.
type AdminUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsSuperAdmin reports whether the user holds the super admin role.
func (a AdminUser) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}
