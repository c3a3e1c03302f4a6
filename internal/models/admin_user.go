package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole controls what an admin user may do
type AdminRole string

const (
	AdminRoleAdmin   AdminRole = "admin"
	AdminRoleManager AdminRole = "manager"
	AdminRoleAgent   AdminRole = "agent"
)

// IsValid reports whether the role is known
func (r AdminRole) IsValid() bool {
	return r == AdminRoleAdmin || r == AdminRoleManager || r == AdminRoleAgent
}

// AdminUser represents a staff login for the administration API
type AdminUser struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never expose password hash in JSON
	FullName     string     `json:"full_name" db:"full_name"`
	Role         AdminRole  `json:"role" db:"role"`
	EmployeeID   *int64     `json:"employee_id,omitempty" db:"employee_id"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
}

// AdminLoginRequest represents the login request payload
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AdminLoginResponse represents the login response
type AdminLoginResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
	AdminUser    *AdminUser `json:"admin_user"`
}

// AdminRefreshRequest represents the token refresh request
type AdminRefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AdminChangePasswordRequest represents the change password request
type AdminChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AdminCreateRequest represents the request to create a new admin user
type AdminCreateRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"full_name" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=admin manager agent"`
	EmployeeID *int64 `json:"employee_id,omitempty" binding:"omitempty,gt=0"`
}

// AdminRefreshToken is a stored refresh token. Only the SHA-256 hash is persisted.
type AdminRefreshToken struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	AdminUserID uuid.UUID  `json:"admin_user_id" db:"admin_user_id"`
	TokenHash   string     `json:"-" db:"token_hash"`
	IPAddress   *string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent   *string    `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at" db:"expires_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
	Revoked     bool       `json:"revoked" db:"revoked"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty" db:"revoked_at"`
}

// AuditLog is a recorded administrative action
type AuditLog struct {
	ID          int64      `json:"id" db:"id"`
	AdminUserID *uuid.UUID `json:"admin_user_id,omitempty" db:"admin_user_id"`
	Action      string     `json:"action" db:"action"`
	EntityType  string     `json:"entity_type" db:"entity_type"`
	EntityID    *string    `json:"entity_id,omitempty" db:"entity_id"`
	IPAddress   *string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent   *string    `json:"user_agent,omitempty" db:"user_agent"`
	Details     JSONMap    `json:"details,omitempty" db:"details"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
