package database

import (
	"context"
	"fmt"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/google/uuid"
)

// AdminUserRepository handles admin user database operations
type AdminUserRepository struct {
	db DB
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

const adminUserColumns = `
	id, email, password_hash, full_name, role, employee_id, is_active,
	last_login_at, created_at, updated_at, created_by
`

// GetByEmail retrieves an admin user by email
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	query := `SELECT ` + adminUserColumns + ` FROM admin_users WHERE LOWER(email) = LOWER($1)`

	if err := r.db.Get(&admin, query, email); err != nil {
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}

	return &admin, nil
}

// GetByID retrieves an admin user by ID
func (r *AdminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	var admin models.AdminUser
	query := `SELECT ` + adminUserColumns + ` FROM admin_users WHERE id = $1`

	if err := r.db.Get(&admin, query, id); err != nil {
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}

	return &admin, nil
}

// Create creates a new admin user
func (r *AdminUserRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	if admin.Role == "" {
		admin.Role = models.AdminRoleAgent
	}

	query := `
		INSERT INTO admin_users (id, email, password_hash, full_name, role, employee_id, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
		admin.FullName,
		admin.Role,
		admin.EmployeeID,
		admin.IsActive,
		admin.CreatedBy,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	return nil
}

// UpdateLastLogin updates the last login timestamp
func (r *AdminUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE admin_users
		SET last_login_at = $1, updated_at = $1
		WHERE id = $2
	`

	if _, err := r.db.Exec(query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

// UpdatePassword updates the admin user's password
func (r *AdminUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE admin_users
		SET password_hash = $1, updated_at = $2
		WHERE id = $3
	`

	if _, err := r.db.Exec(query, passwordHash, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// SetActive enables or disables an admin account
func (r *AdminUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.db.Exec(`UPDATE admin_users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update admin status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errNotFound
	}

	return nil
}

// List retrieves all admin users
func (r *AdminUserRepository) List(ctx context.Context) ([]*models.AdminUser, error) {
	query := `SELECT ` + adminUserColumns + ` FROM admin_users ORDER BY created_at DESC`

	admins := []*models.AdminUser{}
	if err := r.db.Select(&admins, query); err != nil {
		return nil, fmt.Errorf("failed to list admin users: %w", err)
	}

	return admins, nil
}
