package database

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/google/uuid"
)

// AdminRefreshTokenRepository handles admin refresh token database operations
type AdminRefreshTokenRepository struct {
	db DB
}

// NewAdminRefreshTokenRepository creates a new admin refresh token repository
func NewAdminRefreshTokenRepository(db DB) *AdminRefreshTokenRepository {
	return &AdminRefreshTokenRepository{db: db}
}

// HashToken returns the hex SHA-256 of a token, which is the only form stored
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Store saves a refresh token hash for an admin user
func (r *AdminRefreshTokenRepository) Store(adminUserID uuid.UUID, token, ipAddress, userAgent string, expiresAt time.Time) error {
	query := `
		INSERT INTO admin_refresh_tokens (admin_user_id, token_hash, ip_address, user_agent, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.db.Exec(query, adminUserID, HashToken(token), nullable(ipAddress), nullable(userAgent), expiresAt); err != nil {
		return fmt.Errorf("failed to store admin refresh token: %w", err)
	}

	return nil
}

// Get retrieves a stored refresh token by its plain value
func (r *AdminRefreshTokenRepository) Get(token string) (*models.AdminRefreshToken, error) {
	var stored models.AdminRefreshToken
	query := `
		SELECT id, admin_user_id, token_hash, ip_address, user_agent, created_at,
		       expires_at, last_used_at, revoked, revoked_at
		FROM admin_refresh_tokens
		WHERE token_hash = $1
	`

	if err := r.db.Get(&stored, query, HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to get admin refresh token: %w", err)
	}

	return &stored, nil
}

// Revoke revokes a single refresh token
func (r *AdminRefreshTokenRepository) Revoke(token string) error {
	query := `
		UPDATE admin_refresh_tokens
		SET revoked = TRUE, revoked_at = $1
		WHERE token_hash = $2 AND revoked = FALSE
	`

	result, err := r.db.Exec(query, time.Now(), HashToken(token))
	if err != nil {
		return fmt.Errorf("failed to revoke admin token: %w", err)
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

// RevokeAllForUser revokes every active token of an admin user
func (r *AdminRefreshTokenRepository) RevokeAllForUser(adminUserID uuid.UUID) error {
	query := `
		UPDATE admin_refresh_tokens
		SET revoked = TRUE, revoked_at = $1
		WHERE admin_user_id = $2 AND revoked = FALSE
	`

	if _, err := r.db.Exec(query, time.Now(), adminUserID); err != nil {
		return fmt.Errorf("failed to revoke admin user tokens: %w", err)
	}

	return nil
}

// TouchLastUsed updates the last_used_at timestamp
func (r *AdminRefreshTokenRepository) TouchLastUsed(token string) error {
	query := `UPDATE admin_refresh_tokens SET last_used_at = $1 WHERE token_hash = $2`

	if _, err := r.db.Exec(query, time.Now(), HashToken(token)); err != nil {
		return fmt.Errorf("failed to update admin token last used timestamp: %w", err)
	}

	return nil
}

// DeleteExpired removes expired tokens and revoked tokens older than revokedRetention
func (r *AdminRefreshTokenRepository) DeleteExpired(now time.Time, revokedRetention time.Duration) (int64, error) {
	query := `
		DELETE FROM admin_refresh_tokens
		WHERE expires_at < $1 OR (revoked = TRUE AND revoked_at < $2)
	`

	result, err := r.db.Exec(query, now, now.Add(-revokedRetention))
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup admin tokens: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
