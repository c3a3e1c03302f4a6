package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/config"
	"github.com/apraveen001/Travel-Agency-System/internal/database"
)

// RateLimitService limits admin login attempts per email and per IP
type RateLimitService struct {
	db     database.DB
	config RateLimitConfig
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	MaxEmailAttempts int           // Max login attempts per email
	EmailWindow      time.Duration // Time window for the email limit
	MaxIPAttempts    int           // Max login attempts per IP
	IPWindow         time.Duration // Time window for the IP limit
}

// DefaultRateLimitConfig returns the default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxEmailAttempts: 5,
		EmailWindow:      15 * time.Minute,
		MaxIPAttempts:    20,
		IPWindow:         time.Hour,
	}
}

// RateLimitConfigFrom reads the limits from the security configuration
func RateLimitConfigFrom(cfg config.SecurityConfig) RateLimitConfig {
	return RateLimitConfig{
		MaxEmailAttempts: cfg.MaxLoginPerEmail,
		EmailWindow:      cfg.LoginEmailWindow,
		MaxIPAttempts:    cfg.MaxLoginPerIP,
		IPWindow:         cfg.LoginIPWindow,
	}
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(db database.DB, cfg RateLimitConfig) *RateLimitService {
	return &RateLimitService{db: db, config: cfg}
}

// RateLimitError represents a rate limit exceeded error
type RateLimitError struct {
	Message    string
	RetryAfter time.Time
	Type       string // "email" or "ip"
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// RetryAfterSeconds is the wait before the next attempt, never negative
func (e *RateLimitError) RetryAfterSeconds() int64 {
	wait := int64(time.Until(e.RetryAfter).Seconds())
	if wait < 0 {
		return 0
	}
	return wait
}

// CheckLoginRateLimit returns a *RateLimitError when the email or IP has too many recent attempts
func (s *RateLimitService) CheckLoginRateLimit(email, ip string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if email != "" {
		count, lastAttempt, err := s.getAttemptCount(email, "email", s.config.EmailWindow)
		if err != nil {
			return fmt.Errorf("failed to check email rate limit: %w", err)
		}
		if count >= s.config.MaxEmailAttempts {
			retryAfter := lastAttempt.Add(s.config.EmailWindow)
			return &RateLimitError{
				Message:    fmt.Sprintf("Too many login attempts for this account. Please try again after %s", retryAfter.Format("15:04:05")),
				RetryAfter: retryAfter,
				Type:       "email",
			}
		}
	}

	if ip != "" {
		count, lastAttempt, err := s.getAttemptCount(ip, "ip", s.config.IPWindow)
		if err != nil {
			return fmt.Errorf("failed to check IP rate limit: %w", err)
		}
		if count >= s.config.MaxIPAttempts {
			retryAfter := lastAttempt.Add(s.config.IPWindow)
			return &RateLimitError{
				Message:    fmt.Sprintf("Too many login attempts from this IP address. Please try again after %s", retryAfter.Format("15:04:05")),
				RetryAfter: retryAfter,
				Type:       "ip",
			}
		}
	}

	return nil
}

func (s *RateLimitService) getAttemptCount(identifier, identifierType string, window time.Duration) (int, time.Time, error) {
	query := `
		SELECT COUNT(*), COALESCE(MAX(created_at), NOW())
		FROM admin_login_attempts
		WHERE identifier = $1
		  AND identifier_type = $2
		  AND created_at > $3
	`

	var count int
	var lastAttempt time.Time

	err := s.db.QueryRow(query, identifier, identifierType, time.Now().Add(-window)).Scan(&count, &lastAttempt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, time.Time{}, err
	}

	return count, lastAttempt, nil
}

// RecordFailedLogin records a failed attempt against both the email and the IP
func (s *RateLimitService) RecordFailedLogin(email, ip string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if email != "" {
		if err := s.recordAttempt(email, "email"); err != nil {
			return fmt.Errorf("failed to record email attempt: %w", err)
		}
	}
	if ip != "" {
		if err := s.recordAttempt(ip, "ip"); err != nil {
			return fmt.Errorf("failed to record IP attempt: %w", err)
		}
	}

	return nil
}

// ClearEmail forgets the attempts of an email after a successful login
func (s *RateLimitService) ClearEmail(email string) error {
	query := `DELETE FROM admin_login_attempts WHERE identifier = $1 AND identifier_type = 'email'`
	if _, err := s.db.Exec(query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return fmt.Errorf("failed to clear login attempts: %w", err)
	}
	return nil
}

func (s *RateLimitService) recordAttempt(identifier, identifierType string) error {
	query := `
		INSERT INTO admin_login_attempts (identifier, identifier_type, created_at)
		VALUES ($1, $2, NOW())
	`
	_, err := s.db.Exec(query, identifier, identifierType)
	return err
}

// CleanupExpiredAttempts removes attempts older than the longest window
func (s *RateLimitService) CleanupExpiredAttempts() (int64, error) {
	maxWindow := s.config.IPWindow
	if s.config.EmailWindow > maxWindow {
		maxWindow = s.config.EmailWindow
	}

	result, err := s.db.Exec(`DELETE FROM admin_login_attempts WHERE created_at < $1`, time.Now().Add(-maxWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup login attempts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
