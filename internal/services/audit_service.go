package services

import (
	"fmt"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/internal/utils"
	"github.com/google/uuid"
)

// AuditService writes administrative actions and security events to audit_logs
type AuditService struct {
	db      database.DB
	enabled bool
}

// NewAuditService creates a new audit service. A disabled service drops every event.
func NewAuditService(db database.DB, enabled bool) *AuditService {
	return &AuditService{db: db, enabled: enabled}
}

// AuditEvent represents an event to be logged
type AuditEvent struct {
	AdminUserID *uuid.UUID             // nil for pre-authentication events
	Action      string                 // e.g. "login_success", "create", "delete"
	EntityType  string                 // e.g. "admin_user", "booking", "passenger"
	EntityID    string                 // empty when the event has no single entity
	IPAddress   string
	UserAgent   string
	Details     map[string]interface{} // stored as JSONB
}

// LogLogin records a login attempt
func (s *AuditService) LogLogin(adminID *uuid.UUID, email, ipAddress, userAgent string, success bool, reason string) error {
	details := map[string]interface{}{
		"email":   email,
		"success": success,
	}
	if reason != "" {
		details["reason"] = reason
	}

	action := "login_failed"
	if success {
		action = "login_success"
	}

	return s.Log(AuditEvent{
		AdminUserID: adminID,
		Action:      action,
		EntityType:  "admin_user",
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Details:     details,
	})
}

// LogRateLimitViolation records a refused login
func (s *AuditService) LogRateLimitViolation(email, ipAddress, userAgent, limitType string, retryAfter time.Time) error {
	return s.Log(AuditEvent{
		Action:     "rate_limit_violation",
		EntityType: "admin_user",
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Details: map[string]interface{}{
			"email":       email,
			"limit_type":  limitType,
			"retry_after": retryAfter,
		},
	})
}

// LogAction records a change made through the API
func (s *AuditService) LogAction(adminID uuid.UUID, action, entityType, entityID, ipAddress, userAgent string, details map[string]interface{}) error {
	return s.Log(AuditEvent{
		AdminUserID: &adminID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Details:     details,
	})
}

// Log writes one event. The parsed user agent is added to the details.
func (s *AuditService) Log(event AuditEvent) error {
	if !s.enabled {
		return nil
	}

	details := models.JSONMap{}
	for k, v := range event.Details {
		details[k] = v
	}
	details["device_info"] = utils.ParseUserAgent(event.UserAgent).Map()

	var entityID interface{}
	if event.EntityID != "" {
		entityID = event.EntityID
	}

	query := `
		INSERT INTO audit_logs (admin_user_id, action, entity_type, entity_id, ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := s.db.Exec(query,
		event.AdminUserID,
		event.Action,
		event.EntityType,
		entityID,
		event.IPAddress,
		event.UserAgent,
		details,
	)
	if err != nil {
		return fmt.Errorf("failed to log audit event: %w", err)
	}

	return nil
}

// GetRecentEvents returns the latest events, optionally for one admin user
func (s *AuditService) GetRecentEvents(adminID *uuid.UUID, limit int) ([]models.AuditLog, error) {
	query := `
		SELECT id, admin_user_id, action, entity_type, entity_id, ip_address, user_agent, details, created_at
		FROM audit_logs
		WHERE ($1::uuid IS NULL OR admin_user_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	logs := []models.AuditLog{}
	if err := s.db.Select(&logs, query, adminID, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent events: %w", err)
	}

	return logs, nil
}

// CleanupOldAuditLogs removes audit logs older than the specified duration
func (s *AuditService) CleanupOldAuditLogs(olderThan time.Duration) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM audit_logs WHERE created_at < $1`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old audit logs: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
