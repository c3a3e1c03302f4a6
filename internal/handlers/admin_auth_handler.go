package handlers

import (
	"net/http"
	"strconv"

	"github.com/apraveen001/Travel-Agency-System/internal/middleware"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AdminAuthHandler handles admin authentication and admin user management
type AdminAuthHandler struct {
	adminAuthService *services.AdminAuthService
	auditService     *services.AuditService
	audit            auditor
	logger           *logrus.Logger
}

// NewAdminAuthHandler creates a new admin auth handler
func NewAdminAuthHandler(adminAuthService *services.AdminAuthService, auditService *services.AuditService, logger *logrus.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		adminAuthService: adminAuthService,
		auditService:     auditService,
		audit:            newAuditor(auditService),
		logger:           logger,
	}
}

// Login handles admin login requests
// @Summary Admin login
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.AdminLoginRequest true "Login credentials"
// @Success 200 {object} models.AdminLoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.adminAuthService.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"email": req.Email,
			"error": err.Error(),
		}).Warn("Admin login failed")
		respondError(c, err, "admin user")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"admin_id": response.AdminUser.ID,
		"email":    response.AdminUser.Email,
	}).Info("Admin login successful")

	c.JSON(http.StatusOK, response)
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh access token
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param refreshRequest body models.AdminRefreshRequest true "Refresh token"
// @Success 200 {object} models.AdminLoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AdminAuthHandler) RefreshToken(c *gin.Context) {
	var req models.AdminRefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.adminAuthService.RefreshToken(c.Request.Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		h.logger.WithError(err).Warn("Token refresh failed")
		respondError(c, err, "refresh token")
		return
	}

	c.JSON(http.StatusOK, response)
}

// logoutRequest carries an optional refresh token; without one every session is revoked
type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout revokes one refresh token, or all of the caller's sessions
// @Summary Admin logout
// @Tags Admin Auth
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	user := middleware.MustGetUserContext(c)

	var req logoutRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	if err := h.adminAuthService.Logout(c.Request.Context(), user.AdminID, req.RefreshToken, clientInfo(c)); err != nil {
		respondError(c, err, "refresh token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetProfile returns the authenticated admin's profile
// @Summary Get admin profile
// @Tags Admin Auth
// @Security BearerAuth
// @Success 200 {object} models.AdminUser
// @Router /auth/profile [get]
func (h *AdminAuthHandler) GetProfile(c *gin.Context) {
	user := middleware.MustGetUserContext(c)

	admin, err := h.adminAuthService.GetAdminProfile(c.Request.Context(), user.AdminID)
	if err != nil {
		respondError(c, err, "admin user")
		return
	}

	c.JSON(http.StatusOK, admin)
}

// ChangePassword changes the authenticated admin's password
// @Summary Change admin password
// @Tags Admin Auth
// @Security BearerAuth
// @Param changePasswordRequest body models.AdminChangePasswordRequest true "Password change request"
// @Router /auth/password [put]
func (h *AdminAuthHandler) ChangePassword(c *gin.Context) {
	user := middleware.MustGetUserContext(c)

	var req models.AdminChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.adminAuthService.ChangePassword(c.Request.Context(), user.AdminID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err, "admin user")
		return
	}

	h.logger.WithField("admin_id", user.AdminID).Info("Admin password changed")
	h.audit.record(c, "change_password", "admin_user", user.AdminID, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// CreateAdmin creates a new admin user
// @Summary Create admin user
// @Tags Admin Users
// @Security BearerAuth
// @Param createRequest body models.AdminCreateRequest true "Admin creation request"
// @Success 201 {object} models.AdminUser
// @Failure 409 {object} ErrorResponse
// @Router /admin/users [post]
func (h *AdminAuthHandler) CreateAdmin(c *gin.Context) {
	user := middleware.MustGetUserContext(c)

	var req models.AdminCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.adminAuthService.CreateAdmin(c.Request.Context(), &req, &user.AdminID)
	if err != nil {
		respondError(c, err, "admin user")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"admin_id":   admin.ID,
		"email":      admin.Email,
		"created_by": user.AdminID,
	}).Info("Admin user created")
	h.audit.record(c, "create", "admin_user", admin.ID, map[string]interface{}{
		"email": admin.Email,
		"role":  admin.Role,
	})

	c.JSON(http.StatusCreated, admin)
}

// ListAdmins lists all admin users
// @Summary List admin users
// @Tags Admin Users
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminAuthHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminAuthService.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err, "admin user")
		return
	}

	c.JSON(http.StatusOK, admins)
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetActive enables or disables an admin account
// @Summary Enable or disable admin user
// @Tags Admin Users
// @Security BearerAuth
// @Router /admin/users/{id}/active [patch]
func (h *AdminAuthHandler) SetActive(c *gin.Context) {
	user := middleware.MustGetUserContext(c)

	adminID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid admin ID")
		return
	}
	if adminID == user.AdminID {
		badRequest(c, "You cannot change your own account status")
		return
	}

	var req setActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.adminAuthService.SetActive(c.Request.Context(), adminID, *req.IsActive); err != nil {
		respondError(c, err, "admin user")
		return
	}

	h.audit.record(c, "set_active", "admin_user", adminID, map[string]interface{}{"is_active": *req.IsActive})
	c.JSON(http.StatusOK, gin.H{"message": "Admin user updated", "is_active": *req.IsActive})
}

// ListAuditLogs returns recent audit events, optionally for one admin
// @Summary List audit logs
// @Tags Admin Users
// @Security BearerAuth
// @Param admin_id query string false "Admin user ID"
// @Param limit query int false "Maximum events (default 100)"
// @Router /admin/audit-logs [get]
func (h *AdminAuthHandler) ListAuditLogs(c *gin.Context) {
	var adminID *uuid.UUID
	if raw := c.Query("admin_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "Invalid admin_id")
			return
		}
		adminID = &id
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(n, 1000)
	}

	logs, err := h.auditService.GetRecentEvents(adminID, limit)
	if err != nil {
		respondError(c, err, "audit log")
		return
	}

	c.JSON(http.StatusOK, logs)
}
