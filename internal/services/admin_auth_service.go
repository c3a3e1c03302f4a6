package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/pkg/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInvalidRefreshToken = errors.New("invalid or revoked refresh token")
	ErrIncorrectPassword   = errors.New("incorrect old password")
	ErrEmailTaken          = errors.New("an admin user with this email already exists")
)

// AdminAuthService handles admin authentication business logic
type AdminAuthService struct {
	adminRepo        *database.AdminUserRepository
	refreshTokenRepo *database.AdminRefreshTokenRepository
	jwtService       *jwt.Service
	rateLimit        *RateLimitService
	audit            *AuditService
	bcryptCost       int
	logger           *logrus.Logger
}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService(
	adminRepo *database.AdminUserRepository,
	refreshTokenRepo *database.AdminRefreshTokenRepository,
	jwtService *jwt.Service,
	rateLimit *RateLimitService,
	audit *AuditService,
	bcryptCost int,
	logger *logrus.Logger,
) *AdminAuthService {
	return &AdminAuthService{
		adminRepo:        adminRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtService:       jwtService,
		rateLimit:        rateLimit,
		audit:            audit,
		bcryptCost:       bcryptCost,
		logger:           logger,
	}
}

// ClientInfo describes where a request came from
type ClientInfo struct {
	IP        string
	UserAgent string
}

// Login authenticates an admin user and returns tokens
func (s *AdminAuthService) Login(ctx context.Context, email, password string, client ClientInfo) (*models.AdminLoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.rateLimit.CheckLoginRateLimit(email, client.IP); err != nil {
		var rateLimitErr *RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.auditErr(s.audit.LogRateLimitViolation(email, client.IP, client.UserAgent, rateLimitErr.Type, rateLimitErr.RetryAfter))
		}
		return nil, err
	}

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.failedLogin(nil, email, client, "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.IsActive {
		s.failedLogin(&admin.ID, email, client, "inactive account")
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.failedLogin(&admin.ID, email, client, "wrong password")
		return nil, ErrInvalidCredentials
	}

	response, err := s.issueTokens(admin, client)
	if err != nil {
		return nil, err
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		s.logger.WithError(err).WithField("admin_id", admin.ID).Warn("Failed to update last login")
	}
	if err := s.rateLimit.ClearEmail(email); err != nil {
		s.logger.WithError(err).Warn("Failed to clear login attempts")
	}
	s.auditErr(s.audit.LogLogin(&admin.ID, email, client.IP, client.UserAgent, true, ""))

	return response, nil
}

func (s *AdminAuthService) failedLogin(adminID *uuid.UUID, email string, client ClientInfo, reason string) {
	if err := s.rateLimit.RecordFailedLogin(email, client.IP); err != nil {
		s.logger.WithError(err).Warn("Failed to record login attempt")
	}
	s.auditErr(s.audit.LogLogin(adminID, email, client.IP, client.UserAgent, false, reason))
}

func (s *AdminAuthService) issueTokens(admin *models.AdminUser, client ClientInfo) (*models.AdminLoginResponse, error) {
	sub := jwt.Subject{
		AdminID:    admin.ID,
		Email:      admin.Email,
		Role:       string(admin.Role),
		EmployeeID: admin.EmployeeID,
	}

	accessToken, err := s.jwtService.GenerateAccessToken(sub)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(sub)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.jwtService.RefreshTokenExpiry())
	if err := s.refreshTokenRepo.Store(admin.ID, refreshToken, client.IP, client.UserAgent, expiresAt); err != nil {
		return nil, err
	}

	return &models.AdminLoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtService.AccessTokenExpiry().Seconds()),
		AdminUser:    admin,
	}, nil
}

// RefreshToken rotates a refresh token: the presented token is revoked and a new pair issued
func (s *AdminAuthService) RefreshToken(ctx context.Context, refreshToken string, client ClientInfo) (*models.AdminLoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.refreshTokenRepo.Get(refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidRefreshToken
	}

	admin, err := s.adminRepo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, ErrAccountInactive
	}

	if err := s.refreshTokenRepo.Revoke(refreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return s.issueTokens(admin, client)
}

// Logout revokes the refresh token. An unknown or already revoked token is not an error.
func (s *AdminAuthService) Logout(ctx context.Context, adminID uuid.UUID, refreshToken string, client ClientInfo) error {
	if refreshToken == "" {
		if err := s.refreshTokenRepo.RevokeAllForUser(adminID); err != nil {
			return err
		}
	} else if err := s.refreshTokenRepo.Revoke(refreshToken); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	s.auditErr(s.audit.LogAction(adminID, "logout", "admin_user", adminID.String(), client.IP, client.UserAgent, map[string]interface{}{
		"all_sessions": refreshToken == "",
	}))
	return nil
}

// ChangePassword changes an admin user's password and signs out every session
func (s *AdminAuthService) ChangePassword(ctx context.Context, adminID uuid.UUID, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrIncorrectPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.adminRepo.UpdatePassword(ctx, adminID, string(hashedPassword)); err != nil {
		return err
	}

	return s.refreshTokenRepo.RevokeAllForUser(adminID)
}

// CreateAdmin creates a new admin user
func (s *AdminAuthService) CreateAdmin(ctx context.Context, req *models.AdminCreateRequest, createdBy *uuid.UUID) (*models.AdminUser, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Role:         models.AdminRole(req.Role),
		EmployeeID:   req.EmployeeID,
		IsActive:     true,
		CreatedBy:    createdBy,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return admin, nil
}

// SetActive enables or disables an admin account. Disabling signs out every session.
func (s *AdminAuthService) SetActive(ctx context.Context, adminID uuid.UUID, active bool) error {
	if err := s.adminRepo.SetActive(ctx, adminID, active); err != nil {
		return err
	}
	if !active {
		return s.refreshTokenRepo.RevokeAllForUser(adminID)
	}
	return nil
}

// GetAdminProfile retrieves admin user profile
func (s *AdminAuthService) GetAdminProfile(ctx context.Context, adminID uuid.UUID) (*models.AdminUser, error) {
	return s.adminRepo.GetByID(ctx, adminID)
}

// ListAdmins retrieves all admin users
func (s *AdminAuthService) ListAdmins(ctx context.Context) ([]*models.AdminUser, error) {
	return s.adminRepo.List(ctx)
}

func (s *AdminAuthService) auditErr(err error) {
	if err != nil {
		s.logger.WithError(err).Warn("Failed to write audit log")
	}
}
