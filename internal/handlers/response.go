package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// validationError marks a request that broke a business rule
type validationError struct {
	err error
}

func (e *validationError) Error() string { return e.err.Error() }

func (e *validationError) Unwrap() error { return e.err }

// invalid wraps a Validate() failure so it is reported as 400
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &validationError{err: err}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: message})
}

// bindJSON binds the request body and answers 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err.Error())
		return false
	}
	return true
}

// bindList reads the common list query parameters
func bindList(c *gin.Context, params *models.ListParams) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		badRequest(c, err.Error())
		return false
	}
	params.Normalize()
	return true
}

// paramID parses a positive integer path parameter
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// respondError maps service and repository errors to HTTP responses
func respondError(c *gin.Context, err error, entity string) {
	var (
		validationErr *validationError
		dependentsErr *database.DependentsError
		rateLimitErr  *services.RateLimitError
	)

	switch {
	case errors.As(err, &validationErr):
		badRequest(c, validationErr.Error())
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: entity + " not found"})
	case errors.As(err, &dependentsErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "has_dependents",
			"message":    dependentsErr.Error(),
			"dependents": dependentsErr.Dependents,
		})
	case errors.As(err, &rateLimitErr):
		c.Header("Retry-After", strconv.Itoa(int(rateLimitErr.RetryAfterSeconds())))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate_limited",
			"message":     rateLimitErr.Message,
			"retry_after": rateLimitErr.RetryAfter,
		})
	case database.IsUniqueViolation(err), errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict", Message: entity + " already exists"})
	case database.IsForeignKeyViolation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_reference", Message: "A referenced record does not exist"})
	case errors.Is(err, services.ErrInvalidStatusTransition), errors.Is(err, services.ErrBookingClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "invalid_state", Message: err.Error()})
	case errors.Is(err, services.ErrPassengerNotOnBooking), errors.Is(err, services.ErrIncorrectPassword):
		badRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: err.Error()})
	case errors.Is(err, services.ErrAccountInactive):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "account_inactive", Message: err.Error()})
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"entity": entity,
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Something went wrong"})
	}
}
