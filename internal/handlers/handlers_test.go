package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/middleware"
	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/apraveen001/Travel-Agency-System/pkg/events"
	"github.com/apraveen001/Travel-Agency-System/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAdmin = middleware.UserContext{
	AdminID: uuid.MustParse("6f1c8f0e-3c5b-4c8a-9a57-0c1d2e3f4a5b"),
	Email:   "ops@agency.test",
	Role:    "admin",
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
	if err := validator.RegisterBindings(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// setupTestDB creates a mock database for testing
func setupTestDB(t *testing.T) (*database.PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &database.PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")}, mock
}

// newRouter returns an engine whose requests carry the test admin
func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, testAdmin)
		c.Next()
	})
	return r
}

func doRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", invalid(errors.New("city is required")), http.StatusBadRequest, "validation_error"},
		{"not found", fmt.Errorf("failed to get flight: %w", sql.ErrNoRows), http.StatusNotFound, "not_found"},
		{"dependents", &database.DependentsError{Entity: "flight", Dependents: map[string]int{"bookings": 1}}, http.StatusConflict, "has_dependents"},
		{"unique", &pq.Error{Code: "23505"}, http.StatusConflict, "conflict"},
		{"foreign key", fmt.Errorf("insert: %w", &pq.Error{Code: "23503"}), http.StatusBadRequest, "invalid_reference"},
		{"closed booking", services.ErrBookingClosed, http.StatusConflict, "invalid_state"},
		{"transition", services.ErrInvalidStatusTransition, http.StatusConflict, "invalid_state"},
		{"reviewer", services.ErrPassengerNotOnBooking, http.StatusBadRequest, "validation_error"},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"inactive", services.ErrAccountInactive, http.StatusForbidden, "account_inactive"},
		{"unexpected", errors.New("connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err, "flight")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["error"])
		})
	}
}

func TestRespondError_RateLimitSetsRetryAfter(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondError(c, &services.RateLimitError{
		Message:    "Too many login attempts",
		RetryAfter: time.Now().Add(90 * time.Second),
	}, "admin user")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestParamID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-4"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := paramID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func setupLocationRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	db, mock := setupTestDB(t)
	r := newRouter()
	NewLocationHandler(database.NewLocationRepository(db), services.NewAuditService(db, true)).
		Register(r.Group("/locations"))
	return r, mock
}

func TestLocationHandler_List(t *testing.T) {
	r, mock := setupLocationRouter(t)

	mock.ExpectQuery(`FROM locations`).
		WithArgs("paris", "%paris%", 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "city", "state", "country"}).
			AddRow(1, "Paris", nil, "France"))

	w := doRequest(r, http.MethodGet, "/locations?q=paris", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var locations []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &locations))
	require.Len(t, locations, 1)
	assert.Equal(t, "Paris", locations[0]["city"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationHandler_GetNotFound(t *testing.T) {
	r, mock := setupLocationRouter(t)

	mock.ExpectQuery(`FROM locations WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	w := doRequest(r, http.MethodGet, "/locations/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "location not found", decode(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationHandler_CreateRejectsBlankCity(t *testing.T) {
	r, mock := setupLocationRouter(t)

	w := doRequest(r, http.MethodPost, "/locations", map[string]string{"city": "   ", "country": "France"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "city is required", decode(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationHandler_CreateWritesAuditLog(t *testing.T) {
	r, mock := setupLocationRouter(t)

	mock.ExpectQuery(`INSERT INTO locations`).
		WithArgs("Lyon", nil, "France").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`INSERT INTO audit_logs`).
		WithArgs(testAdmin.AdminID, "create", "location", "7", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := doRequest(r, http.MethodPost, "/locations", map[string]string{"city": "Lyon", "country": "France"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 7, decode(t, w)["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationHandler_DeleteWithDependents(t *testing.T) {
	r, mock := setupLocationRouter(t)

	counts := []int{0, 3, 0, 0, 1}
	for _, n := range counts {
		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
	}

	w := doRequest(r, http.MethodDelete, "/locations/5", nil)

	require.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, map[string]interface{}{"flights": float64(3), "activities": float64(1)}, body["dependents"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationHandler_DeleteGuard(t *testing.T) {
	db, mock := setupTestDB(t)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, middleware.UserContext{AdminID: uuid.New(), Role: "agent"})
		c.Next()
	})
	NewLocationHandler(database.NewLocationRepository(db), nil).
		Register(r.Group("/locations"), middleware.RequireRole("admin", "manager"))

	w := doRequest(r, http.MethodDelete, "/locations/5", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func setupBookingRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	db, mock := setupTestDB(t)
	logger := quietLogger()
	itineraries := services.NewItineraryService(
		database.NewPassengerRepository(db),
		database.NewItineraryRepository(db),
		nil, time.Minute, logger,
	)
	bookingService := services.NewBookingService(db, itineraries, events.NewLogPublisher(logger), logger)

	r := newRouter()
	h := NewBookingHandler(bookingService, nil, logger)
	h.Register(r.Group("/bookings"))
	r.PATCH("/payments/:id/status", h.UpdatePaymentStatus)
	r.DELETE("/reviews/:id", h.DeleteReview)
	return r, mock
}

func TestBookingHandler_RequestValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
		body interface{}
	}{
		{"unknown status", "/bookings/1/status", map[string]string{"status": "Shipped"}},
		{"check-out before check-in", "/bookings/1/accommodations", map[string]interface{}{
			"accommodation_id": 2, "check_in_date": "2026-05-10", "check_out_date": "2026-05-08",
		}},
		{"leg kind mismatch", "/bookings/1/transportations", map[string]interface{}{
			"kind": "Cruise", "flight_id": 3,
		}},
		{"two transport ids", "/bookings/1/transportations", map[string]interface{}{
			"kind": "Flight", "flight_id": 3, "cruise_id": 4,
		}},
		{"bad activity date", "/bookings/1/activities", map[string]interface{}{
			"activity_id": 2, "scheduled_date": "10/05/2026",
		}},
		{"card without number", "/bookings/1/payments", map[string]interface{}{
			"amount": 120.5, "payment_type": "Credit Card", "expiry_date": "08/29",
		}},
		{"duplicate passengers", "/bookings", map[string]interface{}{
			"passenger_ids": []int{4, 4},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mock := setupBookingRouter(t)

			method := http.MethodPost
			if tt.name == "unknown status" {
				method = http.MethodPatch
			}
			w := doRequest(r, method, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingHandler_ListRejectsUnknownStatus(t *testing.T) {
	r, mock := setupBookingRouter(t)

	w := doRequest(r, http.MethodGet, "/bookings?status=Lost", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingHandler_UpdateStatusOfClosedBooking(t *testing.T) {
	r, mock := setupBookingRouter(t)

	mock.ExpectQuery(`FROM bookings b(.+)WHERE b.id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total_cost", "status", "passenger_count"}).
			AddRow(9, 450.0, "Cancelled", 2))

	w := doRequest(r, http.MethodPatch, "/bookings/9/status", map[string]string{"status": "Confirmed"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", decode(t, w)["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingHandler_GetMissingBooking(t *testing.T) {
	r, mock := setupBookingRouter(t)

	mock.ExpectQuery(`FROM bookings b(.+)WHERE b.id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	w := doRequest(r, http.MethodGet, "/bookings/404", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking not found", decode(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingHandler_EmptyUpdateOfMissingBooking(t *testing.T) {
	r, mock := setupBookingRouter(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM bookings WHERE id = \$1\)`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	w := doRequest(r, http.MethodPut, "/bookings/404", map[string]interface{}{})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking not found", decode(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func setupTravelGroupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	db, mock := setupTestDB(t)
	r := newRouter()
	NewTravelGroupHandler(database.NewTravelGroupRepository(db), nil).Register(r.Group("/travel-groups"))
	return r, mock
}

func TestTravelGroupHandler_Delete(t *testing.T) {
	r, mock := setupTravelGroupRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM group_members WHERE group_id = \$1`).
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM travel_groups WHERE id = \$1`).
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doRequest(r, http.MethodDelete, "/travel-groups/12", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "travel group deleted", decode(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTravelGroupHandler_AddMemberToMissingGroup(t *testing.T) {
	r, mock := setupTravelGroupRouter(t)

	mock.ExpectQuery(`FROM travel_groups g(.+)WHERE g.id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	w := doRequest(r, http.MethodPost, "/travel-groups/404/members", map[string]int{"passenger_id": 7})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "travel group not found", decode(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTravelGroupHandler_RemoveMissingMember(t *testing.T) {
	r, mock := setupTravelGroupRouter(t)

	mock.ExpectExec(`DELETE FROM group_members WHERE group_id = \$1 AND passenger_id = \$2`).
		WithArgs(int64(12), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := doRequest(r, http.MethodDelete, "/travel-groups/12/members/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "group member not found", decode(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryHandler_UnknownPassenger(t *testing.T) {
	db, mock := setupTestDB(t)
	service := services.NewItineraryService(
		database.NewPassengerRepository(db),
		database.NewItineraryRepository(db),
		nil, time.Minute, quietLogger(),
	)
	r := newRouter()
	r.GET("/passengers/:id/itinerary", NewItineraryHandler(service).GetPassengerItinerary)

	mock.ExpectQuery(`FROM passengers WHERE id = \$1`).
		WithArgs(int64(12)).
		WillReturnError(sql.ErrNoRows)

	w := doRequest(r, http.MethodGet, "/passengers/12/itinerary", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "passenger not found", decode(t, w)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCronHandler(t *testing.T) {
	db, mock := setupTestDB(t)
	cronService := services.NewCronService(
		database.NewAdminRefreshTokenRepository(db),
		services.NewRateLimitService(db, services.DefaultRateLimitConfig()),
		services.NewAuditService(db, false),
		90,
		quietLogger(),
	)
	h := NewCronHandler(cronService, nil)
	r := newRouter()
	r.GET("/admin/cron/status", h.GetStatus)
	r.POST("/admin/cron/:job/run", h.RunJob)

	t.Run("status lists every job", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/admin/cron/status", nil)

		require.Equal(t, http.StatusOK, w.Code)
		jobs, ok := decode(t, w)["jobs"].([]interface{})
		require.True(t, ok)
		assert.Len(t, jobs, 3)
	})

	t.Run("unknown job", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/admin/cron/reindex/run", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("run audit cleanup", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM audit_logs WHERE created_at < \$1`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 4))

		w := doRequest(r, http.MethodPost, "/admin/cron/"+services.JobCleanupAuditLogs+"/run", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 4, decode(t, w)["rows_affected"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdminAuthHandler_AdminUserManagement(t *testing.T) {
	db, mock := setupTestDB(t)
	audit := services.NewAuditService(db, true)
	h := NewAdminAuthHandler(nil, audit, quietLogger())
	r := newRouter()
	r.PATCH("/admin/users/:id/active", h.SetActive)
	r.GET("/admin/audit-logs", h.ListAuditLogs)

	t.Run("cannot disable own account", func(t *testing.T) {
		w := doRequest(r, http.MethodPatch, "/admin/users/"+testAdmin.AdminID.String()+"/active",
			map[string]bool{"is_active": false})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid admin id", func(t *testing.T) {
		w := doRequest(r, http.MethodPatch, "/admin/users/not-a-uuid/active", map[string]bool{"is_active": false})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("audit log filter must be a uuid", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/admin/audit-logs?admin_id=42", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("audit log limit is capped", func(t *testing.T) {
		mock.ExpectQuery(`FROM audit_logs`).
			WithArgs(sqlmock.AnyArg(), 1000).
			WillReturnRows(sqlmock.NewRows([]string{"id", "action", "entity_type", "created_at"}).
				AddRow(1, "delete", "flight", time.Now()))

		w := doRequest(r, http.MethodGet, "/admin/audit-logs?limit=5000", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
