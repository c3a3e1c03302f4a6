package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCronService(t *testing.T) (*CronService, sqlmock.Sqlmock) {
	db, mock := newServiceMockDB(t)
	service := NewCronService(
		database.NewAdminRefreshTokenRepository(db),
		NewRateLimitService(db, DefaultRateLimitConfig()),
		NewAuditService(db, true),
		90,
		quietLogger(),
	)
	return service, mock
}

func findStatus(t *testing.T, statuses []JobStatus, name string) JobStatus {
	for _, s := range statuses {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("job %s not found", name)
	return JobStatus{}
}

func TestCronService_RunNow(t *testing.T) {
	service, mock := newTestCronService(t)

	mock.ExpectExec("DELETE FROM admin_login_attempts").
		WillReturnResult(sqlmock.NewResult(0, 3))

	rows, err := service.RunNow(JobCleanupLoginAttempts)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rows)

	status := findStatus(t, service.GetJobStatus(), JobCleanupLoginAttempts)
	require.NotNil(t, status.LastRun)
	assert.Equal(t, int64(3), status.LastRows)
	assert.Empty(t, status.LastError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCronService_RunNowRecordsFailure(t *testing.T) {
	service, mock := newTestCronService(t)

	mock.ExpectExec("DELETE FROM audit_logs").
		WillReturnError(errors.New("connection reset"))

	_, err := service.RunNow(JobCleanupAuditLogs)
	assert.Error(t, err)

	status := findStatus(t, service.GetJobStatus(), JobCleanupAuditLogs)
	assert.Contains(t, status.LastError, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCronService_RunNowUnknownJob(t *testing.T) {
	service, _ := newTestCronService(t)

	_, err := service.RunNow("rebuild-everything")
	assert.ErrorIs(t, err, ErrUnknownJob)
	assert.EqualError(t, err, `unknown cron job "rebuild-everything"`)
}

func TestCronService_StartSchedulesEveryJob(t *testing.T) {
	service, _ := newTestCronService(t)

	require.NoError(t, service.Start())
	defer service.Stop()

	statuses := service.GetJobStatus()
	require.Len(t, statuses, 3)
	assert.Equal(t, JobCleanupAuditLogs, statuses[0].Name)
	for _, s := range statuses {
		assert.NotNil(t, s.NextRun, s.Name)
		assert.Nil(t, s.LastRun, s.Name)
	}
}
