package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job names accepted by RunNow
const (
	JobCleanupRefreshTokens = "cleanup-refresh-tokens"
	JobCleanupLoginAttempts = "cleanup-login-attempts"
	JobCleanupAuditLogs     = "cleanup-audit-logs"
)

// ErrUnknownJob is returned by RunNow for a name that is not scheduled
var ErrUnknownJob = errors.New("unknown cron job")

// revokedTokenRetention is how long revoked refresh tokens are kept for inspection
const revokedTokenRetention = 7 * 24 * time.Hour

type cronJob struct {
	name     string
	schedule string
	run      func() (int64, error)
	entryID  cron.EntryID
	lastRun  time.Time
	lastRows int64
	lastErr  string
}

// CronService manages scheduled maintenance jobs
type CronService struct {
	cron   *cron.Cron
	logger *logrus.Logger

	mu   sync.Mutex
	jobs map[string]*cronJob
}

// NewCronService creates a new CronService
func NewCronService(
	refreshTokens *database.AdminRefreshTokenRepository,
	rateLimit *RateLimitService,
	audit *AuditService,
	auditRetentionDays int,
	logger *logrus.Logger,
) *CronService {
	s := &CronService{
		// Cron format: second minute hour day month weekday
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
		jobs:   make(map[string]*cronJob),
	}

	s.jobs[JobCleanupRefreshTokens] = &cronJob{
		name:     JobCleanupRefreshTokens,
		schedule: "0 0 3 * * *", // daily 03:00
		run: func() (int64, error) {
			return refreshTokens.DeleteExpired(time.Now(), revokedTokenRetention)
		},
	}
	s.jobs[JobCleanupLoginAttempts] = &cronJob{
		name:     JobCleanupLoginAttempts,
		schedule: "0 0 * * * *", // hourly
		run:      rateLimit.CleanupExpiredAttempts,
	}
	s.jobs[JobCleanupAuditLogs] = &cronJob{
		name:     JobCleanupAuditLogs,
		schedule: "0 0 4 * * 0", // Sundays 04:00
		run: func() (int64, error) {
			return audit.CleanupOldAuditLogs(time.Duration(auditRetentionDays) * 24 * time.Hour)
		},
	}

	return s
}

// Start schedules every job and starts the scheduler
func (s *CronService) Start() error {
	for _, name := range s.jobNames() {
		job := s.jobs[name]
		id, err := s.cron.AddFunc(job.schedule, func() { s.execute(job) })
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
		job.entryID = id
		s.logger.WithFields(logrus.Fields{"job": job.name, "schedule": job.schedule}).Info("Scheduled cron job")
	}

	s.cron.Start()
	s.logger.Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

// RunNow runs a job immediately and returns the number of rows it removed
func (s *CronService) RunNow(name string) (int64, error) {
	job, ok := s.jobs[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownJob, name)
	}
	return s.execute(job)
}

func (s *CronService) execute(job *cronJob) (int64, error) {
	start := time.Now()
	rows, err := job.run()

	s.mu.Lock()
	job.lastRun = start
	job.lastRows = rows
	job.lastErr = ""
	if err != nil {
		job.lastErr = err.Error()
	}
	s.mu.Unlock()

	fields := logrus.Fields{
		"job":         job.name,
		"rows":        rows,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Cron job failed")
		return 0, err
	}
	s.logger.WithFields(fields).Info("Cron job finished")
	return rows, nil
}

// JobStatus describes one scheduled job
type JobStatus struct {
	Name      string     `json:"name"`
	Schedule  string     `json:"schedule"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastRows  int64      `json:"last_rows"`
	LastError string     `json:"last_error,omitempty"`
}

// GetJobStatus returns the status of every job, sorted by name
func (s *CronService) GetJobStatus() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]JobStatus, 0, len(s.jobs))
	for _, name := range s.jobNames() {
		job := s.jobs[name]
		status := JobStatus{
			Name:      job.name,
			Schedule:  job.schedule,
			LastRows:  job.lastRows,
			LastError: job.lastErr,
		}
		if job.entryID != 0 {
			if next := s.cron.Entry(job.entryID).Next; !next.IsZero() {
				status.NextRun = &next
			}
		}
		if !job.lastRun.IsZero() {
			lastRun := job.lastRun
			status.LastRun = &lastRun
		}
		statuses = append(statuses, status)
	}

	return statuses
}

func (s *CronService) jobNames() []string {
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
