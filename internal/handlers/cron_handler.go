package handlers

import (
	"errors"
	"net/http"

	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/gin-gonic/gin"
)

// CronHandler exposes the maintenance scheduler
type CronHandler struct {
	cronService *services.CronService
	audit       auditor
}

// NewCronHandler creates a new cron handler
func NewCronHandler(cronService *services.CronService, audit *services.AuditService) *CronHandler {
	return &CronHandler{cronService: cronService, audit: newAuditor(audit)}
}

// GetStatus handles GET /admin/cron/status
func (h *CronHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.cronService.GetJobStatus()})
}

// RunJob handles POST /admin/cron/:job/run
func (h *CronHandler) RunJob(c *gin.Context) {
	job := c.Param("job")

	rows, err := h.cronService.RunNow(job)
	if err != nil {
		if errors.Is(err, services.ErrUnknownJob) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})
			return
		}
		respondError(c, err, "cron job")
		return
	}

	h.audit.record(c, "run_job", "cron_job", job, map[string]interface{}{"rows_affected": rows})
	c.JSON(http.StatusOK, gin.H{"job": job, "rows_affected": rows})
}
