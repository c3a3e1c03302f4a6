package handlers

import (
	"fmt"

	"github.com/apraveen001/Travel-Agency-System/internal/middleware"
	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/apraveen001/Travel-Agency-System/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// auditor writes mutating requests to the audit log without failing them
type auditor struct {
	service *services.AuditService
}

func newAuditor(service *services.AuditService) auditor {
	return auditor{service: service}
}

// clientInfo returns the caller's address and user agent
func clientInfo(c *gin.Context) services.ClientInfo {
	return services.ClientInfo{IP: utils.ClientIP(c), UserAgent: utils.UserAgent(c)}
}

// record logs an action on an entity by the authenticated admin
func (a auditor) record(c *gin.Context, action, entityType string, entityID interface{}, details map[string]interface{}) {
	if a.service == nil {
		return
	}

	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		return
	}

	client := clientInfo(c)
	err := a.service.LogAction(userCtx.AdminID, action, entityType, fmt.Sprint(entityID), client.IP, client.UserAgent, details)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":      action,
			"entity_type": entityType,
		}).Error("Failed to write audit log")
	}
}
