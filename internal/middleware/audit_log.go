// Package middleware provides audit logging utilities.
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/guttosm/pantry-service/internal/service"
)

// AuditLog records a household action such as login, cooking or a stock
// change.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newAuditEntry(c, "info", actionType, message, fields)
	storeEntry(loggingService, entry)
}

// AuditLogError records a failed household action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newAuditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	storeEntry(loggingService, entry)
}

func newAuditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:     time.Now(),
		Level:         level,
		Message:       message,
		RequestID:     GetRequestID(c),
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		IP:            c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
		HouseholdID:   c.GetString(ContextHouseholdID),
		HouseholdName: c.GetString(ContextHouseholdName),
		ActionType:    actionType,
		Fields:        fields,
	}
	return entry
}

// storeEntry hands the entry to the async logger when one is running,
// otherwise it stores it from a short-lived goroutine.
func storeEntry(loggingService service.LoggingService, entry *model.LogEntry) {
	if al := GetAsyncLogger(); al != nil {
		al.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
