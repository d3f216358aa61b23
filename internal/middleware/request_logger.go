package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/pantry-service/internal/service"
)

// probePaths are logged but never stored; they are polled every few seconds.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

// RequestLogger logs one line per request at a level derived from the
// status code and, with a logging service, stores the request in the logs
// collection.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path

		log := requestLog(c)
		log.WithLevel(levelForStatus(status)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status_code", status).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("HTTP request")

		if loggingService == nil {
			return
		}
		if _, probe := probePaths[path]; probe {
			return
		}

		entry := newAuditEntry(c, getLogLevel(status), "", "HTTP request", nil)
		entry.Timestamp = start
		entry.StatusCode = status
		entry.Duration = latency.Milliseconds()
		storeEntry(loggingService, entry)
	}
}

func levelForStatus(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// getLogLevel is levelForStatus as stored in model.LogEntry.Level.
func getLogLevel(status int) string {
	return levelForStatus(status).String()
}

