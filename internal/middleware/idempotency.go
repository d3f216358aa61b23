package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/i18n"
)

const (
	// IdempotencyKeyHeader is the request header carrying the client key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a finished response is replayed.
	IdempotencyKeyTTL = 5 * time.Minute

	maxIdempotencyKeyLength = 255
	defaultIdempotencyItems = 10000
)

// replayedHeaders are copied from the original response on replay.
var replayedHeaders = []string{"Content-Type", "Content-Disposition", "Location"}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	Enabled bool
}

// DefaultIdempotencyConfig returns an enabled configuration with its own
// cache.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(IdempotencyKeyTTL, defaultIdempotencyItems),
		Enabled: true,
	}
}

// Idempotency makes pantry writes safe to retry. A write sent with an
// Idempotency-Key runs once per household; repeating it replays the first
// successful answer instead of adding a lot or cooking a recipe again.
// DELETE is covered because shopping list entries are removed by position.
//
// Reusing a key for a different request is answered with 422, and a key
// whose first request is still running with 409. Failed requests release
// their key.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if !isWriteMethod(c.Request.Method) {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortIdempotency(c, http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequest)
			return
		}

		cacheKey := c.GetString(ContextHouseholdID) + "\x00" + key
		fingerprint := requestFingerprint(c.Request)

		stored, reserved := cfg.Cache.begin(cacheKey, fingerprint)
		if !reserved {
			switch {
			case stored.Fingerprint != fingerprint:
				abortIdempotency(c, http.StatusUnprocessableEntity, dto.ErrCodeIdempotencyMismatch, i18n.ErrKeyIdempotencyMismatch)
			case stored.Pending:
				abortIdempotency(c, http.StatusConflict, dto.ErrCodeConflict, i18n.ErrKeyIdempotencyInProgress)
			default:
				replay(c, stored)
			}
			return
		}

		completed := false
		defer func() {
			if !completed {
				cfg.Cache.release(cacheKey)
			}
		}()

		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		headers := make(map[string]string, len(replayedHeaders))
		for _, h := range replayedHeaders {
			if v := writer.Header().Get(h); v != "" {
				headers[h] = v
			}
		}
		cfg.Cache.complete(cacheKey, &cachedResponse{
			Fingerprint: fingerprint,
			StatusCode:  status,
			Headers:     headers,
			Body:        writer.body.Bytes(),
		})
		completed = true
	}
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// requestFingerprint hashes method, path and body. The body is restored
// for the handler.
func requestFingerprint(req *http.Request) string {
	h := sha256.New()
	h.Write([]byte(req.Method))
	h.Write([]byte{0})
	h.Write([]byte(req.URL.Path))
	h.Write([]byte{0})

	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func replay(c *gin.Context, stored *cachedResponse) {
	for k, v := range stored.Headers {
		c.Header(k, v)
	}
	c.Header(IdempotencyReplayedHeader, "true")
	c.Status(stored.StatusCode)
	_, _ = c.Writer.Write(stored.Body)
	c.Abort()
}

func abortIdempotency(c *gin.Context, status int, code, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(code, message).WithRequestID(GetRequestID(c)))
}

// capturingWriter keeps a copy of the response body.
type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
