package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/circuitbreaker"
)

// defaultCheckTimeout bounds each readiness check.
const defaultCheckTimeout = 2 * time.Second

// HealthChecker reports whether a dependency can serve requests.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f.
func (f HealthCheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// ReadinessResponse is the body of /readyz.
type ReadinessResponse struct {
	Status   string            `json:"status" example:"ok"`
	Checks   map[string]string `json:"checks"`
	Circuits map[string]string `json:"circuits,omitempty"`
}

// HealthHandler serves the liveness and readiness probes. Readiness runs
// the storage checks and looks at the storage circuit breakers.
type HealthHandler struct {
	mu              sync.RWMutex
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
	checkTimeout    time.Duration
}

// NewHealthHandler creates a HealthHandler without checks.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
		checkTimeout:    defaultCheckTimeout,
	}
}

// RegisterCircuitBreaker makes readiness fail while cb is not closed.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.circuitBreakers[name] = cb
}

// RegisterChecker adds a dependency check to readiness.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe.
// @Summary     Liveness probe
// @Description Returns ok while the process is serving requests.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe.
// @Summary     Readiness probe
// @Description Runs the storage checks. Returns 503 when a check fails or a storage circuit breaker is not closed.
// @Tags        Health
// @Produce     json
// @Success     200 {object} ReadinessResponse
// @Failure     503 {object} ReadinessResponse
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	resp := ReadinessResponse{
		Status: "ok",
		Checks: h.runChecks(c.Request.Context()),
	}
	for _, result := range resp.Checks {
		if result != "ok" {
			resp.Status = "degraded"
		}
	}

	if len(h.circuitBreakers) > 0 {
		resp.Circuits = make(map[string]string, len(h.circuitBreakers))
		for name, cb := range h.circuitBreakers {
			stats := cb.GetStats()
			resp.Circuits[name] = stats.State
			if !stats.IsHealthy {
				resp.Status = "degraded"
			}
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// runChecks runs every checker concurrently. h.mu must be held.
func (h *HealthHandler) runChecks(ctx context.Context) map[string]string {
	results := make(map[string]string, len(h.checkers))
	if len(h.checkers) == 0 {
		return results
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, h.checkTimeout)
			defer cancel()

			result := "ok"
			if err := checker.Check(checkCtx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()
	return results
}
