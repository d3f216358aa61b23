package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pantry-service/internal/domain/dto"
	"github.com/guttosm/pantry-service/internal/i18n"
	"github.com/guttosm/pantry-service/internal/metrics"
)

const defaultNumShards = 16

// window is the fixed-window counter of one client key.
type window struct {
	used    int
	resetAt time.Time
}

type rateLimiterShard struct {
	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

// RateLimiter allows rate requests per window and client key. Keys are
// spread over shards to keep lock contention low; each shard drops stale
// keys on access, so no background goroutine is needed.
type RateLimiter struct {
	shards []*rateLimiterShard
	rate   int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter creates a limiter with the default shard count.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with numShards shards.
func NewShardedRateLimiter(rate int, per time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{windows: make(map[string]*window)}
	}
	return &RateLimiter{shards: shards, rate: rate, window: per, now: time.Now}
}

func (rl *RateLimiter) shard(key string) *rateLimiterShard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// allow consumes one request for key. It reports the remaining requests
// and when the current window ends.
func (rl *RateLimiter) allow(key string) (ok bool, remaining int, resetAt time.Time) {
	s := rl.shard(key)
	now := rl.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > rl.window {
		for k, w := range s.windows {
			if !now.Before(w.resetAt) {
				delete(s.windows, k)
			}
		}
		s.lastSweep = now
	}

	w, found := s.windows[key]
	if !found || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(rl.window)}
		s.windows[key] = w
	}
	if w.used >= rl.rate {
		return false, 0, w.resetAt
	}
	w.used++
	return true, rl.rate - w.used, w.resetAt
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.limit("ip", func(c *gin.Context) string { return "ip:" + c.ClientIP() })
}

// HouseholdRateLimit limits requests per authenticated household, so
// members of one household behind different addresses share a budget.
// Requests without a household fall back to the client IP.
func (rl *RateLimiter) HouseholdRateLimit() gin.HandlerFunc {
	return rl.limit("household", householdKey)
}

func householdKey(c *gin.Context) string {
	if id := c.GetString(ContextHouseholdID); id != "" {
		return "household:" + id
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) limit(scope string, key func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining, resetAt := rl.allow(key(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if ok {
			c.Next()
			return
		}

		metrics.RecordRateLimited(scope)
		retryAfter := int(math.Ceil(resetAt.Sub(rl.now()).Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))

		message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
	}
}

// Stats returns the number of tracked keys in total and per shard.
func (rl *RateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, s := range rl.shards {
		s.mu.Lock()
		perShard[i] = len(s.windows)
		s.mu.Unlock()
		total += perShard[i]
	}
	return total, perShard
}
