package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"clinic-booking-api/internal/handler/httperr"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errors.New("rate limit exceeded")

// CounterStore is the fixed-window counter backing the limiter. The default
// is in-process; a shared store (Redis etc.) can be swapped in without
// touching the middleware.
type CounterStore interface {
	// Increment bumps the counter for key, resetting it first when the
	// current window has elapsed, and returns the new count.
	Increment(key string, now time.Time, window time.Duration) int
	// Decrement undoes one increment within the current window. Used to
	// exclude successful auth attempts from the login budget.
	Decrement(key string)
}

// sweepEvery bounds how often expired windows are evicted so the per-IP map
// does not grow with every client the process has ever seen.
const sweepEvery = 5 * time.Minute

type memoryCounterStore struct {
	mu      sync.Mutex
	windows map[string]*countWindow
	sweptAt time.Time
}

type countWindow struct {
	count   int
	startAt time.Time
	window  time.Duration
}

func NewMemoryCounterStore() CounterStore {
	return &memoryCounterStore{
		windows: make(map[string]*countWindow),
	}
}

func (s *memoryCounterStore) Increment(key string, now time.Time, window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now)

	w, ok := s.windows[key]
	if !ok || now.Sub(w.startAt) >= window {
		s.windows[key] = &countWindow{count: 1, startAt: now, window: window}
		return 1
	}
	w.count++
	return w.count
}

func (s *memoryCounterStore) sweep(now time.Time) {
	if now.Sub(s.sweptAt) < sweepEvery {
		return
	}
	for key, w := range s.windows {
		if now.Sub(w.startAt) >= w.window {
			delete(s.windows, key)
		}
	}
	s.sweptAt = now
}

func (s *memoryCounterStore) Decrement(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.windows[key]; ok && w.count > 0 {
		w.count--
	}
}

type RateLimiter struct {
	store CounterStore
	cfg   config.RateLimitConfig
	clock clock.Clock
}

func NewRateLimiter(store CounterStore, cfg config.RateLimitConfig, clock clock.Clock) *RateLimiter {
	return &RateLimiter{
		store: store,
		cfg:   cfg,
		clock: clock,
	}
}

// General applies the per-IP budget to the whole API surface. The health
// endpoint is exempt so probes never trip it.
func (r *RateLimiter) General() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/api/health" {
			c.Next()
			return
		}

		key := "general:" + c.ClientIP()
		count := r.store.Increment(key, r.clock.Now(), r.cfg.GeneralWindow)
		if count > r.cfg.GeneralMax {
			r.reject(c, "Terlalu banyak permintaan. Silakan coba lagi nanti.")
			return
		}
		c.Next()
	}
}

// Auth guards the login endpoint. Successful attempts are handed back to the
// budget so only failures accumulate.
func (r *RateLimiter) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "auth:" + c.ClientIP()
		count := r.store.Increment(key, r.clock.Now(), r.cfg.AuthWindow)
		if count > r.cfg.AuthMax {
			slog.Warn("auth rate limit exceeded",
				"client_ip", c.ClientIP(),
				"path", c.Request.URL.Path,
				"username", attemptedUsername(c))
			r.rejectQuiet(c, "Terlalu banyak percobaan login. Silakan coba lagi nanti.")
			return
		}

		c.Next()

		if c.Writer.Status() < http.StatusBadRequest {
			r.store.Decrement(key)
		}
	}
}

func (r *RateLimiter) Booking() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "booking:" + c.ClientIP()
		count := r.store.Increment(key, r.clock.Now(), r.cfg.BookingWindow)
		if count > r.cfg.BookingMax {
			r.reject(c, "Terlalu banyak booking dari alamat ini. Silakan coba lagi nanti.")
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) reject(c *gin.Context, message string) {
	slog.Warn("rate limit exceeded",
		"client_ip", c.ClientIP(),
		"path", c.Request.URL.Path)
	r.rejectQuiet(c, message)
}

func (r *RateLimiter) rejectQuiet(c *gin.Context, message string) {
	httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, message, httperr.CodeRateLimited)
}

// attemptedUsername peeks at the login form for the breach log without
// consuming the body.
func attemptedUsername(c *gin.Context) string {
	var probe struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindBodyWithJSON(&probe); err != nil {
		return ""
	}
	return probe.Username
}
