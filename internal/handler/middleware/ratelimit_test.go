//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-booking-api/internal/handler/middleware"
	"clinic-booking-api/internal/pkg/clock"
	"clinic-booking-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMemoryCounterStore(t *testing.T) {
	store := middleware.NewMemoryCounterStore()
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	assert.Equal(t, 1, store.Increment("k", now, window))
	assert.Equal(t, 2, store.Increment("k", now.Add(time.Minute), window))

	// Other keys count independently.
	assert.Equal(t, 1, store.Increment("other", now, window))

	// The window resets once it has fully elapsed.
	assert.Equal(t, 1, store.Increment("k", now.Add(window), window))

	store.Decrement("k")
	assert.Equal(t, 1, store.Increment("k", now.Add(window+time.Minute), window))
}

func newLimitedEngine(t *testing.T, mock *clock.MockClock, loginStatus int) *gin.Engine {
	t.Helper()

	cfg := config.NewTestConfig().RateLimit
	cfg.AuthMax = 2
	cfg.BookingMax = 2

	limiter := middleware.NewRateLimiter(middleware.NewMemoryCounterStore(), cfg, mock)

	engine := gin.New()
	engine.POST("/api/auth/login", limiter.Auth(), func(c *gin.Context) { c.Status(loginStatus) })
	engine.POST("/api/bookings", limiter.Booking(), func(c *gin.Context) { c.Status(http.StatusCreated) })
	return engine
}

func perform(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGeneralLimiter(t *testing.T) {
	mock := clock.NewMockClock(time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC))

	cfg := config.NewTestConfig().RateLimit
	cfg.GeneralMax = 3
	limiter := middleware.NewRateLimiter(middleware.NewMemoryCounterStore(), cfg, mock)

	engine := gin.New()
	engine.Use(limiter.General())
	engine.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/api/services", func(c *gin.Context) { c.Status(http.StatusOK) })

	for range 3 {
		assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/services").Code)
	}

	rec := perform(engine, http.MethodGet, "/api/services")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Terlalu banyak permintaan")

	// Health stays reachable for probes even while the budget is exhausted.
	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/health").Code)

	// A fresh window clears the budget.
	mock.Add(16 * time.Minute)
	assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/services").Code)
}

func TestAuthLimiterCountsOnlyFailures(t *testing.T) {
	mock := clock.NewMockClock(time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC))
	engine := newLimitedEngine(t, mock, http.StatusOK)

	// Successful logins hand their slot back, so the budget never drains.
	for range 10 {
		assert.Equal(t, http.StatusOK, perform(engine, http.MethodPost, "/api/auth/login").Code)
	}
}

func TestAuthLimiterBlocksRepeatedFailures(t *testing.T) {
	mock := clock.NewMockClock(time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC))
	engine := newLimitedEngine(t, mock, http.StatusUnauthorized)

	for range 2 {
		assert.Equal(t, http.StatusUnauthorized, perform(engine, http.MethodPost, "/api/auth/login").Code)
	}

	rec := perform(engine, http.MethodPost, "/api/auth/login")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Terlalu banyak percobaan login")
}

func TestBookingLimiter(t *testing.T) {
	mock := clock.NewMockClock(time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC))
	engine := newLimitedEngine(t, mock, http.StatusOK)

	for range 2 {
		assert.Equal(t, http.StatusCreated, perform(engine, http.MethodPost, "/api/bookings").Code)
	}

	rec := perform(engine, http.MethodPost, "/api/bookings")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Terlalu banyak booking")
}
