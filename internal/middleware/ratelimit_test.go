package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RespectsLimit(t *testing.T) {
	t.Parallel()

	store := NewMemoryRateLimitStore()

	for i := 0; i < 3; i++ {
		assert.True(t, store.Allow("1.2.3.4", 3, time.Minute), "request %d must pass", i+1)
	}
	assert.False(t, store.Allow("1.2.3.4", 3, time.Minute))

	// Другой ключ считается отдельно
	assert.True(t, store.Allow("5.6.7.8", 3, time.Minute))
}

func TestMemoryStore_WindowSlides(t *testing.T) {
	t.Parallel()

	store := NewMemoryRateLimitStore()
	window := 50 * time.Millisecond

	require.True(t, store.Allow("1.2.3.4", 1, window))
	require.False(t, store.Allow("1.2.3.4", 1, window))

	time.Sleep(window + 20*time.Millisecond)

	assert.True(t, store.Allow("1.2.3.4", 1, window), "window must reset after expiry")
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/consultations",
		RateLimitMiddleware(NewMemoryRateLimitStore(), 2, time.Minute),
		func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"ok": true}) },
	)

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/consultations", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, do())
	assert.Equal(t, http.StatusCreated, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
