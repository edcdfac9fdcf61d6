package middleware

import (
	"sync"
	"time"

	"careerbridge_backend/internal/logger"
	"careerbridge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RateLimitStore - подсчет запросов по ключу за скользящее окно
type RateLimitStore interface {
	// Allow возвращает false, если ключ исчерпал лимит в текущем окне
	Allow(key string, limit int, window time.Duration) bool
}

// MemoryRateLimitStore - in-memory реализация со скользящим окном.
// Достаточно для одного инстанса; на кластере нужен внешний стор.
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	lastGC  time.Time
	gcEvery time.Duration
}

func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		hits:    make(map[string][]time.Time),
		lastGC:  time.Now(),
		gcEvery: 5 * time.Minute,
	}
}

func (s *MemoryRateLimitStore) Allow(key string, limit int, window time.Duration) bool {
	now := time.Now()
	cutoff := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastGC) > s.gcEvery {
		s.gc(cutoff)
		s.lastGC = now
	}

	kept := s.hits[key][:0]
	for _, t := range s.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= limit {
		s.hits[key] = kept
		return false
	}

	s.hits[key] = append(kept, now)
	return true
}

// gc выбрасывает ключи без свежих попаданий, вызывать под mu
func (s *MemoryRateLimitStore) gc(cutoff time.Time) {
	for key, times := range s.hits {
		alive := false
		for _, t := range times {
			if t.After(cutoff) {
				alive = true
				break
			}
		}
		if !alive {
			delete(s.hits, key)
		}
	}
}

// RateLimitMiddleware ограничивает анонимные запросы по IP.
// Вешается только на публичные write-эндпоинты.
func RateLimitMiddleware(store RateLimitStore, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !store.Allow(key, limit, window) {
			logger.CtxWarn(c.Request.Context(), "Rate limit exceeded",
				"ip", key,
				"path", c.Request.URL.Path,
			)
			apperrors.HandleError(c, apperrors.NewLimitExceededError("Too many requests, try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
