package middleware

import (
	"net/http"
	"sync"
	"time"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore keeps one token bucket per client IP and evicts idle entries.
type limiterStore struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	r       rate.Limit
	burst   int
}

func newLimiterStore(r rate.Limit, burst int) *limiterStore {
	store := &limiterStore{
		clients: make(map[string]*clientLimiter),
		r:       r,
		burst:   burst,
	}
	go store.evictLoop()
	return store
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	client, ok := s.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(s.r, s.burst)}
		s.clients[key] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}

func (s *limiterStore) evictLoop() {
	for {
		time.Sleep(time.Minute)
		s.mu.Lock()
		for key, client := range s.clients {
			if time.Since(client.lastSeen) > 3*time.Minute {
				delete(s.clients, key)
			}
		}
		s.mu.Unlock()
	}
}

func rateLimitMiddleware(store *limiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.get(c.ClientIP()).Allow() {
			common.RespError(c, http.StatusTooManyRequests, mcerrors.ErrRateLimited, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

var (
	globalStore   = newLimiterStore(rate.Limit(30), 60)
	criticalStore = newLimiterStore(rate.Limit(1), 10)
)

// GlobalAPIRateLimit is applied to the whole /api group.
func GlobalAPIRateLimit() gin.HandlerFunc {
	return rateLimitMiddleware(globalStore)
}

// CriticalRateLimit is applied to auth and reservation routes.
func CriticalRateLimit() gin.HandlerFunc {
	return rateLimitMiddleware(criticalStore)
}
