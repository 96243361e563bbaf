package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTimeout     = 5 * time.Minute
)

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter hands out one token bucket per client IP.
type ipRateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*rateClient

	stopOnce sync.Once
	stop     chan struct{}
}

// newIPRateLimiter returns nil when rps <= 0, which disables limiting.
func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	l := &ipRateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rateClient),
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *ipRateLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	client, exists := l.clients[ip]
	if !exists {
		client = &rateClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = time.Now()
	l.mu.Unlock()
	return client.limiter.Allow()
}

func (l *ipRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep(time.Now())
		}
	}
}

// sweep drops clients not seen since limiterIdleTimeout before now.
func (l *ipRateLimiter) sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for ip, client := range l.clients {
		if now.Sub(client.lastSeen) > limiterIdleTimeout {
			delete(l.clients, ip)
			removed++
		}
	}
	return removed
}

func (l *ipRateLimiter) Stop() {
	if l == nil {
		return
	}
	l.stopOnce.Do(func() { close(l.stop) })
}

// RateLimitMiddleware answers 429 once a client IP exceeds its budget.
func (s *WebServer) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !s.limiter.Allow(ip) {
			s.Logger.Warn("Rate limit exceeded", zap.String("client_ip", ip))
			c.Header("Retry-After", "1")
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
