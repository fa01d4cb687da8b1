package middleware

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/shared/apperr"
)

// RateLimiter throttles mutating requests per client IP. Safe methods pass
// through untouched.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	maxKeys  int
	logger   *slog.Logger
}

func NewRateLimiter(rps float64, burst int, l *slog.Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		maxKeys:  10000,
		logger:   l,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// crude bound on memory; every client starts over with a full bucket
	if len(rl.limiters) >= rl.maxKeys {
		rl.limiters = make(map[string]*rate.Limiter)
	}
	lim, ok := rl.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = lim
	}
	return lim
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		key := c.ClientIP()
		if rl.limiter(key).Allow() {
			c.Next()
			return
		}
		rl.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "rate_limit_exceeded",
			slog.String("request_id", GetRequestID(c)),
			slog.String("client_ip", key),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)
		c.Header("Retry-After", "1")
		Fail(c, &apperr.AppError{Kind: apperr.TooMany, PublicMsg: "Too many changes at once. Please wait a moment and try again."})
	}
}
