// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

// RateLimiter keeps a token bucket per client IP, with stricter budgets
// on the OTP endpoints to slow brute forcing.
type RateLimiter struct {
	ips            map[string]map[string]*rate.Limiter
	mu             sync.RWMutex
	defaultLimit   rate.Limit
	defaultBurst   int
	endpointLimits map[string]endpointLimit
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		ips:            make(map[string]map[string]*rate.Limiter),
		defaultLimit:   rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:   20,
		endpointLimits: make(map[string]endpointLimit),
	}

	// Code send/verify are where brute force and SMS abuse happen
	limiter.endpointLimits["/api/portal/send-code"] = endpointLimit{
		limit: rate.Every(2 * time.Second),
		burst: 3,
	}
	limiter.endpointLimits["/api/portal/verify-code"] = endpointLimit{
		limit: rate.Every(1 * time.Second),
		burst: 5,
	}
	limiter.endpointLimits["/api/admin/login"] = endpointLimit{
		limit: rate.Every(2 * time.Second),
		burst: 5,
	}

	return limiter
}

func (rl *RateLimiter) limiterFor(ip, path string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	byPath, ok := rl.ips[ip]
	if !ok {
		byPath = make(map[string]*rate.Limiter)
		rl.ips[ip] = byPath
	}

	key := ""
	limit := rl.defaultLimit
	burst := rl.defaultBurst
	if el, ok := rl.endpointLimits[path]; ok {
		key = path
		limit = el.limit
		burst = el.burst
	}

	l, ok := byPath[key]
	if !ok {
		l = rate.NewLimiter(limit, burst)
		byPath[key] = l
	}
	return l
}

// RateLimit returns the Echo middleware
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			path := c.Request().URL.Path

			if !rl.limiterFor(ip, path).Allow() {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests, slow down",
				})
			}

			return next(c)
		}
	}
}
