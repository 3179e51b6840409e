package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
)

// Limiter counts requests per client IP and purpose in fixed windows stored in Redis
type Limiter struct {
	client      redis.Cmdable
	maxRequests int64
	window      time.Duration
}

func NewLimiter(client redis.Cmdable, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		client:      client,
		maxRequests: int64(maxRequests),
		window:      window,
	}
}

func ipKey(ip, purpose string) string {
	return fmt.Sprintf("ratelimit:%s:%s", purpose, ip)
}

// CheckIPRateLimitWithPurpose reports whether ip already used up its window for purpose
func (l *Limiter) CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error) {
	count, err := l.client.Get(ctx, ipKey(ip, purpose)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read rate limit counter: %w", err)
	}

	return count >= l.maxRequests, nil
}

// RecordIPRequestWithPurpose counts one request. The first request opens the window.
func (l *Limiter) RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error {
	key := ipKey(ip, purpose)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set TTL on rate limit counter: %w", err)
		}
	}

	return nil
}

// Middleware rejects requests over the limit with 429. Redis failures let the request through.
func (l *Limiter) Middleware(purpose string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.GetLoggerFromContext(r.Context())
			ip := ClientIP(r)

			exceeded, err := l.CheckIPRateLimitWithPurpose(r.Context(), ip, purpose)
			if err != nil {
				logger.Error("failed to check IP rate limit", "purpose", purpose, "error", err.Error())
			} else if exceeded {
				logger.Warn("IP rate limit exceeded", "purpose", purpose, "ip", ip)
				httputil.RespondErrorWithCode(w, "Too many requests, please try again later.", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
				return
			}

			if err := l.RecordIPRequestWithPurpose(r.Context(), ip, purpose); err != nil {
				logger.Error("failed to record IP request", "purpose", purpose, "error", err.Error())
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Passthrough is used in place of Middleware when rate limiting is disabled
func Passthrough(string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

// ClientIP returns the host part of r.RemoteAddr. Proxy headers are
// resolved into RemoteAddr by middleware.RealIP on the router, so raw
// forwarding headers are not read here.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
