package httpx

import (
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/careers/pkg/slogx"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// Rate limit profiles. Each can be overridden through
// RATELIMIT_{NAME}_REQUESTS, RATELIMIT_{NAME}_WINDOW_SEC and
// RATELIMIT_{NAME}_BURST.
var (
	// StrictLimit guards invite acceptance, where tokens could be guessed.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	// ModerateLimit covers writes: tenant creation, invites, profile edits.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 30, Window: time.Minute, Burst: 30}

	// LenientLimit covers authenticated reads.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 120, Window: time.Minute, Burst: 120}

	// PublicLimit covers the public careers page lookup.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

// ParseRateLimitFromEnv reads RATELIMIT_{prefix}_{REQUESTS,WINDOW_SEC,BURST}
// over defaultConfig. Invalid or non-positive values are ignored.
func ParseRateLimitFromEnv(prefix string, defaultConfig RateLimitConfig) RateLimitConfig {
	config := defaultConfig

	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_REQUESTS"); ok {
		config.RequestsPerWindow = n
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_WINDOW_SEC"); ok {
		config.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_BURST"); ok {
		config.Burst = n
	}

	return config
}

func positiveEnv(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyExtractor is a function that extracts a unique key from the request
// for rate limiting purposes.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor extracts the client IP address from the request.
// It handles X-Forwarded-For and X-Real-IP headers for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// UserIDKeyExtractor returns the authenticated subject, or "".
func UserIDKeyExtractor(r *http.Request) string {
	if p, ok := PrincipalFrom(r.Context()); ok {
		return p.Subject
	}
	return ""
}

// FallbackKeyExtractor returns the first non-empty key any extractor
// produces, tagged with that extractor's prefix so keys from different
// sources never collide.
func FallbackKeyExtractor(prefixes []string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		for i, extractor := range extractors {
			if key := extractor(r); key != "" {
				return prefixes[i] + key
			}
		}
		return ""
	}
}

// maxTrackedKeys caps how many distinct callers one middleware tracks.
const maxTrackedKeys = 10_000

// RateLimitMiddleware creates a rate limiting middleware with the given configuration.
// A limiter idle for a whole window has refilled, so it is dropped and
// recreated on the next request.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	limit := rate.Limit(float64(config.RequestsPerWindow) / config.Window.Seconds())
	limiters := expirable.NewLRU[string, *rate.Limiter](maxTrackedKeys, nil, config.Window)

	var mu sync.Mutex
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		l, ok := limiters.Get(key)
		if !ok {
			l = rate.NewLimiter(limit, config.Burst)
		}
		// Re-adding pushes the expiry out by another window.
		limiters.Add(key, l)
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			limiter := limiterFor(key)
			if !limiter.Allow() {
				// Peek at when the next token lands without consuming it.
				reservation := limiter.Reserve()
				delay := reservation.Delay()
				reservation.Cancel()

				retryAfter := max(int(delay.Seconds()), 1)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", config.Window.String())

				log.Warn("rate limit exceeded",
					slog.String("key", key),
					slog.String("endpoint", r.URL.Path),
					slog.Int("retry_after", retryAfter),
				)

				WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP creates a rate limiter that limits by IP address only.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, IPKeyExtractor)
}

// RateLimitByUser limits by authenticated subject alone, so rotating
// X-Forwarded-For does not mint a fresh budget. Anonymous callers fall back
// to IP. It must sit inside AuthnMiddleware to see the subject.
func RateLimitByUser(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, FallbackKeyExtractor(
		[]string{"user:", "ip:"},
		UserIDKeyExtractor,
		IPKeyExtractor,
	))
}
