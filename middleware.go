package main

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AuditLog logs security-relevant events for audit trail
func AuditLog(eventType, clientIP, deviceName, details string) {
	logger.Info("AUDIT",
		zap.String("event", eventType),
		zap.String("client_ip", clientIP),
		zap.String("device_name", deviceName),
		zap.String("details", details),
		zap.Time("timestamp", time.Now()),
	)
}

// rateLimiter implements a simple token bucket rate limiter per IP
type rateLimiter struct {
	mu       sync.Mutex
	requests map[string]*tokenBucket
	rate     int           // requests per window
	window   time.Duration // time window
	stopCh   chan struct{} // channel to signal cleanup goroutine to stop
}

// tokenBucket tracks request counts for rate limiting
type tokenBucket struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a new rate limiter with a specified rate and window
func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		requests: make(map[string]*tokenBucket),
		rate:     rate,
		window:   window,
	}
}

// Allow checks if a request from the given IP is allowed
func (rl *rateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, exists := rl.requests[ip]

	if !exists {
		// Cap the map so an attacker rotating source IPs cannot exhaust
		// memory; new IPs are rejected until cleanup frees entries
		if len(rl.requests) >= MaxRateLimiterEntries {
			logger.Warn("Rate limiter at max capacity, rejecting new IP",
				zap.String("ip", ip),
				zap.Int("current_entries", len(rl.requests)))
			return false
		}
		rl.requests[ip] = &tokenBucket{
			tokens:    rl.rate - 1, // Use one token
			lastReset: now,
		}
		return true
	}

	// Window elapsed: reset the bucket
	if now.Sub(bucket.lastReset) >= rl.window {
		bucket.tokens = rl.rate - 1
		bucket.lastReset = now
		return true
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}

	return false
}

// StartCleanup starts a background goroutine that periodically removes stale
// IP entries so the map does not grow without bound
func (rl *rateLimiter) StartCleanup() {
	rl.stopCh = make(chan struct{})
	cleanupInterval := rl.window * 2

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()
}

// StopCleanup stops the background cleanup goroutine
func (rl *rateLimiter) StopCleanup() {
	if rl.stopCh != nil {
		close(rl.stopCh)
	}
}

// cleanup removes entries that have been idle for at least two windows
func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, bucket := range rl.requests {
		if now.Sub(bucket.lastReset) >= rl.window*2 {
			delete(rl.requests, ip)
		}
	}
}

// apiKeyAuthMiddleware validates X-API-Key header for incoming requests.
// Uses constant-time comparison to prevent timing attacks and logs
// authentication events for security auditing.
func apiKeyAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := GetClientIP(r)

		// Get API key from the header
		apiKey := r.Header.Get(HeaderXAPIKey)

		if apiKey == "" {
			AuditLog(AuditEventAuthFailure, clientIP, "", "Missing API key")
			logger.Warn("Authentication failed: missing API key",
				zap.String("ip", clientIP),
				zap.String("method", r.Method))
			sendError(w, http.StatusUnauthorized, StatusUnauthorized, ErrMissingAPIKey)
			return
		}

		// Constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(authKey)) != 1 {
			AuditLog(AuditEventAuthFailure, clientIP, "", "Invalid API key")
			logger.Warn("Authentication failed: invalid API key",
				zap.String("ip", clientIP),
				zap.String("method", r.Method))
			sendError(w, http.StatusUnauthorized, StatusUnauthorized, ErrInvalidAPIKey)
			return
		}

		AuditLog(AuditEventAuthSuccess, clientIP, "", "Authentication successful")
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware creates a middleware that limits requests per IP
func rateLimitMiddleware(rl *rateLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// GetClientIP only trusts X-Real-IP when it parses as a valid
			// address, so a spoofed header cannot bypass the limit
			ip := GetClientIP(r)

			if !rl.Allow(ip) {
				sendError(w, http.StatusTooManyRequests, "Too Many Requests", ErrRateLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware handles Cross-Origin Resource Sharing (CORS) for the API.
// allowedOrigins comes from the CORS_ALLOWED_ORIGINS environment variable
// (comma-separated); "*" allows all origins. maxAge specifies how long
// preflight responses can be cached (in seconds).
func corsMiddleware(allowedOrigins []string, maxAge int) func(next http.Handler) http.Handler {
	allowAll := len(allowedOrigins) == 1 && allowedOrigins[0] == "*"

	// Build a map for fast origin lookup (only if not allowing all)
	originMap := make(map[string]bool)
	if !allowAll {
		for _, origin := range allowedOrigins {
			if origin != "" {
				originMap[origin] = true
			}
		}
	}

	maxAgeStr := strconv.Itoa(maxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && (allowAll || originMap[origin]) {
				allowed := origin
				if allowAll {
					allowed = "*"
				}
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
				w.Header().Set("Access-Control-Max-Age", maxAgeStr)
			}

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// securityHeadersMiddleware adds security headers to all responses
// to protect against common web vulnerabilities
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")

		// Swagger UI needs inline styles/scripts and data URIs; the API
		// itself gets a strict policy and no caching
		if strings.HasPrefix(r.URL.Path, "/swagger") {
			w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		} else {
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
			w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}

		next.ServeHTTP(w, r)
	})
}
