package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hustlehq/tycoonsim/internal/logger"
)

// AuthMiddleware guards the command surface with the configured API key.
// Health, metrics, version, and the SSE stream stay public (PublicPaths).
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range PublicPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			providedKey := r.Header.Get(HeaderAPIKey)

			// Constant-time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request body size. Command payloads are
// tiny (an ID or a quality override), so anything large is abuse.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ipActivity is one client's counters inside the current window
type ipActivity struct {
	failedAuth int
	requests   int
}

// SuspiciousActivityDetector tracks per-IP auth failures and request volume
// over a rolling window. Counters reset together when the window rolls.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	activity    map[string]*ipActivity
	windowStart time.Time

	// now is swappable so window expiry is testable
	now func() time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		activity:    make(map[string]*ipActivity),
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// track rolls the window if expired and returns the IP's counters.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) track(ip string) *ipActivity {
	now := s.now()
	if now.Sub(s.windowStart) > RateLimitWindow {
		s.activity = make(map[string]*ipActivity)
		s.windowStart = now
	}

	a, ok := s.activity[ip]
	if !ok {
		a = &ipActivity{}
		s.activity[ip] = a
	}
	return a
}

// RecordFailedAuth records a failed authentication attempt and alerts once
// the per-window threshold is crossed
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.track(ip)
	a.failedAuth++

	if a.failedAuth >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", a.failedAuth)
	}
}

// RecordRequest counts a request against the window and reports whether the
// client is still under the rate limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.track(ip)
	a.requests++

	if a.requests > RateLimitMaxRequests {
		if a.requests%rateLimitLogEvery == 0 {
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count_in_window", a.requests)
		}
		return false
	}
	return true
}

// SecurityLoggingMiddleware enforces the rate limit and stamps the client IP
// into the request context so downstream log lines carry it
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)

			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			ctx := logger.WithClientIP(r.Context(), ip)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractIP resolves the client IP. X-Forwarded-For is honored only when the
// direct peer is a trusted proxy; the rightmost entry is the hop the proxy
// actually saw.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, remoteIP) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds the standard hardening headers. The JSON
// API never serves markup, but the SSE stream is consumed by browsers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}
