// Package ratelimit provides a small per-IP token-bucket limiter for the
// routes that trigger outbound collaborator calls.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu             sync.Mutex
	limiters       map[string]*limiterEntry
	rate           rate.Limit
	burst          int
	idle           time.Duration
	trustedProxies []*net.IPNet
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// New creates a limiter allowing r requests per second with the given burst.
// Entries idle longer than idle are dropped. trustedProxies lists CIDRs (or
// bare IPs) whose X-Forwarded-For headers are believed.
func New(r rate.Limit, burst int, idle time.Duration, trustedProxies []string) *IPRateLimiter {
	l := &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     r,
		burst:    burst,
		idle:     idle,
	}
	for _, cidr := range trustedProxies {
		if ipnet := parseCIDROrIP(cidr); ipnet != nil {
			l.trustedProxies = append(l.trustedProxies, ipnet)
		}
	}
	return l
}

// Middleware rejects over-limit requests with 429.
func (l *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(l.clientIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, entry := range l.limiters {
		if now.Sub(entry.lastAccess) > l.idle {
			delete(l.limiters, key)
		}
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccess = now
	return entry.limiter.Allow()
}

// clientIP resolves the caller address, honoring X-Forwarded-For only when
// the direct peer is a trusted proxy.
func (l *IPRateLimiter) clientIP(r *http.Request) string {
	remote := parseAddr(r.RemoteAddr)
	if remote == nil {
		return r.RemoteAddr
	}
	trusted := false
	for _, ipnet := range l.trustedProxies {
		if ipnet.Contains(remote) {
			trusted = true
			break
		}
	}
	if !trusted {
		return remote.String()
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip.String()
		}
	}
	return remote.String()
}

func parseAddr(addr string) net.IP {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(addr)
}

func parseCIDROrIP(s string) *net.IPNet {
	if _, ipnet, err := net.ParseCIDR(s); err == nil {
		return ipnet
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil
	}
	suffix := "/32"
	if ip.To4() == nil {
		suffix = "/128"
	}
	_, ipnet, _ := net.ParseCIDR(s + suffix)
	return ipnet
}
