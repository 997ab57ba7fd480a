package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-IP token bucket. Idle visitors are evicted by a
// background loop that stops on Shutdown or when ctx is cancelled.
type RateLimiter struct {
	mu            sync.Mutex
	visitors      map[string]*visitor
	limit         rate.Limit
	burst         int
	cleanupPeriod time.Duration
	visitorTTL    time.Duration
	trusted       []netip.Prefix
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRateLimiter allows rps requests per second per IP with the given burst.
func NewRateLimiter(ctx context.Context, rps float64, burst int, cleanupPeriod, visitorTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors:      make(map[string]*visitor),
		limit:         rate.Limit(rps),
		burst:         burst,
		cleanupPeriod: cleanupPeriod,
		visitorTTL:    visitorTTL,
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.cleanupLoop()
	return rl
}

// TrustProxies makes forwarding headers count when the connection comes from
// one of prefixes. Call it before serving.
func (rl *RateLimiter) TrustProxies(prefixes ...netip.Prefix) *RateLimiter {
	rl.trusted = prefixes
	return rl
}

func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, rl.trusted)
			if !rl.limiter(ip).Allow() {
				logger.WithContext(r.Context()).Warn().Str("ip", ip).Msg("Rate limit exceeded")
				w.Header().Set("Retry-After", "1")
				utils.WriteError(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > rl.visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) visitorCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}

// clientIP is the connection address unless that address is a trusted proxy.
// Behind a trusted proxy it is the rightmost X-Forwarded-For hop that is not
// itself trusted, then X-Real-IP.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	peer := remoteHost(r.RemoteAddr)
	if !isTrusted(peer, trusted) {
		return peer
	}

	if values := r.Header.Values("X-Forwarded-For"); len(values) > 0 {
		hops := strings.Split(strings.Join(values, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !isTrusted(hop, trusted) {
				return hop
			}
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	if len(trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
