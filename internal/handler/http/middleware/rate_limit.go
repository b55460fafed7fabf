package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/handler/http/response"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (i *IPRateLimiter) GetLimiter(key string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[key]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[key] = limiter
	}

	return limiter
}

// RateLimitByIP allows perMinute requests per client address with the given
// burst. Put chi's RealIP in front of it when running behind a proxy.
func RateLimitByIP(perMinute, burst int) func(http.Handler) http.Handler {
	limiter := NewIPRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "60")
				response.TooManyRequests(w, "Too many requests from this IP, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
