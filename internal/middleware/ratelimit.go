package middleware

import (
	"net/http"
	"sync"
	"time"

	"soap-storefront/internal/logging"
)

// LoginRateLimiter limits sign-in and sign-up attempts per client IP
type LoginRateLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	done        chan struct{}
	stopOnce    sync.Once
}

// NewLoginRateLimiter creates a limiter and starts its cleanup loop. Call
// Stop when the server shuts down.
func NewLoginRateLimiter(maxAttempts int, window time.Duration) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		done:        make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// IsAllowed checks if another attempt from ip is allowed
func (rl *LoginRateLimiter) IsAllowed(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.prune(ip)
	return len(valid) < rl.maxAttempts
}

// RecordAttempt records an attempt for ip
func (rl *LoginRateLimiter) RecordAttempt(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.attempts[ip] = append(rl.prune(ip), rl.now())
}

// TimeUntilAllowed returns how long ip has to wait, zero when it may retry now
func (rl *LoginRateLimiter) TimeUntilAllowed(ip string) time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.prune(ip)
	if len(valid) < rl.maxAttempts {
		return 0
	}
	// the oldest attempt in the window is the next to expire
	return valid[0].Add(rl.window).Sub(rl.now())
}

// Stop ends the cleanup loop
func (rl *LoginRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// prune drops attempts outside the window. Callers hold the mutex.
func (rl *LoginRateLimiter) prune(ip string) []time.Time {
	cutoff := rl.now().Add(-rl.window)
	attempts := rl.attempts[ip]

	valid := attempts[:0]
	for _, attempt := range attempts {
		if attempt.After(cutoff) {
			valid = append(valid, attempt)
		}
	}

	if len(valid) == 0 {
		delete(rl.attempts, ip)
		return nil
	}
	rl.attempts[ip] = valid
	return valid
}

func (rl *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mutex.Lock()
			for ip := range rl.attempts {
				rl.prune(ip)
			}
			rl.mutex.Unlock()
		}
	}
}

// LoginRateLimit applies the limiter to POST requests
func LoginRateLimit(rateLimiter *LoginRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)

			if !rateLimiter.IsAllowed(ip) {
				wait := rateLimiter.TimeUntilAllowed(ip).Round(time.Second)
				logging.FromContext(r.Context()).WithField("ip", ip).Warn("sign-in rate limit hit")

				if IsHTMXRequest(r) {
					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					w.WriteHeader(http.StatusTooManyRequests)
					w.Write([]byte(`<div class="bg-red-50 border border-red-200 text-red-800 p-4 rounded-lg">` +
						`<p class="text-sm">Too many attempts. Please try again in ` + wait.String() + `.</p></div>`))
					return
				}
				http.Error(w, "Too many attempts. Please try again later.", http.StatusTooManyRequests)
				return
			}

			defer rateLimiter.RecordAttempt(ip)

			next.ServeHTTP(w, r)
		})
	}
}
