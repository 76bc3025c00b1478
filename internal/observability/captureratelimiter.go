package observability

import (
	"crypto/md5"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// CaptureRateLimiter keeps repeated messages from flooding Sentry.
//
// It remembers when each distinct message was last captured, keyed by the
// message digest, in a bounded LRU cache. When many different messages are
// captured, old entries are evicted and may be let through early.
//
// A nil value lets all messages through.
type CaptureRateLimiter struct {
	lastCapture *lru.Cache
	interval    time.Duration
}

// NewCaptureRateLimiter allows each message once per interval, tracking up
// to size distinct messages.
func NewCaptureRateLimiter(
	size int,
	interval time.Duration,
) (*CaptureRateLimiter, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &CaptureRateLimiter{
		lastCapture: cache,
		interval:    interval,
	}, nil
}

// AllowCapture reports whether msg may be captured now, and if so records
// the capture.
func (rl *CaptureRateLimiter) AllowCapture(msg string) bool {
	if rl == nil {
		return true
	}

	key := md5.Sum([]byte(msg))
	now := time.Now()

	if last, ok := rl.lastCapture.Get(key); ok {
		if now.Sub(last.(time.Time)) < rl.interval {
			return false
		}
	}

	rl.lastCapture.Add(key, now)
	return true
}
