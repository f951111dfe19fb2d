// Package ratelimit throttles scoring requests per client with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Info describes the rate limit state returned with each decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// tokenBucket refills at a steady rate up to capacity.
type tokenBucket struct {
	capacity   float64
	refillRate float64 // Tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newTokenBucket(capacity int, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

func (b *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
}

// take consumes a token if one is available.
func (b *tokenBucket) take(now time.Time) bool {
	b.refill(now)
	b.lastAccess = now
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// resetTime is when the bucket will be full again.
func (b *tokenBucket) resetTime(now time.Time) time.Time {
	missing := b.capacity - b.tokens
	if missing <= 0 || b.refillRate <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / b.refillRate * float64(time.Second)))
}

// Limiter holds one bucket per client, endpoint and method.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*tokenBucket

	stopOnce sync.Once
	stop     chan struct{}
}

// NewLimiter creates a rate limiter; nil config means LoadConfig defaults
// without environment overrides.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    120,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			IdleTTL:         time.Hour,
			EndpointConfigs: DefaultEndpointConfigs(10),
		}
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow reports whether a request from clientID to endpoint may proceed.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	}
	if ec.Limit <= 0 || ec.Window <= 0 {
		return true, Info{Allowed: true}
	}

	burst := ec.Burst
	if burst <= 0 {
		burst = ec.Limit
	}

	key := clientID + ":" + endpoint + ":" + method
	now := l.now()

	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = newTokenBucket(burst, float64(ec.Limit)/ec.Window.Seconds(), now)
		l.buckets[key] = bucket
	}
	allowed := bucket.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     ec.Limit,
		Remaining: int(bucket.tokens),
		ResetTime: bucket.resetTime(now),
	}
	if !allowed && bucket.refillRate > 0 {
		info.RetryAfter = time.Duration((1 - bucket.tokens) / bucket.refillRate * float64(time.Second))
	}
	l.mu.Unlock()

	return allowed, info
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup drops buckets idle for longer than IdleTTL.
func (l *Limiter) cleanup() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// size returns the number of live buckets.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
