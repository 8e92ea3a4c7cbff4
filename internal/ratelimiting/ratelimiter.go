package ratelimiting

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/strutils"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// Idle clients are forgotten after this long, starting over with a full bucket
const limiterTTL = 30 * time.Minute

type RateLimiter interface {
	Consume(key string) bool
}

type RefillPerSecond float64
type BurstSize int

type tokenBucketRateLimiter struct {
	buckets *ttlcache.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
}

func (l *tokenBucketRateLimiter) Consume(key string) bool {
	bucket, _ := l.buckets.GetOrSet(key, rate.NewLimiter(l.limit, l.burst))
	return bucket.Value().Allow()
}

// NewTokenBucketRateLimiter limits each key separately. Call the returned func to stop expiring idle keys.
func NewTokenBucketRateLimiter(refillPerSecond RefillPerSecond, burstSize BurstSize) (RateLimiter, func()) {
	buckets := ttlcache.New[string, *rate.Limiter](
		ttlcache.WithTTL[string, *rate.Limiter](limiterTTL),
	)
	go buckets.Start()

	return &tokenBucketRateLimiter{
		buckets: buckets,
		limit:   rate.Limit(refillPerSecond),
		burst:   int(burstSize),
	}, buckets.Stop
}

type RequestRateLimiter interface {
	Consume(r *http.Request) bool
	KeyFor(r *http.Request) string
}

type requestBasedRateLimiter struct {
	limiter RateLimiter
	keyFunc func(r *http.Request) string
}

func (l *requestBasedRateLimiter) Consume(r *http.Request) bool {
	return l.limiter.Consume(l.keyFunc(r))
}

func (l *requestBasedRateLimiter) KeyFor(r *http.Request) string {
	return l.keyFunc(r)
}

func NewRequestBasedRateLimiter(limiter RateLimiter, keyFunc func(r *http.Request) string) RequestRateLimiter {
	return &requestBasedRateLimiter{
		limiter: limiter,
		keyFunc: keyFunc,
	}
}

// IPKeyFunc keys on the remote address without the port
func IPKeyFunc(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "ip: " + host
}

// PlayerKeyFunc keys on the player the request is made for, case-insensitively
func PlayerKeyFunc(r *http.Request) string {
	player := strutils.NormalizeName(r.Header.Get(logging.PlayerHeader))
	if player == "" {
		player = "<missing>"
	}
	return fmt.Sprintf("player: %.50s", strings.ToLower(player))
}
