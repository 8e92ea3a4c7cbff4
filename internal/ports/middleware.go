package ports

import (
	"log/slog"
	"net/http"

	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/ratelimiting"
	"github.com/Amund211/bosslevels/internal/reporting"
)

func NewRateLimitMiddleware(rateLimiter ratelimiting.RequestRateLimiter, onLimitExceeded http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !rateLimiter.Consume(r) {
				onLimitExceeded(w, r)
				return
			}

			next(w, r)
		}
	}
}

func ComposeMiddlewares(middlewares ...func(http.HandlerFunc) http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	if len(middlewares) == 1 {
		return middlewares[0]
	}
	first := middlewares[0]
	rest := ComposeMiddlewares(middlewares[1:]...)
	return func(h http.HandlerFunc) http.HandlerFunc {
		return first(rest(h))
	}
}

type limits struct {
	refillPerSecond ratelimiting.RefillPerSecond
	burstSize       ratelimiting.BurstSize
}

func makeOnLimitExceeded(rateLimiter ratelimiting.RequestRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		statusCode := http.StatusTooManyRequests

		logging.FromContext(ctx).InfoContext(ctx, "Rate limit exceeded",
			slog.Int("statusCode", statusCode),
			slog.String("reason", "ratelimit exceeded"),
			slog.String("key", rateLimiter.KeyFor(r)),
		)

		http.Error(w, "Rate limit exceeded", statusCode)
	}
}

// newClientRateLimitMiddleware limits requests per ip, and per player on a stricter budget
func newClientRateLimitMiddleware(ip, player limits) func(http.HandlerFunc) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(ip.refillPerSecond, ip.burstSize)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(ipLimiter, ratelimiting.IPKeyFunc)

	playerLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(player.refillPerSecond, player.burstSize)
	playerRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		// NOTE: Rate limiting based on user controlled value
		playerLimiter,
		ratelimiting.PlayerKeyFunc,
	)

	return ComposeMiddlewares(
		NewRateLimitMiddleware(ipRateLimiter, makeOnLimitExceeded(ipRateLimiter)),
		NewRateLimitMiddleware(playerRateLimiter, makeOnLimitExceeded(playerRateLimiter)),
	)
}

// newHandlerMiddleware is the middleware stack shared by every handler
func newHandlerMiddleware(
	handlerName string,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
	ip, player limits,
) func(http.HandlerFunc) http.HandlerFunc {
	return ComposeMiddlewares(
		buildMetricsMiddleware(handlerName),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware(handlerName),
		BuildCORSMiddleware(allowedOrigins),
		newClientRateLimitMiddleware(ip, player),
		addPlayerMiddleware,
	)
}

// addPlayerMiddleware tags logs and reports with the player the request is made for
func addPlayerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		player := r.Header.Get(logging.PlayerHeader)
		if player == "" {
			player = "<missing>"
		}
		ctx = reporting.SetPlayerInContext(ctx, player)
		ctx = logging.AddMetaToContext(ctx, slog.String("player", player))

		next(w, r.WithContext(ctx))
	}
}
