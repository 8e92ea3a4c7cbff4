package logging

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// PlayerHeader optionally identifies the player a request is made on behalf of
const PlayerHeader = "X-Player-Name"

// CorrelationHeader is echoed on every response so clients can refer to the log lines of a request
const CorrelationHeader = "X-Correlation-ID"

func headerOrMissing(r *http.Request, key string) string {
	if value := r.Header.Get(key); value != "" {
		return value
	}
	return "<missing>"
}

// correlationID reuses a well formed id from the client, or makes a new one
func correlationID(r *http.Request) string {
	if id, err := uuid.Parse(r.Header.Get(CorrelationHeader)); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func NewRequestLoggerMiddleware(logger *slog.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := correlationID(r)
			w.Header().Set(CorrelationHeader, id)

			requestLogger := logger.With(
				slog.String("correlationID", id),
				slog.String("player", headerOrMissing(r, PlayerHeader)),
				slog.String("userAgent", headerOrMissing(r, "User-Agent")),
				slog.String("methodPath", r.Method+" "+r.URL.Path),
			)

			next(w, r.WithContext(AddToContext(r.Context(), requestLogger)))
		}
	}
}
