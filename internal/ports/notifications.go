package ports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Amund211/bosslevels/internal/adapters/notifier"
)

type notificationsResponse struct {
	Notifications []notificationResponse `json:"notifications"`
}

type notificationResponse struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	BossKey   string    `json:"bossKey,omitempty"`
	Level     int       `json:"level,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func MakeGetNotificationsHandler(
	drainNotifications func() []notifier.Notification,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newHandlerMiddleware(
		"notifications",
		allowedOrigins,
		rootLogger,
		sentryMiddleware,
		limits{refillPerSecond: 8, burstSize: 120},
		limits{refillPerSecond: 4, burstSize: 60},
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		notifications := drainNotifications()

		response := notificationsResponse{
			Notifications: make([]notificationResponse, 0, len(notifications)),
		}
		for _, n := range notifications {
			response.Notifications = append(response.Notifications, notificationResponse{
				Kind:      string(n.Kind),
				Message:   n.Message,
				BossKey:   n.BossKey,
				Level:     n.Level,
				CreatedAt: n.CreatedAt,
			})
		}

		writeJSONResponse(ctx, w, response)
	}

	return middleware(handler)
}
