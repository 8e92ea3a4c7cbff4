package ports

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Amund211/bosslevels/internal/app"
	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/reporting"
)

type bossesResponse struct {
	Revision uint64                `json:"revision"`
	Focus    string                `json:"focus,omitempty"`
	Bosses   []bossOverviewResponse `json:"bosses"`
}

type bossOverviewResponse struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	XP    int64  `json:"xp"`
	Level int    `json:"level"`
}

type bossDetailResponse struct {
	bossOverviewResponse
	CurrentLevelXP  int64 `json:"currentLevelXp"`
	NextLevelXP     int64 `json:"nextLevelXp"`
	ProgressPercent int   `json:"progressPercent"`
}

func MakeGetBossesHandler(
	getOverview app.GetOverview,
	getPanelState func() (uint64, string),
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newHandlerMiddleware(
		"bosses",
		allowedOrigins,
		rootLogger,
		sentryMiddleware,
		limits{refillPerSecond: 8, burstSize: 120},
		limits{refillPerSecond: 4, burstSize: 60},
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// NOTE: Read the state first so a refresh racing the snapshot only causes an extra reload
		revision, focus := getPanelState()
		overview := getOverview(ctx)

		response := bossesResponse{
			Revision: revision,
			Focus:    focus,
			Bosses:   make([]bossOverviewResponse, 0, len(overview)),
		}
		for _, progress := range overview {
			response.Bosses = append(response.Bosses, progressToResponse(progress))
		}

		writeJSONResponse(ctx, w, response)
	}

	return middleware(handler)
}

func MakeGetBossDetailHandler(
	getBossDetail app.GetBossDetail,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newHandlerMiddleware(
		"bossdetail",
		allowedOrigins,
		rootLogger,
		sentryMiddleware,
		limits{refillPerSecond: 8, burstSize: 120},
		limits{refillPerSecond: 4, burstSize: 60},
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		bossKey := r.PathValue("key")
		ctx = logging.AddBossToContext(ctx, bossKey)
		ctx = reporting.SetBossInContext(ctx, bossKey)

		detail, err := getBossDetail(ctx, bossKey)
		if errors.Is(err, domain.ErrBossNotFound) {
			statusCode := http.StatusNotFound
			logging.FromContext(ctx).InfoContext(ctx, "Unknown boss. Returning error", "statusCode", statusCode, "reason", "boss not found")
			http.Error(w, "Boss not found", statusCode)
			return
		} else if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "Error getting boss detail", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		writeJSONResponse(ctx, w, bossDetailResponse{
			bossOverviewResponse: progressToResponse(detail.Progress),
			CurrentLevelXP:       detail.CurrentLevelXP,
			NextLevelXP:          detail.NextLevelXP,
			ProgressPercent:      detail.ProgressPercent,
		})
	}

	return middleware(handler)
}

func progressToResponse(progress domain.Progress) bossOverviewResponse {
	return bossOverviewResponse{
		Key:   progress.Boss.Key,
		Name:  progress.Boss.Name,
		Icon:  progress.Boss.Icon,
		XP:    progress.XP,
		Level: progress.Level,
	}
}
