package ports

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Amund211/bosslevels/internal/app"
	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/normalizer"
	"github.com/Amund211/bosslevels/internal/strutils"
)

const maxChatBodyBytes = 4 * 1024

type chatRequest struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

type chatResponse struct {
	Success  bool            `json:"success"`
	Accepted bool            `json:"accepted"`
	Update   *updateResponse `json:"update,omitempty"`
}

type updateResponse struct {
	Boss      string `json:"boss"`
	GainedXP  int64  `json:"gainedXp"`
	TotalXP   int64  `json:"totalXp"`
	OldLevel  int    `json:"oldLevel"`
	NewLevel  int    `json:"newLevel"`
	LeveledUp bool   `json:"leveledUp"`
}

func MakePostChatHandler(
	handleChatLine app.HandleChatLine,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newHandlerMiddleware(
		"chat",
		allowedOrigins,
		rootLogger,
		sentryMiddleware,
		// NOTE: A busy chat delivers several lines per second
		limits{refillPerSecond: 20, burstSize: 200},
		limits{refillPerSecond: 10, burstSize: 100},
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var request chatRequest
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(&request)
		if err != nil {
			statusCode := http.StatusBadRequest
			logging.FromContext(ctx).InfoContext(ctx, "Invalid chat request. Returning error", "statusCode", statusCode, "reason", "invalid body", "error", err)
			http.Error(w, "Invalid request body", statusCode)
			return
		}

		event := normalizer.Event{
			Message: strutils.CleanChatLine(request.Message),
			Sender:  strutils.CleanChatLine(request.Sender),
		}

		result, accepted := handleChatLine(ctx, event)

		response := chatResponse{
			Success:  true,
			Accepted: accepted,
		}
		if accepted {
			response.Update = updateToResponse(result)
		}

		writeJSONResponse(ctx, w, response)
	}

	return middleware(handler)
}

func updateToResponse(result domain.UpdateResult) *updateResponse {
	return &updateResponse{
		Boss:      result.Boss.Key,
		GainedXP:  result.GainedXP,
		TotalXP:   result.TotalXP,
		OldLevel:  result.OldLevel,
		NewLevel:  result.NewLevel,
		LeveledUp: result.LeveledUp,
	}
}
