package ports

import (
	"fmt"
	"image/color"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Amund211/bosslevels/internal/app"
	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/overlay"
)

const maxCanvasSize = 16384

type overlayFrameResponse struct {
	Ops []drawOpResponse `json:"ops"`
}

type drawOpResponse struct {
	Kind    string  `json:"kind"`
	BossKey string  `json:"bossKey"`
	Icon    string  `json:"icon,omitempty"`
	Text    string  `json:"text,omitempty"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Size    int     `json:"size,omitempty"`
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity"`
}

func MakeGetOverlayFrameHandler(
	renderFrame app.RenderFrame,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newHandlerMiddleware(
		"overlayframe",
		allowedOrigins,
		rootLogger,
		sentryMiddleware,
		// NOTE: Polled once per frame
		limits{refillPerSecond: 120, burstSize: 600},
		limits{refillPerSecond: 65, burstSize: 300},
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		canvas, err := parseCanvas(r)
		if err != nil {
			statusCode := http.StatusBadRequest
			logging.FromContext(ctx).InfoContext(ctx, "Invalid canvas. Returning error", "statusCode", statusCode, "reason", "invalid canvas", "error", err)
			http.Error(w, "Invalid canvas size", statusCode)
			return
		}

		ops := renderFrame(canvas)

		writeJSONResponse(ctx, w, frameToResponse(ops))
	}

	return middleware(handler)
}

func parseCanvas(r *http.Request) (overlay.Canvas, error) {
	width, err := parseDimension(r.URL.Query().Get("width"))
	if err != nil {
		return overlay.Canvas{}, fmt.Errorf("invalid width: %w", err)
	}
	height, err := parseDimension(r.URL.Query().Get("height"))
	if err != nil {
		return overlay.Canvas{}, fmt.Errorf("invalid height: %w", err)
	}
	return overlay.Canvas{Width: width, Height: height}, nil
}

func parseDimension(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 0 || value > maxCanvasSize {
		return 0, fmt.Errorf("%d out of range [0, %d]", value, maxCanvasSize)
	}
	return value, nil
}

func frameToResponse(ops []overlay.DrawOp) overlayFrameResponse {
	response := overlayFrameResponse{
		Ops: make([]drawOpResponse, 0, len(ops)),
	}
	for _, op := range ops {
		opResponse := drawOpResponse{
			Kind:    string(op.Kind),
			BossKey: op.BossKey,
			Icon:    op.Icon,
			Text:    op.Text,
			X:       op.X,
			Y:       op.Y,
			Size:    op.Size,
			Opacity: op.Opacity,
		}
		if op.Kind != overlay.OpIcon {
			opResponse.Color = colorToHex(op.Color)
		}
		response.Ops = append(response.Ops, opResponse)
	}
	return response
}

func colorToHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
