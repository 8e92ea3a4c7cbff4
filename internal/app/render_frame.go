package app

import (
	"time"

	"github.com/Amund211/bosslevels/internal/overlay"
)

type RenderFrame func(canvas overlay.Canvas) []overlay.DrawOp

type frameRenderer interface {
	Render(queue overlay.DropSource, now time.Time, canvas overlay.Canvas, settings overlay.Settings) []overlay.DrawOp
}

func BuildRenderFrame(
	queue overlay.DropSource,
	renderer frameRenderer,
	getSettings GetSettings,
	nowFunc func() time.Time,
) RenderFrame {
	return func(canvas overlay.Canvas) []overlay.DrawOp {
		return renderer.Render(queue, nowFunc(), canvas, OverlaySettings(getSettings()))
	}
}
