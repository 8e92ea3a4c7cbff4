package overlay

import (
	"image/color"
	"math"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	hueStep        = 0.21
	bossSaturation = 0.70
	bossBrightness = 1.0
)

// ColorFor returns the drop color of a boss.
// Per boss colors are spread around the hue circle by ordinal and keep the alpha of the global color.
func ColorFor(boss domain.Boss, mode ColorMode, global color.NRGBA) color.NRGBA {
	if mode != ColorPerBoss {
		return global
	}

	hue := math.Mod(float64(boss.Ordinal)*hueStep, 1.0)
	if hue < 0 {
		hue += 1.0
	}

	r, g, b := colorful.Hsv(hue*360, bossSaturation, bossBrightness).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: global.A}
}

// Black, as opaque as the foreground
func shadowColor(foreground color.NRGBA) color.NRGBA {
	return color.NRGBA{A: foreground.A}
}
