package overlay

import (
	"math"
	"strconv"
	"time"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/dropqueue"
)

const (
	IconSize = 16
	IconGap  = 6

	// Ascent of the bold 14px drop font
	DefaultAscent = 14
)

// DropSource is the queue of drops a frame is rendered from
type DropSource interface {
	EvictExpired(now time.Time, duration time.Duration)
	Snapshot() []dropqueue.Drop
	Clear()
}

type bossLookup interface {
	FindByKey(key string) (domain.Boss, bool)
}

type iconSet interface {
	HasIcon(boss domain.Boss) bool
}

type Renderer struct {
	bosses bossLookup
	icons  iconSet
	ascent int
}

func NewRenderer(bosses bossLookup, icons iconSet, ascent int) *Renderer {
	return &Renderer{
		bosses: bosses,
		icons:  icons,
		ascent: ascent,
	}
}

// Render produces the draw ops for one frame, newest drop first.
// A disabled overlay discards every pending drop and draws nothing.
func (r *Renderer) Render(queue DropSource, now time.Time, canvas Canvas, settings Settings) []DrawOp {
	if !settings.Enabled {
		queue.Clear()
		return nil
	}

	duration := max(time.Millisecond, settings.Duration)
	queue.EvictExpired(now, duration)

	drops := queue.Snapshot()
	if len(drops) == 0 {
		return nil
	}

	sx := clamp(settings.Path.Start.X, 0, canvas.Width)
	sy := clamp(settings.Path.Start.Y, 0, canvas.Height)
	ex := clamp(settings.Path.End.X, 0, canvas.Width)
	ey := clamp(settings.Path.End.Y, 0, canvas.Height)

	vx := float64(ex - sx)
	vy := float64(ey - sy)

	px, py := perpendicular(vx, vy)
	spacing := float64(max(0, settings.StackSpacing))

	ops := make([]DrawOp, 0, 3*len(drops))
	for idx, drop := range drops {
		boss, ok := r.bosses.FindByKey(drop.BossKey)
		if !ok {
			continue
		}

		t := clamp01(float64(now.Sub(drop.CreatedAt)) / float64(duration))
		eased := 1 - (1-t)*(1-t)

		x := round(float64(sx) + vx*eased)
		y := round(float64(sy) + vy*eased)
		x += round(px * float64(idx) * spacing)
		y += round(py * float64(idx) * spacing)

		opacity := 1 - t
		foreground := ColorFor(boss, settings.ColorMode, settings.GlobalColor)

		text := "+" + strconv.FormatInt(drop.Amount, 10)
		if settings.ShowBossName {
			text = boss.Name + " " + text
		}

		textX := x
		if settings.ShowMarker && r.icons.HasIcon(boss) {
			textTop := y - r.ascent
			iconY := textTop + max(0, (r.ascent-IconSize)/2)

			ops = append(ops, DrawOp{
				Kind:    OpIcon,
				BossKey: boss.Key,
				Icon:    boss.Icon,
				X:       x,
				Y:       iconY,
				Size:    IconSize,
				Opacity: opacity,
			})
			textX = x + IconSize + IconGap
		}

		ops = append(ops,
			DrawOp{
				Kind:    OpShadow,
				BossKey: boss.Key,
				Text:    text,
				X:       textX + 1,
				Y:       y + 1,
				Color:   shadowColor(foreground),
				Opacity: opacity,
			},
			DrawOp{
				Kind:    OpText,
				BossKey: boss.Key,
				Text:    text,
				X:       textX,
				Y:       y,
				Color:   foreground,
				Opacity: opacity,
			},
		)
	}

	return ops
}

// perpendicular returns the unit normal of (vx, vy), straight down for a zero length path
func perpendicular(vx, vy float64) (float64, float64) {
	length := math.Hypot(vx, vy)
	if length == 0 {
		return 0, 1
	}
	return -vy / length, vx / length
}

func clamp(v, lower, upper int) int {
	return max(lower, min(upper, v))
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// round halves towards positive infinity
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// MarkerIcons reports every boss with an icon file as having a marker
type MarkerIcons struct{}

func (MarkerIcons) HasIcon(boss domain.Boss) bool {
	return boss.Icon != ""
}
