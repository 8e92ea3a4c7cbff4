package celebration

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type note struct {
	frequency float64
	duration  time.Duration
}

var levelUpNotes = []note{
	{frequency: 1046.50, duration: 90 * time.Millisecond},  // C6
	{frequency: 1318.51, duration: 160 * time.Millisecond}, // E6
}

var maxLevelNotes = []note{
	{frequency: 1046.50, duration: 110 * time.Millisecond}, // C6
	{frequency: 1318.51, duration: 110 * time.Millisecond}, // E6
	{frequency: 1567.98, duration: 110 * time.Millisecond}, // G6
	{frequency: 2093.00, duration: 400 * time.Millisecond}, // C7
}

// Chime plays a short tune through the speaker on level-up, and a longer one at max level
type Chime struct {
	play   func(beep.Streamer)
	volume float64
}

// NewChime initializes the speaker. Failing to do so is not fatal, callers should fall back to
// another celebrator.
func NewChime(volume float64) (*Chime, error) {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	return newChime(func(s beep.Streamer) { speaker.Play(s) }, volume), nil
}

func newChime(play func(beep.Streamer), volume float64) *Chime {
	return &Chime{
		play:   play,
		volume: volume,
	}
}

func (c *Chime) Celebrate(ctx context.Context, celebration domain.Celebration) {
	logging.FromContext(ctx).DebugContext(
		ctx,
		"Playing level-up chime",
		slog.String("boss", celebration.Boss.Key),
		slog.Int("level", celebration.Level),
	)

	c.play(Melody(celebration, c.volume))
}

// Melody returns the tune for a celebration
func Melody(celebration domain.Celebration, volume float64) beep.Streamer {
	notes := levelUpNotes
	if celebration.IsMaxLevel() {
		notes = maxLevelNotes
	}

	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.frequency)
		if err != nil {
			// Only fails for frequencies above the Nyquist frequency
			panic(fmt.Sprintf("logic error: invalid note frequency %f: %s", n.frequency, err.Error()))
		}
		streamers = append(streamers, beep.Take(sampleRate.N(n.duration), tone))
	}

	return withVolume(beep.Seq(streamers...), volume)
}

// math.Log2(0) is -Inf, so zero volume is silent instead
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume), Silent: false}
}

// MelodyDuration returns how long the tune for a celebration plays
func MelodyDuration(celebration domain.Celebration) time.Duration {
	notes := levelUpNotes
	if celebration.IsMaxLevel() {
		notes = maxLevelNotes
	}

	var total time.Duration
	for _, n := range notes {
		total += n.duration
	}
	return total
}
