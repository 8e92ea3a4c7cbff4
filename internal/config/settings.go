package config

import (
	"fmt"
	"image/color"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/lucasb-eyer/go-colorful"
)

type ColorMode string

const (
	ColorModeGlobal  ColorMode = "GLOBAL"
	ColorModePerBoss ColorMode = "PER_BOSS"
)

// Settings are the user facing options of the xp drop overlay and the chat notifications
type Settings struct {
	EnableXPDrops      bool        `env:"ENABLE_XP_DROPS"        envDefault:"true"`
	ShowBossNameInDrop bool        `env:"SHOW_BOSS_NAME_IN_DROP" envDefault:"false"`
	ShowBossMarker     bool        `env:"SHOW_BOSS_MARKER"       envDefault:"true"`
	ColorMode          ColorMode   `env:"COLOR_MODE"             envDefault:"GLOBAL"`
	GlobalXPColor      color.NRGBA `env:"GLOBAL_XP_COLOR"        envDefault:"#FFC800FF"`
	MaxVisibleDrops    int         `env:"MAX_VISIBLE_DROPS"      envDefault:"6"`
	DurationMs         int         `env:"DURATION_MS"            envDefault:"1600"`
	StartX             int         `env:"START_X"                envDefault:"470"`
	StartY             int         `env:"START_Y"                envDefault:"35"`
	EndX               int         `env:"END_X"                  envDefault:"470"`
	EndY               int         `env:"END_Y"                  envDefault:"5"`
	StackSpacing       int         `env:"STACK_SPACING"          envDefault:"14"`
	CombineDrops       bool        `env:"COMBINE_DROPS"          envDefault:"true"`
	CombineWindowMs    int         `env:"COMBINE_WINDOW_MS"      envDefault:"450"`
	EnableChatLine     bool        `env:"ENABLE_CHAT_LINE"       envDefault:"true"`
	EnableFireworks    bool        `env:"ENABLE_FIREWORKS"       envDefault:"true"`
}

const settingsPrefix = "BOSSLEVELS_"

func (s Settings) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

func (s Settings) CombineWindow() time.Duration {
	return time.Duration(s.CombineWindowMs) * time.Millisecond
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	settings, err := parseSettings(map[string]string{})
	if err != nil {
		panic(fmt.Sprintf("logic error: default settings are invalid: %s", err.Error()))
	}
	return settings
}

// SettingsFromEnv reads BOSSLEVELS_ prefixed overlay settings.
// Numeric values outside their supported range are clamped into it.
func SettingsFromEnv() (Settings, error) {
	return parseSettings(nil)
}

func parseSettings(environment map[string]string) (Settings, error) {
	var settings Settings

	opts := env.Options{
		Prefix: settingsPrefix,
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeFor[color.NRGBA](): func(v string) (any, error) {
				return ParseColor(v)
			},
		},
	}
	if environment != nil {
		opts.Environment = environment
	}

	err := env.ParseWithOptions(&settings, opts)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	switch ColorMode(strings.ToUpper(string(settings.ColorMode))) {
	case ColorModeGlobal:
		settings.ColorMode = ColorModeGlobal
	case ColorModePerBoss:
		settings.ColorMode = ColorModePerBoss
	default:
		return Settings{}, fmt.Errorf("%w: %sCOLOR_MODE (%s)", ErrInvalidValue, settingsPrefix, settings.ColorMode)
	}

	return settings.Clamped(), nil
}

// Clamped returns a copy with every ranged option moved into its supported range
func (s Settings) Clamped() Settings {
	s.MaxVisibleDrops = clamp(s.MaxVisibleDrops, 1, 12)
	s.DurationMs = clamp(s.DurationMs, 300, 5000)
	s.StackSpacing = clamp(s.StackSpacing, 0, 30)
	s.CombineWindowMs = clamp(s.CombineWindowMs, 50, 1500)
	return s
}

func clamp(value, lower, upper int) int {
	return max(lower, min(upper, value))
}

// ParseColor parses #RRGGBB or #RRGGBBAA
func ParseColor(raw string) (color.NRGBA, error) {
	raw = strings.TrimSpace(raw)

	alpha := uint8(255)
	switch len(raw) {
	case len("#RRGGBB"):
	case len("#RRGGBBAA"):
		parsed, err := strconv.ParseUint(raw[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: color alpha (%s)", ErrInvalidValue, raw)
		}
		alpha = uint8(parsed)
		raw = raw[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("%w: color (%s)", ErrInvalidValue, raw)
	}

	c, err := colorful.Hex(raw)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color (%s): %w", ErrInvalidValue, raw, err)
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
