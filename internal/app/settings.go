package app

import (
	"github.com/Amund211/bosslevels/internal/config"
	"github.com/Amund211/bosslevels/internal/dropqueue"
	"github.com/Amund211/bosslevels/internal/overlay"
)

type GetSettings func() config.Settings

func StaticSettings(settings config.Settings) GetSettings {
	return func() config.Settings {
		return settings
	}
}

func OverlaySettings(settings config.Settings) overlay.Settings {
	colorMode := overlay.ColorGlobal
	if settings.ColorMode == config.ColorModePerBoss {
		colorMode = overlay.ColorPerBoss
	}

	return overlay.Settings{
		Enabled:      settings.EnableXPDrops,
		ShowBossName: settings.ShowBossNameInDrop,
		ShowMarker:   settings.ShowBossMarker,
		ColorMode:    colorMode,
		GlobalColor:  settings.GlobalXPColor,
		Duration:     settings.Duration(),
		StackSpacing: settings.StackSpacing,
		Path: overlay.Path{
			Start: overlay.Point{X: settings.StartX, Y: settings.StartY},
			End:   overlay.Point{X: settings.EndX, Y: settings.EndY},
		},
	}
}

func DropPolicy(settings config.Settings) dropqueue.Policy {
	return dropqueue.Policy{
		MergeEnabled: settings.CombineDrops,
		MergeWindow:  settings.CombineWindow(),
		MaxVisible:   settings.MaxVisibleDrops,
	}
}
