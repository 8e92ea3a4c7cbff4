package terminal_test

import (
	"image/color"
	"testing"

	"github.com/Amund211/bosslevels/internal/adapters/terminal"
	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/domaintest"
	"github.com/Amund211/bosslevels/internal/overlay"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T) (tcell.SimulationScreen, *terminal.Screen) {
	t.Helper()

	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	t.Cleanup(sim.Fini)
	sim.SetSize(80, 24)

	return sim, terminal.New(sim, 8, 16)
}

func runeAt(sim tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := sim.GetContent(x, y)
	return r
}

func styleAt(sim tcell.SimulationScreen, x, y int) (tcell.Color, tcell.AttrMask) {
	_, _, style, _ := sim.GetContent(x, y)
	fg, _, attr := style.Decompose()
	return fg, attr
}

func TestCanvas(t *testing.T) {
	t.Parallel()

	_, screen := newScreen(t)

	require.Equal(t, overlay.Canvas{
		Width:  (80 - terminal.PanelWidth) * 8,
		Height: 24 * 16,
	}, screen.Canvas())
}

func TestDrawOps(t *testing.T) {
	t.Parallel()

	red := color.NRGBA{R: 255, A: 255}

	t.Run("text is drawn at its cell", func(t *testing.T) {
		t.Parallel()

		sim, screen := newScreen(t)
		screen.Draw([]overlay.DrawOp{
			{Kind: overlay.OpText, Text: "+50", X: 80, Y: 100, Color: red, Opacity: 1},
		}, nil, "")

		require.Equal(t, '+', runeAt(sim, 10, 6))
		require.Equal(t, '5', runeAt(sim, 11, 6))
		require.Equal(t, '0', runeAt(sim, 12, 6))

		fg, attr := styleAt(sim, 10, 6)
		require.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
		require.NotZero(t, attr&tcell.AttrBold)
	})

	t.Run("opacity blends towards the background", func(t *testing.T) {
		t.Parallel()

		sim, screen := newScreen(t)
		screen.Draw([]overlay.DrawOp{
			{Kind: overlay.OpText, Text: "+1", X: 0, Y: 0, Color: red, Opacity: 0.5},
		}, nil, "")

		fg, _ := styleAt(sim, 0, 0)
		require.Equal(t, tcell.NewRGBColor(128, 0, 0), fg)
	})

	t.Run("faded out text is not drawn", func(t *testing.T) {
		t.Parallel()

		sim, screen := newScreen(t)
		screen.Draw([]overlay.DrawOp{
			{Kind: overlay.OpText, Text: "+1", X: 0, Y: 0, Color: red, Opacity: 0.01},
		}, nil, "")

		require.Equal(t, ' ', runeAt(sim, 0, 0))
	})

	t.Run("shadows are skipped", func(t *testing.T) {
		t.Parallel()

		sim, screen := newScreen(t)
		screen.Draw([]overlay.DrawOp{
			{Kind: overlay.OpShadow, Text: "+1", X: 0, Y: 0, Color: color.NRGBA{A: 255}, Opacity: 1},
		}, nil, "")

		require.Equal(t, ' ', runeAt(sim, 0, 0))
	})

	t.Run("text is clipped at the panel", func(t *testing.T) {
		t.Parallel()

		sim, screen := newScreen(t)
		screen.Draw([]overlay.DrawOp{
			{Kind: overlay.OpText, Text: "+123", X: 49 * 8, Y: 16 * 20, Color: red, Opacity: 1},
		}, nil, "")

		require.Equal(t, '+', runeAt(sim, 49, 20))
		require.Equal(t, '│', runeAt(sim, 50, 20))
	})

	t.Run("icons become a marker glyph", func(t *testing.T) {
		t.Parallel()

		sim, screen := newScreen(t)
		screen.Draw([]overlay.DrawOp{
			{Kind: overlay.OpIcon, Icon: "zulrah.png", X: 16, Y: 80, Size: overlay.IconSize, Opacity: 1},
		}, nil, "")

		require.Equal(t, '◆', runeAt(sim, 2, 5))
	})
}

func TestDrawPanel(t *testing.T) {
	t.Parallel()

	zulrah := domaintest.NewBossBuilder("Zulrah").Build()
	vorkath := domaintest.NewBossBuilder("Vorkath").WithOrdinal(1).Build()

	sim, screen := newScreen(t)
	screen.Draw(nil, []domain.Progress{
		domain.NewProgress(zulrah, 500),
		domain.NewProgress(vorkath, 0),
	}, "vorkath")

	require.Equal(t, 'B', runeAt(sim, 52, 0))
	require.Equal(t, 'Z', runeAt(sim, 52, 2))
	require.Equal(t, '5', runeAt(sim, 79, 2))
	require.Equal(t, 'V', runeAt(sim, 52, 3))
	require.Equal(t, '1', runeAt(sim, 79, 3))

	_, zulrahAttr := styleAt(sim, 52, 2)
	require.Zero(t, zulrahAttr&tcell.AttrReverse)
	_, vorkathAttr := styleAt(sim, 52, 3)
	require.NotZero(t, vorkathAttr&tcell.AttrReverse)
}
