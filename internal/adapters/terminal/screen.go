package terminal

import (
	"fmt"
	"image/color"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/overlay"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// PanelWidth is the number of columns reserved for the boss list on the right
	PanelWidth = 30

	markerGlyph = '◆'

	// Drops fainter than this are indistinguishable from the background
	minVisibleAlpha = 0.05
)

var markerColor = color.NRGBA{R: 0xFF, G: 0xC8, B: 0x00, A: 0xFF}

// Screen draws overlay frames onto a terminal, treating every cell as a block of
// cellWidth x cellHeight pixels
type Screen struct {
	screen     tcell.Screen
	cellWidth  int
	cellHeight int
	background colorful.Color
}

func New(screen tcell.Screen, cellWidth, cellHeight int) *Screen {
	return &Screen{
		screen:     screen,
		cellWidth:  max(1, cellWidth),
		cellHeight: max(1, cellHeight),
		background: colorful.Color{R: 0, G: 0, B: 0},
	}
}

func (s *Screen) overlayColumns() int {
	width, _ := s.screen.Size()
	return max(0, width-PanelWidth)
}

// Canvas is the pixel size of the overlay area, excluding the panel
func (s *Screen) Canvas() overlay.Canvas {
	_, height := s.screen.Size()
	return overlay.Canvas{
		Width:  s.overlayColumns() * s.cellWidth,
		Height: height * s.cellHeight,
	}
}

// Draw replaces the screen contents with one overlay frame and the boss panel
func (s *Screen) Draw(ops []overlay.DrawOp, progress []domain.Progress, focus string) {
	s.screen.Clear()

	for _, op := range ops {
		s.drawOp(op)
	}
	s.drawPanel(progress, focus)

	s.screen.Show()
}

func (s *Screen) drawOp(op overlay.DrawOp) {
	col := floorDiv(op.X, s.cellWidth)
	row := floorDiv(op.Y, s.cellHeight)

	switch op.Kind {
	case overlay.OpIcon:
		// Icons are anchored at their top left corner, place the glyph by its center
		row = floorDiv(op.Y+op.Size/2, s.cellHeight)
		style, ok := s.fadedStyle(markerColor, op.Opacity)
		if !ok {
			return
		}
		s.put(col, row, markerGlyph, style)
	case overlay.OpText:
		style, ok := s.fadedStyle(op.Color, op.Opacity)
		if !ok {
			return
		}
		for i, r := range []rune(op.Text) {
			s.put(col+i, row, r, style.Bold(true))
		}
	case overlay.OpShadow:
		// Cells are opaque, a one pixel shadow has nowhere to show
	}
}

func (s *Screen) put(col, row int, r rune, style tcell.Style) {
	_, height := s.screen.Size()
	if col < 0 || row < 0 || col >= s.overlayColumns() || row >= height {
		return
	}
	s.screen.SetContent(col, row, r, nil, style)
}

// fadedStyle blends c towards the background by its alpha and the op opacity
func (s *Screen) fadedStyle(c color.NRGBA, opacity float64) (tcell.Style, bool) {
	alpha := opacity * float64(c.A) / 255
	if alpha < minVisibleAlpha {
		return tcell.StyleDefault, false
	}

	foreground := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	return tcell.StyleDefault.
		Foreground(toTcell(s.background.BlendRgb(foreground, min(1, alpha)))).
		Background(toTcell(s.background)), true
}

func (s *Screen) drawPanel(progress []domain.Progress, focus string) {
	width, height := s.screen.Size()
	left := s.overlayColumns()
	if width-left < 2 {
		return
	}

	border := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for row := range height {
		s.screen.SetContent(left, row, '│', nil, border)
	}

	header := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	s.writeString(left+2, 0, width, "Boss Levels", header)

	for i, p := range progress {
		row := i + 2
		if row >= height {
			break
		}

		style := tcell.StyleDefault
		if p.Boss.Key == focus {
			style = style.Reverse(true)
		}

		level := fmt.Sprintf("%2d", p.Level)
		nameWidth := max(0, width-left-2-len(level)-1)
		s.writeString(left+2, row, width, fmt.Sprintf("%-*.*s %s", nameWidth, nameWidth, p.Boss.Name, level), style)
	}
}

func (s *Screen) writeString(col, row, limit int, text string, style tcell.Style) {
	for _, r := range text {
		if col >= limit {
			return
		}
		s.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
