package overlay

import (
	"image/color"
	"time"
)

type Point struct {
	X int
	Y int
}

type Canvas struct {
	Width  int
	Height int
}

// Path is the line drops travel along, from Start towards End
type Path struct {
	Start Point
	End   Point
}

type ColorMode int

const (
	ColorGlobal ColorMode = iota
	ColorPerBoss
)

type Settings struct {
	Enabled      bool
	ShowBossName bool
	ShowMarker   bool
	ColorMode    ColorMode
	GlobalColor  color.NRGBA
	Duration     time.Duration
	StackSpacing int
	Path         Path
}

type OpKind string

const (
	OpIcon   OpKind = "icon"
	OpShadow OpKind = "shadow"
	OpText   OpKind = "text"
)

// DrawOp is a single draw instruction. Ops are meant to be drawn in order.
//
// Text ops are positioned at the text baseline, icon ops at their top left corner.
type DrawOp struct {
	Kind    OpKind
	BossKey string
	Icon    string
	Text    string
	X       int
	Y       int
	Size    int
	Color   color.NRGBA
	Opacity float64
}
