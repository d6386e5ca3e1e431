package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/zoo-spree/physics"
)

// RGB stores 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Palette
var (
	RGBBlack  = RGB{0, 0, 0}
	RGBWhite  = RGB{255, 255, 255}
	RGBRed    = RGB{220, 60, 60}
	RGBGreen  = RGB{60, 200, 90}
	RGBBlue   = RGB{70, 110, 230}
	RGBYellow = RGB{230, 200, 60}
	RGBGray   = RGB{120, 120, 120}
)

// FromPhysics converts a [0,1] float color
func FromPhysics(c physics.Color) RGB {
	return RGB{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B)}
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Blend mixes src over dst: src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Scale darkens or brightens by f, clamped
func (c RGB) Scale(f float64) RGB {
	ch := func(v uint8) uint8 {
		x := float64(v) * f
		if x >= 255 {
			return 255
		}
		if x <= 0 {
			return 0
		}
		return uint8(x)
	}
	return RGB{ch(c.R), ch(c.G), ch(c.B)}
}

func (c RGB) TCell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style returns a foreground style in c
func (c RGB) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.TCell())
}
