package view

import (
	"image/color"

	"sandsim/src/sand"
)

var (
	//xterm 256 color ramp of sand, brightest first
	sandRamp = []uint8{229, 228, 227, 221, 220, 214, 178, 172, 136, 130, 94}

	sandColor  = color.RGBA{R: 230, G: 196, B: 120, A: 255}
	rockColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	airColor   = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	hoverColor = color.RGBA{R: 90, G: 160, B: 220, A: 255}
)

//sandShade picks a ramp entry for a brightness percentage in [20, 100]
func sandShade(brightness float64) uint8 {
	last := len(sandRamp) - 1
	pos := int((100 - brightness) / 80 * float64(last))
	if pos < 0 {
		pos = 0
	}
	if pos > last {
		pos = last
	}
	return sandRamp[pos]
}

//cellRGBA is the window color of a cell, pressure darkens sand
func cellRGBA(c sand.Cell, pressureMax int) color.RGBA {
	var base color.RGBA
	switch {
	case c.IsDead():
		base = airColor
	case c.Kind == sand.KindRock:
		base = rockColor
	default:
		base = scale(sandColor, sand.Brightness(c.Pressure, pressureMax)/100)
	}
	if c.IsHovered() {
		return blend(base, hoverColor, 0.5)
	}
	return base
}

func scale(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R)*f + 0.5),
		G: uint8(float64(c.G)*f + 0.5),
		B: uint8(float64(c.B)*f + 0.5),
		A: c.A,
	}
}

func blend(base, overlay color.RGBA, w float64) color.RGBA {
	inv := 1 - w
	return color.RGBA{
		R: uint8(float64(base.R)*inv + float64(overlay.R)*w + 0.5),
		G: uint8(float64(base.G)*inv + float64(overlay.G)*w + 0.5),
		B: uint8(float64(base.B)*inv + float64(overlay.B)*w + 0.5),
		A: 255,
	}
}

//fillCellsRGBA converts cells into RGBA pixels in buf
func fillCellsRGBA(buf []byte, cells []sand.Cell, pressureMax int) {
	for i, c := range cells {
		col := cellRGBA(c, pressureMax)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
