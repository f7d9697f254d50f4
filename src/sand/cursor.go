package sand

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	MinBrushRadius = 1
	MaxBrushRadius = 20
	DefBrushRadius = 8
)

// Cursor returns the brush footprint around center.
//
// Rings of radius 0..radius-1 are sampled every degree, so the result is an
// approximation of a filled disc: small radii leave gaps between rings and the
// same index shows up many times. Callers with non idempotent effects must
// dedupe. Samples falling outside the grid are dropped.
func Cursor(g *Grid, center, radius int) []int {
	ci, cj := g.CoordinatesOf(center)
	cells := make([]int, 0, radius*360)
	for r := 0; r < radius; r++ {
		for deg := 0; deg < 360; deg++ {
			rad := mgl64.DegToRad(float64(deg))
			dj := int(math.Round(float64(r) * math.Cos(rad)))
			di := int(math.Round(float64(r) * math.Sin(rad)))
			if idx, ok := g.IndexOf(ci+di, cj+dj); ok {
				cells = append(cells, idx)
			}
		}
	}
	return cells
}

// unique drops repeated indices keeping first-seen order.
func unique(idxs []int) []int {
	seen := make(map[int]struct{}, len(idxs))
	out := idxs[:0:0]
	for _, idx := range idxs {
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}
