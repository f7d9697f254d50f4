package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_RadiusOneIsCenterOnly(t *testing.T) {
	g := NewGrid(10, 10)
	center, _ := g.IndexOf(5, 5)

	cells := Cursor(g, center, 1)
	assert.Len(t, cells, 360, "one ring of 360 samples, duplicates kept")
	assert.Equal(t, []int{center}, unique(cells))
}

func TestCursor_RadiusTwoCoversNeighbourhood(t *testing.T) {
	g := NewGrid(10, 10)
	center, _ := g.IndexOf(5, 5)

	cells := Cursor(g, center, 2)
	assert.Len(t, cells, 720)

	var want []int
	for i := 4; i <= 6; i++ {
		for j := 4; j <= 6; j++ {
			idx, _ := g.IndexOf(i, j)
			want = append(want, idx)
		}
	}
	assert.ElementsMatch(t, want, unique(cells))
}

func TestCursor_RadiusThreeRing(t *testing.T) {
	g := NewGrid(10, 10)
	center, _ := g.IndexOf(5, 5)

	got := map[int]bool{}
	for _, idx := range Cursor(g, center, 3) {
		got[idx] = true
	}
	for _, p := range [][2]int{{5, 7}, {5, 3}, {3, 5}, {7, 5}} {
		idx, _ := g.IndexOf(p[0], p[1])
		assert.True(t, got[idx], "ring of radius 2 reaches %v", p)
	}
	far, _ := g.IndexOf(5, 8)
	assert.False(t, got[far])
	corner, _ := g.IndexOf(3, 3)
	assert.False(t, got[corner], "the sampled disc does not reach the bounding box corner")
}

func TestCursor_ClipsAtEdges(t *testing.T) {
	g := NewGrid(10, 10)

	cells := Cursor(g, 0, 2)
	assert.Less(t, len(cells), 720)
	assert.ElementsMatch(t, []int{0, 1, 10, 11}, unique(cells))
	for _, idx := range cells {
		assert.True(t, idx >= 0 && idx < g.Len())
	}
}

func BenchmarkCursor(b *testing.B) {
	g := NewGrid(200, 200)
	center, _ := g.IndexOf(100, 100)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Cursor(g, center, MaxBrushRadius)
	}
}
