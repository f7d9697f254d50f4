package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand replays fixed draws for IntN, cycling when exhausted.
type seqRand struct {
	draws []int
	calls int
}

func (r *seqRand) IntN(n int) int {
	v := r.draws[r.calls%len(r.draws)]
	r.calls++
	if v >= n {
		v = n - 1
	}
	return v
}

// slipDraw returns the IntN result that yields a signed slip for the given slippage.
func slipDraw(slip, slippage int) int { return slip + slippage }

func place(t *testing.T, g *Grid, k Kind, i, j int) int {
	t.Helper()
	idx, ok := g.IndexOf(i, j)
	require.True(t, ok, "(%d,%d) outside grid", i, j)
	g.At(idx).SetKind(k).SetAlive()
	return idx
}

func kindAt(g *Grid, i, j int) Kind {
	idx, _ := g.IndexOf(i, j)
	c := g.At(idx)
	if c.IsDead() {
		return KindNone
	}
	return c.Kind
}

func TestEngine_GravityFallsOneRowPerTick(t *testing.T) {
	g := NewGrid(5, 5)
	rnd := &seqRand{draws: []int{0}}
	e := NewEngine(g, rnd, 2)
	place(t, g, KindSand, 0, 2)

	for row := 1; row <= 4; row++ {
		require.True(t, e.Tick())
		assert.Equal(t, KindSand, kindAt(g, row, 2), "tick %d", row)
		assert.Equal(t, KindNone, kindAt(g, row-1, 2), "tick %d", row)
		assert.Equal(t, 1, g.Count(KindSand))
	}

	before := g.Snapshot(nil)
	assert.False(t, e.Tick(), "a grain on the floor does not move")
	assert.Equal(t, before, g.Cells())
	assert.Zero(t, rnd.calls, "nothing was blocked by another cell")
}

func TestEngine_FallBeatsSlip(t *testing.T) {
	g := NewGrid(5, 5)
	rnd := &seqRand{draws: []int{slipDraw(2, 2)}}
	e := NewEngine(g, rnd, 2)
	place(t, g, KindSand, 2, 2)

	e.Tick()
	assert.Equal(t, KindSand, kindAt(g, 3, 2))
	assert.Zero(t, rnd.calls)
}

func TestEngine_Slip(t *testing.T) {
	tests := []struct {
		name     string
		slip     int
		col      int   // column of the falling grain
		blockers [][2]int
		wantRow  int
		wantCol  int
	}{
		{"right two", 2, 2, nil, 4, 4},
		{"left one", -1, 2, nil, 4, 1},
		{"left three", -3, 3, nil, 4, 0},
		{"zero draw stays", 0, 2, nil, 3, 2},
		{"side neighbour blocks", 2, 2, [][2]int{{3, 3}}, 3, 2},
		{"stops before second obstacle", 3, 1, [][2]int{{4, 3}}, 4, 2},
		{"edge of grid ends the walk", 3, 3, nil, 4, 4},
		{"at the edge with nowhere to go", 2, 4, nil, 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(5, 5)
			e := NewEngine(g, &seqRand{draws: []int{slipDraw(tt.slip, 3)}}, 3)
			place(t, g, KindRock, 4, tt.col)
			for _, b := range tt.blockers {
				place(t, g, KindRock, b[0], b[1])
			}
			place(t, g, KindSand, 3, tt.col)

			e.Tick()

			assert.Equal(t, KindSand, kindAt(g, tt.wantRow, tt.wantCol))
			assert.Equal(t, 1, g.Count(KindSand))
			if tt.wantRow != 3 || tt.wantCol != tt.col {
				assert.Equal(t, KindNone, kindAt(g, 3, tt.col), "origin must be emptied")
			}
		})
	}
}

func TestEngine_PileConservation(t *testing.T) {
	g := NewGrid(30, 20)
	e := NewEngine(g, NewRand(7), DefSlippage)
	rnd := NewRand(11)
	for n := 0; n < 150; n++ {
		idx, _ := g.IndexOf(rnd.IntN(10), rnd.IntN(g.Width))
		g.At(idx).SetKind(KindSand).SetAlive()
	}
	for j := 5; j < 25; j++ {
		place(t, g, KindRock, 15, j)
	}
	sand, rock := g.Count(KindSand), g.Count(KindRock)

	for n := 0; n < 400; n++ {
		e.Tick()
		require.Equal(t, sand, g.Count(KindSand), "tick %d", n)
	}
	assert.Equal(t, rock, g.Count(KindRock))

	for idx := range g.Cells() {
		c := g.At(idx)
		if c.IsDead() {
			assert.Equal(t, KindNone, c.Kind)
			assert.Zero(t, c.Pressure)
		}
	}
}

func TestEngine_PressureOfSettledStack(t *testing.T) {
	g := NewGrid(1, 6)
	e := NewEngine(g, &seqRand{draws: []int{slipDraw(3, 3), slipDraw(-3, 3)}}, 3)
	place(t, g, KindSand, 5, 0)
	place(t, g, KindSand, 4, 0)
	place(t, g, KindSand, 3, 0)
	place(t, g, KindSand, 0, 0)

	for n := 0; n < 10; n++ {
		e.Tick()
	}

	want := []uint8{3, 2, 1, 0}
	for k, p := range want {
		idx, _ := g.IndexOf(5-k, 0)
		c := g.At(idx)
		require.True(t, c.IsAlive(), "row %d", 5-k)
		assert.Equal(t, p, c.Pressure, "row %d", 5-k)
	}
	assert.Equal(t, KindNone, kindAt(g, 1, 0))
}

func TestEngine_PressureCountsRockButNotSelf(t *testing.T) {
	g := NewGrid(3, 4)
	e := NewEngine(g, &seqRand{draws: []int{3}}, 3)
	place(t, g, KindSand, 3, 1)
	place(t, g, KindRock, 2, 1)
	place(t, g, KindRock, 0, 1)

	assert.Equal(t, uint8(1), e.Pressure(3, 1), "the gap at row 1 ends the stack")
	assert.Equal(t, uint8(0), e.Pressure(0, 1))
}

func TestEngine_RockNeverMoves(t *testing.T) {
	g := NewGrid(5, 5)
	e := NewEngine(g, &seqRand{draws: []int{slipDraw(2, 2)}}, 2)
	place(t, g, KindRock, 0, 2)
	place(t, g, KindRock, 3, 0)
	place(t, g, KindSand, 4, 0)

	for n := 0; n < 6; n++ {
		e.Tick()
	}
	assert.Equal(t, KindRock, kindAt(g, 0, 2))
	assert.Equal(t, KindRock, kindAt(g, 3, 0))
	assert.Equal(t, 2, g.Count(KindRock))
}

func TestEngine_NoSlippage(t *testing.T) {
	g := NewGrid(3, 3)
	rnd := &seqRand{draws: []int{0}}
	e := NewEngine(g, rnd, 0)
	place(t, g, KindSand, 2, 1)
	place(t, g, KindSand, 1, 1)

	e.Tick()
	assert.Equal(t, KindSand, kindAt(g, 1, 1))
	assert.Zero(t, rnd.calls)
}

func BenchmarkEngine_Tick(b *testing.B) {
	c := NewController(Config{Width: 200, Height: 200, Slippage: DefSlippage, BrushRadius: 20, Seed: 1})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%50 == 0 {
			b.StopTimer()
			c.Reset()
			idx, _ := c.Grid().IndexOf(25, 100)
			c.Paint(idx)
			b.StartTimer()
		}
		c.Tick()
	}
}
