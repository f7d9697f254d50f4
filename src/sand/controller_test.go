package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(w, h, radius int) *Controller {
	return NewController(Config{
		Width:       w,
		Height:      h,
		Slippage:    2,
		BrushRadius: radius,
		Rand:        &seqRand{draws: []int{2}},
	})
}

func TestNewController_defaults(t *testing.T) {
	c := NewController(DefaultConfig())
	assert.True(t, c.Active())
	assert.Equal(t, DefBrushRadius, c.BrushRadius())
	assert.Equal(t, ModeAdd, c.Mode())
	assert.Equal(t, KindSand, c.Kind())
	assert.Equal(t, (DefWidth-1)+(DefHeight-1), c.PressureMax())
	assert.Equal(t, DefWidth*DefHeight, c.Grid().Len())
	assert.Equal(t, DefSlippage, c.Engine().Slippage())
}

func TestController_PaintAndErase(t *testing.T) {
	c := newTestController(10, 10, 2)
	center, _ := c.Grid().IndexOf(5, 5)

	c.SetKind(KindRock)
	require.True(t, c.Paint(center))
	assert.Equal(t, 9, c.Grid().Count(KindRock))
	assert.False(t, c.Paint(center), "painting the same cells again changes nothing")

	require.True(t, c.Erase(center))
	assert.Equal(t, 0, c.Grid().Count(KindRock))
	assert.False(t, c.Erase(center))
}

func TestController_ToggleTwiceRestores(t *testing.T) {
	c := newTestController(5, 5, 1)
	idx, _ := c.Grid().IndexOf(2, 2)

	require.True(t, c.Toggle(idx))
	assert.True(t, c.Grid().At(idx).IsAlive(), "a single toggle flips the cell")
	assert.Equal(t, KindSand, c.Grid().At(idx).Kind)

	require.True(t, c.Toggle(idx))
	assert.Equal(t, Cell{}, *c.Grid().At(idx))
}

func TestController_ToggleFlipsEachCellOnce(t *testing.T) {
	c := newTestController(10, 10, 2)
	center, _ := c.Grid().IndexOf(5, 5)
	c.Grid().At(center).SetKind(KindSand).SetAlive()

	c.Toggle(center)
	assert.True(t, c.Grid().At(center).IsDead())
	assert.Equal(t, 8, c.Grid().Count(KindSand))
}

func TestController_ApplyFollowsMode(t *testing.T) {
	c := newTestController(5, 5, 1)
	idx, _ := c.Grid().IndexOf(1, 1)

	c.Apply(idx)
	assert.True(t, c.Grid().At(idx).IsAlive())

	c.SetPaintMode(ModeRemove)
	c.Apply(idx)
	assert.True(t, c.Grid().At(idx).IsDead())

	c.SetPaintMode(ModeToggle)
	c.Apply(idx)
	assert.True(t, c.Grid().At(idx).IsAlive())
}

func TestController_HoverRestores(t *testing.T) {
	c := newTestController(10, 10, 2)
	g := c.Grid()
	alive, _ := g.IndexOf(5, 5)
	g.At(alive).SetKind(KindRock).SetAlive()
	dead, _ := g.IndexOf(5, 6)

	require.True(t, c.HoverEnter(alive))
	assert.Equal(t, HoverAlive, g.At(alive).State)
	assert.Equal(t, HoverDead, g.At(dead).State)

	require.True(t, c.HoverExit(alive))
	assert.Equal(t, Cell{Kind: KindRock, State: Alive}, *g.At(alive))
	assert.Equal(t, Cell{}, *g.At(dead))
	assert.False(t, c.HoverExit(alive))
}

func TestController_PausedTickIsNoop(t *testing.T) {
	c := newTestController(5, 5, 1)
	idx, _ := c.Grid().IndexOf(0, 0)
	c.Paint(idx)

	assert.False(t, c.Pause())
	assert.False(t, c.Active())
	assert.False(t, c.Tick())
	assert.True(t, c.Grid().At(idx).IsAlive())

	c.Play()
	assert.True(t, c.Tick())
	assert.True(t, c.Grid().At(idx).IsDead())
}

func TestController_Reset(t *testing.T) {
	c := newTestController(10, 10, 3)
	for _, p := range [][2]int{{2, 2}, {7, 7}} {
		idx, _ := c.Grid().IndexOf(p[0], p[1])
		c.Paint(idx)
	}
	c.SetKind(KindRock)
	idx, _ := c.Grid().IndexOf(4, 8)
	c.Paint(idx)
	c.HoverEnter(idx)
	for n := 0; n < 5; n++ {
		c.Tick()
	}
	c.Pause()

	assert.True(t, c.Reset())
	assert.True(t, c.Active())
	for _, cell := range c.Grid().Cells() {
		assert.Equal(t, Cell{}, cell)
	}
}

func TestController_Settings(t *testing.T) {
	c := newTestController(5, 5, 1)

	assert.False(t, c.SetBrushRadius(0))
	assert.Equal(t, MinBrushRadius, c.BrushRadius())
	c.SetBrushRadius(99)
	assert.Equal(t, MaxBrushRadius, c.BrushRadius())
	c.SetBrushRadius(4)
	assert.Equal(t, 4, c.BrushRadius())

	assert.False(t, c.SetKind(KindNone))
	assert.Equal(t, KindSand, c.Kind(), "air is not a paintable kind")
	c.SetKind(KindRock)
	assert.Equal(t, KindRock, c.Kind())
}

func TestBrightness(t *testing.T) {
	assert.Equal(t, 100.0, Brightness(0, 147))
	assert.InDelta(t, 50.0, Brightness(10, 20), 1e-9)
	assert.Equal(t, 20.0, Brightness(200, 147))
	assert.Equal(t, 100.0, Brightness(5, 0))
}
