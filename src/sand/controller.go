package sand

import "github.com/go-gl/mathgl/mgl64"

//PaintMode selects what a click on the field does
type PaintMode uint8

const (
	ModeAdd PaintMode = iota
	ModeRemove
	ModeToggle
)

func (m PaintMode) String() string {
	switch m {
	case ModeRemove:
		return "remove"
	case ModeToggle:
		return "toggle"
	default:
		return "add"
	}
}

//default configuration
const (
	DefWidth  = 100
	DefHeight = 50
)

// Config holds the fixed parameters of a Controller.
type Config struct {
	Width       int
	Height      int
	Slippage    int
	BrushRadius int
	Seed        int64 // 0 seeds from the clock
	Rand        Rand  // overrides Seed when set
}

// DefaultConfig returns the stock 100x50 field.
func DefaultConfig() Config {
	return Config{
		Width:       DefWidth,
		Height:      DefHeight,
		Slippage:    DefSlippage,
		BrushRadius: DefBrushRadius,
	}
}

// Controller holds the whole engine state and exposes the command surface
// for UI drivers. Every command reports whether the grid changed so the
// caller knows when to redraw. Commands must be delivered one at a time.
type Controller struct {
	grid        *Grid
	engine      *Engine
	pressureMax int
	brushRadius int
	mode        PaintMode
	kind        Kind
	active      bool
}

// NewController allocates the grid and engine described by cfg.
func NewController(cfg Config) *Controller {
	rnd := cfg.Rand
	if rnd == nil {
		rnd = NewRand(cfg.Seed)
	}
	grid := NewGrid(cfg.Width, cfg.Height)
	c := &Controller{
		grid:        grid,
		engine:      NewEngine(grid, rnd, cfg.Slippage),
		pressureMax: (grid.Width - 1) + (grid.Height - 1),
		mode:        ModeAdd,
		kind:        KindSand,
		active:      true,
	}
	if cfg.BrushRadius == 0 {
		cfg.BrushRadius = DefBrushRadius
	}
	c.SetBrushRadius(cfg.BrushRadius)
	return c
}

func (c *Controller) Grid() *Grid { return c.grid }
func (c *Controller) Engine() *Engine { return c.engine }
func (c *Controller) Active() bool { return c.active }
func (c *Controller) BrushRadius() int { return c.brushRadius }
func (c *Controller) Mode() PaintMode { return c.mode }
func (c *Controller) Kind() Kind { return c.kind }
func (c *Controller) PressureMax() int { return c.pressureMax }
func (c *Controller) Footprint(idx int) []int { return Cursor(c.grid, idx, c.brushRadius) }

// Tick advances the physics by one step. It does nothing while paused.
func (c *Controller) Tick() bool {
	if !c.active {
		return false
	}
	return c.engine.Tick()
}

// Step advances exactly one tick even while paused.
func (c *Controller) Step() bool {
	return c.engine.Tick()
}

// Paint brings every cell under the brush to life with the selected kind.
func (c *Controller) Paint(idx int) bool {
	kind := c.kind
	return c.brush(c.Footprint(idx), func(cell *Cell) {
		cell.SetKind(kind).SetAlive()
	})
}

// Erase kills every cell under the brush.
func (c *Controller) Erase(idx int) bool {
	return c.brush(c.Footprint(idx), func(cell *Cell) {
		cell.SetDead()
	})
}

// Toggle flips each distinct cell under the brush once.
func (c *Controller) Toggle(idx int) bool {
	kind := c.kind
	return c.brush(unique(c.Footprint(idx)), func(cell *Cell) {
		cell.SetKind(kind).Swap()
	})
}

// HoverEnter marks the cells under the brush as hovered.
func (c *Controller) HoverEnter(idx int) bool {
	return c.brush(c.Footprint(idx), func(cell *Cell) {
		cell.SetHover()
	})
}

// HoverExit restores the cells under the brush from their hover state.
func (c *Controller) HoverExit(idx int) bool {
	return c.brush(c.Footprint(idx), func(cell *Cell) {
		cell.ClearHover()
	})
}

// Apply runs the command selected by the current paint mode.
func (c *Controller) Apply(idx int) bool {
	switch c.mode {
	case ModeRemove:
		return c.Erase(idx)
	case ModeToggle:
		return c.Toggle(idx)
	default:
		return c.Paint(idx)
	}
}

func (c *Controller) Play() bool {
	c.active = true
	return false
}

func (c *Controller) Pause() bool {
	c.active = false
	return false
}

// Reset kills every cell and resumes the simulation.
func (c *Controller) Reset() bool {
	c.grid.Clear()
	c.active = true
	return true
}

// SetBrushRadius clamps n into [MinBrushRadius, MaxBrushRadius].
func (c *Controller) SetBrushRadius(n int) bool {
	c.brushRadius = int(mgl64.Clamp(float64(n), MinBrushRadius, MaxBrushRadius))
	return false
}

func (c *Controller) SetPaintMode(m PaintMode) bool {
	c.mode = m
	return false
}

func (c *Controller) SetKind(k Kind) bool {
	if k == KindNone {
		return false
	}
	c.kind = k
	return false
}

func (c *Controller) brush(idxs []int, apply func(cell *Cell)) (changed bool) {
	for _, idx := range idxs {
		cell := c.grid.At(idx)
		before := *cell
		apply(cell)
		changed = changed || *cell != before
	}
	return
}

// Brightness maps a pressure to a render brightness percentage in [20, 100].
// Zero pressure always renders at full brightness.
func Brightness(pressure uint8, pressureMax int) float64 {
	if pressure == 0 || pressureMax <= 0 {
		return 100
	}
	b := 100 - float64(pressure)/float64(pressureMax)*100
	return mgl64.Clamp(b, 20, 100)
}
