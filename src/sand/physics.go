package sand

import "math"

// DefSlippage is the widest sideways slide a blocked grain can draw.
const DefSlippage = 3

// Engine advances a Grid by one gravity step at a time.
// It is not safe for concurrent use, one Tick runs at a time.
type Engine struct {
	grid     *Grid
	rnd      Rand
	slippage int
}

// NewEngine binds the physics to a grid and its random source.
func NewEngine(grid *Grid, rnd Rand, slippage int) *Engine {
	if slippage < 0 {
		slippage = 0
	}
	return &Engine{grid: grid, rnd: rnd, slippage: slippage}
}

func (e *Engine) Slippage() int { return e.slippage }

// Tick runs one step over the whole grid and reports whether any cell changed.
//
// Rows are walked bottom to top so a grain that moved down this tick sits in a
// row that is already done and cannot fall twice.
func (e *Engine) Tick() (changed bool) {
	g := e.grid
	for i := g.Height - 1; i >= 0; i-- {
		for j := 0; j < g.Width; j++ {
			idx, _ := g.IndexOf(i, j)
			c := g.At(idx)
			if c.Kind != KindSand || c.IsDead() {
				continue
			}
			if p := e.Pressure(i, j); p != c.Pressure {
				c.Pressure = p
				changed = true
			}
			below, ok := g.IndexOf(i+1, j)
			if !ok {
				continue
			}
			if g.At(below).IsDead() {
				e.move(idx, below)
				changed = true
			} else if target, ok := e.slipTarget(i, j); ok {
				e.move(idx, target)
				changed = true
			}
		}
	}
	return
}

// Pressure counts the contiguous live cells stacked directly above row i, column j.
func (e *Engine) Pressure(i, j int) uint8 {
	n := 0
	for k := i - 1; k >= 0 && n < math.MaxUint8; k-- {
		idx, ok := e.grid.IndexOf(k, j)
		if !ok || e.grid.At(idx).IsDead() {
			break
		}
		n++
	}
	return uint8(n)
}

// move transfers the material at origin into target.
func (e *Engine) move(origin, target int) {
	g := e.grid
	kind := g.At(origin).Kind
	g.At(origin).SetDead()
	i, j := g.CoordinatesOf(target)
	g.At(target).SetKind(kind).SetAlive().SetPressure(e.Pressure(i, j))
}

// slipTarget picks where a blocked grain at row i, column j slides to.
// It walks sideways towards a random signed distance and keeps the farthest
// column whose side neighbour and the cell below it are both empty.
func (e *Engine) slipTarget(i, j int) (int, bool) {
	if e.slippage == 0 {
		return 0, false
	}
	slip := e.rnd.IntN(2*e.slippage+1) - e.slippage
	step := 1
	if slip < 0 {
		step, slip = -1, -slip
	}

	target, found := 0, false
	for m := 1; m <= slip; m++ {
		col := j + m*step
		side, ok := e.grid.IndexOf(i, col)
		if !ok {
			break
		}
		below, ok := e.grid.IndexOf(i+1, col)
		if !ok {
			break
		}
		if e.grid.At(side).IsAlive() || e.grid.At(below).IsAlive() {
			break
		}
		target, found = below, true
	}
	return target, found
}
