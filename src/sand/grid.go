package sand

// Grid owns all cells of the field in one row-major buffer.
// Row i, column j lives at index i*Width + j.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

// NewGrid allocates a grid of dead cells. Non-positive sizes are raised to 1.
func NewGrid(width, height int) *Grid {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Grid{Width: width, Height: height, cells: make([]Cell, width*height)}
}

// IndexOf maps row i, column j to a cell index.
// It reports false for any coordinate outside the grid, it never wraps.
func (g *Grid) IndexOf(i, j int) (int, bool) {
	if i < 0 || j < 0 || i >= g.Height || j >= g.Width {
		return 0, false
	}
	return i*g.Width + j, true
}

// CoordinatesOf is the inverse of IndexOf.
func (g *Grid) CoordinatesOf(idx int) (i, j int) {
	return idx / g.Width, idx % g.Width
}

// At returns the cell at idx. idx must come from IndexOf.
func (g *Grid) At(idx int) *Cell {
	return &g.cells[idx]
}

// Cells exposes the backing slice for rendering.
func (g *Grid) Cells() []Cell { return g.cells }

func (g *Grid) Len() int { return len(g.cells) }

// Clear kills every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].SetDead()
	}
}

// Count returns the number of live cells of kind k.
func (g *Grid) Count(k Kind) int {
	n := 0
	for i := range g.cells {
		if g.cells[i].IsAlive() && g.cells[i].Kind == k {
			n++
		}
	}
	return n
}

// Snapshot copies the cells into dst, growing it when needed.
func (g *Grid) Snapshot(dst []Cell) []Cell {
	if cap(dst) < len(g.cells) {
		dst = make([]Cell, len(g.cells))
	}
	dst = dst[:len(g.cells)]
	copy(dst, g.cells)
	return dst
}
