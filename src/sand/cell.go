package sand

//Kind is the material a live cell is made of
type Kind uint8

const (
	KindNone Kind = iota
	KindSand
	KindRock
)

func (k Kind) String() string {
	switch k {
	case KindSand:
		return "sand"
	case KindRock:
		return "rock"
	default:
		return "air"
	}
}

//LifeState is the liveness of a cell, hover variants remember the liveness seen when the cursor entered
type LifeState uint8

const (
	Dead LifeState = iota
	Alive
	HoverAlive
	HoverDead
)

func (s LifeState) String() string {
	switch s {
	case Alive:
		return "alive"
	case HoverAlive:
		return "hover-alive"
	case HoverDead:
		return "hover-dead"
	default:
		return "dead"
	}
}

// Cell is one grid location.
// A cell that is dead for physics carries KindNone and zero pressure.
type Cell struct {
	Kind     Kind
	State    LifeState
	Pressure uint8
}

// IsAlive reports whether the cell takes part in physics as matter.
func (c *Cell) IsAlive() bool {
	return c.State == Alive || c.State == HoverAlive
}

func (c *Cell) IsDead() bool {
	return !c.IsAlive()
}

func (c *Cell) IsHovered() bool {
	return c.State == HoverAlive || c.State == HoverDead
}

func (c *Cell) SetAlive() *Cell {
	c.State = Alive
	return c
}

// SetDead kills the cell and clears its material and pressure.
func (c *Cell) SetDead() *Cell {
	c.State = Dead
	c.Kind = KindNone
	c.Pressure = 0
	return c
}

// SetHover captures the current liveness into a hover state.
func (c *Cell) SetHover() *Cell {
	if c.IsAlive() {
		c.State = HoverAlive
	} else {
		c.State = HoverDead
	}
	return c
}

// ClearHover restores the non-hover state captured by SetHover.
func (c *Cell) ClearHover() *Cell {
	if c.IsAlive() {
		c.State = Alive
	} else {
		c.SetDead()
	}
	return c
}

// Swap flips liveness.
func (c *Cell) Swap() *Cell {
	if c.IsAlive() {
		return c.SetDead()
	}
	return c.SetAlive()
}

func (c *Cell) SetKind(k Kind) *Cell {
	c.Kind = k
	return c
}

func (c *Cell) SetPressure(p uint8) *Cell {
	c.Pressure = p
	return c
}
