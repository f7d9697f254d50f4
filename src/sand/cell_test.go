package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell_transitions(t *testing.T) {
	var c Cell
	assert.True(t, c.IsDead())
	assert.Equal(t, KindNone, c.Kind)

	c.SetKind(KindSand).SetPressure(4).SetAlive()
	assert.Equal(t, Alive, c.State)
	assert.Equal(t, KindSand, c.Kind)
	assert.Equal(t, uint8(4), c.Pressure)

	c.SetDead()
	assert.Equal(t, Cell{}, c, "SetDead must clear kind and pressure")
}

func TestCell_hover(t *testing.T) {
	tests := []struct {
		name  string
		start Cell
		hover LifeState
		after Cell
	}{
		{"alive", Cell{Kind: KindRock, State: Alive}, HoverAlive, Cell{Kind: KindRock, State: Alive}},
		{"dead", Cell{}, HoverDead, Cell{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.start
			c.SetHover()
			assert.Equal(t, tt.hover, c.State)
			assert.True(t, c.IsHovered())
			assert.Equal(t, tt.start.IsAlive(), c.IsAlive(), "hover keeps liveness")

			// entering twice captures the same liveness
			c.SetHover()
			assert.Equal(t, tt.hover, c.State)

			c.ClearHover()
			assert.Equal(t, tt.after, c)
			assert.False(t, c.IsHovered())
		})
	}
}

func TestCell_swap(t *testing.T) {
	c := Cell{}
	c.SetKind(KindSand).Swap()
	assert.True(t, c.IsAlive())
	c.Swap()
	assert.Equal(t, Cell{}, c)

	c = Cell{State: HoverAlive, Kind: KindSand}
	c.Swap()
	assert.Equal(t, Dead, c.State)
}
