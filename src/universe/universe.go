package universe

import "sandsim/src/sand"

//Universe is a running sand field driven by one command loop
//coordinates are x (column), y (row); points outside the field are ignored
type Universe interface {
	ID() string
	Status() Status
	Options() Options
	Controls() Controls
	Cells(dst []sand.Cell) []sand.Cell
	StateCh() chan Status
	AddTemplate(tmpl Template)
	Templates() []Template
	SettleTemplate(name string)
	SettleWithRandomData()
	Paint(x int, y int)
	Erase(x int, y int)
	Toggle(x int, y int)
	Apply(x int, y int)
	HoverEnter(x int, y int)
	HoverExit(x int, y int)
	SetBrushRadius(n int)
	SetPaintMode(m sand.PaintMode)
	SetKind(k sand.Kind)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
