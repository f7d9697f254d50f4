//go:build ebiten

package view

import (
	"errors"
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"sandsim/src/sand"
	"sandsim/src/universe"
)

//Window adapts a universe to the ebiten.Game interface
type Window struct {
	u     universe.Universe
	scale int

	img   *ebiten.Image
	buf   []byte
	cells []sand.Cell
	dirty atomic.Bool

	hoverX, hoverY int
	hovering       bool
}

//NewWindow creates a window view drawing every cell as a scale x scale square
func NewWindow(scale int) *Window {
	if scale <= 0 {
		scale = 1
	}
	return &Window{scale: scale}
}

func (w *Window) Register(u universe.Universe) {
	w.u = u
	o := u.Options()
	w.buf = make([]byte, 4*o.Width*o.Height)
	w.dirty.Store(true)
}

//Refresh marks the frame stale, the next Draw uploads the field
func (w *Window) Refresh() {
	w.dirty.Store(true)
}

//Start opens the window and blocks until it is closed
func (w *Window) Start() error {
	o := w.u.Options()
	ebiten.SetWindowTitle("sandsim")
	ebiten.SetWindowSize(o.Width*w.scale, o.Height*w.scale)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

//Update handles input, the simulation itself runs on the universe loop
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if w.u.Status().RunningMode == universe.RunningStateRun {
			w.u.Stop()
		} else {
			w.u.Run()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		w.u.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		w.u.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		w.u.SettleWithRandomData()
	}
	for key, mode := range map[ebiten.Key]sand.PaintMode{
		ebiten.KeyA: sand.ModeAdd,
		ebiten.KeyX: sand.ModeRemove,
		ebiten.KeyT: sand.ModeToggle,
	} {
		if inpututil.IsKeyJustPressed(key) {
			w.u.SetPaintMode(mode)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		w.u.SetKind(sand.KindSand)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		w.u.SetKind(sand.KindRock)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		w.u.SetBrushRadius(w.u.Controls().BrushRadius + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		w.u.SetBrushRadius(w.u.Controls().BrushRadius - 1)
	}

	w.updatePointer()
	return nil
}

//updatePointer turns the mouse position into hover and paint commands
func (w *Window) updatePointer() {
	o := w.u.Options()
	mx, my := ebiten.CursorPosition()
	x, y := mx/w.scale, my/w.scale
	inside := mx >= 0 && my >= 0 && x < o.Width && y < o.Height

	moved := !w.hovering || x != w.hoverX || y != w.hoverY
	switch {
	case !inside && w.hovering:
		w.u.HoverExit(w.hoverX, w.hoverY)
		w.hovering = false
		return
	case !inside:
		return
	case moved:
		w.u.HoverEnter(x, y)
		w.hoverX, w.hoverY, w.hovering = x, y, true
	}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || (pressed && moved) {
		w.u.Apply(x, y)
	}
}

//Draw renders the current field and the HUD
func (w *Window) Draw(screen *ebiten.Image) {
	o := w.u.Options()
	if w.img == nil {
		w.img = ebiten.NewImage(o.Width, o.Height)
	}
	if w.dirty.Swap(false) {
		w.cells = w.u.Cells(w.cells)
		fillCellsRGBA(w.buf, w.cells, w.u.Controls().PressureMax)
		w.img.WritePixels(w.buf)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)

	st := w.u.Status()
	ctl := w.u.Controls()
	hud := fmt.Sprintf("%s  step %d  sand %d  rock %d\nbrush %d  %s %s",
		st.RunningMode, st.IterationNum, st.SandCells, st.RockCells, ctl.BrushRadius, ctl.Mode, ctl.Kind)
	text.Draw(screen, hud, basicfont.Face7x13, 6, 16, color.White)
}

//Layout returns the logical screen size
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	o := w.u.Options()
	return o.Width * w.scale, o.Height * w.scale
}
