package view

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"sandsim/src/sand"
	"sandsim/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI draws the field in the terminal, the mouse and the arrow keys drive the brush
type ConsoleUI struct {
	u universe.Universe
	g *gocui.Gui
	k []keyBindings

	cx, cy int //brush position inside the field
	cells  []sand.Cell

	rockFiller  string
	airFiller   string
	hoverFiller string
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewConsoleUI creates the terminal ui, the terminal is taken over until Start returns
func NewConsoleUI() (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		rockFiller:  aurora.Gray(12, "█").String(),
		airFiller:   " ",
		hoverFiller: aurora.Index(75, "░").String(),
	}

	t.g, err = gocui.NewGui(gocui.Output256)
	if err != nil {
		return nil, err
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Reset", t.cmdClear, ""},
		{'w', "W", "Random sand", t.cmdSettleWithRandom, ""},
		{'a', "A", "Add", t.cmdMode(sand.ModeAdd), ""},
		{'x', "X", "Remove", t.cmdMode(sand.ModeRemove), ""},
		{'t', "T", "Toggle", t.cmdMode(sand.ModeToggle), ""},
		{'1', "1", "Sand", t.cmdKind(sand.KindSand), ""},
		{'2', "2", "Rock", t.cmdKind(sand.KindRock), ""},
		{'+', "+", "Bigger brush", t.cmdBrush(1), ""},
		{'-', "-", "Smaller brush", t.cmdBrush(-1), ""},
		{gocui.KeyArrowUp, "↑↓←→", "Move brush", t.cmdMove(0, -1), ""},
		{gocui.KeyArrowDown, "", "", t.cmdMove(0, 1), ""},
		{gocui.KeyArrowLeft, "", "", t.cmdMove(-1, 0), ""},
		{gocui.KeyArrowRight, "", "", t.cmdMove(1, 0), ""},
		{gocui.KeySpace, "SPACE", "Paint", t.cmdApply, ""},
		{gocui.MouseLeft, "MOUSE", "Paint the cell", t.cmdMouseClick, "field"},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return err
		}
	}
	return nil
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
	o := u.Options()
	t.cx, t.cy = o.Width/2, o.Height/4
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	t.u.HoverEnter(t.cx, t.cy)
	if err := t.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

func (t *ConsoleUI) Refresh() {
	t.renderField()
	t.renderConfiguration()
	t.renderStatus()
}

//cellFiller returns the colored glyph of one cell
func (t *ConsoleUI) cellFiller(c sand.Cell, pressureMax int) string {
	switch {
	case c.State == sand.HoverDead:
		return t.hoverFiller
	case c.IsDead():
		return t.airFiller
	case c.Kind == sand.KindRock:
		if c.IsHovered() {
			return aurora.Gray(18, "▓").String()
		}
		return t.rockFiller
	}
	shade := sandShade(sand.Brightness(c.Pressure, pressureMax))
	if c.IsHovered() {
		return aurora.Index(shade, "▓").String()
	}
	return aurora.Index(shade, "█").String()
}

func (t *ConsoleUI) renderField() {
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("field"); e == nil {
			t.drawField(v)
		}
		return nil
	})
}

//drawField must run on the gui goroutine
func (t *ConsoleUI) drawField(v *gocui.View) {
	//the entire field is redrawing at once now
	v.Clear()

	o := t.u.Options()
	pressureMax := t.u.Controls().PressureMax
	t.cells = t.u.Cells(t.cells)

	crop := false
	maxW, maxH := v.Size()
	if o.Width > maxW || o.Height > maxH {
		crop = true
	}

	var b bytes.Buffer
	for y := 0; y < o.Height; y++ {
		//discard the data outside the view area
		if y >= maxH {
			break
		}
		//line feed char
		if y != 0 {
			b.WriteByte(10)
		}
		if crop && y == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").String())
			break
		}
		row := t.cells[y*o.Width : (y+1)*o.Width]
		for x, c := range row {
			if x >= maxW {
				break
			}
			b.WriteString(t.cellFiller(c, pressureMax))
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Sand cells", "%v", s.SandCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Rock cells", "%v", s.RockCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		ctl := t.u.Controls()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
			_, _ = fmt.Fprintln(v, t.renderProp("Slippage", "%v", c.Slippage))
			_, _ = fmt.Fprintln(v, t.renderProp("Brush", "%v", ctl.BrushRadius))
			_, _ = fmt.Fprintln(v, t.renderProp("Paint", "%v %v", ctl.Mode, ctl.Kind))
			_, _ = fmt.Fprintln(v, t.renderProp("Run", "%.8s", t.u.ID()))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "Falling sand"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("field", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Sand Box"
		v.Frame = true
	}
	if v, err := g.View("field"); err == nil {
		t.drawField(v)
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		first := true
		for _, k := range t.k {
			if k.name == "" {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorYellow
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	t.u.HoverEnter(t.cx, t.cy)
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.u.SettleWithRandomData()
	return nil
}

func (t *ConsoleUI) cmdMode(m sand.PaintMode) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.u.SetPaintMode(m)
		return nil
	}
}

func (t *ConsoleUI) cmdKind(k sand.Kind) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.u.SetKind(k)
		return nil
	}
}

func (t *ConsoleUI) cmdBrush(delta int) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.u.SetBrushRadius(t.u.Controls().BrushRadius + delta)
		return nil
	}
}

func (t *ConsoleUI) cmdMove(dx, dy int) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.moveTo(t.cx+dx, t.cy+dy)
		return nil
	}
}

func (t *ConsoleUI) cmdApply(_ *gocui.View) error {
	t.u.Apply(t.cx, t.cy)
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.moveTo(cx, cy)
	t.u.Apply(t.cx, t.cy)
	return nil
}

//moveTo shifts the hover marker, positions outside the field are ignored
func (t *ConsoleUI) moveTo(x, y int) {
	o := t.u.Options()
	if x < 0 || y < 0 || x >= o.Width || y >= o.Height {
		return
	}
	t.cx, t.cy = x, y
	t.u.HoverEnter(x, y)
}
