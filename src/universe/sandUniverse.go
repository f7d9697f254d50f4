package universe

import (
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"sandsim/src/sand"
)

//SandUniverse is the universe's engine
//implements Universe interface
//every command is a closure run by mainLoop, so the controller sees one command at a time in delivery order
type SandUniverse struct {
	id      string
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	field struct {
		*sand.Controller
		sync.Mutex
	}
	mu        sync.Mutex //guards views and templates
	views     []Viewer
	templates map[string]Template
	names     []string
	stateCh   chan Status
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once

	//owned by mainLoop
	rnd     *rand.Rand
	hovered int
	quiet   int
	stopCh  chan struct{} //closed to end the current run loop
}

//NewSandUniverse creates the SandUniverse instance and starts its command loop
//stateCh may be nil when nobody listens to status updates
func NewSandUniverse(o *Options, stateCh chan Status) *SandUniverse {
	if o == nil {
		d := DefaultUniverseOptions()
		o = &d
	}
	opts := *o
	opts.Advanced = make(map[string]interface{}, len(o.Advanced)+2)
	for k, v := range o.Advanced {
		opts.Advanced[k] = v
	}
	opts.Advanced["engine"] = "sand"
	opts.Advanced["slippage"] = opts.Slippage

	u := &SandUniverse{
		id:        uuid.NewString(),
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
		hovered:   -1,
	}
	u.field.Controller = sand.NewController(sand.Config{
		Width:       opts.Width,
		Height:      opts.Height,
		Slippage:    opts.Slippage,
		BrushRadius: opts.BrushRadius,
		Seed:        opts.Seed,
	})
	//the universe starts waiting for Run, keep the controller in step
	u.field.Pause()
	seed := opts.Seed
	if seed != 0 {
		seed++
	}
	u.rnd = sand.NewRand(seed)

	g := u.field.Grid()
	opts.Width, opts.Height = g.Width, g.Height
	u.options = opts
	u.state.RunID = u.id

	for _, tmpl := range DefaultTemplates(g.Width, g.Height) {
		u.AddTemplate(tmpl)
	}
	go u.mainLoop()
	return u
}

//ID returns the unique id of this universe run
func (u *SandUniverse) ID() string {
	return u.id
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *SandUniverse) AddTemplate(tmpl Template) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.templates[tmpl.Name]; !ok {
		u.names = append(u.names, tmpl.Name)
	}
	u.templates[tmpl.Name] = tmpl
}

//Templates returns the known templates in the order they were added
func (u *SandUniverse) Templates() []Template {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]Template, 0, len(u.names))
	for _, n := range u.names {
		out = append(out, u.templates[n])
	}
	return out
}

//SettleTemplate populates the universe with the seeding template, returns immediately
func (u *SandUniverse) SettleTemplate(name string) {
	u.exec(func() {
		u.mu.Lock()
		tmpl, ok := u.templates[name]
		u.mu.Unlock()
		if !ok {
			log.Printf("universe %s: unknown template %q", u.id, name)
			return
		}
		u.field.Lock()
		u.settle(tmpl.Sand, sand.KindSand)
		u.settle(tmpl.Rock, sand.KindRock)
		u.field.Unlock()
		u.updateCounts()
		u.refreshView()
	})
}

//SettleWithRandomData clears the field and sprinkles sand over its upper half, returns immediately
func (u *SandUniverse) SettleWithRandomData() {
	u.exec(func() {
		u.field.Lock()
		g := u.field.Grid()
		g.Clear()
		for y := 0; y < g.Height/2; y++ {
			for x := 0; x < g.Width; x++ {
				if u.rnd.IntN(4) == 0 {
					u.settle([][]int{{x, y}}, sand.KindSand)
				}
			}
		}
		u.field.Unlock()
		u.updateCounts()
		u.refreshView()
	})
}

//Paint fills the brush around x, y with the selected kind
func (u *SandUniverse) Paint(x int, y int) {
	u.exec(func() { u.brush(x, y, u.field.Paint) })
}

//Erase empties the brush around x, y
func (u *SandUniverse) Erase(x int, y int) {
	u.exec(func() { u.brush(x, y, u.field.Erase) })
}

//Toggle flips the cells under the brush around x, y
func (u *SandUniverse) Toggle(x int, y int) {
	u.exec(func() { u.brush(x, y, u.field.Toggle) })
}

//Apply runs the current paint mode at x, y
func (u *SandUniverse) Apply(x int, y int) {
	u.exec(func() { u.brush(x, y, u.field.Apply) })
}

//HoverEnter moves the hover marker to x, y
func (u *SandUniverse) HoverEnter(x int, y int) {
	u.exec(func() {
		idx, ok := u.field.Grid().IndexOf(y, x)
		if !ok {
			return
		}
		u.field.Lock()
		changed := false
		if u.hovered >= 0 && u.hovered != idx {
			changed = u.field.HoverExit(u.hovered)
		}
		changed = u.field.HoverEnter(idx) || changed
		u.hovered = idx
		u.field.Unlock()
		if changed {
			u.refreshView()
		}
	})
}

//HoverExit removes the hover marker from x, y
func (u *SandUniverse) HoverExit(x int, y int) {
	u.exec(func() {
		idx, ok := u.field.Grid().IndexOf(y, x)
		if !ok {
			return
		}
		u.field.Lock()
		changed := u.field.HoverExit(idx)
		if u.hovered == idx {
			u.hovered = -1
		}
		u.field.Unlock()
		if changed {
			u.refreshView()
		}
	})
}

//SetBrushRadius changes the brush, the hover marker is redrawn with the new size
func (u *SandUniverse) SetBrushRadius(n int) {
	u.exec(func() {
		u.field.Lock()
		if u.hovered >= 0 {
			u.field.HoverExit(u.hovered)
		}
		u.field.SetBrushRadius(n)
		if u.hovered >= 0 {
			u.field.HoverEnter(u.hovered)
		}
		u.field.Unlock()
		u.refreshView()
	})
}

//SetPaintMode selects what Apply does
func (u *SandUniverse) SetPaintMode(m sand.PaintMode) {
	u.exec(func() {
		u.field.Lock()
		u.field.SetPaintMode(m)
		u.field.Unlock()
		u.refreshView()
	})
}

//SetKind selects the material Paint and Toggle create
func (u *SandUniverse) SetKind(k sand.Kind) {
	u.exec(func() {
		u.field.Lock()
		u.field.SetKind(k)
		u.field.Unlock()
		u.refreshView()
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *SandUniverse) RegisterViewer(v Viewer) {
	v.Register(u)
	u.mu.Lock()
	u.views = append(u.views, v)
	u.mu.Unlock()
}

//StateCh returns the channel with the universe's status updates
func (u *SandUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *SandUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *SandUniverse) Options() Options {
	return u.options
}

//Controls returns the current brush configuration
func (u *SandUniverse) Controls() Controls {
	u.field.Lock()
	defer u.field.Unlock()
	return Controls{
		Mode:        u.field.Mode(),
		Kind:        u.field.Kind(),
		BrushRadius: u.field.BrushRadius(),
		Active:      u.field.Active(),
		PressureMax: u.field.PressureMax(),
	}
}

//Cells copies the field into dst for rendering
func (u *SandUniverse) Cells(dst []sand.Cell) []sand.Cell {
	u.field.Lock()
	defer u.field.Unlock()
	return u.field.Grid().Snapshot(dst)
}

//Run starts the universe simulation, returns immediately
func (u *SandUniverse) Run() {
	u.exec(u.run)
}

//Stop pauses the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *SandUniverse) Stop() {
	u.exec(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *SandUniverse) Step() {
	u.exec(u.step)
}

//Clear empties the field, resets all counters and resumes the simulation, returns immediately
func (u *SandUniverse) Clear() {
	u.exec(u.clear)
}

//Close stops the main loop and any running simulation, returns immediately
func (u *SandUniverse) Close() {
	u.closeOnce.Do(func() { close(u.closeCh) })
}

//exec hands the command to mainLoop, it is dropped once the universe is closed
func (u *SandUniverse) exec(cmd func()) {
	if u.closed() {
		return
	}
	select {
	case u.controlCh <- cmd:
	case <-u.closeCh:
	}
}

func (u *SandUniverse) closed() bool {
	select {
	case <-u.closeCh:
		return true
	default:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *SandUniverse) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			if u.closed() {
				u.halt(RunningStateFinished, false)
				return
			}
			cmd()
		case <-u.closeCh:
			u.halt(RunningStateFinished, false)
			return
		}
	}
}

//brush applies a controller command to the cell at x, y and keeps the hover marker on top
func (u *SandUniverse) brush(x int, y int, cmd func(idx int) bool) {
	idx, ok := u.field.Grid().IndexOf(y, x)
	if !ok {
		return
	}
	u.field.Lock()
	changed := cmd(idx)
	if u.hovered >= 0 {
		u.field.HoverEnter(u.hovered)
	}
	u.field.Unlock()
	if changed {
		u.updateCounts()
		u.refreshView()
	}
}

//settle places live cells of kind k at the [x, y] coordinates, the field must be locked
func (u *SandUniverse) settle(vc [][]int, k sand.Kind) {
	g := u.field.Grid()
	for _, v := range vc {
		if len(v) < 2 {
			continue
		}
		idx, ok := g.IndexOf(v[1], v[0])
		if !ok {
			continue
		}
		g.At(idx).SetKind(k).SetAlive()
	}
}

//updateCounts refreshes the cell counters of the status
func (u *SandUniverse) updateCounts() {
	u.field.Lock()
	g := u.field.Grid()
	sandCells, rockCells := g.Count(sand.KindSand), g.Count(sand.KindRock)
	u.field.Unlock()
	u.state.Lock()
	u.state.SandCells = sandCells
	u.state.RockCells = rockCells
	u.state.Unlock()
}

func (u *SandUniverse) mode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *SandUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.closeCh:
		}
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *SandUniverse) run() {
	if u.stopCh != nil {
		return
	}
	stopCh := make(chan struct{})
	u.stopCh = stopCh
	u.quiet = 0
	u.field.Lock()
	u.field.Play()
	u.field.Unlock()
	u.switchRunningState(RunningStateRun)
	u.refreshView()
	go u.runLoop(stopCh)
}

//runLoop enqueues one step per interval until stopCh or closeCh is closed
//a zero interval runs the steps back to back
func (u *SandUniverse) runLoop(stopCh chan struct{}) {
	var busy atomic.Bool
	var tick <-chan time.Time
	if u.options.Interval > 0 {
		ticker := time.NewTicker(u.options.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	skipped := 0
	for {
		if tick != nil {
			select {
			case <-tick:
			case <-stopCh:
				return
			case <-u.closeCh:
				return
			}
		} else {
			select {
			case <-stopCh:
				return
			case <-u.closeCh:
				return
			default:
			}
		}

		//skip the tick if the universe is still in the calculation mode
		if busy.Load() {
			skipped++
			if skipped > u.options.MaxSkippedTicks {
				log.Printf("universe %s: %d ticks skipped in a row, interval %v is too short for a %dx%d field",
					u.id, skipped, u.options.Interval, u.options.Width, u.options.Height)
				u.exec(func() {
					if u.stopCh == stopCh {
						u.halt(RunningStateFinished, true)
					}
				})
				return
			}
			continue
		}
		skipped = 0
		busy.Store(true)
		done := make(chan struct{})
		u.exec(func() {
			defer close(done)
			defer busy.Store(false)
			if u.stopCh != stopCh {
				return
			}
			u.step()
		})
		if tick == nil {
			select {
			case <-done:
			case <-u.closeCh:
				return
			}
		}
	}
}

//stop stops the universe running cycle
func (u *SandUniverse) stop() {
	if u.stopCh == nil && u.mode() != RunningStateRun {
		return
	}
	u.halt(RunningStateManual, true)
}

//halt ends the running cycle, pauses the controller and switches to the given state
func (u *SandUniverse) halt(to RunningState, notify bool) {
	if u.stopCh != nil {
		close(u.stopCh)
		u.stopCh = nil
	}
	u.field.Lock()
	u.field.Pause()
	u.field.Unlock()
	if notify {
		u.switchRunningState(to)
		u.refreshView()
	}
}

//step does one physics tick for the entire field
//a running universe ticks through the controller, a waiting one forces a single step
func (u *SandUniverse) step() {
	rm := u.mode()
	u.switchRunningState(RunningStateStep)

	start := time.Now()
	u.field.Lock()
	var changed bool
	if u.field.Active() {
		changed = u.field.Tick()
	} else {
		changed = u.field.Step()
	}
	g := u.field.Grid()
	sandCells, rockCells := g.Count(sand.KindSand), g.Count(sand.KindRock)
	u.field.Unlock()

	u.state.Lock()
	u.state.IterationNum++
	u.state.SandCells = sandCells
	u.state.RockCells = rockCells
	u.state.IterationTime = time.Since(start)
	u.state.Changed = changed
	iter := u.state.IterationNum
	u.state.Unlock()

	if changed {
		u.quiet = 0
	} else {
		u.quiet++
	}

	maxIter := u.options.MaxSteps
	if (maxIter != 0 && iter >= maxIter) || (u.options.StopWhenSettled && u.quiet >= SettledTicks) {
		u.halt(RunningStateFinished, true)
		return
	}
	u.switchRunningState(rm)
	u.refreshView()
}

//clear clears the field, resets all counters and resumes the run
func (u *SandUniverse) clear() {
	u.field.Lock()
	u.field.Reset()
	u.field.Unlock()
	u.hovered = -1

	u.state.Lock()
	u.state.IterationNum = 0
	u.state.SandCells = 0
	u.state.RockCells = 0
	u.state.IterationTime = 0
	u.state.Changed = true
	u.state.Unlock()

	if u.stopCh != nil {
		close(u.stopCh)
		u.stopCh = nil
	}
	u.run()
}

//refreshView calls Refresh event for all registered views
func (u *SandUniverse) refreshView() {
	u.mu.Lock()
	views := append([]Viewer(nil), u.views...)
	u.mu.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
