package universe

import (
	"time"

	"sandsim/src/sand"
)

//Options represents the Universe's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int //0 runs without a limit
	MaxSkippedTicks int
	Slippage        int
	BrushRadius     int
	Seed            int64                  //0 seeds from the clock
	StopWhenSettled bool                   //finish the run once the field stops changing
	Advanced        map[string]interface{} //advanced options shown by the viewers
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	RunID         string
	IterationNum  int
	RunningMode   RunningState
	SandCells     int
	RockCells     int
	IterationTime time.Duration
	Changed       bool
}

//Controls is the current brush configuration
type Controls struct {
	Mode        sand.PaintMode
	Kind        sand.Kind
	BrushRadius int
	Active      bool
	PressureMax int
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start() error
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 50
	DefMaxSteps           = 1000
	DefMaxSkippedTicks    = 5
	SettledTicks          = 10 //unchanged ticks before a field counts as settled
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

func (s RunningState) String() string {
	switch s {
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	default:
		return "waiting"
	}
}

//DefaultUniverseOptions returns a fresh copy of the default options
func DefaultUniverseOptions() Options {
	return Options{
		Width:           sand.DefWidth,
		Height:          sand.DefHeight,
		Interval:        DefSimulationInterval,
		MaxSteps:        DefMaxSteps,
		MaxSkippedTicks: DefMaxSkippedTicks,
		Slippage:        sand.DefSlippage,
		BrushRadius:     sand.DefBrushRadius,
	}
}
