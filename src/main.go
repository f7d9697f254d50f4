package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/integrii/flaggy"

	"sandsim/src/universe"
	"sandsim/src/view"
)

type EnvOptions struct {
	interactive bool
	window      bool
	randomData  bool
	template    string
	logFile     string
	scale       int
}

func main() {
	eo, uo := initOptions()

	var logOut io.Writer = os.Stderr
	if eo.logFile != "" {
		f, err := os.OpenFile(eo.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("can't open the log file: %v", err)
		}
		defer f.Close()
		logOut = f
	} else if eo.interactive {
		//keep the terminal UI intact
		logOut = io.Discard
	}
	log.SetOutput(logOut)

	if !eo.interactive && !eo.window {
		uo.StopWhenSettled = true
	}

	u := universe.NewSandUniverse(uo, nil)
	defer u.Close()

	if eo.randomData {
		u.SettleWithRandomData()
	} else {
		u.SettleTemplate(eo.template)
	}

	var v universe.Viewer
	switch {
	case eo.interactive:
		ui, err := view.NewConsoleUI()
		if err != nil {
			log.Fatalf("can't init the console UI: %v", err)
		}
		v = ui
	case eo.window:
		v = view.NewWindow(eo.scale)
	default:
		v = view.NewConsoleOut()
	}

	u.RegisterViewer(v)
	if err := v.Start(); err != nil {
		log.Fatal(err)
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {
	o := universe.DefaultUniverseOptions()
	uo = &o
	eo = &EnvOptions{template: "pile", scale: 6}

	names := make([]string, 0, 3)
	for _, t := range universe.DefaultTemplates(uo.Width, uo.Height) {
		names = append(names, t.Name)
	}

	flaggy.SetName("sandsim")
	flaggy.SetDescription("Falling sand simulation")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 50ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 runs without a limit")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start the interactive terminal mode")
	flaggy.Bool(&eo.window, "w", "window", "Start the graphical window (needs the ebiten build tag)")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.template, "t", "template", "Seeding template ["+strings.Join(names, "|")+"]")
	flaggy.Int(&uo.Slippage, "S", "slippage", "Max sideways distance a grain can slip per tick")
	flaggy.Int(&uo.BrushRadius, "b", "brush", "Initial brush radius")
	flaggy.Int64(&uo.Seed, "", "seed", "Random seed, 0 seeds from the clock")
	flaggy.Int(&eo.scale, "", "scale", "Window pixels per cell")
	flaggy.String(&eo.logFile, "l", "logfile", "Write the log to this file")

	flaggy.Parse()

	if eo.interactive && eo.window {
		flaggy.ShowHelpAndExit("choose either --interactive or --window")
	}
	if uo.Width <= 0 || uo.Height <= 0 {
		flaggy.ShowHelpAndExit(fmt.Sprintf("bad field size %dx%d", uo.Width, uo.Height))
	}
	known := false
	for _, n := range names {
		known = known || n == eo.template
	}
	if !known && !eo.randomData {
		flaggy.ShowHelpAndExit("unknown template " + eo.template)
	}

	return
}
