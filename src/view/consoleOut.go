package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"sandsim/src/universe"
)

//ConsoleOut prints the progress of a headless run
type ConsoleOut struct {
	u         universe.Universe
	out       io.Writer
	startTime time.Time
	lastIter  int
	done      chan struct{}
	finished  bool
}

func NewConsoleOut() *ConsoleOut {
	return NewConsoleOutTo(os.Stdout)
}

//NewConsoleOutTo writes the progress to w
func NewConsoleOutTo(w io.Writer) *ConsoleOut {
	return &ConsoleOut{out: w, done: make(chan struct{})}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		if c.finished {
			return
		}
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Sand cells":     st.SandCells,
			"Rock cells":     st.RockCells,
		}
		fmt.Fprintln(c.out, aurora.Red("\nFinished:"))
		c.printHashData(resultData)
		close(c.done)
	} else if st.IterationNum != c.lastIter && st.IterationNum%10 == 0 {
		c.lastIter = st.IterationNum
		fmt.Fprintf(c.out, "  Iterations done: %v, sand cells: %v\n", st.IterationNum, st.SandCells)
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.out, "Running configuration:")
	fmt.Fprintf(c.out, "  Run: %v\n", u.ID())
	fmt.Fprintf(c.out, "  Dimension: %v x %v\n", o.Width, o.Height)
	fmt.Fprintf(c.out, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.out, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

//Start runs the universe and blocks until it finishes
func (c *ConsoleOut) Start() error {
	c.startTime = time.Now()
	fmt.Fprintln(c.out, aurora.Cyan("\nSimulation started..."))
	c.u.Run()
	<-c.done
	return nil
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.out, "  %s: %v\n", propName, d[propName])
	}
}
