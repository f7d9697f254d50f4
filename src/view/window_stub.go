//go:build !ebiten

package view

import (
	"errors"

	"sandsim/src/universe"
)

//Window is a placeholder used when the ebiten build tag is absent
type Window struct{}

func NewWindow(scale int) *Window { return &Window{} }

func (w *Window) Register(universe.Universe) {}

func (w *Window) Refresh() {}

//Start always reports that the window build tag is missing
func (w *Window) Start() error {
	return errors.New("the window view requires building with the 'ebiten' tag")
}
