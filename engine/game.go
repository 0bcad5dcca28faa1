package engine

import (
	"github.com/spaghettifunk/anima-gl/engine/systems"
)

// Game is the application driven by the engine. The engine fills in
// SystemManager before calling FnInitialize.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render draws the frame and returns the number of draw calls issued.
type Render func(deltaTime float64) (int, error)
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
