package orbit

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownBody        = errors.New("unknown body")
	ErrAlreadyInitialized = errors.New("controller already initialized")
)

// Controller owns the solar-system state for the lifetime of a renderer.
// All methods must be called from the goroutine driving the frame loop.
type Controller struct {
	scene *Scene
	ticks uint64
}

func NewController() *Controller {
	return &Controller{}
}

// Init builds the scene. Calling Init again before Shutdown is an error.
func (c *Controller) Init(specs []BodySpec, opts BuildOptions) error {
	if c.scene != nil {
		return ErrAlreadyInitialized
	}
	c.scene = Build(specs, opts)
	c.ticks = 0
	return nil
}

// Tick advances the animation by dt ticks. It does nothing when the
// controller is not initialized.
func (c *Controller) Tick(dt float64) {
	if c.scene == nil {
		return
	}
	c.scene.System.Advance(dt)
	c.ticks++
}

// SetAngularSpeed replaces a body's speed. The new value applies from the
// next Tick on.
func (c *Controller) SetAngularSpeed(name string, speed float64) error {
	if c.scene == nil {
		return fmt.Errorf("set speed of %q: %w", name, ErrUnknownBody)
	}
	b, ok := c.scene.System.Body(name)
	if !ok {
		return fmt.Errorf("set speed of %q: %w", name, ErrUnknownBody)
	}
	b.AngularSpeed = speed
	return nil
}

// Shutdown drops the state. It is safe to call more than once.
func (c *Controller) Shutdown() {
	c.scene = nil
}

// Scene returns the built scene, or nil before Init.
func (c *Controller) Scene() *Scene {
	return c.scene
}

// Bodies returns the orbiting bodies, or nil before Init.
func (c *Controller) Bodies() []*CelestialBody {
	if c.scene == nil {
		return nil
	}
	return c.scene.System.Bodies()
}

// Ticks returns the number of ticks since Init.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

// SpeedRange is the range and granularity of an angular speed control.
type SpeedRange struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultSpeedRange matches the reference slider: [0, 0.1] in 0.001 steps.
var DefaultSpeedRange = SpeedRange{Min: 0, Max: 0.1, Step: 0.001}

// Clamp snaps v onto the step grid and clamps it into [Min, Max].
func (r SpeedRange) Clamp(v float64) float64 {
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Nudge moves v by n steps and clamps the result.
func (r SpeedRange) Nudge(v float64, n int) float64 {
	return r.Clamp(v + float64(n)*r.Step)
}
