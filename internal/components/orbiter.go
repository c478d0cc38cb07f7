package components

import (
	"orrery/internal/engine"
	"orrery/internal/orbit"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Orbiter mirrors a body's orbital position into its GameObject. The
// animation itself is done by orbit.System; Orbiter only copies the result.
type Orbiter struct {
	engine.BaseComponent
	Body *orbit.CelestialBody
}

func NewOrbiter(body *orbit.CelestialBody) *Orbiter {
	return &Orbiter{Body: body}
}

func (o *Orbiter) Start() {
	o.sync()
}

func (o *Orbiter) Update(deltaTime float32) {
	o.sync()
}

func (o *Orbiter) sync() {
	g := o.GetGameObject()
	if g == nil || o.Body == nil {
		return
	}
	p := o.Body.Position()
	g.Transform.Position = rl.Vector3{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
}
