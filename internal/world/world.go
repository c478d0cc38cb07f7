package world

import (
	"log"

	"orrery/internal/components"
	"orrery/internal/engine"
	"orrery/internal/orbit"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	RootName  = "SolarSystem"
	SunName   = "Sun"
	StarsName = "Stars"

	TagPlanet    = "planet"
	TagIndicator = "orbit-indicator"
	TagRing      = "ring"

	starColor = 0xffffff
)

// World is the GameObject view of an orbit.Scene. Bodies, indicators and
// the sun live under a scaled root group; the star field sits outside it.
type World struct {
	Scene    *engine.Scene
	Root     *engine.GameObject
	Stars    *engine.GameObject
	Renderer *Renderer
	bodies   map[string]*engine.GameObject
}

func New() *World {
	return &World{
		Scene:    engine.NewScene("Main"),
		Renderer: NewRenderer(),
		bodies:   make(map[string]*engine.GameObject),
	}
}

// Initialize builds the GameObjects for scene and points every body's
// Handle at its GameObject. It does not touch the GPU, so it may run
// before the window exists.
func (w *World) Initialize(scene *orbit.Scene, scale float32) {
	w.Root = engine.NewGameObject(RootName)
	w.Root.Transform.Scale = rl.Vector3{X: scale, Y: scale, Z: scale}

	sun := engine.NewGameObject(SunName)
	sun.AddComponent(components.NewSphereRenderer(
		components.ColorFromHex(scene.Central.Color, 1),
		float32(scene.Central.Size),
	))
	w.Root.AddChild(sun)

	for _, body := range scene.System.Bodies() {
		w.Root.AddChild(w.createBody(body))
	}

	for _, ind := range scene.Indicators {
		w.Root.AddChild(createIndicator(ind))
	}

	if scene.Ring != nil {
		if parent, ok := w.bodies[scene.Ring.Body]; ok {
			parent.AddChild(createRing(*scene.Ring))
		}
	}

	w.Stars = engine.NewGameObject(StarsName)
	w.Stars.AddComponent(components.NewPointCloud(scene.Stars, components.ColorFromHex(starColor, 1)))

	w.Scene.AddGameObject(w.Root)
	w.Scene.AddGameObject(w.Stars)

	// Start all GameObjects
	w.Scene.Start()

	log.Printf("World: %d bodies, %d indicators, %d stars, ring=%v",
		scene.System.Len(), len(scene.Indicators), len(scene.Stars), scene.Ring != nil)
}

func (w *World) createBody(body *orbit.CelestialBody) *engine.GameObject {
	g := engine.NewGameObject(body.Name)
	g.Tags = []string{TagPlanet}
	g.AddComponent(components.NewOrbiter(body))
	g.AddComponent(components.NewSphereRenderer(
		components.ColorFromHex(body.Color, 1),
		float32(body.Size),
	))

	body.Handle = g
	w.bodies[body.Name] = g
	return g
}

func createIndicator(ind orbit.OrbitIndicator) *engine.GameObject {
	g := engine.NewGameObject(ind.Body + "Orbit")
	g.Tags = []string{TagIndicator}
	g.Transform.Rotation.X = float32(ind.Tilt) * rl.Rad2deg
	g.AddComponent(components.NewCircleRenderer(
		components.ColorFromHex(ind.Color, ind.Opacity),
		float32(ind.Radius()),
	))
	return g
}

func createRing(ring orbit.BodyRing) *engine.GameObject {
	g := engine.NewGameObject(ring.Body + "Ring")
	g.Tags = []string{TagRing}
	g.Transform.Rotation.X = float32(ring.Tilt) * rl.Rad2deg
	g.AddComponent(components.NewAnnulusRenderer(
		components.ColorFromHex(ring.Color, ring.Opacity),
		float32(ring.Inner),
		float32(ring.Outer),
	))
	return g
}

// Body returns the GameObject of a body.
func (w *World) Body(name string) *engine.GameObject {
	return w.bodies[name]
}

// Update syncs transforms from the orbit state. Call it after the
// controller tick.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}

// Draw renders the scene as seen by camera. It must run inside
// rl.BeginMode3D with the same camera.
func (w *World) Draw(camera rl.Camera3D, aspect float32) {
	frustum := NewFrustum(camera, aspect)
	w.Renderer.Draw(w.Scene, &frustum)
}
