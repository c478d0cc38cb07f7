package world

import (
	"orrery/internal/components"
	"orrery/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Renderer struct {
	Background rl.Color

	// Drawn and Culled count spheres from the last Draw.
	Drawn  int
	Culled int

	opaque      []engine.Drawable
	translucent []engine.Drawable
}

func NewRenderer() *Renderer {
	return &Renderer{
		Background: rl.Black,
	}
}

// Clear fills the frame with the background colour. Call it between
// rl.BeginDrawing and rl.BeginMode3D.
func (r *Renderer) Clear() {
	rl.ClearBackground(r.Background)
}

// Draw renders every Drawable in the scene. Opaque drawables go first so
// the translucent rings blend over them. Spheres outside frustum are
// skipped; a nil frustum draws everything.
func (r *Renderer) Draw(scene *engine.Scene, frustum *Frustum) {
	r.collect(scene, frustum)

	for _, d := range r.opaque {
		d.Draw()
	}
	for _, d := range r.translucent {
		d.Draw()
	}
}

func (r *Renderer) collect(scene *engine.Scene, frustum *Frustum) {
	r.opaque = r.opaque[:0]
	r.translucent = r.translucent[:0]
	r.Drawn, r.Culled = 0, 0

	scene.Walk(func(g *engine.GameObject) {
		if !g.Active {
			return
		}
		for _, c := range g.Components() {
			d, ok := c.(engine.Drawable)
			if !ok {
				continue
			}

			m, isMesh := c.(*components.MeshRenderer)
			if isMesh && m.MeshType == components.MeshSphere {
				if frustum != nil && !sphereVisible(frustum, g, m.Radius) {
					r.Culled++
					continue
				}
				r.Drawn++
			}

			if isMesh && m.Color.A < 255 {
				r.translucent = append(r.translucent, d)
			} else {
				r.opaque = append(r.opaque, d)
			}
		}
	})
}

func sphereVisible(f *Frustum, g *engine.GameObject, radius float32) bool {
	return f.ContainsSphere(g.WorldPosition(), radius*g.WorldScale().X)
}
