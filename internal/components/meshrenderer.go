package components

import (
	"math"

	"orrery/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshSphere MeshType = iota
	MeshCircle
	MeshAnnulus
)

const (
	sphereRings  = 32
	sphereSlices = 32
	ringSegments = 64
)

// MeshRenderer draws a primitive at its GameObject's world transform.
// Spheres use Radius. Circles and annuli lie in the object's local XY plane
// and are oriented by its world rotation, so a 90 degree X rotation lays
// them flat on the orbital plane.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Radius   float32 // sphere radius, circle radius
	Inner    float32 // annulus inner radius
	Outer    float32 // annulus outer radius
}

func NewSphereRenderer(color rl.Color, radius float32) *MeshRenderer {
	return &MeshRenderer{MeshType: MeshSphere, Color: color, Radius: radius}
}

func NewCircleRenderer(color rl.Color, radius float32) *MeshRenderer {
	return &MeshRenderer{MeshType: MeshCircle, Color: color, Radius: radius}
}

func NewAnnulusRenderer(color rl.Color, inner, outer float32) *MeshRenderer {
	return &MeshRenderer{MeshType: MeshAnnulus, Color: color, Inner: inner, Outer: outer}
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	pos := g.WorldPosition()
	scale := g.WorldScale().X

	switch m.MeshType {
	case MeshSphere:
		rl.DrawSphereEx(pos, m.Radius*scale, sphereRings, sphereSlices, m.Color)
	case MeshCircle:
		m.drawCircle(g, pos, m.Radius*scale)
	case MeshAnnulus:
		m.drawAnnulus(g, pos, m.Inner*scale, m.Outer*scale)
	}
}

func (m *MeshRenderer) drawCircle(g *engine.GameObject, center rl.Vector3, radius float32) {
	rot := g.RotationMatrix()
	prev := rl.Vector3Add(center, rl.Vector3Transform(rl.Vector3{X: radius}, rot))
	for i := 1; i <= ringSegments; i++ {
		next := rl.Vector3Add(center, rl.Vector3Transform(RingPoint(radius, i, ringSegments), rot))
		rl.DrawLine3D(prev, next, m.Color)
		prev = next
	}
}

// drawAnnulus draws both faces so the ring is visible from above and below.
func (m *MeshRenderer) drawAnnulus(g *engine.GameObject, center rl.Vector3, inner, outer float32) {
	rot := g.RotationMatrix()
	at := func(r float32, i int) rl.Vector3 {
		return rl.Vector3Add(center, rl.Vector3Transform(RingPoint(r, i, ringSegments), rot))
	}
	for i := 0; i < ringSegments; i++ {
		i0, o0 := at(inner, i), at(outer, i)
		i1, o1 := at(inner, i+1), at(outer, i+1)

		rl.DrawTriangle3D(i0, o0, o1, m.Color)
		rl.DrawTriangle3D(i0, o1, i1, m.Color)
		rl.DrawTriangle3D(i0, o1, o0, m.Color)
		rl.DrawTriangle3D(i0, i1, o1, m.Color)
	}
}

// RingPoint returns the i-th of n points on a circle of radius r in the XY
// plane.
func RingPoint(r float32, i, n int) rl.Vector3 {
	theta := 2 * math32.Pi * float32(i) / float32(n)
	sin, cos := math32.Sincos(theta)
	return rl.Vector3{X: cos * r, Y: sin * r}
}

// ColorFromHex converts 0xRRGGBB and an opacity in [0, 1] to a raylib color.
func ColorFromHex(hex uint32, opacity float64) rl.Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return rl.NewColor(uint8(hex>>16), uint8(hex>>8), uint8(hex), uint8(math.Round(opacity*255)))
}
