package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BodySpec is one row of the planet table.
type BodySpec struct {
	Name         string
	Color        uint32 // 0xRRGGBB
	Distance     float64
	Size         float64
	AngularSpeed float64 // radians per tick
}

// CelestialBody is a body on a circular, planar orbit around the origin.
type CelestialBody struct {
	Name         string
	Color        uint32
	Size         float64
	AngularSpeed float64
	Angle        float64 // accumulated, never wrapped

	// Handle is the renderable owned by the render collaborator.
	Handle any

	distance float64
}

func newBody(spec BodySpec, angle float64) *CelestialBody {
	return &CelestialBody{
		Name:         spec.Name,
		Color:        spec.Color,
		Size:         spec.Size,
		AngularSpeed: spec.AngularSpeed,
		Angle:        angle,
		distance:     spec.Distance,
	}
}

// Distance returns the orbit radius. It is fixed at creation.
func (b *CelestialBody) Distance() float64 {
	return b.distance
}

// Position returns the body's location on its orbit circle in the XZ plane.
func (b *CelestialBody) Position() r3.Vec {
	sin, cos := math.Sincos(b.Angle)
	return r3.Vec{
		X: cos * b.distance,
		Y: 0,
		Z: sin * b.distance,
	}
}

// DisplayAngle returns the angle reduced to [0, 2π).
func (b *CelestialBody) DisplayAngle() float64 {
	a := math.Mod(b.Angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
