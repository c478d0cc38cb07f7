package components

import (
	"orrery/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// PointCloud draws a fixed set of points around its GameObject.
type PointCloud struct {
	engine.BaseComponent
	Points []rl.Vector3
	Color  rl.Color
}

func NewPointCloud(points []r3.Vec, color rl.Color) *PointCloud {
	pts := make([]rl.Vector3, len(points))
	for i, p := range points {
		pts[i] = rl.Vector3{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
	}
	return &PointCloud{Points: pts, Color: color}
}

func (p *PointCloud) Draw() {
	g := p.GetGameObject()
	if g == nil || !g.Active {
		return
	}
	origin := g.WorldPosition()
	for _, pt := range p.Points {
		rl.DrawPoint3D(rl.Vector3Add(origin, pt), p.Color)
	}
}
