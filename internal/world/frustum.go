package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	clipNear float32 = 0.01
	clipFar  float32 = 1000.0
)

// Frustum holds the six clip planes of a view (left, right, bottom, top,
// near, far). Planes face inward.
type Frustum struct {
	planes [6]plane
}

// plane is ax + by + cz + d = 0.
type plane struct {
	normal   rl.Vector3
	distance float32
}

// NewFrustum extracts the frustum of a perspective camera with the given
// aspect ratio (Gribb/Hartmann).
func NewFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)
	proj := rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, clipNear, clipFar)
	vp := rl.MatrixMultiply(view, proj)

	// Rows of the combined matrix.
	rows := [4][4]float32{
		{vp.M0, vp.M4, vp.M8, vp.M12},
		{vp.M1, vp.M5, vp.M9, vp.M13},
		{vp.M2, vp.M6, vp.M10, vp.M14},
		{vp.M3, vp.M7, vp.M11, vp.M15},
	}
	w := rows[3]

	var f Frustum
	for axis := 0; axis < 3; axis++ {
		r := rows[axis]
		f.planes[axis*2] = makePlane(w[0]+r[0], w[1]+r[1], w[2]+r[2], w[3]+r[3])
		f.planes[axis*2+1] = makePlane(w[0]-r[0], w[1]-r[1], w[2]-r[2], w[3]-r[3])
	}
	return f
}

func makePlane(a, b, c, d float32) plane {
	p := plane{normal: rl.Vector3{X: a, Y: b, Z: c}, distance: d}
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: d / length,
	}
}

// ContainsSphere reports whether any part of the sphere is inside.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
