package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. Yaw is measured in the XZ plane from
// +X toward +Z, pitch upward from that plane, both in degrees.
type OrbitCamera struct {
	Target   rl.Vector3
	Yaw      float32
	Pitch    float32
	Distance float32
	Fovy     float32

	MinDistance float32
	MaxDistance float32
	LookSpeed   float32 // degrees per pixel of mouse drag
	KeySpeed    float32 // degrees per second with arrow keys
	ZoomStep    float32 // fraction of distance per wheel notch

	home pose
}

// pose is what Reset restores.
type pose struct {
	yaw, pitch, distance float32
}

// NewFromPosition aims a camera at target from pos.
func NewFromPosition(pos, target rl.Vector3, fovy float32) *OrbitCamera {
	offset := rl.Vector3Subtract(pos, target)
	dist := rl.Vector3Length(offset)

	var yaw, pitch float32
	if dist > 0 {
		yaw = float32(math.Atan2(float64(offset.Z), float64(offset.X)) * 180 / math.Pi)
		pitch = float32(math.Asin(float64(offset.Y/dist)) * 180 / math.Pi)
	}

	c := &OrbitCamera{
		Target:      target,
		Yaw:         yaw,
		Pitch:       pitch,
		Distance:    dist,
		Fovy:        fovy,
		MinDistance: 1,
		MaxDistance: 1000,
		LookSpeed:   0.3,
		KeySpeed:    60,
		ZoomStep:    0.1,
	}
	c.home = pose{yaw: yaw, pitch: pitch, distance: dist}
	return c
}

// Position returns the eye position.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	d := float64(c.Distance)

	return rl.Vector3{
		X: c.Target.X + float32(math.Cos(yawRad)*math.Cos(pitchRad)*d),
		Y: c.Target.Y + float32(math.Sin(pitchRad)*d),
		Z: c.Target.Z + float32(math.Sin(yawRad)*math.Cos(pitchRad)*d),
	}
}

// Orbit rotates the camera around the target. Pitch is clamped short of
// the poles so the up vector stays valid.
func (c *OrbitCamera) Orbit(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 360))
	c.Pitch += dPitch

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Zoom moves toward (positive notches) or away from the target.
func (c *OrbitCamera) Zoom(notches float32) {
	c.Distance *= 1 - notches*c.ZoomStep
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

func (c *OrbitCamera) Reset() {
	c.Yaw = c.home.yaw
	c.Pitch = c.home.pitch
	c.Distance = c.home.distance
}

// Update applies mouse and keyboard input. Dragging only applies when
// mouseFree is set, so widgets under the cursor keep the mouse.
func (c *OrbitCamera) Update(deltaTime float32, mouseFree bool) {
	if mouseFree && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		c.Orbit(-delta.X*c.LookSpeed, delta.Y*c.LookSpeed)
	}
	if mouseFree {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			c.Zoom(wheel)
		}
	}

	step := c.KeySpeed * deltaTime
	if rl.IsKeyDown(rl.KeyLeft) {
		c.Orbit(step, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		c.Orbit(-step, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		c.Orbit(0, step)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		c.Orbit(0, -step)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		c.Reset()
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
