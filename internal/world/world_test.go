package world

import (
	"math/rand"
	"testing"

	"orrery/internal/components"
	"orrery/internal/engine"
	"orrery/internal/orbit"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bodies = []orbit.BodySpec{
	{Name: "Mercury", Color: 0xaaaaaa, Distance: 6, Size: 0.5, AngularSpeed: 0.04},
	{Name: "Venus", Color: 0xffcc99, Distance: 8, Size: 0.6, AngularSpeed: 0.015},
	{Name: "Earth", Color: 0x3399ff, Distance: 10, Size: 0.7, AngularSpeed: 0.01},
	{Name: "Mars", Color: 0xff3300, Distance: 12, Size: 0.6, AngularSpeed: 0.008},
	{Name: "Jupiter", Color: 0xff9966, Distance: 15, Size: 1.5, AngularSpeed: 0.004},
	{Name: "Saturn", Color: 0xffcc66, Distance: 18, Size: 1.2, AngularSpeed: 0.003},
	{Name: "Uranus", Color: 0x66ffff, Distance: 21, Size: 1.0, AngularSpeed: 0.002},
	{Name: "Neptune", Color: 0x3366ff, Distance: 24, Size: 1.0, AngularSpeed: 0.001},
}

func newWorld(t *testing.T) (*World, *orbit.Scene) {
	t.Helper()
	scene := orbit.Build(bodies, orbit.BuildOptions{Rand: rand.New(rand.NewSource(1)), StarCount: 50})
	w := New()
	w.Initialize(scene, 2)
	return w, scene
}

func TestInitializeBuildsGraph(t *testing.T) {
	w, scene := newWorld(t)

	require.Len(t, w.Scene.GameObjects, 2)
	assert.Equal(t, RootName, w.Scene.GameObjects[0].Name)
	assert.Equal(t, StarsName, w.Scene.GameObjects[1].Name)
	assert.Equal(t, rl.Vector3{X: 2, Y: 2, Z: 2}, w.Root.Transform.Scale)

	// sun + planets + indicators
	assert.Len(t, w.Root.Children, 1+2*len(bodies))
	assert.NotNil(t, w.Scene.FindByName(SunName))
	assert.Len(t, w.Scene.FindByTag(TagPlanet), len(bodies))
	assert.Len(t, w.Scene.FindByTag(TagIndicator), len(bodies))

	cloud := engine.GetComponent[*components.PointCloud](w.Stars)
	require.NotNil(t, cloud)
	assert.Len(t, cloud.Points, len(scene.Stars))
}

func TestInitializeSetsHandles(t *testing.T) {
	w, scene := newWorld(t)

	for _, b := range scene.System.Bodies() {
		g := w.Body(b.Name)
		require.NotNil(t, g, b.Name)
		assert.Same(t, g, b.Handle, b.Name)

		orbiter := engine.GetComponent[*components.Orbiter](g)
		require.NotNil(t, orbiter, b.Name)
		assert.Same(t, b, orbiter.Body)
	}
}

func TestRingIsChildOfRingedBody(t *testing.T) {
	w, _ := newWorld(t)

	saturn := w.Body("Saturn")
	require.Len(t, saturn.Children, 1)
	ring := saturn.Children[0]
	assert.Equal(t, "SaturnRing", ring.Name)
	assert.True(t, ring.HasTag(TagRing))
	assert.InDelta(t, 180/2.7, ring.Transform.Rotation.X, 1e-3)

	m := engine.GetComponent[*components.MeshRenderer](ring)
	require.NotNil(t, m)
	assert.Equal(t, components.MeshAnnulus, m.MeshType)
	assert.InDelta(t, 1.44, m.Inner, 1e-5)
	assert.InDelta(t, 2.4, m.Outer, 1e-5)

	for _, name := range []string{"Mercury", "Jupiter", "Neptune"} {
		assert.Empty(t, w.Body(name).Children, name)
	}
}

func TestIndicatorsLieFlat(t *testing.T) {
	w, _ := newWorld(t)

	for _, g := range w.Scene.FindByTag(TagIndicator) {
		assert.InDelta(t, 90, g.Transform.Rotation.X, 1e-3, g.Name)
		m := engine.GetComponent[*components.MeshRenderer](g)
		require.NotNil(t, m, g.Name)
		assert.Equal(t, components.MeshCircle, m.MeshType)
		assert.Less(t, m.Color.A, uint8(255))
	}
}

func TestUpdateFollowsOrbit(t *testing.T) {
	w, scene := newWorld(t)

	mercury := w.Body("Mercury")
	body, ok := scene.System.Body("Mercury")
	require.True(t, ok)

	start := body.Position()
	assert.InDelta(t, 2*start.X, mercury.WorldPosition().X, 1e-4, "scaled by the root group")
	assert.InDelta(t, 12, rl.Vector3Length(mercury.WorldPosition()), 1e-4)

	for i := 0; i < 100; i++ {
		scene.System.Advance(1)
		w.Update(1.0 / 60)
	}

	pos := body.Position()
	got := mercury.WorldPosition()
	assert.InDelta(t, 2*pos.X, got.X, 1e-4)
	assert.InDelta(t, 0, got.Y, 1e-4)
	assert.InDelta(t, 2*pos.Z, got.Z, 1e-4)

	ring := w.Body("Saturn").Children[0]
	assert.Equal(t, w.Body("Saturn").WorldPosition(), ring.WorldPosition())
}

func TestCollectSortsTranslucentLast(t *testing.T) {
	w, _ := newWorld(t)

	w.Renderer.collect(w.Scene, nil)

	spheres := 1 + len(bodies)
	assert.Equal(t, spheres, w.Renderer.Drawn)
	assert.Zero(t, w.Renderer.Culled)
	assert.Len(t, w.Renderer.opaque, spheres+1, "spheres and the star field")
	assert.Len(t, w.Renderer.translucent, len(bodies)+1, "indicators and the ring")
}

func TestCollectSkipsInactive(t *testing.T) {
	w, _ := newWorld(t)
	w.Stars.Active = false

	w.Renderer.collect(w.Scene, nil)
	assert.Len(t, w.Renderer.opaque, 1+len(bodies))
}

func TestCollectCullsBehindCamera(t *testing.T) {
	w, _ := newWorld(t)

	// Above the orbital plane, looking up.
	away := rl.Camera3D{
		Position: rl.Vector3{Y: 100},
		Target:   rl.Vector3{Y: 200},
		Up:       rl.Vector3{Z: 1},
		Fovy:     45,
	}
	f := NewFrustum(away, 1)
	w.Renderer.collect(w.Scene, &f)

	assert.Equal(t, 1+len(bodies), w.Renderer.Culled)
	assert.Zero(t, w.Renderer.Drawn)
}

func TestFrustum(t *testing.T) {
	cam := rl.Camera3D{
		Position: rl.Vector3{Z: 10},
		Target:   rl.Vector3{},
		Up:       rl.Vector3{Y: 1},
		Fovy:     45,
	}
	f := NewFrustum(cam, 1)

	assert.True(t, f.ContainsPoint(rl.Vector3{}))
	assert.True(t, f.ContainsPoint(rl.Vector3{X: 3, Y: -3}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: 20}), "behind the camera")
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 100}))
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 6}))
	assert.True(t, f.ContainsSphere(rl.Vector3{X: 6}, 3), "overlaps the right plane")
	assert.False(t, f.ContainsSphere(rl.Vector3{X: 6}, 1))
}
