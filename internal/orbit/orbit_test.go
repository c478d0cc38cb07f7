package orbit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

var referenceTable = []BodySpec{
	{Name: "Mercury", Color: 0xaaaaaa, Distance: 6, Size: 0.5, AngularSpeed: 0.04},
	{Name: "Venus", Color: 0xffcc99, Distance: 8, Size: 0.6, AngularSpeed: 0.015},
	{Name: "Earth", Color: 0x3399ff, Distance: 10, Size: 0.7, AngularSpeed: 0.01},
	{Name: "Mars", Color: 0xff3300, Distance: 12, Size: 0.6, AngularSpeed: 0.008},
	{Name: "Jupiter", Color: 0xff9966, Distance: 15, Size: 1.5, AngularSpeed: 0.004},
	{Name: "Saturn", Color: 0xffcc66, Distance: 18, Size: 1.2, AngularSpeed: 0.003},
	{Name: "Uranus", Color: 0x66ffff, Distance: 21, Size: 1.0, AngularSpeed: 0.002},
	{Name: "Neptune", Color: 0x3366ff, Distance: 24, Size: 1.0, AngularSpeed: 0.001},
}

func seeded() BuildOptions {
	return BuildOptions{Rand: rand.New(rand.NewSource(42))}
}

func TestBuildReferenceTable(t *testing.T) {
	scene := Build(referenceTable, seeded())

	require.Equal(t, len(referenceTable), scene.System.Len())
	assert.Len(t, scene.Indicators, len(referenceTable))
	assert.Len(t, scene.Stars, DefaultStarCount)
	assert.Equal(t, DefaultSunSize, scene.Central.Size)
	assert.Equal(t, uint32(DefaultSunColor), scene.Central.Color)

	for i, b := range scene.System.Bodies() {
		assert.Equal(t, referenceTable[i].Name, b.Name)
		assert.Equal(t, referenceTable[i].Distance, b.Distance())
		assert.GreaterOrEqual(t, b.Angle, 0.0)
		assert.Less(t, b.Angle, 2*math.Pi)
	}
}

func TestBuildIndicators(t *testing.T) {
	scene := Build(referenceTable, seeded())

	for i, ind := range scene.Indicators {
		d := referenceTable[i].Distance
		assert.Equal(t, referenceTable[i].Name, ind.Body)
		assert.InDelta(t, d-0.01, ind.Inner, tol)
		assert.InDelta(t, d+0.01, ind.Outer, tol)
		assert.InDelta(t, d, ind.Radius(), tol)
		assert.Equal(t, IndicatorTilt, ind.Tilt)
		assert.Equal(t, uint32(0xffffff), ind.Color)
	}
}

func TestBuildRingOnSaturn(t *testing.T) {
	scene := Build(referenceTable, seeded())

	require.NotNil(t, scene.Ring)
	assert.Equal(t, "Saturn", scene.Ring.Body)
	assert.InDelta(t, 1.2*1.2, scene.Ring.Inner, tol)
	assert.InDelta(t, 1.2*2, scene.Ring.Outer, tol)
	assert.Equal(t, uint32(0xffcc66), scene.Ring.Color)
	assert.Equal(t, RingTilt, scene.Ring.Tilt)
}

func TestBuildRingMissingBody(t *testing.T) {
	opts := seeded()
	opts.RingedBody = "Pluto"
	scene := Build(referenceTable, opts)
	assert.Nil(t, scene.Ring)

	opts = seeded()
	opts.NoRing = true
	assert.Nil(t, Build(referenceTable, opts).Ring)
}

func TestBuildStarBounds(t *testing.T) {
	opts := seeded()
	opts.StarCount = 250
	scene := Build(nil, opts)

	require.Len(t, scene.Stars, 250)
	for _, s := range scene.Stars {
		for _, c := range []float64{s.X, s.Y, s.Z} {
			assert.GreaterOrEqual(t, c, -500.0)
			assert.LessOrEqual(t, c, 500.0)
		}
	}
}

func TestBuildNoStars(t *testing.T) {
	opts := seeded()
	opts.NoStars = true
	assert.Empty(t, Build(referenceTable, opts).Stars)
}

func TestBuildEmptyTable(t *testing.T) {
	scene := Build(nil, seeded())

	assert.Equal(t, 0, scene.System.Len())
	assert.Empty(t, scene.Indicators)
	assert.Nil(t, scene.Ring)
	assert.Equal(t, 0.0, scene.System.MaxDistance())

	assert.NotPanics(t, func() { scene.System.Advance(1) })
}

func TestBuildSkipsMalformedEntries(t *testing.T) {
	specs := []BodySpec{
		{Name: "Earth", Distance: 10, AngularSpeed: 0.01},
		{Name: "", Distance: 5},
		{Name: "Earth", Distance: 99},
		{Name: "Mars", Distance: 12},
	}
	scene := Build(specs, seeded())

	require.Equal(t, 2, scene.System.Len())
	earth, ok := scene.System.Body("Earth")
	require.True(t, ok)
	assert.Equal(t, 10.0, earth.Distance())
	assert.Len(t, scene.Indicators, 2)
}

func TestBuildSeedIsReproducible(t *testing.T) {
	a := Build(referenceTable, seeded())
	b := Build(referenceTable, seeded())

	for i := range a.System.Bodies() {
		assert.Equal(t, a.System.Bodies()[i].Angle, b.System.Bodies()[i].Angle)
	}
	assert.Equal(t, a.Stars, b.Stars)
}

func TestAdvanceAccumulatesSpeed(t *testing.T) {
	scene := Build(referenceTable, seeded())
	bodies := scene.System.Bodies()

	initial := make([]float64, len(bodies))
	for i, b := range bodies {
		initial[i] = b.Angle
	}

	const n = 500
	for range n {
		scene.System.Advance(1)
	}

	for i, b := range bodies {
		want := initial[i]
		for range n {
			want += referenceTable[i].AngularSpeed
		}
		assert.Equal(t, want, b.Angle, b.Name)
		assert.InDelta(t, initial[i]+n*referenceTable[i].AngularSpeed, b.Angle, 1e-9, b.Name)
	}
}

func TestAdvanceStaysOnCircle(t *testing.T) {
	scene := Build(referenceTable, seeded())

	for tick := 0; tick < 2000; tick++ {
		scene.System.Advance(1)
		for _, b := range scene.System.Bodies() {
			p := b.Position()
			d := b.Distance()
			if !scalar.EqualWithinAbs(p.X*p.X+p.Z*p.Z, d*d, 1e-9) {
				t.Fatalf("%s left its orbit at tick %d: %v", b.Name, tick, p)
			}
			assert.Equal(t, 0.0, p.Y)
		}
	}
}

func TestAdvanceDistanceInvariant(t *testing.T) {
	scene := Build(referenceTable, seeded())
	for range 1000 {
		scene.System.Advance(1)
	}
	for i, b := range scene.System.Bodies() {
		assert.Equal(t, referenceTable[i].Distance, b.Distance())
	}
}

func TestAdvanceEarthScenario(t *testing.T) {
	scene := Build([]BodySpec{{Name: "Earth", Distance: 10, AngularSpeed: 0.01}}, seeded())
	earth, _ := scene.System.Body("Earth")
	earth.Angle = 0

	scene.System.Advance(1)

	p := earth.Position()
	assert.InDelta(t, math.Cos(0.01)*10, p.X, tol)
	assert.InDelta(t, 9.9995, p.X, 1e-4)
	assert.Equal(t, 0.0, p.Y)
	assert.InDelta(t, math.Sin(0.01)*10, p.Z, tol)
	assert.InDelta(t, 0.09999, p.Z, 1e-5)
}

func TestAdvanceZeroSpeedFreezes(t *testing.T) {
	scene := Build(referenceTable, seeded())
	mars, _ := scene.System.Body("Mars")
	mars.AngularSpeed = 0
	angle, pos := mars.Angle, mars.Position()

	for range 100 {
		scene.System.Advance(1)
	}

	assert.Equal(t, angle, mars.Angle)
	assert.Equal(t, pos, mars.Position())
}

func TestAdvanceScaledTick(t *testing.T) {
	scene := Build([]BodySpec{{Name: "Earth", Distance: 10, AngularSpeed: 0.01}}, seeded())
	earth, _ := scene.System.Body("Earth")
	earth.Angle = 1

	scene.System.Advance(2.5)
	assert.InDelta(t, 1.025, earth.Angle, tol)
}

func TestDisplayAngle(t *testing.T) {
	b := &CelestialBody{Angle: 5*math.Pi + 0.5}
	assert.InDelta(t, math.Pi+0.5, b.DisplayAngle(), tol)

	b.Angle = 0.25
	assert.Equal(t, 0.25, b.DisplayAngle())
}
