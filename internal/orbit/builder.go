package orbit

import (
	"log"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultStarCount  = 1000
	DefaultStarSpread = 1000.0
	DefaultRingedBody = "Saturn"
	DefaultSunSize    = 3.0
	DefaultSunColor   = 0xffff00

	indicatorHalfWidth = 0.01
	indicatorOpacity   = 0.3
	ringOpacity        = 0.7
	ringInnerFactor    = 1.2
	ringOuterFactor    = 2.0
)

// Tilts are rotations about the X axis in radians.
const (
	IndicatorTilt = math.Pi / 2
	RingTilt      = math.Pi / 2.7
)

// CentralBody is the sun. It never moves.
type CentralBody struct {
	Size  float64
	Color uint32
}

// OrbitIndicator is a thin static ring marking an orbit radius.
type OrbitIndicator struct {
	Body    string
	Inner   float64
	Outer   float64
	Color   uint32
	Opacity float64
	Tilt    float64
}

// Radius returns the midline radius of the indicator.
func (o OrbitIndicator) Radius() float64 {
	return (o.Inner + o.Outer) / 2
}

// BodyRing is a decorative ring attached to one body's renderable.
type BodyRing struct {
	Body    string
	Inner   float64
	Outer   float64
	Color   uint32
	Opacity float64
	Tilt    float64
}

// Scene is the static content built once at startup.
type Scene struct {
	Central    CentralBody
	System     *System
	Indicators []OrbitIndicator
	Ring       *BodyRing
	Stars      []r3.Vec
}

// BuildOptions controls the parts of the scene that are not in the body
// table. The zero value uses the reference layout with a time-seeded source.
type BuildOptions struct {
	Rand       *rand.Rand
	Sun        CentralBody
	StarCount  int
	StarSpread float64
	RingedBody string
	NoStars    bool
	NoRing     bool
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Sun.Size <= 0 {
		o.Sun.Size = DefaultSunSize
	}
	if o.Sun.Color == 0 {
		o.Sun.Color = DefaultSunColor
	}
	if o.StarCount <= 0 && !o.NoStars {
		o.StarCount = DefaultStarCount
	}
	if o.StarSpread <= 0 {
		o.StarSpread = DefaultStarSpread
	}
	if o.RingedBody == "" {
		o.RingedBody = DefaultRingedBody
	}
	return o
}

// Build creates the sun, one body per valid spec, their orbit indicators,
// the star field and the optional ring. Entries without a name and repeated
// names are skipped. An empty table yields an empty but valid scene.
func Build(specs []BodySpec, opts BuildOptions) *Scene {
	opts = opts.withDefaults()

	scene := &Scene{
		Central: opts.Sun,
		System:  newSystem(),
	}

	for i, spec := range specs {
		if spec.Name == "" {
			log.Printf("Orbit: skipping body %d: missing name", i)
			continue
		}
		body := newBody(spec, opts.Rand.Float64()*2*math.Pi)
		if !scene.System.add(body) {
			log.Printf("Orbit: skipping body %d: duplicate name %q", i, spec.Name)
			continue
		}

		scene.Indicators = append(scene.Indicators, OrbitIndicator{
			Body:    spec.Name,
			Inner:   spec.Distance - indicatorHalfWidth,
			Outer:   spec.Distance + indicatorHalfWidth,
			Color:   0xffffff,
			Opacity: indicatorOpacity,
			Tilt:    IndicatorTilt,
		})

		if !opts.NoRing && spec.Name == opts.RingedBody {
			scene.Ring = &BodyRing{
				Body:    spec.Name,
				Inner:   spec.Size * ringInnerFactor,
				Outer:   spec.Size * ringOuterFactor,
				Color:   spec.Color,
				Opacity: ringOpacity,
				Tilt:    RingTilt,
			}
		}
	}

	if !opts.NoStars {
		scene.Stars = starField(opts.Rand, opts.StarCount, opts.StarSpread)
	}

	return scene
}

// starField scatters count points uniformly in a cube of side spread
// centred on the origin.
func starField(rng *rand.Rand, count int, spread float64) []r3.Vec {
	stars := make([]r3.Vec, count)
	for i := range stars {
		stars[i] = r3.Vec{
			X: (rng.Float64() - 0.5) * spread,
			Y: (rng.Float64() - 0.5) * spread,
			Z: (rng.Float64() - 0.5) * spread,
		}
	}
	return stars
}
