package orbit

// System is the solar-system state: the fixed set of orbiting bodies.
// It is owned by one goroutine, the one driving the frame loop.
type System struct {
	bodies []*CelestialBody
	byName map[string]*CelestialBody
}

func newSystem() *System {
	return &System{
		byName: make(map[string]*CelestialBody),
	}
}

func (s *System) add(b *CelestialBody) bool {
	if _, exists := s.byName[b.Name]; exists {
		return false
	}
	s.bodies = append(s.bodies, b)
	s.byName[b.Name] = b
	return true
}

// Bodies returns the bodies in configuration order.
func (s *System) Bodies() []*CelestialBody {
	return s.bodies
}

// Body looks up a body by name.
func (s *System) Body(name string) (*CelestialBody, bool) {
	b, ok := s.byName[name]
	return b, ok
}

// Len returns the number of orbiting bodies.
func (s *System) Len() int {
	return len(s.bodies)
}

// Advance moves every body along its orbit by AngularSpeed*dt radians.
// A tick of dt=1 advances each angle by exactly its angular speed. Angles
// accumulate without wraparound.
func (s *System) Advance(dt float64) {
	for _, b := range s.bodies {
		b.Angle += b.AngularSpeed * dt
	}
}

// MaxDistance returns the largest orbit radius, or 0 for an empty system.
func (s *System) MaxDistance() float64 {
	var max float64
	for _, b := range s.bodies {
		if b.distance > max {
			max = b.distance
		}
	}
	return max
}
