package tui

import "math"

// cellAspect is how many columns match one row in on-screen length.
const cellAspect = 2.0

// projection maps the orbital plane onto terminal cells, looking down the
// Y axis: X grows to the right and Z grows downward.
type projection struct {
	cx, cy int
	scaleX float64 // columns per unit
	scaleY float64 // rows per unit
}

// fit centres the system in a width x height area and scales it so an
// orbit of radius extent just fits.
func fit(width, height int, extent float64) projection {
	p := projection{cx: width / 2, cy: height / 2}
	if extent <= 0 || width <= 0 || height <= 0 {
		return p
	}

	rows := float64(height/2) - 1
	cols := float64(width/2) - 1
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	p.scaleY = math.Min(rows/extent, cols/(extent*cellAspect))
	p.scaleX = p.scaleY * cellAspect
	return p
}

func (p projection) cell(x, z float64) (col, row int) {
	return p.cx + int(math.Round(x*p.scaleX)), p.cy + int(math.Round(z*p.scaleY))
}

// circle returns cells on a circle of radius r around the origin, one per
// sample, enough samples that adjacent ones are about a cell apart.
func (p projection) circle(r float64) [][2]int {
	n := int(2 * math.Pi * r * p.scaleX)
	if n < 12 {
		n = 12
	}
	cells := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		col, row := p.cell(c*r, s*r)
		cells = append(cells, [2]int{col, row})
	}
	return cells
}
