package game

import (
	"fmt"
	"log"

	"orrery/internal/orbit"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth   = 330
	panelMargin  = 10
	panelPadding = 12
	panelRadius  = 8
	titleHeight  = 24
	rowHeight    = 16
	rowGap       = 10
	labelWidth   = 110
	valueWidth   = 48
	hintHeight   = 18
)

// ControlsPanel is the speed slider overlay. One slider per body, in
// system order.
type ControlsPanel struct {
	Range  orbit.SpeedRange
	Bounds rl.Rectangle

	names    []string
	sliders  []rl.Rectangle
	dragging string
	history  undoStack
}

func NewControlsPanel(r orbit.SpeedRange, bodies []*orbit.CelestialBody) *ControlsPanel {
	names := make([]string, len(bodies))
	for i, b := range bodies {
		names[i] = b.Name
	}
	return &ControlsPanel{Range: r, names: names}
}

// Layout anchors the panel to the top-right corner of a screen of the
// given size.
func (p *ControlsPanel) Layout(screenW, screenH int32) {
	n := len(p.names)
	height := float32(2*panelPadding + titleHeight + hintHeight + n*(rowHeight+rowGap))
	if limit := float32(screenH) - 2*panelMargin; height > limit && limit > 0 {
		height = limit
	}

	x := float32(screenW) - panelWidth - panelMargin
	if x < panelMargin {
		x = panelMargin
	}
	p.Bounds = rl.Rectangle{X: x, Y: panelMargin, Width: panelWidth, Height: height}

	p.sliders = p.sliders[:0]
	top := p.Bounds.Y + panelPadding + titleHeight
	for i := 0; i < n; i++ {
		p.sliders = append(p.sliders, rl.Rectangle{
			X:      x + panelPadding + labelWidth,
			Y:      top + float32(i*(rowHeight+rowGap)),
			Width:  panelWidth - 2*panelPadding - labelWidth - valueWidth,
			Height: rowHeight,
		})
	}
}

// Contains reports whether pt is over the panel.
func (p *ControlsPanel) Contains(pt rl.Vector2) bool {
	b := p.Bounds
	return pt.X >= b.X && pt.X <= b.X+b.Width && pt.Y >= b.Y && pt.Y <= b.Y+b.Height
}

// Draw draws the sliders and writes moved values through ctrl.
func (p *ControlsPanel) Draw(ctrl *orbit.Controller) {
	scene := ctrl.Scene()
	if scene == nil {
		return
	}

	drawPanel(p.Bounds, panelRadius)
	rl.DrawText("Orbit speed (rad/tick)", int32(p.Bounds.X)+panelPadding, int32(p.Bounds.Y)+panelPadding, 16, colorTextPrimary)

	for i, name := range p.names {
		bounds := p.sliders[i]
		if bounds.Y+bounds.Height > p.Bounds.Y+p.Bounds.Height {
			break
		}
		body, ok := scene.System.Body(name)
		if !ok {
			continue
		}

		current := float32(body.AngularSpeed)
		value := gui.Slider(bounds, name+" Speed", fmt.Sprintf("%.3f", body.AngularSpeed),
			current, float32(p.Range.Min), float32(p.Range.Max))
		if value != current {
			p.apply(ctrl, name, float64(value))
		}
	}

	hintY := int32(p.Bounds.Y+p.Bounds.Height) - panelPadding - 12
	rl.DrawText("Ctrl+Z undo   F1 debug   R reset view", int32(p.Bounds.X)+panelPadding, hintY, 12, colorTextMuted)

	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		p.dragging = ""
	}
}

// apply snaps raw onto the slider grid and sets it. The value before a
// drag starts is recorded once for undo.
func (p *ControlsPanel) apply(ctrl *orbit.Controller, name string, raw float64) bool {
	body, ok := ctrl.Scene().System.Body(name)
	if !ok {
		return false
	}
	v := p.Range.Clamp(raw)
	if v == body.AngularSpeed {
		return false
	}

	previous := body.AngularSpeed
	if err := ctrl.SetAngularSpeed(name, v); err != nil {
		log.Printf("UI: %v", err)
		return false
	}
	if p.dragging != name {
		p.history.push(speedEdit{Body: name, Speed: previous})
		p.dragging = name
	}
	return true
}

// Undo restores the speed a body had before its last edit.
func (p *ControlsPanel) Undo(ctrl *orbit.Controller) bool {
	e, ok := p.history.pop()
	if !ok {
		return false
	}
	if err := ctrl.SetAngularSpeed(e.Body, e.Speed); err != nil {
		log.Printf("UI: undo: %v", err)
		return false
	}
	p.dragging = ""
	log.Printf("UI: %s speed restored to %.3f", e.Body, e.Speed)
	return true
}
