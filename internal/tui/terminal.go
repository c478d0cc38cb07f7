package tui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"
	"unicode"
	"unicode/utf8"

	"orrery/internal/config"
	"orrery/internal/orbit"

	"github.com/gdamore/tcell/v2"
)

const (
	starStride  = 10 // draw one star in this many
	defaultFPS  = 30
	eventBuffer = 100
)

var ErrNoScene = errors.New("controller has no scene")

var (
	styleOrbit  = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleStar   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
)

// Terminal draws the system top-down on a tcell screen.
type Terminal struct {
	screen  tcell.Screen
	cfg     *config.Config
	ctrl    *orbit.Controller
	speeds  orbit.SpeedRange
	updates <-chan config.SpeedUpdate
	chime   Chime

	width, height int
	proj          projection
	selected      int
	revolutions   []int
}

// New takes an initialised screen and controller. Speed updates read from
// updates are applied once per frame; updates may be nil.
func New(screen tcell.Screen, cfg *config.Config, ctrl *orbit.Controller, updates <-chan config.SpeedUpdate) (*Terminal, error) {
	scene := ctrl.Scene()
	if scene == nil {
		return nil, ErrNoScene
	}

	t := &Terminal{
		screen:      screen,
		cfg:         cfg,
		ctrl:        ctrl,
		speeds:      orbit.DefaultSpeedRange,
		updates:     updates,
		revolutions: make([]int, scene.System.Len()),
	}
	for i, b := range scene.System.Bodies() {
		t.revolutions[i] = revolution(b)
	}
	t.handleResize()
	return t, nil
}

// SetChime enables a tone each time a body completes an orbit.
func (t *Terminal) SetChime(c Chime) {
	t.chime = c
}

// Run owns the screen until the user quits. The log is redirected to
// terminal.log_file, or discarded, while the screen is active.
func (t *Terminal) Run() error {
	restore, err := t.redirectLog()
	if err != nil {
		return err
	}
	defer restore()

	if t.cfg.Terminal.Sound && t.chime == nil {
		if c, err := newSpeakerChime(); err != nil {
			log.Printf("Terminal: sound disabled: %v", err)
		} else {
			t.chime = c
		}
	}

	defer t.cleanup()

	fps := t.cfg.Terminal.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	frame := time.Second / time.Duration(fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, eventBuffer)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	t.draw()
	for {
		select {
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				return nil
			}
			t.draw()

		case now := <-ticker.C:
			t.step(now.Sub(last).Seconds())
			last = now
			t.draw()
		}
	}
}

func (t *Terminal) cleanup() {
	log.Printf("Terminal: stopped after %d ticks", t.ctrl.Ticks())
	t.ctrl.Shutdown()
	if t.chime != nil {
		t.chime.Close()
	}
	t.screen.Fini()
}

func (t *Terminal) redirectLog() (func(), error) {
	prev := log.Writer()
	restore := func() { log.SetOutput(prev) }

	path := t.cfg.Terminal.LogFile
	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		restore()
		f.Close()
	}, nil
}

// step runs one frame of the animation.
func (t *Terminal) step(frameSeconds float64) {
	t.applyUpdates()
	t.ctrl.Tick(t.cfg.TickLength(frameSeconds))

	for i, b := range t.ctrl.Bodies() {
		rev := revolution(b)
		if rev > t.revolutions[i] && t.chime != nil {
			t.chime.Play(i)
		}
		t.revolutions[i] = rev
	}
}

func (t *Terminal) applyUpdates() int {
	applied := 0
	for {
		select {
		case u, ok := <-t.updates:
			if !ok {
				t.updates = nil
				return applied
			}
			if err := t.ctrl.SetAngularSpeed(u.Body, t.speeds.Clamp(u.Speed)); err != nil {
				log.Printf("Terminal: config update: %v", err)
				continue
			}
			applied++
		default:
			return applied
		}
	}
}

func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		t.screen.Sync()
		t.handleResize()
	}
	return true
}

// handleKey applies a key press and reports whether to keep running.
func (t *Terminal) handleKey(key tcell.Key, r rune) bool {
	bodies := t.ctrl.Bodies()

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp, tcell.KeyBacktab:
		t.selectBody(-1, len(bodies))
	case tcell.KeyDown, tcell.KeyTab:
		t.selectBody(1, len(bodies))
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case '+', '=':
			t.nudge(1)
		case '-', '_':
			t.nudge(-1)
		case '0':
			t.setSelected(t.speeds.Min)
		}
	}
	return true
}

func (t *Terminal) selectBody(delta, n int) {
	if n == 0 {
		return
	}
	t.selected = ((t.selected+delta)%n + n) % n
}

func (t *Terminal) selectedBody() *orbit.CelestialBody {
	bodies := t.ctrl.Bodies()
	if t.selected < 0 || t.selected >= len(bodies) {
		return nil
	}
	return bodies[t.selected]
}

func (t *Terminal) nudge(steps int) {
	if b := t.selectedBody(); b != nil {
		t.setSelected(t.speeds.Nudge(b.AngularSpeed, steps))
	}
}

func (t *Terminal) setSelected(speed float64) {
	b := t.selectedBody()
	if b == nil {
		return
	}
	if err := t.ctrl.SetAngularSpeed(b.Name, speed); err != nil {
		log.Printf("Terminal: %v", err)
	}
}

func (t *Terminal) handleResize() {
	t.width, t.height = t.screen.Size()
	extent := 0.0
	if scene := t.ctrl.Scene(); scene != nil {
		extent = scene.System.MaxDistance()
	}
	// Last row is the status line.
	t.proj = fit(t.width, t.height-1, extent)
}

func (t *Terminal) draw() {
	t.screen.Clear()

	scene := t.ctrl.Scene()
	if scene == nil {
		t.screen.Show()
		return
	}

	t.drawStars(scene)
	for _, ind := range scene.Indicators {
		for i, c := range t.proj.circle(ind.Radius()) {
			if i%2 == 0 {
				t.put(c[0], c[1], '·', styleOrbit)
			}
		}
	}

	col, row := t.proj.cell(0, 0)
	t.put(col, row, '@', tcell.StyleDefault.Foreground(hexColor(scene.Central.Color)).Bold(true))

	for i, b := range scene.System.Bodies() {
		pos := b.Position()
		col, row := t.proj.cell(pos.X, pos.Z)
		style := tcell.StyleDefault.Foreground(hexColor(b.Color))
		if i == t.selected {
			style = style.Reverse(true)
		}
		t.put(col, row, initial(b.Name), style)
	}

	t.drawStatus()
	t.screen.Show()
}

// drawStars spreads a sample of the star field over the whole screen.
func (t *Terminal) drawStars(scene *orbit.Scene) {
	spread := orbit.DefaultStarSpread
	if t.cfg.Scene.StarSpread > 0 {
		spread = t.cfg.Scene.StarSpread
	}
	for i := 0; i < len(scene.Stars); i += starStride {
		s := scene.Stars[i]
		col := int((s.X/spread + 0.5) * float64(t.width))
		row := int((s.Z/spread + 0.5) * float64(t.height-1))
		t.put(col, row, '.', styleStar)
	}
}

func (t *Terminal) drawStatus() {
	row := t.height - 1
	for col := 0; col < t.width; col++ {
		t.put(col, row, ' ', styleStatus)
	}
	t.putString(0, row, t.statusLine(), styleStatus)
}

func (t *Terminal) statusLine() string {
	b := t.selectedBody()
	if b == nil {
		return " no bodies   q quit"
	}
	return fmt.Sprintf(" %s  speed %.3f  angle %.2f   ↑↓ select  +/- speed  0 freeze  q quit",
		b.Name, b.AngularSpeed, b.DisplayAngle())
}

func (t *Terminal) put(col, row int, r rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= t.width || row >= t.height {
		return
	}
	t.screen.SetContent(col, row, r, nil, style)
}

func (t *Terminal) putString(col, row int, s string, style tcell.Style) {
	for _, r := range s {
		t.put(col, row, r, style)
		col++
	}
}

func revolution(b *orbit.CelestialBody) int {
	return int(math.Floor(b.Angle / (2 * math.Pi)))
}

func initial(name string) rune {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return '?'
	}
	return unicode.ToUpper(r)
}

func hexColor(c uint32) tcell.Color {
	return tcell.NewHexColor(int32(c))
}
