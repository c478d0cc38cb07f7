package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"orrery/internal/camera"
	"orrery/internal/components"
	"orrery/internal/config"
	"orrery/internal/orbit"
	"orrery/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrNoScene = errors.New("controller has no scene")

// Game runs the orrery in a raylib window.
type Game struct {
	Config     *config.Config
	Controller *orbit.Controller
	World      *world.World
	Camera     *camera.OrbitCamera
	Panel      *ControlsPanel
	DebugMode  bool

	updates <-chan config.SpeedUpdate

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New builds the world for an initialised controller. Speed updates read
// from updates are applied at the start of each frame; updates may be nil.
func New(cfg *config.Config, ctrl *orbit.Controller, updates <-chan config.SpeedUpdate) (*Game, error) {
	scene := ctrl.Scene()
	if scene == nil {
		return nil, ErrNoScene
	}

	w := world.New()
	w.Initialize(scene, float32(cfg.Scene.Scale))
	if bg, err := config.ParseColor(cfg.Window.Background); err == nil {
		w.Renderer.Background = components.ColorFromHex(bg, 1)
	} else {
		log.Printf("Game: background: %v", err)
	}

	pos := cfg.Camera.Position
	cam := camera.NewFromPosition(
		rl.Vector3{X: float32(pos[0]), Y: float32(pos[1]), Z: float32(pos[2])},
		rl.Vector3Zero(),
		float32(cfg.Camera.FOV),
	)
	if cfg.Camera.MinDistance > 0 {
		cam.MinDistance = float32(cfg.Camera.MinDistance)
	}
	if cfg.Camera.MaxDistance > 0 {
		cam.MaxDistance = float32(cfg.Camera.MaxDistance)
	}

	g := &Game{
		Config:     cfg,
		Controller: ctrl,
		World:      w,
		Camera:     cam,
		Panel:      NewControlsPanel(orbit.DefaultSpeedRange, scene.System.Bodies()),
		updates:    updates,
	}
	g.Panel.Layout(cfg.Window.Width, cfg.Window.Height)
	return g, nil
}

func (g *Game) Run() error {
	win := g.Config.Window
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()

	if !rl.IsWindowReady() {
		return fmt.Errorf("open window %dx%d", win.Width, win.Height)
	}

	rl.SetTargetFPS(win.TargetFPS)
	initRayguiStyle()
	g.relayout()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}

	g.Controller.Shutdown()
	log.Printf("Game: stopped after %d ticks", g.Controller.Ticks())
	return nil
}

func (g *Game) relayout() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	g.Panel.Layout(w, h)
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	g.applyUpdates()

	if rl.IsWindowResized() {
		g.relayout()
		log.Printf("Game: window resized to %dx%d", rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	g.Camera.Update(deltaTime, !g.Panel.Contains(rl.GetMousePosition()))

	g.Controller.Tick(g.Config.TickLength(float64(deltaTime)))
	g.World.Update(deltaTime)

	// Toggle debug mode
	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}

	ctrlDown := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrlDown && rl.IsKeyPressed(rl.KeyZ) {
		g.Panel.Undo(g.Controller)
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// applyUpdates drains pending config speed changes without blocking.
func (g *Game) applyUpdates() int {
	applied := 0
	for {
		select {
		case u, ok := <-g.updates:
			if !ok {
				g.updates = nil
				return applied
			}
			speed := g.Panel.Range.Clamp(u.Speed)
			if err := g.Controller.SetAngularSpeed(u.Body, speed); err != nil {
				log.Printf("Game: config update: %v", err)
				continue
			}
			log.Printf("Game: %s speed set to %.3f from config", u.Body, speed)
			applied++
		default:
			return applied
		}
	}
}

func (g *Game) Draw() {
	cam := g.Camera.GetRaylibCamera()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())

	rl.BeginDrawing()
	g.World.Renderer.Clear()

	drawStart := time.Now()
	rl.BeginMode3D(cam)
	g.World.Draw(cam, aspect)
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.Panel.Draw(g.Controller)
	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawText("Drag to orbit, wheel to zoom", 10, 10, 20, rl.DarkGray)
	rl.DrawText("F1 to toggle debug view", 10, 35, 20, rl.DarkGray)

	if !g.DebugMode {
		return
	}

	rl.DrawFPS(10, 60)
	y := int32(85)
	for _, line := range g.debugLines() {
		rl.DrawText(line, 10, y, 16, rl.Green)
		y += 20
	}
}

func (g *Game) debugLines() []string {
	lines := []string{
		fmt.Sprintf("Ticks:   %d", g.Controller.Ticks()),
		fmt.Sprintf("Update:  %.2f ms", g.updateMs),
		fmt.Sprintf("Draw:    %.2f ms", g.drawMs),
		fmt.Sprintf("Spheres: %d drawn, %d culled", g.World.Renderer.Drawn, g.World.Renderer.Culled),
	}
	for _, b := range g.Controller.Bodies() {
		lines = append(lines, fmt.Sprintf("%-8s %.3f rad  %.3f/tick", b.Name, b.DisplayAngle(), b.AngularSpeed))
	}
	return lines
}
