package config

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"

	"orrery/internal/orbit"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	RendererWindow   = "window"
	RendererTerminal = "terminal"

	envPrefix  = "ORRERY"
	configName = "orrery"
)

type Config struct {
	Renderer  string          `mapstructure:"renderer"`
	Seed      int64           `mapstructure:"seed"`
	Window    WindowConfig    `mapstructure:"window"`
	Camera    CameraConfig    `mapstructure:"camera"`
	Scene     SceneConfig     `mapstructure:"scene"`
	Animation AnimationConfig `mapstructure:"animation"`
	Terminal  TerminalConfig  `mapstructure:"terminal"`
	Bodies    []BodyConfig    `mapstructure:"bodies"`
}

type WindowConfig struct {
	Width      int32  `mapstructure:"width"`
	Height     int32  `mapstructure:"height"`
	Title      string `mapstructure:"title"`
	TargetFPS  int32  `mapstructure:"target_fps"`
	Background string `mapstructure:"background"`
}

type CameraConfig struct {
	Position    [3]float64 `mapstructure:"position"`
	FOV         float64    `mapstructure:"fov"`
	MinDistance float64    `mapstructure:"min_distance"`
	MaxDistance float64    `mapstructure:"max_distance"`
}

type SceneConfig struct {
	Scale      float64 `mapstructure:"scale"`
	StarCount  int     `mapstructure:"star_count"`
	StarSpread float64 `mapstructure:"star_spread"`
	RingedBody string  `mapstructure:"ringed_body"`
	SunSize    float64 `mapstructure:"sun_size"`
	SunColor   string  `mapstructure:"sun_color"`
}

// AnimationConfig selects how a frame maps to ticks. With TimeScaled off,
// every frame is one tick, so speed depends on the refresh rate. With it
// on, a frame is frameTime*ReferenceFPS ticks.
type AnimationConfig struct {
	TimeScaled   bool    `mapstructure:"time_scaled"`
	ReferenceFPS float64 `mapstructure:"reference_fps"`
}

type TerminalConfig struct {
	FPS     int    `mapstructure:"fps"`
	LogFile string `mapstructure:"log_file"`
	Sound   bool   `mapstructure:"sound"`
}

type BodyConfig struct {
	Name     string  `mapstructure:"name"`
	Color    string  `mapstructure:"color"`
	Distance float64 `mapstructure:"distance"`
	Size     float64 `mapstructure:"size"`
	Speed    float64 `mapstructure:"speed"`
}

// SpeedUpdate is a new angular speed for one body, read from a changed
// config file.
type SpeedUpdate struct {
	Body  string
	Speed float64
}

var defaultBodies = []map[string]any{
	{"name": "Mercury", "color": "#aaaaaa", "distance": 6.0, "size": 0.5, "speed": 0.04},
	{"name": "Venus", "color": "#ffcc99", "distance": 8.0, "size": 0.6, "speed": 0.015},
	{"name": "Earth", "color": "#3399ff", "distance": 10.0, "size": 0.7, "speed": 0.01},
	{"name": "Mars", "color": "#ff3300", "distance": 12.0, "size": 0.6, "speed": 0.008},
	{"name": "Jupiter", "color": "#ff9966", "distance": 15.0, "size": 1.5, "speed": 0.004},
	{"name": "Saturn", "color": "#ffcc66", "distance": 18.0, "size": 1.2, "speed": 0.003},
	{"name": "Uranus", "color": "#66ffff", "distance": 21.0, "size": 1.0, "speed": 0.002},
	{"name": "Neptune", "color": "#3366ff", "distance": 24.0, "size": 1.0, "speed": 0.001},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("renderer", RendererWindow)
	v.SetDefault("seed", 0)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Solar System")
	v.SetDefault("window.target_fps", 60)
	v.SetDefault("window.background", "#000000")

	v.SetDefault("camera.position", []float64{0, 30, 70})
	v.SetDefault("camera.fov", 75.0)
	v.SetDefault("camera.min_distance", 10.0)
	v.SetDefault("camera.max_distance", 400.0)

	v.SetDefault("scene.scale", 2.0)
	v.SetDefault("scene.star_count", orbit.DefaultStarCount)
	v.SetDefault("scene.star_spread", orbit.DefaultStarSpread)
	v.SetDefault("scene.ringed_body", orbit.DefaultRingedBody)
	v.SetDefault("scene.sun_size", orbit.DefaultSunSize)
	v.SetDefault("scene.sun_color", "#ffff00")

	v.SetDefault("animation.time_scaled", false)
	v.SetDefault("animation.reference_fps", 60.0)

	v.SetDefault("terminal.fps", 30)
	v.SetDefault("terminal.log_file", "")
	v.SetDefault("terminal.sound", false)

	v.SetDefault("bodies", defaultBodies)
}

// Loader reads the configuration from defaults, an optional file and
// ORRERY_* environment variables, and can watch the file for edits.
type Loader struct {
	v    *viper.Viper
	path string

	mu     sync.Mutex
	speeds map[string]float64
}

// NewLoader creates a loader. An empty path searches ./orrery.* and
// $HOME/.config/orrery/orrery.*; a missing search result is not an error.
func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/orrery")
	}

	return &Loader{v: v, path: path, speeds: make(map[string]float64)}
}

// Viper exposes the underlying instance so command-line flags can be bound.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// ConfigFileUsed returns the file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Println("Config: no config file found, using defaults")
	} else {
		log.Printf("Config: loaded %s", l.v.ConfigFileUsed())
	}

	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	for _, b := range cfg.Bodies {
		l.speeds[b.Name] = b.Speed
	}
	l.mu.Unlock()

	return cfg, nil
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Renderer != RendererWindow && cfg.Renderer != RendererTerminal {
		return nil, fmt.Errorf("decode config: unknown renderer %q", cfg.Renderer)
	}
	return &cfg, nil
}

// Watch re-reads the config file whenever it changes and sends the speeds
// that differ from the last seen values. Sends never block; an update that
// does not fit in the channel is dropped. Watch does nothing when no file
// was loaded.
func (l *Loader) Watch(updates chan<- SpeedUpdate) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := l.decode()
		if err != nil {
			log.Printf("Config: ignoring change to %s: %v", e.Name, err)
			return
		}
		for _, u := range l.changedSpeeds(cfg) {
			select {
			case updates <- u:
			default:
				log.Printf("Config: dropped speed update for %s", u.Body)
			}
		}
	})
	l.v.WatchConfig()
	log.Printf("Config: watching %s", l.v.ConfigFileUsed())
}

func (l *Loader) changedSpeeds(cfg *Config) []SpeedUpdate {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []SpeedUpdate
	for _, b := range cfg.Bodies {
		if prev, ok := l.speeds[b.Name]; ok && prev == b.Speed {
			continue
		}
		l.speeds[b.Name] = b.Speed
		changed = append(changed, SpeedUpdate{Body: b.Name, Speed: b.Speed})
	}
	return changed
}

// BodySpecs converts the body table. Invalid colours fall back to white.
func (c *Config) BodySpecs() []orbit.BodySpec {
	specs := make([]orbit.BodySpec, 0, len(c.Bodies))
	for _, b := range c.Bodies {
		specs = append(specs, orbit.BodySpec{
			Name:         b.Name,
			Color:        colorOrWhite(b.Color, b.Name),
			Distance:     b.Distance,
			Size:         b.Size,
			AngularSpeed: b.Speed,
		})
	}
	return specs
}

// BuildOptions returns the scene options. A zero seed picks a time-based
// source.
func (c *Config) BuildOptions() orbit.BuildOptions {
	opts := orbit.BuildOptions{
		Sun: orbit.CentralBody{
			Size:  c.Scene.SunSize,
			Color: colorOrWhite(c.Scene.SunColor, "sun"),
		},
		StarCount:  c.Scene.StarCount,
		StarSpread: c.Scene.StarSpread,
		RingedBody: c.Scene.RingedBody,
		NoStars:    c.Scene.StarCount == 0,
	}
	if c.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(c.Seed))
	}
	return opts
}

// TickLength converts a frame duration in seconds to ticks.
func (c *Config) TickLength(frameSeconds float64) float64 {
	if !c.Animation.TimeScaled || c.Animation.ReferenceFPS <= 0 {
		return 1
	}
	return frameSeconds * c.Animation.ReferenceFPS
}

func colorOrWhite(s, owner string) uint32 {
	c, err := ParseColor(s)
	if err != nil {
		log.Printf("Config: %s: %v, using white", owner, err)
		return 0xffffff
	}
	return c
}
