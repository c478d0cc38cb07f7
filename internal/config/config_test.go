package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolatedLoader(t *testing.T, path string) *Loader {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewLoader(path)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := isolatedLoader(t, "").Load()
	require.NoError(t, err)

	assert.Equal(t, RendererWindow, cfg.Renderer)
	assert.Equal(t, int32(1280), cfg.Window.Width)
	assert.Equal(t, [3]float64{0, 30, 70}, cfg.Camera.Position)
	assert.Equal(t, 75.0, cfg.Camera.FOV)
	assert.Equal(t, 2.0, cfg.Scene.Scale)
	assert.Equal(t, 1000, cfg.Scene.StarCount)
	assert.Equal(t, "Saturn", cfg.Scene.RingedBody)
	assert.False(t, cfg.Animation.TimeScaled)

	specs := cfg.BodySpecs()
	require.Len(t, specs, 8)
	assert.Equal(t, "Mercury", specs[0].Name)
	assert.Equal(t, uint32(0xaaaaaa), specs[0].Color)
	assert.Equal(t, 6.0, specs[0].Distance)
	assert.Equal(t, 0.04, specs[0].AngularSpeed)
	assert.Equal(t, "Saturn", specs[5].Name)
	assert.Equal(t, 1.2, specs[5].Size)
	assert.Equal(t, "Neptune", specs[7].Name)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeFile(t, "orrery.toml", `
renderer = "terminal"
seed = 7

[window]
width = 800

[animation]
time_scaled = true

[[bodies]]
name = "Earth"
color = "SkyBlue"
distance = 10.0
size = 0.7
speed = 0.02
`)

	cfg, err := isolatedLoader(t, path).Load()
	require.NoError(t, err)

	assert.Equal(t, RendererTerminal, cfg.Renderer)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, int32(800), cfg.Window.Width)
	assert.Equal(t, int32(720), cfg.Window.Height)
	assert.True(t, cfg.Animation.TimeScaled)

	specs := cfg.BodySpecs()
	require.Len(t, specs, 1)
	assert.Equal(t, uint32(0x66bfff), specs[0].Color)
	assert.Equal(t, 0.02, specs[0].AngularSpeed)

	opts := cfg.BuildOptions()
	assert.NotNil(t, opts.Rand)
	assert.Equal(t, 1000, opts.StarCount)
}

func TestLoadEnvOverride(t *testing.T) {
	l := isolatedLoader(t, "")
	t.Setenv("ORRERY_WINDOW_TARGET_FPS", "144")
	t.Setenv("ORRERY_SCENE_STAR_COUNT", "0")

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, int32(144), cfg.Window.TargetFPS)
	assert.True(t, cfg.BuildOptions().NoStars)
}

func TestLoadErrors(t *testing.T) {
	_, err := isolatedLoader(t, filepath.Join(t.TempDir(), "missing.toml")).Load()
	assert.Error(t, err, "an explicit path that does not exist is an error")

	bad := writeFile(t, "bad.toml", "renderer = [")
	_, err = isolatedLoader(t, bad).Load()
	assert.ErrorContains(t, err, "read config")

	unknown := writeFile(t, "unknown.toml", `renderer = "opengl"`)
	_, err = isolatedLoader(t, unknown).Load()
	assert.ErrorContains(t, err, "unknown renderer")
}

func TestEmptyBodyTable(t *testing.T) {
	path := writeFile(t, "empty.yaml", "bodies: []\n")
	cfg, err := isolatedLoader(t, path).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.BodySpecs())
}

func TestChangedSpeeds(t *testing.T) {
	l := isolatedLoader(t, "")
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Empty(t, l.changedSpeeds(cfg), "unchanged table produces no updates")

	cfg.Bodies[2].Speed = 0.05
	cfg.Bodies = append(cfg.Bodies, BodyConfig{Name: "Pluto", Speed: 0.0005})

	assert.Equal(t, []SpeedUpdate{
		{Body: "Earth", Speed: 0.05},
		{Body: "Pluto", Speed: 0.0005},
	}, l.changedSpeeds(cfg))

	assert.Empty(t, l.changedSpeeds(cfg))
}

func TestWatchWithoutFileIsNoop(t *testing.T) {
	l := isolatedLoader(t, "")
	_, err := l.Load()
	require.NoError(t, err)

	updates := make(chan SpeedUpdate, 1)
	assert.NotPanics(t, func() { l.Watch(updates) })
	assert.Empty(t, l.ConfigFileUsed())
}

func TestTickLength(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 1.0, cfg.TickLength(0.5))

	cfg.Animation = AnimationConfig{TimeScaled: true, ReferenceFPS: 60}
	assert.InDelta(t, 1.0, cfg.TickLength(1.0/60), 1e-12)
	assert.InDelta(t, 2.0, cfg.TickLength(1.0/30), 1e-12)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "#ffcc66", want: 0xffcc66},
		{in: "0x3366ff", want: 0x3366ff},
		{in: " #AAAAAA ", want: 0xaaaaaa},
		{in: "Gold", want: 0xffcb00},
		{in: "ffcc66", wantErr: true},
		{in: "#fff", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestBodySpecsInvalidColor(t *testing.T) {
	cfg := &Config{Bodies: []BodyConfig{{Name: "Mystery", Color: "plaid", Distance: 3}}}
	specs := cfg.BodySpecs()
	require.Len(t, specs, 1)
	assert.Equal(t, uint32(0xffffff), specs[0].Color)
}
