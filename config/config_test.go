package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "oxy-view.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	l, err := Load("", zerolog.Nop())
	require.NoError(t, err)

	cfg := l.Config()
	assert.Equal(t, *DefaultConfig(), cfg)
	assert.Equal(t, [3]float32{15, -15, 0}, cfg.Camera.RotationVec())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
log:
  level: DEBUG
window:
  width: 640
  height: 480
camera:
  rotation: [10, 20, 30]
  fov: 400
animation:
  flight_duration: 6
`)
	t.Setenv("OXY_CAMERA_DISTANCE", "8")

	l, err := Load(path, zerolog.Nop())
	require.NoError(t, err)
	cfg := l.Config()

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, [3]float32{10, 20, 30}, cfg.Camera.RotationVec())
	assert.Equal(t, float32(150), cfg.Camera.Fov)
	assert.Equal(t, float32(8), cfg.Camera.Distance)
	assert.Equal(t, float32(6), cfg.Animation.FlightDuration)
	assert.Equal(t, float32(4), cfg.Animation.BezierDuration)
}

func TestLoadNormalizesBadValues(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
window:
  width: 0
camera:
  zoom_factor: 0.5
  min_distance: 10
  max_distance: 1
animation:
  bezier_duration: -1
tessellation:
  resolution: 1
  workers: 0
`)
	l, err := Load(path, zerolog.Nop())
	require.NoError(t, err)
	cfg := l.Config()

	assert.Equal(t, 1, cfg.Window.Width)
	assert.Equal(t, float32(1.1), cfg.Camera.ZoomFactor)
	assert.Equal(t, float32(250), cfg.Camera.MaxDistance)
	assert.Equal(t, float32(4), cfg.Animation.BezierDuration)
	assert.Equal(t, 2, cfg.Tessellation.Resolution)
	assert.Equal(t, 1, cfg.Tessellation.Workers)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop())
	assert.Error(t, err)
}

func TestWatchReloadsDurations(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "animation:\n  flight_duration: 3\n")

	l, err := Load(path, zerolog.Nop())
	require.NoError(t, err)

	changes := make(chan Config, 8)
	l.Watch(func(c Config) { changes <- c })

	require.NoError(t, os.WriteFile(path, []byte("animation:\n  flight_duration: 9\n"), 0o644))

	require.Eventually(t, func() bool {
		select {
		case c := <-changes:
			return c.Animation.FlightDuration == 9
		default:
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, float32(9), l.Config().Animation.FlightDuration)
}

func TestExplicitKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "camera:\n  fov: 45\n")
	t.Setenv("OXY_CAMERA_DISTANCE", "7")

	l, err := Load(path, zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, l.Explicit("camera.fov"))
	assert.True(t, l.Explicit("camera.distance"))
	assert.False(t, l.Explicit("camera.rotation"))
	assert.False(t, l.Explicit("window.width"))
}
