// Package config loads viewer settings from defaults, an optional YAML file and OXY_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. OXY_CAMERA_FOV.
const EnvPrefix = "OXY"

// Config holds all application configuration
type Config struct {
	Log          LogConfig          `mapstructure:"log"`
	Window       WindowConfig       `mapstructure:"window"`
	Renderer     RendererConfig     `mapstructure:"renderer"`
	Camera       CameraConfig       `mapstructure:"camera"`
	Animation    AnimationConfig    `mapstructure:"animation"`
	Tessellation TessellationConfig `mapstructure:"tessellation"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// WindowConfig configures the window
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// RendererConfig configures the GPU renderer
type RendererConfig struct {
	VSync    bool `mapstructure:"vsync"`
	MSAA     bool `mapstructure:"msaa"`
	Software bool `mapstructure:"software"`
	Profile  bool `mapstructure:"profile"`
}

// CameraConfig configures the initial camera
type CameraConfig struct {
	Rotation    []float32 `mapstructure:"rotation"` // Euler degrees about X, Y, Z
	Distance    float32   `mapstructure:"distance"`
	Fov         float32   `mapstructure:"fov"`
	ZoomFactor  float32   `mapstructure:"zoom_factor"`
	MinDistance float32   `mapstructure:"min_distance"`
	MaxDistance float32   `mapstructure:"max_distance"`
}

// AnimationConfig configures playback; reloaded while running.
type AnimationConfig struct {
	FlightDuration float32 `mapstructure:"flight_duration"` // seconds per path loop
	BezierDuration float32 `mapstructure:"bezier_duration"` // seconds per ping-pong sweep
}

// TessellationConfig configures the parametric surface demo
type TessellationConfig struct {
	Resolution int `mapstructure:"resolution"`
	Workers    int `mapstructure:"workers"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Window: WindowConfig{
			Title:  "oxy-view",
			Width:  800,
			Height: 800,
		},
		Renderer: RendererConfig{
			VSync: true,
			MSAA:  true,
		},
		Camera: CameraConfig{
			Rotation:    []float32{15, -15, 0},
			Distance:    5,
			Fov:         30,
			ZoomFactor:  1.1,
			MinDistance: 0.05,
			MaxDistance: 250,
		},
		Animation: AnimationConfig{
			FlightDuration: 3,
			BezierDuration: 4,
		},
		Tessellation: TessellationConfig{
			Resolution: 64,
			Workers:    4,
		},
	}
}

// RotationVec returns the camera rotation as exactly three angles.
func (c CameraConfig) RotationVec() [3]float32 {
	var r [3]float32
	copy(r[:], c.Rotation)
	return r
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	d := DefaultConfig()
	c.Log.Level = common.Coalesce(strings.ToLower(c.Log.Level), d.Log.Level)
	c.Log.Format = common.Coalesce(strings.ToLower(c.Log.Format), d.Log.Format)
	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Window.Width = max(c.Window.Width, 1)
	c.Window.Height = max(c.Window.Height, 1)
	c.Camera.Distance = positive(c.Camera.Distance, d.Camera.Distance)
	c.Camera.Fov = common.Clamp(positive(c.Camera.Fov, d.Camera.Fov), 5, 150)
	if c.Camera.ZoomFactor <= 1 {
		c.Camera.ZoomFactor = d.Camera.ZoomFactor
	}
	c.Camera.MinDistance = positive(c.Camera.MinDistance, d.Camera.MinDistance)
	if c.Camera.MaxDistance < c.Camera.MinDistance {
		c.Camera.MaxDistance = max(d.Camera.MaxDistance, c.Camera.MinDistance)
	}
	c.Animation.FlightDuration = positive(c.Animation.FlightDuration, d.Animation.FlightDuration)
	c.Animation.BezierDuration = positive(c.Animation.BezierDuration, d.Animation.BezierDuration)
	c.Tessellation.Resolution = common.Clamp(c.Tessellation.Resolution, 2, 1024)
	c.Tessellation.Workers = max(c.Tessellation.Workers, 1)
}

func positive(v, fallback float32) float32 {
	if v > 0 {
		return v
	}
	return fallback
}

// Loader owns a viper instance and the most recently decoded Config.
type Loader struct {
	v      *viper.Viper
	logger zerolog.Logger

	mu  sync.Mutex
	cfg *Config
}

// Load reads configuration. An empty path searches ./oxy-view.yaml and tolerates its absence;
// an explicit path must exist.
//
// Parameters:
//   - path: YAML file path or ""
//   - logger: logger for reload events
//
// Returns:
//   - *Loader: the loader holding the decoded Config
//   - error: a read or decode error
func Load(path string, logger zerolog.Logger) (*Loader, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("oxy-view")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	l := &Loader{v: v, logger: logger.With().Str("component", "config").Logger()}
	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.cfg = cfg
	if file := v.ConfigFileUsed(); file != "" {
		l.logger.Info().Str("file", file).Msg("config loaded")
	}
	return l, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("renderer.vsync", d.Renderer.VSync)
	v.SetDefault("renderer.msaa", d.Renderer.MSAA)
	v.SetDefault("renderer.software", d.Renderer.Software)
	v.SetDefault("renderer.profile", d.Renderer.Profile)
	v.SetDefault("camera.rotation", d.Camera.Rotation)
	v.SetDefault("camera.distance", d.Camera.Distance)
	v.SetDefault("camera.fov", d.Camera.Fov)
	v.SetDefault("camera.zoom_factor", d.Camera.ZoomFactor)
	v.SetDefault("camera.min_distance", d.Camera.MinDistance)
	v.SetDefault("camera.max_distance", d.Camera.MaxDistance)
	v.SetDefault("animation.flight_duration", d.Animation.FlightDuration)
	v.SetDefault("animation.bezier_duration", d.Animation.BezierDuration)
	v.SetDefault("tessellation.resolution", d.Tessellation.Resolution)
	v.SetDefault("tessellation.workers", d.Tessellation.Workers)
}

func (l *Loader) decode() (*Config, error) {
	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// SetLogger replaces the logger used for reload events. Call it before Watch.
func (l *Loader) SetLogger(logger zerolog.Logger) {
	l.logger = logger.With().Str("component", "config").Logger()
}

// Explicit reports whether key was given in the config file or the environment rather than defaulted.
//
// Parameters:
//   - key: a dotted key such as "camera.fov"
//
// Returns:
//   - bool: true when the value did not come from the defaults
func (l *Loader) Explicit(key string) bool {
	if l.v.InConfig(key) {
		return true
	}
	_, ok := os.LookupEnv(EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	return ok
}

// Config returns a copy of the current configuration.
func (l *Loader) Config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.cfg
}

// Watch reloads the file on change and calls onChange with the new Config.
// Decode failures keep the previous Config. Does nothing when no file was read.
//
// Parameters:
//   - onChange: called from the watcher goroutine
func (l *Loader) Watch(onChange func(Config)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			l.logger.Warn().Err(err).Str("file", e.Name).Msg("config reload rejected")
			return
		}
		l.mu.Lock()
		l.cfg = cfg
		l.mu.Unlock()
		l.logger.Info().Str("file", e.Name).Msg("config reloaded")
		if onChange != nil {
			onChange(*cfg)
		}
	})
	l.v.WatchConfig()
}
