package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/softwarecity/internal/logging"
	"github.com/ChicagoDave/softwarecity/pkg/analytics"
	"github.com/ChicagoDave/softwarecity/pkg/palette"
	"github.com/ChicagoDave/softwarecity/pkg/scene"
)

// Environment overrides applied after the file is read.
const (
	EnvLogLevel = "SOFTWARECITY_LOG_LEVEL"
	EnvPort     = "SOFTWARECITY_PORT"
)

type Config struct {
	Layout  LayoutConfig  `yaml:"layout"`
	Streets StreetConfig  `yaml:"streets"`
	Palette PaletteConfig `yaml:"palette"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

type LayoutConfig struct {
	UnitMargin  float64 `yaml:"unit_margin"`
	GrassMargin float64 `yaml:"grass_margin"`
	CityMargin  float64 `yaml:"city_margin"`
	PlaneOffset float64 `yaml:"plane_offset"`
}

type StreetConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaletteConfig holds colors as "#rrggbb" strings.
type PaletteConfig struct {
	Sky           string `yaml:"sky"`
	Ground        string `yaml:"ground"`
	Foundation    string `yaml:"foundation"`
	Building      string `yaml:"building"`
	Street        string `yaml:"street"`
	Light         string `yaml:"light"`
	GradientStart string `yaml:"gradient_start"`
	GradientEnd   string `yaml:"gradient_end"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// Load reads the YAML config at path over the defaults. An empty path
// yields the defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Defaults returns the reference proportions and palette.
func Defaults() Config {
	return Config{
		Layout: LayoutConfig{
			UnitMargin:  analytics.DefaultMargins.Unit,
			GrassMargin: analytics.DefaultMargins.Grass,
			CityMargin:  analytics.DefaultMargins.City,
			PlaneOffset: 0.01,
		},
		Streets: StreetConfig{Width: 3, Height: 1},
		Palette: PaletteConfig{
			Sky:           palette.Sky.Hex(),
			Ground:        palette.Ground.Hex(),
			Foundation:    palette.Foundation.Hex(),
			Building:      palette.Building.Hex(),
			Street:        palette.Street.Hex(),
			Light:         palette.White.Hex(),
			GradientStart: palette.DefaultGradient.Start.Hex(),
			GradientEnd:   palette.DefaultGradient.End.Hex(),
		},
		Log:    LogConfig{Level: "info", Format: logging.FormatText},
		Server: ServerConfig{Port: 8080},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Server.Port = port
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Layout.UnitMargin < 0 || c.Layout.GrassMargin < 0 || c.Layout.CityMargin < 0 {
		errs = append(errs, errors.New("layout margins must be >= 0"))
	}
	if c.Layout.PlaneOffset <= 0 {
		errs = append(errs, errors.New("layout.plane_offset must be > 0"))
	}
	if c.Streets.Width <= 0 || c.Streets.Height <= 0 {
		errs = append(errs, errors.New("street width and height must be > 0"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := c.colors(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SceneOptions converts the config into assembler options. The logger may
// be nil.
func (c Config) SceneOptions(logger *slog.Logger) (scene.Options, error) {
	cols, err := c.colors()
	if err != nil {
		return scene.Options{}, err
	}
	opts := scene.DefaultOptions()
	opts.Margins = analytics.Margins{
		Unit:  c.Layout.UnitMargin,
		Grass: c.Layout.GrassMargin,
		City:  c.Layout.CityMargin,
	}
	opts.PlaneOffset = c.Layout.PlaneOffset
	opts.StreetWidth = c.Streets.Width
	opts.StreetHeight = c.Streets.Height
	opts.Colors = cols.Colors
	opts.Gradient = cols.Gradient
	opts.Logger = logger
	return opts, nil
}

type resolvedColors struct {
	scene.Colors
	Gradient palette.Gradient
}

func (c Config) colors() (resolvedColors, error) {
	var (
		out  resolvedColors
		errs []error
	)
	parse := func(name, hex string, dst *palette.RGB) {
		rgb, err := palette.ParseHex(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("palette.%s: %w", name, err))
			return
		}
		*dst = rgb
	}
	parse("sky", c.Palette.Sky, &out.Sky)
	parse("ground", c.Palette.Ground, &out.Grass)
	parse("foundation", c.Palette.Foundation, &out.Foundation)
	parse("building", c.Palette.Building, &out.Building)
	parse("street", c.Palette.Street, &out.Street)
	parse("light", c.Palette.Light, &out.Light)
	parse("gradient_start", c.Palette.GradientStart, &out.Gradient.Start)
	parse("gradient_end", c.Palette.GradientEnd, &out.Gradient.End)
	return out, errors.Join(errs...)
}
