package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rocketsim/internal/solver"
)

const (
	EnvConfig = "ROCKETSIM_CONFIG"
	EnvSolver = "ROCKETSIM_SOLVER"

	DefaultChartWidth   = 80
	DefaultChartHeight  = 15
	DefaultImageWidth   = 800
	DefaultImageHeight  = 480
	DefaultWindowWidth  = 1100
	DefaultWindowHeight = 720
)

type Config struct {
	Solver  string         `yaml:"solver"`
	Options solver.Options `yaml:"options"`
	Chart   ChartConfig    `yaml:"chart"`
	Window  WindowConfig   `yaml:"window"`
	Launch  LaunchConfig   `yaml:"launch"`
}

type ChartConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	ImageWidth  int `yaml:"image_width"`
	ImageHeight int `yaml:"image_height"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LaunchConfig holds the five inputs as text, exactly as a user would type
// them. They are parsed only when a simulation runs.
type LaunchConfig struct {
	Altitude  string `yaml:"altitude"`
	Velocity  string `yaml:"velocity"`
	Mass      string `yaml:"mass"`
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
}

func (l LaunchConfig) Fields() [5]string {
	return [5]string{l.Altitude, l.Velocity, l.Mass, l.StartTime, l.EndTime}
}

func DefaultConfig() *Config {
	return &Config{
		Solver:  solver.Default,
		Options: solver.DefaultOptions(),
		Chart: ChartConfig{
			Width:       DefaultChartWidth,
			Height:      DefaultChartHeight,
			ImageWidth:  DefaultImageWidth,
			ImageHeight: DefaultImageHeight,
		},
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Launch: Presets["hop"].Launch,
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads .env style files into the process environment. Missing
// files are skipped; variables already set are kept.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Resolve picks the config file (path, else $ROCKETSIM_CONFIG, else none)
// and applies $ROCKETSIM_SOLVER on top.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if name := os.Getenv(EnvSolver); name != "" {
		cfg.Solver = name
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvSolver, err)
		}
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := solver.New(c.Solver, c.Options); err != nil {
		return err
	}
	if c.Chart.Width < 0 || c.Chart.Height < 0 {
		return fmt.Errorf("chart size must not be negative, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if c.Chart.ImageWidth <= 0 || c.Chart.ImageHeight <= 0 {
		return fmt.Errorf("chart image size must be positive, got %dx%d", c.Chart.ImageWidth, c.Chart.ImageHeight)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

func (c *Config) NewSolver() (solver.Solver, error) {
	return solver.New(c.Solver, c.Options)
}
