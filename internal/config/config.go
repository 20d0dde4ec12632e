package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	ModelsDir  string `json:"models_dir"`  // model descriptions (*.json)
	BlocksJSON string `json:"blocks_json"` // block registry; empty or missing renders the demo terrain
	OutputDir  string `json:"output_dir"`

	// Render settings
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Frames      int     `json:"frames"`     // > 1 renders an animated walk cycle per model
	FPS         float64 `json:"fps"`        // animation time step between frames
	FillRatio   float64 `json:"fill_ratio"` // crop and center models; 0 keeps the camera framing
	Background  string  `json:"background"` // "#rrggbb"; empty is transparent
	Terrain     bool    `json:"terrain"`    // also render the terrain scene
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir   string
	OutputDir string
	Width     int
	Height    int
	Workers   int
	Frames    int
	Terrain   bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.DataDir != "" {
		c.BaseDir = flags.DataDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Terrain {
		c.Terrain = true
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	c.ModelsDir = resolvePath(c.BaseDir, c.ModelsDir, "models")
	c.BlocksJSON = resolvePath(c.BaseDir, c.BlocksJSON, "blocks.json")
	c.OutputDir = resolvePath(c.BaseDir, c.OutputDir, "renders")

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 512
	}
	if c.Height <= 0 {
		c.Height = c.Width
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.FPS <= 0 {
		c.FPS = 12
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Supersample > 8 {
		return fmt.Errorf("config: supersample %d exceeds 8", c.Supersample)
	}
	if c.FillRatio < 0 || c.FillRatio > 1 {
		return fmt.Errorf("config: fill_ratio %.2f outside [0, 1]", c.FillRatio)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Background. An empty value is transparent.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(c.Background), "#")
	if s == "" {
		return color.NRGBA{}, nil
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("config: background %q: want #rrggbb", c.Background)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("config: background %q: %w", c.Background, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func resolvePath(base, p, def string) string {
	switch {
	case p == "":
		return filepath.Join(base, def)
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(base, p)
	}
}
