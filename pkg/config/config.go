// Package config loads weldgroove settings from a TOML file.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Built-in settings used when a key is absent from the file.
const (
	DefaultWidth      = 2.0  // mm
	DefaultResolution = 0.25 // mm
	DefaultScale      = 20.0 // px per mm
	DefaultMeshCells  = 200
	DefaultLogLevel   = "info"
	DefaultTimeout    = 5 * time.Second
)

// Config holds the resolved settings.
type Config struct {
	Render Render
	Log    Log
	Eval   Eval
}

// Render controls profile construction and plotting.
type Render struct {
	Width      float64 // mm beyond the outermost groove point
	Resolution float64 // mm arc rasterization step
	Scale      float64 // SVG pixels per mm
	MeshCells  int     // marching cubes cells for seam meshes
}

// Log controls the logger.
type Log struct {
	Level string
}

// Eval controls DSL evaluation.
type Eval struct {
	Timeout time.Duration
}

type fileConfig struct {
	Render struct {
		Width      float64 `toml:"width"`
		Resolution float64 `toml:"resolution"`
		Scale      float64 `toml:"scale"`
		MeshCells  int     `toml:"mesh_cells"`
	} `toml:"render"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Eval struct {
		Timeout string `toml:"timeout"`
	} `toml:"eval"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Render: Render{
			Width:      DefaultWidth,
			Resolution: DefaultResolution,
			Scale:      DefaultScale,
			MeshCells:  DefaultMeshCells,
		},
		Log:  Log{Level: DefaultLogLevel},
		Eval: Eval{Timeout: DefaultTimeout},
	}
}

// LoadFile reads a TOML file. Keys absent from the file keep their
// defaults.
func LoadFile(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return resolve(raw, meta)
}

// Load reads TOML from r.
func Load(r io.Reader) (Config, error) {
	var raw fileConfig
	meta, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return resolve(raw, meta)
}

func resolve(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := Default()

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	if meta.IsDefined("render", "width") {
		cfg.Render.Width = raw.Render.Width
	}
	if meta.IsDefined("render", "resolution") {
		cfg.Render.Resolution = raw.Render.Resolution
	}
	if meta.IsDefined("render", "scale") {
		cfg.Render.Scale = raw.Render.Scale
	}
	if meta.IsDefined("render", "mesh_cells") {
		cfg.Render.MeshCells = raw.Render.MeshCells
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(raw.Log.Level))
	}
	if meta.IsDefined("eval", "timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Eval.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse eval.timeout: %w", err)
		}
		cfg.Eval.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Render.Width < 0:
		return fmt.Errorf("render.width must not be negative, got %v", c.Render.Width)
	case c.Render.Resolution <= 0:
		return fmt.Errorf("render.resolution must be positive, got %v", c.Render.Resolution)
	case c.Render.Scale <= 0:
		return fmt.Errorf("render.scale must be positive, got %v", c.Render.Scale)
	case c.Render.MeshCells <= 0:
		return fmt.Errorf("render.mesh_cells must be positive, got %d", c.Render.MeshCells)
	case c.Eval.Timeout <= 0:
		return fmt.Errorf("eval.timeout must be positive, got %s", c.Eval.Timeout)
	}
	return nil
}
