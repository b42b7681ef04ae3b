// Package config loads and saves liquify settings as TOML.
//
// A missing file is not an error: Load returns the defaults. Store wraps a
// Config bound to a file and persists the last used warp radius, the one
// value the editor writes back while running.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/liquify"
	"github.com/gogpu/liquify/edit"
)

// ErrNoRadius is returned by Store.Radius when no radius was saved yet.
var ErrNoRadius = errors.New("config: no radius saved")

// Config holds all persisted settings.
type Config struct {
	// Interpolation names the resampling kernel: bilinear, bicubic,
	// lanczos2 or lanczos3.
	Interpolation string `toml:"interpolation"`

	// Workers is the number of processing goroutines, 0 for GOMAXPROCS.
	Workers int `toml:"workers"`

	// Accelerate routes resampling through the registered accelerator.
	Accelerate bool `toml:"accelerate"`

	UI UI `toml:"ui"`

	Liquify Liquify `toml:"liquify"`
}

// UI holds the editor sizes in UI pixels.
type UI struct {
	DPI             float64 `toml:"dpi"`
	DefaultRadius   float64 `toml:"default_radius"`
	DefaultStrength float64 `toml:"default_strength"`
	MinDrag         float64 `toml:"min_drag"`
}

// Liquify holds values the editor writes back.
type Liquify struct {
	// Radius is the radius of the warp edited last, in stored units. Zero
	// means unset.
	Radius float64 `toml:"radius,omitempty"`
}

// Default returns the stock settings.
func Default() Config {
	d := edit.DefaultDefaults()
	return Config{
		Interpolation: liquify.Bicubic.String(),
		UI: UI{
			DPI:             d.DPI,
			DefaultRadius:   d.Radius,
			DefaultStrength: d.Strength,
			MinDrag:         d.MinDrag,
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating missing directories.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := liquify.ParseInterpolation(c.Interpolation); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("negative worker count %d", c.Workers)
	}
	if c.UI.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %g", c.UI.DPI)
	}
	if c.Liquify.Radius < 0 {
		return fmt.Errorf("negative radius %g", c.Liquify.Radius)
	}
	return nil
}

// ProcessorOptions returns the processor options c selects.
func (c Config) ProcessorOptions() []liquify.Option {
	interp, err := liquify.ParseInterpolation(c.Interpolation)
	if err != nil {
		interp = liquify.Bicubic
	}
	opts := []liquify.Option{
		liquify.WithInterpolation(interp),
		liquify.WithWorkers(c.Workers),
	}
	if c.Accelerate {
		opts = append(opts, liquify.WithRegisteredAccelerator())
	}
	return opts
}

// EditDefaults returns the editor sizes c selects.
func (c Config) EditDefaults() edit.Defaults {
	return edit.Defaults{
		DPI:      c.UI.DPI,
		Radius:   c.UI.DefaultRadius,
		Strength: c.UI.DefaultStrength,
		MinDrag:  c.UI.MinDrag,
	}
}
