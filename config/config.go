// Package config holds the settings of a compression run.
//
// Settings come from three layers, each overriding the
// previous one: built-in defaults, an optional TOML file
// named by $KQUANT_CONFIG, and KQUANT_* environment
// variables.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/unixpickle/kquant/imageio"
	"github.com/unixpickle/kquant/kquant"
	"github.com/unixpickle/kquant/locate"
)

// DefaultOutput is where the compressed image is written.
const DefaultOutput = "compressed_image.jpg"

// DefaultPreviewPath is where the comparison image goes
// when previews are enabled.
const DefaultPreviewPath = "comparison.png"

type Config struct {
	Clusters int   `toml:"clusters"`
	Seed     int64 `toml:"seed"`
	MaxIters int   `toml:"max_iters"`
	Attempts int   `toml:"attempts"`

	// MaxProcs caps the CPUs used for clustering. Zero keeps
	// the Go runtime default.
	MaxProcs int `toml:"max_procs"`

	Candidates  []string `toml:"candidates"`
	Output      string   `toml:"output"`
	JPEGQuality int      `toml:"jpeg_quality"`

	Preview     bool   `toml:"preview"`
	PreviewPath string `toml:"preview_path"`

	// GenerateTestImage writes a synthetic input to the
	// first candidate when none of them exist.
	GenerateTestImage bool `toml:"generate_test_image"`
}

// Default returns the settings of a run with no file and no
// environment overrides.
func Default() Config {
	return Config{
		Clusters:    kquant.DefaultClusters,
		Seed:        kquant.DefaultSeed,
		MaxIters:    kquant.DefaultMaxIters,
		Attempts:    kquant.DefaultAttempts,
		Candidates:  append([]string{}, locate.DefaultCandidates...),
		Output:      DefaultOutput,
		JPEGQuality: imageio.DefaultJPEGQuality,
		PreviewPath: DefaultPreviewPath,
	}
}

// Load builds a Config from defaults, the file named by
// $KQUANT_CONFIG (if set), and the environment.
func Load() (Config, error) {
	c := Default()
	if path := os.Getenv("KQUANT_CONFIG"); path != "" {
		if err := FromFile(path, &c); err != nil {
			return c, err
		}
	}
	if err := FromEnv(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// FromFile overlays the settings present in a TOML file.
func FromFile(path string, c *Config) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return errors.Wrapf(err, "read config file %s", path)
	}
	return nil
}

// Validate rejects settings that no run could use.
func (c Config) Validate() error {
	if c.Clusters < 1 {
		return errors.Errorf("clusters must be positive, got %d", c.Clusters)
	}
	if c.MaxIters < 1 {
		return errors.Errorf("max_iters must be positive, got %d", c.MaxIters)
	}
	if c.Attempts < 1 {
		return errors.Errorf("attempts must be positive, got %d", c.Attempts)
	}
	if c.MaxProcs < 0 {
		return errors.Errorf("max_procs must not be negative, got %d", c.MaxProcs)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.Errorf("jpeg_quality must be in [1, 100], got %d", c.JPEGQuality)
	}
	if len(c.Candidates) == 0 {
		return errors.New("at least one input candidate is required")
	}
	if c.Output == "" {
		return errors.New("output path must not be empty")
	}
	if c.Preview && c.PreviewPath == "" {
		return errors.New("preview_path must not be empty when previews are enabled")
	}
	return nil
}

// Quantizer converts the clustering settings for the core
// package. Workers follows MaxProcs.
func (c Config) Quantizer() *kquant.Config {
	return &kquant.Config{
		Clusters: c.Clusters,
		Seed:     c.Seed,
		MaxIters: c.MaxIters,
		Attempts: c.Attempts,
		Workers:  c.MaxProcs,
	}
}
