// Package config loads the evaluator-wide defaults used by the demo CLI and
// by callers assembling a ReaderProvider: initial scratch capacity, the
// buffered provider's chunk/window sizes, and default alignment. YAML
// defaults are read first, then environment variables override them, the
// layering charmbracelet/glow uses caarlos0/env for.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/shapestone/byteeval/internal/obslog"
)

// Config is the module's runtime configuration surface.
type Config struct {
	// ScratchCapacityHint sizes a Bound scratch buffer's initial backing
	// array when an operator doesn't declare its own.
	ScratchCapacityHint int `env:"SCRATCH_CAPACITY_HINT" yaml:"scratchCapacityHint" envDefault:"64"`
	// DefaultAlignment applies to operators that don't set their own.
	DefaultAlignment int `env:"DEFAULT_ALIGNMENT" yaml:"defaultAlignment" envDefault:"1"`
	// ReaderChunkSize is the buffered provider's per-refill read size.
	ReaderChunkSize int `env:"READER_CHUNK_SIZE" yaml:"readerChunkSize" envDefault:"8192"`
	// ReaderWindowSize caps the buffered provider's resident window.
	ReaderWindowSize int `env:"READER_WINDOW_SIZE" yaml:"readerWindowSize" envDefault:"65536"`

	Log obslog.Config `envPrefix:"LOG_" yaml:"log"`
}

// Default returns a Config populated with its env struct-tag defaults.
func Default() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load starts from the env struct-tag defaults, reads YAML values from path
// (if non-empty and present) over them, then applies environment variable
// overrides on top.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, err
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	// Second environment pass without envDefault: env.Parse applies a tag
	// default even to a field that already holds a YAML value.
	if err := env.ParseWithOptions(&cfg, env.Options{DefaultValueTagName: "noEnvDefault"}); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
