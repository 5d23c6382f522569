package libknot

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds the settings shared by the CLI and the scripting module.
//
// Values start from DefaultConfig, are then read from an optional TOML file, and finally overridden by
// KNOT_ environment variables.
type Config struct {
	MaxMoves    int    `toml:"max_moves"    env:"KNOT_MAX_MOVES"`
	CatalogPath string `toml:"catalog_path" env:"KNOT_CATALOG_PATH"` // empty for an in-memory catalog
	Verbosity   int    `toml:"verbosity"    env:"KNOT_VERBOSITY"`
	ReadOnly    bool   `toml:"read_only"    env:"KNOT_READ_ONLY"`
	Workers     int    `toml:"workers"      env:"KNOT_WORKERS"`
}

var DefaultConfig = Config{
	MaxMoves:  DefaultCanonizeOpts.MaxMoves,
	Verbosity: 0,
	Workers:   4,
}

// LoadConfig reads the TOML file at pathname (if non-empty) and then applies environment overrides.
func LoadConfig(pathname string) (Config, error) {
	cfg := DefaultConfig
	if pathname != "" {
		data, err := os.ReadFile(pathname)
		if err != nil {
			return cfg, errors.Wrap(err, "read config")
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %q", pathname)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parse env")
	}
	if cfg.MaxMoves <= 0 {
		return cfg, errors.Errorf("max_moves must be positive, got %d", cfg.MaxMoves)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

func (cfg Config) CanonizeOpts() CanonizeOpts {
	return CanonizeOpts{
		MaxMoves: cfg.MaxMoves,
	}
}
