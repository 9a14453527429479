// Package config loads wsp's CLI default settings. The core whisper
// package never reads configuration itself; everything here feeds
// cmd/wsp's flag defaults only.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/tsrr/whisperdb/whisper"
)

var errXFilesFactorRange = errors.New("x_files_factor must be between 0 and 100")

// Config holds the defaults cmd/wsp falls back to when a flag isn't
// given explicitly on the command line.
type Config struct {
	Aggregation  string `json:"aggregation,omitempty"`
	XFilesFactor *uint8 `json:"x_files_factor,omitempty"`
	Archives     string `json:"archives,omitempty"`
}

// Default returns the built-in defaults, used when no config file is
// present anywhere in the search path.
func Default() Config {
	xff := uint8(0)
	return Config{
		Aggregation: whisper.AggregationAverage.String(),
		XFilesFactor: &xff,
	}
}

// FileName is the default config file name, searched for in the
// working directory and the user's config home.
const FileName = "wsp.jsonc"

// Load resolves config with precedence (highest wins): built-in
// defaults, global user config, project config file. Missing files at
// any layer are not an error; a malformed one is.
func Load(workDir string, env []string) (Config, error) {
	cfg := Default()

	globalPath := globalConfigPath(env)
	if globalPath != "" {
		overlay, ok, err := loadFile(globalPath)
		if err != nil {
			return Config{}, err
		}
		if ok {
			cfg = merge(cfg, overlay)
		}
	}

	projectPath := filepath.Join(workDir, FileName)
	overlay, ok, err := loadFile(projectPath)
	if err != nil {
		return Config{}, err
	}
	if ok {
		cfg = merge(cfg, overlay)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func globalConfigPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "wsp", FileName)
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wsp", FileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wsp", FileName)
}

func loadFile(path string) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from a fixed file name, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("reading %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("parsing %s as JSONC: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, true, nil
}

func merge(base, overlay Config) Config {
	if overlay.Aggregation != "" {
		base.Aggregation = overlay.Aggregation
	}
	if overlay.XFilesFactor != nil {
		base.XFilesFactor = overlay.XFilesFactor
	}
	if overlay.Archives != "" {
		base.Archives = overlay.Archives
	}
	return base
}

func validate(cfg Config) error {
	if cfg.XFilesFactor != nil && *cfg.XFilesFactor > 100 {
		return errXFilesFactorRange
	}
	switch cfg.Aggregation {
	case "", "average", "sum", "last", "max", "min":
	default:
		return fmt.Errorf("unknown aggregation method %q", cfg.Aggregation)
	}
	return nil
}

// AggregationMethod resolves the config's method name to the engine's
// enum, defaulting to average.
func (c Config) AggregationMethod() whisper.AggregationMethod {
	switch c.Aggregation {
	case "sum":
		return whisper.AggregationSum
	case "last":
		return whisper.AggregationLast
	case "max":
		return whisper.AggregationMax
	case "min":
		return whisper.AggregationMin
	default:
		return whisper.AggregationAverage
	}
}
