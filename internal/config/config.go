// Package config loads numlens.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file searched for.
const FileName = "numlens.toml"

// Config mirrors numlens.toml.
type Config struct {
	Annotate  AnnotateConfig  `toml:"annotate"`
	Highlight HighlightConfig `toml:"highlight"`
	Cache     CacheConfig     `toml:"cache"`
}

// AnnotateConfig holds report defaults.
type AnnotateConfig struct {
	Intermediates []string `toml:"intermediates"`
	Inline        bool     `toml:"inline"`
	Highlight     bool     `toml:"highlight"`
}

// HighlightConfig holds highlighter settings.
type HighlightConfig struct {
	Style string `toml:"style"`
}

// CacheConfig holds report cache settings.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the configuration used without a numlens.toml.
func Default() Config {
	return Config{
		Annotate:  AnnotateConfig{Inline: true},
		Highlight: HighlightConfig{Style: "monokai"},
	}
}

// Loaded is a configuration together with where it came from.
type Loaded struct {
	Path   string // empty when defaults are used
	Config Config
}

// Find walks up from startDir looking for numlens.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads the configuration at path, or searches upward from startDir
// when path is empty. A missing file yields Default().
func Load(path, startDir string) (Loaded, error) {
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Loaded{}, err
		}
		if !ok {
			return Loaded{Config: Default()}, nil
		}
		path = found
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Path: path, Config: cfg}, nil
}

// LoadFile decodes a single numlens.toml over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
