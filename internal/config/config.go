// Package config loads host settings for the ocl tools from a .ocl.toml or
// .ocl.yaml file found by walking up from a start directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"ocl/internal/parser"
)

// FileNames lists the recognised config files in lookup order. Within one
// directory the first match wins.
var FileNames = []string{".ocl.toml", ".ocl.yaml", ".ocl.yml"}

// Config holds settings shared by the CLI and the language server.
type Config struct {
	MaxDepth     int    `toml:"max_depth" yaml:"max_depth"`
	Color        string `toml:"color" yaml:"color"`
	Format       string `toml:"format" yaml:"format"`
	Engine       string `toml:"engine" yaml:"engine"`
	LogVerbosity int    `toml:"log_verbosity" yaml:"log_verbosity"`

	// Path is the file the values were read from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxDepth:     parser.DefaultMaxDepth,
		Color:        "auto",
		Format:       "pretty",
		Engine:       "native",
		LogVerbosity: 0,
	}
}

// ParserOptions converts the config into options for the native parser.
func (c Config) ParserOptions() parser.Options {
	return parser.Options{MaxDepth: c.MaxDepth}
}

// Validate reports the first setting outside its allowed values.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if err := oneOf("color", c.Color, "auto", "on", "off"); err != nil {
		return err
	}
	if err := oneOf("format", c.Format, "pretty", "json", "msgpack"); err != nil {
		return err
	}
	if err := oneOf("engine", c.Engine, "native", "participle"); err != nil {
		return err
	}
	if c.LogVerbosity < 0 {
		return fmt.Errorf("log_verbosity must not be negative, got %d", c.LogVerbosity)
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, "|"), value)
}

// Find walks up from startDir and returns the first config file it sees.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, true, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds the nearest config file above startDir and reads it. Without
// a config file it returns Default.
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads one config file. Keys missing from the file keep their
// default values; unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(content, &cfg)
	default:
		err = decodeTOML(content, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func decodeTOML(content []byte, cfg *Config) error {
	meta, err := toml.Decode(string(content), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func decodeYAML(content []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
