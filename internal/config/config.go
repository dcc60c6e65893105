// Package config loads .hyperlex.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name searched for by Find.
const FileName = ".hyperlex.toml"

type Config struct {
	Parse  Parse  `toml:"parse"`
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type Parse struct {
	MaxDepth           int    `toml:"max_depth"`
	ReportStrayClosers bool   `toml:"report_stray_closers"`
	Hyper              string `toml:"hyper"`
}

type Output struct {
	Format         string `toml:"format"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

const (
	HyperMarkdown = "markdown"
	HyperNone     = "none"

	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatMarks  = "marks"
)

func Default() Config {
	return Config{
		Parse:  Parse{MaxDepth: 256, Hyper: HyperMarkdown},
		Output: Output{Format: FormatPretty, MaxDiagnostics: 100},
	}
}

// Find walks up from startDir to locate FileName.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
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

// Discover loads the nearest config above start, or the defaults when there
// is none.
func Discover(start string) (Config, error) {
	path, ok, err := Find(start)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c *Config) Validate() error {
	switch c.Parse.Hyper {
	case HyperMarkdown, HyperNone:
	default:
		return fmt.Errorf("[parse].hyper: %q (expected: markdown|none)", c.Parse.Hyper)
	}
	switch c.Output.Format {
	case FormatPretty, FormatJSON, FormatMarks:
	default:
		return fmt.Errorf("[output].format: %q (expected: pretty|json|marks)", c.Output.Format)
	}
	if c.Parse.MaxDepth < 0 {
		return fmt.Errorf("[parse].max_depth must not be negative")
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must not be negative")
	}
	return nil
}

// CacheDir returns the configured cache directory, defaulting to the user
// cache directory.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("no cache directory: %w", err)
	}
	return filepath.Join(base, "hyperlex"), nil
}
