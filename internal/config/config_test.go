package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[parse]\nmax_depth = 8\nreport_stray_closers = true\n[cache]\ndir = \"cache\"\n")
	nested := filepath.Join(root, "docs", "zh")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Parse.MaxDepth != 8 || !cfg.Parse.ReportStrayClosers {
		t.Errorf("parse = %+v", cfg.Parse)
	}
	if cfg.Parse.Hyper != HyperMarkdown || cfg.Output.Format != FormatPretty {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if want := filepath.Join(root, "cache"); cfg.Cache.Dir != want {
		t.Errorf("cache dir = %q, want %q", cfg.Cache.Dir, want)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" && !strings.HasSuffix(cfg.Path, FileName) {
		t.Errorf("path = %q", cfg.Path)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[parse]\nmaxdepth = 3\n", "unknown keys: parse.maxdepth"},
		{"bad hyper", "[parse]\nhyper = \"rst\"\n", "[parse].hyper"},
		{"bad format", "[output]\nformat = \"xml\"\n", "[output].format"},
		{"negative depth", "[parse]\nmax_depth = -1\n", "max_depth"},
		{"syntax", "[parse\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want %q", err, tt.want)
			}
		})
	}
}
