package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hyperlex/internal/diagfmt"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestColorModeNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	if colorAuto.enabled(&buf) {
		t.Error("auto color enabled for a buffer")
	}
	if !colorOn.enabled(&buf) || colorOff.enabled(&buf) {
		t.Error("explicit modes ignored")
	}
	if _, err := readColorMode("rainbow"); err == nil {
		t.Error("expected error")
	}
}

// execute runs the root command with args and returns stdout, stderr and
// the error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		closeTracing()
		// Flag values persist on the shared commands between runs.
		for _, name := range []string{"format", "hyper", "max-depth", "stray-closers", "cache", "show-marks", "quiet", "no-warnings", "warnings-as-errors", "with-notes", "fullpath"} {
			for _, c := range rootCmd.Commands() {
				if f := c.Flags().Lookup(name); f != nil {
					_ = f.Value.Set(f.DefValue)
					f.Changed = false
				}
			}
		}
		for _, name := range []string{"config", "ui", "color"} {
			f := rootCmd.PersistentFlags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ".hyperlex.toml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestTokenizeStdinJSON(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, ".hyperlex.toml")
	writeConfig(t, dir, "[output]\nformat = \"json\"\n")

	out, _, err := execute(t, "中文 (abc)", "tokenize", "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	var doc diagfmt.TreeOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if doc.File != "<stdin>" || len(doc.Root.Children) != 2 || len(doc.Marks) != 1 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestTokenizeFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[output]\nformat = \"json\"\n")
	path := filepath.Join(dir, "a.md")
	if err := os.WriteFile(path, []byte("x (y"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := execute(t, "", "tokenize", "--format", "marks", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "brackets") || !strings.Contains(out, "open") {
		t.Errorf("marks output = %q", out)
	}
	if !strings.Contains(errOut, "PRS1001") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestTokenizeDirectory(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{"a.md": "a", "b.txt": "「b」"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	out, _, err := execute(t, "", "tokenize", "--ui", "off", dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"==> a.md <==", "==> b.txt <==", `"「…」"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestDiagExitStatus(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"warnings pass", []string{"diag", "--format", "short"}, 0, "warning PRS1001"},
		{"warnings as errors", []string{"diag", "--format", "short", "--warnings-as-errors"}, 1, "PRS1001"},
		{"no warnings", []string{"diag", "--format", "short", "--no-warnings"}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "(open", tt.args...)
			code := 0
			var exit exitError
			if errors.As(err, &exit) {
				code = exit.code
			} else if err != nil {
				t.Fatal(err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantOut == "" && out != "" || !strings.Contains(out, tt.wantOut) {
				t.Errorf("output = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "hyperlex" || payload.Version == "" {
		t.Errorf("payload = %+v", payload)
	}
}
