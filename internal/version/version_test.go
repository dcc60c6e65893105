package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = ""
	got := Info(false)
	if got != "hyperlex 1.2.3\ncommit: abc123" {
		t.Errorf("Info(false) = %q", got)
	}
}

func TestColored(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()

	color.NoColor = true
	tests := []struct{ in, want string }{
		{"0.1.0-dev", "0.1.0-dev"},
		{"2.0.1", "2.0.1"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		Version = tt.in
		if got := Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q", tt.in, got)
		}
	}

	color.NoColor = false
	Version = "1.2.3"
	if got := Colored(); !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escape codes in %q", got)
	}
}
