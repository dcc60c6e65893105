package ui

import (
	"strings"
	"testing"

	"hyperlex/internal/driver"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"docs/a.md", 20, "docs/a.md"},
		{"docs/long-name.md", 10, "docs/lo..."},
		{"文档/说明.md", 8, "文档/..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestApplyEvent(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("tokenize", []string{"a.md", "b.md"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.md", Stage: driver.StageCache, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.md", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "unknown.md", Status: driver.StatusError})

	if m.items[0].status != "cached" || m.items[1].status != "parsing" {
		t.Errorf("items = %+v", m.items)
	}
	if got := m.fraction(); got != 0.75 {
		t.Errorf("fraction = %v", got)
	}
	view := m.View()
	if !strings.Contains(view, "a.md") || !strings.Contains(view, "cached") {
		t.Errorf("view = %q", view)
	}
}
