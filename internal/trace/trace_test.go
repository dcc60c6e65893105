package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != strings.ToLower(s) {
			t.Errorf("round trip %q -> %q", s, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeMark, false},
		{LevelDebug, ScopeMark, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := BeginCtx(ctx, ScopeDriver, "tokenize")
	_, inner := BeginCtx(ctx, ScopeFile, "file:a.md")
	inner.WithExtra("tokens", "12").End("")
	Point(tr, ScopeMark, "diag", outer.ID(), "dropped at detail")
	outer.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "file:a.md" || ev.ParentID != outer.ID() || ev.Extra["tokens"] != "12" {
		t.Errorf("inner end = %+v", ev)
	}
}

func TestDisabledSpansAreNop(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 || s.End("") != 0 {
		t.Error("nop span emitted")
	}
	if FromContext(context.Background()) != Nop {
		t.Error("empty context should carry Nop")
	}
}

func TestRingSnapshotWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("snapshot = %+v", snap)
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "• d") {
		t.Errorf("dump = %q", buf.String())
	}
	if FindRing(NewMultiTracer(LevelDebug, Nop, r)) != r {
		t.Error("FindRing missed the ring")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Error("expected error for missing mode")
	}
}
