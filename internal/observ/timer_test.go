package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin("load")
	tm.End(load, "2 files")
	parse := tm.Begin("parse")
	tm.End(parse, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "load" || r.Phases[0].Note != "2 files" {
		t.Fatalf("report = %+v", r)
	}
	s := tm.Summary()
	if !strings.Contains(s, "load") || !strings.Contains(s, "// 2 files") || !strings.Contains(s, "total") {
		t.Errorf("summary = %q", s)
	}
	if NewTimer().Report().Phases != nil {
		t.Error("empty timer should report no phases")
	}
}
