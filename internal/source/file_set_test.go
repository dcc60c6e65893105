package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSet_LoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	raw := []byte("\xEF\xBB\xBF中文\r\nfoo\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if got, want := f.Text(), "中文\nfoo\n"; got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF set", f.Flags)
	}
	if latest, ok := fs.GetLatest(path); !ok || latest != id {
		t.Fatalf("GetLatest = %d, %v", latest, ok)
	}
}

func TestFileSet_LoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.md")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFileSet_Resolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.md", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // the newline itself
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 3, Col: 1}},
		{8, LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("test.md", []byte("first\nsecond\n")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: ""}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestSpan_CoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("Cover across files must keep receiver, got %v", got)
	}
	if !a.Contains(Span{File: 1, Start: 5, End: 8}) || a.Contains(b) {
		t.Fatal("Contains mismatch")
	}
	if sp := SpanOf(0, 3, 7); sp.Len() != 4 || sp.Empty() {
		t.Fatalf("SpanOf = %v", sp)
	}
}

func TestFileSet_AddVirtualFlags(t *testing.T) {
	tests := []struct {
		in    string
		text  string
		flags string
	}{
		{"plain", "plain", "virtual"},
		{"\ufeffa\r\nb", "a\nb", "virtual|bom|crlf"},
		{"a\rb", "a\rb", "virtual"},
	}
	for _, tt := range tests {
		fs := NewFileSet()
		f := fs.Get(fs.AddVirtual("<stdin>", []byte(tt.in)))
		if f.Text() != tt.text || f.Flags.String() != tt.flags {
			t.Errorf("AddVirtual(%q) = %q %q, want %q %q", tt.in, f.Text(), f.Flags, tt.text, tt.flags)
		}
	}
}
