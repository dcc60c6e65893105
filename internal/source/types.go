package source

import "strings"

type (
	// FileID indexes a document in its FileSet. Spans and diagnostics carry
	// it; cached diagnostics are re-pointed to the FileID of the current run.
	FileID uint32
	// FileFlags records how the bytes on disk differ from Content.
	FileFlags uint8
)

const (
	// FileVirtual marks stdin and in-memory documents.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM means a leading U+FEFF was stripped; offsets start after it.
	FileHadBOM
	// FileNormalizedCRLF means "\r\n" line endings became "\n".
	FileNormalizedCRLF
)

var flagNames = []struct {
	flag FileFlags
	name string
}{
	{FileVirtual, "virtual"},
	{FileHadBOM, "bom"},
	{FileNormalizedCRLF, "crlf"},
}

// String lists the set flags as "virtual|bom|crlf", or "" when none are set.
func (f FileFlags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// File is one normalized document. Every token offset the parser reports is
// a byte offset into Content.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offset of every '\n' in Content.
	LineIdx []uint32
	// Hash is the SHA-256 of Content; the parse cache key is derived from it.
	Hash  [32]byte
	Flags FileFlags
}

func (f *File) Text() string {
	return string(f.Content)
}

// LineCol is a 1-based position. Col counts bytes, so a CJK glyph advances
// it by three; diagfmt converts to display cells when drawing carets.
type LineCol struct {
	Line uint32
	Col  uint32
}
