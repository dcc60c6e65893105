package fuzztests

import (
	"testing"

	"hyperlex/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// edgeSeeds cover inputs that stress recovery: deep nesting, stray closers,
// unclosed markup runs, invalid UTF-8 and line ending variants.
var edgeSeeds = []string{
	"((((((((((a))))))))))",
	")))]]]」」」",
	"<code><code><code>",
	"``` `` `",
	"*_*_*_~~",
	"[[[a](b)](c)](d)",
	"\xff\xfe(\xc3",
	"\ufeffa\r\nb\rc",
	"'''\"\"\"",
	"中'文'，\"English\"",
}

func addSeeds(f *testing.F) {
	for _, s := range testkit.Samples {
		f.Add(s)
	}
	for _, s := range edgeSeeds {
		f.Add(s)
	}
}

func clamp(input string) string {
	if len(input) > maxFuzzInput {
		return input[:maxFuzzInput]
	}
	return input
}
