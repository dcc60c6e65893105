package driver

import (
	"encoding/binary"

	"fortio.org/safecast"
	"github.com/zeebo/blake3"

	"hyperlex/internal/config"
	"hyperlex/internal/source"
)

// cacheKey is BLAKE3(schema || options || content sha256). Options that
// change the tree or its diagnostics are part of the key; Jobs and the cache
// itself are not.
func cacheKey(f *source.File, opts *Options) Digest {
	h := blake3.New()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	_, _ = h.Write(buf[:2])
	for _, n := range []int{opts.MaxDepth, opts.MaxDiagnostics} {
		v, err := safecast.Conv[uint64](n)
		if err != nil {
			v = 0
		}
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	flags := byte(0)
	if opts.ReportStrayClosers {
		flags |= 1
	}
	if opts.Hyper == config.HyperNone {
		flags |= 2
	}
	_, _ = h.Write([]byte{flags})
	_, _ = h.Write(f.Hash[:])

	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
