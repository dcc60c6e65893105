package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ulikunitz/xz"
	"github.com/vmihailenco/msgpack/v5"

	"hyperlex/internal/diag"
	"hyperlex/internal/parser"
)

// diskCacheSchemaVersion is bumped whenever DiskPayload or parser.Result
// changes shape.
const diskCacheSchemaVersion uint16 = 2

// DiskCache stores xz-compressed msgpack parse results on disk, keyed by
// content and options. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached parse.
type DiskPayload struct {
	Schema      uint16
	Result      *parser.Result
	Diagnostics []diag.Diagnostic
}

// Digest is a BLAKE3 cache key.
type Digest [32]byte

// OpenDiskCache creates dir if needed and returns a cache rooted there.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "parse", hexKey[:2], hexKey+".mp.xz")
}

// Put writes payload atomically.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	zw, err := xz.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if err := msgpack.NewEncoder(zw).Encode(payload); err != nil {
		_ = zw.Close()
		_ = f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the payload for key. A missing entry is not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (found bool, err error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	zr, err := xz.NewReader(f)
	if err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if err := msgpack.NewDecoder(zr).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "parse"))
}
