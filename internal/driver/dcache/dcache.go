// Package dcache persists parsed documents on disk, keyed by the
// content hash of their source file. Cache entries are msgpack
// envelopes carrying a schema version; a corrupt or mismatched entry
// reads as a miss, never as an error the pipeline has to handle.
package dcache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"shorthand/internal/ast"
)

// schemaVersion invalidates stored payloads when the document shape
// changes. Bump on any ast field change.
const schemaVersion uint16 = 1

// Cache is a content-addressed document store. Keys are
// post-normalization hashes, so CRLF and BOM variants of the same
// text share an entry. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// payload is the msgpack envelope written per document.
type payload struct {
	Schema uint16
	Doc    *ast.Document
}

// Open initializes a cache at the standard location:
// $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key [32]byte) string {
	// Subdirectory "docs" keeps the cache root inspectable.
	return filepath.Join(c.dir, "docs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a document under the given content hash. The write is
// atomic: encode to a temp file, then rename into place.
func (c *Cache) Put(key [32]byte, doc *ast.Document) error {
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
	if err := msgpack.NewEncoder(f).Encode(&payload{Schema: schemaVersion, Doc: doc}); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the document stored under key. A missing, corrupt, or
// schema-mismatched entry is a plain miss, not an error: the caller
// reparses and the next Put overwrites the bad entry.
func (c *Cache) Get(key [32]byte) (*ast.Document, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var entry payload
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, nil
	}
	if entry.Schema != schemaVersion || entry.Doc == nil {
		return nil, false, nil
	}
	return entry.Doc, true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
