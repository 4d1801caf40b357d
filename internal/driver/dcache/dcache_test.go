package dcache

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"shorthand/internal/ast"
	"shorthand/internal/parser"
)

func testDoc(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, _, err := parser.ParseString("cache.shd", src, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestCacheRoundTrip(t *testing.T) {
	c := &Cache{dir: t.TempDir()}
	src := "# [M:Physics] [Role:Sim]\n\n[C:World]\n  bodies ∈ f32[N,3]@GPU\n\nF:tick(w: World) → World [O(N)]\n"
	doc := testDoc(t, src)
	key := sha256.Sum256([]byte(src))

	if err := c.Put(key, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: entry not found after Put")
	}
	if !got.EqualStructure(doc) {
		t.Error("cached document differs from original")
	}
	if got.Metadata.Role != "Sim" {
		t.Errorf("Role = %q, want Sim", got.Metadata.Role)
	}
	if len(got.Entities) != 1 || len(got.Entities[0].State) != 1 {
		t.Fatalf("entity shape lost: %+v", got.Entities)
	}
	if !got.Entities[0].State[0].Type.Equal(doc.Entities[0].State[0].Type) {
		t.Error("state type lost in round-trip")
	}
}

func TestCachePreservesDiagnostics(t *testing.T) {
	c := &Cache{dir: t.TempDir()}
	src := "# [M:Demo]\n\nF:f(x) → f32\n"
	doc := testDoc(t, src)
	if len(doc.Diagnostics) == 0 {
		t.Fatal("expected a warning for the untyped parameter")
	}
	key := sha256.Sum256([]byte(src))

	if err := c.Put(key, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(got.Diagnostics) != len(doc.Diagnostics) {
		t.Fatalf("diagnostics = %d, want %d", len(got.Diagnostics), len(doc.Diagnostics))
	}
	if got.Diagnostics[0].Code != doc.Diagnostics[0].Code {
		t.Errorf("code = %v, want %v", got.Diagnostics[0].Code, doc.Diagnostics[0].Code)
	}
	if got.Diagnostics[0].Primary != doc.Diagnostics[0].Primary {
		t.Errorf("span = %v, want %v", got.Diagnostics[0].Primary, doc.Diagnostics[0].Primary)
	}
}

func TestCacheMiss(t *testing.T) {
	c := &Cache{dir: t.TempDir()}
	var key [32]byte
	key[0] = 0xee

	_, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get reported a hit in an empty cache")
	}
}

func TestCacheSchemaMismatchIsMiss(t *testing.T) {
	c := &Cache{dir: t.TempDir()}
	doc := testDoc(t, "# [M:Old]\n")
	var key [32]byte
	key[0] = 1

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data, err := msgpack.Marshal(&payload{Schema: schemaVersion + 1, Doc: doc})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("entry with foreign schema served as a hit")
	}
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	c := &Cache{dir: t.TempDir()}
	var key [32]byte
	key[0] = 2

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("corrupt entry served as a hit")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := &Cache{dir: t.TempDir()}
	var key [32]byte
	key[0] = 3

	first := testDoc(t, "# [M:First]\n")
	second := testDoc(t, "# [M:Second]\n")
	if err := c.Put(key, first); err != nil {
		t.Fatalf("Put first: %v", err)
	}
	if err := c.Put(key, second); err != nil {
		t.Fatalf("Put second: %v", err)
	}

	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Metadata.ModuleName != "Second" {
		t.Errorf("ModuleName = %q, want Second", got.Metadata.ModuleName)
	}
}

func TestCacheDropAll(t *testing.T) {
	dir := t.TempDir()
	c := &Cache{dir: filepath.Join(dir, "cache")}
	doc := testDoc(t, "# [M:Gone]\n")
	var key [32]byte
	key[0] = 4

	if err := c.Put(key, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	_, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("entry survived DropAll")
	}

	// Dropping a cache that no longer exists is a no-op.
	if err := c.DropAll(); err != nil {
		t.Fatalf("second DropAll: %v", err)
	}
}

func TestOpenUsesXDGCacheHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	c, err := Open("shorthand-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := filepath.Join(base, "shorthand-test")
	if c.dir != want {
		t.Errorf("dir = %q, want %q", c.dir, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("cache dir not created: %v", err)
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var c *Cache
	var key [32]byte

	if err := c.Put(key, nil); err != nil {
		t.Errorf("Put on nil cache: %v", err)
	}
	_, ok, err := c.Get(key)
	if err != nil || ok {
		t.Errorf("Get on nil cache: ok=%v err=%v", ok, err)
	}
	if err := c.DropAll(); err != nil {
		t.Errorf("DropAll on nil cache: %v", err)
	}
}
