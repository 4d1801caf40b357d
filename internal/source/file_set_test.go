package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a.shd", []byte("one"), 0)
	id2 := fs.Add("b.shd", []byte("two"), 0)

	if id1 == id2 {
		t.Fatalf("expected distinct FileIDs, got %d twice", id1)
	}
	if fs.Get(id1).Path != "a.shd" || fs.Get(id2).Path != "b.shd" {
		t.Errorf("paths not stored: %q, %q", fs.Get(id1).Path, fs.Get(id2).Path)
	}
}

func TestAddComputesHashAndLineIndex(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("x.shd", []byte("a\nb\nc"), 0)
	f := fs.Get(id)

	if len(f.LineIdx) != 2 {
		t.Errorf("LineIdx length = %d, want 2", len(f.LineIdx))
	}
	var zero [32]byte
	if f.Hash == zero {
		t.Error("content hash not computed")
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.shd")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("# [M:Test]\r\nx in f32\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)

	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("disk file must not carry FileVirtual")
	}
	if string(f.Content) != "# [M:Test]\nx in f32\n" {
		t.Errorf("content not normalized: %q", f.Content)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.shd")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAddVirtualNormalizesNFC(t *testing.T) {
	fs := NewFileSet()
	// Decomposed é in a name; AddVirtual must recompose it.
	id := fs.AddVirtual("<test>", []byte("café ∈ f32\n"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if f.Flags&FileNormalizedNFC == 0 {
		t.Error("expected FileNormalizedNFC flag")
	}
	if string(f.Content) != "café ∈ f32\n" {
		t.Errorf("content not recomposed: %q", f.Content)
	}
}

func TestResolveUnicodeColumns(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<test>", []byte("pos ∈ f32\n"))

	// Span of "f32": bytes 8..11, but columns 7..10 on line 1.
	start, end := fs.Resolve(Span{File: id, Start: 8, End: 11})
	if start != (LineCol{1, 7}) {
		t.Errorf("start = %+v, want 1:7", start)
	}
	if end != (LineCol{1, 10}) {
		t.Errorf("end = %+v, want 1:10", end)
	}
}

func TestGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.Add("dir/x.shd", []byte("a"), 0)

	if _, ok := fs.GetByPath("dir//x.shd"); !ok {
		t.Error("expected lookup through a non-clean path to succeed")
	}
	if _, ok := fs.GetByPath("other.shd"); ok {
		t.Error("unexpected hit for unknown path")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("x.shd", []byte("first\nsecond\nthird"), 0)
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}
