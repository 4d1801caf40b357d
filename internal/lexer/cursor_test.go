package lexer_test

import (
	"testing"

	"shorthand/internal/lexer"
	"shorthand/internal/source"
)

func newTestFile(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.shd", []byte(content))
	return fs.Get(id)
}

func TestCursorBumpAndEOF(t *testing.T) {
	file := newTestFile(t, "ab")
	cur := lexer.NewCursor(file)

	if cur.EOF() {
		t.Fatal("cursor at EOF before reading")
	}
	if got := cur.Bump(); got != 'a' {
		t.Fatalf("Bump() = %q, want 'a'", got)
	}
	if got := cur.Bump(); got != 'b' {
		t.Fatalf("Bump() = %q, want 'b'", got)
	}
	if !cur.EOF() {
		t.Fatal("cursor not at EOF after consuming all bytes")
	}
	if got := cur.Bump(); got != 0 {
		t.Fatalf("Bump() at EOF = %q, want 0", got)
	}
}

func TestCursorPeekDoesNotAdvance(t *testing.T) {
	file := newTestFile(t, "xy")
	cur := lexer.NewCursor(file)

	if got := cur.Peek(); got != 'x' {
		t.Fatalf("Peek() = %q, want 'x'", got)
	}
	if cur.Off != 0 {
		t.Fatalf("Peek moved the cursor to %d", cur.Off)
	}
	b0, b1, ok := cur.Peek2()
	if !ok || b0 != 'x' || b1 != 'y' {
		t.Fatalf("Peek2() = %q %q %v", b0, b1, ok)
	}
}

func TestCursorSpanFrom(t *testing.T) {
	file := newTestFile(t, "hello")
	cur := lexer.NewCursor(file)

	m := cur.Mark()
	cur.Bump()
	cur.Bump()
	sp := cur.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = [%d,%d), want [0,2)", sp.Start, sp.End)
	}
	cur.Reset(m)
	if cur.Off != 0 {
		t.Fatalf("Reset left cursor at %d", cur.Off)
	}
}

func TestCursorEat(t *testing.T) {
	file := newTestFile(t, ":x")
	cur := lexer.NewCursor(file)

	if !cur.Eat(':') {
		t.Fatal("Eat(':') failed on matching byte")
	}
	if cur.Eat(':') {
		t.Fatal("Eat(':') consumed a non-matching byte")
	}
	if got := cur.Peek(); got != 'x' {
		t.Fatalf("Peek() = %q, want 'x'", got)
	}
}
