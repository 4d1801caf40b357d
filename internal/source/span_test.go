package source

import (
	"testing"
)

func TestSpanBasics(t *testing.T) {
	s := Span{File: 1, Start: 3, End: 7}

	if s.Empty() {
		t.Error("non-empty span reported empty")
	}
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}
	if got := s.String(); got != "1:3-7" {
		t.Errorf("String = %q, want \"1:3-7\"", got)
	}

	empty := Span{File: 1, Start: 5, End: 5}
	if !empty.Empty() {
		t.Error("empty span not reported empty")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 4, End: 8}
	b := Span{File: 0, Start: 2, End: 6}

	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Errorf("Cover = %+v, want 0:2-8", got)
	}

	// Covering a span from another file is a no-op.
	other := Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file Cover = %+v, want %+v", got, a)
	}
}
