package format

import (
	"errors"
	"testing"

	"shorthand/internal/ast"
	"shorthand/internal/parser"
)

func parseDoc(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, _, err := parser.ParseString("fmt.shd", src, parser.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func TestFormatCanonicalDocument(t *testing.T) {
	src := "# [M:Physics] [Role:Sim]\n" +
		"[C:World]\n" +
		"    <> [Ref:Clock]\n" +
		"    bodies in f32[N, 3]@GPU\n" +
		"    t in f32\n" +
		"F:tick(w: World) -> World [Sim:Euler] [O(N)]\n"
	got, err := Source("fmt.shd", src, DefaultConfig())
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	want := "# [M:Physics] [Role:Sim]\n" +
		"\n" +
		"[C:World]\n" +
		"  ◊ [Ref:Clock]\n" +
		"  bodies ∈ f32[N,3]@GPU\n" +
		"  t      ∈ f32\n" +
		"\n" +
		"F:tick(w: World) → World [Sim:Euler] [O(N)]\n"
	if got != want {
		t.Fatalf("canonical output mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatIdempotence(t *testing.T) {
	sources := []string{
		"# [M:Test]\n[C:A]\n  x in f32\n  longer in f64[K]@CPU\nF:f(a: f32) -> f32 [IO]\n",
		"# [M:Test]\nF:g() -> None\n",
		"# [M:Only]\n",
		"# [M:Test]\n[C:M]\n  w ∈ f32[N,D]@GPU\n  # F:predict(x: f32[D]) → f32 [NN:∇:L2]\n",
	}
	for _, cfg := range []Config{DefaultConfig(), {Indent: 4, SortStateBy: SortByName}, {Indent: 2, PreferUnicode: false}} {
		for _, src := range sources {
			once, err := Source("fmt.shd", src, cfg)
			if err != nil {
				t.Fatalf("first format failed: %v", err)
			}
			twice, err := Source("fmt.shd", once, cfg)
			if err != nil {
				t.Fatalf("second format failed: %v", err)
			}
			if once != twice {
				t.Fatalf("not idempotent (cfg %+v):\nonce  %q\ntwice %q", cfg, once, twice)
			}
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	src := "# [M:Vision] [Role:Core]\n" +
		"[C:Model]\n" +
		"  <> [Ref:Store]\n" +
		"  weights in f32[N,D]@GPU\n" +
		"  bias in f32[D]@GPU\n" +
		"  # F:predict(x: f32[D]) -> f32 [NN:∇:L2] [O(N*D)]\n" +
		"F:train(m: Model, lr: f32) -> Model [NN:SGD] [O(N*D)]\n" +
		"F:load(path: str) -> Model [IO]\n"
	doc := parseDoc(t, src)
	for _, cfg := range []Config{DefaultConfig(), {Indent: 3, SortStateBy: SortByName, AlignTypes: true}} {
		formatted, err := Document(doc, cfg)
		if err != nil {
			t.Fatalf("format failed: %v", err)
		}
		if ok, msg := CheckRoundTrip(doc, formatted); !ok {
			t.Fatalf("round-trip failed (cfg %+v): %s\noutput %q", cfg, msg, formatted)
		}
		redoc := parseDoc(t, formatted)
		if redoc.HasDiagnostics() {
			t.Fatalf("reparse produced diagnostics: %v", redoc.Diagnostics)
		}
	}
}

func TestFormatASCIIMode(t *testing.T) {
	src := "# [M:Test]\n[C:A]\n  ◊ [Ref:B]\n  x ∈ f32\nF:f(a: f32) → f32 [NN:∇:L2]\n"
	cfg := DefaultConfig()
	cfg.PreferUnicode = false
	got, err := Source("fmt.shd", src, cfg)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	want := "# [M:Test]\n" +
		"\n" +
		"[C:A]\n" +
		"  <> [Ref:B]\n" +
		"  x in f32\n" +
		"\n" +
		"F:f(a: f32) -> f32 [NN:∇:L2]\n"
	if got != want {
		t.Fatalf("ascii output mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatAlignment(t *testing.T) {
	src := "# [M:Test]\n[C:A]\n  x ∈ f32\n  velocity ∈ f32[N]@GPU\n"
	got, err := Source("fmt.shd", src, DefaultConfig())
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	want := "# [M:Test]\n\n[C:A]\n  x        ∈ f32\n  velocity ∈ f32[N]@GPU\n"
	if got != want {
		t.Fatalf("aligned output mismatch:\nwant %q\ngot  %q", want, got)
	}

	cfg := DefaultConfig()
	cfg.AlignTypes = false
	got, err = Source("fmt.shd", src, cfg)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	want = "# [M:Test]\n\n[C:A]\n  x ∈ f32\n  velocity ∈ f32[N]@GPU\n"
	if got != want {
		t.Fatalf("unaligned output mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatSortByName(t *testing.T) {
	src := "# [M:Test]\n[C:A]\n  zz ∈ f32\n  aa ∈ f32\n  mm ∈ f32\n"
	cfg := DefaultConfig()
	cfg.SortStateBy = SortByName
	got, err := Source("fmt.shd", src, cfg)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	want := "# [M:Test]\n\n[C:A]\n  aa ∈ f32\n  mm ∈ f32\n  zz ∈ f32\n"
	if got != want {
		t.Fatalf("sorted output mismatch:\nwant %q\ngot  %q", want, got)
	}

	// location and none both keep source order
	for _, mode := range []SortMode{SortByLocation, SortNone} {
		cfg.SortStateBy = mode
		got, err = Source("fmt.shd", src, cfg)
		if err != nil {
			t.Fatalf("format failed: %v", err)
		}
		want = "# [M:Test]\n\n[C:A]\n  zz ∈ f32\n  aa ∈ f32\n  mm ∈ f32\n"
		if got != want {
			t.Fatalf("%v output mismatch:\nwant %q\ngot  %q", mode, want, got)
		}
	}
}

func TestFormatSortDoesNotMutateDocument(t *testing.T) {
	doc := parseDoc(t, "# [M:Test]\n[C:A]\n  zz ∈ f32\n  aa ∈ f32\n")
	cfg := DefaultConfig()
	cfg.SortStateBy = SortByName
	if _, err := Document(doc, cfg); err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if doc.Entities[0].State[0].Name != "zz" {
		t.Fatal("formatting reordered the document's own state slice")
	}
}

func TestFormatMethodsAsComments(t *testing.T) {
	src := "# [M:Test]\n[C:Model]\n  w ∈ f32[N]@GPU\n  # F:predict(x: f32) → f32 [NN]\n"
	got, err := Source("fmt.shd", src, DefaultConfig())
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	want := "# [M:Test]\n" +
		"\n" +
		"[C:Model]\n" +
		"  w ∈ f32[N]@GPU\n" +
		"\n" +
		"  # Methods:\n" +
		"  # F:predict(x: f32) → f32 [NN]\n"
	if got != want {
		t.Fatalf("methods output mismatch:\nwant %q\ngot  %q", want, got)
	}

	redoc := parseDoc(t, got)
	if len(redoc.Entities[0].Methods) != 1 || redoc.Entities[0].Methods[0].Name != "predict" {
		t.Fatalf("reparse lost the method: %+v", redoc.Entities[0].Methods)
	}
}

func TestFormatSourcePropagatesParseError(t *testing.T) {
	_, err := Source("fmt.shd", "[]", DefaultConfig())
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type %T, want *parser.ParseError", err)
	}
}

func TestFormatNilDocument(t *testing.T) {
	if _, err := Document(nil, DefaultConfig()); err == nil {
		t.Fatal("nil document formatted without error")
	}
}
