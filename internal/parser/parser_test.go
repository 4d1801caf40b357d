package parser_test

import (
	"errors"
	"testing"

	"shorthand/internal/ast"
	"shorthand/internal/diag"
	"shorthand/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, _, err := parser.ParseString("test.shd", src, parser.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func parseFail(t *testing.T, src string) *parser.ParseError {
	t.Helper()
	doc, _, err := parser.ParseString("test.shd", src, parser.Options{})
	if err == nil {
		t.Fatalf("parse succeeded (doc=%+v), want hard error", doc)
	}
	if doc != nil {
		t.Fatal("hard failure still produced a document")
	}
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type %T, want *ParseError", err)
	}
	return pe
}

func countCode(doc *ast.Document, code diag.Code) int {
	n := 0
	for _, d := range doc.Diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestParseMinimalDocument(t *testing.T) {
	doc := mustParse(t, "# [M:Test] [Role:Core]\n")
	if doc.Metadata.ModuleName != "Test" {
		t.Errorf("module name = %q, want Test", doc.Metadata.ModuleName)
	}
	if doc.Metadata.Role != "Core" {
		t.Errorf("role = %q, want Core", doc.Metadata.Role)
	}
	if len(doc.Entities) != 0 || len(doc.Functions) != 0 {
		t.Errorf("unexpected content: %d entities, %d functions", len(doc.Entities), len(doc.Functions))
	}
}

func TestParseEntityWithState(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\n\n[C:VHE]\n  pos ∈ f32[N]@GPU\n  vel ∈ f32[N]@GPU\n")
	if doc.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics: %v", doc.Diagnostics)
	}
	if len(doc.Entities) != 1 {
		t.Fatalf("entity count = %d, want 1", len(doc.Entities))
	}
	ent := doc.Entities[0]
	if ent.Name != "VHE" {
		t.Errorf("entity name = %q", ent.Name)
	}
	if len(ent.State) != 2 {
		t.Fatalf("state count = %d, want 2", len(ent.State))
	}
	pos := ent.State[0]
	if pos.Name != "pos" {
		t.Errorf("state name = %q", pos.Name)
	}
	want := ast.TypeSpec{Base: "f32", Shape: []string{"N"}, Placement: "GPU"}
	if !pos.Type.Equal(want) {
		t.Errorf("state type = %s, want %s", pos.Type, want)
	}
}

func TestParseDependencies(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\n[C:VHE]\n  ◊ [Ref:Substrate]\n  <> [Ref:Other]\n")
	ent := doc.Entities[0]
	if len(ent.Dependencies) != 2 {
		t.Fatalf("dependency count = %d, want 2", len(ent.Dependencies))
	}
	if ent.Dependencies[0].Name != "Substrate" || ent.Dependencies[1].Name != "Other" {
		t.Errorf("dependency names = %q, %q", ent.Dependencies[0].Name, ent.Dependencies[1].Name)
	}
}

func TestParseFunctionLine(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\nF:step(state: f32[N], dt: f32) → f32[N] [Sim:Euler] [O(N)]\n")
	if len(doc.Functions) != 1 {
		t.Fatalf("function count = %d, want 1", len(doc.Functions))
	}
	fn := doc.Functions[0]
	if fn.Name != "step" {
		t.Errorf("name = %q", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("param count = %d, want 2", len(fn.Params))
	}
	if fn.Params[0].Name != "state" || fn.Params[0].Type.Base != "f32" {
		t.Errorf("param 0 = %+v", fn.Params[0])
	}
	if fn.Params[1].Name != "dt" {
		t.Errorf("param 1 = %+v", fn.Params[1])
	}
	if fn.Return.Base != "f32" || len(fn.Return.Shape) != 1 {
		t.Errorf("return = %s", fn.Return)
	}
	if len(fn.Tags) != 2 {
		t.Fatalf("tag count = %d, want 2", len(fn.Tags))
	}
	if fn.Tags[0].Base != "Sim" || fn.Tags[0].Qualifiers[0] != "Euler" {
		t.Errorf("tag 0 = %+v", fn.Tags[0])
	}
	if c, ok := fn.Complexity(); !ok || c != "O(N)" {
		t.Errorf("complexity = %q, %v", c, ok)
	}
}

func TestParseFullDocument(t *testing.T) {
	src := "# [M:Physics] [Role:Sim]\n" +
		"\n" +
		"[C:World]\n" +
		"  ◊ [Ref:Clock]\n" +
		"  bodies ∈ f32[N,3]@GPU\n" +
		"\n" +
		"[C:Clock]\n" +
		"  t ∈ f32\n" +
		"\n" +
		"F:tick(w: World) → World [Sim]\n" +
		"F:reset() → None\n"
	doc := mustParse(t, src)
	if doc.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics: %v", doc.Diagnostics)
	}
	if len(doc.Entities) != 2 {
		t.Fatalf("entity count = %d, want 2", len(doc.Entities))
	}
	if len(doc.Functions) != 2 {
		t.Fatalf("function count = %d, want 2", len(doc.Functions))
	}
	if _, ok := doc.Entity("Clock"); !ok {
		t.Error("entity Clock not found")
	}
	if doc.Functions[1].Return.Base != "None" {
		t.Errorf("reset return = %s", doc.Functions[1].Return)
	}
}

func TestMissingMetadataFails(t *testing.T) {
	for _, src := range []string{"", "\n\n", "x ∈ f32\n", "[C:VHE]\n  x ∈ f32\n", "# no marker here\n"} {
		pe := parseFail(t, src)
		if pe.Code != diag.SynMissingMetadata {
			t.Errorf("%q: code = %v, want SynMissingMetadata", src, pe.Code)
		}
	}
}

func TestEmptyTagFails(t *testing.T) {
	pe := parseFail(t, "[]")
	if pe.Code != diag.SynEmptyTag {
		t.Errorf("code = %v, want SynEmptyTag", pe.Code)
	}
	if pe.Msg != "Empty tag" {
		t.Errorf("msg = %q", pe.Msg)
	}
	if pe.Line != 1 || pe.Col != 1 {
		t.Errorf("position = %d:%d, want 1:1", pe.Line, pe.Col)
	}
}

func TestUnterminatedTagFails(t *testing.T) {
	pe := parseFail(t, "[Lin:MatMul")
	if pe.Code != diag.SynUnterminatedTag {
		t.Errorf("code = %v, want SynUnterminatedTag", pe.Code)
	}
	if pe.Msg != "Unterminated tag" {
		t.Errorf("msg = %q", pe.Msg)
	}
}

func TestUnterminatedEntityHeaderFails(t *testing.T) {
	pe := parseFail(t, "# [M:Test]\n[C:VHE\n")
	if pe.Code != diag.SynUnterminatedTag {
		t.Errorf("code = %v, want SynUnterminatedTag", pe.Code)
	}
	if pe.Line != 2 {
		t.Errorf("line = %d, want 2", pe.Line)
	}
}

func TestBareStateLineIsDiscardedSilently(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\npos ∈ f32[N]@GPU\n")
	if doc.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics: %v", doc.Diagnostics)
	}
	if len(doc.Entities) != 0 {
		t.Errorf("entity count = %d, want 0", len(doc.Entities))
	}
}

func TestUnknownTypeWarns(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\n[C:A]\n  x ∈ ?\n")
	if countCode(doc, diag.SynUnknownType) != 1 {
		t.Fatalf("unknown type warnings = %d, want 1", countCode(doc, diag.SynUnknownType))
	}
	st := doc.Entities[0].State
	if len(st) != 1 || !st[0].Type.IsUnknown() {
		t.Errorf("state = %+v, want one Unknown", st)
	}
}

func TestUnrecognizedBodyLineWarns(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\n[C:A]\n  F:method() → f32\n  x ∈ f32\n")
	if countCode(doc, diag.SynUnrecognizedLine) != 1 {
		t.Fatalf("unrecognized warnings = %d, want 1", countCode(doc, diag.SynUnrecognizedLine))
	}
	if len(doc.Entities[0].State) != 1 {
		t.Error("state line after the bad line was lost")
	}
}

func TestDiagnosticsGoldenRendering(t *testing.T) {
	src := "# [M:Test]\n[C:A]\n  F:broken line\n  x ∈ f32 extra\n"
	doc, fs, err := parser.ParseString("test.shd", src, parser.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	expected := "warning SYN2006 test.shd:3:3 unrecognized line in entity block\n" +
		"warning SYN2007 test.shd:4:11 unexpected trailing content"
	if got := diag.FormatGoldenDiagnostics(doc.Diagnostics, fs, true); got != expected {
		t.Fatalf("golden diagnostics mismatch:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBlankLineDoesNotEndBlock(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\n[C:A]\n  x ∈ f32\n\n  y ∈ f32\n")
	if len(doc.Entities) != 1 {
		t.Fatalf("entity count = %d, want 1", len(doc.Entities))
	}
	if len(doc.Entities[0].State) != 2 {
		t.Errorf("state count = %d, want 2", len(doc.Entities[0].State))
	}
}

func TestTrailingContentWarns(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\n[C:A] junk\n  x ∈ f32\n")
	if countCode(doc, diag.SynTrailingContent) != 1 {
		t.Fatalf("trailing warnings = %d, want 1", countCode(doc, diag.SynTrailingContent))
	}
	if len(doc.Entities) != 1 || doc.Entities[0].Name != "A" {
		t.Error("entity lost to trailing junk")
	}
}

func TestFunctionWithoutArrowWarns(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\nF:poke(x: i32)\n")
	if countCode(doc, diag.SynMissingReturn) != 1 {
		t.Fatalf("missing return warnings = %d, want 1", countCode(doc, diag.SynMissingReturn))
	}
	if len(doc.Functions) != 1 || !doc.Functions[0].Return.IsUnknown() {
		t.Errorf("functions = %+v", doc.Functions)
	}
}

func TestMethodsFromComments(t *testing.T) {
	src := "# [M:Test]\n" +
		"[C:Model]\n" +
		"  weights ∈ f32[N,D]@GPU\n" +
		"\n" +
		"  # Methods:\n" +
		"  # F:predict(x: f32[D]) → f32 [NN:∇:L2] [O(N*D)]\n" +
		"  # plain note\n"
	doc := mustParse(t, src)
	if doc.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics: %v", doc.Diagnostics)
	}
	ent := doc.Entities[0]
	if len(ent.Methods) != 1 {
		t.Fatalf("method count = %d, want 1", len(ent.Methods))
	}
	m := ent.Methods[0]
	if m.Name != "predict" || len(m.Params) != 1 || len(m.Tags) != 2 {
		t.Errorf("method = %+v", m)
	}
	if c, ok := m.Complexity(); !ok || c != "O(N*D)" {
		t.Errorf("method complexity = %q, %v", c, ok)
	}
}

func TestBrokenMethodCommentStaysComment(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\n[C:A]\n  x ∈ f32\n  # F:bad(\n")
	if doc.HasDiagnostics() {
		t.Fatalf("comment parse leaked diagnostics: %v", doc.Diagnostics)
	}
	if len(doc.Entities[0].Methods) != 0 {
		t.Errorf("broken comment produced a method: %+v", doc.Entities[0].Methods)
	}
}

func TestReporterReceivesDiagnostics(t *testing.T) {
	bag := diag.NewBag(10)
	_, _, err := parser.ParseString("test.shd", "# [M:Test]\n[C:A]\n  x ∈ ?\n", parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if bag.Len() != 1 {
		t.Fatalf("reporter received %d diagnostics, want 1", bag.Len())
	}
}

func TestParseErrorString(t *testing.T) {
	pe := parseFail(t, "[]")
	if got := pe.Error(); got != "line 1:1: Empty tag" {
		t.Errorf("Error() = %q", got)
	}
}
