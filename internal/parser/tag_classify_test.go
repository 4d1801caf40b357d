package parser_test

import (
	"testing"

	"shorthand/internal/ast"
	"shorthand/internal/diag"
	"shorthand/internal/parser"
)

// tagOf parses a single function line carrying the given tag text and
// returns the resulting tag.
func tagOf(t *testing.T, tagText string, opts parser.Options) ast.Tag {
	t.Helper()
	src := "# [M:Test]\nF:f(x: f32) → f32 " + tagText + "\n"
	doc, _, err := parser.ParseString("test.shd", src, opts)
	if err != nil {
		t.Fatalf("parse %q failed: %v", tagText, err)
	}
	if len(doc.Functions) != 1 || len(doc.Functions[0].Tags) != 1 {
		t.Fatalf("parse %q: no single tag (functions=%d)", tagText, len(doc.Functions))
	}
	return doc.Functions[0].Tags[0]
}

func TestTagClassification(t *testing.T) {
	tests := []struct {
		text string
		kind ast.TagKind
		base string
		qual []string
	}{
		{"[O(N*D)]", ast.TagComplexity, "O(N*D)", nil},
		{"[O(N log N)]", ast.TagComplexity, "O(N log N)", nil},
		{"[O(N):ignored]", ast.TagComplexity, "O(N)", nil},
		{"[GET/users/{id}]", ast.TagHTTPRoute, "GET/users/{id}", nil},
		{"[POST/items:batch]", ast.TagHTTPRoute, "POST/items:batch", nil},
		{"[Prop]", ast.TagDecorator, "Prop", nil},
		{"[Cached:TTL:60]", ast.TagDecorator, "Cached", []string{"TTL", "60"}},
		{"[RateLimit:100:Per:Minute]", ast.TagDecorator, "RateLimit", []string{"100", "Per", "Minute"}},
		{"[Lin:MatMul]", ast.TagOperation, "Lin", []string{"MatMul"}},
		{"[NN:∇:Lin:Softmax]", ast.TagOperation, "NN", []string{"∇", "Lin", "Softmax"}},
		{"[IO]", ast.TagOperation, "IO", nil},
		{"[Memo]", ast.TagOperation, "Memo", nil},
	}
	for _, tt := range tests {
		tag := tagOf(t, tt.text, parser.Options{})
		if tag.Kind != tt.kind {
			t.Errorf("%s: kind = %v, want %v", tt.text, tag.Kind, tt.kind)
			continue
		}
		if tag.Base != tt.base {
			t.Errorf("%s: base = %q, want %q", tt.text, tag.Base, tt.base)
		}
		if len(tag.Qualifiers) != len(tt.qual) {
			t.Errorf("%s: qualifiers = %v, want %v", tt.text, tag.Qualifiers, tt.qual)
			continue
		}
		for i := range tt.qual {
			if tag.Qualifiers[i] != tt.qual[i] {
				t.Errorf("%s: qualifier %d = %q, want %q", tt.text, i, tag.Qualifiers[i], tt.qual[i])
			}
		}
	}
}

func TestHTTPRouteNeedsAdjacentSlash(t *testing.T) {
	tag := tagOf(t, "[GET /users]", parser.Options{})
	if tag.Kind != ast.TagOperation {
		t.Errorf("kind = %v, want TagOperation (space breaks the route form)", tag.Kind)
	}
	if tag.Base != "GET /users" {
		t.Errorf("base = %q", tag.Base)
	}
}

func TestHTTPRouteFields(t *testing.T) {
	tag := tagOf(t, "[DELETE/sessions/{id}]", parser.Options{})
	if tag.HTTPMethod != "DELETE" || tag.HTTPPath != "/sessions/{id}" {
		t.Errorf("route = %q %q", tag.HTTPMethod, tag.HTTPPath)
	}
}

func TestExtraDecoratorsExtendVocabulary(t *testing.T) {
	opts := parser.Options{ExtraDecorators: []string{"Memo"}}
	tag := tagOf(t, "[Memo:64]", opts)
	if tag.Kind != ast.TagDecorator {
		t.Errorf("kind = %v, want TagDecorator", tag.Kind)
	}
	if len(tag.Qualifiers) != 1 || tag.Qualifiers[0] != "64" {
		t.Errorf("qualifiers = %v", tag.Qualifiers)
	}
}

func TestMalformedComplexityFails(t *testing.T) {
	for _, text := range []string{"[O(]", "[O(N]", "[O()]", "[O(N))]"} {
		pe := parseFail(t, "# [M:Test]\nF:f(x: f32) → f32 "+text+"\n")
		if pe.Code != diag.SynInvalidTag {
			t.Errorf("%s: code = %v, want SynInvalidTag", text, pe.Code)
		}
	}
	pe := parseFail(t, "# [M:Test]\nF:f(x: f32) → f32 [O(]\n")
	if pe.Msg != "Invalid complexity notation: O(" {
		t.Errorf("msg = %q", pe.Msg)
	}
}

func TestCustomNeverComesFromText(t *testing.T) {
	// the decorator downgrade exists only for direct construction;
	// parsed text lands on operation instead
	tag := tagOf(t, "[NotInVocab:x]", parser.Options{})
	if tag.Kind == ast.TagCustom {
		t.Error("parser produced a TagCustom")
	}
	if tag.Kind != ast.TagOperation {
		t.Errorf("kind = %v, want TagOperation", tag.Kind)
	}
}

func TestStrayTopLevelTagWarns(t *testing.T) {
	doc := mustParse(t, "# [M:Test]\n[Lin:MatMul]\n")
	if countCode(doc, diag.SynUnrecognizedLine) != 1 {
		t.Fatalf("warnings = %d, want 1", countCode(doc, diag.SynUnrecognizedLine))
	}
}

func TestStrayTopLevelTagStillValidated(t *testing.T) {
	pe := parseFail(t, "# [M:Test]\n[O(]\n")
	if pe.Code != diag.SynInvalidTag {
		t.Errorf("code = %v, want SynInvalidTag", pe.Code)
	}
}
