package driver_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"shorthand/internal/driver"
	"shorthand/internal/format"
)

const unformattedSrc = "# [M:Demo]\n\n[C:Store]\n    items in f32[N]\n\nF:add(x: f32) -> f32 [O(1)]\n"

func formatPaths(t *testing.T, paths []string, opts driver.FormatOptions) []driver.FormatResult {
	t.Helper()
	results, err := driver.FormatPaths(context.Background(), paths, opts)
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	return results
}

func TestFormatCheckLeavesFileAlone(t *testing.T) {
	path := writeSource(t, t.TempDir(), "demo.shd", unformattedSrc)

	results := formatPaths(t, []string{path}, driver.FormatOptions{
		Config: format.DefaultConfig(),
		Check:  true,
	})
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	res := results[0]
	if res.Err != nil {
		t.Fatalf("result error: %v", res.Err)
	}
	if !res.Changed {
		t.Error("Changed = false for an unformatted file")
	}
	if string(res.Formatted) != canonicalSrc {
		t.Errorf("Formatted =\n%q\nwant\n%q", res.Formatted, canonicalSrc)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != unformattedSrc {
		t.Error("check mode modified the file")
	}
}

func TestFormatWriteRewritesInPlace(t *testing.T) {
	path := writeSource(t, t.TempDir(), "demo.shd", unformattedSrc)

	results := formatPaths(t, []string{path}, driver.FormatOptions{
		Config: format.DefaultConfig(),
		Write:  true,
	})
	if results[0].Err != nil {
		t.Fatalf("result error: %v", results[0].Err)
	}
	if !results[0].Changed {
		t.Error("Changed = false on first write")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != canonicalSrc {
		t.Errorf("on disk =\n%q\nwant\n%q", data, canonicalSrc)
	}

	// A second run must be a no-op.
	again := formatPaths(t, []string{path}, driver.FormatOptions{
		Config: format.DefaultConfig(),
		Write:  true,
	})
	if again[0].Changed {
		t.Error("second write run still reports changes")
	}
}

func TestFormatStdoutModeTouchesNothing(t *testing.T) {
	path := writeSource(t, t.TempDir(), "demo.shd", unformattedSrc)

	results := formatPaths(t, []string{path}, driver.FormatOptions{
		Config: format.DefaultConfig(),
	})
	res := results[0]
	if string(res.Formatted) != canonicalSrc {
		t.Errorf("Formatted = %q", res.Formatted)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != unformattedSrc {
		t.Error("stdout mode modified the file")
	}
}

func TestFormatDiff(t *testing.T) {
	path := writeSource(t, t.TempDir(), "demo.shd", unformattedSrc)

	results := formatPaths(t, []string{path}, driver.FormatOptions{
		Config: format.DefaultConfig(),
		Check:  true,
		Diff:   true,
	})
	diff := results[0].Diff
	if diff == "" {
		t.Fatal("empty diff for a changed file")
	}
	for _, want := range []string{
		"--- " + path + " (original)",
		"+++ " + path + " (formatted)",
		"- 4:     items in f32[N]",
		"+ 4:   items ∈ f32[N]",
		"- 6: F:add(x: f32) -> f32 [O(1)]",
		"+ 6: F:add(x: f32) → f32 [O(1)]",
	} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestFormatVerify(t *testing.T) {
	path := writeSource(t, t.TempDir(), "demo.shd", unformattedSrc)

	results := formatPaths(t, []string{path}, driver.FormatOptions{
		Config: format.DefaultConfig(),
		Verify: true,
	})
	if results[0].Err != nil {
		t.Errorf("verify failed: %v", results[0].Err)
	}
}

func TestFormatParseErrorFails(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.shd", "[]\n")

	results := formatPaths(t, []string{path}, driver.FormatOptions{
		Config: format.DefaultConfig(),
	})
	if results[0].Err == nil {
		t.Error("expected error for unparseable file")
	}
	if results[0].Formatted != nil {
		t.Error("Formatted should be empty on parse failure")
	}
}

func TestFormatNoSourceFiles(t *testing.T) {
	_, err := driver.FormatPaths(context.Background(), []string{t.TempDir()}, driver.FormatOptions{
		Config: format.DefaultConfig(),
	})
	if err == nil {
		t.Fatal("expected error for an empty directory")
	}
	if !strings.Contains(err.Error(), "no source files") {
		t.Errorf("err = %v", err)
	}
}

func TestDiffLines(t *testing.T) {
	if got := driver.DiffLines("x.shd", []byte("same\n"), []byte("same\n")); got != "" {
		t.Errorf("diff of identical content = %q", got)
	}

	got := driver.DiffLines("x.shd", []byte("a\nb\n"), []byte("a\nc\nd\n"))
	for _, want := range []string{
		"--- x.shd (original)\n",
		"+++ x.shd (formatted)\n",
		"- 2: b\n",
		"+ 2: c\n",
		"+ 3: d\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("diff missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "- 1:") || strings.Contains(got, "+ 1:") {
		t.Errorf("diff flagged identical first line:\n%s", got)
	}
}
