package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressIndicator(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressIndicator(&buf, 2)

	p.Start()
	p.Step("Foo")
	p.Step("Bar")
	p.Complete(0)

	output := buf.String()
	for _, want := range []string{"Running transform for 2 subject(s):", "[1/2] Foo", "[2/2] Bar", "✓ Ran 2 subject(s)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestProgressIndicator_Failures(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressIndicator(&buf, 3)
	p.Complete(1)

	if !strings.Contains(buf.String(), "1 of 3 subject(s) failed") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWarning_Display(t *testing.T) {
	var buf bytes.Buffer
	WarnMissingResources("Foo", "/Applications/Foo.app/Contents/Resources").Display(&buf)

	output := buf.String()
	if !strings.HasPrefix(output, "\x1b[33m") {
		t.Error("Expected yellow ANSI color code at start")
	}
	if !strings.HasSuffix(output, "\x1b[0m") {
		t.Error("Expected ANSI reset code at end")
	}
	if !strings.Contains(output, "Warning: Skipping Foo") {
		t.Error("Expected title in output")
	}
	if !strings.Contains(output, "Affected file:\n      1. /Applications/Foo.app/Contents/Resources") {
		t.Error("Expected singular file list in output")
	}
}

func TestWarning_MultipleFilesAndSuggestion(t *testing.T) {
	var buf bytes.Buffer
	Warning{Title: "T", Files: []string{"a", "b"}, Suggestion: "do x"}.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "Affected files:") {
		t.Error("Expected plural file header")
	}
	if !strings.Contains(output, "      2. b") {
		t.Error("Expected numbered second file")
	}
	if !strings.Contains(output, "    Suggestion:\n    do x") {
		t.Error("Expected suggestion block")
	}
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	Table{
		Headers: []string{"run", "size", "values"},
		Rows: [][]string{
			{"r1", "16", "1 2 3 4"},
			{"run-two", "512", "5"},
		},
	}.Render(&buf, false)

	want := "run      size  values\n" +
		"-------  ----  -------\n" +
		"r1       16    1 2 3 4\n" +
		"run-two  512   5\n"
	if buf.String() != want {
		t.Errorf("Render() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestColorEnabled_Buffer(t *testing.T) {
	if ColorEnabled(&bytes.Buffer{}) {
		t.Error("buffers are never terminals")
	}
}
