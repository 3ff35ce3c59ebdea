package reader

import (
	"strings"
	"testing"
)

func drain(r *Reader) string {
	var sb strings.Builder
	for {
		c, ok := r.Next()
		if !ok {
			break
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func TestSplicedSourceReadsFirst(t *testing.T) {
	r := New()
	if err := r.Append("abc", "template"); err != nil {
		t.Fatal(err)
	}
	c, _ := r.Next()
	if c != 'a' {
		t.Fatalf("Next = %q, want 'a'", c)
	}
	// Splice while mid-source: the spliced text is read before "bc".
	if err := r.Append("XY", "'macro' result"); err != nil {
		t.Fatal(err)
	}
	if got := drain(r); got != "XYbc" {
		t.Errorf("drained %q, want %q", got, "XYbc")
	}
}

func TestLabelAndLineTracking(t *testing.T) {
	r := New()
	r.Append("one\ntwo", "main.lml")
	if r.Label() != "main.lml" || r.Line() != 1 {
		t.Fatalf("label/line = %q/%d", r.Label(), r.Line())
	}
	for i := 0; i < 4; i++ {
		r.Next()
	}
	if r.Line() != 2 {
		t.Errorf("line after newline = %d, want 2", r.Line())
	}
	r.Append("x", "'if' macro result")
	if r.Label() != "'if' macro result" {
		t.Errorf("label = %q", r.Label())
	}
	r.Next()
	if r.Label() != "main.lml" {
		t.Errorf("label after splice drained = %q", r.Label())
	}
}

func TestCyclicImportDetected(t *testing.T) {
	r := New()
	if err := r.AppendFile("<@import a.lml/>", "a.lml"); err != nil {
		t.Fatal(err)
	}
	if err := r.AppendFile("anything", "a.lml"); err == nil {
		t.Error("expected cyclic import error")
	}
	// A different file is fine.
	if err := r.AppendFile("ok", "b.lml"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	// Macro splices never trip the cycle check.
	if err := r.Append("ok", "a.lml"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDepthGuard(t *testing.T) {
	r := New()
	r.SetMaxDepth(3)
	for i := 0; i < 3; i++ {
		if err := r.Append("pending", "src"); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := r.Append("overflow", "src"); err == nil {
		t.Error("expected depth error")
	}
}

func TestFileLabelSkipsMacroSources(t *testing.T) {
	r := New()
	r.AppendFile("body", "dir/main.lml")
	r.Append("spliced", "'replace' macro result")
	if got := r.FileLabel(); got != "dir/main.lml" {
		t.Errorf("FileLabel = %q", got)
	}
}
