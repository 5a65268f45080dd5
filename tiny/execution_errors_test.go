package tiny

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorRenderingShortTrace(t *testing.T) {
	re := &RuntimeError{
		Kind:    TypeMismatch,
		Message: "cannot negate string",
		Frames: []StackFrame{
			{Function: "Test#inner", Pos: Position{Line: 3, Column: 7}},
			{Function: "Test.main", Pos: Position{Line: 9, Column: 1}},
		},
	}

	want := "TypeMismatch: cannot negate string\n  at Test#inner (3:7)\n  at Test.main (9:1)"
	if got := re.Error(); got != want {
		t.Fatalf("rendering =\n%s\nwant\n%s", got, want)
	}
}

func TestErrorRenderingElidesDeepTraces(t *testing.T) {
	frames := make([]StackFrame, 20)
	for i := range frames {
		frames[i] = StackFrame{Function: fmt.Sprintf("Deep.down%d", i), Pos: Position{Line: i + 1, Column: 1}}
	}
	re := &RuntimeError{Kind: StackOverflow, Message: "recursion depth exceeded (limit 20)", Frames: frames}

	got := re.Error()
	if !strings.Contains(got, "... 4 frames omitted ...") {
		t.Fatalf("rendering should elide 4 middle frames:\n%s", got)
	}
	if !strings.Contains(got, "at Deep.down7") || !strings.Contains(got, "at Deep.down12") {
		t.Fatalf("head and tail frames must survive elision:\n%s", got)
	}
	if strings.Contains(got, "at Deep.down9 ") || strings.Contains(got, "at Deep.down9\n") {
		t.Fatalf("middle frame should be elided:\n%s", got)
	}
}

func TestErrorRenderingBoundaryKeepsAllFrames(t *testing.T) {
	frames := make([]StackFrame, errorFrameHead+errorFrameTail)
	for i := range frames {
		frames[i] = StackFrame{Function: fmt.Sprintf("f%d", i)}
	}
	re := &RuntimeError{Kind: StackOverflow, Message: "x", Frames: frames}

	if strings.Contains(re.Error(), "omitted") {
		t.Fatalf("exactly head+tail frames must not elide:\n%s", re.Error())
	}
}

func TestFrameRenderingForms(t *testing.T) {
	cases := []struct {
		frame StackFrame
		want  string
	}{
		{StackFrame{Function: "Test.main", Pos: Position{Line: 3, Column: 7}}, "\n  at Test.main (3:7)"},
		{StackFrame{Function: "Test.main", Pos: Position{Line: 3}}, "\n  at Test.main (line 3)"},
		{StackFrame{Function: "<run>"}, "\n  at <run>"},
	}
	for _, tc := range cases {
		var b strings.Builder
		writeFrame(&b, tc.frame)
		if b.String() != tc.want {
			t.Fatalf("frame = %q, want %q", b.String(), tc.want)
		}
	}
}

func TestCodeFramePointsCaretAtColumn(t *testing.T) {
	source := "class Test:\n    var x = 1"
	got := formatCodeFrame(source, Position{Line: 2, Column: 5})

	want := "  --> line 2, column 5\n 2 | " + "    var x = 1" + "\n   |     ^"
	if got != want {
		t.Fatalf("code frame =\n%q\nwant\n%q", got, want)
	}
}

func TestCodeFrameClampsColumn(t *testing.T) {
	got := formatCodeFrame("ab", Position{Line: 1, Column: 99})
	if !strings.Contains(got, "column 3") {
		t.Fatalf("column must clamp to line end + 1:\n%s", got)
	}
	if !strings.HasSuffix(got, "  ^") {
		t.Fatalf("caret must sit just past the line:\n%q", got)
	}
}

func TestCodeFrameEmptyWhenOutOfRange(t *testing.T) {
	if got := formatCodeFrame("one line", Position{Line: 5, Column: 1}); got != "" {
		t.Fatalf("line past the end must yield no frame, got %q", got)
	}
	if got := formatCodeFrame("", Position{Line: 1, Column: 1}); got != "" {
		t.Fatalf("missing source must yield no frame, got %q", got)
	}
	if got := formatCodeFrame("x", Position{}); got != "" {
		t.Fatalf("zero position must yield no frame, got %q", got)
	}
}

func TestSnapshotQuotesStrings(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{NewString("hi"), `"hi"`},
		{NewString(""), `""`},
		{NewInt(42), "42"},
		{NewNull(), "null"},
		{NewBool(false), "false"},
	}
	for _, tc := range cases {
		if got := formatSnapshot(tc.value); got != tc.want {
			t.Fatalf("snapshot = %q, want %q", got, tc.want)
		}
	}
}

func TestFailureCarriesCodeFrameFromProgramSource(t *testing.T) {
	// Positions normally come from the decoded JSON form; the in-package
	// literal stands in for it here.
	source := "class Test:\n  main():\n    assert false"
	program := &Program{
		Source: source,
		Classes: []*ClassDecl{
			{Name: "Test", Methods: []*FunctionDecl{
				{Name: "main", Body: []Statement{
					&AssertStmt{
						Cond:     &BoolLiteral{Value: false, position: Position{Line: 3, Column: 5}},
						Source:   "false",
						position: Position{Line: 3, Column: 5},
					},
				}},
			}},
		},
	}

	_, err := callMethod(t, program, "Test", "main")
	re := wantKind(t, err, AssertionFailure)
	if !strings.Contains(re.CodeFrame, "--> line 3, column 5") {
		t.Fatalf("code frame = %q", re.CodeFrame)
	}
	if !strings.Contains(err.Error(), "assert false") {
		t.Fatalf("rendered error should quote the source line:\n%s", err.Error())
	}
	if !strings.Contains(err.Error(), "at Test.main (3:5)") {
		t.Fatalf("rendered error should carry the failing frame:\n%s", err.Error())
	}
}
