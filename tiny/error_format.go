package tiny

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	errorFrameHead = 8
	errorFrameTail = 8
)

// renderRuntimeError produces the host-facing rendering: kind and message,
// the code frame, then the call trace with deep recursion elided in the
// middle.
func renderRuntimeError(re *RuntimeError) string {
	var b strings.Builder
	if re.Kind != "" {
		b.WriteString(string(re.Kind))
		b.WriteString(": ")
	}
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}

	frames := re.Frames
	if len(frames) <= errorFrameHead+errorFrameTail {
		for _, frame := range frames {
			writeFrame(&b, frame)
		}
		return b.String()
	}

	for _, frame := range frames[:errorFrameHead] {
		writeFrame(&b, frame)
	}
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", len(frames)-(errorFrameHead+errorFrameTail))
	for _, frame := range frames[len(frames)-errorFrameTail:] {
		writeFrame(&b, frame)
	}
	return b.String()
}

func writeFrame(b *strings.Builder, frame StackFrame) {
	switch {
	case frame.Pos.Line > 0 && frame.Pos.Column > 0:
		fmt.Fprintf(b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
	case frame.Pos.Line > 0:
		fmt.Fprintf(b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
	default:
		fmt.Fprintf(b, "\n  at %s", frame.Function)
	}
}

// formatCodeFrame points a caret at pos within the script source. An empty
// string means no source was supplied or the position is out of range.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}

// formatSnapshot renders a value for diagnostics, quoting strings so an
// empty string stays visible.
func formatSnapshot(v Value) string {
	if v.Kind() == KindString {
		return strconv.Quote(v.String())
	}
	return v.String()
}
