package tiny

import (
	"fmt"
)

// ErrorKind classifies runtime failures. Assertion failures are the expected
// outcome of a buggy test script; everything else is a runtime error. None
// are recoverable in-language: each unwinds the whole run.
type ErrorKind string

const (
	AssertionFailure    ErrorKind = "AssertionFailure"
	UnboundNameError    ErrorKind = "UnboundNameError"
	KeyNotFoundError    ErrorKind = "KeyNotFoundError"
	MemberNotFoundError ErrorKind = "MemberNotFoundError"
	ArityError          ErrorKind = "ArityError"
	RedefinitionError   ErrorKind = "RedefinitionError"
	StackOverflow       ErrorKind = "StackOverflow"
	TypeMismatch        ErrorKind = "TypeMismatch"
	DivisionByZero      ErrorKind = "DivisionByZero"
	QuotaExceeded       ErrorKind = "QuotaExceeded"
	HostError           ErrorKind = "HostError"
	Canceled            ErrorKind = "Canceled"
)

// StackFrame is one entry of a failure's call trace, innermost first.
type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError is the structured failure surfaced to the host: a kind, a
// message, the active call frames, and a caret code frame when the program
// carried its source text.
type RuntimeError struct {
	Kind      ErrorKind
	Message   string
	CodeFrame string
	Frames    []StackFrame
}

func (re *RuntimeError) Error() string {
	return renderRuntimeError(re)
}

// failAt builds a RuntimeError at pos from the current call stack. The first
// frame is the failure site inside the innermost function; the rest record
// where each active function was called from.
func (exec *Execution) failAt(pos Position, kind ErrorKind, format string, args ...any) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.callee, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			cf := exec.callStack[i]
			frames = append(frames, StackFrame{Function: cf.callee, Pos: cf.pos})
		}
	} else {
		frames = append(frames, StackFrame{Function: "<run>", Pos: pos})
	}

	codeFrame := ""
	if exec.script != nil {
		codeFrame = formatCodeFrame(exec.script.source, pos)
	}
	return &RuntimeError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		CodeFrame: codeFrame,
		Frames:    frames,
	}
}

// loadError reports a malformed program at load time, before any call stack
// exists.
func loadError(source string, pos Position, kind ErrorKind, format string, args ...any) error {
	return &RuntimeError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		CodeFrame: formatCodeFrame(source, pos),
		Frames:    []StackFrame{{Function: "<load>", Pos: pos}},
	}
}
