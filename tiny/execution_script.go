package tiny

import (
	"context"
	"fmt"
)

// Script is a loaded program bound to the engine that loaded it. Loading
// validates declarations once; each Run or Call gets a fresh execution with
// its own environment chain, step count, and call stack.
type Script struct {
	engine     *Engine
	classes    map[string]*Class
	classOrder []string
	source     string
}

// Load binds a parsed program into a Script. Duplicate class names,
// duplicate method names within a class, and duplicate parameter names
// within a method are redefinition errors.
func (e *Engine) Load(program *Program) (*Script, error) {
	if program == nil {
		return nil, fmt.Errorf("tiny: nil program")
	}

	classes := make(map[string]*Class, len(program.Classes))
	order := make([]string, 0, len(program.Classes))
	for _, decl := range program.Classes {
		if _, exists := classes[decl.Name]; exists {
			return nil, loadError(program.Source, decl.Pos(), RedefinitionError, "duplicate class %s", decl.Name)
		}

		cl := newClass(decl.Name)
		for _, m := range decl.Methods {
			seen := make(map[string]struct{}, len(m.Params))
			for _, param := range m.Params {
				if _, dup := seen[param]; dup {
					return nil, loadError(program.Source, m.Pos(), RedefinitionError, "duplicate parameter %s in %s.%s", param, decl.Name, m.Name)
				}
				seen[param] = struct{}{}
			}
			fn := &Function{Name: m.Name, Params: m.Params, Body: m.Body, Class: cl, Pos: m.Pos()}
			if !cl.addMethod(fn) {
				return nil, loadError(program.Source, m.Pos(), RedefinitionError, "duplicate method %s.%s", decl.Name, m.Name)
			}
		}

		classes[decl.Name] = cl
		order = append(order, decl.Name)
	}

	return &Script{engine: e, classes: classes, classOrder: order, source: program.Source}, nil
}

func (s *Script) class(name string) (*Class, bool) {
	cl, ok := s.classes[name]
	return cl, ok
}

// Classes returns the declared class names in declaration order.
func (s *Script) Classes() []string {
	return append([]string(nil), s.classOrder...)
}

// Source returns the program source text, when the program carried one.
func (s *Script) Source() string {
	return s.source
}

// Run invokes the configured entry method, Test.main by default,
// class-qualified with no receiver bound.
func (s *Script) Run(ctx context.Context) error {
	_, err := s.Call(ctx, s.engine.config.EntryClass, s.engine.config.EntryMethod, nil)
	return err
}

// Call invokes className.methodName with no receiver bound, as if the script
// had written ClassName.method(args). It is the host's entry into a loaded
// script.
func (s *Script) Call(ctx context.Context, className, methodName string, args []Value) (Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	exec := s.newExecution(ctx)

	cl, ok := s.classes[className]
	if !ok {
		return NewNull(), exec.failAt(Position{}, UnboundNameError, "undefined class %s", className)
	}
	m, ok := cl.Method(methodName)
	if !ok {
		return NewNull(), exec.failAt(Position{}, MemberNotFoundError, "class %s has no method %q", className, methodName)
	}

	exec.debug("run", "method", methodDisplayName(cl, m, NewNull()), "limits", s.engine.ConfigSummary())
	return exec.callFunction(m, methodDisplayName(cl, m, NewNull()), NewNull(), args, m.Pos)
}

// newExecution builds the per-run state: a root environment holding the
// registered builtins and the program's classes. A class sharing a builtin's
// name shadows it.
func (s *Script) newExecution(ctx context.Context) *Execution {
	root := newEnv(nil)
	for name, builtin := range s.engine.builtins {
		root.Define(name, builtin)
	}
	for _, name := range s.classOrder {
		classVal := NewClass(s.classes[name])
		if !root.Define(name, classVal) {
			root.Assign(name, classVal)
		}
	}

	return &Execution{
		engine:       s.engine,
		script:       s,
		ctx:          ctx,
		quota:        s.engine.config.StepQuota,
		recursionCap: s.engine.config.RecursionLimit,
		callStack:    make([]callFrame, 0, 8),
		root:         root,
		out:          s.engine.config.Output,
		logger:       s.engine.config.Logger,
	}
}
