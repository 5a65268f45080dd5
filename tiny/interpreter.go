package tiny

import (
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/charmbracelet/log"
)

// Config controls evaluator execution bounds and host integration.
type Config struct {
	// RecursionLimit caps the call stack depth. Zero applies the default;
	// negative is invalid.
	RecursionLimit int
	// StepQuota caps evaluated statements and expressions per run. Zero
	// disables the quota; negative is invalid.
	StepQuota int
	// Output receives print statement output. Nil means os.Stdout.
	Output io.Writer
	// Logger, when set, receives debug traces of calls, returns, and
	// assertion outcomes.
	Logger *log.Logger
	// EntryClass and EntryMethod name the method Run invokes,
	// class-qualified with no receiver. Defaults are Test and main.
	EntryClass  string
	EntryMethod string
}

const (
	defaultRecursionLimit = 256
	defaultEntryClass     = "Test"
	defaultEntryMethod    = "main"
)

// Engine loads tinyscript programs and executes them with deterministic limits.
type Engine struct {
	config   Config
	builtins map[string]Value
}

// NewEngine constructs an Engine with sane defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("tiny: recursion limit cannot be negative")
	}
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("tiny: step quota cannot be negative")
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.EntryClass == "" {
		cfg.EntryClass = defaultEntryClass
	}
	if cfg.EntryMethod == "" {
		cfg.EntryMethod = defaultEntryMethod
	}

	return &Engine{
		config:   cfg,
		builtins: make(map[string]Value),
	}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// RegisterBuiltin registers a callable global available to scripts. Program
// classes with the same name shadow it.
func (e *Engine) RegisterBuiltin(name string, fn BuiltinFunc) {
	e.builtins[name] = NewBuiltin(name, fn)
}

// Builtins returns a copy of the registered builtin map.
func (e *Engine) Builtins() map[string]Value {
	out := make(map[string]Value, len(e.builtins))
	maps.Copy(out, e.builtins)
	return out
}

// ConfigSummary provides a human-readable description of the engine limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("recursion=%d steps=%d entry=%s.%s", e.config.RecursionLimit, e.config.StepQuota, e.config.EntryClass, e.config.EntryMethod)
}
