package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/burdockcascade/tinyscript2/tiny"
)

// Suite is a YAML manifest naming the test programs to run, shared limits,
// and optional per-program entry overrides.
type Suite struct {
	Name     string         `yaml:"name"`
	Limits   SuiteLimits    `yaml:"limits"`
	Programs []SuiteProgram `yaml:"programs"`

	// dir is the manifest's directory; relative program files resolve
	// against it.
	dir string
}

type SuiteLimits struct {
	Recursion int `yaml:"recursion"`
	Steps     int `yaml:"steps"`
}

type SuiteProgram struct {
	File        string `yaml:"file"`
	EntryClass  string `yaml:"entry_class"`
	EntryMethod string `yaml:"entry_method"`
}

func loadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", path, err)
	}
	if len(suite.Programs) == 0 {
		return nil, fmt.Errorf("suite %s lists no programs", path)
	}
	for i, p := range suite.Programs {
		if p.File == "" {
			return nil, fmt.Errorf("suite %s: program %d has no file", path, i+1)
		}
	}
	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	suite.dir = filepath.Dir(path)
	return &suite, nil
}

// programResult is one program's outcome within a run.
type programResult struct {
	Name    string
	Path    string
	Err     error
	Elapsed time.Duration
}

func (r programResult) Passed() bool { return r.Err == nil }

// Status is a short label: pass, the runtime error kind, or error for host
// failures such as unreadable files.
func (r programResult) Status() string {
	if r.Err == nil {
		return "pass"
	}
	var rt *tiny.RuntimeError
	if errors.As(r.Err, &rt) {
		return string(rt.Kind)
	}
	return "error"
}

func runSuite(ctx context.Context, suite *Suite, logger *log.Logger) []programResult {
	results := make([]programResult, 0, len(suite.Programs))
	for _, p := range suite.Programs {
		path := p.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(suite.dir, path)
		}
		cfg := tiny.Config{
			RecursionLimit: suite.Limits.Recursion,
			StepQuota:      suite.Limits.Steps,
			Logger:         logger,
			EntryClass:     p.EntryClass,
			EntryMethod:    p.EntryMethod,
		}
		results = append(results, runProgram(ctx, path, cfg))
	}
	return results
}

func runProgram(ctx context.Context, path string, cfg tiny.Config) (result programResult) {
	start := time.Now()
	result.Name = filepath.Base(path)
	result.Path = path
	defer func() { result.Elapsed = time.Since(start) }()

	f, err := os.Open(path)
	if err != nil {
		result.Err = fmt.Errorf("read program: %w", err)
		return result
	}
	defer f.Close()

	engine, err := tiny.NewEngine(cfg)
	if err != nil {
		result.Err = err
		return result
	}
	script, err := engine.LoadJSON(f)
	if err != nil {
		result.Err = err
		return result
	}
	result.Err = script.Run(ctx)
	return result
}
