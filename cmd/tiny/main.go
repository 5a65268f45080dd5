package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/burdockcascade/tinyscript2/tiny"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps assertion failures to 1 and every other failure to 2, so a
// caller can tell a failing test script from a broken run.
func exitCode(err error) int {
	var rt *tiny.RuntimeError
	if errors.As(err, &rt) && rt.Kind == tiny.AssertionFailure {
		return 1
	}
	return 2
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "suite":
		return suiteCommand(args[2:])
	case "browse":
		return browseCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	entry := fs.String("entry", "", "entry point as ClassName.method (default Test.main)")
	steps := fs.Int("steps", 0, "step quota, 0 disables")
	recursion := fs.Int("recursion", 0, "recursion limit, 0 applies the default")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return errors.New("tiny run: program path required")
	}

	entryClass, entryMethod, err := splitEntry(*entry)
	if err != nil {
		return err
	}
	cfg := tiny.Config{
		RecursionLimit: *recursion,
		StepQuota:      *steps,
		Logger:         newLogger(*verbose),
		EntryClass:     entryClass,
		EntryMethod:    entryMethod,
	}

	results := make([]programResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, runProgram(context.Background(), path, cfg))
	}
	for _, r := range results {
		fmt.Println(renderResultLine(r))
		if r.Err != nil {
			fmt.Println(indentLines(r.Err.Error(), "    "))
		}
	}
	return worstFailure(results)
}

func suiteCommand(args []string) error {
	fs := flag.NewFlagSet("suite", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("tiny suite: manifest path required")
	}

	suite, err := loadSuite(fs.Arg(0))
	if err != nil {
		return err
	}
	results := runSuite(context.Background(), suite, newLogger(*verbose))

	for _, r := range results {
		fmt.Println(renderResultLine(r))
		if r.Err != nil {
			fmt.Println(indentLines(r.Err.Error(), "    "))
		}
	}
	fmt.Println(renderSummaryLine(suite.Name, results))
	return worstFailure(results)
}

func browseCommand(args []string) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("tiny browse: manifest path required")
	}

	suite, err := loadSuite(fs.Arg(0))
	if err != nil {
		return err
	}
	results := runSuite(context.Background(), suite, newLogger(*verbose))
	if err := browseResults(suite.Name, results); err != nil {
		return err
	}
	return worstFailure(results)
}

// worstFailure returns the failure that should drive the exit code: any
// broken run outranks an assertion failure, which outranks success.
func worstFailure(results []programResult) error {
	var assertion error
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		var rt *tiny.RuntimeError
		if errors.As(r.Err, &rt) && rt.Kind == tiny.AssertionFailure {
			if assertion == nil {
				assertion = r.Err
			}
			continue
		}
		return r.Err
	}
	return assertion
}

func splitEntry(entry string) (string, string, error) {
	if entry == "" {
		return "", "", nil
	}
	class, method, ok := strings.Cut(entry, ".")
	if !ok || class == "" || method == "" {
		return "", "", fmt.Errorf("tiny: invalid entry %q, want ClassName.method", entry)
	}
	return class, method, nil
}

func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] <path>\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [flags] <program.json>...")
	fmt.Fprintln(os.Stderr, "    run test programs; flags: -entry Class.method, -steps N, -recursion N, -v")
	fmt.Fprintln(os.Stderr, "  suite [flags] <suite.yaml>")
	fmt.Fprintln(os.Stderr, "    run every program in a suite manifest")
	fmt.Fprintln(os.Stderr, "  browse [flags] <suite.yaml>")
	fmt.Fprintln(os.Stderr, "    run a suite and browse the results interactively")
	fmt.Fprintln(os.Stderr, "  help")
	fmt.Fprintln(os.Stderr, "    show this message")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
