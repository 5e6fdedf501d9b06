package conformance

import (
	"blockscope/ast"
	"blockscope/eval"
	"blockscope/program"
	"blockscope/trace"
	"blockscope/types"
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Output     []string
	Error      error
}

// Runner executes conformance tests
type Runner struct {
	tracer *trace.Tracer
}

// NewRunner creates a new test runner
func NewRunner() *Runner {
	return &Runner{}
}

// NewRunnerWithTracer creates a runner that traces every program it runs
func NewRunnerWithTracer(tracer *trace.Tracer) *Runner {
	return &Runner{tracer: tracer}
}

// depthProbe tracks frame pairing and the deepest stack reached
type depthProbe struct {
	eval.NopObserver
	enters int
	exits  int
	max    int
}

func (p *depthProbe) ScopeEnter(depth int) {
	p.enters++
	if depth > p.max {
		p.max = depth
	}
}

func (p *depthProbe) ScopeExit(int) {
	p.exits++
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	// Check if test should be skipped
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	prog, err := buildProgram(test)
	if err != nil {
		return TestResult{
			Test:  test,
			Error: err,
		}
	}

	var out bytes.Buffer
	probe := &depthProbe{}
	var observer eval.Observer = probe
	if r.tracer.IsEnabled() {
		observer = eval.MultiObserver(probe, r.tracer)
	}
	ev := eval.NewEvaluator(&out, eval.WithObserver(observer))

	fingerprint := ast.ShortFingerprint(prog)
	if r.tracer.IsEnabled() {
		r.tracer.Run(fingerprint, len(prog.Stmts))
	}
	runErr := ev.Run(prog)
	if r.tracer.IsEnabled() {
		r.tracer.Done(fingerprint, runErr)
	}

	lines := splitLines(out.String())
	if ev.Depth() != 0 || probe.enters != probe.exits {
		return TestResult{
			Test:   test,
			Output: lines,
			Error:  fmt.Errorf("frame stack unbalanced: depth=%d enters=%d exits=%d", ev.Depth(), probe.enters, probe.exits),
		}
	}

	passed, err := checkExpectation(test.Test.Expect, lines, runErr, probe.max)
	return TestResult{
		Test:   test,
		Passed: passed,
		Output: lines,
		Error:  err,
	}
}

// buildProgram prepends the suite prelude to the test's program
func buildProgram(test LoadedTest) (*ast.Program, error) {
	prelude, err := program.DecodeNode(&test.Suite.Prelude)
	if err != nil {
		return nil, fmt.Errorf("prelude: %w", err)
	}
	body, err := program.DecodeNode(&test.Test.Program)
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}
	stmts := make([]ast.Stmt, 0, len(prelude.Stmts)+len(body.Stmts))
	stmts = append(stmts, prelude.Stmts...)
	stmts = append(stmts, body.Stmts...)
	return ast.NewProgram(stmts...), nil
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats counts results by outcome
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats tallies a result list
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats renders a one-line summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// splitLines breaks output into lines, dropping the final newline
func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

// errorCode maps a Run error back to its error code
func errorCode(err error) (types.ErrorCode, bool) {
	var ub *types.UnboundVariableError
	var inv *types.InvalidNodeError
	var outErr *types.OutputError
	switch {
	case errors.As(err, &ub):
		return ub.Code(), true
	case errors.As(err, &inv):
		return inv.Code, true
	case errors.As(err, &outErr):
		return types.E_FILE, true
	}
	return types.E_NONE, false
}

func checkExpectation(expect Expectation, lines []string, runErr error, maxDepth int) (bool, error) {
	if !slices.Equal(lines, expect.Output) {
		return false, fmt.Errorf("expected output %q, got %q", expect.Output, lines)
	}

	if expect.MaxDepth != 0 && maxDepth != expect.MaxDepth {
		return false, fmt.Errorf("expected max depth %d, got %d", expect.MaxDepth, maxDepth)
	}

	if expect.Error == "" {
		if runErr != nil {
			return false, fmt.Errorf("unexpected error: %w", runErr)
		}
		return true, nil
	}

	expectedCode, ok := types.ErrorFromString(expect.Error)
	if !ok {
		return false, fmt.Errorf("unknown error code: %s", expect.Error)
	}
	if runErr == nil {
		return false, fmt.Errorf("expected error %s, run completed", expect.Error)
	}
	code, ok := errorCode(runErr)
	if !ok {
		return false, fmt.Errorf("expected error %s, got %w", expect.Error, runErr)
	}
	if code != expectedCode {
		return false, fmt.Errorf("expected error %s, got %s", expect.Error, code)
	}

	var ub *types.UnboundVariableError
	if errors.As(runErr, &ub) {
		if expect.Unbound != "" && ub.Name != expect.Unbound {
			return false, fmt.Errorf("expected unbound %q, got %q", expect.Unbound, ub.Name)
		}
		if expect.Depth != 0 && ub.Depth != expect.Depth {
			return false, fmt.Errorf("expected failure at depth %d, got %d", expect.Depth, ub.Depth)
		}
	}
	return true, nil
}
