package main

import (
	"blockscope/ast"
	"blockscope/trace"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestExecuteDemo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := execute(ast.DemoProgram(), &stdout, &stderr, trace.New(false, nil, nil))
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	if stdout.String() != "x = 1\ny = 2\n--\nx = 3\ny = 2\n--\nx = 1\ny = 2\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestExecuteUnbound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	prog := ast.NewProgram(ast.Print(ast.Str("ok")), ast.Print(ast.Var("z")))
	code := execute(prog, &stdout, &stderr, trace.New(false, nil, nil))
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if stdout.String() != "ok\n" {
		t.Errorf("output before failure should be kept, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), `unbound variable "z"`) {
		t.Errorf("stderr should name the variable, got %q", stderr.String())
	}
}

func TestExecuteInvalidNodes(t *testing.T) {
	tests := []struct {
		name string
		prog *ast.Program
	}{
		{"typed nil block", ast.NewProgram((*ast.BlockStmt)(nil))},
		{"typed nil assign", ast.NewProgram((*ast.AssignStmt)(nil))},
		{"typed nil literal", ast.NewProgram(ast.Print((*ast.LiteralExpr)(nil)))},
		{"nil statement in block", ast.NewProgram(ast.Block(nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr, traced bytes.Buffer
			code := execute(tt.prog, &stdout, &stderr, trace.New(true, nil, &traced))
			if code != 1 {
				t.Errorf("expected exit code 1, got %d", code)
			}
			if !strings.Contains(stderr.String(), "E_INVARG: invalid AST node") {
				t.Errorf("stderr should report the invalid node, got %q", stderr.String())
			}
			if !strings.Contains(traced.String(), "[TRACE] ABORT ") {
				t.Errorf("trace should record the abort:\n%s", traced.String())
			}
		})
	}
}

func TestExecuteNilProgram(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := execute(nil, &stdout, &stderr, nil); code != 0 {
		t.Errorf("expected exit code 0, got %d (stderr %q)", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no output, got %q", stdout.String())
	}
}

func TestExecuteTraced(t *testing.T) {
	var stdout, stderr, traced bytes.Buffer
	code := execute(ast.DemoProgram(), &stdout, &stderr, trace.New(true, []string{"y"}, &traced))
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	for _, want := range []string{"[TRACE] RUN ", "[TRACE] BIND y = 2 depth=1", "[TRACE] DONE "} {
		if !strings.Contains(traced.String(), want) {
			t.Errorf("trace missing %q:\n%s", want, traced.String())
		}
	}
	if strings.Contains(traced.String(), "BIND x") {
		t.Error("filter should hide x")
	}
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.yaml")
	if err := os.WriteFile(path, []byte("- print: [\"hi\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		demo    bool
		wantErr bool
		stmts   int
	}{
		{"demo", "", true, false, 9},
		{"file", path, false, false, 1},
		{"both", path, true, true, 0},
		{"neither", "", false, true, 0},
		{"missing file", filepath.Join(dir, "nope.yaml"), false, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := loadProgram(tt.path, tt.demo)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(prog.Stmts) != tt.stmts {
				t.Errorf("expected %d statements, got %d", tt.stmts, len(prog.Stmts))
			}
		})
	}
}

func TestSession(t *testing.T) {
	var out bytes.Buffer
	s := newSession(&out, trace.New(false, nil, nil))

	inputs := []string{
		"{assign: x, value: 1}",
		`{print: ["x = ", {var: x}]}`,
		`{block: [{assign: x, value: 3}, {print: ["x = ", {var: x}]}]}`,
		`[{print: ["x = ", {var: x}]}]`,
		":run",
	}
	for _, in := range inputs {
		if s.handle(in) {
			t.Fatalf("session ended early on %q", in)
		}
	}
	if got, want := out.String(), "x = 1\nx = 3\nx = 1\n"; got != want {
		t.Errorf("run output %q, want %q", got, want)
	}

	out.Reset()
	s.handle(":list")
	if !strings.Contains(out.String(), "  x = 3") {
		t.Errorf(":list should unparse the buffer, got %q", out.String())
	}

	out.Reset()
	s.handle(":yaml")
	if !strings.Contains(out.String(), "assign: x") {
		t.Errorf(":yaml should dump the buffer, got %q", out.String())
	}

	s.handle(":undo")
	if len(s.stmts) != 3 {
		t.Errorf("expected 3 statements after undo, got %d", len(s.stmts))
	}

	out.Reset()
	s.handle("{loop: []}")
	if !strings.Contains(out.String(), "Error:") || len(s.stmts) != 3 {
		t.Errorf("bad input should be rejected, got %q", out.String())
	}

	out.Reset()
	s.handle(":bogus")
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("expected unknown command message, got %q", out.String())
	}

	s.handle(":reset")
	if len(s.stmts) != 0 {
		t.Error(":reset should clear the buffer")
	}

	out.Reset()
	s.handle(`{print: [{var: gone}]}`)
	s.handle(":run")
	if !strings.Contains(out.String(), `unbound variable "gone"`) {
		t.Errorf("expected unbound error, got %q", out.String())
	}

	if !s.handle(":quit") {
		t.Error(":quit should end the session")
	}
}

func TestWatchSignalsStopsOnDone(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	called := false
	stopped := watchSignals(sigc, done, func() { called = true })

	close(done)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after done was closed")
	}
	if called {
		t.Error("onSignal should not run without a signal")
	}
}

func TestWatchSignalsRunsHandler(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	defer close(done)
	calls := 0
	stopped := watchSignals(sigc, done, func() { calls++ })

	sigc <- syscall.SIGTERM
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("watcher did not handle the signal")
	}
	if calls != 1 {
		t.Errorf("onSignal called %d times, want 1", calls)
	}
}
