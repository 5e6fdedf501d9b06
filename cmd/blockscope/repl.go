package main

import (
	"blockscope/ast"
	"blockscope/program"
	"blockscope/trace"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/peterh/liner"
)

const (
	historyFile = ".blockscope_history"
	promptMain  = "scope> "
	banner      = "blockscope: enter statements as YAML flow mappings, e.g. {assign: x, value: 1}. Type :help for commands."
)

const helpText = `Statements:
  {assign: x, value: 1}
  {print: ["x = ", {var: x}]}
  {block: [{assign: x, value: 3}, {print: [{var: x}]}]}
Commands:
  :run     run the buffered program
  :list    show the buffered program as pseudo-source
  :yaml    show the buffered program as YAML
  :undo    drop the last statement
  :reset   clear the buffer
  :quit    exit`

// session buffers statements between runs.
// Every :run starts from an empty frame stack.
type session struct {
	stmts  []ast.Stmt
	out    io.Writer
	tracer *trace.Tracer
}

func newSession(out io.Writer, tracer *trace.Tracer) *session {
	return &session{out: out, tracer: tracer}
}

func (s *session) program() *ast.Program {
	return ast.NewProgram(s.stmts...)
}

// handle processes one input line and reports whether the session should end
func (s *session) handle(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ":") {
		switch strings.ToLower(line) {
		case ":quit", ":q":
			return true
		case ":help":
			fmt.Fprintln(s.out, helpText)
		case ":run":
			execute(s.program(), s.out, s.out, s.tracer)
		case ":list":
			for _, l := range ast.UnparseProgram(s.program()) {
				fmt.Fprintln(s.out, l)
			}
		case ":yaml":
			if err := program.Write(s.out, s.program()); err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
			}
		case ":undo":
			if len(s.stmts) > 0 {
				s.stmts = s.stmts[:len(s.stmts)-1]
			}
		case ":reset":
			s.stmts = nil
		default:
			fmt.Fprintln(s.out, "unknown command. Type :help for commands.")
		}
		return false
	}

	prog, err := program.Decode([]byte(line))
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return false
	}
	s.stmts = append(s.stmts, prog.Stmts...)
	return false
}

// watchSignals calls onSignal for the first signal received on sigc.
// The returned channel is closed once the watcher has finished, either
// after onSignal returns or after done is closed.
func watchSignals(sigc <-chan os.Signal, done <-chan struct{}, onSignal func()) <-chan struct{} {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-sigc:
			onSignal()
		case <-done:
		}
	}()
	return stopped
}

func runRepl(out io.Writer, tracer *trace.Tracer) int {
	fmt.Fprintln(out, banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var saveOnce sync.Once
	saveHistory := func() {
		saveOnce.Do(func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		})
	}
	defer saveHistory()

	// Prompt blocks in a terminal read that Close does not interrupt, so a
	// signal saves history and exits from the watcher.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	stopped := watchSignals(sigc, done, func() {
		saveHistory()
		ln.Close()
		os.Exit(130)
	})
	defer func() {
		signal.Stop(sigc)
		close(done)
		<-stopped
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := newSession(out, tracer)
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return 0
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if s.handle(line) {
			return 0
		}
	}
}
