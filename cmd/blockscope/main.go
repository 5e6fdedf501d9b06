package main

import (
	"blockscope/ast"
	"blockscope/eval"
	"blockscope/program"
	"blockscope/trace"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

func main() {
	programPath := flag.String("program", "", "YAML program file to run (or pass it as the first argument)")
	demo := flag.Bool("demo", false, "Run the built-in scoping demo program")

	// Inspection flags
	unparse := flag.Bool("unparse", false, "Print the program as pseudo-source instead of running it")
	dump := flag.Bool("dump", false, "Print the program as YAML instead of running it")
	fingerprint := flag.Bool("fingerprint", false, "Print the program fingerprint instead of running it")

	repl := flag.Bool("repl", false, "Start an interactive session")

	// Trace flags
	traceEnabled := flag.Bool("trace", false, "Enable execution tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob on variable names, e.g. 'tmp_*,x')")

	flag.Parse()

	filters := trace.ParseFilters(*traceFilter)
	tracer := trace.New(*traceEnabled, filters, os.Stderr)
	if *traceEnabled {
		log.Printf("Tracing enabled (filters: %v)", filters)
	}

	if *repl {
		os.Exit(runRepl(os.Stdout, tracer))
	}

	path := *programPath
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	prog, err := loadProgram(path, *demo)
	if err != nil {
		log.Fatalf("Failed to load program: %v", err)
	}

	switch {
	case *unparse:
		for _, line := range ast.UnparseProgram(prog) {
			fmt.Println(line)
		}
	case *dump:
		if err := program.Write(os.Stdout, prog); err != nil {
			log.Fatalf("Failed to encode program: %v", err)
		}
	case *fingerprint:
		fmt.Println(ast.Fingerprint(prog))
	default:
		os.Exit(execute(prog, os.Stdout, os.Stderr, tracer))
	}
}

// loadProgram picks the program source from the flags
func loadProgram(path string, demo bool) (*ast.Program, error) {
	switch {
	case demo && path != "":
		return nil, fmt.Errorf("-demo and a program file are mutually exclusive")
	case demo:
		return ast.DemoProgram(), nil
	case path != "":
		return program.Load(path)
	default:
		return nil, fmt.Errorf("no program given (use -program FILE or -demo)")
	}
}

// execute runs prog and returns the process exit code
func execute(prog *ast.Program, stdout, stderr io.Writer, tracer *trace.Tracer) int {
	ev := eval.NewEvaluator(stdout, eval.WithObserver(tracer))

	fp := ast.ShortFingerprint(prog)
	n := 0
	if prog != nil {
		n = len(prog.Stmts)
	}
	tracer.Run(fp, n)
	err := ev.Run(prog)
	tracer.Done(fp, err)

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
