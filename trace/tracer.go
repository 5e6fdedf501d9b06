package trace

import (
	"blockscope/types"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Tracer provides execution tracing for debugging.
// It satisfies eval.Observer.
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// New creates a tracer. Filters are glob patterns matched against
// variable names; an empty list traces every name. A nil writer
// means os.Stderr.
func New(enabled bool, filters []string, writer io.Writer) *Tracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// ParseFilters splits a comma-separated filter flag into patterns
func ParseFilters(spec string) []string {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	filters := strings.Split(spec, ",")
	for i := range filters {
		filters[i] = strings.TrimSpace(filters[i])
	}
	return filters
}

// IsEnabled returns whether tracing is enabled
func (t *Tracer) IsEnabled() bool {
	return t != nil && t.enabled
}

// matchesFilter checks if a variable name matches any of the filter patterns
func (t *Tracer) matchesFilter(name string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func (t *Tracer) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[TRACE] "+format+"\n", args...)
}

// Run logs the start of a program run
func (t *Tracer) Run(fingerprint string, statements int) {
	if !t.IsEnabled() {
		return
	}
	t.printf("RUN %s statements=%d", fingerprint, statements)
}

// Done logs the end of a program run. A nil err means completed.
func (t *Tracer) Done(fingerprint string, err error) {
	if !t.IsEnabled() {
		return
	}
	if err != nil {
		t.printf("ABORT %s %v", fingerprint, err)
		return
	}
	t.printf("DONE %s", fingerprint)
}

// ScopeEnter logs a frame push
func (t *Tracer) ScopeEnter(depth int) {
	if !t.IsEnabled() {
		return
	}
	t.printf("ENTER depth=%d", depth)
}

// ScopeExit logs a frame pop
func (t *Tracer) ScopeExit(depth int) {
	if !t.IsEnabled() {
		return
	}
	t.printf("EXIT depth=%d", depth)
}

// Bind logs an assignment into the current frame
func (t *Tracer) Bind(name string, val types.Value, depth int) {
	if !t.IsEnabled() || !t.matchesFilter(name) {
		return
	}
	t.printf("BIND %s = %s depth=%d", name, val.Literal(), depth)
}

// Resolve logs a successful variable lookup
func (t *Tracer) Resolve(name string, val types.Value, depth int) {
	if !t.IsEnabled() || !t.matchesFilter(name) {
		return
	}
	t.printf("LOOKUP %s => %s depth=%d", name, val.Literal(), depth)
}

// Unbound logs a failed variable lookup.
// Failures are always traced, regardless of filters.
func (t *Tracer) Unbound(name string, depth int) {
	if !t.IsEnabled() {
		return
	}
	t.printf("UNBOUND %s depth=%d", name, depth)
}
