package conformance

import "gopkg.in/yaml.v3"

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Prelude     yaml.Node  `yaml:"prelude,omitempty"` // statements run before each test's program
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or string
	Program     yaml.Node   `yaml:"program"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what a run must produce
type Expectation struct {
	Output   []string `yaml:"output,omitempty"`    // exact output lines, in order
	Error    string   `yaml:"error,omitempty"`     // E_VARNF, E_INVARG
	Unbound  string   `yaml:"unbound,omitempty"`   // name carried by E_VARNF
	Depth    int      `yaml:"depth,omitempty"`     // frame depth at the failing reference
	MaxDepth int      `yaml:"max_depth,omitempty"` // deepest frame stack reached
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
