package types

// ErrorCode represents an evaluation error kind
type ErrorCode int

const (
	E_NONE   ErrorCode = 0
	E_VARNF  ErrorCode = 6
	E_INVARG ErrorCode = 13
	E_FILE   ErrorCode = 16
)

// String returns the symbolic name for an error code
func (e ErrorCode) String() string {
	switch e {
	case E_NONE:
		return "E_NONE"
	case E_VARNF:
		return "E_VARNF"
	case E_INVARG:
		return "E_INVARG"
	case E_FILE:
		return "E_FILE"
	default:
		return "E_UNKNOWN"
	}
}

// Message returns a human-readable message for an error code
func (e ErrorCode) Message() string {
	switch e {
	case E_NONE:
		return "No error"
	case E_VARNF:
		return "Variable not found"
	case E_INVARG:
		return "Invalid argument"
	case E_FILE:
		return "Output error"
	default:
		return "Unknown error"
	}
}

// ErrorFromString converts a string like "E_VARNF" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	switch s {
	case "E_NONE":
		return E_NONE, true
	case "E_VARNF":
		return E_VARNF, true
	case "E_INVARG":
		return E_INVARG, true
	case "E_FILE":
		return E_FILE, true
	default:
		return E_NONE, false
	}
}

// Value is the interface all runtime values implement.
// Values are immutable; evaluating a literal yields the literal's own value.
type Value interface {
	Type() TypeCode
	String() string   // natural textual form, as written by print
	Literal() string  // source form, as written by unparse
	Equal(Value) bool // identity of kind and content
}
