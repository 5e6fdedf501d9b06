package types

// TypeCode identifies the kind of a runtime value
type TypeCode int

const (
	TYPE_INT TypeCode = 0
	TYPE_STR TypeCode = 2
)

// String returns the string representation of the type code
func (t TypeCode) String() string {
	switch t {
	case TYPE_INT:
		return "INT"
	case TYPE_STR:
		return "STR"
	default:
		return "UNKNOWN"
	}
}
