package types

import "strconv"

// StrValue represents a string
type StrValue struct {
	val string
}

// NewStr creates a new string value
func NewStr(s string) StrValue {
	return StrValue{val: s}
}

// String returns the contents verbatim, with no quoting or escaping
func (s StrValue) String() string {
	return s.val
}

// Literal returns the double-quoted source form
func (s StrValue) Literal() string {
	return strconv.Quote(s.val)
}

// Type returns the type code for strings
func (s StrValue) Type() TypeCode {
	return TYPE_STR
}

// Equal compares two values for equality.
// Comparison is exact (case-sensitive).
func (s StrValue) Equal(other Value) bool {
	if o, ok := other.(StrValue); ok {
		return s.val == o.val
	}
	return false
}

// Value returns the internal string value
func (s StrValue) Value() string {
	return s.val
}
