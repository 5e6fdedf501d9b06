package types

import "testing"

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		value   int
		name    string
		message string
	}{
		{E_NONE, 0, "E_NONE", "No error"},
		{E_VARNF, 6, "E_VARNF", "Variable not found"},
		{E_INVARG, 13, "E_INVARG", "Invalid argument"},
		{E_FILE, 16, "E_FILE", "Output error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.code) != tt.value {
				t.Errorf("%s: expected value %d, got %d", tt.name, tt.value, int(tt.code))
			}
			if tt.code.String() != tt.name {
				t.Errorf("%s: String() returned %q, expected %q", tt.name, tt.code.String(), tt.name)
			}
			if tt.code.Message() != tt.message {
				t.Errorf("%s: Message() returned %q, expected %q", tt.name, tt.code.Message(), tt.message)
			}
			got, ok := ErrorFromString(tt.name)
			if !ok || got != tt.code {
				t.Errorf("ErrorFromString(%q) = %v, %v", tt.name, got, ok)
			}
		})
	}

	if _, ok := ErrorFromString("E_BOGUS"); ok {
		t.Error("ErrorFromString should reject unknown names")
	}
}

func TestValueText(t *testing.T) {
	tests := []struct {
		name    string
		val     Value
		text    string
		literal string
	}{
		{"positive int", NewInt(42), "42", "42"},
		{"negative int", NewInt(-7), "-7", "-7"},
		{"plain string", NewStr("x = "), "x = ", `"x = "`},
		{"quotes are not escaped in text", NewStr(`say "hi"`), `say "hi"`, `"say \"hi\""`},
		{"empty string", NewStr(""), "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
			if got := tt.val.Literal(); got != tt.literal {
				t.Errorf("Literal() = %q, want %q", got, tt.literal)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	if !NewInt(1).Equal(NewInt(1)) {
		t.Error("equal ints should compare equal")
	}
	if NewInt(1).Equal(NewStr("1")) {
		t.Error("int and string must not compare equal")
	}
	if NewStr("a").Equal(NewStr("A")) {
		t.Error("string comparison is case-sensitive")
	}
	if !NewStr("a").Equal(NewStr("a")) {
		t.Error("equal strings should compare equal")
	}
}
