package ast

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a hex BLAKE2b-256 digest of the program's unparsed
// text. Programs that unparse identically share a fingerprint, regardless
// of source positions.
func Fingerprint(prog *Program) string {
	text := strings.Join(UnparseProgram(prog), "\n")
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ShortFingerprint returns the first 12 hex digits of Fingerprint
func ShortFingerprint(prog *Program) string {
	return Fingerprint(prog)[:12]
}
