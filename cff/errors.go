// Package cff implements the Compact Font Format 1.0 read/write pipeline:
// variable-width INDEX containers, DICT operator/operand streams, and the
// Type 2 CharString interpreter and builder. The INDEX and
// DICT parsing state machine is modeled directly on
// golang.org/x/image/font/sfnt's cffParser (see postscript.go in that
// package): the same offset-by-one INDEX convention, the same integer
// encoding table, and the same real-number nibble decoder, generalized
// here to also serialize (not just parse) each structure and to drive a
// full Type 2 interpreter rather than only locate CharStrings.
package cff

import "errors"

var (
	// ErrUnsupportedVersion is returned when the CFF header's major
	// version byte is not 1.
	ErrUnsupportedVersion = errors.New("cff: unsupported version")
	// ErrInvalidIndex is returned when an INDEX violates its own
	// invariants (bad off_size, non-monotonic offsets, truncation).
	ErrInvalidIndex = errors.New("cff: invalid INDEX")
	// ErrInvalidDict is returned when a DICT operand/operator stream is
	// malformed.
	ErrInvalidDict = errors.New("cff: invalid DICT")
	// ErrUnsupportedRealNumber is returned when a DICT real-number nibble
	// stream cannot be parsed as a float.
	ErrUnsupportedRealNumber = errors.New("cff: unsupported real number encoding")
	// ErrTruncated is returned when a read runs past the end of input.
	ErrTruncated = errors.New("cff: truncated")
	// ErrStackOverflow is returned when a CharString or DICT operand
	// stack would exceed its fixed size.
	ErrStackOverflow = errors.New("cff: operand stack overflow")
	// ErrRecursionLimit is returned when subroutine calls nest deeper
	// than the CFF specification's guaranteed minimum of 10.
	ErrRecursionLimit = errors.New("cff: subroutine recursion limit exceeded")
	// ErrUnsupportedCharstring is returned for an unrecognized CharString
	// operator.
	ErrUnsupportedCharstring = errors.New("cff: unsupported Type 2 Charstring operator")
)
