package sfnt

import (
	"os"
	"strings"
)

// FONTISAN_LOADING_MODE and FONTISAN_LAZY let an operator pin the
// default loading strategy for a process without threading Options
// through every call site, mirroring golang-image's convention of a
// small set of environment-driven defaults for otherwise-optional
// behavior.
const (
	envLoadingMode = "FONTISAN_LOADING_MODE"
	envLazy        = "FONTISAN_LAZY"
)

// DefaultMode returns the Mode Open/Parse/NewFromReaderAt use when the
// caller passes no WithMode option. It reads FONTISAN_LOADING_MODE
// ("metadata" or "full", case-insensitive); any other value, including
// unset, resolves to Full.
func DefaultMode() Mode {
	switch strings.ToLower(os.Getenv(envLoadingMode)) {
	case "metadata":
		return Metadata
	default:
		return Full
	}
}

// DefaultLazy returns the lazy flag Open/NewFromReaderAt use when the
// caller passes no WithLazy option. It reads FONTISAN_LAZY ("1", "true",
// or "yes", case-insensitive, enable it); anything else, including
// unset, resolves to false (eager batched reads).
func DefaultLazy() bool {
	switch strings.ToLower(os.Getenv(envLazy)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
