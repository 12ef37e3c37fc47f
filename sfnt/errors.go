package sfnt

import (
	"errors"
	"fmt"

	"github.com/fontist/fontisan-sub002/tag"
)

// Kind classifies an error returned from any parser or loader call, from
// most specific to most general, matching the component-local error model.
type Kind int

const (
	KindUnknown Kind = iota
	KindFileNotFound
	KindUnknownFormat
	KindUnsupportedVersion
	KindTruncated
	KindCorrupt
	KindMissingRequiredTable
	KindModeRestricted
	KindDecompressionFailed
	KindWriteFailed
)

func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "FileNotFound"
	case KindUnknownFormat:
		return "UnknownFormat"
	case KindUnsupportedVersion:
		return "UnsupportedVersion"
	case KindTruncated:
		return "Truncated"
	case KindCorrupt:
		return "Corrupt"
	case KindMissingRequiredTable:
		return "MissingRequiredTable"
	case KindModeRestricted:
		return "ModeRestricted"
	case KindDecompressionFailed:
		return "DecompressionFailed"
	case KindWriteFailed:
		return "WriteFailed"
	default:
		return "Unknown"
	}
}

// Error is the typed error surfaced to callers. The Loader attaches
// whatever context it has at the point of failure: the byte source's
// identity (a file path, or "<memory>"), the table tag involved (if any)
// and a byte offset (if any), whenever that context is available.
type Error struct {
	Kind   Kind
	Source string
	Tag    tag.Tag
	Offset int64
	Field  string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg += "(" + e.Field + ")"
	}
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Tag != tag.Zero {
		msg = fmt.Sprintf("%s [tag=%s]", msg, e.Tag)
	}
	if e.Offset != 0 {
		msg = fmt.Sprintf("%s [offset=%d]", msg, e.Offset)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, sfnt.ErrCorrupt) work against the sentinel kinds
// below, even though the concrete error is always an *Error.
func (e *Error) Is(target error) bool {
	if s, ok := target.(*sentinel); ok {
		return e.Kind == s.kind
	}
	return false
}

type sentinel struct {
	kind Kind
}

func (s *sentinel) Error() string { return s.kind.String() }

// Sentinel errors for errors.Is comparisons, e.g.
// errors.Is(err, sfnt.ErrModeRestricted).
var (
	ErrFileNotFound         error = &sentinel{KindFileNotFound}
	ErrUnknownFormat        error = &sentinel{KindUnknownFormat}
	ErrUnsupportedVersion   error = &sentinel{KindUnsupportedVersion}
	ErrTruncated            error = &sentinel{KindTruncated}
	ErrCorrupt              error = &sentinel{KindCorrupt}
	ErrMissingRequiredTable error = &sentinel{KindMissingRequiredTable}
	ErrModeRestricted       error = &sentinel{KindModeRestricted}
	ErrDecompressionFailed  error = &sentinel{KindDecompressionFailed}
	ErrWriteFailed          error = &sentinel{KindWriteFailed}
)

func newErr(kind Kind, source string, t tag.Tag, offset int64, field string, cause error) *Error {
	return &Error{Kind: kind, Source: source, Tag: t, Offset: offset, Field: field, Err: cause}
}

// wrap attaches source/tag/offset context to an error that may already be
// a typed *Error (e.g. bubbling up from a table parser) or a plain error
// from an inner package (e.g. the cff package's own errors).
func wrap(err error, source string, t tag.Tag, offset int64) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		if cp.Source == "" {
			cp.Source = source
		}
		if cp.Tag == tag.Zero {
			cp.Tag = t
		}
		if cp.Offset == 0 {
			cp.Offset = offset
		}
		return &cp
	}
	return newErr(KindCorrupt, source, t, offset, "", err)
}
