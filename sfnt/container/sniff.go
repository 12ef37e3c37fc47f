package container

import (
	"encoding/binary"
	"errors"
)

// Format identifies a recognized container format.
type Format int

const (
	FormatUnknown Format = iota
	FormatSFNT           // bare TrueType or OpenType/CFF font
	FormatCollection      // TTC/OTC
	FormatDfont           // Apple resource fork
	FormatWOFF
	FormatWOFF2
)

func (f Format) String() string {
	switch f {
	case FormatSFNT:
		return "sfnt"
	case FormatCollection:
		return "collection"
	case FormatDfont:
		return "dfont"
	case FormatWOFF:
		return "woff"
	case FormatWOFF2:
		return "woff2"
	default:
		return "unknown"
	}
}

// ErrUnrecognized is returned by Sniff when none of the known container
// signatures match.
var ErrUnrecognized = errors.New("container: unrecognized signature")

const (
	sigTrueType   = 0x00010000
	sigAppleTrue  = 0x74727565 // 'true'
	sigOpenType   = 0x4f54544f // 'OTTO'
	sigCollection = 0x74746366 // 'ttcf'
	sigWOFF       = 0x774f4646 // 'wOFF'
	sigWOFF2      = 0x774f4632 // 'wOF2'
)

// Sniff inspects the first 4 bytes of b and classifies its container
// format. It does not validate the
// rest of the structure; a dfont classification in particular is a
// default fallback (see below) rather than a distinct magic number.
func Sniff(b []byte) (Format, error) {
	if len(b) < 4 {
		return FormatUnknown, ErrUnrecognized
	}
	sig := binary.BigEndian.Uint32(b[0:4])
	switch sig {
	case sigTrueType, sigAppleTrue, sigOpenType:
		return FormatSFNT, nil
	case sigCollection:
		return FormatCollection, nil
	case sigWOFF:
		return FormatWOFF, nil
	case sigWOFF2:
		return FormatWOFF2, nil
	}
	// A dfont's resource fork starts with a 4-byte data-offset field that
	// is never one of the signatures above; confirm by checking that the
	// classic Mac resource header's data and map offsets are in range
	// before accepting the fallback, so arbitrary garbage doesn't sniff
	// as a dfont.
	if looksLikeDfont(b) {
		return FormatDfont, nil
	}
	return FormatUnknown, ErrUnrecognized
}

// looksLikeDfont checks the classic Mac OS resource fork header (spec
// §4.1's dfont sub-component): four big-endian uint32 fields --
// dataOffset, mapOffset, dataLength, mapLength -- which must be
// internally consistent and point within the file.
func looksLikeDfont(b []byte) bool {
	if len(b) < 16 {
		return false
	}
	dataOffset := binary.BigEndian.Uint32(b[0:4])
	mapOffset := binary.BigEndian.Uint32(b[4:8])
	dataLength := binary.BigEndian.Uint32(b[8:12])
	mapLength := binary.BigEndian.Uint32(b[12:16])
	total := uint64(len(b))
	if uint64(dataOffset)+uint64(dataLength) > total {
		return false
	}
	if uint64(mapOffset)+uint64(mapLength) > total {
		return false
	}
	return dataOffset != 0 && mapOffset != 0 && mapOffset >= dataOffset
}
