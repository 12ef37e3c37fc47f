package sfnt

import "errors"

// These mirror golang.org/x/image/font/sfnt's u16/u32 helpers: small,
// allocation-free big-endian readers used throughout the offset table,
// directory and fixed-layout table parsers.

func u16(b []byte) uint16 {
	_ = b[1]
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func putU16(b []byte, v uint16) {
	_ = b[1]
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func putU32(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

var (
	errInvalidBounds  = errors.New("sfnt: invalid bounds")
	errTruncatedSource = errors.New("sfnt: truncated source")
)
