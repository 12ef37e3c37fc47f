// Package tables implements the fixed-layout parsers for the SFNT tables
// the core engine understands structurally: head, maxp, hhea, hmtx, loca,
// name, post and cmap. Every other tag remains accessible only as raw
// bytes.
package tables

import "errors"

var (
	ErrTruncated = errors.New("tables: truncated")
	ErrInvalid   = errors.New("tables: invalid field")
)

func u16(b []byte) uint16 {
	_ = b[1]
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func i16(b []byte) int16 { return int16(u16(b)) }
