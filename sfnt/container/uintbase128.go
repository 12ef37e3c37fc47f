// Package container implements the Container Demux component: signature
// sniffing and unwrapping of the font container formats an SFNT table
// directory can arrive inside -- bare SFNT/TTF/OTF, TTC/OTC
// collections, Apple dfont resource forks, and WOFF/WOFF2 compression
// wrappers. Every format here is unwrapped to a plain, uncompressed SFNT
// byte stream (or, for collections, one stream per contained font) that
// the sfnt package's Loader can parse directly.
package container

import "errors"

// ErrInvalidVarint is returned when a UIntBase128 or 255UInt16 varint
// violates its encoding rules (leading zero byte, non-minimal encoding,
// or overflow).
var ErrInvalidVarint = errors.New("container: invalid variable-length integer")

// readUintBase128 decodes one WOFF2 UIntBase128 value: a base-128 varint, 7 bits
// per byte, continuation in the high bit, at most 5 bytes, and rejecting
// non-minimal (leading 0x80) encodings.
func readUintBase128(b []byte) (value uint32, consumed int, err error) {
	var accum uint32
	for i := 0; i < 5; i++ {
		if i >= len(b) {
			return 0, 0, ErrInvalidVarint
		}
		d := b[i]
		if i == 0 && d == 0x80 {
			return 0, 0, ErrInvalidVarint
		}
		if accum&0xFE000000 != 0 {
			return 0, 0, ErrInvalidVarint
		}
		accum = accum<<7 | uint32(d&0x7F)
		if d&0x80 == 0 {
			return accum, i + 1, nil
		}
	}
	return 0, 0, ErrInvalidVarint
}

// read255UInt16 decodes one WOFF2 255UInt16 value: a
// single byte for 0-252, an escape code 254 or 255 followed by one more
// byte for the extended ranges, or 253 followed by a 2-byte value.
func read255UInt16(b []byte) (value uint16, consumed int, err error) {
	if len(b) < 1 {
		return 0, 0, ErrInvalidVarint
	}
	code := b[0]
	switch code {
	case 253:
		if len(b) < 3 {
			return 0, 0, ErrInvalidVarint
		}
		return uint16(b[1])<<8 | uint16(b[2]), 3, nil
	case 255:
		if len(b) < 2 {
			return 0, 0, ErrInvalidVarint
		}
		return uint16(b[1]) + 253, 2, nil
	case 254:
		if len(b) < 2 {
			return 0, 0, ErrInvalidVarint
		}
		return uint16(b[1]) + 253*2, 2, nil
	default:
		return uint16(code), 1, nil
	}
}
