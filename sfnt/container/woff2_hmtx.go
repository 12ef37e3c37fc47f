package container

import "encoding/binary"

// reconstructHmtx decodes a WOFF2-transformed hmtx table (transform
// version 1): advance widths are carried explicitly, but left side
// bearings are typically omitted and recomputed here from the
// corresponding glyph's xMin in the (already-reconstructed) glyf table,
// per WOFF2 "Transformed hmtx Table".
func reconstructHmtx(b, head, glyf, loca, maxp, hhea []byte) ([]byte, error) {
	if len(head) < 52 || len(maxp) < 6 || len(hhea) < 36 {
		return nil, ErrInvalidWOFF2
	}
	indexFormat := int16(binary.BigEndian.Uint16(head[50:52]))
	numGlyphs := binary.BigEndian.Uint16(maxp[4:6])
	numHMetrics := binary.BigEndian.Uint16(hhea[34:36])
	if numHMetrics < 1 || numGlyphs < numHMetrics {
		return nil, ErrInvalidWOFF2
	}

	locaEntrySize := uint32(2)
	if indexFormat != 0 {
		locaEntrySize = 4
	}
	if uint32(len(loca)) != (uint32(numGlyphs)+1)*locaEntrySize {
		return nil, ErrInvalidWOFF2
	}

	if len(b) < 1 {
		return nil, ErrInvalidWOFF2
	}
	flags := b[0]
	reconstructProportional := flags&0x01 != 0
	reconstructMonospaced := flags&0x02 != 0
	if flags&0xFC != 0 || (!reconstructProportional && !reconstructMonospaced) {
		return nil, ErrInvalidWOFF2
	}

	pos := 1
	advanceWidths := make([]uint16, numHMetrics)
	lsbs := make([]int16, numGlyphs)
	for i := uint16(0); i < numHMetrics; i++ {
		if pos+2 > len(b) {
			return nil, ErrInvalidWOFF2
		}
		advanceWidths[i] = binary.BigEndian.Uint16(b[pos : pos+2])
		pos += 2
	}
	if !reconstructProportional {
		for i := uint16(0); i < numHMetrics; i++ {
			if pos+2 > len(b) {
				return nil, ErrInvalidWOFF2
			}
			lsbs[i] = int16(binary.BigEndian.Uint16(b[pos : pos+2]))
			pos += 2
		}
	}
	if !reconstructMonospaced {
		for i := numHMetrics; i < numGlyphs; i++ {
			if pos+2 > len(b) {
				return nil, ErrInvalidWOFF2
			}
			lsbs[i] = int16(binary.BigEndian.Uint16(b[pos : pos+2]))
			pos += 2
		}
	}

	locaOffset := func(i uint16) uint32 {
		if indexFormat == 0 {
			return uint32(binary.BigEndian.Uint16(loca[i*2:i*2+2])) << 1
		}
		return binary.BigEndian.Uint32(loca[i*4 : i*4+4])
	}

	iMin, iMax := uint16(0), numGlyphs
	if !reconstructProportional {
		iMin = numHMetrics
	} else if !reconstructMonospaced {
		iMax = numHMetrics
	}
	for i := iMin; i < iMax; i++ {
		off := locaOffset(i)
		offNext := locaOffset(i + 1)
		if offNext == off {
			lsbs[i] = 0
			continue
		}
		if int(off)+4 > len(glyf) {
			return nil, ErrInvalidWOFF2
		}
		lsbs[i] = int16(binary.BigEndian.Uint16(glyf[off+2 : off+4]))
	}

	out := make([]byte, 2*int(numHMetrics)+2*(int(numGlyphs)-int(numHMetrics)))
	w := 0
	for i := uint16(0); i < numHMetrics; i++ {
		binary.BigEndian.PutUint16(out[w:w+2], advanceWidths[i])
		binary.BigEndian.PutUint16(out[w+2:w+4], uint16(lsbs[i]))
		w += 4
	}
	for i := numHMetrics; i < numGlyphs; i++ {
		binary.BigEndian.PutUint16(out[w:w+2], uint16(lsbs[i]))
		w += 2
	}
	return out, nil
}
