package tables

// Loca is the parsed 'loca' table: numGlyphs+1 offsets into 'glyf',
// expanded from either the short (uint16, x2) or long (uint32) on-disk
// format (spec: head.index_to_loc_format selects which).
type Loca struct {
	Offsets []uint32
}

func ParseLoca(b []byte, numGlyphs int, longFormat bool) (*Loca, error) {
	n := numGlyphs + 1
	if longFormat {
		if len(b) < n*4 {
			return nil, ErrTruncated
		}
		offs := make([]uint32, n)
		for i := 0; i < n; i++ {
			offs[i] = u32(b[i*4 : i*4+4])
		}
		return &Loca{Offsets: offs}, nil
	}
	if len(b) < n*2 {
		return nil, ErrTruncated
	}
	offs := make([]uint32, n)
	for i := 0; i < n; i++ {
		offs[i] = uint32(u16(b[i*2:i*2+2])) * 2
	}
	return &Loca{Offsets: offs}, nil
}
