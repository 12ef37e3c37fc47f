package tables

import "sort"

// CmapSubtable is one decoded (platformID, encodingID) subtable of the
// 'cmap' table, exposed as a simple rune -> glyph index map plus the
// format it was decoded from. Formats 4 (BMP, segment-delta) and 12
// (supplementary planes, group-based) are supported, which between them
// cover the overwhelming majority of fonts in the wild.
type CmapSubtable struct {
	PlatformID uint16
	EncodingID uint16
	Format     uint16
	runes      map[rune]uint16
}

// Lookup returns the glyph index for r, or (0, false) if r is unmapped.
func (c *CmapSubtable) Lookup(r rune) (uint16, bool) {
	gid, ok := c.runes[r]
	return gid, ok
}

// Cmap is the parsed 'cmap' table: a directory of encoding records, each
// lazily materialized into a CmapSubtable on first Subtable call.
type Cmap struct {
	data       []byte
	recordOffs []cmapRecord
	cache      map[int]*CmapSubtable
}

type cmapRecord struct {
	platformID, encodingID uint16
	offset                 uint32
}

func ParseCmap(b []byte) (*Cmap, error) {
	if len(b) < 4 {
		return nil, ErrTruncated
	}
	numTables := int(u16(b[2:4]))
	need := 4 + numTables*8
	if len(b) < need {
		return nil, ErrTruncated
	}
	c := &Cmap{data: b, cache: map[int]*CmapSubtable{}}
	for i := 0; i < numTables; i++ {
		rec := b[4+i*8 : 4+i*8+8]
		c.recordOffs = append(c.recordOffs, cmapRecord{
			platformID: u16(rec[0:2]),
			encodingID: u16(rec[2:4]),
			offset:     u32(rec[4:8]),
		})
	}
	return c, nil
}

// NumSubtables returns the count of encoding records in the directory.
func (c *Cmap) NumSubtables() int { return len(c.recordOffs) }

// Subtable decodes and caches the i'th encoding record's subtable.
// Unsupported formats return ErrInvalid; the caller may skip to the next
// subtable rather than fail the whole table.
func (c *Cmap) Subtable(i int) (*CmapSubtable, error) {
	if i < 0 || i >= len(c.recordOffs) {
		return nil, ErrInvalid
	}
	if s, ok := c.cache[i]; ok {
		return s, nil
	}
	rec := c.recordOffs[i]
	if int(rec.offset) >= len(c.data) {
		return nil, ErrTruncated
	}
	sub := c.data[rec.offset:]
	if len(sub) < 2 {
		return nil, ErrTruncated
	}
	format := u16(sub[0:2])
	var runes map[rune]uint16
	var err error
	switch format {
	case 4:
		runes, err = parseCmapFormat4(sub)
	case 12:
		runes, err = parseCmapFormat12(sub)
	default:
		return nil, ErrInvalid
	}
	if err != nil {
		return nil, err
	}
	s := &CmapSubtable{PlatformID: rec.platformID, EncodingID: rec.encodingID, Format: format, runes: runes}
	c.cache[i] = s
	return s, nil
}

// PreferredSubtable returns the Windows/Unicode BMP+full-repertoire
// subtable index following the conventional priority order: (3,10),
// (0,4), (3,1), (0,3), (0,*). If none of these match it returns the
// first record (index 0); it returns -1 only for an empty directory.
func (c *Cmap) PreferredSubtable() int {
	priority := [][2]uint16{{3, 10}, {0, 4}, {3, 1}, {0, 3}}
	for _, p := range priority {
		for i, r := range c.recordOffs {
			if r.platformID == p[0] && r.encodingID == p[1] {
				return i
			}
		}
	}
	for i, r := range c.recordOffs {
		if r.platformID == 0 {
			return i
		}
	}
	if len(c.recordOffs) > 0 {
		return 0
	}
	return -1
}

func parseCmapFormat4(b []byte) (map[rune]uint16, error) {
	if len(b) < 14 {
		return nil, ErrTruncated
	}
	segCountX2 := int(u16(b[6:8]))
	segCount := segCountX2 / 2
	need := 14 + segCountX2*4 + 2
	if len(b) < need {
		return nil, ErrTruncated
	}
	endCodes := b[14:]
	startCodes := b[14+segCountX2+2:]
	idDeltas := b[14+segCountX2*2+2:]
	idRangeOffsets := b[14+segCountX2*3+2:]

	out := map[rune]uint16{}
	for seg := 0; seg < segCount; seg++ {
		end := u16(endCodes[seg*2 : seg*2+2])
		start := u16(startCodes[seg*2 : seg*2+2])
		delta := int16(u16(idDeltas[seg*2 : seg*2+2]))
		rangeOff := u16(idRangeOffsets[seg*2 : seg*2+2])
		if start == 0xFFFF && end == 0xFFFF {
			continue
		}
		for c := uint32(start); c <= uint32(end); c++ {
			var gid uint16
			if rangeOff == 0 {
				gid = uint16(int32(c) + int32(delta))
			} else {
				// Per the cmap format 4 spec, glyphIdArray index is
				// computed relative to the idRangeOffset word's own
				// position in the table.
				idx := int(rangeOff)/2 + int(c-uint32(start))
				glyphIDArray := idRangeOffsets[seg*2:]
				pos := idx * 2
				if pos < 0 || pos+2 > len(glyphIDArray) {
					continue
				}
				g := u16(glyphIDArray[pos : pos+2])
				if g == 0 {
					continue
				}
				gid = uint16(int32(g) + int32(delta))
			}
			if gid != 0 {
				out[rune(c)] = gid
			}
			if c == 0xFFFF {
				break
			}
		}
	}
	return out, nil
}

func parseCmapFormat12(b []byte) (map[rune]uint16, error) {
	if len(b) < 16 {
		return nil, ErrTruncated
	}
	numGroups := int(u32(b[12:16]))
	need := 16 + numGroups*12
	if len(b) < need {
		return nil, ErrTruncated
	}
	out := map[rune]uint16{}
	for i := 0; i < numGroups; i++ {
		g := b[16+i*12 : 16+i*12+12]
		startChar := u32(g[0:4])
		endChar := u32(g[4:8])
		startGlyph := u32(g[8:12])
		for c := startChar; c <= endChar; c++ {
			out[rune(c)] = uint16(startGlyph + (c - startChar))
			if c == 0xFFFFFFFF {
				break
			}
		}
	}
	return out, nil
}

// sortedRunes is a small helper for tests that want deterministic
// iteration order over a subtable's mapped runes.
func sortedRunes(m map[rune]uint16) []rune {
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
