package sfnt

import "github.com/fontist/fontisan-sub002/tag"

// buildMinimalTrueTypeFont assembles a complete, valid single-glyph
// TrueType SFNT byte stream via Writer, exercising the same serialization
// path FromFont/Write use. The lone glyph is empty (start==end in loca),
// which is legal and keeps the fixture self-contained.
func buildMinimalTrueTypeFont() []byte {
	head := make([]byte, 54)
	putU16(head[0:2], 1)    // majorVersion
	putU16(head[18:20], 1000) // unitsPerEm
	putU16(head[50:52], 0)  // indexToLocFormat: short

	maxp := make([]byte, 32)
	putU32(maxp[0:4], 0x00010000)
	putU16(maxp[4:6], 1) // numGlyphs

	hhea := make([]byte, 36)
	putU16(hhea[34:36], 1) // numberOfHMetrics

	hmtx := make([]byte, 4)
	putU16(hmtx[0:2], 500) // advanceWidth
	putU16(hmtx[2:4], 0)   // lsb

	loca := make([]byte, 4) // 2 offsets, both 0: the one glyph is empty
	glyf := []byte{}

	w := NewWriter(versionTrueType)
	w.SetTable(tag.Head, head)
	w.SetTable(tag.Maxp, maxp)
	w.SetTable(tag.Hhea, hhea)
	w.SetTable(tag.Hmtx, hmtx)
	w.SetTable(tag.Loca, loca)
	w.SetTable(tag.Glyf, glyf)

	out, err := w.Write()
	if err != nil {
		panic("buildMinimalTrueTypeFont: " + err.Error())
	}
	return out
}
