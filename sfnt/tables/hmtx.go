package tables

// LongHorMetric is one (advanceWidth, leftSideBearing) pair.
type LongHorMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// Hmtx is the parsed 'hmtx' table: numberOfHMetrics full records, followed
// by (numGlyphs - numberOfHMetrics) left-side-bearings that share the
// final record's advance width.
type Hmtx struct {
	HMetrics        []LongHorMetric
	LeftSideBearing []int16
}

// AdvanceWidth returns the advance width for glyph index i, applying the
// "last record repeats" rule for glyphs beyond numberOfHMetrics.
func (h *Hmtx) AdvanceWidth(i int) uint16 {
	if i < len(h.HMetrics) {
		return h.HMetrics[i].AdvanceWidth
	}
	if len(h.HMetrics) == 0 {
		return 0
	}
	return h.HMetrics[len(h.HMetrics)-1].AdvanceWidth
}

func ParseHmtx(b []byte, numberOfHMetrics, numGlyphs int) (*Hmtx, error) {
	if numberOfHMetrics > numGlyphs || numberOfHMetrics < 0 || numGlyphs < 0 {
		return nil, ErrInvalid
	}
	need := numberOfHMetrics*4 + (numGlyphs-numberOfHMetrics)*2
	if len(b) < need {
		return nil, ErrTruncated
	}
	h := &Hmtx{
		HMetrics:        make([]LongHorMetric, numberOfHMetrics),
		LeftSideBearing: make([]int16, numGlyphs-numberOfHMetrics),
	}
	off := 0
	for i := range h.HMetrics {
		h.HMetrics[i] = LongHorMetric{
			AdvanceWidth:    u16(b[off : off+2]),
			LeftSideBearing: i16(b[off+2 : off+4]),
		}
		off += 4
	}
	for i := range h.LeftSideBearing {
		h.LeftSideBearing[i] = i16(b[off : off+2])
		off += 2
	}
	return h, nil
}
