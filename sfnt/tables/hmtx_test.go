package tables

import "testing"

func TestParseHmtxRepeatsLastAdvanceWidth(t *testing.T) {
	// numberOfHMetrics=2, numGlyphs=4: glyphs 2 and 3 share record 1's width.
	b := []byte{
		0x01, 0xF4, 0x00, 0x0A, // glyph0: advance=500, lsb=10
		0x02, 0x58, 0x00, 0x14, // glyph1: advance=600, lsb=20
		0x00, 0x1E, // glyph2 lsb=30
		0x00, 0x28, // glyph3 lsb=40
	}
	h, err := ParseHmtx(b, 2, 4)
	if err != nil {
		t.Fatalf("ParseHmtx: %v", err)
	}
	if got := h.AdvanceWidth(0); got != 500 {
		t.Errorf("AdvanceWidth(0) = %d, want 500", got)
	}
	if got := h.AdvanceWidth(1); got != 600 {
		t.Errorf("AdvanceWidth(1) = %d, want 600", got)
	}
	if got := h.AdvanceWidth(2); got != 600 {
		t.Errorf("AdvanceWidth(2) = %d, want 600 (repeats glyph1's width)", got)
	}
	if got := h.AdvanceWidth(3); got != 600 {
		t.Errorf("AdvanceWidth(3) = %d, want 600 (repeats glyph1's width)", got)
	}
	if len(h.LeftSideBearing) != 2 || h.LeftSideBearing[0] != 30 || h.LeftSideBearing[1] != 40 {
		t.Errorf("LeftSideBearing = %+v, want [30, 40]", h.LeftSideBearing)
	}
}

func TestParseHmtxRejectsInvalidCounts(t *testing.T) {
	if _, err := ParseHmtx(nil, 5, 2); err != ErrInvalid {
		t.Errorf("ParseHmtx(numberOfHMetrics > numGlyphs) = %v, want ErrInvalid", err)
	}
	if _, err := ParseHmtx(nil, -1, 2); err != ErrInvalid {
		t.Errorf("ParseHmtx(negative numberOfHMetrics) = %v, want ErrInvalid", err)
	}
}

func TestParseHmtxRejectsTruncation(t *testing.T) {
	if _, err := ParseHmtx(make([]byte, 3), 1, 1); err != ErrTruncated {
		t.Errorf("ParseHmtx(truncated) = %v, want ErrTruncated", err)
	}
}

func TestHmtxAdvanceWidthEmptyMetrics(t *testing.T) {
	h := &Hmtx{}
	if got := h.AdvanceWidth(0); got != 0 {
		t.Errorf("AdvanceWidth on an empty Hmtx = %d, want 0", got)
	}
}
