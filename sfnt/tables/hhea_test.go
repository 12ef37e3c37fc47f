package tables

import "testing"

func TestParseHheaReadsFields(t *testing.T) {
	b := make([]byte, 36)
	b[4], b[5] = 0x03, 0xE8 // Ascender = 1000
	b[34], b[35] = 0, 5     // NumberOfHMetrics = 5
	h, err := ParseHhea(b)
	if err != nil {
		t.Fatalf("ParseHhea: %v", err)
	}
	if h.Ascender != 1000 {
		t.Errorf("Ascender = %d, want 1000", h.Ascender)
	}
	if h.NumberOfHMetrics != 5 {
		t.Errorf("NumberOfHMetrics = %d, want 5", h.NumberOfHMetrics)
	}
}

func TestParseHheaRejectsTruncation(t *testing.T) {
	if _, err := ParseHhea(make([]byte, 35)); err != ErrTruncated {
		t.Errorf("ParseHhea(35 bytes) = %v, want ErrTruncated", err)
	}
}
