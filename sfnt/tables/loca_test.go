package tables

import "reflect"
import "testing"

func TestParseLocaShortFormDoublesOffsets(t *testing.T) {
	// 2 glyphs -> 3 offsets, short form stores offset/2.
	b := []byte{0x00, 0x00, 0x00, 0x05, 0x00, 0x0A}
	loca, err := ParseLoca(b, 2, false)
	if err != nil {
		t.Fatalf("ParseLoca: %v", err)
	}
	want := []uint32{0, 10, 20}
	if !reflect.DeepEqual(loca.Offsets, want) {
		t.Errorf("Offsets = %v, want %v", loca.Offsets, want)
	}
}

func TestParseLocaLongFormReadsOffsetsDirectly(t *testing.T) {
	b := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x01, 0x00,
		0x00, 0x00, 0x02, 0x00,
	}
	loca, err := ParseLoca(b, 2, true)
	if err != nil {
		t.Fatalf("ParseLoca: %v", err)
	}
	want := []uint32{0, 256, 512}
	if !reflect.DeepEqual(loca.Offsets, want) {
		t.Errorf("Offsets = %v, want %v", loca.Offsets, want)
	}
}

func TestParseLocaRejectsTruncation(t *testing.T) {
	if _, err := ParseLoca(make([]byte, 3), 2, false); err != ErrTruncated {
		t.Errorf("ParseLoca(short, truncated) = %v, want ErrTruncated", err)
	}
	if _, err := ParseLoca(make([]byte, 5), 2, true); err != ErrTruncated {
		t.Errorf("ParseLoca(long, truncated) = %v, want ErrTruncated", err)
	}
}
