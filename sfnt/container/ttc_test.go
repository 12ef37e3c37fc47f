package container

import (
	"encoding/binary"
	"testing"
)

// buildTTCHeader assembles a minimal version-1 'ttcf' header with the
// given per-font offsets, each pointing at a 4-byte sfnt_version
// signature appended after the header.
func buildTTCHeader(sigs []uint32) []byte {
	numFonts := len(sigs)
	headerLen := 12 + 4*numFonts
	total := headerLen + 4*numFonts
	b := make([]byte, total)
	binary.BigEndian.PutUint32(b[0:4], sigCollection)
	binary.BigEndian.PutUint16(b[4:6], 1)
	binary.BigEndian.PutUint16(b[6:8], 0)
	binary.BigEndian.PutUint32(b[8:12], uint32(numFonts))
	for i, sig := range sigs {
		off := uint32(headerLen + 4*i)
		binary.BigEndian.PutUint32(b[12+4*i:16+4*i], off)
		binary.BigEndian.PutUint32(b[off:off+4], sig)
	}
	return b
}

func TestParseCollectionOffsetArrayStartsAtByte12(t *testing.T) {
	// The per-font offset array begins immediately after the 12-byte
	// tag/version/numFonts header, not at byte 8 -- a detail that is
	// easy to get wrong by analogy with other length-prefixed formats.
	b := buildTTCHeader([]uint32{sigTrueType, sigOpenType})
	c, err := ParseCollection(b)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if c.NumFonts() != 2 {
		t.Fatalf("NumFonts() = %d, want 2", c.NumFonts())
	}
	wantFirst := uint32(12 + 4*2)
	got, err := c.FontOffset(0)
	if err != nil {
		t.Fatalf("FontOffset(0): %v", err)
	}
	if got != wantFirst {
		t.Errorf("FontOffset(0) = %d, want %d", got, wantFirst)
	}
}

func TestParseCollectionRejectsShortHeader(t *testing.T) {
	if _, err := ParseCollection([]byte{0, 1, 2, 3}); err == nil {
		t.Errorf("expected error for a too-short buffer")
	}
}

func TestParseCollectionRejectsWrongSignature(t *testing.T) {
	b := make([]byte, 16)
	binary.BigEndian.PutUint32(b[0:4], sigWOFF)
	if _, err := ParseCollection(b); err == nil {
		t.Errorf("expected error for a non-ttcf signature")
	}
}

func TestParseCollectionRejectsOutOfRangeOffset(t *testing.T) {
	b := make([]byte, 16)
	binary.BigEndian.PutUint32(b[0:4], sigCollection)
	binary.BigEndian.PutUint32(b[8:12], 1)
	binary.BigEndian.PutUint32(b[12:16], 1000)
	if _, err := ParseCollection(b); err == nil {
		t.Errorf("expected error for an out-of-range font offset")
	}
}

func TestIsOpenTypeCollectionMixedFonts(t *testing.T) {
	// A collection mixing TrueType and OpenType/CFF fonts is classified
	// as OTC: any OpenType-flavored member is enough.
	b := buildTTCHeader([]uint32{sigTrueType, sigOpenType})
	c, err := ParseCollection(b)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	anyOTF, err := c.IsOpenTypeCollection(b)
	if err != nil {
		t.Fatalf("IsOpenTypeCollection: %v", err)
	}
	if !anyOTF {
		t.Errorf("IsOpenTypeCollection = false for a mixed collection, want true")
	}
}

func TestIsOpenTypeCollectionAllOpenType(t *testing.T) {
	b := buildTTCHeader([]uint32{sigOpenType, sigOpenType})
	c, err := ParseCollection(b)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	allOTF, err := c.IsOpenTypeCollection(b)
	if err != nil {
		t.Fatalf("IsOpenTypeCollection: %v", err)
	}
	if !allOTF {
		t.Errorf("IsOpenTypeCollection = false for an all-OpenType collection, want true")
	}
}

func TestIsOpenTypeCollectionRejectsUnrecognizedMember(t *testing.T) {
	b := buildTTCHeader([]uint32{sigOpenType, 0xdeadbeef})
	c, err := ParseCollection(b)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if _, err := c.IsOpenTypeCollection(b); err == nil {
		t.Errorf("expected error for a member with an unrecognized sfnt_version")
	}
}

func TestVersion2HeaderCarriesDSIG(t *testing.T) {
	const numFonts = 1
	headerLen := 12 + 4*numFonts // tag+version+numFonts, then the offset array
	dsigPos := headerLen         // the version-2 DSIG fields follow the offset array
	sigPos := dsigPos + 12       // the single font's sfnt_version signature
	total := sigPos + 4
	b := make([]byte, total)
	binary.BigEndian.PutUint32(b[0:4], sigCollection)
	binary.BigEndian.PutUint16(b[4:6], 2)
	binary.BigEndian.PutUint16(b[6:8], 0)
	binary.BigEndian.PutUint32(b[8:12], numFonts)
	binary.BigEndian.PutUint32(b[12:16], uint32(sigPos))
	binary.BigEndian.PutUint32(b[sigPos:sigPos+4], sigTrueType)

	binary.BigEndian.PutUint32(b[dsigPos:dsigPos+4], 0x44534947) // 'DSIG'
	binary.BigEndian.PutUint32(b[dsigPos+4:dsigPos+8], 100)
	binary.BigEndian.PutUint32(b[dsigPos+8:dsigPos+12], 200)

	c, err := ParseCollection(b)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if c.DSIGTag != 0x44534947 || c.DSIGLength != 100 || c.DSIGOffset != 200 {
		t.Errorf("DSIG fields = %#x, %d, %d; want 0x44534947, 100, 200",
			c.DSIGTag, c.DSIGLength, c.DSIGOffset)
	}
}
