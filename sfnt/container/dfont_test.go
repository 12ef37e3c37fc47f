package container

import (
	"encoding/binary"
	"testing"
)

// buildDfont assembles a minimal, single-type, single-resource classic Mac
// OS resource fork containing one 'sfnt' resource holding payload.
func buildDfont(payload []byte) []byte {
	const (
		headerLen    = 16
		mapHeaderLen = 28
	)
	dataOffset := uint32(headerLen)
	dataLen := uint32(4 + len(payload)) // length-prefixed resource data
	mapOffset := dataOffset + dataLen

	typeListOffsetInMap := uint16(mapHeaderLen)
	typeListOffset := mapOffset + uint32(typeListOffsetInMap)
	// type list: numTypesMinus1 (2) + one type entry (8)
	refListOffsetInType := uint16(2 + 8) // right after the (single) type entry
	refListOffset := typeListOffset + uint32(refListOffsetInType)
	// ref list: one 12-byte entry
	mapLen := uint32(refListOffsetInType) + 12

	total := int(mapOffset + mapLen)
	b := make([]byte, total)

	binary.BigEndian.PutUint32(b[0:4], dataOffset)
	binary.BigEndian.PutUint32(b[4:8], mapOffset)
	binary.BigEndian.PutUint32(b[8:12], dataLen)
	binary.BigEndian.PutUint32(b[12:16], mapLen)

	binary.BigEndian.PutUint32(b[dataOffset:dataOffset+4], uint32(len(payload)))
	copy(b[dataOffset+4:], payload)

	binary.BigEndian.PutUint16(b[mapOffset+24:mapOffset+26], typeListOffsetInMap)

	binary.BigEndian.PutUint16(b[typeListOffset:typeListOffset+2], 0) // numTypesMinus1 = 0 -> 1 type
	entryOffset := typeListOffset + 2
	binary.BigEndian.PutUint32(b[entryOffset:entryOffset+4], sfntResourceType)
	binary.BigEndian.PutUint16(b[entryOffset+4:entryOffset+6], 0) // numResMinus1 = 0 -> 1 resource
	binary.BigEndian.PutUint16(b[entryOffset+6:entryOffset+8], refListOffsetInType)

	// ref list entry: resID(2), nameOffset(2), packed attr+dataOffset(4), handle(4)
	binary.BigEndian.PutUint32(b[refListOffset+4:refListOffset+8], 0) // dataOffInArea = 0

	return b
}

func TestParseDfontExtractsSfntResource(t *testing.T) {
	payload := []byte("fake-sfnt-bytes")
	b := buildDfont(payload)

	fonts, err := ParseDfont(b)
	if err != nil {
		t.Fatalf("ParseDfont: %v", err)
	}
	if len(fonts) != 1 {
		t.Fatalf("got %d resources, want 1", len(fonts))
	}
	if string(fonts[0]) != string(payload) {
		t.Errorf("resource data = %q, want %q", fonts[0], payload)
	}
}

func TestParseDfontRejectsTooShort(t *testing.T) {
	if _, err := ParseDfont(make([]byte, 8)); err == nil {
		t.Errorf("expected error for a too-short buffer")
	}
}

func TestParseDfontRejectsNoSfntResource(t *testing.T) {
	b := buildDfont([]byte("x"))
	// Corrupt the resource type so nothing matches 'sfnt'.
	const mapHeaderLen = 28
	dataOffset := binary.BigEndian.Uint32(b[0:4])
	mapOffset := binary.BigEndian.Uint32(b[4:8])
	typeListOffsetInMap := binary.BigEndian.Uint16(b[mapOffset+24 : mapOffset+26])
	typeListOffset := mapOffset + uint32(typeListOffsetInMap)
	entryOffset := typeListOffset + 2
	binary.BigEndian.PutUint32(b[entryOffset:entryOffset+4], 0x424f4f00) // not 'sfnt'
	_ = dataOffset

	if _, err := ParseDfont(b); err == nil {
		t.Errorf("expected error when no 'sfnt' resource is present")
	}
}
