package container

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/andybalholm/brotli"
)

// encodeUintBase128Small encodes a value below 128 as a single UIntBase128
// byte, which is all these tests need.
func encodeUintBase128Small(v uint32) []byte {
	if v >= 128 {
		panic("encodeUintBase128Small: value too large for this helper")
	}
	return []byte{byte(v)}
}

// buildWOFF2SingleTable assembles a minimal WOFF2 file with one
// untransformed table named tagStr holding payload. glyf/loca/hmtx at
// their transforming version are not handled by this helper's entry
// encoding (transformLength is never written), which is sufficient for
// the negative-case tests that only need parsing to fail consistently.
func buildWOFF2SingleTable(tagStr string, tagIndex byte, payload []byte) []byte {
	var entry bytes.Buffer
	entry.WriteByte(tagIndex) // flags: tagBits = tagIndex, transformVersion = 0
	entry.Write(encodeUintBase128Small(uint32(len(payload))))

	var compressed bytes.Buffer
	bw := brotli.NewWriter(&compressed)
	bw.Write(payload)
	bw.Close()

	const headerLen = 48
	pos := headerLen + entry.Len()
	total := pos + compressed.Len()

	b := make([]byte, total)
	binary.BigEndian.PutUint32(b[0:4], sigWOFF2)
	binary.BigEndian.PutUint32(b[4:8], sigTrueType)
	binary.BigEndian.PutUint32(b[8:12], uint32(total))
	binary.BigEndian.PutUint16(b[12:14], 1) // numTables
	binary.BigEndian.PutUint16(b[14:16], 0) // reserved
	binary.BigEndian.PutUint32(b[16:20], 0) // totalSfntSize, unchecked by decoder
	binary.BigEndian.PutUint32(b[20:24], uint32(compressed.Len()))

	copy(b[headerLen:], entry.Bytes())
	copy(b[pos:], compressed.Bytes())
	return b
}

func TestDecodeWOFF2UntransformedTable(t *testing.T) {
	payload := make([]byte, 20)
	for i := range payload {
		payload[i] = byte(i * 3)
	}
	// "head" is index 1 in knownTableTags.
	b := buildWOFF2SingleTable("head", 1, payload)

	out, err := DecodeWOFF2(b)
	if err != nil {
		t.Fatalf("DecodeWOFF2: %v", err)
	}
	if got := binary.BigEndian.Uint32(out[0:4]); got != sigTrueType {
		t.Errorf("sfnt_version = %#x, want %#x", got, sigTrueType)
	}
	if got := binary.BigEndian.Uint16(out[4:6]); got != 1 {
		t.Errorf("numTables = %d, want 1", got)
	}
	if got := string(out[12:16]); got != "head" {
		t.Errorf("directory tag = %q, want %q", got, "head")
	}
	dataOff := binary.BigEndian.Uint32(out[20:24])
	dataLen := binary.BigEndian.Uint32(out[24:28])
	if dataLen != uint32(len(payload)) {
		t.Fatalf("data length = %d, want %d", dataLen, len(payload))
	}
	got := out[dataOff : dataOff+dataLen]
	// checksumAdjustment (bytes 8:12 of head) must be zeroed by the decoder.
	want := append([]byte{}, payload...)
	binary.BigEndian.PutUint32(want[8:12], 0)
	if !bytes.Equal(got, want) {
		t.Errorf("reconstructed head table mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestDecodeWOFF2RejectsBadMagic(t *testing.T) {
	b := buildWOFF2SingleTable("head", 1, make([]byte, 18))
	binary.BigEndian.PutUint32(b[0:4], 0)
	if _, err := DecodeWOFF2(b); err == nil {
		t.Errorf("expected error for a bad WOFF2 magic")
	}
}

func TestDecodeWOFF2RejectsCollectionFlavor(t *testing.T) {
	b := buildWOFF2SingleTable("head", 1, make([]byte, 18))
	binary.BigEndian.PutUint32(b[4:8], sigCollection)
	if _, err := DecodeWOFF2(b); err == nil {
		t.Errorf("expected error for a ttcf flavor")
	}
}

// buildWOFF2TwoTables assembles a WOFF2 file with two untransformed
// tables, declared (and therefore laid out in the decompressed data
// stream) in the order given, independent of their alphabetical tag
// order used for the output SFNT directory.
func buildWOFF2TwoTables(tag1 string, idx1 byte, payload1 []byte, tag2 string, idx2 byte, payload2 []byte) []byte {
	var entries bytes.Buffer
	entries.WriteByte(idx1)
	entries.Write(encodeUintBase128Small(uint32(len(payload1))))
	entries.WriteByte(idx2)
	entries.Write(encodeUintBase128Small(uint32(len(payload2))))

	var compressed bytes.Buffer
	bw := brotli.NewWriter(&compressed)
	bw.Write(payload1)
	bw.Write(payload2)
	bw.Close()

	const headerLen = 48
	pos := headerLen + entries.Len()
	total := pos + compressed.Len()

	b := make([]byte, total)
	binary.BigEndian.PutUint32(b[0:4], sigWOFF2)
	binary.BigEndian.PutUint32(b[4:8], sigTrueType)
	binary.BigEndian.PutUint32(b[8:12], uint32(total))
	binary.BigEndian.PutUint16(b[12:14], 2) // numTables
	binary.BigEndian.PutUint16(b[14:16], 0) // reserved
	binary.BigEndian.PutUint32(b[16:20], 0)
	binary.BigEndian.PutUint32(b[20:24], uint32(compressed.Len()))

	copy(b[headerLen:], entries.Bytes())
	copy(b[pos:], compressed.Bytes())
	return b
}

func TestDecodeWOFF2PaddingDoesNotCorruptNextTable(t *testing.T) {
	// "post" (index 7) is declared first, so it occupies the lower
	// offsets of the decompressed data stream; "name" (index 5) follows
	// it physically but sorts before "post" alphabetically in the
	// output SFNT directory. post's payload length (3) is not a
	// multiple of 4, so building its table must not let the 4-byte
	// padding append corrupt name's physically-adjacent leading bytes.
	postPayload := []byte{0xAA, 0xBB, 0xCC}
	namePayload := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}
	b := buildWOFF2TwoTables("post", 7, postPayload, "name", 5, namePayload)

	out, err := DecodeWOFF2(b)
	if err != nil {
		t.Fatalf("DecodeWOFF2: %v", err)
	}

	findEntry := func(tagStr string) (offset, length uint32) {
		numTables := int(binary.BigEndian.Uint16(out[4:6]))
		for i := 0; i < numTables; i++ {
			rec := out[12+16*i : 12+16*i+16]
			if string(rec[0:4]) == tagStr {
				return binary.BigEndian.Uint32(rec[8:12]), binary.BigEndian.Uint32(rec[12:16])
			}
		}
		t.Fatalf("directory entry for %q not found", tagStr)
		return 0, 0
	}

	nameOff, nameLen := findEntry("name")
	if nameLen != uint32(len(namePayload)) {
		t.Fatalf("name length = %d, want %d", nameLen, len(namePayload))
	}
	got := out[nameOff : nameOff+nameLen]
	if !bytes.Equal(got, namePayload) {
		t.Errorf("name table corrupted by post's padding:\ngot  %v\nwant %v", got, namePayload)
	}
}

func TestDecodeWOFF2RejectsGlyfWithoutLoca(t *testing.T) {
	// "glyf" is index 10 in knownTableTags; omitting "loca" must fail the
	// has-glyf-implies-has-loca invariant.
	b := buildWOFF2SingleTable("glyf", 10, make([]byte, 18))
	if _, err := DecodeWOFF2(b); err == nil {
		t.Errorf("expected error when glyf is present without loca")
	}
}
