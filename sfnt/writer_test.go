package sfnt

import (
	"testing"

	"github.com/fontist/fontisan-sub002/tag"
)

func TestWriterEmitsTablesInAscendingTagOrder(t *testing.T) {
	w := NewWriter(versionTrueType)
	w.SetTable(tag.Maxp, []byte{1, 2, 3, 4})
	w.SetTable(tag.Head, make([]byte, 54))
	w.SetTable(tag.Hhea, make([]byte, 36))

	out, err := w.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	numTables := int(u16(out[4:6]))
	if numTables != 3 {
		t.Fatalf("numTables = %d, want 3", numTables)
	}
	var tags []tag.Tag
	for i := 0; i < numTables; i++ {
		pos := 12 + i*16
		tags = append(tags, tag.FromBytes(out[pos:pos+4]))
	}
	for i := 1; i < len(tags); i++ {
		if !tags[i-1].Less(tags[i]) {
			t.Errorf("tags not ascending: %v", tags)
		}
	}
}

func TestWriterPadsEachTableToFourByteBoundary(t *testing.T) {
	w := NewWriter(versionTrueType)
	w.SetTable(tag.Maxp, []byte{1, 2, 3}) // 3 bytes: needs 1 byte of padding
	out, err := w.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	entry := out[12:28]
	length := u32(entry[12:16])
	offset := u32(entry[8:12])
	if length != 3 {
		t.Errorf("recorded length = %d, want 3 (unpadded)", length)
	}
	if int(offset)+4 != len(out) {
		t.Errorf("table data region = %d bytes, want 4 (padded)", len(out)-int(offset))
	}
}

func TestWriterSetTableNilRemovesTable(t *testing.T) {
	w := NewWriter(versionTrueType)
	w.SetTable(tag.Maxp, []byte{1, 2, 3, 4})
	w.SetTable(tag.Maxp, nil)
	out, err := w.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if u16(out[4:6]) != 0 {
		t.Errorf("numTables = %d, want 0 after removing the only table", u16(out[4:6]))
	}
}

func TestWriterChecksumAdjustmentSatisfiesMagicSum(t *testing.T) {
	head := make([]byte, 54)
	putU16(head[0:2], 1)
	putU16(head[18:20], 1000)
	putU32(head[8:12], 0xDEADBEEF) // stale checksumAdjustment, must be recomputed

	w := NewWriter(versionTrueType)
	w.SetTable(tag.Head, head)
	w.SetTable(tag.Maxp, []byte{0, 1, 0, 0, 0, 1})

	out, err := w.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	headEntry := findDirEntry(out, int(u16(out[4:6])), tag.Head)
	if headEntry < 0 {
		t.Fatalf("head directory entry not found")
	}
	headOffset := u32(out[headEntry+8 : headEntry+12])

	cloned := append([]byte(nil), out...)
	putU32(cloned[headOffset+8:headOffset+12], 0)
	fileSum := tableChecksum(cloned)
	adjustment := u32(out[headOffset+8 : headOffset+12])

	if fileSum+adjustment != checksumMagic {
		t.Errorf("fileSum+adjustment = %#x, want %#x", fileSum+adjustment, checksumMagic)
	}
}

func TestWriterRecordsPerTableChecksum(t *testing.T) {
	w := NewWriter(versionTrueType)
	data := []byte{10, 20, 30, 40}
	w.SetTable(tag.Maxp, data)
	out, err := w.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	entry := out[12:28]
	gotChecksum := u32(entry[4:8])
	wantChecksum := tableChecksum(data)
	if gotChecksum != wantChecksum {
		t.Errorf("recorded checksum = %#x, want %#x", gotChecksum, wantChecksum)
	}
}

func TestFindDirEntryReturnsMinusOneWhenAbsent(t *testing.T) {
	w := NewWriter(versionTrueType)
	w.SetTable(tag.Maxp, []byte{1, 2, 3, 4})
	out, err := w.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if pos := findDirEntry(out, int(u16(out[4:6])), tag.Head); pos != -1 {
		t.Errorf("findDirEntry for an absent tag = %d, want -1", pos)
	}
}

func TestFromFontSeedsWriterFromOpenedFont(t *testing.T) {
	data := buildMinimalTrueTypeFont()
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	w, err := FromFont(f)
	if err != nil {
		t.Fatalf("FromFont: %v", err)
	}
	out, err := w.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if int(u16(out[4:6])) != f.NumTables() {
		t.Errorf("round-tripped table count = %d, want %d", u16(out[4:6]), f.NumTables())
	}

	// The round-tripped bytes must themselves parse back cleanly.
	if _, err := Parse(out); err != nil {
		t.Errorf("re-parsing FromFont's output failed: %v", err)
	}
}
