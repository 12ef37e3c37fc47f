package sfnt

import (
	"github.com/fontist/fontisan-sub002/internal/flog"
	"github.com/fontist/fontisan-sub002/tag"
)

// Writer assembles a new SFNT byte stream from a set of tag->bytes
// table contents. It is independent of any
// particular Font: FromFont seeds one from an already-opened font, and
// SetTable lets a caller add, replace, or drop tables (e.g. after
// rewriting a 'CFF ' table via cff.File.Rebuild) before writing.
type Writer struct {
	sfntVersion uint32
	tables      map[tag.Tag][]byte
}

// NewWriter starts an empty Writer for the given sfnt_version (one of
// the versionTrueType/versionOpenTypeCFF constants, or any value the
// caller already knows is correct for its output).
func NewWriter(sfntVersion uint32) *Writer {
	return &Writer{sfntVersion: sfntVersion, tables: map[tag.Tag][]byte{}}
}

// FromFont seeds a Writer with every table the Font currently exposes
// (subject to its Mode), read in full via RawTable. The returned
// Writer's sfnt_version matches the source font's.
func FromFont(f *Font) (*Writer, error) {
	w := NewWriter(f.Offset.SfntVersion)
	for _, e := range f.Directory {
		b, err := f.RawTable(e.Tag)
		if err != nil {
			return nil, err
		}
		w.SetTable(e.Tag, b)
	}
	return w, nil
}

// SetTable adds or replaces a table's contents. Passing a nil data
// removes the table from the set this Writer will emit.
func (w *Writer) SetTable(t tag.Tag, data []byte) {
	if data == nil {
		delete(w.tables, t)
		return
	}
	w.tables[t] = data
}

// Write serializes the table set into a complete SFNT byte stream:
// tables are emitted in ascending tag
// order, each padded to a 4-byte boundary; the directory records each
// table's checksum, padded offset and unpadded length; and, if a 'head'
// table is present, its checksumAdjustment field is recomputed last so
// the whole file's checksum (per tableChecksum, summed over the entire
// serialized output with checksumAdjustment temporarily zeroed) plus
// the stored adjustment equals checksumMagic mod 2^32.
func (w *Writer) Write() ([]byte, error) {
	tags := make([]tag.Tag, 0, len(w.tables))
	for t := range w.tables {
		tags = append(tags, t)
	}
	tags = sortedTags(tags)

	numTables := len(tags)
	headerLen := 12 + 16*numTables
	out := make([]byte, headerLen)
	copy(out, writeOffsetTable(w.sfntVersion, numTables))

	offset := uint32(headerLen)
	dirPos := 12
	headEntryPos := -1
	for _, t := range tags {
		data := w.tables[t]
		checksum := tableChecksum(data)

		entry := out[dirPos : dirPos+16]
		copy(entry[0:4], t[:])
		putU32(entry[4:8], checksum)
		putU32(entry[8:12], offset)
		putU32(entry[12:16], uint32(len(data)))

		out = append(out, data...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
		if t == tag.Head {
			headEntryPos = int(offset)
		}
		offset = uint32(len(out))
		dirPos += 16
	}

	if headEntryPos >= 0 && headEntryPos+12 <= len(out) {
		putU32(out[headEntryPos+8:headEntryPos+12], 0)

		headEntry := findDirEntry(out, numTables, tag.Head)
		if headEntry >= 0 {
			headLen := int(u32(out[headEntry+12 : headEntry+16]))
			headBytes := out[headEntryPos : headEntryPos+headLen]
			putU32(out[headEntry+4:headEntry+8], headChecksum(headBytes))
		}

		fileSum := tableChecksum(out)
		adjustment := checksumMagic - fileSum
		putU32(out[headEntryPos+8:headEntryPos+12], adjustment)
	}

	flog.Logger().Debug("sfnt serialized", "tables", numTables, "bytes", len(out))
	return out, nil
}

// findDirEntry returns the byte offset, within out, of the directory
// record for tag t, or -1 if absent.
func findDirEntry(out []byte, numTables int, t tag.Tag) int {
	for i := 0; i < numTables; i++ {
		pos := 12 + i*16
		if tag.FromBytes(out[pos:pos+4]) == t {
			return pos
		}
	}
	return -1
}
