package sfnt

import (
	"github.com/fontist/fontisan-sub002/tag"
)

// Mode selects how aggressively a Font loads its tables on Open. Metadata
// restricts access to the fixed tag.MetadataSet whitelist
// (name/head/hhea/maxp/OS2/post); Full allows every table, subject to Lazy.
type Mode int

const (
	// Metadata restricts Table access to tag.MetadataSet.
	Metadata Mode = iota
	// Full allows access to any table present in the font.
	Full
)

// Font is an opened SFNT font: its Offset Table, table directory, and a
// cache of already-decoded tables, gated by Mode and populated either
// eagerly or lazily depending on Lazy.
type Font struct {
	src *source

	sourceName string
	Offset     OffsetTable
	Directory  []TableDirectoryEntry
	byTag      map[tag.Tag]TableDirectoryEntry

	mode Mode
	lazy bool

	raw    map[tag.Tag][]byte
	parsed map[tag.Tag]interface{}

	isPostScript bool
}

// NumTables returns the number of entries in the table directory.
func (f *Font) NumTables() int { return len(f.Directory) }

// HasTable reports whether tag t is present in the directory, regardless
// of Mode (Mode only gates decoding, not directory visibility).
func (f *Font) HasTable(t tag.Tag) bool {
	_, ok := f.byTag[t]
	return ok
}

// IsPostScript reports whether the font is OpenType/CFF flavored
// ('OTTO'), as opposed to TrueType-outline.
func (f *Font) IsPostScript() bool { return f.isPostScript }

// Close releases any OS resources the Font holds (an owned *os.File).
// Fonts opened from memory or a caller-supplied io.ReaderAt are no-ops.
func (f *Font) Close() error {
	if f.src == nil {
		return nil
	}
	return f.src.close()
}

// checkModeAllows enforces mode gate: in Metadata mode, only
// tags in tag.MetadataSet may be read.
func (f *Font) checkModeAllows(t tag.Tag) error {
	if f.mode == Full {
		return nil
	}
	if tag.MetadataSet[t] {
		return nil
	}
	return newErr(KindModeRestricted, f.sourceName, t, 0, "", nil)
}

// RawTable returns a table's raw bytes, honoring Mode and Lazy, reading
// through the page cache on first access in lazy mode.
func (f *Font) RawTable(t tag.Tag) ([]byte, error) {
	if err := f.checkModeAllows(t); err != nil {
		return nil, err
	}
	if b, ok := f.raw[t]; ok {
		return b, nil
	}
	entry, ok := f.byTag[t]
	if !ok {
		return nil, newErr(KindMissingRequiredTable, f.sourceName, t, 0, "", nil)
	}
	var b []byte
	var err error
	if f.lazy {
		b, err = f.src.viewPaged(int64(entry.Offset), int64(entry.Length))
	} else {
		b, err = f.src.readAllAt(int64(entry.Offset), int64(entry.Length))
	}
	if err != nil {
		return nil, wrap(err, f.sourceName, t, int64(entry.Offset))
	}
	if f.raw == nil {
		f.raw = map[tag.Tag][]byte{}
	}
	f.raw[t] = b
	return b, nil
}

// validateRequiredTables enforces Font invariants: 'head' is
// always required; 'maxp' is required for any outline font; an OTTO
// sfntVersion requires 'CFF ' or 'CFF2'; otherwise 'glyf' and 'loca' are
// required together.
func (f *Font) validateRequiredTables() error {
	if !f.HasTable(tag.Head) {
		return newErr(KindMissingRequiredTable, f.sourceName, tag.Head, 0, "", nil)
	}
	if !f.HasTable(tag.Maxp) {
		return newErr(KindMissingRequiredTable, f.sourceName, tag.Maxp, 0, "", nil)
	}
	if f.isPostScript {
		if !f.HasTable(tag.CFF) && !f.HasTable(tag.CFF2) {
			return newErr(KindMissingRequiredTable, f.sourceName, tag.CFF, 0, "", nil)
		}
		return nil
	}
	if !f.HasTable(tag.Glyf) {
		return newErr(KindMissingRequiredTable, f.sourceName, tag.Glyf, 0, "", nil)
	}
	if !f.HasTable(tag.Loca) {
		return newErr(KindMissingRequiredTable, f.sourceName, tag.Loca, 0, "", nil)
	}
	return nil
}
