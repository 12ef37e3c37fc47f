package cff

// Rebuild serializes a File back into a complete CFF table, recomputing
// the offsets of the structures it lays out: the Top DICT's CharStrings
// and Private (size+offset), and Private's Subrs (offset relative to
// Private's own start). Other offset-valued Top DICT entries (charset,
// Encoding, FDArray, FDSelect) are copied unchanged, and the data they
// point at is not written to the output. Callers mutate f.CharStrings/f.Private/f.LSubrs (e.g. via
// ReplaceCharString) before calling Rebuild; Name, TopDict's own
// non-offset entries, Strings and GSubrs are carried through unchanged.
//
// The serialization order mirrors the parse order: header, Name INDEX,
// Top DICT INDEX, String INDEX, Global Subr INDEX, CharStrings INDEX,
// Private DICT, Local Subr INDEX. This is the conventional CFF layout
// and the one every offset fixup below assumes.
func (f *File) Rebuild() ([]byte, error) {
	hdrSize := f.Header.HdrSize
	if hdrSize == 0 {
		hdrSize = 4
	}
	header := []byte{f.Header.MajorVersion, f.Header.MinorVersion, hdrSize, 4}
	if len(header) < int(hdrSize) {
		pad := make([]byte, int(hdrSize)-len(header))
		header = append(header, pad...)
	}

	// The Top DICT's offset-valued entries are placeholders until the
	// trailing structures' final positions are known, so the DICT is
	// serialized twice: once to measure the Top DICT INDEX's own size
	// (which fixes where everything after it starts), and once more
	// with the real offsets patched in.
	topDict := cloneDict(f.TopDict)
	topDict.Set("CharStrings", []Operand{IntOperand(0)})
	if f.Private != nil {
		topDict.Set("Private", []Operand{IntOperand(0), IntOperand(0)})
	}

	nameBytes := indexBytesOrEmpty(f.Name)
	strBytes := indexBytesOrEmpty(f.Strings)
	gsubrBytes := indexBytesOrEmpty(f.GSubrs)

	topDictIndexBytes := BuildIndex([][]byte{topDict.Build()})

	base := len(header) + len(nameBytes) + len(topDictIndexBytes) + len(strBytes) + len(gsubrBytes)

	charStringsOff := base
	charStringsBytes := BuildIndex(f.CharStrings.Items())

	var privateBytes, lsubrBytes []byte
	privateOff, privateSize := 0, 0
	if f.Private != nil {
		priv := cloneDict(f.Private)
		if f.LSubrs != nil {
			// Subrs offset in the Private DICT is relative to the start
			// of the Private DICT itself, i.e. the Private DICT's own
			// encoded length once Subrs is in place. Two passes pin this
			// down: an initial guess, then the exact length below.
			priv.Set("Subrs", []Operand{IntOperand(int32(len(priv.Build())))})
			priv.Set("Subrs", []Operand{IntOperand(int32(len(priv.Build())))})
		}
		privateBytes = priv.Build()
		privateOff = charStringsOff + len(charStringsBytes)
		privateSize = len(privateBytes)
		if f.LSubrs != nil {
			lsubrBytes = BuildIndex(f.LSubrs.Items())
		}
	}

	topDict.Set("CharStrings", []Operand{IntOperand(int32(charStringsOff))})
	if f.Private != nil {
		topDict.Set("Private", []Operand{IntOperand(int32(privateSize)), IntOperand(int32(privateOff))})
	}
	topDictIndexBytes = BuildIndex([][]byte{topDict.Build()})

	// Re-measure: patching the Top DICT's offset operands can change its
	// own encoded length (narrower/wider integer forms), which would
	// shift everything after it. One fixed-point iteration is sufficient
	// in practice since CharStrings/Private offsets only grow by at most
	// a couple of bytes; iterate defensively until stable.
	for i := 0; i < 4; i++ {
		newBase := len(header) + len(nameBytes) + len(topDictIndexBytes) + len(strBytes) + len(gsubrBytes)
		if newBase == base {
			break
		}
		base = newBase
		charStringsOff = base
		if f.Private != nil {
			privateOff = charStringsOff + len(charStringsBytes)
		}
		topDict.Set("CharStrings", []Operand{IntOperand(int32(charStringsOff))})
		if f.Private != nil {
			topDict.Set("Private", []Operand{IntOperand(int32(privateSize)), IntOperand(int32(privateOff))})
		}
		topDictIndexBytes = BuildIndex([][]byte{topDict.Build()})
	}

	out := make([]byte, 0, base+len(charStringsBytes)+privateSize+len(lsubrBytes))
	out = append(out, header...)
	out = append(out, nameBytes...)
	out = append(out, topDictIndexBytes...)
	out = append(out, strBytes...)
	out = append(out, gsubrBytes...)
	out = append(out, charStringsBytes...)
	out = append(out, privateBytes...)
	out = append(out, lsubrBytes...)
	return out, nil
}

// ReplaceCharString swaps the i'th glyph's CharString bytes, leaving all
// other glyphs and subroutines untouched.
func (f *File) ReplaceCharString(i int, data []byte) error {
	if i < 0 || i >= f.CharStrings.Count() {
		return ErrInvalidIndex
	}
	items := f.CharStrings.Items()
	items[i] = data
	f.CharStrings = buildInMemoryIndex(items)
	return nil
}

// buildInMemoryIndex round-trips items through BuildIndex/ParseIndex to
// produce an Index backed by a fresh, self-consistent offset table.
func buildInMemoryIndex(items [][]byte) *Index {
	b := BuildIndex(items)
	idx, _, err := ParseIndex(b)
	if err != nil {
		// BuildIndex always produces a well-formed INDEX for any input
		// items, so ParseIndex cannot fail here.
		panic("cff: BuildIndex produced an unparsable INDEX: " + err.Error())
	}
	return idx
}

func cloneDict(d *Dict) *Dict {
	if d == nil {
		return &Dict{}
	}
	cp := &Dict{Entries: make([]Entry, len(d.Entries))}
	copy(cp.Entries, d.Entries)
	return cp
}

func indexBytesOrEmpty(idx *Index) []byte {
	if idx == nil {
		return BuildIndex(nil)
	}
	return BuildIndex(idx.Items())
}
