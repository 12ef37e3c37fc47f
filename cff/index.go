package cff

// Index is a parsed CFF INDEX: a variable-width container of byte strings. Item access
// never copies: Item returns a sub-slice of the original backing array.
type Index struct {
	data    []byte   // the INDEX's "data" region
	offsets []uint32 // count+1 entries, 0-based after the off-by-one correction
}

// Count returns the number of items in the INDEX.
func (idx *Index) Count() int {
	if idx == nil || len(idx.offsets) == 0 {
		return 0
	}
	return len(idx.offsets) - 1
}

// Item returns the i'th item's bytes without copying.
func (idx *Index) Item(i int) []byte {
	return idx.data[idx.offsets[i]:idx.offsets[i+1]]
}

// TotalSize returns the byte length of the INDEX as it appeared (or would
// appear) on disk, including its header, offset array and data.
func (idx *Index) TotalSize() int {
	if idx.Count() == 0 {
		return 2
	}
	offSize := minOffSize(idx.offsets[len(idx.offsets)-1] + 1)
	return 2 + 1 + len(idx.offsets)*offSize + len(idx.data)
}

// bigEndian decodes a big-endian integer from a 1..4 byte slice.
func bigEndian(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// ParseIndex reads one INDEX structure starting at b[0:], returning the
// parsed Index and the number of bytes it consumed.
func ParseIndex(b []byte) (*Index, int, error) {
	if len(b) < 2 {
		return nil, 0, ErrTruncated
	}
	count := int(uint16(b[0])<<8 | uint16(b[1]))
	if count == 0 {
		return &Index{}, 2, nil
	}
	if len(b) < 3 {
		return nil, 0, ErrTruncated
	}
	offSize := int(b[2])
	if offSize < 1 || offSize > 4 {
		return nil, 0, ErrInvalidIndex
	}
	offArrayStart := 3
	offArrayLen := (count + 1) * offSize
	if len(b) < offArrayStart+offArrayLen {
		return nil, 0, ErrTruncated
	}
	offsets := make([]uint32, count+1)
	prev := uint32(0)
	for i := 0; i <= count; i++ {
		raw := bigEndian(b[offArrayStart+i*offSize : offArrayStart+(i+1)*offSize])
		if raw == 0 {
			return nil, 0, ErrInvalidIndex
		}
		loc := raw - 1 // offsets are 1-based into data
		if i == 0 {
			if loc != 0 {
				return nil, 0, ErrInvalidIndex
			}
		} else if loc < prev {
			return nil, 0, ErrInvalidIndex
		}
		offsets[i] = loc
		prev = loc
	}
	dataStart := offArrayStart + offArrayLen
	dataLen := int(offsets[count])
	if len(b) < dataStart+dataLen {
		return nil, 0, ErrTruncated
	}
	idx := &Index{
		data:    b[dataStart : dataStart+dataLen],
		offsets: offsets,
	}
	return idx, dataStart + dataLen, nil
}

// minOffSize returns the smallest off_size in {1,2,3,4} that can address
// a value up to maxOffset (the final, 1-based offset).
func minOffSize(maxOffset uint32) int {
	switch {
	case maxOffset <= 0xFF:
		return 1
	case maxOffset <= 0xFFFF:
		return 2
	case maxOffset <= 0xFFFFFF:
		return 3
	default:
		return 4
	}
}

// BuildIndex serializes items into an INDEX structure, choosing the
// minimum off_size that addresses the final offset.
func BuildIndex(items [][]byte) []byte {
	count := len(items)
	if count == 0 {
		return []byte{0, 0}
	}
	total := 1
	for _, it := range items {
		total += len(it)
	}
	offSize := minOffSize(uint32(total))

	out := make([]byte, 0, 3+(count+1)*offSize+total-1)
	out = append(out, byte(count>>8), byte(count))
	out = append(out, byte(offSize))

	putOffset := func(v uint32) {
		for i := offSize - 1; i >= 0; i-- {
			out = append(out, byte(v>>(8*uint(i))))
		}
	}
	offset := uint32(1)
	putOffset(offset)
	for _, it := range items {
		offset += uint32(len(it))
		putOffset(offset)
	}
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

// Items returns every item's bytes as a slice, for callers that want the
// whole INDEX materialized (e.g. round-trip tests, rebuild staging).
func (idx *Index) Items() [][]byte {
	n := idx.Count()
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		out[i] = idx.Item(i)
	}
	return out
}
