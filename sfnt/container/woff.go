package container

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"io"
	"sort"
)

// ErrInvalidWOFF is returned when a WOFF v1 file fails a structural
// check: a bad signature or length field, a table that runs past the
// file, a totalSfntSize that disagrees with the table lengths, or a table
// that does not inflate to its declared length. Table checksums are not
// verified; each origChecksum is copied into the output directory as-is.
var ErrInvalidWOFF = errors.New("container: invalid WOFF file")

type woffTableEntry struct {
	tag          [4]byte
	offset       uint32
	compLength   uint32
	origLength   uint32
	origChecksum uint32
}

// DecodeWOFF unwraps a WOFF v1 file into its contained, uncompressed
// SFNT byte stream. Table
// collections ('ttcf' flavor) are not supported by WOFF v1 itself and
// are rejected.
func DecodeWOFF(b []byte) ([]byte, error) {
	if len(b) < 44 {
		return nil, ErrInvalidWOFF
	}
	if binary.BigEndian.Uint32(b[0:4]) != sigWOFF {
		return nil, ErrInvalidWOFF
	}
	flavor := binary.BigEndian.Uint32(b[4:8])
	if flavor == sigCollection {
		return nil, ErrInvalidWOFF
	}
	length := binary.BigEndian.Uint32(b[8:12])
	numTables := binary.BigEndian.Uint16(b[12:14])
	reserved := binary.BigEndian.Uint16(b[14:16])
	totalSfntSize := binary.BigEndian.Uint32(b[16:20])

	if length != uint32(len(b)) || numTables == 0 || reserved != 0 {
		return nil, ErrInvalidWOFF
	}
	dirStart := 44
	dirLen := int(numTables) * 20
	if len(b) < dirStart+dirLen {
		return nil, ErrInvalidWOFF
	}

	entries := make([]woffTableEntry, numTables)
	sfntOffset := uint32(12 + 16*int(numTables))
	for i := 0; i < int(numTables); i++ {
		rec := b[dirStart+i*20 : dirStart+(i+1)*20]
		e := woffTableEntry{
			offset:       binary.BigEndian.Uint32(rec[4:8]),
			compLength:   binary.BigEndian.Uint32(rec[8:12]),
			origLength:   binary.BigEndian.Uint32(rec[12:16]),
			origChecksum: binary.BigEndian.Uint32(rec[16:20]),
		}
		copy(e.tag[:], rec[0:4])
		if uint64(e.offset)+uint64(e.compLength) > uint64(len(b)) || e.origLength < e.compLength {
			return nil, ErrInvalidWOFF
		}
		sfntOffset += (e.origLength + 3) &^ 3
		entries[i] = e
	}
	if totalSfntSize != sfntOffset {
		return nil, ErrInvalidWOFF
	}

	order := make([]int, numTables)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return bytes.Compare(entries[order[i]].tag[:], entries[order[j]].tag[:]) < 0
	})

	out := make([]byte, totalSfntSize)
	searchRange, entrySelector, rangeShift := computeSearchParams(int(numTables))
	binary.BigEndian.PutUint32(out[0:4], flavor)
	binary.BigEndian.PutUint16(out[4:6], numTables)
	binary.BigEndian.PutUint16(out[6:8], searchRange)
	binary.BigEndian.PutUint16(out[8:10], entrySelector)
	binary.BigEndian.PutUint16(out[10:12], rangeShift)

	sfntDataOffset := uint32(12 + 16*int(numTables))
	dirPos := 12
	var headChecksumAdjOffset int = -1
	for _, idx := range order {
		e := entries[idx]
		data := b[e.offset : e.offset+e.compLength]
		if e.compLength != e.origLength {
			zr, err := zlib.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, ErrInvalidWOFF
			}
			var buf bytes.Buffer
			if _, err := io.Copy(&buf, zr); err != nil {
				return nil, ErrInvalidWOFF
			}
			if err := zr.Close(); err != nil {
				return nil, ErrInvalidWOFF
			}
			data = buf.Bytes()
		}
		if uint32(len(data)) != e.origLength {
			return nil, ErrInvalidWOFF
		}

		binary.BigEndian.PutUint32(out[dirPos:dirPos+4], binary.BigEndian.Uint32(e.tag[:]))
		binary.BigEndian.PutUint32(out[dirPos+4:dirPos+8], e.origChecksum)
		binary.BigEndian.PutUint32(out[dirPos+8:dirPos+12], sfntDataOffset)
		binary.BigEndian.PutUint32(out[dirPos+12:dirPos+16], e.origLength)
		dirPos += 16

		copy(out[sfntDataOffset:], data)
		if string(e.tag[:]) == "head" {
			headChecksumAdjOffset = int(sfntDataOffset) + 8
		}
		sfntDataOffset += (e.origLength + 3) &^ 3
	}

	if headChecksumAdjOffset < 0 || headChecksumAdjOffset+4 > len(out) {
		return nil, ErrInvalidWOFF
	}
	// The checksumAdjustment field was computed against the original
	// font's table layout, which may differ from this rebuild's padding,
	// so it is zeroed rather than carried over. The sfnt loader does not
	// recompute it; sfnt.Writer computes a fresh value when the font is
	// written back out.
	binary.BigEndian.PutUint32(out[headChecksumAdjOffset:headChecksumAdjOffset+4], 0)
	return out, nil
}

// computeSearchParams mirrors the sfnt package's offset-table search
// parameter formula without importing it, to keep
// container decode-only and independent of the loader.
func computeSearchParams(numTables int) (searchRange, entrySelector, rangeShift uint16) {
	entries := uint16(1)
	for entries*2 <= uint16(numTables) {
		entries *= 2
		entrySelector++
	}
	searchRange = entries * 16
	rangeShift = uint16(numTables)*16 - searchRange
	return
}
