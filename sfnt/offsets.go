package sfnt

// SFNT version / flavor signatures. The
// Apple TrueType signature used throughout this package is 0x74727565
// ('true'); 0x74727965 was a documented typo in the original source and
// is never produced or matched here.
const (
	versionTrueType      = 0x00010000
	versionAppleTrue     = 0x74727565 // 'true'
	versionOpenTypeCFF   = 0x4f54544f // 'OTTO'
	versionCollection    = 0x74746366 // 'ttcf'
	versionWOFF          = 0x774f4646 // 'wOFF'
	versionWOFF2         = 0x774f4632 // 'wOF2'
	versionPostScript1   = 0x74797031 // 'typ1', rare legacy flavor, recognized not parsed
)

// OffsetTable is the 12-byte SFNT header.
type OffsetTable struct {
	SfntVersion   uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// searchParams derives (entrySelector, searchRange, rangeShift) from
// numTables, : entrySelector = floor(log2(numTables)),
// searchRange = 2^entrySelector * 16, rangeShift = numTables*16 - searchRange.
func searchParams(numTables int) (entrySelector, searchRange, rangeShift uint16) {
	for entrySelector = 0; (1 << (entrySelector + 1)) <= numTables; entrySelector++ {
	}
	searchRange = (1 << entrySelector) * 16
	rangeShift = uint16(numTables)*16 - searchRange
	return
}

// parseOffsetTable reads the 12-byte header starting at buf[0:12]. The
// search-range triplet is accepted as-is on read (it is never validated
// against numTables); the Writer always recomputes it on write, never
// copies it, 
func parseOffsetTable(buf []byte) (OffsetTable, error) {
	if len(buf) < 12 {
		return OffsetTable{}, errTruncatedSource
	}
	return OffsetTable{
		SfntVersion:   u32(buf[0:4]),
		NumTables:     u16(buf[4:6]),
		SearchRange:   u16(buf[6:8]),
		EntrySelector: u16(buf[8:10]),
		RangeShift:    u16(buf[10:12]),
	}, nil
}

// isPostScriptFlavor reports whether sfntVersion marks an OpenType/CFF
// flavored font ('OTTO'), as opposed to a TrueType-outline font.
func isPostScriptFlavor(sfntVersion uint32) bool {
	return sfntVersion == versionOpenTypeCFF
}

func isRecognizedSfntVersion(v uint32) bool {
	switch v {
	case versionTrueType, versionAppleTrue, versionOpenTypeCFF:
		return true
	}
	return false
}

// writeOffsetTable serializes an OffsetTable with recomputed search
// parameters for numTables tables, step 2.
func writeOffsetTable(sfntVersion uint32, numTables int) []byte {
	entrySelector, searchRange, rangeShift := searchParams(numTables)
	buf := make([]byte, 12)
	putU32(buf[0:4], sfntVersion)
	putU16(buf[4:6], uint16(numTables))
	putU16(buf[6:8], searchRange)
	putU16(buf[8:10], entrySelector)
	putU16(buf[10:12], rangeShift)
	return buf
}
