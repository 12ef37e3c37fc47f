package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sort"

	"github.com/andybalholm/brotli"
)

// ErrInvalidWOFF2 is returned when a WOFF2 file fails a structural
// check.
var ErrInvalidWOFF2 = errors.New("container: invalid WOFF2 file")

// knownTableTags is the WOFF2 built-in tag dictionary: a directory entry names one of these via a
// 6-bit index instead of spelling out all 4 bytes.
var knownTableTags = []string{
	"cmap", "head", "hhea", "hmtx",
	"maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca",
	"prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern",
	"LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS",
	"GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL",
	"SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar",
	"fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar",
	"mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat",
	"Gloc", "Feat", "Sill",
}

type woff2TableEntry struct {
	tag              string
	origLength       uint32
	transformVersion int
	transformLength  uint32
	data             []byte
}

// DecodeWOFF2 unwraps a WOFF2 file into its contained, uncompressed SFNT
// byte stream. It implements both of the
// documented per-table transforms in full: the glyf/loca triplet-point
// reconstruction (transform version 0) and the hmtx lsb-omission
// reconstruction (transform version 1), since both are common in
// practice and the untransformed fallback alone would silently misparse
// the majority of real WOFF2 files.
func DecodeWOFF2(b []byte) ([]byte, error) {
	if len(b) < 48 {
		return nil, ErrInvalidWOFF2
	}
	if binary.BigEndian.Uint32(b[0:4]) != sigWOFF2 {
		return nil, ErrInvalidWOFF2
	}
	flavor := binary.BigEndian.Uint32(b[4:8])
	if flavor == sigCollection {
		return nil, ErrInvalidWOFF2
	}
	length := binary.BigEndian.Uint32(b[8:12])
	numTables := binary.BigEndian.Uint16(b[12:14])
	reserved := binary.BigEndian.Uint16(b[14:16])
	totalSfntSize := binary.BigEndian.Uint32(b[16:20])
	totalCompressedSize := binary.BigEndian.Uint32(b[20:24])

	if length != uint32(len(b)) || numTables == 0 || reserved != 0 {
		return nil, ErrInvalidWOFF2
	}

	pos := 48
	tables := make([]woff2TableEntry, 0, numTables)
	tagIndex := map[string]int{}
	var uncompressedSize uint32
	hasGlyf, hasLoca := false, false
	iGlyf, iLoca := -1, -1

	for i := 0; i < int(numTables); i++ {
		if pos >= len(b) {
			return nil, ErrInvalidWOFF2
		}
		flags := b[pos]
		pos++
		tagBits := int(flags & 0x3F)
		transformVersion := int((flags & 0xC0) >> 6)

		var tag string
		if tagBits == 63 {
			if pos+4 > len(b) {
				return nil, ErrInvalidWOFF2
			}
			tagBytes := b[pos : pos+4]
			tag = string(tagBytes)
			pos += 4
		} else {
			if tagBits >= len(knownTableTags) {
				return nil, ErrInvalidWOFF2
			}
			tag = knownTableTags[tagBits]
		}

		origLength, n, err := readUintBase128(b[pos:])
		if err != nil {
			return nil, err
		}
		pos += n

		var transformLength uint32
		transformed := (tag == "glyf" || tag == "loca") && transformVersion == 0 ||
			tag == "hmtx" && transformVersion == 1
		if transformed {
			transformLength, n, err = readUintBase128(b[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			if tag != "loca" && transformLength == 0 {
				return nil, ErrInvalidWOFF2
			}
			uncompressedSize += transformLength
		} else {
			uncompressedSize += origLength
		}

		if _, dup := tagIndex[tag]; dup {
			return nil, ErrInvalidWOFF2
		}
		tagIndex[tag] = len(tables)
		if tag == "glyf" {
			hasGlyf, iGlyf = true, len(tables)
		}
		if tag == "loca" {
			hasLoca, iLoca = true, len(tables)
		}
		tables = append(tables, woff2TableEntry{
			tag: tag, origLength: origLength,
			transformVersion: transformVersion, transformLength: transformLength,
		})
	}

	if hasGlyf != hasLoca {
		return nil, ErrInvalidWOFF2
	}
	if hasGlyf && tables[iGlyf].transformVersion != tables[iLoca].transformVersion {
		return nil, ErrInvalidWOFF2
	}

	if pos+int(totalCompressedSize) > len(b) {
		return nil, ErrInvalidWOFF2
	}
	compData := b[pos : pos+int(totalCompressedSize)]
	rBrotli := brotli.NewReader(bytes.NewReader(compData))
	var dataBuf bytes.Buffer
	dataBuf.Grow(int(uncompressedSize))
	if _, err := io.Copy(&dataBuf, rBrotli); err != nil {
		return nil, err
	}
	data := dataBuf.Bytes()
	if uint32(len(data)) != uncompressedSize {
		return nil, ErrInvalidWOFF2
	}

	var offset uint32
	for i := range tables {
		if tables[i].tag == "loca" && tables[i].transformVersion == 0 {
			continue // reconstructed alongside glyf below
		}
		n := tables[i].origLength
		if tables[i].transformLength != 0 {
			n = tables[i].transformLength
		}
		if uint32(len(data))-offset < n {
			return nil, ErrInvalidWOFF2
		}
		// Three-index slice: caps capacity at the table's own bytes so a
		// later 4-byte-padding append can never write into the next
		// table's physically-adjacent bytes in the shared data buffer.
		tables[i].data = data[offset : offset+n : offset+n]
		offset += n
	}

	if hasGlyf && tables[iGlyf].transformVersion == 0 {
		glyfData, locaData, err := reconstructGlyfLoca(tables[iGlyf].data, tables[iLoca].origLength)
		if err != nil {
			return nil, err
		}
		tables[iGlyf].data = glyfData
		tables[iLoca].data = locaData
	}

	if iHmtx, ok := tagIndex["hmtx"]; ok && tables[iHmtx].transformVersion == 1 {
		iHead, okHead := tagIndex["head"]
		iMaxp, okMaxp := tagIndex["maxp"]
		iHhea, okHhea := tagIndex["hhea"]
		if !okHead || !okMaxp || !okHhea || !hasGlyf || !hasLoca {
			return nil, ErrInvalidWOFF2
		}
		rebuilt, err := reconstructHmtx(tables[iHmtx].data, tables[iHead].data,
			tables[iGlyf].data, tables[iLoca].data, tables[iMaxp].data, tables[iHhea].data)
		if err != nil {
			return nil, err
		}
		tables[iHmtx].data = rebuilt
	}

	iHead, ok := tagIndex["head"]
	if !ok || len(tables[iHead].data) < 18 {
		return nil, ErrInvalidWOFF2
	}
	binary.BigEndian.PutUint32(tables[iHead].data[8:12], 0)

	tags := make([]string, 0, len(tables))
	for tag := range tagIndex {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	searchRange, entrySelector, rangeShift := computeSearchParams(int(numTables))
	out := make([]byte, 12+16*int(numTables))
	binary.BigEndian.PutUint32(out[0:4], flavor)
	binary.BigEndian.PutUint16(out[4:6], numTables)
	binary.BigEndian.PutUint16(out[6:8], searchRange)
	binary.BigEndian.PutUint16(out[8:10], entrySelector)
	binary.BigEndian.PutUint16(out[10:12], rangeShift)

	sfntOffset := uint32(len(out))
	dirPos := 12
	for _, tag := range tags {
		i := tagIndex[tag]
		d := tables[i].data
		for len(d)%4 != 0 {
			d = append(d, 0)
		}
		tables[i].data = d

		var tagArr [4]byte
		copy(tagArr[:], tag)
		binary.BigEndian.PutUint32(out[dirPos:dirPos+4], binary.BigEndian.Uint32(tagArr[:]))
		binary.BigEndian.PutUint32(out[dirPos+4:dirPos+8], tableChecksumWOFF2(d))
		binary.BigEndian.PutUint32(out[dirPos+8:dirPos+12], sfntOffset)
		binary.BigEndian.PutUint32(out[dirPos+12:dirPos+16], uint32(len(d)))
		dirPos += 16
		sfntOffset += uint32(len(d))
	}

	_ = totalSfntSize
	full := make([]byte, 0, sfntOffset)
	full = append(full, out...)
	for _, tag := range tags {
		full = append(full, tables[tagIndex[tag]].data...)
	}
	return full, nil
}

func tableChecksumWOFF2(b []byte) uint32 {
	var sum uint32
	for i := 0; i+4 <= len(b); i += 4 {
		sum += binary.BigEndian.Uint32(b[i : i+4])
	}
	if rem := len(b) % 4; rem != 0 {
		var last [4]byte
		copy(last[:], b[len(b)-rem:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}
