package tables

import (
	"sync"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Platform/encoding IDs relevant to name-record decoding.
const (
	PlatformUnicode   = 0
	PlatformMac       = 1
	PlatformMicrosoft = 3

	EncodingMacRoman       = 0
	EncodingMicrosoftUnicode = 1

	LanguageMacEnglish       = 0
	LanguageMicrosoftEnglish = 0x0409
)

// NameRecord is one entry of the 'name' table's record list, holding the
// raw (still platform-encoded) bytes. Decoding to a Go string happens
// lazily via Name.Decode, and only for the records actually requested.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	raw        []byte
}

// Name is the parsed 'name' table. String decoding is
// lazy and cached per nameID/record: ParseName itself only slices out
// each record's raw bytes, never decodes them.
type Name struct {
	Records []NameRecord

	mu    sync.Mutex
	cache map[int]string // record index -> decoded string
}

func ParseName(b []byte) (*Name, error) {
	if len(b) < 6 {
		return nil, ErrTruncated
	}
	format := u16(b[0:2])
	if format != 0 && format != 1 {
		return nil, ErrInvalid
	}
	count := int(u16(b[2:4]))
	stringOffset := int(u16(b[4:6]))
	headerLen := 6 + count*12
	if len(b) < headerLen || stringOffset > len(b) {
		return nil, ErrTruncated
	}
	n := &Name{Records: make([]NameRecord, count), cache: map[int]string{}}
	for i := 0; i < count; i++ {
		rec := b[6+i*12 : 6+i*12+12]
		start := stringOffset + int(u16(rec[8:10]))
		length := int(u16(rec[10:12]))
		end := start + length
		if start < 0 || end > len(b) || start > end {
			return nil, ErrTruncated
		}
		n.Records[i] = NameRecord{
			PlatformID: u16(rec[0:2]),
			EncodingID: u16(rec[2:4]),
			LanguageID: u16(rec[4:6]),
			NameID:     u16(rec[6:8]),
			raw:        b[start:end],
		}
	}
	return n, nil
}

// Decode returns the UTF-8 decoded string for record i, decoding and
// caching it on first access. Only this record's bytes are ever touched.
func (n *Name) Decode(i int) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if s, ok := n.cache[i]; ok {
		return s, nil
	}
	if i < 0 || i >= len(n.Records) {
		return "", ErrInvalid
	}
	rec := n.Records[i]
	s, err := decodeNameBytes(rec.PlatformID, rec.EncodingID, rec.raw)
	if err != nil {
		return "", err
	}
	n.cache[i] = s
	return s, nil
}

func decodeNameBytes(platformID, encodingID uint16, raw []byte) (string, error) {
	switch {
	case platformID == PlatformUnicode,
		platformID == PlatformMicrosoft && encodingID == EncodingMicrosoftUnicode:
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		out, _, err := transform.String(dec, string(raw))
		return out, err
	case platformID == PlatformMac && encodingID == EncodingMacRoman:
		dec := charmap.Macintosh.NewDecoder()
		out, _, err := transform.String(dec, string(raw))
		return out, err
	default:
		return string(raw), nil
	}
}

// byNameID finds a record matching nameID under the given precedence
// order of (platform, encoding, language) tuples, returning the index of
// the first match or -1.
func (n *Name) byNameID(nameID uint16, candidates [][3]uint16) int {
	for _, c := range candidates {
		for i, r := range n.Records {
			if r.NameID == nameID && r.PlatformID == c[0] && r.EncodingID == c[1] && r.LanguageID == c[2] {
				return i
			}
		}
	}
	return -1
}

// EnglishName resolves nameID using the precedence requires:
// Windows(3) English(0x0409) Unicode(1) before Mac(1) Roman(0) English(0).
// It decodes only the winning record.
func (n *Name) EnglishName(nameID uint16) (string, bool) {
	i := n.byNameID(nameID, [][3]uint16{
		{PlatformMicrosoft, EncodingMicrosoftUnicode, LanguageMicrosoftEnglish},
		{PlatformMac, EncodingMacRoman, LanguageMacEnglish},
	})
	if i < 0 {
		return "", false
	}
	s, err := n.Decode(i)
	if err != nil {
		return "", false
	}
	return s, true
}

// Standard nameIDs used by EnglishName callers.
const (
	NameIDCopyright     = 0
	NameIDFamily        = 1
	NameIDSubfamily     = 2
	NameIDUniqueID      = 3
	NameIDFull          = 4
	NameIDVersion       = 5
	NameIDPostScript    = 6
)
