// Package tag implements the four-byte SFNT table tag, normalized to a
// single canonical representation so that tags decoded from binary data
// and tags spelled out as Go string literals never collide as map keys.
package tag

import "fmt"

// Tag is a four-byte SFNT table or format tag, e.g. "head" or "CFF ".
// Comparison is byte-exact: "CFF " and "cff " are distinct tags.
type Tag [4]byte

// Zero is the tag with all four bytes zero. No valid table uses it.
var Zero Tag

// New builds a Tag from a string, padding with spaces on the right if
// shorter than four bytes and truncating if longer. This is the single
// normalization point: every Tag in this module, whether it started life
// as a []byte read from a file or a string literal in Go source, passes
// through here (or FromBytes, which delegates to the same array layout)
// before being used as a map key.
func New(s string) Tag {
	var t Tag
	for i := 0; i < 4; i++ {
		if i < len(s) {
			t[i] = s[i]
		} else {
			t[i] = ' '
		}
	}
	return t
}

// FromBytes builds a Tag from the four bytes at b[0:4]. It panics if b has
// fewer than 4 bytes; callers must bounds-check first, as is conventional
// for this package's binary-parsing call sites.
func FromBytes(b []byte) Tag {
	return Tag{b[0], b[1], b[2], b[3]}
}

// FromUint32 builds a Tag from its big-endian uint32 encoding, as used by
// SFNT directory entries and WOFF2's literal-tag escape.
func FromUint32(u uint32) Tag {
	return Tag{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
}

// Uint32 returns the tag's big-endian uint32 encoding.
func (t Tag) Uint32() uint32 {
	return uint32(t[0])<<24 | uint32(t[1])<<16 | uint32(t[2])<<8 | uint32(t[3])
}

// String returns the tag's four characters verbatim, including any
// trailing space padding.
func (t Tag) String() string {
	return string(t[:])
}

// GoString supports "%#v" and makes Tag useful in test failure messages.
func (t Tag) GoString() string {
	return fmt.Sprintf("tag.New(%q)", t.String())
}

// Less orders tags byte-exactly, matching the SFNT directory's required
// ascending-tag ordering.
func (t Tag) Less(other Tag) bool {
	for i := 0; i < 4; i++ {
		if t[i] != other[i] {
			return t[i] < other[i]
		}
	}
	return false
}

// Well-known tags used throughout the loader, registry and writer.
var (
	Head    = New("head")
	Maxp    = New("maxp")
	Hhea    = New("hhea")
	Hmtx    = New("hmtx")
	Name    = New("name")
	Post    = New("post")
	OS2     = New("OS/2")
	Cmap    = New("cmap")
	Glyf    = New("glyf")
	Loca    = New("loca")
	CFF     = New("CFF ")
	CFF2    = New("CFF2")
	TTCF    = New("ttcf")
)

// MetadataSet is the fixed whitelist exposed by sfnt.Metadata loading mode.
var MetadataSet = map[Tag]bool{
	Name: true,
	Head: true,
	Hhea: true,
	Maxp: true,
	OS2:  true,
	Post: true,
}
