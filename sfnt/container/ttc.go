package container

import (
	"encoding/binary"
	"errors"
)

// ErrInvalidCollection is returned when a 'ttcf' header fails its basic
// structural checks.
var ErrInvalidCollection = errors.New("container: invalid font collection")

// Collection is a parsed TTC/OTC header: the byte offsets, within the
// original buffer, of each contained font's Offset Table.
type Collection struct {
	MajorVersion uint16
	MinorVersion uint16
	Offsets      []uint32
	// DSIGOffset/Length are present only in version 2 headers; zero
	// otherwise.
	DSIGTag    uint32
	DSIGLength uint32
	DSIGOffset uint32
}

// ParseCollection reads a TTC/OTC header starting at b[0:] (the 'ttcf'
// signature must already have been sniffed). The returned Collection's
// Offsets index directly into b.
func ParseCollection(b []byte) (*Collection, error) {
	if len(b) < 16 {
		return nil, ErrInvalidCollection
	}
	if binary.BigEndian.Uint32(b[0:4]) != sigCollection {
		return nil, ErrInvalidCollection
	}
	c := &Collection{
		MajorVersion: binary.BigEndian.Uint16(b[4:6]),
		MinorVersion: binary.BigEndian.Uint16(b[6:8]),
	}
	numFonts := binary.BigEndian.Uint32(b[8:12])
	need := 12 + int(numFonts)*4
	if len(b) < need {
		return nil, ErrInvalidCollection
	}
	c.Offsets = make([]uint32, numFonts)
	for i := uint32(0); i < numFonts; i++ {
		off := binary.BigEndian.Uint32(b[12+i*4 : 16+i*4])
		if int(off) >= len(b) {
			return nil, ErrInvalidCollection
		}
		c.Offsets[i] = off
	}
	if c.MajorVersion == 2 && len(b) >= need+12 {
		c.DSIGTag = binary.BigEndian.Uint32(b[need : need+4])
		c.DSIGLength = binary.BigEndian.Uint32(b[need+4 : need+8])
		c.DSIGOffset = binary.BigEndian.Uint32(b[need+8 : need+12])
	}
	return c, nil
}

// NumFonts returns the number of fonts in the collection.
func (c *Collection) NumFonts() int { return len(c.Offsets) }

// FontOffset returns the byte offset, within the buffer ParseCollection
// was given, of the i'th font's Offset Table.
func (c *Collection) FontOffset(i int) (uint32, error) {
	if i < 0 || i >= len(c.Offsets) {
		return 0, ErrInvalidCollection
	}
	return c.Offsets[i], nil
}

// IsOpenTypeCollection reports whether any contained font in b (using the
// offsets in c) has an OpenType/CFF sfnt_version ('OTTO'). A collection is
// classified OTC as soon as one member is OpenType-flavored, even if the
// rest are TrueType — mixed collections are OTC, not TTC. Classification
// requires scanning every contained font, not just the first, since a TTC
// may mix flavors.
func (c *Collection) IsOpenTypeCollection(b []byte) (bool, error) {
	if len(c.Offsets) == 0 {
		return false, ErrInvalidCollection
	}
	anyOTF := false
	for _, off := range c.Offsets {
		if int(off)+4 > len(b) {
			return false, ErrInvalidCollection
		}
		v := binary.BigEndian.Uint32(b[off : off+4])
		if v == sigOpenType {
			anyOTF = true
		}
		if v != sigOpenType && v != sigTrueType && v != sigAppleTrue {
			return false, ErrInvalidCollection
		}
	}
	return anyOTF, nil
}
