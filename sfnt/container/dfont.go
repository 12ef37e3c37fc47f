package container

import (
	"encoding/binary"
	"errors"
)

// ErrInvalidDfont is returned when a Mac OS resource fork fails its
// structural checks.
var ErrInvalidDfont = errors.New("container: invalid dfont resource fork")

// sfntResourceType is the four-character resource type dfont containers
// store font data under.
const sfntResourceType = 0x73666e74 // 'sfnt'

// ParseDfont extracts every 'sfnt' resource from a classic Mac OS
// resource fork, returning each as an
// independent byte slice ready to be sniffed/parsed as a bare SFNT.
//
// Resource fork layout: a 16-byte header (data offset/length, map
// offset/length) followed by a resource map at mapOffset holding a type
// list and, per type, a reference list whose entries locate each
// resource's length-prefixed data in the data area.
func ParseDfont(b []byte) ([][]byte, error) {
	if len(b) < 16 {
		return nil, ErrInvalidDfont
	}
	dataOffset := binary.BigEndian.Uint32(b[0:4])
	mapOffset := binary.BigEndian.Uint32(b[4:8])
	if uint64(mapOffset)+28 > uint64(len(b)) {
		return nil, ErrInvalidDfont
	}
	typeListOffsetInMap := binary.BigEndian.Uint16(b[mapOffset+24 : mapOffset+26])
	typeListOffset := uint32(mapOffset) + uint32(typeListOffsetInMap)
	if uint64(typeListOffset)+2 > uint64(len(b)) {
		return nil, ErrInvalidDfont
	}
	numTypesMinus1 := binary.BigEndian.Uint16(b[typeListOffset : typeListOffset+2])
	numTypes := int(numTypesMinus1) + 1

	var out [][]byte
	for t := 0; t < numTypes; t++ {
		entryOffset := typeListOffset + 2 + uint32(t*8)
		if uint64(entryOffset)+8 > uint64(len(b)) {
			return nil, ErrInvalidDfont
		}
		resType := binary.BigEndian.Uint32(b[entryOffset : entryOffset+4])
		if resType != sfntResourceType {
			continue
		}
		numResMinus1 := binary.BigEndian.Uint16(b[entryOffset+4 : entryOffset+6])
		refListOffsetInType := binary.BigEndian.Uint16(b[entryOffset+6 : entryOffset+8])
		refListOffset := typeListOffset + uint32(refListOffsetInType)
		numRes := int(numResMinus1) + 1

		for r := 0; r < numRes; r++ {
			refOffset := refListOffset + uint32(r*12)
			if uint64(refOffset)+12 > uint64(len(b)) {
				return nil, ErrInvalidDfont
			}
			packed := binary.BigEndian.Uint32(b[refOffset+4 : refOffset+8])
			dataOffInArea := packed & 0x00FFFFFF

			resDataStart := dataOffset + dataOffInArea
			if uint64(resDataStart)+4 > uint64(len(b)) {
				return nil, ErrInvalidDfont
			}
			length := binary.BigEndian.Uint32(b[resDataStart : resDataStart+4])
			start := resDataStart + 4
			if uint64(start)+uint64(length) > uint64(len(b)) {
				return nil, ErrInvalidDfont
			}
			out = append(out, b[start:start+length])
		}
	}
	if len(out) == 0 {
		return nil, ErrInvalidDfont
	}
	return out, nil
}
