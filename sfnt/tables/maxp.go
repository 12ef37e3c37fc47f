package tables

// Maxp is the parsed 'maxp' table. The CFF-flavored (version 0.5) layout
// carries only NumGlyphs; the TrueType (version 1.0) layout carries the
// full set of outline-complexity limits.
type Maxp struct {
	Version               uint32
	NumGlyphs             uint16
	MaxPoints              uint16
	MaxContours             uint16
	MaxCompositePoints      uint16
	MaxCompositeContours    uint16
	MaxZones                uint16
	MaxTwilightPoints       uint16
	MaxStorage              uint16
	MaxFunctionDefs         uint16
	MaxInstructionDefs      uint16
	MaxStackElements        uint16
	MaxSizeOfInstructions   uint16
	MaxComponentElements    uint16
	MaxComponentDepth       uint16
}

func ParseMaxp(b []byte, isPostScript bool) (*Maxp, error) {
	if isPostScript {
		if len(b) < 6 {
			return nil, ErrTruncated
		}
		return &Maxp{Version: u32(b[0:4]), NumGlyphs: u16(b[4:6])}, nil
	}
	if len(b) < 32 {
		return nil, ErrTruncated
	}
	return &Maxp{
		Version:              u32(b[0:4]),
		NumGlyphs:             u16(b[4:6]),
		MaxPoints:             u16(b[6:8]),
		MaxContours:           u16(b[8:10]),
		MaxCompositePoints:    u16(b[10:12]),
		MaxCompositeContours:  u16(b[12:14]),
		MaxZones:              u16(b[14:16]),
		MaxTwilightPoints:     u16(b[16:18]),
		MaxStorage:            u16(b[18:20]),
		MaxFunctionDefs:       u16(b[20:22]),
		MaxInstructionDefs:    u16(b[22:24]),
		MaxStackElements:      u16(b[24:26]),
		MaxSizeOfInstructions: u16(b[26:28]),
		MaxComponentElements:  u16(b[28:30]),
		MaxComponentDepth:     u16(b[30:32]),
	}, nil
}
