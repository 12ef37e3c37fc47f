package tables

import "time"

// Head is the parsed 'head' table. Layout per
// https://learn.microsoft.com/typography/opentype/spec/head.
type Head struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       int32
	ChecksumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            time.Time
	Modified           time.Time
	XMin, YMin         int16
	XMax, YMax         int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

// macEpoch is 1904-01-01, the epoch SFNT longDateTime values count from.
var macEpoch = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

func ParseHead(b []byte) (*Head, error) {
	if len(b) < 54 {
		return nil, ErrTruncated
	}
	if u16(b[0:2]) != 1 {
		return nil, ErrInvalid
	}
	h := &Head{
		MajorVersion:       u16(b[0:2]),
		MinorVersion:       u16(b[2:4]),
		FontRevision:       int32(u32(b[4:8])),
		ChecksumAdjustment: u32(b[8:12]),
		MagicNumber:        u32(b[12:16]),
		Flags:              u16(b[16:18]),
		UnitsPerEm:         u16(b[18:20]),
		Created:            macEpoch.Add(time.Duration(int64(u32(b[20:24]))<<32|int64(u32(b[24:28]))) * time.Second),
		Modified:           macEpoch.Add(time.Duration(int64(u32(b[28:32]))<<32|int64(u32(b[32:36]))) * time.Second),
		XMin:               i16(b[36:38]),
		YMin:               i16(b[38:40]),
		XMax:               i16(b[40:42]),
		YMax:               i16(b[42:44]),
		MacStyle:           u16(b[44:46]),
		LowestRecPPEM:      u16(b[46:48]),
		FontDirectionHint:  int16(u16(b[48:50])),
		IndexToLocFormat:   int16(u16(b[50:52])),
		GlyphDataFormat:    int16(u16(b[52:54])),
	}
	if h.UnitsPerEm == 0 {
		return nil, ErrInvalid
	}
	return h, nil
}
