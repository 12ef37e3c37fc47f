package tables

// Hhea is the parsed 'hhea' table.
type Hhea struct {
	MajorVersion        uint16
	MinorVersion        uint16
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	MetricDataFormat    int16
	NumberOfHMetrics    uint16
}

func ParseHhea(b []byte) (*Hhea, error) {
	if len(b) < 36 {
		return nil, ErrTruncated
	}
	return &Hhea{
		MajorVersion:        u16(b[0:2]),
		MinorVersion:        u16(b[2:4]),
		Ascender:            i16(b[4:6]),
		Descender:           i16(b[6:8]),
		LineGap:             i16(b[8:10]),
		AdvanceWidthMax:     u16(b[10:12]),
		MinLeftSideBearing:  i16(b[12:14]),
		MinRightSideBearing: i16(b[14:16]),
		XMaxExtent:          i16(b[16:18]),
		CaretSlopeRise:      i16(b[18:20]),
		CaretSlopeRun:       i16(b[20:22]),
		CaretOffset:         i16(b[22:24]),
		MetricDataFormat:    i16(b[32:34]),
		NumberOfHMetrics:    u16(b[34:36]),
	}, nil
}
