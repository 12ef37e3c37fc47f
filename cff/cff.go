package cff

// Header is the 4-byte CFF table header.
type Header struct {
	MajorVersion byte
	MinorVersion byte
	HdrSize      byte
	OffSize      byte
}

// File is a fully parsed CFF table: header, Name INDEX, Top DICT INDEX
// (one entry per font; nearly always exactly one for an SFNT-hosted
// CFF), String INDEX, Global Subr INDEX, and the CharStrings/Private/
// Local Subr structures reached through the first font's Top DICT.
type File struct {
	Header  Header
	Name    *Index
	TopDict *Dict
	Strings *Index
	GSubrs  *Index

	CharStrings *Index
	Private     *Dict
	LSubrs      *Index
}

// Parse reads a complete CFF table: the four
// top-level INDEXes in order, then follows the first font's Top DICT to
// locate its CharStrings INDEX and (if present) Private DICT and Local
// Subr INDEX.
func Parse(b []byte) (*File, error) {
	if len(b) < 4 {
		return nil, ErrTruncated
	}
	hdr := Header{MajorVersion: b[0], MinorVersion: b[1], HdrSize: b[2], OffSize: b[3]}
	if hdr.MajorVersion != 1 {
		return nil, ErrUnsupportedVersion
	}
	if int(hdr.HdrSize) > len(b) {
		return nil, ErrTruncated
	}
	pos := int(hdr.HdrSize)

	nameIdx, n, err := ParseIndex(b[pos:])
	if err != nil {
		return nil, err
	}
	pos += n

	topDictIdx, n, err := ParseIndex(b[pos:])
	if err != nil {
		return nil, err
	}
	pos += n
	if topDictIdx.Count() < 1 {
		return nil, ErrInvalidDict
	}
	topDict, err := ParseDict(topDictIdx.Item(0))
	if err != nil {
		return nil, err
	}

	strIdx, n, err := ParseIndex(b[pos:])
	if err != nil {
		return nil, err
	}
	pos += n

	gsubrIdx, n, err := ParseIndex(b[pos:])
	if err != nil {
		return nil, err
	}
	pos += n

	f := &File{
		Header:  hdr,
		Name:    nameIdx,
		TopDict: topDict,
		Strings: strIdx,
		GSubrs:  gsubrIdx,
	}

	if ops, ok := topDict.Get("CharStrings"); ok && len(ops) == 1 {
		off := int(ops[0].Float64())
		if off < 0 || off >= len(b) {
			return nil, ErrInvalidDict
		}
		cs, _, err := ParseIndex(b[off:])
		if err != nil {
			return nil, err
		}
		f.CharStrings = cs
	} else {
		return nil, ErrInvalidDict
	}

	if ops, ok := topDict.Get("Private"); ok && len(ops) == 2 {
		size := int(ops[0].Float64())
		off := int(ops[1].Float64())
		if off < 0 || off+size > len(b) {
			return nil, ErrTruncated
		}
		priv, err := ParseDict(b[off : off+size])
		if err != nil {
			return nil, err
		}
		f.Private = priv
		if subrsOff, ok := priv.GetInt("Subrs"); ok {
			abs := off + int(subrsOff)
			if abs < 0 || abs >= len(b) {
				return nil, ErrInvalidDict
			}
			ls, _, err := ParseIndex(b[abs:])
			if err != nil {
				return nil, err
			}
			f.LSubrs = ls
		}
	}

	return f, nil
}

// Subrs returns the Subrs bundle an interpreter needs to run one of this
// font's CharStrings, reading nominalWidthX/defaultWidthX from the
// Private DICT (0 if there is none, matching the conventional default).
func (f *File) Subrs() *Subrs {
	s := &Subrs{Global: f.GSubrs, Local: f.LSubrs}
	if f.Private != nil {
		if v, ok := f.Private.GetInt("nominalWidthX"); ok {
			s.NominalWidthX = float64(v)
		}
		if v, ok := f.Private.GetInt("defaultWidthX"); ok {
			s.DefaultWidthX = float64(v)
		}
	}
	return s
}
