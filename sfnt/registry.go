package sfnt

import (
	"github.com/fontist/fontisan-sub002/sfnt/tables"
	"github.com/fontist/fontisan-sub002/tag"
)

// Head returns the font's parsed 'head' table, decoding and caching it
// on first access.
func (f *Font) Head() (*tables.Head, error) {
	v, err := f.parsedTable(tag.Head, func(b []byte) (interface{}, error) {
		return tables.ParseHead(b)
	})
	if err != nil {
		return nil, err
	}
	return v.(*tables.Head), nil
}

// Maxp returns the font's parsed 'maxp' table.
func (f *Font) Maxp() (*tables.Maxp, error) {
	v, err := f.parsedTable(tag.Maxp, func(b []byte) (interface{}, error) {
		return tables.ParseMaxp(b, f.isPostScript)
	})
	if err != nil {
		return nil, err
	}
	return v.(*tables.Maxp), nil
}

// Hhea returns the font's parsed 'hhea' table.
func (f *Font) Hhea() (*tables.Hhea, error) {
	v, err := f.parsedTable(tag.Hhea, func(b []byte) (interface{}, error) {
		return tables.ParseHhea(b)
	})
	if err != nil {
		return nil, err
	}
	return v.(*tables.Hhea), nil
}

// Hmtx returns the font's parsed 'hmtx' table. It requires 'hhea' and
// 'maxp' to already be resolvable, since 'hmtx' has no self-describing
// length fields.
func (f *Font) Hmtx() (*tables.Hmtx, error) {
	v, err := f.parsedTable(tag.Hmtx, func(b []byte) (interface{}, error) {
		hhea, err := f.Hhea()
		if err != nil {
			return nil, err
		}
		maxp, err := f.Maxp()
		if err != nil {
			return nil, err
		}
		return tables.ParseHmtx(b, int(hhea.NumberOfHMetrics), int(maxp.NumGlyphs))
	})
	if err != nil {
		return nil, err
	}
	return v.(*tables.Hmtx), nil
}

// Loca returns the font's parsed 'loca' table.
func (f *Font) Loca() (*tables.Loca, error) {
	v, err := f.parsedTable(tag.Loca, func(b []byte) (interface{}, error) {
		head, err := f.Head()
		if err != nil {
			return nil, err
		}
		maxp, err := f.Maxp()
		if err != nil {
			return nil, err
		}
		return tables.ParseLoca(b, int(maxp.NumGlyphs), head.IndexToLocFormat != 0)
	})
	if err != nil {
		return nil, err
	}
	return v.(*tables.Loca), nil
}

// Name returns the font's parsed 'name' table.
func (f *Font) Name() (*tables.Name, error) {
	v, err := f.parsedTable(tag.Name, func(b []byte) (interface{}, error) {
		return tables.ParseName(b)
	})
	if err != nil {
		return nil, err
	}
	return v.(*tables.Name), nil
}

// Post returns the font's parsed 'post' table.
func (f *Font) Post() (*tables.Post, error) {
	v, err := f.parsedTable(tag.Post, func(b []byte) (interface{}, error) {
		return tables.ParsePost(b)
	})
	if err != nil {
		return nil, err
	}
	return v.(*tables.Post), nil
}

// Cmap returns the font's parsed 'cmap' table directory (individual
// subtables decode further, lazily, on Cmap.Subtable).
func (f *Font) Cmap() (*tables.Cmap, error) {
	v, err := f.parsedTable(tag.Cmap, func(b []byte) (interface{}, error) {
		return tables.ParseCmap(b)
	})
	if err != nil {
		return nil, err
	}
	return v.(*tables.Cmap), nil
}

// GlyfBytes returns the raw, unparsed 'glyf' table bytes, to be indexed
// against Loca's offsets by the outline package.
func (f *Font) GlyfBytes() ([]byte, error) {
	return f.RawTable(tag.Glyf)
}

// CFFBytes returns the raw 'CFF ' table bytes.
func (f *Font) CFFBytes() ([]byte, error) {
	return f.RawTable(tag.CFF)
}

// parsedTable implements the per-Font parsed-table cache: decode once,
// gated by Mode via RawTable, then remember the result keyed by tag.
func (f *Font) parsedTable(t tag.Tag, parse func([]byte) (interface{}, error)) (interface{}, error) {
	if v, ok := f.parsed[t]; ok {
		return v, nil
	}
	raw, err := f.RawTable(t)
	if err != nil {
		return nil, err
	}
	v, err := parse(raw)
	if err != nil {
		return nil, wrap(err, f.sourceName, t, 0)
	}
	if f.parsed == nil {
		f.parsed = map[tag.Tag]interface{}{}
	}
	f.parsed[t] = v
	return v, nil
}
