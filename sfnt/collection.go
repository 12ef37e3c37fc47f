package sfnt

import (
	"io"
	"os"

	"github.com/fontist/fontisan-sub002/sfnt/container"
	"github.com/fontist/fontisan-sub002/tag"
)

// Collection is a parsed font collection: a TrueType/OpenType
// Collection ('ttcf') or an Apple dfont resource fork holding more than
// one 'sfnt' resource. Every member shares the same in-memory or
// file-backed source.
type Collection struct {
	sourceName string
	fonts      []*Font
	isOpenType bool
}

// NumFonts returns the number of fonts in the collection.
func (c *Collection) NumFonts() int { return len(c.fonts) }

// IsOpenTypeCollection reports whether the collection is classified as
// OTC rather than TTC: true if any contained font is OpenType/CFF
// flavored ('OTTO'). Mixed TrueType/OpenType collections classify as
// OTC, per the data model's classification rule.
func (c *Collection) IsOpenTypeCollection() bool { return c.isOpenType }

// Font returns the i'th font in the collection.
func (c *Collection) Font(i int) (*Font, error) {
	if i < 0 || i >= len(c.fonts) {
		return nil, newErr(KindUnknownFormat, c.sourceName, tag.Zero, 0, "collection index out of range", nil)
	}
	return c.fonts[i], nil
}

// Close closes every contained Font's underlying source.
func (c *Collection) Close() error {
	var first error
	for _, f := range c.fonts {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenCollection opens a TTC/OTC or multi-font dfont file from disk.
func OpenCollection(path string, opts ...Option) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newErr(KindFileNotFound, path, tag.Zero, 0, "", err)
		}
		return nil, newErr(KindUnknown, path, tag.Zero, 0, "", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, newErr(KindTruncated, path, tag.Zero, 0, "", err)
	}
	return ParseCollection(data, path, opts...)
}

// ParseCollection parses a TTC/OTC or multi-font dfont already resident
// in memory. Every contained font is eagerly loaded and shares b as its
// backing memory source; WithLazy has no effect since the whole
// container must already be read to locate each member.
func ParseCollection(b []byte, name string, opts ...Option) (*Collection, error) {
	o := resolveOptions(opts)
	o.lazy = false

	format, err := container.Sniff(b)
	if err != nil {
		return nil, newErr(KindUnknownFormat, name, tag.Zero, 0, "", err)
	}

	switch format {
	case container.FormatCollection:
		ttc, err := container.ParseCollection(b)
		if err != nil {
			return nil, wrap(err, name, tag.Zero, 0)
		}
		isOTC, err := ttc.IsOpenTypeCollection(b)
		if err != nil {
			return nil, wrap(err, name, tag.Zero, 0)
		}
		src := newMemorySource(b)
		c := &Collection{sourceName: name, isOpenType: isOTC}
		for i := 0; i < ttc.NumFonts(); i++ {
			off, err := ttc.FontOffset(i)
			if err != nil {
				return nil, wrap(err, name, tag.Zero, 0)
			}
			font, err := loadFromOffset(src, name, int64(off), o)
			if err != nil {
				return nil, err
			}
			c.fonts = append(c.fonts, font)
		}
		return c, nil
	case container.FormatDfont:
		members, err := container.ParseDfont(b)
		if err != nil {
			return nil, wrap(err, name, tag.Zero, 0)
		}
		c := &Collection{sourceName: name}
		for _, m := range members {
			font, err := loadFromOffset(newMemorySource(m), name, 0, o)
			if err != nil {
				return nil, err
			}
			if font.Offset.SfntVersion == versionOpenTypeCFF {
				c.isOpenType = true
			}
			c.fonts = append(c.fonts, font)
		}
		return c, nil
	default:
		return nil, newErr(KindUnknownFormat, name, tag.Zero, 0,
			"not a font collection", nil)
	}
}
