package sfnt

import (
	"io"
	"os"

	"github.com/fontist/fontisan-sub002/internal/flog"
	"github.com/fontist/fontisan-sub002/sfnt/container"
	"github.com/fontist/fontisan-sub002/tag"
)

// Option configures a Load/Open/Parse call.
type Option func(*loadOptions)

type loadOptions struct {
	mode Mode
	lazy bool
}

// WithMode sets the table-access mode (default Full).
func WithMode(m Mode) Option {
	return func(o *loadOptions) { o.mode = m }
}

// WithLazy selects the lazy single-table read strategy over the eager
// batched read (default: eager, i.e. false). Lazy only has an effect for
// fonts opened directly from a file or io.ReaderAt; fonts parsed from an
// in-memory []byte, or unwrapped from a WOFF/WOFF2/dfont container, are
// always served from memory regardless of this option.
func WithLazy(lazy bool) Option {
	return func(o *loadOptions) { o.lazy = lazy }
}

func resolveOptions(opts []Option) loadOptions {
	o := loadOptions{mode: DefaultMode(), lazy: DefaultLazy()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open opens a single font file from disk. Non-SFNT containers (WOFF, WOFF2, dfont) are unwrapped
// into an in-memory SFNT byte stream before parsing, since their
// encodings have no random-access table layout to read lazily from;
// WithLazy only takes effect for a bare SFNT/TTF/OTF file. A 'ttcf'
// collection is rejected here; use OpenCollection instead.
func Open(path string, opts ...Option) (*Font, error) {
	o := resolveOptions(opts)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newErr(KindFileNotFound, path, tag.Zero, 0, "", err)
		}
		return nil, newErr(KindUnknown, path, tag.Zero, 0, "", err)
	}

	var head [16]byte
	n, err := f.ReadAt(head[:], 0)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, newErr(KindTruncated, path, tag.Zero, 0, "", err)
	}

	format, sniffErr := container.Sniff(head[:n])
	if sniffErr != nil {
		f.Close()
		return nil, newErr(KindUnknownFormat, path, tag.Zero, 0, "", sniffErr)
	}
	flog.Logger().Debug("sniffed container", "path", path, "format", format.String())

	if format == container.FormatSFNT {
		font, err := loadFromOffset(newFileSource(f), path, 0, o)
		if err != nil {
			f.Close()
			return nil, err
		}
		return font, nil
	}

	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, newErr(KindTruncated, path, tag.Zero, 0, "", err)
	}
	return loadContainer(data, format, path, o)
}

// Parse loads a single font already resident in memory, sniffing and
// unwrapping any WOFF/WOFF2/dfont container. Lazy has no effect here:
// the bytes are already in memory.
func Parse(b []byte, opts ...Option) (*Font, error) {
	o := resolveOptions(opts)
	format, err := container.Sniff(b)
	if err != nil {
		return nil, newErr(KindUnknownFormat, "<memory>", tag.Zero, 0, "", err)
	}
	if format == container.FormatSFNT {
		return loadFromOffset(newMemorySource(b), "<memory>", 0, o)
	}
	return loadContainer(b, format, "<memory>", o)
}

// NewFromReaderAt loads a bare SFNT/TTF/OTF font from an arbitrary
// io.ReaderAt, honoring WithLazy. name identifies the source in error
// messages. Container formats are not supported through this entry
// point since unwrapping them requires the whole stream in memory
// first; use Open or Parse for those.
func NewFromReaderAt(r io.ReaderAt, name string, opts ...Option) (*Font, error) {
	o := resolveOptions(opts)
	var head [16]byte
	n, err := r.ReadAt(head[:], 0)
	if err != nil && err != io.EOF {
		return nil, newErr(KindTruncated, name, tag.Zero, 0, "", err)
	}
	format, sniffErr := container.Sniff(head[:n])
	if sniffErr != nil {
		return nil, newErr(KindUnknownFormat, name, tag.Zero, 0, "", sniffErr)
	}
	if format != container.FormatSFNT {
		return nil, newErr(KindUnknownFormat, name, tag.Zero, 0,
			"container formats require Open or Parse", nil)
	}
	return loadFromOffset(newReaderAtSource(r), name, 0, o)
}

// loadContainer unwraps a non-bare-SFNT container into a flat SFNT byte
// stream and loads it from memory. For dfont, which may hold more than
// one 'sfnt' resource, the first resource is loaded; OpenCollection
// exposes the rest.
func loadContainer(data []byte, format container.Format, name string, o loadOptions) (*Font, error) {
	switch format {
	case container.FormatWOFF:
		sfntBytes, err := container.DecodeWOFF(data)
		if err != nil {
			return nil, wrap(err, name, tag.Zero, 0)
		}
		return loadFromOffset(newMemorySource(sfntBytes), name, 0, o)
	case container.FormatWOFF2:
		sfntBytes, err := container.DecodeWOFF2(data)
		if err != nil {
			return nil, wrap(err, name, tag.Zero, 0)
		}
		return loadFromOffset(newMemorySource(sfntBytes), name, 0, o)
	case container.FormatDfont:
		fonts, err := container.ParseDfont(data)
		if err != nil {
			return nil, wrap(err, name, tag.Zero, 0)
		}
		return loadFromOffset(newMemorySource(fonts[0]), name, 0, o)
	case container.FormatCollection:
		return nil, newErr(KindUnknownFormat, name, tag.Zero, 0,
			"font collections require OpenCollection", nil)
	default:
		return nil, newErr(KindUnknownFormat, name, tag.Zero, 0, "", nil)
	}
}

// loadFromOffset parses the Offset Table and directory starting at
// baseOffset within src (0 for a standalone font, nonzero for one
// member of a TTC/OTC collection already resident in a shared buffer),
// constructs a Font, and eagerly decodes the directory according to o.
func loadFromOffset(src *source, name string, baseOffset int64, o loadOptions) (*Font, error) {
	header, err := src.readAllAt(baseOffset, 12)
	if err != nil {
		return nil, wrap(err, name, tag.Zero, baseOffset)
	}
	offsetTable, err := parseOffsetTable(header)
	if err != nil {
		return nil, wrap(err, name, tag.Zero, baseOffset)
	}
	if !isRecognizedSfntVersion(offsetTable.SfntVersion) {
		return nil, newErr(KindUnsupportedVersion, name, tag.Zero, baseOffset, "sfntVersion", nil)
	}

	dirBytes, err := src.readAllAt(baseOffset+12, int64(offsetTable.NumTables)*16)
	if err != nil {
		return nil, wrap(err, name, tag.Zero, baseOffset+12)
	}
	directory, err := parseDirectory(dirBytes, int(offsetTable.NumTables))
	if err != nil {
		return nil, wrap(err, name, tag.Zero, baseOffset+12)
	}
	if baseOffset != 0 {
		for i := range directory {
			directory[i].Offset += uint32(baseOffset)
		}
	}

	byTag := make(map[tag.Tag]TableDirectoryEntry, len(directory))
	for _, e := range directory {
		byTag[e.Tag] = e
	}

	font := &Font{
		src:          src,
		sourceName:   name,
		Offset:       offsetTable,
		Directory:    directory,
		byTag:        byTag,
		mode:         o.mode,
		lazy:         o.lazy && src.r != nil,
		isPostScript: isPostScriptFlavor(offsetTable.SfntVersion),
	}

	if err := font.validateRequiredTables(); err != nil {
		return nil, err
	}

	if !font.lazy {
		if err := font.eagerLoad(); err != nil {
			return nil, err
		}
	}
	flog.Logger().Debug("font opened", "source", name, "tables", font.NumTables(),
		"mode", font.mode, "lazy", font.lazy, "postscript", font.isPostScript)
	return font, nil
}

// eagerLoad implements the page-aware batched metadata read
// for non-lazy fonts: it reads every table the current Mode allows in
// as few coalesced I/Os as planBatches can manage, then slices the
// per-table views out of each batch buffer.
func (f *Font) eagerLoad() error {
	var wanted []TableDirectoryEntry
	for _, e := range f.Directory {
		if f.mode == Full || tag.MetadataSet[e.Tag] {
			wanted = append(wanted, e)
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	batches := planBatches(wanted)
	bufs := make([][]byte, len(batches))
	for i, b := range batches {
		buf, err := f.src.readAllAt(b.start, b.end-b.start)
		if err != nil {
			return wrap(err, f.sourceName, tag.Zero, b.start)
		}
		bufs[i] = buf
	}

	if f.raw == nil {
		f.raw = make(map[tag.Tag][]byte, len(wanted))
	}
	for _, e := range wanted {
		start := int64(e.Offset)
		end := start + int64(e.Length)
		for i, b := range batches {
			if start >= b.start && end <= b.end {
				lo := start - b.start
				hi := end - b.start
				f.raw[e.Tag] = bufs[i][lo:hi]
				break
			}
		}
	}
	return nil
}
