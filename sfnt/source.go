package sfnt

import (
	"io"
	"os"
)

// pageSize is the page-alignment unit used by the lazy single-table read
// strategy. The batched metadata reader does not use it; its gap
// threshold is coalesceGap.
const pageSize = 4096

// coalesceGap is the maximum byte gap between two directory entries that
// the batched metadata reader will bridge with a single read.
const coalesceGap = 8192

// source is a source of byte data: either an in-memory []byte or an
// io.ReaderAt (typically an *os.File kept open for the Font's lifetime).
// Modeled directly on golang.org/x/image/font/sfnt's source type, which
// this package generalizes with an explicit page cache for the lazy
// reader and a Close method for the ReaderAt case.
type source struct {
	b []byte
	r io.ReaderAt
	f *os.File // non-nil only if we opened it ourselves and own its lifetime

	pages map[int64][]byte // page-start offset -> page bytes, lazy mode only
}

func newMemorySource(b []byte) *source {
	return &source{b: b}
}

func newReaderAtSource(r io.ReaderAt) *source {
	return &source{r: r}
}

func newFileSource(f *os.File) *source {
	return &source{r: f, f: f}
}

func (s *source) valid() bool {
	return (s.b == nil) != (s.r == nil)
}

// close releases the underlying file descriptor, if this source owns one.
// It is idempotent.
func (s *source) close() error {
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f = nil
	return f.Close()
}

// view returns a direct, read-only window onto length bytes at offset,
// for in-memory sources, or a freshly read copy for ReaderAt sources. buf
// is an optional scratch buffer to reduce allocations; a nil buf is fine.
func (s *source) view(buf []byte, offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset > offset+length {
		return nil, errInvalidBounds
	}
	if s.b != nil {
		end := offset + length
		if end > int64(len(s.b)) {
			return nil, errTruncatedSource
		}
		return s.b[offset:end], nil
	}
	if int64(cap(buf)) >= length {
		buf = buf[:length]
	} else {
		buf = make([]byte, length)
	}
	if length == 0 {
		return buf, nil
	}
	n, err := s.r.ReadAt(buf, offset)
	if n != int(length) {
		if err == nil {
			err = errTruncatedSource
		}
		return nil, err
	}
	return buf, nil
}

// viewPaged is the lazy single-table read strategy: it aligns
// [offset, offset+length) outward to page boundaries, serves each page
// from s.pages (populating it with one seek+read on a miss), and
// composes the requested slice from the page fragments. Any table fully
// contained within a previously touched page incurs zero additional I/O.
func (s *source) viewPaged(offset, length int64) ([]byte, error) {
	if s.b != nil {
		// In-memory sources have no I/O to save; serve directly.
		return s.view(nil, offset, length)
	}
	if s.pages == nil {
		s.pages = make(map[int64][]byte)
	}
	firstPage := (offset / pageSize) * pageSize
	lastPage := ((offset + length - 1) / pageSize) * pageSize
	if length == 0 {
		lastPage = firstPage
	}

	out := make([]byte, 0, length)
	for p := firstPage; p <= lastPage; p += pageSize {
		page, err := s.page(p)
		if err != nil {
			return nil, err
		}
		lo := int64(0)
		if p < offset {
			lo = offset - p
		}
		hi := int64(len(page))
		if p+int64(len(page)) > offset+length {
			hi = offset + length - p
		}
		if lo > hi || lo > int64(len(page)) {
			return nil, errTruncatedSource
		}
		if hi > int64(len(page)) {
			return nil, errTruncatedSource
		}
		out = append(out, page[lo:hi]...)
	}
	return out, nil
}

func (s *source) page(start int64) ([]byte, error) {
	if page, ok := s.pages[start]; ok {
		return page, nil
	}
	buf := make([]byte, pageSize)
	n, err := s.r.ReadAt(buf, start)
	if n == 0 && err != nil && err != io.EOF {
		return nil, err
	}
	buf = buf[:n]
	s.pages[start] = buf
	return buf, nil
}

// readAllAt reads a contiguous region in one shot, bypassing the page
// cache. Used by the batched metadata reader, which does its own
// coalescing of adjacent directory entries.
func (s *source) readAllAt(offset, length int64) ([]byte, error) {
	return s.view(nil, offset, length)
}
