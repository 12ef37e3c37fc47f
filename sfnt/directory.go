package sfnt

import (
	"sort"

	"github.com/fontist/fontisan-sub002/tag"
)

// TableDirectoryEntry is one 16-byte SFNT directory record.
type TableDirectoryEntry struct {
	Tag      tag.Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// paddedLength is a table's on-disk footprint: length rounded up to the
// next multiple of 4.
func (e TableDirectoryEntry) paddedLength() uint32 {
	return (e.Length + 3) &^ 3
}

// parseDirectory reads numTables 16-byte records starting at buf[0:].
func parseDirectory(buf []byte, numTables int) ([]TableDirectoryEntry, error) {
	need := numTables * 16
	if len(buf) < need {
		return nil, errTruncatedSource
	}
	dir := make([]TableDirectoryEntry, numTables)
	for i := 0; i < numTables; i++ {
		rec := buf[i*16 : i*16+16]
		dir[i] = TableDirectoryEntry{
			Tag:      tag.FromBytes(rec[0:4]),
			Checksum: u32(rec[4:8]),
			Offset:   u32(rec[8:12]),
			Length:   u32(rec[12:16]),
		}
	}
	return dir, nil
}

// byOffset sorts directory entries into ascending-offset order for the
// batched metadata read; byTag below sorts tags into the ascending order
// used for output.
type byOffset []TableDirectoryEntry

func (b byOffset) Len() int           { return len(b) }
func (b byOffset) Less(i, j int) bool { return b[i].Offset < b[j].Offset }
func (b byOffset) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }

func sortedByOffset(entries []TableDirectoryEntry) []TableDirectoryEntry {
	out := make([]TableDirectoryEntry, len(entries))
	copy(out, entries)
	sort.Sort(byOffset(out))
	return out
}

type byTag []tag.Tag

func (b byTag) Len() int           { return len(b) }
func (b byTag) Less(i, j int) bool { return b[i].Less(b[j]) }
func (b byTag) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }

func sortedTags(tags []tag.Tag) []tag.Tag {
	out := make([]tag.Tag, len(tags))
	copy(out, tags)
	sort.Sort(byTag(out))
	return out
}

// batch is a single coalesced read produced by planBatches.
type batch struct {
	start, end int64 // [start, end) absolute file offsets
}

// planBatches implements "Page-aware batched metadata read":
// sort entries by ascending offset, then walk them, coalescing adjacent
// entries into one batch whenever the gap between the end of entry i and
// the start of entry i+1 is at most coalesceGap bytes.
func planBatches(entries []TableDirectoryEntry) []batch {
	sorted := sortedByOffset(entries)
	var batches []batch
	for _, e := range sorted {
		start := int64(e.Offset)
		end := int64(e.Offset) + int64(e.Length)
		if len(batches) == 0 {
			batches = append(batches, batch{start, end})
			continue
		}
		last := &batches[len(batches)-1]
		if start-last.end <= coalesceGap {
			if end > last.end {
				last.end = end
			}
		} else {
			batches = append(batches, batch{start, end})
		}
	}
	return batches
}
