// Package outline extracts a glyph's vector path, as a flat list of
// segments in unscaled font design units, from either a TrueType 'glyf'
// table entry or a CFF Type 2 CharString. Its Segment/SegmentOp shape
// mirrors golang.org/x/image/font/sfnt's Buffer/Segment, so callers
// already using that package's rasterization path (e.g. through
// golang.org/x/image/vector) can consume it with no conversion step.
package outline

import "golang.org/x/image/math/fixed"

// SegmentOp identifies a Segment's path command.
type SegmentOp uint32

const (
	SegmentOpMoveTo SegmentOp = iota
	SegmentOpLineTo
	SegmentOpQuadTo
	SegmentOpCubeTo
)

// Segment is one vector path command. MoveTo and LineTo use Args[0:2];
// QuadTo uses Args[0:4]; CubeTo uses all of Args[0:6]. Every contour is
// implicitly closed back to its most recent MoveTo, matching the
// fill convention golang.org/x/image/vector expects.
type Segment struct {
	Op   SegmentOp
	Args [6]fixed.Int26_6
}

// Outline is a glyph's decoded path plus its horizontal advance width,
// both in unscaled font design units (the caller scales by ppem /
// unitsPerEm before rasterizing).
type Outline struct {
	Segments     []Segment
	AdvanceWidth fixed.Int26_6
}

func fix(v float64) fixed.Int26_6 {
	return fixed.Int26_6(int64(v*64 + sign(v)*0.5))
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
