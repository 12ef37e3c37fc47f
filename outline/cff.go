package outline

import (
	"github.com/fontist/fontisan-sub002/cff"
	"golang.org/x/image/math/fixed"
)

// FromCFF interprets a Type 2 CharString and converts its result into an
// Outline. SegClose markers are dropped: Outline's contours close
// implicitly, the same convention cff.Run's own caller-facing Segment
// type deliberately avoids baking in.
func FromCFF(charstring []byte, subrs *cff.Subrs) (*Outline, error) {
	g, err := cff.Run(charstring, subrs)
	if err != nil {
		return nil, err
	}
	o := &Outline{
		Segments:     make([]Segment, 0, len(g.Segments)),
		AdvanceWidth: fix(g.Width),
	}
	for _, s := range g.Segments {
		switch s.Op {
		case cff.SegMoveTo:
			o.Segments = append(o.Segments, Segment{Op: SegmentOpMoveTo, Args: [6]fixed.Int26_6{fix(s.X), fix(s.Y)}})
		case cff.SegLineTo:
			o.Segments = append(o.Segments, Segment{Op: SegmentOpLineTo, Args: [6]fixed.Int26_6{fix(s.X), fix(s.Y)}})
		case cff.SegCurveTo:
			o.Segments = append(o.Segments, Segment{Op: SegmentOpCubeTo, Args: [6]fixed.Int26_6{
				fix(s.X1), fix(s.Y1), fix(s.X2), fix(s.Y2), fix(s.X3), fix(s.Y3),
			}})
		case cff.SegClose:
			// implicit
		}
	}
	return o, nil
}
