package outline

import (
	"encoding/binary"
	"errors"

	"golang.org/x/image/math/fixed"
)

// ErrInvalidGlyf is returned when a 'glyf' table entry fails a
// structural check.
var ErrInvalidGlyf = errors.New("outline: invalid glyf entry")

// simple glyph flag bits (TrueType spec "Simple Glyph Description").
const (
	flagOnCurve = 1 << iota
	flagXShort
	flagYShort
	flagRepeat
	flagXSame // also "positive X short vector" when flagXShort is set
	flagYSame // also "positive Y short vector" when flagYShort is set
)

// composite glyph component flag bits.
const (
	compArgsAreWords = 1 << iota
	compArgsAreXYValues
	compRoundXYToGrid
	compHaveScale
	compReserved
	compMoreComponents
	compHaveXYScale
	compHave2x2
	_
	compUseMyMetrics
)

// maxComponentDepth bounds composite glyph recursion; TrueType fonts
// never legitimately nest deeper than a handful of levels.
const maxComponentDepth = 8

// FromGlyf decodes glyph gid's entry from glyf (indexed via loca's
// offsets) into an Outline, following composite glyph references
// recursively. advanceWidth is the caller's already-resolved hmtx
// value, since glyf itself carries no width.
func FromGlyf(glyf []byte, loca []uint32, gid int, advanceWidth float64) (*Outline, error) {
	o := &Outline{AdvanceWidth: fix(advanceWidth)}
	if err := appendGlyf(glyf, loca, gid, &o.Segments, 0, 0, [6]float64{1, 0, 0, 1, 0, 0}, 0); err != nil {
		return nil, err
	}
	return o, nil
}

// appendGlyf decodes one glyph's contours (simple or composite) and
// appends them, already transformed by m (a 2x3 affine matrix:
// [a b c d e f] mapping (x,y) -> (a*x+c*y+e, b*x+d*y+f)), to segs.
func appendGlyf(glyf []byte, loca []uint32, gid int, segs *[]Segment, dx, dy float64, m [6]float64, depth int) error {
	if depth > maxComponentDepth {
		return ErrInvalidGlyf
	}
	if gid < 0 || gid+1 >= len(loca) {
		return ErrInvalidGlyf
	}
	start, end := loca[gid], loca[gid+1]
	if start == end {
		return nil // empty glyph, e.g. the space character
	}
	if int(end) > len(glyf) || start > end {
		return ErrInvalidGlyf
	}
	b := glyf[start:end]
	if len(b) < 10 {
		return ErrInvalidGlyf
	}
	numContours := int16(binary.BigEndian.Uint16(b[0:2]))
	if numContours >= 0 {
		return appendSimpleGlyf(b, int(numContours), segs, dx, dy, m)
	}
	return appendCompositeGlyf(glyf, loca, b, segs, dx, dy, m, depth)
}

func appendSimpleGlyf(b []byte, numContours int, segs *[]Segment, dx, dy float64, m [6]float64) error {
	pos := 10
	endPts := make([]int, numContours)
	for i := 0; i < numContours; i++ {
		if pos+2 > len(b) {
			return ErrInvalidGlyf
		}
		endPts[i] = int(binary.BigEndian.Uint16(b[pos : pos+2]))
		pos += 2
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = endPts[numContours-1] + 1
	}
	if pos+2 > len(b) {
		return ErrInvalidGlyf
	}
	insLen := int(binary.BigEndian.Uint16(b[pos : pos+2]))
	pos += 2 + insLen

	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		if pos >= len(b) {
			return ErrInvalidGlyf
		}
		f := b[pos]
		pos++
		flags[i] = f
		i++
		if f&flagRepeat != 0 {
			if pos >= len(b) {
				return ErrInvalidGlyf
			}
			repeat := int(b[pos])
			pos++
			for r := 0; r < repeat && i < numPoints; r++ {
				flags[i] = f
				i++
			}
		}
	}

	xs := make([]int32, numPoints)
	var x int32
	for i := 0; i < numPoints; i++ {
		f := flags[i]
		switch {
		case f&flagXShort != 0:
			if pos >= len(b) {
				return ErrInvalidGlyf
			}
			d := int32(b[pos])
			pos++
			if f&flagXSame == 0 {
				d = -d
			}
			x += d
		case f&flagXSame == 0:
			if pos+2 > len(b) {
				return ErrInvalidGlyf
			}
			x += int32(int16(binary.BigEndian.Uint16(b[pos : pos+2])))
			pos += 2
		}
		xs[i] = x
	}

	ys := make([]int32, numPoints)
	var y int32
	for i := 0; i < numPoints; i++ {
		f := flags[i]
		switch {
		case f&flagYShort != 0:
			if pos >= len(b) {
				return ErrInvalidGlyf
			}
			d := int32(b[pos])
			pos++
			if f&flagYSame == 0 {
				d = -d
			}
			y += d
		case f&flagYSame == 0:
			if pos+2 > len(b) {
				return ErrInvalidGlyf
			}
			y += int32(int16(binary.BigEndian.Uint16(b[pos : pos+2])))
			pos += 2
		}
		ys[i] = y
	}

	start := 0
	for _, end := range endPts {
		contourSegments(flags[start:end+1], xs[start:end+1], ys[start:end+1], segs, dx, dy, m)
		start = end + 1
	}
	return nil
}

// contourSegments converts one contour's on/off-curve point run into
// MoveTo/LineTo/QuadTo segments, synthesizing the implied on-curve
// midpoint between two consecutive off-curve points per the TrueType
// quadratic outline convention.
func contourSegments(flags []byte, xs, ys []int32, segs *[]Segment, dx, dy float64, m [6]float64) {
	n := len(flags)
	if n == 0 {
		return
	}
	onCurve := func(i int) bool { return flags[i%n]&flagOnCurve != 0 }
	px := func(i int) float64 { return float64(xs[i%n]) }
	py := func(i int) float64 { return float64(ys[i%n]) }

	startIdx := 0
	var startX, startY float64
	if onCurve(0) {
		startX, startY = px(0), py(0)
	} else if onCurve(n - 1) {
		startX, startY = px(n-1), py(n-1)
		startIdx = n - 1
	} else {
		startX = (px(0) + px(n-1)) / 2
		startY = (py(0) + py(n-1)) / 2
	}

	*segs = append(*segs, moveSeg(startX, startY, dx, dy, m))

	i := startIdx
	for count := 0; count < n; {
		next := i + 1
		if onCurve(next) {
			*segs = append(*segs, lineSeg(px(next), py(next), dx, dy, m))
			i = next
			count++
			continue
		}
		ctrlX, ctrlY := px(next), py(next)
		afterNext := next + 1
		var endX, endY float64
		if onCurve(afterNext) {
			endX, endY = px(afterNext), py(afterNext)
			i = afterNext
			count += 2
		} else {
			endX = (ctrlX + px(afterNext)) / 2
			endY = (ctrlY + py(afterNext)) / 2
			i = next
			count++
		}
		*segs = append(*segs, quadSeg(ctrlX, ctrlY, endX, endY, dx, dy, m))
	}
}

func apply(m [6]float64, x, y, dx, dy float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4] + dx, m[1]*x + m[3]*y + m[5] + dy
}

func moveSeg(x, y, dx, dy float64, m [6]float64) Segment {
	ax, ay := apply(m, x, y, dx, dy)
	return Segment{Op: SegmentOpMoveTo, Args: [6]fixed.Int26_6{fix(ax), fix(ay)}}
}

func lineSeg(x, y, dx, dy float64, m [6]float64) Segment {
	ax, ay := apply(m, x, y, dx, dy)
	return Segment{Op: SegmentOpLineTo, Args: [6]fixed.Int26_6{fix(ax), fix(ay)}}
}

func quadSeg(cx, cy, x, y, dx, dy float64, m [6]float64) Segment {
	acx, acy := apply(m, cx, cy, dx, dy)
	ax, ay := apply(m, x, y, dx, dy)
	return Segment{Op: SegmentOpQuadTo, Args: [6]fixed.Int26_6{fix(acx), fix(acy), fix(ax), fix(ay)}}
}

func appendCompositeGlyf(glyf []byte, loca []uint32, b []byte, segs *[]Segment, dx, dy float64, parentM [6]float64, depth int) error {
	pos := 10
	for {
		if pos+4 > len(b) {
			return ErrInvalidGlyf
		}
		flags := binary.BigEndian.Uint16(b[pos : pos+2])
		compGid := int(binary.BigEndian.Uint16(b[pos+2 : pos+4]))
		pos += 4

		var arg1, arg2 float64
		if flags&compArgsAreWords != 0 {
			if pos+4 > len(b) {
				return ErrInvalidGlyf
			}
			if flags&compArgsAreXYValues != 0 {
				arg1 = float64(int16(binary.BigEndian.Uint16(b[pos : pos+2])))
				arg2 = float64(int16(binary.BigEndian.Uint16(b[pos+2 : pos+4])))
			} else {
				arg1 = float64(binary.BigEndian.Uint16(b[pos : pos+2]))
				arg2 = float64(binary.BigEndian.Uint16(b[pos+2 : pos+4]))
			}
			pos += 4
		} else {
			if pos+2 > len(b) {
				return ErrInvalidGlyf
			}
			if flags&compArgsAreXYValues != 0 {
				arg1 = float64(int8(b[pos]))
				arg2 = float64(int8(b[pos+1]))
			} else {
				arg1 = float64(b[pos])
				arg2 = float64(b[pos+1])
			}
			pos += 2
		}

		m := [6]float64{1, 0, 0, 1, 0, 0}
		switch {
		case flags&compHave2x2 != 0:
			if pos+8 > len(b) {
				return ErrInvalidGlyf
			}
			m[0] = f2dot14(b[pos : pos+2])
			m[1] = f2dot14(b[pos+2 : pos+4])
			m[2] = f2dot14(b[pos+4 : pos+6])
			m[3] = f2dot14(b[pos+6 : pos+8])
			pos += 8
		case flags&compHaveXYScale != 0:
			if pos+4 > len(b) {
				return ErrInvalidGlyf
			}
			m[0] = f2dot14(b[pos : pos+2])
			m[3] = f2dot14(b[pos+2 : pos+4])
			pos += 4
		case flags&compHaveScale != 0:
			if pos+2 > len(b) {
				return ErrInvalidGlyf
			}
			s := f2dot14(b[pos : pos+2])
			m[0], m[3] = s, s
			pos += 2
		}

		var compDx, compDy float64
		if flags&compArgsAreXYValues != 0 {
			compDx, compDy = arg1, arg2
		}
		// Point-matching composition (ARGS_ARE_XY_VALUES unset) is rare in
		// practice and left unsupported; such components are placed at the
		// origin rather than failing the whole glyph.

		combined := [6]float64{
			m[0]*parentM[0] + m[1]*parentM[2],
			m[0]*parentM[1] + m[1]*parentM[3],
			m[2]*parentM[0] + m[3]*parentM[2],
			m[2]*parentM[1] + m[3]*parentM[3],
			compDx*parentM[0] + compDy*parentM[2] + parentM[4],
			compDx*parentM[1] + compDy*parentM[3] + parentM[5],
		}
		if err := appendGlyf(glyf, loca, compGid, segs, dx, dy, combined, depth+1); err != nil {
			return err
		}

		if flags&compMoreComponents == 0 {
			break
		}
	}
	return nil
}

func f2dot14(b []byte) float64 {
	return float64(int16(binary.BigEndian.Uint16(b))) / 16384
}
