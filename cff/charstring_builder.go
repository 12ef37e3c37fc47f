package cff

// Builder accumulates Type 2 CharString operator bytes in the encoding
// the interpreter consumes: hmoveto/vmoveto chosen over rmoveto and
// hlineto/vlineto over rlineto when one axis delta is zero, and a final
// endchar. Every curve is emitted as rrcurveto; the hhcurveto, vvcurveto,
// hvcurveto and vhcurveto shorthands are never selected. Callers that
// need a byte-identical round trip of an existing CharString should use
// BuildVerbatim instead.
type Builder struct {
	out       []byte
	x, y      float64
	haveWidth bool
	width     float64
	nominal   float64
}

// NewBuilder starts a Builder. If width differs from nominalWidthX the
// first emitted stack-clearing operator carries the extra leading delta
// operand.
func NewBuilder(width, nominalWidthX float64) *Builder {
	return &Builder{width: width, nominal: nominalWidthX}
}

func (b *Builder) appendWidthIfNeeded() {
	if b.haveWidth {
		return
	}
	b.haveWidth = true
	if b.width != b.nominal {
		b.out = appendCsNumber(b.out, b.width-b.nominal)
	}
}

// MoveTo emits a minimal-length moveto to the given absolute point.
func (b *Builder) MoveTo(x, y float64) {
	b.appendWidthIfNeeded()
	dx, dy := x-b.x, y-b.y
	switch {
	case dy == 0 && dx != 0:
		b.out = appendCsNumber(b.out, dx)
		b.out = append(b.out, csHmoveto)
	case dx == 0:
		b.out = appendCsNumber(b.out, dy)
		b.out = append(b.out, csVmoveto)
	default:
		b.out = appendCsNumber(b.out, dx)
		b.out = appendCsNumber(b.out, dy)
		b.out = append(b.out, csRmoveto)
	}
	b.x, b.y = x, y
}

// LineTo emits a minimal-length lineto to the given absolute point.
func (b *Builder) LineTo(x, y float64) {
	dx, dy := x-b.x, y-b.y
	switch {
	case dy == 0:
		b.out = appendCsNumber(b.out, dx)
		b.out = append(b.out, csHlineto)
	case dx == 0:
		b.out = appendCsNumber(b.out, dy)
		b.out = append(b.out, csVlineto)
	default:
		b.out = appendCsNumber(b.out, dx)
		b.out = appendCsNumber(b.out, dy)
		b.out = append(b.out, csRlineto)
	}
	b.x, b.y = x, y
}

// CurveTo emits rrcurveto for one cubic Bezier in absolute coordinates.
func (b *Builder) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	b.out = appendCsNumber(b.out, x1-b.x)
	b.out = appendCsNumber(b.out, y1-b.y)
	b.out = appendCsNumber(b.out, x2-x1)
	b.out = appendCsNumber(b.out, y2-y1)
	b.out = appendCsNumber(b.out, x3-x2)
	b.out = appendCsNumber(b.out, y3-y2)
	b.out = append(b.out, csRrcurveto)
	b.x, b.y = x3, y3
}

// EndChar terminates the CharString and returns its bytes.
func (b *Builder) EndChar() []byte {
	b.appendWidthIfNeeded()
	b.out = append(b.out, csEndchar)
	return b.out
}

// appendCsNumber encodes v using the CharString operand rules: the
// DICT-style biased integer ranges when v is an exact
// integer in range, a 16-bit form for larger integers, and the 16.16
// fixed-point form (byte 255) for any other value.
func appendCsNumber(out []byte, v float64) []byte {
	if iv := int32(v); float64(iv) == v {
		switch {
		case iv >= -107 && iv <= 107:
			return append(out, byte(iv+139))
		case iv >= 108 && iv <= 1131:
			iv -= 108
			return append(out, byte(iv/256+247), byte(iv%256))
		case iv >= -1131 && iv <= -108:
			iv = -iv - 108
			return append(out, byte(iv/256+251), byte(iv%256))
		case iv >= -32768 && iv <= 32767:
			return append(out, 28, byte(uint16(iv)>>8), byte(uint16(iv)))
		}
	}
	fixed := int32(v * 65536)
	uv := uint32(fixed)
	return append(out, 255, byte(uv>>24), byte(uv>>16), byte(uv>>8), byte(uv))
}

// BuildVerbatim re-serializes a CharString's own operator stream
// byte-for-byte from a token list produced by Tokenize, without
// following into subroutines. It exists to satisfy the CharString
// round-trip law: build(parse(cs)) == cs for CharStrings whose
// operands were already stored in the narrowest encoding for their
// value.
func BuildVerbatim(tokens []CsToken) []byte {
	var out []byte
	for _, t := range tokens {
		if t.IsOperand {
			out = appendCsNumber(out, t.Value)
			continue
		}
		out = append(out, t.Bytes...)
	}
	return out
}

// CsToken is one syntactic element of a CharString's own byte stream:
// either a pushed operand or an operator (with any inline mask bytes
// folded into Bytes), captured without following subroutine calls.
type CsToken struct {
	IsOperand bool
	Value     float64
	Bytes     []byte // raw operator (+ mask) bytes, only set when !IsOperand
}

// Tokenize walks a CharString's own byte stream and returns its tokens
// without executing it (no subroutine recursion, no arithmetic). It is
// the basis for the CharString round-trip property and for the hint
// injection mode.
func Tokenize(data []byte) ([]CsToken, error) {
	var toks []CsToken
	stemCount := 0
	pending := 0
	for i := 0; i < len(data); {
		b0 := data[i]
		switch {
		case b0 == 28:
			if i+3 > len(data) {
				return nil, ErrTruncated
			}
			v := int16(uint16(data[i+1])<<8 | uint16(data[i+2]))
			toks = append(toks, CsToken{IsOperand: true, Value: float64(v)})
			pending++
			i += 3
			continue
		case b0 == 255:
			if i+5 > len(data) {
				return nil, ErrTruncated
			}
			fixed := int32(uint32(data[i+1])<<24 | uint32(data[i+2])<<16 | uint32(data[i+3])<<8 | uint32(data[i+4]))
			toks = append(toks, CsToken{IsOperand: true, Value: float64(fixed) / 65536})
			pending++
			i += 5
			continue
		case b0 >= 32 && b0 <= 246:
			toks = append(toks, CsToken{IsOperand: true, Value: float64(int32(b0) - 139)})
			pending++
			i++
			continue
		case b0 >= 247 && b0 <= 250:
			if i+2 > len(data) {
				return nil, ErrTruncated
			}
			toks = append(toks, CsToken{IsOperand: true, Value: float64((int32(b0)-247)*256 + int32(data[i+1]) + 108)})
			pending++
			i += 2
			continue
		case b0 >= 251 && b0 <= 254:
			if i+2 > len(data) {
				return nil, ErrTruncated
			}
			toks = append(toks, CsToken{IsOperand: true, Value: float64(-(int32(b0)-251)*256 - int32(data[i+1]) - 108)})
			pending++
			i += 2
			continue
		}
		op := int(b0)
		start := i
		i++
		if op == csEscape {
			if i >= len(data) {
				return nil, ErrTruncated
			}
			i++
		}
		if op == csHstem || op == csVstem || op == csHstemhm || op == csVstemhm {
			stemCount += pending / 2
		}
		if op == csHintmask || op == csCntrmask {
			stemCount += pending / 2
			maskLen := (stemCount + 7) / 8
			if maskLen == 0 {
				maskLen = 1
			}
			if i+maskLen > len(data) {
				return nil, ErrTruncated
			}
			i += maskLen
		}
		toks = append(toks, CsToken{Bytes: append([]byte(nil), data[start:i]...)})
		pending = 0
	}
	return toks, nil
}
