package cff

import (
	"strconv"
)

// Operand is one CFF DICT operand: either an integer or a real number.
// Real-ness is tracked explicitly so the writer can choose
// the matching encoding on round-trip.
type Operand struct {
	IsReal bool
	Int    int32
	Real   float64
}

// IntOperand is a convenience constructor for the common integer case.
func IntOperand(v int32) Operand { return Operand{Int: v} }

// RealOperand is a convenience constructor for real-number operands.
func RealOperand(v float64) Operand { return Operand{IsReal: true, Real: v} }

// Float64 returns the operand's value as a float64 regardless of kind.
func (o Operand) Float64() float64 {
	if o.IsReal {
		return o.Real
	}
	return float64(o.Int)
}

// Entry is one (operator, operand-list) pair in DICT order.
type Entry struct {
	Operator string
	Operands []Operand
}

// Dict is a parsed CFF DICT: an ordered sequence of operator/operand
// pairs. Lookups are by symbolic operator name.
type Dict struct {
	Entries []Entry
}

// Get returns the operand list for operator name, and whether it was
// present.
func (d *Dict) Get(name string) ([]Operand, bool) {
	for _, e := range d.Entries {
		if e.Operator == name {
			return e.Operands, true
		}
	}
	return nil, false
}

// GetInt returns a single-operand integer entry's value.
func (d *Dict) GetInt(name string) (int32, bool) {
	ops, ok := d.Get(name)
	if !ok || len(ops) == 0 {
		return 0, false
	}
	return int32(ops[len(ops)-1].Float64()), true
}

// Set replaces (or appends) the operand list for operator name, preserving
// the existing entry's position if present.
func (d *Dict) Set(name string, ops []Operand) {
	for i, e := range d.Entries {
		if e.Operator == name {
			d.Entries[i].Operands = ops
			return
		}
	}
	d.Entries = append(d.Entries, Entry{Operator: name, Operands: ops})
}

// dictOperator describes one 1-byte or 2-byte DICT operator code.
type dictOperator struct {
	name string
}

// oneByteOperators and twoByteOperators together cover the Top DICT and
// Private DICT operator sets used by this engine,
// modeled on golang.org/x/image/font/sfnt's topDictOperators table, which
// uses the same two-level (1-byte / escaped 2-byte) operator namespace.
var oneByteOperators = [22]dictOperator{
	0: {"version"}, 1: {"Notice"}, 2: {"FullName"}, 3: {"FamilyName"},
	4: {"Weight"}, 5: {"FontBBox"},
	6: {"BlueValues"}, 7: {"OtherBlues"}, 8: {"FamilyBlues"}, 9: {"FamilyOtherBlues"},
	10: {"StdHW"}, 11: {"StdVW"},
	13: {"UniqueID"}, 14: {"XUID"}, 15: {"charset"}, 16: {"Encoding"},
	17: {"CharStrings"}, 18: {"Private"},
	19: {"Subrs"}, 20: {"defaultWidthX"}, 21: {"nominalWidthX"},
}

var twoByteOperators = [39]dictOperator{
	0: {"Copyright"}, 1: {"isFixedPitch"}, 2: {"ItalicAngle"},
	3: {"UnderlinePosition"}, 4: {"UnderlineThickness"}, 5: {"PaintType"},
	6: {"CharstringType"}, 7: {"FontMatrix"}, 8: {"StrokeWidth"},
	9: {"BlueScale"}, 10: {"BlueShift"}, 11: {"BlueFuzz"},
	12: {"StemSnapH"}, 13: {"StemSnapV"}, 14: {"ForceBold"},
	17: {"LanguageGroup"}, 18: {"ExpansionFactor"}, 19: {"initialRandomSeed"},
	20: {"SyntheticBase"}, 21: {"PostScript"}, 22: {"BaseFontName"},
	23: {"BaseFontBlend"},
	30: {"ROS"}, 31: {"CIDFontVersion"}, 32: {"CIDFontRevision"},
	33: {"CIDFontType"}, 34: {"CIDCount"}, 35: {"UIDBase"},
	36: {"FDArray"}, 37: {"FDSelect"}, 38: {"FontName"},
}

var reverseOperator = buildReverseOperatorMap()

type opCode struct {
	escaped bool
	code    int
}

func buildReverseOperatorMap() map[string]opCode {
	m := map[string]opCode{}
	for code, op := range oneByteOperators {
		if op.name != "" {
			m[op.name] = opCode{false, code}
		}
	}
	for code, op := range twoByteOperators {
		if op.name != "" {
			m[op.name] = opCode{true, code}
		}
	}
	return m
}

const escapeByte = 12

// ParseDict parses a DICT operand/operator byte stream.
func ParseDict(b []byte) (*Dict, error) {
	d := &Dict{}
	var operands []Operand
	for len(b) > 0 {
		n, consumed, isOperand, err := parseDictToken(b)
		if err != nil {
			return nil, err
		}
		if isOperand {
			operands = append(operands, n)
			b = b[consumed:]
			continue
		}
		// consumed bytes encode an operator; n.Int carries escaped flag
		// packed as (escaped<<8 | code) by parseDictToken below.
		b = b[consumed:]
		escaped := n.Int>>8 != 0
		code := int(n.Int & 0xFF)
		name := operatorName(escaped, code)
		if name == "" {
			return nil, ErrInvalidDict
		}
		d.Entries = append(d.Entries, Entry{Operator: name, Operands: operands})
		operands = nil
	}
	if len(operands) != 0 {
		// Trailing operands with no operator is malformed per spec.
		return nil, ErrInvalidDict
	}
	return d, nil
}

func operatorName(escaped bool, code int) string {
	if escaped {
		if code < 0 || code >= len(twoByteOperators) {
			return ""
		}
		return twoByteOperators[code].name
	}
	if code < 0 || code >= len(oneByteOperators) {
		return ""
	}
	return oneByteOperators[code].name
}

// parseDictToken parses either one operand or one operator from the
// front of b, integer/real/operator encoding table.
func parseDictToken(b []byte) (val Operand, consumed int, isOperand bool, err error) {
	b0 := b[0]
	switch {
	case b0 <= 21:
		if b0 == escapeByte {
			if len(b) < 2 {
				return Operand{}, 0, false, ErrTruncated
			}
			return Operand{Int: int32(1<<8 | int32(b[1]))}, 2, false, nil
		}
		return Operand{Int: int32(b0)}, 1, false, nil
	case b0 == 28:
		if len(b) < 3 {
			return Operand{}, 0, false, ErrTruncated
		}
		v := int32(int16(uint16(b[1])<<8 | uint16(b[2])))
		return IntOperand(v), 3, true, nil
	case b0 == 29:
		if len(b) < 5 {
			return Operand{}, 0, false, ErrTruncated
		}
		v := int32(uint32(b[1])<<24 | uint32(b[2])<<16 | uint32(b[3])<<8 | uint32(b[4]))
		return IntOperand(v), 5, true, nil
	case b0 == 30:
		return parseDictReal(b)
	case b0 >= 32 && b0 <= 246:
		return IntOperand(int32(b0) - 139), 1, true, nil
	case b0 >= 247 && b0 <= 250:
		if len(b) < 2 {
			return Operand{}, 0, false, ErrTruncated
		}
		return IntOperand((int32(b0)-247)*256 + int32(b[1]) + 108), 2, true, nil
	case b0 >= 251 && b0 <= 254:
		if len(b) < 2 {
			return Operand{}, 0, false, ErrTruncated
		}
		return IntOperand(-(int32(b0)-251)*256 - int32(b[1]) - 108), 2, true, nil
	}
	return Operand{}, 0, false, ErrInvalidDict
}

var nibbleDefs = [16]string{
	0x0: "0", 0x1: "1", 0x2: "2", 0x3: "3", 0x4: "4", 0x5: "5", 0x6: "6",
	0x7: "7", 0x8: "8", 0x9: "9", 0xa: ".", 0xb: "E", 0xc: "E-", 0xd: "",
	0xe: "-", 0xf: "",
}

func parseDictReal(b []byte) (Operand, int, bool, error) {
	s := make([]byte, 0, 32)
	i := 1
	for {
		if i >= len(b) {
			return Operand{}, 0, false, ErrTruncated
		}
		byt := b[i]
		i++
		for shift := 0; shift < 2; shift++ {
			nib := byt >> 4
			byt <<= 4
			if nib == 0xf {
				f, err := strconv.ParseFloat(string(s), 64)
				if err != nil {
					return Operand{}, 0, false, ErrUnsupportedRealNumber
				}
				return RealOperand(f), i, true, nil
			}
			if nib == 0xd {
				return Operand{}, 0, false, ErrUnsupportedRealNumber
			}
			s = append(s, nibbleDefs[nib]...)
			if len(s) > 64 {
				return Operand{}, 0, false, ErrUnsupportedRealNumber
			}
		}
	}
}

// Build serializes a Dict back to bytes, choosing the narrowest integer
// encoding and the nibble form for reals.
func (d *Dict) Build() []byte {
	var out []byte
	for _, e := range d.Entries {
		for _, op := range e.Operands {
			out = appendOperand(out, op)
		}
		out = appendOperator(out, e.Operator)
	}
	return out
}

func appendOperand(out []byte, op Operand) []byte {
	if op.IsReal {
		return appendReal(out, op.Real)
	}
	v := op.Int
	switch {
	case v >= -107 && v <= 107:
		return append(out, byte(v+139))
	case v >= 108 && v <= 1131:
		v -= 108
		return append(out, byte(v/256+247), byte(v%256))
	case v >= -1131 && v <= -108:
		v = -v - 108
		return append(out, byte(v/256+251), byte(v%256))
	case v >= -32768 && v <= 32767:
		return append(out, 28, byte(uint16(v)>>8), byte(uint16(v)))
	default:
		uv := uint32(v)
		return append(out, 29, byte(uv>>24), byte(uv>>16), byte(uv>>8), byte(uv))
	}
}

func appendReal(out []byte, v float64) []byte {
	s := strconv.FormatFloat(v, 'G', -1, 64)
	nibbles := make([]byte, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			nibbles = append(nibbles, c-'0')
		case c == '.':
			nibbles = append(nibbles, 0xa)
		case c == 'E' || c == 'e':
			if i+1 < len(s) && s[i+1] == '-' {
				nibbles = append(nibbles, 0xc)
				i++
			} else {
				nibbles = append(nibbles, 0xb)
			}
		case c == '-':
			nibbles = append(nibbles, 0xe)
		case c == '+':
			// skip explicit '+' in exponents; nibble form has no sign digit
		}
	}
	nibbles = append(nibbles, 0xf)
	if len(nibbles)%2 != 0 {
		nibbles = append(nibbles, 0xf)
	}
	out = append(out, 30)
	for i := 0; i < len(nibbles); i += 2 {
		out = append(out, nibbles[i]<<4|nibbles[i+1])
	}
	return out
}

func appendOperator(out []byte, name string) []byte {
	oc, ok := reverseOperator[name]
	if !ok {
		return out
	}
	if oc.escaped {
		return append(out, escapeByte, byte(oc.code))
	}
	return append(out, byte(oc.code))
}
