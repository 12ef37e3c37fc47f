package cff

// Type 2 Charstring operator codes (Adobe Type 2 Charstring Format,
// Appendix A). Codes not listed here but within 0..31 / escaped 0..37
// are either reserved or deprecated (e.g. 9 "closepath", 12 1/2
// reserved) and are rejected by the interpreter as unsupported; only the
// operators needed for outline extraction plus the
// arithmetic operator set are implemented.
const (
	csHstem     = 1
	csVstem     = 3
	csVmoveto   = 4
	csRlineto   = 5
	csHlineto   = 6
	csVlineto   = 7
	csRrcurveto = 8
	csCallsubr  = 10
	csReturn    = 11
	csEscape    = 12
	csEndchar   = 14
	csHstemhm   = 18
	csHintmask  = 19
	csCntrmask  = 20
	csRmoveto   = 21
	csHmoveto   = 22
	csVstemhm   = 23
	csRcurveline = 24
	csRlinecurve = 25
	csVvcurveto  = 26
	csHhcurveto  = 27
	csCallgsubr  = 29
	csVhcurveto  = 30
	csHvcurveto  = 31

	// 16-bit value byte 255 in escaped (12, x) space below.
)

// Escaped (12, x) arithmetic and flex operators.
const (
	escAnd    = 3
	escOr     = 4
	escNot    = 5
	escAbs    = 9
	escAdd    = 10
	escSub    = 11
	escDiv    = 12
	escNeg    = 14
	escEq     = 15
	escDrop   = 18
	escPut    = 20
	escGet    = 21
	escIfelse = 22
	escRandom = 23
	escMul    = 24
	escSqrt   = 26
	escDup    = 27
	escExch   = 28
	escIndex  = 29
	escRoll   = 30
	escHflex  = 34
	escFlex   = 35
	escHflex1 = 36
	escFlex1  = 37
)

// bias computes the subroutine index bias: 107 if the
// subroutine count is below 1240, 1131 if below 33900, else 32768.
func bias(count int) int32 {
	switch {
	case count < 1240:
		return 107
	case count < 33900:
		return 1131
	default:
		return 32768
	}
}
