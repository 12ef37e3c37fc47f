package cff

import (
	"reflect"
	"testing"
)

func TestParseDictIntegerEncodings(t *testing.T) {
	// version -107..107 via byte+139 form; StdHW via the 0..=246 range;
	// UniqueID (operator 13) via the 2-byte shortint (28) form.
	b := []byte{
		139, 0, // operand 0, operator "version" (code 0)
		0xEF, 10, // operand 100, operator "StdHW" (code 10)
		28, 0x01, 0x2C, 13, // operand 300 (shortint), operator "UniqueID" (code 13)
	}
	d, err := ParseDict(b)
	if err != nil {
		t.Fatalf("ParseDict: %v", err)
	}
	if v, ok := d.GetInt("version"); !ok || v != 0 {
		t.Errorf("version = %d, %v, want 0, true", v, ok)
	}
	if v, ok := d.GetInt("StdHW"); !ok || v != 100 {
		t.Errorf("StdHW = %d, %v, want 100, true", v, ok)
	}
	if v, ok := d.GetInt("UniqueID"); !ok || v != 300 {
		t.Errorf("UniqueID = %d, %v, want 300, true", v, ok)
	}
}

func TestParseDictEscapedOperator(t *testing.T) {
	// operand 1000 (longint, code 29), operator "ROS" (escaped, code 30).
	b := []byte{29, 0x00, 0x00, 0x03, 0xE8, 12, 30}
	d, err := ParseDict(b)
	if err != nil {
		t.Fatalf("ParseDict: %v", err)
	}
	v, ok := d.GetInt("ROS")
	if !ok || v != 1000 {
		t.Errorf("ROS = %d, %v, want 1000, true", v, ok)
	}
}

func TestParseDictRealOperand(t *testing.T) {
	// BlueScale (escaped code 9) = -2.25, the canonical nibble-encoding
	// example from the Compact Font Format specification: 1e e2 a2 5f
	// decodes nibble-by-nibble to "-2.25".
	b := []byte{0x1e, 0xe2, 0xa2, 0x5f, 12, 9}
	d, err := ParseDict(b)
	if err != nil {
		t.Fatalf("ParseDict: %v", err)
	}
	ops, ok := d.Get("BlueScale")
	if !ok || len(ops) != 1 {
		t.Fatalf("BlueScale entry missing or wrong arity: %v, %v", ops, ok)
	}
	if got, want := ops[0].Float64(), -2.25; got != want {
		t.Errorf("BlueScale = %v, want %v", got, want)
	}
}

func TestParseDictRejectsTrailingOperands(t *testing.T) {
	b := []byte{139} // operand with no following operator
	if _, err := ParseDict(b); err == nil {
		t.Errorf("expected error for a dangling operand")
	}
}

func TestDictBuildRoundTrip(t *testing.T) {
	d := &Dict{Entries: []Entry{
		{Operator: "version", Operands: []Operand{IntOperand(0)}},
		{Operator: "FontBBox", Operands: []Operand{
			IntOperand(-100), IntOperand(-50), IntOperand(1000), IntOperand(900),
		}},
		{Operator: "ROS", Operands: []Operand{IntOperand(1000)}},
		{Operator: "BlueScale", Operands: []Operand{RealOperand(0.039625)}},
	}}
	b := d.Build()
	got, err := ParseDict(b)
	if err != nil {
		t.Fatalf("ParseDict(Build()): %v", err)
	}
	if !reflect.DeepEqual(got.Entries, d.Entries) {
		t.Errorf("round-tripped entries =\n%#v\nwant\n%#v", got.Entries, d.Entries)
	}
}

func TestDictSetReplacesInPlace(t *testing.T) {
	d := &Dict{}
	d.Set("CharStrings", []Operand{IntOperand(10)})
	d.Set("Private", []Operand{IntOperand(1), IntOperand(2)})
	d.Set("CharStrings", []Operand{IntOperand(20)})

	if len(d.Entries) != 2 {
		t.Fatalf("Set on an existing operator should not append a new entry; got %d entries", len(d.Entries))
	}
	v, _ := d.GetInt("CharStrings")
	if v != 20 {
		t.Errorf("CharStrings = %d, want 20 after replacement", v)
	}
	if d.Entries[0].Operator != "CharStrings" {
		t.Errorf("Set should preserve entry position; got order %v", d.Entries)
	}
}
