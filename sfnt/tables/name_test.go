package tables

import "testing"

func buildNameTable(records []NameRecord, strings [][]byte) []byte {
	header := make([]byte, 6)
	header[2], header[3] = byte(len(records)>>8), byte(len(records))
	stringOffset := 6 + len(records)*12
	header[4], header[5] = byte(stringOffset>>8), byte(stringOffset)

	var recBytes []byte
	var blob []byte
	for i, r := range records {
		rec := make([]byte, 12)
		put16 := func(off int, v uint16) { rec[off], rec[off+1] = byte(v>>8), byte(v) }
		put16(0, r.PlatformID)
		put16(2, r.EncodingID)
		put16(4, r.LanguageID)
		put16(6, r.NameID)
		put16(8, uint16(len(blob)))
		put16(10, uint16(len(strings[i])))
		recBytes = append(recBytes, rec...)
		blob = append(blob, strings[i]...)
	}
	var out []byte
	out = append(out, header...)
	out = append(out, recBytes...)
	out = append(out, blob...)
	return out
}

func TestParseNameAndDecodeWindowsUTF16(t *testing.T) {
	utf16BE := []byte{0x00, 'H', 0x00, 'i'} // UTF-16BE "Hi"
	b := buildNameTable(
		[]NameRecord{{PlatformID: PlatformMicrosoft, EncodingID: EncodingMicrosoftUnicode, LanguageID: LanguageMicrosoftEnglish, NameID: NameIDFamily}},
		[][]byte{utf16BE},
	)
	n, err := ParseName(b)
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	if len(n.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(n.Records))
	}
	s, err := n.Decode(0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s != "Hi" {
		t.Errorf("Decode(0) = %q, want %q", s, "Hi")
	}
}

func TestParseNameRejectsTruncation(t *testing.T) {
	if _, err := ParseName(make([]byte, 5)); err != ErrTruncated {
		t.Errorf("ParseName(5 bytes) = %v, want ErrTruncated", err)
	}
}

func TestEnglishNamePrefersWindowsOverMac(t *testing.T) {
	b := buildNameTable(
		[]NameRecord{
			{PlatformID: PlatformMac, EncodingID: EncodingMacRoman, LanguageID: LanguageMacEnglish, NameID: NameIDFamily},
			{PlatformID: PlatformMicrosoft, EncodingID: EncodingMicrosoftUnicode, LanguageID: LanguageMicrosoftEnglish, NameID: NameIDFamily},
		},
		[][]byte{[]byte("MacName"), {0x00, 'W', 0x00, 'i', 0x00, 'n'}},
	)
	n, err := ParseName(b)
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	s, ok := n.EnglishName(NameIDFamily)
	if !ok {
		t.Fatal("EnglishName did not find a match")
	}
	if s != "Win" {
		t.Errorf("EnglishName = %q, want %q (Windows record takes precedence)", s, "Win")
	}
}

func TestEnglishNameFallsBackToMac(t *testing.T) {
	b := buildNameTable(
		[]NameRecord{{PlatformID: PlatformMac, EncodingID: EncodingMacRoman, LanguageID: LanguageMacEnglish, NameID: NameIDFamily}},
		[][]byte{[]byte("OnlyMac")},
	)
	n, err := ParseName(b)
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	s, ok := n.EnglishName(NameIDFamily)
	if !ok || s != "OnlyMac" {
		t.Errorf("EnglishName = %q, %v, want %q, true", s, ok, "OnlyMac")
	}
}

func TestEnglishNameNoMatch(t *testing.T) {
	n := &Name{cache: map[int]string{}}
	if _, ok := n.EnglishName(NameIDFamily); ok {
		t.Errorf("EnglishName on an empty Name table should report no match")
	}
}
