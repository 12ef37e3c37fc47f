package sfnt

import (
	"testing"

	"github.com/fontist/fontisan-sub002/tag"
)

func TestParseRoundTripsMinimalFont(t *testing.T) {
	data := buildMinimalTrueTypeFont()
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	if f.NumTables() != 6 {
		t.Errorf("NumTables() = %d, want 6", f.NumTables())
	}
	if f.IsPostScript() {
		t.Errorf("IsPostScript() = true, want false for a TrueType font")
	}
	maxp, err := f.Maxp()
	if err != nil {
		t.Fatalf("Maxp: %v", err)
	}
	if maxp.NumGlyphs != 1 {
		t.Errorf("NumGlyphs = %d, want 1", maxp.NumGlyphs)
	}
	hmtx, err := f.Hmtx()
	if err != nil {
		t.Fatalf("Hmtx: %v", err)
	}
	if hmtx.AdvanceWidth(0) != 500 {
		t.Errorf("AdvanceWidth(0) = %d, want 500", hmtx.AdvanceWidth(0))
	}
}

func TestParseRejectsUnrecognizedSfntVersion(t *testing.T) {
	data := buildMinimalTrueTypeFont()
	// Corrupt the offset table's sfntVersion field to something unrecognized.
	bad := append([]byte(nil), data...)
	putU32(bad[0:4], 0x12345678)
	if _, err := Parse(bad); err == nil {
		t.Errorf("expected an error for an unrecognized sfntVersion")
	}
}

func TestParseRejectsMissingHead(t *testing.T) {
	w := NewWriter(versionTrueType)
	// Deliberately omit 'head'.
	w.SetTable(tag.Maxp, make([]byte, 6))
	data, err := w.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := Parse(data); err == nil {
		t.Errorf("expected an error when 'head' is missing")
	}
}

func TestMetadataModeRestrictsNonWhitelistedTables(t *testing.T) {
	data := buildMinimalTrueTypeFont()
	f, err := Parse(data, WithMode(Metadata))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()

	if _, err := f.Head(); err != nil {
		t.Errorf("Head() under Metadata mode = %v, want nil (head is whitelisted)", err)
	}
	if _, err := f.GlyfBytes(); err == nil {
		t.Errorf("GlyfBytes() under Metadata mode should fail ('glyf' is not in tag.MetadataSet)")
	}
}

func TestFullModeAllowsAnyTable(t *testing.T) {
	data := buildMinimalTrueTypeFont()
	f, err := Parse(data, WithMode(Full))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer f.Close()
	if _, err := f.GlyfBytes(); err != nil {
		t.Errorf("GlyfBytes() under Full mode = %v, want nil", err)
	}
}

func TestParseRejectsTruncatedInput(t *testing.T) {
	if _, err := Parse([]byte{0, 1, 0, 0}); err == nil {
		t.Errorf("expected an error for a 4-byte input")
	}
}
