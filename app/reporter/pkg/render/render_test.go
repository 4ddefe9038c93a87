package render

import "testing"

func TestPalette_ColorWrapsAndIsStable(t *testing.T) {
	p, err := NewPalette("#112233", "aabbcc")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Color(0); got != "112233" {
		t.Errorf("Color(0) = %q", got)
	}
	if got := p.Color(3); got != "AABBCC" {
		t.Errorf("Color(3) = %q, want wrap to AABBCC", got)
	}
	r, g, b := p.RGB(1)
	if r != 0xAA || g != 0xBB || b != 0xCC {
		t.Errorf("RGB(1) = %d,%d,%d", r, g, b)
	}
}

func TestNewPalette_Invalid(t *testing.T) {
	if _, err := NewPalette("12345"); err == nil {
		t.Error("expected error for short color")
	}
	if _, err := NewPalette("GGGGGG"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestZeroPaletteFallsBackToDefault(t *testing.T) {
	var p Palette
	if p.Color(0) != DefaultPalette.Color(0) {
		t.Error("zero palette should use the default colors")
	}
	if p.Len() != DefaultPalette.Len() {
		t.Error("zero palette length")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"pdf", FormatPDF, false},
		{" PPTX ", FormatPPTX, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}
